package startups

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arkadem/startup-board/config"
	"github.com/arkadem/startup-board/database/models"
	repo "github.com/arkadem/startup-board/database/repo/startups"
	"github.com/arkadem/startup-board/internal/uploads"
	"github.com/arkadem/startup-board/storage"
)

type testEnv struct {
	db      *gorm.DB
	store   *storage.LocalStore
	service *Service
	user    *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Startup{}))

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	allowed := config.ExtensionSet{"png": true, "jpg": true, "jpeg": true, "gif": true}
	intake := uploads.NewIntake(store, allowed)

	user := &models.User{ID: 7, Username: "founder", Email: "founder@example.com", Password: "hash"}
	require.NoError(t, db.Create(user).Error)

	return &testEnv{
		db:      db,
		store:   store,
		service: NewService(repo.NewRepository(db), intake),
		user:    user,
	}
}

func newFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("logo", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["logo"]
	require.Len(t, files, 1)
	return files[0]
}

func (e *testEnv) startupCount(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(&models.Startup{}).Count(&count).Error)
	return count
}

func (e *testEnv) storedFiles(t *testing.T) []os.DirEntry {
	t.Helper()

	entries, err := os.ReadDir(e.store.BasePath())
	require.NoError(t, err)
	return entries
}

func TestService_Submit_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	startup, err := env.service.Submit(ctx, SubmitInput{
		Name:        "Acme",
		Description: "Widgets",
		Logo:        newFileHeader(t, "logo.PNG", "valid png bytes"),
	}, env.user)
	require.NoError(t, err)

	assert.Equal(t, "Acme", startup.Name)
	assert.Equal(t, "Widgets", startup.Description)
	require.NotNil(t, startup.Logo)
	assert.Equal(t, "7_logo.PNG", *startup.Logo)
	assert.Equal(t, uint(7), startup.UserID)

	exists, err := env.store.Exists(ctx, "7_logo.PNG")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.EqualValues(t, 1, env.startupCount(t))
}

func TestService_Submit_TrimsFields(t *testing.T) {
	env := newTestEnv(t)

	startup, err := env.service.Submit(context.Background(), SubmitInput{
		Name:        "  Acme  ",
		Description: "\tWidgets\n",
		Logo:        newFileHeader(t, "logo.png", "bytes"),
	}, env.user)
	require.NoError(t, err)

	assert.Equal(t, "Acme", startup.Name)
	assert.Equal(t, "Widgets", startup.Description)
}

func TestService_Submit_MissingFieldsShortCircuit(t *testing.T) {
	env := newTestEnv(t)

	// The logo has a disallowed extension; the field error must win,
	// proving no file handling was attempted.
	_, err := env.service.Submit(context.Background(), SubmitInput{
		Name:        "Acme",
		Description: "   ",
		Logo:        newFileHeader(t, "malware.exe", "payload"),
	}, env.user)
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	assert.Empty(t, env.storedFiles(t))
	assert.EqualValues(t, 0, env.startupCount(t))
}

func TestService_Submit_NoFilePart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Submit(context.Background(), SubmitInput{
		Name:        "Acme",
		Description: "Widgets",
	}, env.user)
	assert.ErrorIs(t, err, ErrNoFileProvided)
	assert.EqualValues(t, 0, env.startupCount(t))
}

func TestService_Submit_InvalidFileTypeCreatesNothing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Submit(context.Background(), SubmitInput{
		Name:        "Acme",
		Description: "Widgets",
		Logo:        newFileHeader(t, "malware.exe", "payload"),
	}, env.user)
	assert.ErrorIs(t, err, uploads.ErrInvalidFileType)

	assert.Empty(t, env.storedFiles(t))
	assert.EqualValues(t, 0, env.startupCount(t))
}

func TestService_Submit_RecordFailureDiscardsFile(t *testing.T) {
	env := newTestEnv(t)

	// Force the insert to fail after the file was stored.
	require.NoError(t, env.db.Migrator().DropTable(&models.Startup{}))

	_, err := env.service.Submit(context.Background(), SubmitInput{
		Name:        "Acme",
		Description: "Widgets",
		Logo:        newFileHeader(t, "logo.png", "bytes"),
	}, env.user)
	require.Error(t, err)

	assert.Empty(t, env.storedFiles(t), "stored file must be discarded when the record insert fails")
}

func TestService_SearchAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Submit(ctx, SubmitInput{
		Name:        "Acme",
		Description: "Widgets",
		Logo:        newFileHeader(t, "logo.png", "bytes"),
	}, env.user)
	require.NoError(t, err)

	all, err := env.service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	results, err := env.service.Search(ctx, "wid")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Acme", results[0].Name)

	results, err = env.service.Search(ctx, "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_Search_StorageFailure(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.db.Migrator().DropTable(&models.Startup{}))

	_, err := env.service.Search(context.Background(), "acme")
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestService_Get(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.service.Submit(ctx, SubmitInput{
		Name:        "Acme",
		Description: "Widgets",
		Logo:        newFileHeader(t, "logo.png", "bytes"),
	}, env.user)
	require.NoError(t, err)

	got, err := env.service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = env.service.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
