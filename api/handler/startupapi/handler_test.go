package startupapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arkadem/startup-board/api/common"
	"github.com/arkadem/startup-board/config"
	"github.com/arkadem/startup-board/database/models"
	repo "github.com/arkadem/startup-board/database/repo/startups"
	"github.com/arkadem/startup-board/internal/startups"
	"github.com/arkadem/startup-board/internal/uploads"
	"github.com/arkadem/startup-board/storage"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Startup{}))

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	intake := uploads.NewIntake(store, config.ExtensionSet{"png": true})

	handler := NewHandler(startups.NewService(repo.NewRepository(db), intake))

	router := gin.New()
	router.GET("/api/startups", handler.List)
	router.GET("/api/startups/:id", handler.Get)
	return router, db
}

func seedStartup(t *testing.T, db *gorm.DB, name, description string, logo *string) *models.Startup {
	t.Helper()

	user := &models.User{Username: "founder-" + name, Email: name + "@example.com", Password: "hash"}
	require.NoError(t, db.Create(user).Error)

	startup := &models.Startup{Name: name, Description: description, Logo: logo, UserID: user.ID}
	require.NoError(t, db.Create(startup).Error)
	return startup
}

func TestList_Empty(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/startups", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestList_ReturnsAllStartups(t *testing.T) {
	router, db := setupTestRouter(t)

	logo := "1_logo.png"
	seedStartup(t, db, "Acme", "Widgets for everyone", &logo)
	seedStartup(t, db, "Umbra", "Shade as a service", nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/startups", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []startupDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "Acme", got[0].Name)
	assert.Equal(t, "Widgets for everyone", got[0].Description)
	require.NotNil(t, got[0].Logo)
	assert.Equal(t, "1_logo.png", *got[0].Logo)
	// "file" mirrors the stored logo filename.
	require.NotNil(t, got[0].File)
	assert.Equal(t, "1_logo.png", *got[0].File)

	assert.Equal(t, "Umbra", got[1].Name)
	assert.Nil(t, got[1].Logo)
	assert.Nil(t, got[1].File)
}

func TestGet_ReturnsStartup(t *testing.T) {
	router, db := setupTestRouter(t)
	seeded := seedStartup(t, db, "Acme", "Widgets for everyone", nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/startups/"+strconv.FormatUint(uint64(seeded.ID), 10), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got startupDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, "Acme", got.Name)
}

func TestGet_NotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, id := range []string{"999", "abc", "-1"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/startups/"+id, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code, "id %q", id)

		var resp common.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Startup not found", resp.Msg)
	}
}
