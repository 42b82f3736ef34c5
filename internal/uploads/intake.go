// Package uploads turns client-supplied file uploads into safely named,
// persisted artifacts.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/arkadem/startup-board/config"
	"github.com/arkadem/startup-board/storage"
)

var (
	// ErrNoFileSelected is returned for a file part with an empty filename.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrInvalidFileType is returned when the client filename's extension
	// is not in the allow-set.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrStorageWriteFailed wraps any I/O failure during write or
	// post-write verification.
	ErrStorageWriteFailed = errors.New("storage write failed")
)

// maxSanitizedLength caps the sanitized base name.
const maxSanitizedLength = 50

// Intake validates and persists uploaded logo files.
type Intake struct {
	store   storage.Store
	allowed config.ExtensionSet
}

func NewIntake(store storage.Store, allowed config.ExtensionSet) *Intake {
	return &Intake{store: store, allowed: allowed}
}

// Store persists the upload and returns the stored filename, which is
// always "{ownerID}_{sanitized base name}". Two uploads by the same user
// with the same sanitized base name overwrite each other; that collision
// behavior is accepted and relied on by callers, do not change the naming
// scheme without revisiting them.
func (in *Intake) Store(ctx context.Context, fileHeader *multipart.FileHeader, ownerID uint) (string, error) {
	clientName := fileHeader.Filename
	if clientName == "" {
		return "", ErrNoFileSelected
	}

	dot := strings.LastIndex(clientName, ".")
	if dot < 0 {
		return "", ErrInvalidFileType
	}
	if !in.allowed.Contains(clientName[dot+1:]) {
		return "", ErrInvalidFileType
	}

	storedName := fmt.Sprintf("%d_%s", ownerID, SanitizeBaseName(clientName))

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("%w: opening upload stream: %v", ErrStorageWriteFailed, err)
	}
	defer src.Close()

	// Single attempt, no retry.
	if err := in.store.Save(ctx, storedName, src); err != nil {
		log.Error().Err(err).Str("filename", storedName).Msg("failed to save uploaded file")
		return "", fmt.Errorf("%w: saving %q: %v", ErrStorageWriteFailed, storedName, err)
	}

	if err := in.verify(ctx, storedName); err != nil {
		log.Error().Err(err).Str("filename", storedName).Msg("post-write verification failed")
		return "", err
	}

	return storedName, nil
}

// Discard removes a previously stored file. Used to roll back when record
// creation fails after the file was written.
func (in *Intake) Discard(ctx context.Context, storedName string) error {
	return in.store.Delete(ctx, storedName)
}

// verify confirms the artifact exists and at least one byte can be read
// back, catching media that silently drop writes.
func (in *Intake) verify(ctx context.Context, storedName string) error {
	exists, err := in.store.Exists(ctx, storedName)
	if err != nil {
		return fmt.Errorf("%w: checking %q: %v", ErrStorageWriteFailed, storedName, err)
	}
	if !exists {
		return fmt.Errorf("%w: %q missing after save", ErrStorageWriteFailed, storedName)
	}

	file, err := in.store.Open(ctx, storedName)
	if err != nil {
		return fmt.Errorf("%w: reading back %q: %v", ErrStorageWriteFailed, storedName, err)
	}
	defer file.Close()

	buf := make([]byte, 1)
	n, err := file.Read(buf)
	if n == 0 {
		if err == nil || err == io.EOF {
			return fmt.Errorf("%w: %q is empty after save", ErrStorageWriteFailed, storedName)
		}
		return fmt.Errorf("%w: reading back %q: %v", ErrStorageWriteFailed, storedName, err)
	}

	return nil
}

// SanitizeBaseName strips any path prefix from a client filename, keeps
// only alphanumerics and ". _ -", and truncates to 50 characters. The
// result is safe as a path segment but not unique.
func SanitizeBaseName(clientName string) string {
	base := filepath.Base(clientName)

	var sb strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			sb.WriteRune(r)
		}
	}

	safe := sb.String()
	if len(safe) > maxSanitizedLength {
		safe = safe[:maxSanitizedLength]
	}
	return safe
}
