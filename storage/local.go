package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore persists files directly under a base directory. Filenames are
// validated so a stored name can never escape the base path.
type LocalStore struct {
	absBasePath string
}

// NewLocalStore creates the base directory (with parents) if absent.
func NewLocalStore(basePath string) (*LocalStore, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", basePath, err)
	}

	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", absPath, err)
	}

	return &LocalStore{
		absBasePath: absPath + string(os.PathSeparator),
	}, nil
}

// Save writes the stream to basePath/filename. An existing file with the
// same name is overwritten, last writer wins.
func (s *LocalStore) Save(ctx context.Context, filename string, file io.Reader) error {
	dstPath, err := s.Path(filename)
	if err != nil {
		return err
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create upload file %q: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("write upload file %q: %w", dstPath, err)
	}

	return nil
}

// Open returns the stored file for reading.
func (s *LocalStore) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	fullPath, err := s.Path(filename)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to open file %q: %w", filename, err)
	}

	return file, nil
}

// Exists reports whether the file is present on disk.
func (s *LocalStore) Exists(ctx context.Context, filename string) (bool, error) {
	fullPath, err := s.Path(filename)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the stored file.
func (s *LocalStore) Delete(ctx context.Context, filename string) error {
	fullPath, err := s.Path(filename)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("delete %q: file does not exist", filename)
		}
		return fmt.Errorf("delete %q: %w", fullPath, err)
	}

	return nil
}

// Path resolves filename to an absolute path inside the base directory,
// rejecting anything that could traverse outside it.
func (s *LocalStore) Path(filename string) (string, error) {
	if !IsValidFilename(filename) {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}

	fullPath := filepath.Join(s.absBasePath, filename)
	if !strings.HasPrefix(fullPath, s.absBasePath) {
		return "", fmt.Errorf("filename %q resolves outside the upload directory", filename)
	}

	return fullPath, nil
}

// BasePath returns the absolute base directory.
func (s *LocalStore) BasePath() string {
	return s.absBasePath
}

// IsValidFilename reports whether name is a safe flat filename, restricted
// to [A-Za-z0-9._-]. The charset excludes path separators, so any accepted
// name is a single segment; only the pure-dot names could still point
// elsewhere and are rejected explicitly. Interior dots ("logo..png") are
// fine.
func IsValidFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	for _, r := range name {
		if !((r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.') {
			return false
		}
	}

	return true
}
