package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores images on the local filesystem. Used when no cloud
// credentials are configured; files are served back by the HTTP layer under
// /uploads.
type LocalStorage struct {
	baseURL   string // server URL (e.g. "http://localhost:8080")
	uploadDir string
}

func NewLocalStorage(baseURL, uploadDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		uploadDir: uploadDir,
	}, nil
}

func (s *LocalStorage) Save(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	fullPath := filepath.Join(s.uploadDir, filepath.Clean(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, key), nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.uploadDir, filepath.Clean(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Open reads a stored file, used by the HTTP download handler.
func (s *LocalStorage) Open(key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.uploadDir, filepath.Clean(key)))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}
