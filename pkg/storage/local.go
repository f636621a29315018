package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage keeps uploaded files on the local disk under a single
// directory. The URL it hands out is a relative path the HTTP layer serves
// as a static route.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (l *LocalStorage) Upload(_ context.Context, data []byte, originalName, _ string) (string, error) {
	storedName := uniqueName(originalName)

	if err := os.WriteFile(filepath.Join(l.dir, storedName), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", storedName, err)
	}
	return storedName, nil
}

func (l *LocalStorage) Download(_ context.Context, storedName string) ([]byte, error) {
	// Base strips any path separators a stored name could smuggle in.
	return os.ReadFile(filepath.Join(l.dir, filepath.Base(storedName)))
}

func (l *LocalStorage) FileURL(storedName string) string {
	return "/uploads/" + storedName
}

func (l *LocalStorage) Delete(_ context.Context, storedName string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the directory files are stored in, for static route wiring.
func (l *LocalStorage) Dir() string {
	return l.dir
}
