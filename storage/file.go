package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// FileKV stores each key as its own file under a base directory.
type FileKV struct {
	basePath string
}

// NewFileKV creates a FileKV and ensures the base directory exists.
func NewFileKV(basePath string) (*FileKV, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &FileKV{basePath: basePath}, nil
}

// path escapes the key so keys like "moodbites:favorites:v1" are safe filenames.
func (f *FileKV) path(key string) string {
	return filepath.Join(f.basePath, url.PathEscape(key)+".json")
}

func (f *FileKV) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes to a temporary file and renames it so readers never see a partial snapshot.
func (f *FileKV) Set(ctx context.Context, key, value string) error {
	tmp, err := os.CreateTemp(f.basePath, ".kv-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

type FileBlob struct {
	FilePath string
}

func NewFileBlob(filePath string) *FileBlob {
	return &FileBlob{FilePath: filePath}
}

func (b *FileBlob) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(b.FilePath)
}
