package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var (
	ErrInvalidKey = errors.New("invalid storage key")

	keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// FileStorage keeps every key in its own file under Dir.
type FileStorage struct {
	Dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("can't create storage directory: %w", err)
	}

	return &FileStorage{Dir: dir}, nil
}

func (that *FileStorage) Get(_ context.Context, key string) (string, error) {
	path, err := that.path(key)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("can't read %s: %w", key, err)
	}

	return string(data), nil
}

// Set writes to a temp file and renames it over the old value so readers
// never observe a partial write.
func (that *FileStorage) Set(_ context.Context, key, value string) error {
	path, err := that.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(that.Dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("can't create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("can't write %s: %w", key, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("can't close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("can't replace %s: %w", key, err)
	}

	return nil
}

func (that *FileStorage) Close() error {
	return nil
}

func (that *FileStorage) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return filepath.Join(that.Dir, key+".json"), nil
}
