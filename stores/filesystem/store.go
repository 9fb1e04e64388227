package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/sirupsen/logrus"
)

// tempFilePrefix marks in-flight writes; such files are never valid keys.
const tempFilePrefix = ".serenify-tmp-"

type kvStore struct {
	basePath string
}

// NewStore creates a filesystem-backed key-value store rooted at basePath.
// Each key is stored as one file named after the key.
func NewStore(basePath string) (core.KeyValueStore, error) {
	if basePath == "" {
		basePath = "./data"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &kvStore{basePath: basePath}, nil
}

// keyPath maps a key to a file below basePath, rejecting anything that
// could escape it.
func (s *kvStore) keyPath(key string) (string, error) {
	if key == "" || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q: must not be empty or a dot directory", key)
	}
	if filepath.Base(key) != key || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid key %q: must not be a path", key)
	}
	if strings.HasPrefix(key, tempFilePrefix) {
		return "", fmt.Errorf("invalid key %q: reserved prefix", key)
	}
	return filepath.Join(s.basePath, key), nil
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	filePath, err := s.keyPath(key)
	if err != nil {
		return nil, err
	}
	log := logrus.WithFields(logrus.Fields{"key": key, "file_path": filePath})

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("Key file not found")
			return nil, core.ErrKeyNotFound
		}
		log.WithError(err).Error("Failed to read key file")
		return nil, err
	}

	log.WithField("data_length", len(data)).Debug("Value retrieved successfully")
	return data, nil
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	filePath, err := s.keyPath(key)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{
		"key":         key,
		"file_path":   filePath,
		"data_length": len(value),
	})

	if err := writeFileAtomic(filePath, value, 0o644); err != nil {
		log.WithError(err).Error("Failed to write key file")
		return err
	}

	log.Debug("Value stored successfully")
	return nil
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it over filename, so readers never observe a partially written blob.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
