// Package blobstore keeps uploaded document bytes outside the record store.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore saves blobs as files in a single directory
type LocalStore struct {
	basePath string // root directory for stored files
	baseURL  string // prefix of the public URL returned for a key
	logger   *slog.Logger
}

// NewLocalStore creates the base directory if needed
func NewLocalStore(basePath, baseURL string, logger *slog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info("blob storage directory ensured", "path", basePath)

	return &LocalStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}, nil
}

// Put writes r under a fresh key that keeps the original extension
func (s *LocalStore) Put(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	key := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	dstPath := filepath.Join(s.basePath, key)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		_ = os.Remove(dstPath)
		return "", "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return "", "", fmt.Errorf("failed to save file content: %w", err)
	}

	s.logger.Debug("blob stored", "filename", filename, "key", key)
	return key, s.URL(key), nil
}

// Delete removes the blob; a missing file counts as deleted
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("blob already gone", "key", key)
			return nil
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	s.logger.Debug("blob deleted", "key", key)
	return nil
}

// URL returns the public URL of a key
func (s *LocalStore) URL(key string) string {
	return s.baseURL + "/" + key
}

// Dir returns the directory blobs are stored in
func (s *LocalStore) Dir() string {
	return s.basePath
}

// path maps a key to its file, rejecting anything that is not a plain file name
func (s *LocalStore) path(key string) (string, error) {
	name := filepath.Base(key)
	if key == "" || name != key || name == "." || name == ".." {
		return "", fmt.Errorf("invalid blob key: %q", key)
	}
	return filepath.Join(s.basePath, name), nil
}
