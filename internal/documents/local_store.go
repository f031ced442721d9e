package documents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStore keeps payloads on the local filesystem under basePath
type LocalStore struct {
	basePath string
	logger   *logrus.Logger
}

// NewLocalStore creates basePath if needed and returns a store rooted there
func NewLocalStore(basePath string, logger *logrus.Logger) (*LocalStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path is required for local document storage")
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}
	return &LocalStore{basePath: basePath, logger: logger}, nil
}

func (s *LocalStore) Name() string { return "local" }

// fullPath resolves key below basePath, rejecting keys that escape it
func (s *LocalStore) fullPath(key string) (string, error) {
	full := filepath.Join(s.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.basePath, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid payload key %q", key)
	}
	return full, nil
}

func (s *LocalStore) Put(_ context.Context, key, _ string, data []byte) error {
	full, err := s.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"key":   key,
		"bytes": len(data),
	}).Debug("Stored document payload on local filesystem")
	return nil
}

func (s *LocalStore) Get(_ context.Context, key string) ([]byte, error) {
	full, err := s.fullPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrPayloadNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return data, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	full, err := s.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete payload: %w", err)
	}
	return nil
}
