// Package documents stores raw document payloads and extracts searchable text from them.
package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/config"
)

// ErrPayloadNotFound is returned when no payload exists under a key
var ErrPayloadNotFound = errors.New("document payload not found")

// PayloadStore persists raw document bytes
type PayloadStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Name() string
}

// NewPayloadStore builds the store selected by cfg.Provider
func NewPayloadStore(ctx context.Context, cfg config.DocumentsConfig, logger *logrus.Logger) (PayloadStore, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocalStore(cfg.LocalPath, logger)
	case "s3":
		return NewS3Store(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown document storage provider %q", cfg.Provider)
	}
}
