package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/documents"
	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/repository"
)

// DocumentService attaches raw payloads to document records
type DocumentService struct {
	repo   *repository.EntityRepository
	store  documents.PayloadStore
	logger *logrus.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(repo *repository.EntityRepository, store documents.PayloadStore, logger *logrus.Logger) *DocumentService {
	return &DocumentService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// UploadPayload stores the payload of document id and records its reference, size and extracted text
func (s *DocumentService) UploadPayload(ctx context.Context, id, filename, contentType string, data []byte) (*models.Document, error) {
	doc, err := s.repo.GetDocument(id)
	if err != nil {
		return nil, err
	}

	contentType = documents.DetectContentType(contentType, filename)
	key := documents.PayloadKey(id, filename)
	if err := s.store.Put(ctx, key, contentType, data); err != nil {
		return nil, fmt.Errorf("failed to store payload: %w", err)
	}

	previous := doc.PayloadRef
	doc.PayloadRef = key
	doc.ContentType = contentType
	doc.Size = int64(len(data))
	if text := documents.ExtractText(contentType, data); text != "" {
		doc.Content = text
	}
	if err := s.repo.UpdateDocument(ctx, id, doc); err != nil {
		return nil, err
	}

	if previous != "" && previous != key {
		if err := s.store.Delete(ctx, previous); err != nil {
			s.logger.WithError(err).WithField("key", previous).Warn("Failed to delete replaced payload")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"document_id":  id,
		"provider":     s.store.Name(),
		"content_type": contentType,
		"bytes":        len(data),
	}).Info("Stored document payload")
	return doc, nil
}

// GetPayload returns the stored payload of document id
func (s *DocumentService) GetPayload(ctx context.Context, id string) (*models.Document, []byte, error) {
	doc, err := s.repo.GetDocument(id)
	if err != nil {
		return nil, nil, err
	}
	if doc.PayloadRef == "" {
		return nil, nil, fmt.Errorf("%w: document %s has no payload", models.ErrNotFound, id)
	}
	data, err := s.store.Get(ctx, doc.PayloadRef)
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}

// DeleteDocument removes the record and then its payload
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.repo.GetDocument(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteDocument(ctx, id); err != nil {
		return err
	}
	if doc.PayloadRef != "" {
		if err := s.store.Delete(ctx, doc.PayloadRef); err != nil {
			s.logger.WithError(err).WithField("key", doc.PayloadRef).Warn("Failed to delete document payload")
		}
	}
	return nil
}
