package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/repository"
)

// SubjectPrefix prefixes every published subject
const SubjectPrefix = "property"

// publishTimeout bounds a single publish issued from a change listener
const publishTimeout = 5 * time.Second

// Publisher publishes entity change events to NATS
type Publisher struct {
	mu     sync.RWMutex
	client *Client
	logger *logrus.Logger
}

// NewPublisher creates a publisher. A nil client makes every publish a no-op.
func NewPublisher(client *Client, logger *logrus.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger,
	}
}

// SetClient attaches a connection established after startup
func (p *Publisher) SetClient(client *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = client
}

// Subject returns property.<collection>.<change>; snapshot replacements use the "snapshot" collection
func Subject(event repository.ChangeEvent) string {
	collection := event.Collection
	if collection == "" {
		collection = "snapshot"
	}
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, collection, event.Type)
}

// PublishChange publishes one change event
func (p *Publisher) PublishChange(ctx context.Context, event repository.ChangeEvent) error {
	p.mu.RLock()
	client := p.client
	p.mu.RUnlock()

	if !client.IsConnected() {
		p.logger.Debug("NATS not connected, skipping event publish")
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	subject := Subject(event)
	ack, err := client.js.Publish(subject, data, nats.Context(ctx))
	if err != nil {
		p.logger.WithFields(logrus.Fields{
			"subject":   subject,
			"entity_id": event.EntityID,
		}).WithError(err).Error("Failed to publish change event")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"subject":  subject,
		"sequence": ack.Sequence,
		"stream":   ack.Stream,
	}).Debug("Published change event")
	return nil
}

// Listener adapts the publisher to the entity store's change hook
func (p *Publisher) Listener() repository.ChangeListener {
	return func(event repository.ChangeEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.PublishChange(ctx, event); err != nil {
			p.logger.WithError(err).Warn("Change event not published")
		}
	}
}
