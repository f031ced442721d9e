package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/storage"
)

// ChangeType describes a mutation of the entity store
type ChangeType string

const (
	ChangeCreated  ChangeType = "created"
	ChangeUpdated  ChangeType = "updated"
	ChangeDeleted  ChangeType = "deleted"
	ChangeReplaced ChangeType = "replaced"
)

// ChangeEvent is delivered to listeners after a mutation has been persisted
type ChangeEvent struct {
	Collection string      `json:"collection"`
	EntityID   string      `json:"entityId,omitempty"`
	Type       ChangeType  `json:"type"`
	Entity     interface{} `json:"entity,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// ChangeListener observes store mutations
type ChangeListener func(ChangeEvent)

// PendingSet maps a collection to the ids mutated since the last confirmed sync.
// Each id carries the generation of its latest mutation.
type PendingSet map[string]map[string]uint64

// Count returns the number of pending records
func (p PendingSet) Count() int {
	n := 0
	for _, ids := range p {
		n += len(ids)
	}
	return n
}

// EntityRepository is the single source of truth for all entity collections.
// Every collection is persisted as one JSON array under its collection key.
type EntityRepository struct {
	mu        sync.RWMutex
	kv        storage.KVStore
	logger    *logrus.Logger
	data      models.Snapshot
	pending   PendingSet
	gen       uint64
	listeners []ChangeListener
}

// NewEntityRepository creates an empty repository bound to kv. Call Load to read persisted state.
func NewEntityRepository(kv storage.KVStore, logger *logrus.Logger) *EntityRepository {
	return &EntityRepository{
		kv:      kv,
		logger:  logger,
		data:    emptySnapshot(),
		pending: make(PendingSet),
	}
}

func emptySnapshot() models.Snapshot {
	return models.Snapshot{
		Properties:   []models.Property{},
		Tenants:      []models.Tenant{},
		WorkOrders:   []models.WorkOrder{},
		Transactions: []models.Transaction{},
		Documents:    []models.Document{},
		Applications: []models.Application{},
	}
}

// Subscribe registers a listener. Listeners run synchronously after the write lock is released.
func (r *EntityRepository) Subscribe(listener ChangeListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

// Load reads every collection from the key-value store. A missing key yields an
// empty collection; a malformed value is logged and also yields an empty collection.
func (r *EntityRepository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := emptySnapshot()
	for _, collection := range models.Collections {
		raw, ok, err := r.kv.Get(ctx, collection)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", collection, err)
		}
		if !ok || raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), collectionTarget(&next, collection)); err != nil {
			r.logger.WithError(err).WithField("collection", collection).Warn("Malformed persisted collection, starting empty")
			resetCollection(&next, collection)
		}
	}
	r.data = next

	r.logger.WithFields(logrus.Fields{
		"properties":   len(next.Properties),
		"tenants":      len(next.Tenants),
		"workOrders":   len(next.WorkOrders),
		"transactions": len(next.Transactions),
		"documents":    len(next.Documents),
		"applications": len(next.Applications),
	}).Info("Entity store loaded")
	return nil
}

// collectionTarget returns a pointer to the slice field backing collection
func collectionTarget(s *models.Snapshot, collection string) interface{} {
	switch collection {
	case models.CollectionProperties:
		return &s.Properties
	case models.CollectionTenants:
		return &s.Tenants
	case models.CollectionWorkOrders:
		return &s.WorkOrders
	case models.CollectionTransactions:
		return &s.Transactions
	case models.CollectionDocuments:
		return &s.Documents
	case models.CollectionApplications:
		return &s.Applications
	}
	return nil
}

func resetCollection(s *models.Snapshot, collection string) {
	empty := emptySnapshot()
	switch collection {
	case models.CollectionProperties:
		s.Properties = empty.Properties
	case models.CollectionTenants:
		s.Tenants = empty.Tenants
	case models.CollectionWorkOrders:
		s.WorkOrders = empty.WorkOrders
	case models.CollectionTransactions:
		s.Transactions = empty.Transactions
	case models.CollectionDocuments:
		s.Documents = empty.Documents
	case models.CollectionApplications:
		s.Applications = empty.Applications
	}
}

// Snapshot returns a deep copy of every collection
func (r *EntityRepository) Snapshot() *models.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data.Clone()
}

// SnapshotWithPending returns a snapshot together with the pending records it contains
func (r *EntityRepository) SnapshotWithPending() (*models.Snapshot, PendingSet) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data.Clone(), r.pendingLocked()
}

// Pending returns the records mutated since the last confirmed sync
func (r *EntityRepository) Pending() PendingSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pendingLocked()
}

func (r *EntityRepository) pendingLocked() PendingSet {
	out := make(PendingSet, len(r.pending))
	for collection, ids := range r.pending {
		out[collection] = make(map[string]uint64, len(ids))
		for id, gen := range ids {
			out[collection][id] = gen
		}
	}
	return out
}

// ClearPending removes the given records from the pending set. A record mutated
// again after the set was captured keeps its newer generation and stays pending.
func (r *EntityRepository) ClearPending(set PendingSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for collection, ids := range set {
		for id, gen := range ids {
			if current, ok := r.pending[collection][id]; ok && current == gen {
				delete(r.pending[collection], id)
			}
		}
		if len(r.pending[collection]) == 0 {
			delete(r.pending, collection)
		}
	}
}

// ReplaceSnapshot validates and stores a complete snapshot, replacing all collections.
// The replacement is treated as confirmed, so the pending set is cleared.
func (r *EntityRepository) ReplaceSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	next := snapshot.Clone()
	if err := validateSnapshot(next); err != nil {
		return err
	}
	normalizeSnapshot(next)

	r.mu.Lock()
	if err := r.persistAllLocked(ctx, next, models.Collections); err != nil {
		r.mu.Unlock()
		return err
	}
	r.data = *next
	r.pending = make(PendingSet)
	listeners := r.listeners
	r.mu.Unlock()

	r.logger.WithField("records", snapshotSize(next)).Info("Entity store replaced from snapshot")
	dispatch(listeners, ChangeEvent{Type: ChangeReplaced, OccurredAt: time.Now()})
	return nil
}

func validateSnapshot(s *models.Snapshot) error {
	for i := range s.Properties {
		if err := s.Properties[i].Validate(); err != nil {
			return fmt.Errorf("properties[%d]: %w", i, err)
		}
	}
	for i := range s.Tenants {
		if err := s.Tenants[i].Validate(); err != nil {
			return fmt.Errorf("tenants[%d]: %w", i, err)
		}
	}
	for i := range s.WorkOrders {
		if err := s.WorkOrders[i].Validate(); err != nil {
			return fmt.Errorf("workOrders[%d]: %w", i, err)
		}
	}
	for i := range s.Transactions {
		if err := s.Transactions[i].Validate(); err != nil {
			return fmt.Errorf("transactions[%d]: %w", i, err)
		}
	}
	for i := range s.Documents {
		if err := s.Documents[i].Validate(); err != nil {
			return fmt.Errorf("documents[%d]: %w", i, err)
		}
	}
	for i := range s.Applications {
		if err := s.Applications[i].Validate(); err != nil {
			return fmt.Errorf("applications[%d]: %w", i, err)
		}
	}
	return nil
}

// normalizeSnapshot assigns ids to records that arrived without one
func normalizeSnapshot(s *models.Snapshot) {
	assignIDs[models.Property](s.Properties)
	assignIDs[models.Tenant](s.Tenants)
	assignIDs[models.WorkOrder](s.WorkOrders)
	assignIDs[models.Transaction](s.Transactions)
	assignIDs[models.Document](s.Documents)
	assignIDs[models.Application](s.Applications)
}

func assignIDs[T any, PT entity[T]](items []T) {
	for i := range items {
		if PT(&items[i]).GetID() == "" {
			PT(&items[i]).SetID(uuid.NewString())
		}
	}
}

func snapshotSize(s *models.Snapshot) int {
	return len(s.Properties) + len(s.Tenants) + len(s.WorkOrders) +
		len(s.Transactions) + len(s.Documents) + len(s.Applications)
}

// persistLocked writes one collection. Callers hold the write lock.
func (r *EntityRepository) persistLocked(ctx context.Context, collection string, items interface{}) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}
	if err := r.kv.Set(ctx, collection, string(raw)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", collection, err)
	}
	return nil
}

// persistAllLocked writes several collections of next. If one write fails the
// collections already written are restored from the current state, so the store
// never mixes old and new content. Callers hold the write lock.
func (r *EntityRepository) persistAllLocked(ctx context.Context, next *models.Snapshot, collections []string) error {
	for i, collection := range collections {
		err := r.persistLocked(ctx, collection, collectionTarget(next, collection))
		if err == nil {
			continue
		}
		for _, written := range collections[:i] {
			if rerr := r.persistLocked(ctx, written, collectionTarget(&r.data, written)); rerr != nil {
				r.logger.WithError(rerr).WithField("collection", written).Error("Failed to restore collection after partial write")
			}
		}
		return err
	}
	return nil
}

func (r *EntityRepository) markPendingLocked(collection, id string) {
	ids, ok := r.pending[collection]
	if !ok {
		ids = make(map[string]uint64)
		r.pending[collection] = ids
	}
	r.gen++
	ids[id] = r.gen
}

func dispatch(listeners []ChangeListener, event ChangeEvent) {
	for _, l := range listeners {
		l(event)
	}
}
