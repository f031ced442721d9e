package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tesseract-hub/property-service/internal/models"
)

// entity is implemented by pointers to every stored model
type entity[T any] interface {
	*T
	GetID() string
	SetID(string)
	Validate() error
}

func indexOf[T any, PT entity[T]](items []T, id string) int {
	for i := range items {
		if PT(&items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func getFrom[T any, PT entity[T]](r *EntityRepository, items *[]T, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := indexOf[T, PT](*items, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	item := (*items)[idx]
	return &item, nil
}

func listFrom[T any](r *EntityRepository, items *[]T) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]T{}, (*items)...)
}

// commit persists next as the new content of collection, swaps it in, marks id
// pending and notifies listeners. Callers hold the write lock; commit releases it.
func commit[T any](ctx context.Context, r *EntityRepository, collection string, items *[]T, next []T, event ChangeEvent) error {
	if err := r.persistLocked(ctx, collection, next); err != nil {
		r.mu.Unlock()
		return err
	}
	*items = next
	r.markPendingLocked(collection, event.EntityID)
	listeners := r.listeners
	r.mu.Unlock()

	event.Collection = collection
	event.OccurredAt = time.Now()
	dispatch(listeners, event)
	return nil
}

func createIn[T any, PT entity[T]](ctx context.Context, r *EntityRepository, collection string, items *[]T, item PT) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if item.GetID() == "" {
		item.SetID(uuid.NewString())
	} else if indexOf[T, PT](*items, item.GetID()) >= 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", models.ErrDuplicateID, item.GetID())
	}
	next := append(append(make([]T, 0, len(*items)+1), (*items)...), *item)
	return commit(ctx, r, collection, items, next, ChangeEvent{EntityID: item.GetID(), Type: ChangeCreated, Entity: *item})
}

// updateIn replaces the record id with item. When check is set it sees the stored
// record first and may adjust item or reject the update.
func updateIn[T any, PT entity[T]](ctx context.Context, r *EntityRepository, collection string, items *[]T, id string, item PT, check func(prev T, next PT) error) error {
	item.SetID(id)

	r.mu.Lock()
	idx := indexOf[T, PT](*items, id)
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	if check != nil {
		if err := check((*items)[idx], item); err != nil {
			r.mu.Unlock()
			return err
		}
	}
	if err := item.Validate(); err != nil {
		r.mu.Unlock()
		return err
	}
	next := append([]T{}, (*items)...)
	next[idx] = *item
	return commit(ctx, r, collection, items, next, ChangeEvent{EntityID: id, Type: ChangeUpdated, Entity: *item})
}

func deleteIn[T any, PT entity[T]](ctx context.Context, r *EntityRepository, collection string, items *[]T, id string, guard func(T) error) error {
	r.mu.Lock()
	idx := indexOf[T, PT](*items, id)
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	removed := (*items)[idx]
	if guard != nil {
		if err := guard(removed); err != nil {
			r.mu.Unlock()
			return err
		}
	}
	next := make([]T, 0, len(*items)-1)
	next = append(next, (*items)[:idx]...)
	next = append(next, (*items)[idx+1:]...)
	return commit(ctx, r, collection, items, next, ChangeEvent{EntityID: id, Type: ChangeDeleted, Entity: removed})
}
