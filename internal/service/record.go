// Package service sits between the handlers and the repositories.
//
// Record services pass every call through to their store unchanged and,
// when notifications are configured, queue a change notification after a
// successful create, update or delete.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio/internal/repository"
)

// Actions reported to the Notifier.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Notifier queues record change notifications.
type Notifier interface {
	EnqueueRecordChanged(ctx context.Context, entity, action string, id int) error
}

// RecordService serves one record type.
type RecordService[T any] struct {
	entity   string
	store    repository.RecordStore[T]
	notifier Notifier
	logger   zerolog.Logger
}

// NewRecordService wraps store. A nil notifier disables notifications.
func NewRecordService[T any](entity string, store repository.RecordStore[T], notifier Notifier, logger *zerolog.Logger) *RecordService[T] {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}

	return &RecordService[T]{
		entity:   entity,
		store:    store,
		notifier: notifier,
		logger:   l.With().Str("component", "service").Str("entity", entity).Logger(),
	}
}

// Entity is the resource name, e.g. "Skills".
func (s *RecordService[T]) Entity() string {
	return s.entity
}

func (s *RecordService[T]) List(ctx context.Context) ([]T, error) {
	return s.store.ListAll(ctx)
}

// Get returns nil without error when the record does not exist.
func (s *RecordService[T]) Get(ctx context.Context, id int) (*T, error) {
	return s.store.GetByID(ctx, id)
}

// Create stores record and returns the id the database assigned.
func (s *RecordService[T]) Create(ctx context.Context, record T) (int, error) {
	id, err := s.store.Create(ctx, record)
	if err != nil {
		return 0, err
	}

	s.notify(ctx, ActionCreated, id)
	return id, nil
}

// Update overwrites the record with id. An unknown id is a no-op.
func (s *RecordService[T]) Update(ctx context.Context, id int, record T) error {
	if err := s.store.Update(ctx, record); err != nil {
		return err
	}

	s.notify(ctx, ActionUpdated, id)
	return nil
}

// Delete removes the record with id. An unknown id is a no-op.
func (s *RecordService[T]) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, ActionDeleted, id)
	return nil
}

// notify never fails the request: the write already happened.
func (s *RecordService[T]) notify(ctx context.Context, action string, id int) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.EnqueueRecordChanged(ctx, s.entity, action, id); err != nil {
		s.logger.Warn().
			Err(err).
			Str("action", action).
			Int("id", id).
			Msg("failed to queue change notification")
	}
}
