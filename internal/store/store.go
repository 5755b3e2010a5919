// Package store is the pizzahub persistence layer: the whole-document State,
// the operations over its collections, and the Store accessor that funnels
// every request through load, mutate and save.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"pizzahub/internal/logger"
)

const tracerName = "pizzahub/internal/store"

// Store is the accessor shared by all handlers.
type Store struct {
	mu      sync.Mutex
	backend Backend
	log     *logger.Logger
	tracer  trace.Tracer
}

// Option configures a Store.
type Option func(*Store)

// WithTracerProvider selects where store spans go. The global provider is
// used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// New returns a Store over backend.
func New(backend Backend, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     log,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the current document. Read failures are logged and replaced
// by an empty document; the caller always gets a usable State.
func (s *Store) Load(ctx context.Context) State {
	st, err := s.load(ctx)
	if err != nil {
		s.log.Warning(logger.ComponentStore, "Failed to load data, continuing with an empty store", zap.Error(err))
		return Empty()
	}
	return st
}

func (s *Store) load(ctx context.Context) (State, error) {
	ctx, span := s.tracer.Start(ctx, "store.Load")
	defer span.End()

	st, err := s.backend.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrLoad) {
			err = fmt.Errorf("%w: %v", ErrLoad, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return Empty(), err
	}
	st.normalize()
	return st, nil
}

// Update runs load, fn and save as one step. Updates from this process are
// serialized, so two concurrent creates cannot overwrite each other. When fn
// fails nothing is written and its error is returned unchanged. An
// unreadable document is never written over: Update returns the ErrLoad
// error without calling fn. A failed save is logged and returned wrapped in
// ErrSave.
func (s *Store) Update(ctx context.Context, fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		s.log.Error(logger.ComponentStore, "Refusing to write over unreadable data", zap.Error(err))
		return err
	}
	if err := fn(&st); err != nil {
		return err
	}
	return s.save(ctx, st)
}

func (s *Store) save(ctx context.Context, st State) error {
	ctx, span := s.tracer.Start(ctx, "store.Save")
	defer span.End()

	if err := s.backend.Save(ctx, st); err != nil {
		if !errors.Is(err, ErrSave) {
			err = fmt.Errorf("%w: %v", ErrSave, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		s.log.Error(logger.ComponentStore, "Failed to save data", zap.Error(err))
		return err
	}
	s.log.Success(logger.ComponentStore, "Data saved", zap.Int("records", st.Len()))
	return nil
}
