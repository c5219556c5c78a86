package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-console/internal/models"
	appErrors "github.com/noah-isme/academy-console/pkg/errors"
)

// Snapshot is the read view of a slice: the entity list plus in-flight and
// error metadata. Views render from snapshots, never from internals.
type Snapshot[T any] struct {
	Items   []T
	Loading bool
	Error   string
	Success bool
}

// resourceAPI is the part of the API client a slice drives. Satisfied by
// *api.Resource[T].
type resourceAPI[T models.Identifiable] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload interface{}) (*T, error)
	Update(ctx context.Context, id string, payload interface{}) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Slice holds client-side state for one entity type. All four operations set
// Loading at dispatch and clear it on settle; Error and Success always refer
// to the most recent settled request. Responses are fenced by a per-slice
// sequence number so a slow stale response can never clobber a newer one.
type Slice[T models.Identifiable] struct {
	name   string
	api    resourceAPI[T]
	logger *zap.Logger

	mu       sync.Mutex
	items    []T
	inflight int
	err      string
	success  bool
	seq      uint64
	applied  uint64
	onChange func()
}

// NewSlice builds a slice bound to its resource client.
func NewSlice[T models.Identifiable](name string, api resourceAPI[T], logger *zap.Logger) *Slice[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Slice[T]{name: name, api: api, logger: logger}
}

// OnChange registers a callback invoked after every state mutation.
func (s *Slice[T]) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *Slice[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return Snapshot[T]{
		Items:   items,
		Loading: s.inflight > 0,
		Error:   s.err,
		Success: s.success,
	}
}

// ConsumeSuccess returns the success flag and clears it, so a dialog can
// close exactly once per fulfilled mutation.
func (s *Slice[T]) ConsumeSuccess() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.success
	s.success = false
	return v
}

// List replaces the item list with the server's array. On failure the list is
// left untouched and Error carries the message.
func (s *Slice[T]) List(ctx context.Context) error {
	token := s.dispatch()
	items, err := s.api.List(ctx)
	s.settle(token, err, func() {
		s.items = items
	})
	return err
}

// Create appends the server-returned entity and marks Success.
func (s *Slice[T]) Create(ctx context.Context, payload interface{}) (*T, error) {
	token := s.dispatch()
	created, err := s.api.Create(ctx, payload)
	s.settle(token, err, func() {
		s.items = append(s.items, *created)
		s.success = true
	})
	return created, err
}

// Update replaces the matching entry in place. When the id is absent from the
// list the result is dropped from view; Success is still set because the
// server accepted the change.
func (s *Slice[T]) Update(ctx context.Context, id string, payload interface{}) (*T, error) {
	token := s.dispatch()
	updated, err := s.api.Update(ctx, id, payload)
	s.settle(token, err, func() {
		for i := range s.items {
			if s.items[i].GetID() == id {
				s.items[i] = *updated
				break
			}
		}
		s.success = true
	})
	return updated, err
}

// Delete removes the matching entry and marks Success.
func (s *Slice[T]) Delete(ctx context.Context, id string) error {
	token := s.dispatch()
	err := s.api.Delete(ctx, id)
	s.settle(token, err, func() {
		kept := s.items[:0]
		for _, item := range s.items {
			if item.GetID() != id {
				kept = append(kept, item)
			}
		}
		s.items = kept
		s.success = true
	})
	return err
}

// dispatch records a new in-flight request and clears stale error/success
// state, returning the fencing token for this request.
func (s *Slice[T]) dispatch() uint64 {
	s.mu.Lock()
	s.seq++
	token := s.seq
	s.inflight++
	s.err = ""
	s.success = false
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return token
}

// settle applies the outcome of a request unless a newer one already settled.
func (s *Slice[T]) settle(token uint64, err error, apply func()) {
	s.mu.Lock()
	s.inflight--
	if token < s.applied {
		s.logger.Debug("stale response discarded",
			zap.String("slice", s.name),
			zap.Uint64("token", token),
			zap.Uint64("applied", s.applied))
		notify := s.onChange
		s.mu.Unlock()
		if notify != nil {
			notify()
		}
		return
	}
	s.applied = token
	if err != nil {
		s.err = appErrors.UserMessage(err)
	} else if apply != nil {
		apply()
	}
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}
