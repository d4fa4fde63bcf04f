package crud

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// DefaultTenantField is the field a Scope stamps when no field is named.
const DefaultTenantField = "hotel_id"

// Scope carries the tenant a store works for. It replaces any notion of a
// process-wide default hotel.
type Scope struct {
	TenantField string
	TenantID    string
}

// Field returns the tenant field name.
func (s Scope) Field() string {
	if s.TenantField == "" {
		return DefaultTenantField
	}
	return s.TenantField
}

// StoreConfig configures a Store.
type StoreConfig[T Entity] struct {
	Scope   Scope
	Adapter AdapterConfig[T]
}

// Store owns the entity collection and applies optimistic mutations.
// It is safe for use from the UI goroutine and from command goroutines.
type Store[T Entity] struct {
	mu      sync.Mutex
	items   []T
	pending int
	version uint64

	scope Scope
	ops   *Adapter[T]
}

// NewStore creates an empty store.
func NewStore[T Entity](cfg StoreConfig[T]) *Store[T] {
	s := &Store[T]{scope: cfg.Scope}
	s.ops = newAdapter[T](s, cfg.Adapter)
	return s
}

// Adapter exposes the operations adapter for its error and busy state.
func (s *Store[T]) Adapter() *Adapter[T] { return s.ops }

// Scope returns the tenant scope the store was built with.
func (s *Store[T]) Scope() Scope { return s.scope }

// --- Reads ---

// Items returns a copy of the collection in insertion order.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the entity with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	return s.lookup(id)
}

// Len returns the collection size.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Pending returns the number of optimistic mutations still in flight.
func (s *Store[T]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Version increases on every change to the collection.
func (s *Store[T]) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// --- Refresh ---

// ReplaceAll overwrites the collection with a fresh copy from the source of
// truth. While an optimistic mutation is in flight the refresh is skipped
// and applied is false, so stale data cannot clobber the uncommitted change.
func (s *Store[T]) ReplaceAll(items []T) (applied bool, err error) {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		id := item.EntityID()
		if id == "" {
			return false, fmt.Errorf("item %d: %w", i, ErrInvalidID)
		}
		if _, dup := seen[id]; dup {
			return false, fmt.Errorf("id %q: %w", id, ErrDuplicateID)
		}
		seen[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending > 0 {
		return false, nil
	}
	s.items = make([]T, len(items))
	copy(s.items, items)
	s.version++
	return true, nil
}

// --- Optimistic toggles ---

// Pending is the handle of one in-flight optimistic field change.
type Pending struct {
	ID    string
	Field string
	Prev  any
	Next  any

	settled bool
}

// BeginToggle applies value to the entity's field immediately and marks the
// mutation in flight. The caller persists the change and then calls Settle
// exactly once with the outcome.
func (s *Store[T]) BeginToggle(id, field string, value bool) (*Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, fmt.Errorf("toggle %s on %q: %w", field, id, ErrNotFound)
	}
	prev := FieldValue(s.items[idx], field)
	if prev != nil {
		if _, ok := prev.(bool); !ok {
			return nil, fmt.Errorf("toggle %s on %q: %w", field, id, ErrNotBoolean)
		}
	}
	next, err := Merge(s.items[idx], Patch{field: value})
	if err != nil {
		return nil, fmt.Errorf("toggle %s on %q: %w", field, id, err)
	}
	s.items[idx] = next
	s.pending++
	s.version++
	return &Pending{ID: id, Field: field, Prev: prev, Next: value}, nil
}

// Settle finishes a pending toggle. On failure the field reverts to its
// previous value, unless a newer change has replaced the optimistic value
// since. The error is returned unchanged. Settling twice is a no-op.
func (s *Store[T]) Settle(p *Pending, err error) error {
	if p == nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.settled {
		return err
	}
	p.settled = true
	s.pending--

	if err == nil {
		return nil
	}
	idx := s.indexLocked(p.ID)
	if idx < 0 {
		return err
	}
	current := FieldValue(s.items[idx], p.Field)
	if !reflect.DeepEqual(current, p.Next) {
		return err
	}
	reverted, mergeErr := revertField(s.items[idx], p.Field, p.Prev)
	if mergeErr != nil {
		return err
	}
	s.items[idx] = reverted
	s.version++
	return err
}

// revertField restores field to prev. A field that was absent before the
// toggle is removed again rather than set to null.
func revertField[T Entity](item T, field string, prev any) (T, error) {
	if prev != nil {
		return Merge(item, Patch{field: prev})
	}
	fields, err := Fields(item)
	if err != nil {
		return item, err
	}
	delete(fields, field)
	return FromFields[T](fields)
}

// ToggleField sets a boolean field optimistically, persists it through the
// adapter and rolls back on failure. When it returns an error the local
// state is already back to the previous value.
func (s *Store[T]) ToggleField(ctx context.Context, id, field string, value bool) error {
	p, err := s.BeginToggle(id, field, value)
	if err != nil {
		return err
	}
	_, err = s.ops.Update(ctx, id, Patch{field: value})
	return s.Settle(p, err)
}

// --- Delegated mutations ---

// Create persists a new entity. The tenant field is stamped when the store
// has a scope and the fields do not set it.
func (s *Store[T]) Create(ctx context.Context, fields Patch) (T, error) {
	out := make(Patch, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	if s.scope.TenantID != "" {
		if _, ok := out[s.scope.Field()]; !ok {
			out[s.scope.Field()] = s.scope.TenantID
		}
	}
	return s.ops.Create(ctx, out)
}

// Update persists a partial change.
func (s *Store[T]) Update(ctx context.Context, id string, fields Patch) (T, error) {
	if id == "" {
		var zero T
		return zero, ErrInvalidID
	}
	return s.ops.Update(ctx, id, fields)
}

// Delete removes an entity.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	return s.ops.Delete(ctx, id)
}

// --- collection ---

func (s *Store[T]) lookup(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], true
	}
	var zero T
	return zero, false
}

func (s *Store[T]) upsert(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(item.EntityID()); idx >= 0 {
		s.items[idx] = item
	} else {
		s.items = append(s.items, item)
	}
	s.version++
}

func (s *Store[T]) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.version++
	return true
}

func (s *Store[T]) indexLocked(id string) int {
	for i, item := range s.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}
