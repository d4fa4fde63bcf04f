package crud

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Operations is the persistence contract a remote data service fulfils.
// Create returns the persisted entity with its server-assigned id. Update
// fails on a missing or conflicting record. Delete fails when nothing was
// removed.
type Operations[T Entity] interface {
	Create(ctx context.Context, fields Patch) (T, error)
	Update(ctx context.Context, id string, fields Patch) (T, error)
	Delete(ctx context.Context, id string) error
}

// OperationFuncs overrides individual operations. A nil func falls back to
// the in-memory implementation.
type OperationFuncs[T Entity] struct {
	Create func(ctx context.Context, fields Patch) (T, error)
	Update func(ctx context.Context, id string, fields Patch) (T, error)
	Delete func(ctx context.Context, id string) error
}

// Remote adapts a full Operations implementation.
func Remote[T Entity](ops Operations[T]) OperationFuncs[T] {
	if ops == nil {
		return OperationFuncs[T]{}
	}
	return OperationFuncs[T]{
		Create: ops.Create,
		Update: ops.Update,
		Delete: ops.Delete,
	}
}

// SyncPolicy states who reflects a custom operation's result in local state.
type SyncPolicy int

const (
	// SyncRefetch leaves local state alone after a custom operation. The
	// caller refreshes the collection from its source of truth.
	SyncRefetch SyncPolicy = iota
	// SyncApply writes the entity returned by a custom operation into the
	// collection, and removes deleted ids.
	SyncApply
)

func (p SyncPolicy) String() string {
	switch p {
	case SyncApply:
		return "apply"
	default:
		return "refetch"
	}
}

// AdapterConfig configures an Adapter.
type AdapterConfig[T Entity] struct {
	Ops    OperationFuncs[T]
	Sync   SyncPolicy
	Now    func() time.Time
	NewID  func() string
	Logger *slog.Logger
}

// collection is the state an Adapter mutates when it runs locally.
type collection[T Entity] interface {
	lookup(id string) (T, bool)
	upsert(item T)
	remove(id string) bool
}

// Adapter runs create/update/delete either through custom operations or
// against the in-memory collection, and tracks the last failure.
type Adapter[T Entity] struct {
	ops    OperationFuncs[T]
	sync   SyncPolicy
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
	coll   collection[T]

	mu      sync.Mutex
	running int
	lastErr string
}

func newAdapter[T Entity](coll collection[T], cfg AdapterConfig[T]) *Adapter[T] {
	a := &Adapter[T]{
		ops:    cfg.Ops,
		sync:   cfg.Sync,
		now:    cfg.Now,
		newID:  cfg.NewID,
		logger: cfg.Logger,
		coll:   coll,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.newID == nil {
		a.newID = newUUID
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	return a
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Create persists a new entity.
func (a *Adapter[T]) Create(ctx context.Context, fields Patch) (T, error) {
	a.begin()
	var (
		item T
		err  error
	)
	if a.ops.Create != nil {
		item, err = a.ops.Create(ctx, fields)
		if err == nil && a.sync == SyncApply {
			a.coll.upsert(item)
		}
	} else {
		item, err = a.createLocal(fields)
	}
	return item, a.end("create", err)
}

// Update persists a partial change to an existing entity.
func (a *Adapter[T]) Update(ctx context.Context, id string, fields Patch) (T, error) {
	a.begin()
	var (
		item T
		err  error
	)
	if a.ops.Update != nil {
		item, err = a.ops.Update(ctx, id, fields)
		if err == nil && a.sync == SyncApply {
			a.coll.upsert(item)
		}
	} else {
		item, err = a.updateLocal(id, fields)
	}
	return item, a.end("update", err)
}

// Delete removes an entity.
func (a *Adapter[T]) Delete(ctx context.Context, id string) error {
	a.begin()
	var err error
	if a.ops.Delete != nil {
		err = a.ops.Delete(ctx, id)
		if err == nil && a.sync == SyncApply {
			a.coll.remove(id)
		}
	} else {
		a.coll.remove(id)
	}
	return a.end("delete", err)
}

// Local reports whether every operation runs against memory only.
func (a *Adapter[T]) Local() bool {
	return a.ops.Create == nil && a.ops.Update == nil && a.ops.Delete == nil
}

// Sync returns the configured sync policy.
func (a *Adapter[T]) Sync() SyncPolicy { return a.sync }

// Busy reports whether an operation is running.
func (a *Adapter[T]) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running > 0
}

// Err returns the message of the most recent failure, or "".
func (a *Adapter[T]) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// ClearError forgets the last failure.
func (a *Adapter[T]) ClearError() {
	a.mu.Lock()
	a.lastErr = ""
	a.mu.Unlock()
}

func (a *Adapter[T]) begin() {
	a.mu.Lock()
	a.running++
	a.mu.Unlock()
}

// end records the outcome and hands the original error back so callers can
// still react to it.
func (a *Adapter[T]) end(op string, err error) error {
	a.mu.Lock()
	a.running--
	if err != nil {
		a.lastErr = Message(err)
	}
	a.mu.Unlock()
	if err != nil {
		a.logger.Warn("crud operation failed", "op", op, "err", err)
	}
	return err
}

// --- Local implementations ---

func (a *Adapter[T]) createLocal(fields Patch) (T, error) {
	out := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	if id := FormatID(out["id"]); id == "" {
		out["id"] = a.newID()
	} else if _, taken := a.coll.lookup(id); taken {
		var zero T
		return zero, fmt.Errorf("create %q: %w", id, ErrDuplicateID)
	}
	if _, ok := out["created_at"]; !ok {
		out["created_at"] = a.now().UTC().Format(time.RFC3339)
	}
	item, err := FromFields[T](out)
	if err != nil {
		return item, err
	}
	a.coll.upsert(item)
	return item, nil
}

func (a *Adapter[T]) updateLocal(id string, fields Patch) (T, error) {
	current, ok := a.coll.lookup(id)
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	patch := make(Patch, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		patch[k] = v
	}
	item, err := Merge(current, patch)
	if err != nil {
		return current, err
	}
	a.coll.upsert(item)
	return item, nil
}
