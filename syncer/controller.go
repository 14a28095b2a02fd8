package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/client"
	"github.com/rpupo63/portfolio-site-backend/localcache"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// Source reports which path served an operation.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// ErrNotFound is returned by Update when the target id exists neither
// remotely nor in the working set.
var ErrNotFound = errors.New("record not found")

// Remote is the canonical-store side of a controller. *client.Resource
// satisfies it directly.
type Remote[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record *T) (*T, error)
	Update(ctx context.Context, id uuid.UUID, record *T) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Controller keeps an in-memory working set for one entity kind consistent
// with whichever source answered last. Every operation attempts the canonical
// store first and substitutes the local cache only on infrastructure failure;
// an application-level rejection surfaces to the caller untouched.
//
// The controller is the sole writer of its cache slot. Remote reads never
// overwrite the cache: cached state is a last resort, not a mirror.
type Controller[T any, P interface {
	*T
	models.Entity
}] struct {
	kind   string
	remote Remote[T]
	cache  *localcache.Store
	clock  func() time.Time
	logger zerolog.Logger

	mu      sync.Mutex
	records []T
}

type ControllerOption[T any, P interface {
	*T
	models.Entity
}] func(*Controller[T, P])

// WithClock overrides the timestamp source used when stamping fallback
// records.
func WithClock[T any, P interface {
	*T
	models.Entity
}](clock func() time.Time) ControllerOption[T, P] {
	return func(c *Controller[T, P]) {
		c.clock = clock
	}
}

func NewController[T any, P interface {
	*T
	models.Entity
}](kind string, remote Remote[T], cache *localcache.Store, opts ...ControllerOption[T, P]) *Controller[T, P] {
	c := &Controller[T, P]{
		kind:    kind,
		remote:  remote,
		cache:   cache,
		clock:   time.Now,
		logger:  log.With().Str("component", "syncController").Str("kind", kind).Logger(),
		records: []T{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns a copy of the working set in its current order.
func (c *Controller[T, P]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

// Refresh replaces the working set from the canonical store, preserving
// server order. When the store is unreachable it loads the cached collection
// instead, or an empty set if nothing was ever cached. A successful remote
// fetch does not touch the cache, even when it returns an empty list.
func (c *Controller[T, P]) Refresh(ctx context.Context) (Source, error) {
	records, err := c.remote.List(ctx)
	if err != nil {
		if !client.IsInfrastructure(err) {
			return "", err
		}
		c.logger.Warn().Err(err).Msg("remote unreachable, serving cached records")

		cached, ok, cacheErr := localcache.LoadRecords[T](c.cache, c.kind)
		if cacheErr != nil {
			return "", cacheErr
		}
		if !ok {
			cached = []T{}
		}

		c.mu.Lock()
		c.records = cached
		c.mu.Unlock()
		return SourceFallback, nil
	}

	if records == nil {
		records = []T{}
	}

	c.mu.Lock()
	c.records = records
	c.mu.Unlock()
	return SourceRemote, nil
}

// Create validates the record, then attempts a remote create. On success the
// server-returned record (with its server-assigned id) joins the working set.
// When the store is unreachable the record gets a locally generated id and
// timestamps, and the whole working set is persisted to the cache.
func (c *Controller[T, P]) Create(ctx context.Context, record *T) (*T, Source, error) {
	p := P(record)
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, "", err
	}

	created, err := c.remote.Create(ctx, record)
	if err == nil {
		c.mu.Lock()
		c.records = append(c.records, *created)
		c.mu.Unlock()
		return created, SourceRemote, nil
	}
	if !client.IsInfrastructure(err) {
		return nil, "", err
	}
	c.logger.Warn().Err(err).Msg("remote unreachable, creating record locally")

	if p.EntityID() == uuid.Nil {
		p.SetEntityID(uuid.New())
	}
	p.Stamp(c.clock())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, *record)
	if err := c.persistLocked(); err != nil {
		return nil, "", err
	}
	return record, SourceFallback, nil
}

// Update attempts a remote full-record replace. On success the matching
// working-set entry is swapped for the server's copy. When the store is
// unreachable the entry is replaced locally and the working set persisted;
// updating an id absent from the working set returns ErrNotFound.
func (c *Controller[T, P]) Update(ctx context.Context, id uuid.UUID, record *T) (*T, Source, error) {
	p := P(record)
	p.SetEntityID(id)
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, "", err
	}

	updated, err := c.remote.Update(ctx, id, record)
	if err == nil {
		c.mu.Lock()
		if idx := c.indexLocked(id); idx >= 0 {
			c.records[idx] = *updated
		} else {
			c.records = append(c.records, *updated)
		}
		c.mu.Unlock()
		return updated, SourceRemote, nil
	}
	if !client.IsInfrastructure(err) {
		return nil, "", err
	}
	c.logger.Warn().Err(err).Msg("remote unreachable, updating record locally")

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexLocked(id)
	if idx < 0 {
		return nil, "", ErrNotFound
	}

	p.Stamp(c.clock())
	c.records[idx] = *record
	if err := c.persistLocked(); err != nil {
		return nil, "", err
	}
	return record, SourceFallback, nil
}

// Delete attempts a remote delete. A remote 404 counts as success: the record
// is already gone from the canonical store, so it is dropped from the working
// set and the cache without surfacing an error. When the store is unreachable
// the id is removed locally whether or not it was present and the reduced
// collection is persisted.
func (c *Controller[T, P]) Delete(ctx context.Context, id uuid.UUID) (Source, error) {
	err := c.remote.Delete(ctx, id)

	switch {
	case err == nil:
		c.mu.Lock()
		c.removeLocked(id)
		c.mu.Unlock()
		return SourceRemote, nil

	case client.IsNotFound(err):
		c.mu.Lock()
		defer c.mu.Unlock()
		c.removeLocked(id)
		if err := c.persistLocked(); err != nil {
			return "", err
		}
		return SourceRemote, nil

	case client.IsInfrastructure(err):
		c.logger.Warn().Err(err).Msg("remote unreachable, deleting record locally")
		c.mu.Lock()
		defer c.mu.Unlock()
		c.removeLocked(id)
		if err := c.persistLocked(); err != nil {
			return "", err
		}
		return SourceFallback, nil

	default:
		return "", err
	}
}

// Prune removes every working-set entry matching pred and optionally persists
// the reduced collection. It performs no remote call; cascades use it after
// the primary delete has been resolved.
func (c *Controller[T, P]) Prune(pred func(*T) bool, persist bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.records[:0]
	removed := 0
	for i := range c.records {
		if pred(&c.records[i]) {
			removed++
			continue
		}
		kept = append(kept, c.records[i])
	}
	c.records = kept

	if removed > 0 && persist {
		if err := c.persistLocked(); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

func (c *Controller[T, P]) indexLocked(id uuid.UUID) int {
	for i := range c.records {
		if P(&c.records[i]).EntityID() == id {
			return i
		}
	}
	return -1
}

func (c *Controller[T, P]) removeLocked(id uuid.UUID) {
	if idx := c.indexLocked(id); idx >= 0 {
		c.records = append(c.records[:idx], c.records[idx+1:]...)
	}
}

func (c *Controller[T, P]) persistLocked() error {
	return localcache.SaveRecords(c.cache, c.kind, c.records)
}
