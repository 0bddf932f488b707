// Package memory provides an in-process implementation of the store
// interfaces. It mirrors the PostgreSQL document store's semantics (regex
// search, limits, upsert-creates, zero-count misses) and backs both the
// "memory" database driver and handler tests.
package memory

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// DB holds all datasets behind a single mutex.
type DB struct {
	mu sync.Mutex

	services     collection[domain.Service]
	bookings     collection[domain.Booking]
	testimonials collection[domain.Testimonial]

	err   error
	calls int
	now   func() time.Time
}

// collection keeps documents in insertion order, like a document store's
// natural order.
type collection[T any] struct {
	order []uuid.UUID
	docs  map[uuid.UUID]T
}

func (c *collection[T]) put(id uuid.UUID, doc T) {
	if c.docs == nil {
		c.docs = make(map[uuid.UUID]T)
	}
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = doc
}

func (c *collection[T]) remove(id uuid.UUID) bool {
	if _, exists := c.docs[id]; !exists {
		return false
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) each(fn func(T) bool) {
	for _, id := range c.order {
		if !fn(c.docs[id]) {
			return
		}
	}
}

// New returns an empty in-memory database.
func New() *DB {
	return &DB{now: time.Now}
}

// WithError configures the database to fail every subsequent call with err.
// Passing nil restores normal operation.
func (db *DB) WithError(err error) *DB {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.err = err
	return db
}

// Calls returns how many store operations have been attempted.
func (db *DB) Calls() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.calls
}

// Stores returns the store bundle backed by this database.
func (db *DB) Stores() store.Stores {
	return store.Stores{
		Services:     &ServiceStore{db: db},
		Bookings:     &BookingStore{db: db},
		Testimonials: &TestimonialStore{db: db},
		Health:       db,
	}
}

// Ping implements store.Pinger.
func (db *DB) Ping(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.err
}

// begin locks the database and records the call. Callers must unlock.
func (db *DB) begin(ctx context.Context, entity, op string) error {
	db.mu.Lock()
	db.calls++
	if err := ctx.Err(); err != nil {
		return store.NewStoreError(entity, op, err)
	}
	if db.err != nil {
		return store.NewStoreError(entity, op, db.err)
	}
	return nil
}

func compileSearch(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidQuery, err)
	}
	return re, nil
}

func assignID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
