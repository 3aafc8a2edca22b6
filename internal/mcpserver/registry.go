package mcpserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/takayama/storefront/internal/logger"
	"github.com/takayama/storefront/internal/order"
)

// ErrUnknownSession is returned for IDs that were never opened, are
// already closed, or were evicted.
var ErrUnknownSession = errors.New("unknown wizard session")

const (
	// DefaultMaxSessions caps how many wizards a server keeps open.
	DefaultMaxSessions = 1000
	// DefaultIdleTimeout drops sessions no tool has touched for this long.
	DefaultIdleTimeout = time.Hour
)

// Registry holds the wizard sessions opened by remote clients. Each session
// is guarded by its own lock since order.Session is single-owner.
//
// Clients are not trusted to call wizard-close: idle sessions expire, and
// opening past the cap evicts the least recently used one.
type Registry struct {
	generator   *order.Generator
	maxSessions int
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu       sync.Mutex
	session  *order.Session
	lastUsed time.Time // guarded by Registry.mu
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMaxSessions sets the session cap. Values below 1 keep the default.
func WithMaxSessions(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.maxSessions = n
		}
	}
}

// WithIdleTimeout sets how long an untouched session survives. Zero or
// negative disables expiry.
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idleTimeout = d }
}

// WithRegistryClock replaces time.Now, for tests.
func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty registry issuing tickets with generator.
func NewRegistry(generator *order.Generator, opts ...RegistryOption) *Registry {
	r := &Registry{
		generator:   generator,
		maxSessions: DefaultMaxSessions,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open starts a new server wizard and returns its ID.
func (r *Registry) Open() string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)
	for len(r.sessions) >= r.maxSessions {
		r.evictOldestLocked()
	}
	r.sessions[id] = &entry{
		session:  order.Open(order.KindServer, r.generator),
		lastUsed: now,
	}
	return id
}

// With runs fn on the session while holding its lock.
func (r *Registry) With(id string, fn func(*order.Session)) error {
	r.mu.Lock()
	now := r.now()
	e, ok := r.sessions[id]
	if ok && r.expired(e, now) {
		delete(r.sessions, id)
		logger.Debug("mcp: session %s expired", id)
		ok = false
	}
	if ok {
		e.lastUsed = now
	}
	r.mu.Unlock()
	if !ok {
		return ErrUnknownSession
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
	return nil
}

// Close resets and forgets a session.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrUnknownSession
	}

	e.mu.Lock()
	e.session.Reset()
	e.mu.Unlock()
	return nil
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	return r.idleTimeout > 0 && now.Sub(e.lastUsed) >= r.idleTimeout
}

func (r *Registry) sweepLocked(now time.Time) {
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
			logger.Debug("mcp: session %s expired", id)
		}
	}
}

func (r *Registry) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range r.sessions {
		if oldestID == "" || e.lastUsed.Before(oldest) {
			oldestID, oldest = id, e.lastUsed
		}
	}
	delete(r.sessions, oldestID)
	logger.Debug("mcp: session %s evicted at cap %d", oldestID, r.maxSessions)
}
