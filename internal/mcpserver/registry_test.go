package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takayama/storefront/internal/order"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func touch(r *Registry, id string) error {
	return r.With(id, func(*order.Session) {})
}

func TestRegistry_EvictsLeastRecentlyUsed(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	r := NewRegistry(nil, WithMaxSessions(2), WithIdleTimeout(0), WithRegistryClock(clock.now))

	first := r.Open()
	clock.advance(time.Second)
	second := r.Open()
	clock.advance(time.Second)
	require.NoError(t, touch(r, first))
	clock.advance(time.Second)

	third := r.Open()
	assert.Equal(t, 2, r.Len())
	assert.ErrorIs(t, touch(r, second), ErrUnknownSession)
	assert.NoError(t, touch(r, first))
	assert.NoError(t, touch(r, third))
}

func TestRegistry_IdleSessionsExpire(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	r := NewRegistry(nil, WithIdleTimeout(time.Minute), WithRegistryClock(clock.now))

	idle := r.Open()
	active := r.Open()

	clock.advance(40 * time.Second)
	require.NoError(t, touch(r, active))
	clock.advance(30 * time.Second)

	assert.ErrorIs(t, touch(r, idle), ErrUnknownSession)
	assert.NoError(t, touch(r, active))

	clock.advance(2 * time.Minute)
	r.Open()
	assert.Equal(t, 1, r.Len(), "opening sweeps expired sessions")
}

func TestRegistry_Defaults(t *testing.T) {
	r := NewRegistry(nil, WithMaxSessions(0))
	assert.Equal(t, DefaultMaxSessions, r.maxSessions)
	assert.Equal(t, DefaultIdleTimeout, r.idleTimeout)
}
