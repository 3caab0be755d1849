package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(ttl time.Duration) (*TTLCache[string, int], *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	c := New[string, int](ttl)
	c.now = clock.Now
	return c, clock
}

func TestSetAndGet(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key1", 42)

	value, ok := c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, 42, value)

	_, ok = c.Get("nonexistent")
	assert.False(t, ok)
}

func TestGetExpired(t *testing.T) {
	c, clock := newTestCache(time.Hour)

	c.Set("key1", 42)
	clock.Advance(59 * time.Minute)
	_, ok := c.Get("key1")
	assert.True(t, ok)

	clock.Advance(time.Minute)
	_, ok = c.Get("key1")
	assert.False(t, ok, "entry should expire exactly at TTL")
}

func TestEntriesExpireIndependently(t *testing.T) {
	c, clock := newTestCache(time.Hour)

	c.Set("old", 1)
	clock.Advance(30 * time.Minute)
	c.Set("new", 2)
	clock.Advance(30 * time.Minute)

	_, ok := c.Get("old")
	assert.False(t, ok)
	v, ok := c.Get("new")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestCleanup(t *testing.T) {
	c, clock := newTestCache(time.Hour)

	c.Set("a", 1)
	c.Set("b", 2)
	clock.Advance(2 * time.Hour)
	c.Set("c", 3)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Cleanup())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, c.Cleanup())
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	c.Set("a", 1)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestStartCleanup_StopsWithContext(t *testing.T) {
	c := New[string, int](time.Millisecond)
	c.Set("a", 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.StartCleanup(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](time.Minute)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set(n, n*2)
			v, ok := c.Get(n)
			assert.True(t, ok)
			assert.Equal(t, n*2, v)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, c.Len())
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("Acme", ""), Key("  acme ", ""))
	assert.NotEqual(t, Key("Acme", ""), Key("Acme", "Engineer"))
	assert.Len(t, Key("Acme", "Engineer"), 32)
}
