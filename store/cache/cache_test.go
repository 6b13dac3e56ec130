package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute})
	defer c.Close()

	_, ok := c.Get("missing")
	require.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", got)

	c.Delete("k")
	_, ok = c.Get("k")
	require.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute})
	defer c.Close()

	c.SetWithTTL("k", "v", 10*time.Millisecond)
	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	_, ok = c.Get("k")
	require.False(t, ok)
}

func TestCacheMaxItems(t *testing.T) {
	evicted := make(chan string, 1)
	c := New(Config{
		DefaultTTL: time.Minute,
		MaxItems:   1,
		OnEviction: func(key string, _ any) { evicted <- key },
	})
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)

	select {
	case key := <-evicted:
		require.Equal(t, "a", key)
	case <-time.After(time.Second):
		t.Fatal("eviction callback never fired")
	}

	_, ok := c.Get("b")
	require.True(t, ok)
}

func TestCacheSweep(t *testing.T) {
	c := New(Config{
		DefaultTTL:      10 * time.Millisecond,
		CleanupInterval: 10 * time.Millisecond,
	})
	defer c.Close()

	c.Set("k", "v")
	require.Eventually(t, func() bool {
		c.mu.RLock()
		defer c.mu.RUnlock()
		_, ok := c.items["k"]
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestCacheCloseIdempotent(t *testing.T) {
	c := New(Config{})
	c.Close()
	c.Close()
}
