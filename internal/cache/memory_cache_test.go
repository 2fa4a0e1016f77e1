package cache

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/catalog-browser/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTestData struct {
	Field1 string `json:"field1"`
	Items  []int  `json:"items"`
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func setupMemory(t *testing.T) (*memoryCache, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	return newMemoryCache(&config.CacheConfig{DefaultTTL: time.Minute}, clock.Now), clock
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - round trip", func(t *testing.T) {
		// Arrange
		c, _ := setupMemory(t)
		value := memoryTestData{Field1: "a", Items: []int{1, 2}}

		// Act
		require.NoError(t, c.Set(ctx, "k", value, time.Minute))

		var got memoryTestData
		found, err := c.Get(ctx, "k", &got)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, got)
	})

	t.Run("Success - stored value is isolated from caller", func(t *testing.T) {
		// Arrange
		c, _ := setupMemory(t)
		value := memoryTestData{Items: []int{1, 2}}
		require.NoError(t, c.Set(ctx, "k", value, time.Minute))

		// Act
		value.Items[0] = 99

		var got memoryTestData
		_, err := c.Get(ctx, "k", &got)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got.Items)
	})

	t.Run("Success - miss", func(t *testing.T) {
		c, _ := setupMemory(t)

		var got memoryTestData
		found, err := c.Get(ctx, "missing", &got)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, got)
	})

	t.Run("Success - entry expires after ttl", func(t *testing.T) {
		// Arrange
		c, clock := setupMemory(t)
		require.NoError(t, c.Set(ctx, "k", memoryTestData{Field1: "x"}, 10*time.Second))

		// Act
		clock.Advance(9 * time.Second)
		var got memoryTestData
		foundBefore, _ := c.Get(ctx, "k", &got)

		clock.Advance(time.Second)
		foundAfter, err := c.Get(ctx, "k", &got)

		// Assert
		require.NoError(t, err)
		assert.True(t, foundBefore)
		assert.False(t, foundAfter)
		assert.Equal(t, 0, c.len())
	})

	t.Run("Success - default ttl when ttl<=0", func(t *testing.T) {
		c, clock := setupMemory(t)
		require.NoError(t, c.Set(ctx, "k", "v", 0))

		clock.Advance(59 * time.Second)
		var got string
		found, _ := c.Get(ctx, "k", &got)
		assert.True(t, found)

		clock.Advance(time.Second)
		found, _ = c.Get(ctx, "k", &got)
		assert.False(t, found)
	})

	t.Run("Success - set sweeps expired entries", func(t *testing.T) {
		c, clock := setupMemory(t)
		require.NoError(t, c.Set(ctx, "old", "v", time.Second))

		clock.Advance(2 * time.Second)
		require.NoError(t, c.Set(ctx, "new", "v", time.Minute))

		assert.Equal(t, 1, c.len())
	})

	t.Run("Failure - marshal error", func(t *testing.T) {
		c, _ := setupMemory(t)

		err := c.Set(ctx, "k", make(chan int), time.Minute)

		require.Error(t, err)
		var jsonErr *json.UnsupportedTypeError
		assert.ErrorAs(t, err, &jsonErr)
	})

	t.Run("Failure - unmarshal error", func(t *testing.T) {
		c, _ := setupMemory(t)
		require.NoError(t, c.Set(ctx, "k", "not a struct", time.Minute))

		var got memoryTestData
		found, err := c.Get(ctx, "k", &got)

		require.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "failed to unmarshal cache data for key k")
	})

	t.Run("Failure - cancelled context", func(t *testing.T) {
		c, _ := setupMemory(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		assert.ErrorIs(t, c.Set(cancelled, "k", "v", time.Minute), context.Canceled)
		_, err := c.Get(cancelled, "k", new(string))
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, c.Ping(cancelled), context.Canceled)
	})
}

func TestMemoryCache_DeleteAndClose(t *testing.T) {
	ctx := t.Context()
	c, _ := setupMemory(t)

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))

	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "missing"))
	assert.Equal(t, 1, c.len())

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Close())
	assert.Equal(t, 0, c.len())
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := t.Context()
	c := NewMemoryCache(&config.CacheConfig{DefaultTTL: time.Minute})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := SessionKey(string(rune('a' + i)))
			_ = c.Set(ctx, key, i, 0)
			var got int
			_, _ = c.Get(ctx, key, &got)
		}()
	}
	wg.Wait()

	var got int
	found, err := c.Get(ctx, SessionKey("a"), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, got)
}
