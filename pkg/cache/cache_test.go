package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }
func newTestCache(capacity int, ttl time.Duration) (*LRUCache, *clock) {
	clk := &clock{t: time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache(capacity, ttl)
	c.now = clk.now
	return c, clk
}

func TestLRUCache(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		actions func(t *testing.T, c *LRUCache, clk *clock)
	}{
		{
			name: "set and get within ttl",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "order-a", []byte("1"))
				clk.advance(59 * time.Second)
				v, ok := c.Get(ctx, "order-a")
				assert.True(t, ok)
				assert.Equal(t, []byte("1"), v)
			},
		},
		{
			name: "expired entry is a miss and is dropped",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "order-a", []byte("1"))
				clk.advance(time.Minute)
				_, ok := c.Get(ctx, "order-a")
				assert.False(t, ok)
				assert.Equal(t, 0, c.Size())
			},
		},
		{
			name: "least recently read is evicted",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "order-a", []byte("1"))
				c.Set(ctx, "order-b", []byte("2"))
				_, _ = c.Get(ctx, "order-a")
				c.Set(ctx, "order-c", []byte("3"))

				_, ok := c.Get(ctx, "order-b")
				assert.False(t, ok)
				_, ok = c.Get(ctx, "order-a")
				assert.True(t, ok)
				_, ok = c.Get(ctx, "order-c")
				assert.True(t, ok)
			},
		},
		{
			name: "overwrite refreshes ttl",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "order-a", []byte("1"))
				clk.advance(40 * time.Second)
				c.Set(ctx, "order-a", []byte("2"))
				clk.advance(40 * time.Second)
				v, ok := c.Get(ctx, "order-a")
				assert.True(t, ok)
				assert.Equal(t, []byte("2"), v)
			},
		},
		{
			name: "delete removes key",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "order-a", []byte("1"))
				c.Set(ctx, "order-b", []byte("2"))
				c.Delete(ctx, "order-a")
				c.Delete(ctx, "missing")
				_, ok := c.Get(ctx, "order-a")
				assert.False(t, ok)
				assert.Equal(t, 1, c.Size())
			},
		},
		{
			name: "cached bytes are not shared with callers",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				in := []byte("1")
				c.Set(ctx, "order-a", in)
				in[0] = 'x'

				out, _ := c.Get(ctx, "order-a")
				out[0] = 'y'

				v, _ := c.Get(ctx, "order-a")
				assert.Equal(t, []byte("1"), v)
			},
		},
		{
			name: "janitor pass removes only expired entries",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "order-a", []byte("1"))
				clk.advance(30 * time.Second)
				c.Set(ctx, "order-b", []byte("2"))
				clk.advance(30 * time.Second)

				assert.Equal(t, 1, c.removeExpired())
				_, ok := c.Get(ctx, "order-b")
				assert.True(t, ok)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, clk := newTestCache(2, time.Minute)
			tc.actions(t, c, clk)
		})
	}
}

func TestLRUCache_Metrics(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(1, time.Minute)

	hits := testutil.ToFloat64(lookups.WithLabelValues("lru", "hit"))
	misses := testutil.ToFloat64(lookups.WithLabelValues("lru", "miss"))
	capacity := testutil.ToFloat64(evictions.WithLabelValues("capacity"))

	c.Set(ctx, "order-a", []byte("1"))
	_, _ = c.Get(ctx, "order-a")
	_, _ = c.Get(ctx, "order-b")
	c.Set(ctx, "order-b", []byte("2"))

	assert.Equal(t, hits+1, testutil.ToFloat64(lookups.WithLabelValues("lru", "hit")))
	assert.Equal(t, misses+1, testutil.ToFloat64(lookups.WithLabelValues("lru", "miss")))
	assert.Equal(t, capacity+1, testutil.ToFloat64(evictions.WithLabelValues("capacity")))
}

func TestLRUCache_StartStopsWithContext(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Start(ctx))
	cancel()
}
