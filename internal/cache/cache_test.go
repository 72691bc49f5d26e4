package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Total int64 `json:"total"`
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Total: 3}, time.Minute))

	var got payload
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.DeletePrefix(ctx, "k"))
}

// TestRedis runs against a live server when REDIS_ADDR is set.
func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()

	r, err := NewRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"))
	require.NoError(t, err)
	defer r.Close()

	prefix := "civicpulse-test:" + time.Now().Format("150405.000000") + ":"
	require.NoError(t, r.Set(ctx, prefix+"a", payload{Total: 7}, time.Minute))
	require.NoError(t, r.Set(ctx, prefix+"b", payload{Total: 9}, time.Minute))

	var got payload
	hit, err := r.Get(ctx, prefix+"a", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(7), got.Total)

	require.NoError(t, r.DeletePrefix(ctx, prefix))
	hit, err = r.Get(ctx, prefix+"b", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
