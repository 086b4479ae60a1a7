package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyEmbedsVersion(t *testing.T) {
	assert.Equal(t, "ticket-analytics:v1:heatmap?csp=AWS&year=2025", Key("v1", "heatmap", "csp=AWS&year=2025"))
	assert.NotEqual(t, Key("v1", "heatmap", ""), Key("v2", "heatmap", ""))
}

func TestNopCache(t *testing.T) {
	var c ResponseCache = Nop{}
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}))
	var out map[string]int
	hit, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	n, err := c.PurgeStale(ctx, "v1")
	require.NoError(t, err)
	assert.Zero(t, n)
}
