package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataforall/internal/platform/config"
	"dataforall/pkg/platform/sentinel"
)

func TestNewWithoutURLKeepsMemoryMode(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)

	assert.NoError(t, c.Health(context.Background()))
	assert.NoError(t, c.Close())
	assert.Empty(t, c.Addr())
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{URL: "mysql://nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestNewReportsUnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Port 1 on loopback refuses connections.
	_, err := New(ctx, config.RedisConfig{
		URL:         "redis://:secret@127.0.0.1:1/0",
		DialTimeout: 200 * time.Millisecond,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	assert.NotContains(t, err.Error(), "secret")
}
