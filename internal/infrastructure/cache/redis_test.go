package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Port 1 refuses connections, so every command fails fast.
const unreachable = "127.0.0.1:1"

func TestPingUnreachable(t *testing.T) {
	c := NewRedisCache(unreachable, "", 0)
	rc := c.(*RedisCache)
	t.Cleanup(func() { _ = rc.Close() })

	assert.Error(t, c.Ping(context.Background()))
	assert.Error(t, rc.Connect(context.Background()))
}

func TestPingWithoutClient(t *testing.T) {
	rc := &RedisCache{}
	require.Error(t, rc.Ping(context.Background()))
	require.NoError(t, rc.Close())
}

func TestDeleteWithoutKeysIsNoop(t *testing.T) {
	c := NewRedisCache(unreachable, "", 0)
	t.Cleanup(func() { _ = c.(*RedisCache).Close() })

	assert.NoError(t, c.Delete(context.Background()))
}
