package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokechain-api/internal/redis"
)

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.NoError(t, redis.Ping(context.Background(), client, time.Second))

	mr.Close()
	assert.Error(t, redis.Ping(context.Background(), client, 200*time.Millisecond))
}
