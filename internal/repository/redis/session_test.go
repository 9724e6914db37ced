package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospiflow/internal/config"
	"github.com/jwalitptl/hospiflow/internal/repository"
)

func newTestRepository(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr(), PoolSize: 2})
	require.NoError(t, err)

	r := NewSessionRepository(client)
	t.Cleanup(func() { r.Close() })
	return r, mr
}

func TestSessionRepository(t *testing.T) {
	r, mr := newTestRepository(t)
	ctx := context.Background()
	key := "hospiflow_user:abc"

	require.NoError(t, r.Save(ctx, key, []byte(`{"id":"1"}`), time.Minute))
	assert.Equal(t, time.Minute, mr.TTL(key))

	v, err := r.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(v))

	removed, err := r.Delete(ctx, key)
	require.NoError(t, err)
	assert.True(t, removed)
	_, err = r.Load(ctx, key)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	removed, err = r.Delete(ctx, key)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSessionRecordExpires(t *testing.T) {
	r, mr := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "hospiflow_user:ttl", []byte(`{}`), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := r.Load(ctx, "hospiflow_user:ttl")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPingFailsWhenServerStops(t *testing.T) {
	r, mr := newTestRepository(t)
	require.NoError(t, r.Ping(context.Background()))

	mr.Close()
	assert.Error(t, r.Ping(context.Background()))
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient(context.Background(), config.RedisConfig{URL: "not-a-url"})
	assert.Error(t, err)
}
