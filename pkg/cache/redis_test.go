package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examhub-lk/examhub-api/pkg/config"
)

func TestOptions(t *testing.T) {
	opts := Options(config.RedisConfig{
		Host:        "cache.internal",
		Port:        6380,
		DB:          2,
		PoolSize:    15,
		DialTimeout: time.Second,
		IOTimeout:   250 * time.Millisecond,
	})
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 15, opts.PoolSize)
	assert.Equal(t, 250*time.Millisecond, opts.ReadTimeout)
	assert.Equal(t, 250*time.Millisecond, opts.WriteTimeout)
}

func TestNewRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	client, err := NewRedis(ctx, config.RedisConfig{
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 100 * time.Millisecond,
		IOTimeout:   100 * time.Millisecond,
	}, nil)
	require.Error(t, err)
	assert.Nil(t, client)
}
