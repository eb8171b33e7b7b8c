package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisOptions(t *testing.T) {
	t.Run("url wins", func(t *testing.T) {
		opts, err := redisOptions(RedisConfig{URL: "redis://cache:6380/2", Addr: "ignored:1", Password: "p"})
		require.NoError(t, err)
		assert.Equal(t, "cache:6380", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, "p", opts.Password)
	})

	t.Run("discrete fields", func(t *testing.T) {
		opts, err := redisOptions(RedisConfig{Addr: "localhost:6379", DB: 1})
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", opts.Addr)
		assert.Equal(t, 1, opts.DB)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := redisOptions(RedisConfig{URL: "http://nope"})
		assert.Error(t, err)
	})
}
