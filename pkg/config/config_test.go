package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.True(t, cfg.Search.RPCEnabled)
	assert.Equal(t, "search_documents", cfg.Search.RPCName)
	assert.Equal(t, 2*time.Second, cfg.Search.PrimaryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Search.FallbackTimeout)
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, 50, cfg.Search.MaxLimit)
	assert.Equal(t, 90*24*time.Hour, cfg.FailedSearch.Retention)
	assert.Equal(t, "0 3 * * *", cfg.FailedSearch.PruneSchedule)
	assert.False(t, cfg.Redis.Enabled)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SEARCH_PRIMARY_TIMEOUT", "750ms")
	t.Setenv("SEARCH_CACHE_TTL", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://examhub.lk/, ,http://localhost:5173")
	t.Setenv("SEARCH_RPC_ENABLED", "false")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, 750*time.Millisecond, cfg.Search.PrimaryTimeout)
	assert.Equal(t, time.Minute, cfg.Search.CacheTTL)
	assert.Equal(t, []string{"https://examhub.lk/", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Search.RPCEnabled)
}
