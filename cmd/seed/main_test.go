package main

import (
	"context"
	"testing"

	"github.com/oysloe/oysloe-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingCache_Disabled(t *testing.T) {
	cache, closeCache, err := pricingCache(context.Background(), &config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, cache)
	require.NotNil(t, closeCache)
	closeCache()
}

func TestPricingCache_EnabledButUnreachable(t *testing.T) {
	cfg := &config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1"}

	cache, _, err := pricingCache(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, cache)
	assert.Contains(t, err.Error(), "pricing cache cannot be invalidated")
}
