package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CacheSettings(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := load()
		require.NoError(t, err)
		assert.Equal(t, CacheModeCached, cfg.CacheMode)
		assert.Equal(t, 1024, cfg.CacheCapacity)
	})

	t.Run("valid capacity override", func(t *testing.T) {
		t.Setenv("CACHE_CAPACITY", "64")
		cfg, err := load()
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.CacheCapacity)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		for _, capacity := range []string{"0", "-1"} {
			t.Setenv("CACHE_CAPACITY", capacity)
			_, err := load()
			assert.Error(t, err)
		}
	})

	t.Run("rejects non-numeric capacity", func(t *testing.T) {
		t.Setenv("CACHE_CAPACITY", "lots")
		_, err := load()
		assert.Error(t, err)
	})

	t.Run("valid mode override", func(t *testing.T) {
		t.Setenv("CACHE_MODE", "strong")
		cfg, err := load()
		require.NoError(t, err)
		assert.Equal(t, CacheModeStrong, cfg.CacheMode)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Setenv("CACHE_MODE", "sometimes")
		_, err := load()
		assert.Error(t, err)
	})
}
