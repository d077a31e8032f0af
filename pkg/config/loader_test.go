package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dataguard/pkg/config"
)

type sourceConfig struct {
	BaseURL string `env:"DG_TEST_BASE_URL" envDefault:"https://api.example.com"`
	Limit   int    `env:"DG_TEST_LIMIT" envDefault:"10"`
	Enabled bool   `env:"DG_TEST_ENABLED" envDefault:"true"`
}

type requiredConfig struct {
	Key string `env:"DG_TEST_REQUIRED_KEY,required"`
}

type thresholdConfig struct {
	Threshold float64 `env:"DG_TEST_THRESHOLD" envDefault:"0.5"`
}

func (c *thresholdConfig) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.New("threshold must be within [0, 1]")
	}
	return nil
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()
		var cfg sourceConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://api.example.com", cfg.BaseURL)
		assert.Equal(t, 10, cfg.Limit)
		assert.True(t, cfg.Enabled)
	})

	t.Run("environment overrides", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("DG_TEST_LIMIT", "250")
		t.Setenv("DG_TEST_ENABLED", "false")

		var cfg sourceConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 250, cfg.Limit)
		assert.False(t, cfg.Enabled)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.ResetCache()
		var first sourceConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("DG_TEST_LIMIT", "99")
		var second sourceConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)

		config.ResetCache()
		var third sourceConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, 99, third.Limit)
	})

	t.Run("required variable missing", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("DG_TEST_REQUIRED_KEY")
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("validation runs before caching", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("DG_TEST_THRESHOLD", "1.5")
		var cfg thresholdConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrInvalidConfig)

		t.Setenv("DG_TEST_THRESHOLD", "0.2")
		require.NoError(t, config.Load(&cfg))
		assert.InDelta(t, 0.2, cfg.Threshold, 1e-9)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[sourceConfig](nil), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	config.ResetCache()
	os.Unsetenv("DG_TEST_REQUIRED_KEY")
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DG_TEST_REQUIRED_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DG_TEST_REQUIRED_KEY") })

	require.NoError(t, config.LoadEnv(path))
	config.ResetCache()
	var cfg requiredConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Key)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(dir, "missing.env")), config.ErrLoadingEnvFile)
	assert.NoError(t, config.LoadEnv())
}
