package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldguard/pkg/config"
)

type defaultsConfig struct {
	PolicyFile string `env:"TEST_POLICY_FILE_DEFAULT" envDefault:"policies.yaml"`
	Port       int    `env:"TEST_PORT_DEFAULT" envDefault:"8080"`
	Debug      bool   `env:"TEST_DEBUG_DEFAULT" envDefault:"true"`
}

type overrideConfig struct {
	PolicyFile string `env:"TEST_POLICY_FILE_OVERRIDE" envDefault:"policies.yaml"`
	Port       int    `env:"TEST_PORT_OVERRIDE" envDefault:"8080"`
}

type requiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

type cachedConfig struct {
	Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
}

type envFileConfig struct {
	Value string `env:"TEST_ENV_FILE_VALUE"`
}

func TestLoad_Defaults(t *testing.T) {
	config.Reset()
	os.Unsetenv("TEST_POLICY_FILE_DEFAULT")
	os.Unsetenv("TEST_PORT_DEFAULT")
	os.Unsetenv("TEST_DEBUG_DEFAULT")

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "policies.yaml", cfg.PolicyFile)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Debug)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	config.Reset()
	t.Setenv("TEST_POLICY_FILE_OVERRIDE", "/etc/fieldguard/policies.yaml")
	t.Setenv("TEST_PORT_OVERRIDE", "9090")

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "/etc/fieldguard/policies.yaml", cfg.PolicyFile)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoad_MissingRequired(t *testing.T) {
	config.Reset()
	os.Unsetenv("TEST_REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestLoad_Cached(t *testing.T) {
	config.Reset()
	t.Setenv("TEST_CACHED_VALUE", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_CACHED_VALUE", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	config.Reset()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoadEnv(t *testing.T) {
	config.Reset()
	t.Setenv("TEST_ENV_FILE_VALUE", "")
	os.Unsetenv("TEST_ENV_FILE_VALUE")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_ENV_FILE_VALUE=from-file\n"), 0o600))

	require.NoError(t, config.LoadEnv(path))

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Value)

	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
