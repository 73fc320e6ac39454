package config_test

import (
	"testing"

	"github.com/gymstack/gymstack/internal/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.GetPort())
	require.Equal(t, "GymStack", cfg.GetAppName())
	require.Equal(t, "./data", cfg.GetDataFolder())
	require.Equal(t, "DEV", cfg.GetEnv())
	require.False(t, cfg.IsProduction())
	require.False(t, cfg.TokenSecretConfigured())
	require.Equal(t, config.DefaultTokenSecret, cfg.GetTokenSecret())
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GYMSTACK_SERVER_PORT", "9090")
	t.Setenv("GYMSTACK_SERVER_ENV", "production")
	t.Setenv("GYMSTACK_SECURITY_TOKEN_SECRET", "from-env")

	cfg, err := config.New()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.GetPort())
	require.Equal(t, "PRODUCTION", cfg.GetEnv())
	require.True(t, cfg.IsProduction())
	require.True(t, cfg.TokenSecretConfigured())
	require.Equal(t, "from-env", cfg.GetTokenSecret())
}

func TestConfig_PortAlwaysHasColon(t *testing.T) {
	t.Setenv("GYMSTACK_SERVER_PORT", ":7000")

	cfg, err := config.New()
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.GetPort())
}

func TestConfig_OperatorConstants(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	require.Equal(t, config.SuperAdminEmail, cfg.GetSuperAdminEmail())
	require.Equal(t, config.SuperAdminPassword, cfg.GetSuperAdminPassword())
	require.Equal(t, config.SuperAdminName, cfg.GetSuperAdminName())
}
