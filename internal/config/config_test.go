package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.GRPCPort)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, Development, cfg.Environment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.True(t, cfg.Environment().IsProduction())
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GRPC_PORT=7070\n"), 0o600))
	// godotenv sets variables directly; restore afterwards.
	t.Cleanup(func() { os.Unsetenv("GRPC_PORT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.GRPCPort)
}

func TestLoad_RejectsBadRate(t *testing.T) {
	t.Setenv("RATE_LIMIT", "0")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("production"))
	assert.Equal(t, Testing, ParseEnvironment("testing"))
	assert.Equal(t, Development, ParseEnvironment("staging-eu"))
	assert.Equal(t, Development, ParseEnvironment(""))
}

func TestConfig_SpannerTarget(t *testing.T) {
	cfg := &Config{SpannerDatabase: "projects/p1/instances/i1/databases/d1"}

	target, err := cfg.SpannerTarget()
	require.NoError(t, err)
	assert.Equal(t, SpannerTarget{Project: "p1", Instance: "i1", Database: "d1"}, target)
	assert.Equal(t, "projects/p1/instances/i1", target.InstancePath())
	assert.Equal(t, cfg.SpannerDatabase, target.DatabasePath())

	for _, bad := range []string{"", "projects/p1/instances/i1", "projects//instances/i1/databases/d1", "p/p1/i/i1/d/d1"} {
		_, err := (&Config{SpannerDatabase: bad}).SpannerTarget()
		assert.Error(t, err, bad)
	}
}
