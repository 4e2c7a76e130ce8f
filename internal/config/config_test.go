package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
session:
  secret: "0123456789abcdef0123456789abcdef"
jwt:
  secret: "fedcba9876543210fedcba9876543210"
admin:
  username: admin
  password_hash: "$2a$10$abcdefghijklmnopqrstuuDqMaQ4lELjlcGxv3JrwrZIYg0n.2cX2"
`

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StoreTypeFile, cfg.Store.Type)
	assert.Equal(t, "data", cfg.Store.DataDir)
	assert.Equal(t, int64(16), cfg.Storage.MaxFileSize)
	assert.Equal(t, []string{"pdf", "png", "jpg", "jpeg", "doc", "docx"}, cfg.Storage.AllowedTypes)
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.RateLimit.LoginPerMinute)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_TYPE", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "impact")
	t.Setenv("DB_NAME", "impactecho")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StoreTypePostgres, cfg.Store.Type)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres://impact:@db:5432/impactecho?sslmode=disable", cfg.GetDatabaseConnectionString())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateRejects(t *testing.T) {
	t.Run("short session secret", func(t *testing.T) {
		_, err := Parse([]byte(`
session: {secret: short}
jwt: {secret: "fedcba9876543210fedcba9876543210"}
admin: {username: admin, password_hash: "$2a$10$x"}
`))
		assert.ErrorContains(t, err, "session secret")
	})

	t.Run("plaintext admin password", func(t *testing.T) {
		_, err := Parse([]byte(`
session: {secret: "0123456789abcdef0123456789abcdef"}
jwt: {secret: "fedcba9876543210fedcba9876543210"}
admin: {username: admin, password_hash: hunter2}
`))
		assert.ErrorContains(t, err, "bcrypt")
	})

	t.Run("postgres without host", func(t *testing.T) {
		_, err := Parse([]byte(minimalYAML + "store: {type: postgres}\n"))
		assert.ErrorContains(t, err, "database host")
	})

	t.Run("unknown store", func(t *testing.T) {
		_, err := Parse([]byte(minimalYAML + "store: {type: redis}\n"))
		assert.ErrorContains(t, err, "unknown store type")
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.Admin.Username)
}

func TestGetAccessLevel(t *testing.T) {
	assert.Equal(t, AccessPublic, GetAccessLevel("GET", "/api/v1/causes"))
	assert.Equal(t, AccessOrganization, GetAccessLevel("POST", "/api/v1/ngo/cause-requests"))
	assert.Equal(t, AccessAdmin, GetAccessLevel("POST", "/api/v1/admin/causes"))
	assert.Equal(t, AccessAnyone, GetAccessLevel("POST", "/api/v1/logout"))
	assert.Equal(t, AccessAdmin, GetAccessLevel("DELETE", "/api/v1/causes"))
}

func TestTrustedProxies(t *testing.T) {
	t.Run("env list", func(t *testing.T) {
		t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.10")
		cfg, err := Parse([]byte(minimalYAML))
		require.NoError(t, err)
		assert.Len(t, cfg.RateLimit.TrustedProxies, 2)
	})

	t.Run("invalid entry", func(t *testing.T) {
		_, err := Parse([]byte(minimalYAML + "rate_limit:\n  trusted_proxies: [\"proxy.local\"]\n"))
		assert.ErrorContains(t, err, "invalid trusted proxy")
	})
}

func TestParseProxy(t *testing.T) {
	prefix, err := ParseProxy("192.0.2.10")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.10/32", prefix.String())

	prefix, err = ParseProxy(" 10.1.2.3/8 ")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/8", prefix.String())

	prefix, err = ParseProxy("::1")
	require.NoError(t, err)
	assert.Equal(t, "::1/128", prefix.String())

	_, err = ParseProxy("10.0.0.0/33")
	assert.Error(t, err)
}
