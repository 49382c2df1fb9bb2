package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("dam")
	require.NoError(t, err)

	assert.Equal(t, "dam", cfg.Service.Name)
	assert.Equal(t, 8080, cfg.Service.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenExpiry)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("TOKEN_EXPIRY", "2h")
	t.Setenv("OBJECT_STORE_USE_SSL", "true")

	cfg, err := Load("dam")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenExpiry)
	assert.True(t, cfg.ObjectStore.UseSSL)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "99999")

	_, err := Load("dam")
	require.Error(t, err)
}

func TestValidateDatabase(t *testing.T) {
	t.Setenv("POSTGRES_PASSWORD", "pw")

	cfg, err := Load("dam")
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateDatabase())

	cfg.Database.Password = ""
	assert.Error(t, cfg.ValidateDatabase())

	cfg.Database.Password = "pw"
	cfg.Database.MaxConns = 1
	cfg.Database.MinConns = 5
	assert.Error(t, cfg.ValidateDatabase())
}

func TestValidateObjectStore(t *testing.T) {
	cfg, err := Load("dam")
	require.NoError(t, err)

	// Defaults carry no endpoint or credentials
	assert.Error(t, cfg.ValidateObjectStore())

	cfg.ObjectStore.Endpoint = "minio:9000"
	cfg.ObjectStore.AccessKey = "key"
	cfg.ObjectStore.SecretKey = "secret"
	cfg.ObjectStore.Bucket = "assets"
	assert.NoError(t, cfg.ValidateObjectStore())
}

func TestValidateAuth(t *testing.T) {
	cfg, err := Load("dam")
	require.NoError(t, err)

	assert.Error(t, cfg.ValidateAuth())

	cfg.Auth.JWTSecret = "secret"
	assert.NoError(t, cfg.ValidateAuth())

	cfg.Auth.TokenExpiry = 0
	assert.Error(t, cfg.ValidateAuth())
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv("POSTGRES_PASSWORD", "pw")

	cfg, err := Load("dam")
	require.NoError(t, err)

	assert.Equal(t, "postgres://assetbay:pw@localhost:5432/assetbay?sslmode=disable", cfg.DatabaseURL())
}
