package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsDesdeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://crm.example.com,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24*60, cfg.JWT.Expiration, "la expiración por defecto es de 24 horas")
	assert.Equal(t, "espacio-datos", cfg.JWT.Issuer)
	assert.Equal(t, []string{"http://localhost:3000", "https://crm.example.com"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.NATS.URL, "sin NATS_URL los eventos quedan desactivados")
}

func TestLoad_SinSecretFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_PuertoInvalidoUsaDefault(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("HTTP_PORT", "no-es-numero")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "crm", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/crm?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestLoad_Almacenamiento(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.App.Storage)

	t.Setenv("APP_STORAGE", "Memory")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.App.Storage)

	t.Setenv("APP_STORAGE", "sqlite")
	_, err = Load()
	assert.Error(t, err)
}
