package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_HOSTS", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "sqlite:///./seatrade.db", cfg.Database.URL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5, cfg.Submission.MaxPerMinute)
	assert.Empty(t, cfg.Submission.TrustedProxies)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG", "true")
	t.Setenv("ALLOWED_HOSTS", "https://a.example, https://b.example")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("ADMIN_NOTIFY_EMAIL", "sales@seatrade.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 15, cfg.Auth.TokenExpiryMinutes)
	assert.Equal(t, "sales@seatrade.example", cfg.Email.AdminNotify)
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.Submission.TrustedProxies)

	prefixes, err := cfg.Submission.TrustedProxyPrefixes()
	require.NoError(t, err)
	require.Len(t, prefixes, 2)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "192.168.1.10/32", prefixes[1].String())

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, proxy.internal")
	_, err = Load()
	assert.ErrorContains(t, err, "proxy.internal")
}

func TestLoad_InvalidExpiry(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_Driver(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"sqlite:///./seatrade.db", DriverSQLite},
		{":memory:", DriverSQLite},
		{"postgres://u:p@db:5432/app", DriverPostgres},
		{"postgresql://u@db/app", DriverPostgres},
		{"host=db port=5432 user=u dbname=app", DriverPostgres},
		{"mysql://u:p@db:3306/app", DriverMySQL},
	}
	for _, tt := range tests {
		c := DatabaseConfig{URL: tt.url}
		assert.Equal(t, tt.want, c.Driver(), tt.url)
	}
}

func TestDatabaseConfig_GetPostgresDSN(t *testing.T) {
	c := DatabaseConfig{URL: "postgresql://fish:s3cr:et@db.internal:6543/catch?sslmode=require"}
	assert.Equal(t,
		"host=db.internal port=6543 user=fish dbname=catch sslmode=require password=s3cr:et",
		c.GetPostgresDSN())

	c = DatabaseConfig{URL: "postgres://fish@db.internal"}
	assert.Equal(t, "host=db.internal port=5432 user=fish dbname=postgres sslmode=disable", c.GetPostgresDSN())

	raw := "host=db port=5432 user=u dbname=app"
	c = DatabaseConfig{URL: raw}
	assert.Equal(t, raw, c.GetPostgresDSN())
}

func TestDatabaseConfig_GetMySQLDSN(t *testing.T) {
	c := DatabaseConfig{URL: "mysql://fish:pw@db.internal/catch"}
	assert.Equal(t, "fish:pw@tcp(db.internal:3306)/catch?charset=utf8mb4&loc=UTC&parseTime=True", c.GetMySQLDSN())
}

func TestDatabaseConfig_GetSQLitePath(t *testing.T) {
	c := DatabaseConfig{URL: "sqlite:///./data/seatrade.db"}
	assert.Equal(t, "./data/seatrade.db", c.GetSQLitePath())

	c = DatabaseConfig{URL: "file:test.db"}
	assert.Equal(t, "file:test.db", c.GetSQLitePath())
}
