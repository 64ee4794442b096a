package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "un-secreto-de-al-menos-32-bytes!"

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	c, err := Load("")
	require.NoError(t, err)

	require.Equal(t, ":8080", c.Server.Addr)
	require.Equal(t, ":9090", c.Server.MetricsAddr)
	require.Equal(t, "memory", c.Storage.Driver)
	require.Equal(t, "memory", c.Cache.Kind)
	require.Equal(t, 30*24*time.Hour, c.Auth.SessionTTL)
	require.Equal(t, 10*time.Minute, c.Auth.OTPTTL)
	require.Equal(t, 60*time.Second, c.Broker.CodeTTL)
	require.Equal(t, time.Hour, c.Broker.ExchangeTokenTTL)
	require.Equal(t, "sso_token", c.Auth.Cookie.Name)
	require.Equal(t, 10, c.Rate.Login.Limit)
	require.Equal(t, "1m", c.Rate.Login.Window)
	require.Equal(t, 2*time.Minute, c.Catalog.CacheTTL)
}

func TestLoadFromYAML(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	p := writeYAML(t, `
app:
  name: mi-sso
server:
  addr: ":9000"
auth:
  session_ttl: 12h
  otp_ttl: 5m
broker:
  code_ttl: 90s
`)
	c, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "mi-sso", c.App.Name)
	require.Equal(t, ":9000", c.Server.Addr)
	require.Equal(t, 12*time.Hour, c.Auth.SessionTTL)
	require.Equal(t, 5*time.Minute, c.Auth.OTPTTL)
	require.Equal(t, 90*time.Second, c.Broker.CodeTTL)
}

func TestEnvOverridesYAML(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SERVER_ADDR", ":7777")
	t.Setenv("SESSION_DURATION_DAYS", "7")
	t.Setenv("OTP_EXPIRY_MINUTES", "3")
	t.Setenv("AUTH_CODE_EXPIRY_SECONDS", "45")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "root@acme.com")

	p := writeYAML(t, `
server:
  addr: ":9000"
`)
	c, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, ":7777", c.Server.Addr)
	require.Equal(t, 7*24*time.Hour, c.Auth.SessionTTL)
	require.Equal(t, 3*time.Minute, c.Auth.OTPTTL)
	require.Equal(t, 45*time.Second, c.Broker.CodeTTL)
	require.Equal(t, "root@acme.com", c.Bootstrap.AdminEmail)
}

func TestValidateRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load("")
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "corto")
	_, err = Load("")
	require.Error(t, err, "secreto menor a 32 bytes")
}

func TestValidateStorageDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORAGE_DRIVER", "cassandra")
	_, err := Load("")
	require.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "")
	_, err = Load("")
	require.Error(t, err, "postgres sin dsn")
}

func TestProdForcesSecureCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("AUTH_COOKIE_SECURE", "false")

	c, err := Load("")
	require.NoError(t, err)
	require.True(t, c.Auth.Cookie.Secure)
}
