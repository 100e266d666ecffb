package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetKV(_ context.Context, path, key string, _ time.Duration) (string, error) {
	v, ok := f[path+"#"+key]
	if !ok {
		return "", errors.New("no such secret")
	}
	return v, nil
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "conf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(body), 0o644))
	return root
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	root := writeYAML(t, `
database:
  dsn: "app@tcp(127.0.0.1:3306)/scanteia?parseTime=true"
membership:
  notify_to: "office@example.com"
`)

	cfg, err := LoadFrom(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.ListenAddr)
	assert.Equal(t, 4, cfg.Membership.MinChildAge)
	assert.Equal(t, 72*time.Hour, cfg.Newsletter.ConfirmTTL)
	assert.Equal(t, "log", cfg.Mail.Backend)
	assert.Equal(t, filepath.Join(root, "logs"), cfg.Log.Dir)
	assert.Same(t, cfg, Get())
}

func TestLoadFromEnvOverride(t *testing.T) {
	root := writeYAML(t, `
database:
  dsn: "app@tcp(127.0.0.1:3306)/scanteia"
`)
	t.Setenv("SCANTEIA_HTTP__LISTEN_ADDR", "127.0.0.1:9090")
	t.Setenv("SCANTEIA_NEWSLETTER__CONFIRM_TTL", "24h")

	cfg, err := LoadFrom(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.ListenAddr)
	assert.Equal(t, 24*time.Hour, cfg.Newsletter.ConfirmTTL)
}

func TestLoadFromResolvesVaultRefs(t *testing.T) {
	root := writeYAML(t, `
database:
  dsn: "app@tcp(127.0.0.1:3306)/scanteia"
  password: "vault:secret/scanteia#db_password"
`)
	cfg, err := LoadFrom(context.Background(), root, fakeSecrets{
		"secret/scanteia#db_password": "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	root := writeYAML(t, `
database:
  dsn: ""
media:
  backend: "ftp"
`)
	_, err := LoadFrom(context.Background(), root, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Database.DSN")
	assert.Contains(t, err.Error(), "Config.Media.Backend")
}

func TestLoadFromVaultRefWithoutSource(t *testing.T) {
	root := writeYAML(t, `
database:
  dsn: "app@tcp(127.0.0.1:3306)/scanteia"
  password: "vault:secret/scanteia#db_password"
`)
	_, err := LoadFrom(context.Background(), root, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.password")
}
