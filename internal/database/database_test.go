package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSNInjectsPassword(t *testing.T) {
	out, err := BuildDSN("app@tcp(db:3306)/scanteia?loc=UTC", "s3cret")
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(out)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "s3cret", cfg.Passwd)
	assert.Equal(t, "scanteia", cfg.DBName)
	assert.True(t, cfg.ParseTime)
}

func TestBuildDSNKeepsExistingPassword(t *testing.T) {
	out, err := BuildDSN("app:inline@tcp(db:3306)/scanteia", "")
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(out)
	require.NoError(t, err)
	assert.Equal(t, "inline", cfg.Passwd)
}

func TestBuildDSNRejectsGarbage(t *testing.T) {
	_, err := BuildDSN("not a dsn", "")
	assert.Error(t, err)
}

func TestMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationFS, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrationFS, down)
		assert.NoError(t, err, "missing %s", down)
	}
}

func TestConfirmTokenComparesExactly(t *testing.T) {
	raw, err := fs.ReadFile(migrationFS, "migrations/000003_newsletter.up.sql")
	require.NoError(t, err)

	var column string
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "confirm_token ") {
			column = line
		}
	}
	require.NotEmpty(t, column)
	assert.Contains(t, column, "COLLATE ascii_bin", "tokens must not match case-insensitively")
}
