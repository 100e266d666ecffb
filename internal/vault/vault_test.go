package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	path, key, err := ParseRef("vault:secret/scanteia#db_password")
	require.NoError(t, err)
	assert.Equal(t, "secret/scanteia", path)
	assert.Equal(t, "db_password", key)

	for _, bad := range []string{
		"secret/scanteia#db_password",
		"vault:secret/scanteia",
		"vault:secret#key",
		"vault:secret/scanteia#",
	} {
		_, _, err := ParseRef(bad)
		assert.ErrorIs(t, err, ErrBadRef, bad)
	}
}

func TestSplitMount(t *testing.T) {
	mount, rel := splitMount("secret/scanteia/db")
	assert.Equal(t, "secret", mount)
	assert.Equal(t, "scanteia/db", rel)

	mount, rel = splitMount("secret")
	assert.Equal(t, "secret", mount)
	assert.Empty(t, rel)
}
