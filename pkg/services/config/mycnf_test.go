package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const myCnf = `
[client]
host = 127.0.0.1
port = 3306
user = root
password = root
database = stocks_analysis

[replica]
socket = /var/run/mysqld/mysqld.sock
user = reader
db = stocks_analysis

[nodb]
user = root
`

func writeMyCnf(t *testing.T) string {
	path := filepath.Join(t.TempDir(), ".my.cnf")
	require.NoError(t, os.WriteFile(path, []byte(myCnf), 0o600))
	return path
}

func TestRegistry_GetProfiles(t *testing.T) {
	registry, err := NewRegistry(writeMyCnf(t))
	require.NoError(t, err)

	profiles, err := registry.GetProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"client", "replica", "nodb"}, profiles)
}

func TestRegistry_GetDSN(t *testing.T) {
	registry, err := NewRegistry(writeMyCnf(t))
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		profile  string
		expected string
		err      string
	}{
		{profile: "client", expected: "root:root@tcp(127.0.0.1:3306)/stocks_analysis?parseTime=true"},
		{profile: "replica", expected: "reader@unix(/var/run/mysqld/mysqld.sock)/stocks_analysis?parseTime=true"},
		{profile: "nodb", err: "database is required"},
		{profile: "missing", err: "profile missing not found"},
	}

	for _, tc := range tests {
		t.Run(tc.profile, func(t *testing.T) {
			dsn, err := registry.GetDSN(ctx, tc.profile)
			if tc.err != "" {
				assert.ErrorContains(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, dsn)
		})
	}
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "absent.cnf"))
	assert.Error(t, err)
}
