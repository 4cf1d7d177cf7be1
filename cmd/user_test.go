package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestUserCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	db := filepath.Join(t.TempDir(), "nested", "users.db")

	out, err := run(t, "hunter22\n", "user", "add", "Ann", "ann@example.com", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Ann <ann@example.com>")

	_, err = run(t, "hunter22\n", "user", "add", "Ann", "ann@example.com", "--db", db)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "pw\n", "user", "add", "Bob", "not-an-email", "--db", db)
	assert.ErrorContains(t, err, "register")

	out, err = run(t, "", "user", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "ann@example.com")

	out, err = run(t, "", "user", "drop", "ann@example.com", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Re-run with --force")

	out, err = run(t, "", "user", "drop", "ann@example.com", "--force", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted: ann@example.com")

	out, err = run(t, "", "user", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No users registered.")
}
