package sshconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hay-kot/sshdeck/internal/core/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# global defaults
ServerAliveInterval 30

# --- production ---
# primary web node
Host web1
    HostName 10.0.0.1
    User deploy

Host web2 web2-alias
    HostName 10.0.0.2
    # pinned for the migration
    Port 2222

# ---- staging ----
Host db1 # shared database
    HostName db1.staging.internal
    IdentityFile ~/.ssh/a
    IdentityFile ~/.ssh/b
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	web1 := entries[0]
	assert.Equal(t, "web1", web1.Host)
	assert.Equal(t, []entry.Option{
		{Key: "HostName", Value: "10.0.0.1"},
		{Key: "User", Value: "deploy"},
	}, web1.Options)
	assert.Equal(t, []string{"primary web node"}, web1.Comments)
	assert.Equal(t, "production", web1.Tag)

	web2 := entries[1]
	assert.Equal(t, "web2 web2-alias", web2.Host)
	assert.Equal(t, []string{"pinned for the migration"}, web2.Comments)
	assert.Equal(t, "production", web2.Tag)
	assert.Len(t, web2.Options, 2)

	db1 := entries[2]
	assert.Equal(t, "db1", db1.Host)
	assert.Equal(t, "staging", db1.Tag)
	assert.Equal(t, []string{"shared database"}, db1.Comments)
	assert.Equal(t, []entry.Option{
		{Key: "HostName", Value: "db1.staging.internal"},
		{Key: "IdentityFile", Value: "~/.ssh/a"},
		{Key: "IdentityFile", Value: "~/.ssh/b"},
	}, db1.Options, "duplicate keys are kept in order")
}

func TestParse_GlobalBlockIgnored(t *testing.T) {
	entries, err := Parse(strings.NewReader("User root\nPort 22\n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParse_TagLineIsNotAComment(t *testing.T) {
	src := "Host a\n  User x\n# --- ops ---\nHost b\n  User y\n"

	entries, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.False(t, entries[0].HasTag())
	assert.Empty(t, entries[0].Comments)
	assert.Equal(t, "ops", entries[1].Tag)
	assert.Empty(t, entries[1].Comments)
}

func TestParse_TrailingCommentsStayOnLastHost(t *testing.T) {
	entries, err := Parse(strings.NewReader("Host a\n  User x\n# retired soon\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"retired soon"}, entries[0].Comments)
}

func TestLoad_GlobsFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config.d"), 0o755))

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("config", "# --- main ---\nHost main\n  HostName main.example.com\n")
	write("config.d/10-extra", "Host extra\n  HostName extra.example.com\n")

	entries, err := Load([]string{
		filepath.Join(dir, "config"),
		filepath.Join(dir, "config.d", "*"),
		filepath.Join(dir, "config"),
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "main", entries[0].Host)
	assert.Equal(t, "main", entries[0].Tag)
	assert.Equal(t, "extra", entries[1].Host)
	assert.False(t, entries[1].HasTag(), "tags do not carry across files")
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	entries, err := Load([]string{filepath.Join(t.TempDir(), "nope")})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".ssh", "config"), ExpandHome("~/.ssh/config"))
	assert.Equal(t, "/etc/ssh/ssh_config", ExpandHome("/etc/ssh/ssh_config"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}
