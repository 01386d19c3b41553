package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitlive/gitlive/internal/z0"
)

func parseDoc(t *testing.T, doc string) *z0.Node {
	t.Helper()
	root, err := z0.Parse(doc)
	require.NoError(t, err)
	return root
}

func TestParseCLIArgs(t *testing.T) {
	t.Parallel()
	got := ParseCLIArgs([]string{"--url=https://example.com/repo.git", "--dry-run", "positional", "--user=alice"})
	assert.Equal(t, map[string]string{
		"url":  "https://example.com/repo.git",
		"user": "alice",
	}, got)
}

func TestPrecedenceCLIOverEnvOverZ0(t *testing.T) {
	t.Parallel()
	root := parseDoc(t, "url = https://z0.example.com/repo.git\n")
	r := New(
		map[string]string{"url": "https://cli.example.com/repo.git"},
		[]string{"GITLIVE_URL=https://env.example.com/repo.git"},
		root,
	)
	url, ok := r.URL()
	require.True(t, ok)
	assert.Equal(t, "https://cli.example.com/repo.git", url)
}

func TestEnvWinsOverZ0WhenNoCLI(t *testing.T) {
	t.Parallel()
	root := parseDoc(t, "url = https://z0.example.com/repo.git\n")
	r := New(nil, []string{"GITLIVE_URL=https://env.example.com/repo.git"}, root)
	url, ok := r.URL()
	require.True(t, ok)
	assert.Equal(t, "https://env.example.com/repo.git", url)
}

func TestZ0FallsThroughWhenNoCLIOrEnv(t *testing.T) {
	t.Parallel()
	root := parseDoc(t, "url = https://z0.example.com/repo.git\n")
	r := New(nil, nil, root)
	url, ok := r.URL()
	require.True(t, ok)
	assert.Equal(t, "https://z0.example.com/repo.git", url)
}

func TestURLFallsBackToLegacyPublicURLKey(t *testing.T) {
	t.Parallel()
	root := parseDoc(t, "public-url = https://legacy.example.com/repo.git\n")
	r := New(nil, nil, root)
	url, ok := r.URL()
	require.True(t, ok)
	assert.Equal(t, "https://legacy.example.com/repo.git", url)
}

func TestPasswordNeverReadFromZ0(t *testing.T) {
	t.Parallel()
	root := parseDoc(t, "password = should-not-be-used\n")
	r := New(nil, nil, root)
	_, ok := r.Password()
	assert.False(t, ok)
}

func TestPasswordReadableFromCLIAndEnv(t *testing.T) {
	t.Parallel()
	r := New(map[string]string{"password": "cli-secret"}, nil, nil)
	got, ok := r.Password()
	require.True(t, ok)
	assert.Equal(t, "cli-secret", got)

	r2 := New(nil, []string{"GITLIVE_PASSWORD=env-secret"}, nil)
	got2, ok := r2.Password()
	require.True(t, ok)
	assert.Equal(t, "env-secret", got2)
}

func TestEnvLookupFallsBackToCaseInsensitiveScan(t *testing.T) {
	t.Parallel()
	r := New(nil, []string{"gitlive_user=someone"}, nil)
	got, ok := r.User()
	require.True(t, ok)
	assert.Equal(t, "someone", got)
}

func TestFilesReadDirectlyFromZ0RegardlessOfCLI(t *testing.T) {
	t.Parallel()
	root := parseDoc(t, "files:\n# = + *.md\n# = - secret.txt\n")
	r := New(map[string]string{"files": "ignored"}, nil, root)
	assert.Equal(t, []string{"+ *.md", "- secret.txt"}, r.Files())
}

func TestFilesEmptyWhenAbsent(t *testing.T) {
	t.Parallel()
	r := New(nil, nil, nil)
	assert.Empty(t, r.Files())
}
