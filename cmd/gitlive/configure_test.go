package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitliveerrors "github.com/gitlive/gitlive/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gitlive.z0")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveMissingConfigFileIsNotAnError(t *testing.T) {
	t.Parallel()

	root, err := loadConfigRoot(filepath.Join(t.TempDir(), "does-not-exist.z0"))
	require.NoError(t, err)
	assert.Nil(t, root)
}

func TestResolveFailsWithoutAnyURL(t *testing.T) {
	t.Parallel()

	o := &Options{ConfigPath: filepath.Join(t.TempDir(), "missing.z0")}
	_, err := resolve(o)
	require.Error(t, err)
	assert.True(t, gitliveerrors.Is(err, gitliveerrors.ErrInvalidConfiguration))
}

func TestResolveCLIFlagWinsOverConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "url = https://file-configured.example/repo.git\n")
	o := &Options{ConfigPath: path, URL: "https://flag-configured.example/repo.git"}

	target, err := resolve(o)
	require.NoError(t, err)
	assert.Equal(t, "https://flag-configured.example/repo.git", target.LiveURL)
}

func TestResolveAppliesAuthAndFileSelectionRules(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "url = https://example.com/repo.git\nfiles:\n# = + *.md\n# = - secret.txt\n")
	o := &Options{ConfigPath: path, User: "bot", Password: "tok"}

	target, err := resolve(o)
	require.NoError(t, err)
	assert.Contains(t, target.LiveURL, "bot:tok@")
	require.Len(t, target.Rules, 2)
}

func TestResolveFallsBackToLegacyPublicURLKey(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "public-url = https://legacy.example/repo.git\n")
	o := &Options{ConfigPath: path}

	target, err := resolve(o)
	require.NoError(t, err)
	assert.Equal(t, "https://legacy.example/repo.git", target.LiveURL)
}
