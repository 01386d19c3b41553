package publish

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitlive/gitlive/internal/git"
)

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

func initPlainRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "--quiet")
	runGit(t, dir, "config", "user.email", "dev@example.com")
	runGit(t, dir, "config", "user.name", "Dev")
	return dir
}

func commitFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	runGit(t, dir, "add", name)
	runGit(t, dir, "commit", "--quiet", "-m", "add "+name)
	return runGit(t, dir, "rev-parse", "HEAD")
}

// writeAndAddFile writes name under dir and stages it, without committing,
// so a caller can add several files to one commit.
func writeAndAddFile(t *testing.T, dir, name, content string) error {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		return err
	}
	runGit(t, dir, "add", name)
	return nil
}

func initBareRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "--bare", "--quiet")
	return dir
}

// seedMain pushes a single empty commit to bareDir's main branch from a
// disposable clone, the way the test-plan's "LIVE initialized with one
// unrelated empty commit" fixtures are built.
func seedMain(t *testing.T, bareDir string) {
	t.Helper()
	work := t.TempDir()
	runGit(t, work, "init", "--quiet")
	runGit(t, work, "config", "user.email", "seed@example.com")
	runGit(t, work, "config", "user.name", "Seed")
	runGit(t, work, "commit", "--quiet", "--allow-empty", "-m", "seed")
	runGit(t, work, "branch", "-M", "main")
	runGit(t, work, "remote", "add", "origin", bareDir)
	runGit(t, work, "push", "--quiet", "origin", "main")
}

// seedStrayBranch gives an otherwise-virgin bare repo a non-main,
// non-tag ref so `git ls-remote` resolves to a nonempty response: a
// repo that exists and is reachable, but carries no main branch or tags
// yet, distinct from a remote that can't be resolved at all.
func seedStrayBranch(t *testing.T, bareDir string) {
	t.Helper()
	work := t.TempDir()
	runGit(t, work, "init", "--quiet")
	runGit(t, work, "config", "user.email", "seed@example.com")
	runGit(t, work, "config", "user.name", "Seed")
	runGit(t, work, "commit", "--quiet", "--allow-empty", "-m", "placeholder")
	runGit(t, work, "branch", "-M", "placeholder")
	runGit(t, work, "remote", "add", "origin", bareDir)
	runGit(t, work, "push", "--quiet", "origin", "placeholder")
}

// liveFileContent clones bareDir at ref and returns name's contents,
// mirroring the e2e scenarios' "checking out <tag> shows ..." assertions.
func liveFileContent(t *testing.T, bareDir, ref, name string) (string, bool) {
	t.Helper()
	work := t.TempDir()
	runGit(t, work, "init", "--quiet")
	runGit(t, work, "remote", "add", "origin", bareDir)
	runGit(t, work, "fetch", "--quiet", "origin", "--tags")
	cmd := exec.Command("git", "show", ref+":"+name)
	cmd.Dir = work
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

func newRunner(dir string) git.Runner {
	return git.NewRunner(dir)
}
