package workspace

import (
	"crypto/rand"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/gitlive/gitlive/internal/errors"
	"github.com/gitlive/gitlive/internal/git"
)

const (
	namePrefix      = "gitlive-publisher-"
	createAttempts  = 5
	cleanupAttempts = 5
	cleanupBackoff  = 200 * time.Millisecond
)

// Handle owns a workspace directory and the Runner bound to it. The zero
// value is not usable; construct with Create.
type Handle struct {
	dir    string
	runner git.Runner
}

// Create makes a uniquely named directory under baseDir (os.TempDir() if
// empty) named "gitlive-publisher-<random>". Collisions are vanishingly
// unlikely but handled the same defensive way gitbak's lock file retries a
// name it lost a race on.
func Create(baseDir string) (*Handle, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		name, err := randomName()
		if err != nil {
			return nil, errors.Wrap(err, "generating workspace name")
		}
		dir := filepath.Join(baseDir, name)
		if err := os.Mkdir(dir, 0o755); err != nil {
			if os.IsExist(err) {
				lastErr = err
				continue
			}
			return nil, errors.Wrap(err, "creating workspace directory")
		}
		return &Handle{dir: dir, runner: git.NewRunner(dir)}, nil
	}
	return nil, errors.Wrapf(lastErr, "failed to allocate a unique workspace directory after %d attempts", createAttempts)
}

// randomName hashes a block of crypto/rand bytes with xxhash to produce a
// short, filesystem-safe suffix. Collision resistance doesn't matter here,
// only speed and an even distribution, which is exactly xxhash's case.
func randomName() (string, error) {
	var seed [16]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%016x", namePrefix, xxhash.Sum64(seed[:])), nil
}

// Dir returns the workspace's filesystem path.
func (h *Handle) Dir() string {
	return h.dir
}

// Runner returns the git Runner bound to this workspace.
func (h *Handle) Runner() git.Runner {
	return h.runner
}

// Close removes the workspace directory. It always runs, even on a failed
// publish, and retries when the removal fails: packed git objects are
// marked read-only on some platforms, so each attempt restores owner-write
// permission on every child before trying the removal.
func (h *Handle) Close() error {
	var lastErr error
	for attempt := 0; attempt < cleanupAttempts; attempt++ {
		clearReadOnly(h.dir)
		if err := os.RemoveAll(h.dir); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if attempt < cleanupAttempts-1 {
			time.Sleep(cleanupBackoff)
		}
	}
	return errors.Wrapf(lastErr, "failed to remove workspace %q after %d attempts", h.dir, cleanupAttempts)
}

// clearReadOnly best-effort walks root and adds the owner-write bit back
// to every entry. Errors are ignored: a file RemoveAll can't reach, this
// can't reach either, and the caller's retry loop is the real recovery
// mechanism.
func clearReadOnly(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d == nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode()&0o200 == 0 {
			_ = os.Chmod(path, info.Mode()|0o200)
		}
		return nil
	})
}
