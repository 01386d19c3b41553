package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAndIs(t *testing.T) {
	t.Parallel()

	base := ErrGitOperationFailed
	wrapped := Wrap(base, "checkout failed")

	assert.True(t, Is(wrapped, ErrGitOperationFailed))
	assert.Equal(t, "checkout failed: git operation failed", wrapped.Error())
}

func TestGitError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      *GitError
		expected string
	}{
		"with stderr": {
			err:      NewGitError("push", []string{"LIVE", "main"}, ErrGitOperationFailed, "remote rejected"),
			expected: "git push failed: remote rejected: git operation failed",
		},
		"without stderr": {
			err:      NewGitError("fetch", nil, ErrGitOperationFailed, ""),
			expected: "git fetch failed: git operation failed",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, tc.err.Error())
			assert.True(t, Is(tc.err, ErrGitOperationFailed))
		})
	}
}

func TestDivergenceError(t *testing.T) {
	t.Parallel()

	err := NewDivergenceError("live/2.0.0")
	require.True(t, Is(err, ErrDivergence))
	assert.Contains(t, err.Error(), "live/2.0.0")
	assert.Contains(t, err.Error(), "--repair")
}

func TestParseError(t *testing.T) {
	t.Parallel()

	err := NewParseError(12, "unexpected token")
	assert.Equal(t, "z0 parse error on line 12: unexpected token", err.Error())
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := NewConfigError("url", ErrInvalidConfiguration)
	assert.True(t, Is(err, ErrInvalidConfiguration))
	assert.Contains(t, err.Error(), "url")
}
