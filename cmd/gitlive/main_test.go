package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteVeryVerboseShorthandOnlyTouchesExactToken(t *testing.T) {
	t.Parallel()

	in := []string{"--url", "https://example.com/repo.git", "-vv", "--dry-run"}
	out := rewriteVeryVerboseShorthand(in)

	assert.Equal(t, []string{"--url", "https://example.com/repo.git", "--very-verbose", "--dry-run"}, out)
}

func TestRewriteVeryVerboseShorthandLeavesSingleDashVAlone(t *testing.T) {
	t.Parallel()

	out := rewriteVeryVerboseShorthand([]string{"-v", "--nuke"})
	assert.Equal(t, []string{"-v", "--nuke"}, out)
}
