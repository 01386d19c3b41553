package main

import gitliveerrors "github.com/gitlive/gitlive/internal/errors"

// exitCodeFor maps a Sync error onto the process's documented exit codes.
// ErrPublishStepFailed is checked ahead of ErrGitOperationFailed because
// a *PublishStepError's Unwrap exposes both (its underlying cause is
// usually a *GitError) and exit 4 is the more specific of the two.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case gitliveerrors.Is(err, gitliveerrors.ErrNotGitRepository):
		return 1
	case gitliveerrors.Is(err, gitliveerrors.ErrInvalidConfiguration):
		return 2
	case gitliveerrors.Is(err, gitliveerrors.ErrLiveUnreachable):
		return 3
	case gitliveerrors.Is(err, gitliveerrors.ErrPublishStepFailed):
		return 4
	case gitliveerrors.Is(err, gitliveerrors.ErrDivergence):
		return 5
	case gitliveerrors.Is(err, gitliveerrors.ErrGitOperationFailed):
		return 10
	default:
		return 11
	}
}
