package publish

import (
	"github.com/gitlive/gitlive/internal/logger"
	"github.com/gitlive/gitlive/internal/selector"
)

// Mode selects the sync strategy.
type Mode int

const (
	Incremental Mode = iota
	Repair
	Nuke
)

// String renders the mode the way log lines and the run summary do.
func (m Mode) String() string {
	switch m {
	case Incremental:
		return "incremental"
	case Repair:
		return "repair"
	case Nuke:
		return "nuke"
	default:
		return "unknown"
	}
}

// Options configures one Sync call. SourcePath and LiveURL are resolved
// by the caller; LiveURL is expected to already carry auth if any was
// configured (see internal/urlutil).
type Options struct {
	SourcePath string
	LiveURL    string
	Rules      []selector.Rule
	Mode       Mode
	DryRun     bool

	// WorkDir overrides the base directory a workspace is created under;
	// empty means os.TempDir().
	WorkDir string
}

// PublishedTag records one tag committed during a run.
type PublishedTag struct {
	SourceTag   string
	SourceSHA   string
	LiveSHA     string
	CommitCount int
}

// Result is what Sync returns on success (including the "nothing to do"
// and dry-run cases, which are successes with zero or unpushed tags).
type Result struct {
	Mode          Mode
	TagsPublished []PublishedTag
}

// nopLogger is a tiny seam so Engine never has to special-case a nil
// logger.
func nopLogger() logger.Logger {
	return logger.New("", false)
}
