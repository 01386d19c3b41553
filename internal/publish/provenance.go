package publish

import (
	"context"
	"strconv"
	"strings"

	"github.com/gitlive/gitlive/internal/errors"
	"github.com/gitlive/gitlive/internal/git"
	"github.com/gitlive/gitlive/internal/z0"
)

const provenanceMarker = "// GitLive"

var errNoProvenanceMarker = errors.New("no provenance marker in commit body")

// ProvenanceRecord is the parsed contents of one commit's "// GitLive"
// trailer.
type ProvenanceRecord struct {
	Commit      string
	Tag         string
	Date        string
	CommitCount int
}

// PublishedSet is the sourceFullSha -> liveCommitSha mapping recovered by
// scanning LIVE/main. Keys are compared case-insensitively.
type PublishedSet struct {
	entries       map[string]string
	lastTimestamp int64
}

// Has reports whether sourceSHA has already been published, returning
// the LIVE commit it was published as.
func (p *PublishedSet) Has(sourceSHA string) (string, bool) {
	sha, ok := p.entries[strings.ToLower(sourceSHA)]
	return sha, ok
}

// Len reports how many source commits have a recovered LIVE commit.
func (p *PublishedSet) Len() int {
	return len(p.entries)
}

// LastTimestamp is the maximum committer time observed across recovered
// entries, or zero if none were recovered.
func (p *PublishedSet) LastTimestamp() int64 {
	return p.lastTimestamp
}

// RecoverProvenance scans refs/remotes/LIVE/main newest-to-oldest,
// parsing each commit body's provenance trailer. A missing
// LIVE/main ref, or a commit with no parseable trailer, is skipped:
// only the initial seed commit a human placed on a virgin target is
// expected to lack one.
//
// The scan walks newest-first but always overwrites a prior sighting of
// the same source SHA, so the last write, the oldest, deepest commit
// carrying that SHA, is what survives, matching the "oldest entry wins
// on duplicates" rule without a second pass.
func RecoverProvenance(ctx context.Context, runner git.Runner) (*PublishedSet, error) {
	set := &PublishedSet{entries: map[string]string{}}

	out, ok := runner.TryRun(ctx, "log", "--pretty=format:%H %ct", "refs/remotes/LIVE/main")
	if !ok {
		return set, nil
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return set, nil
	}

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		liveSHA := fields[0]
		ct, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			continue
		}

		body, err := runner.Run(ctx, "log", "-1", "--format=%B", liveSHA)
		if err != nil {
			continue
		}
		rec, err := parseProvenance(body)
		if err != nil || rec.Commit == "" {
			continue
		}

		set.entries[strings.ToLower(rec.Commit)] = liveSHA
		if ct > set.lastTimestamp {
			set.lastTimestamp = ct
		}
	}

	return set, nil
}

// parseProvenance locates the "// GitLive" marker in body and parses the
// remainder as a Z0 document. The marker line itself is a Z0 comment, so
// the assignments that follow land directly on the document root.
func parseProvenance(body string) (ProvenanceRecord, error) {
	idx := strings.Index(body, provenanceMarker)
	if idx < 0 {
		return ProvenanceRecord{}, errNoProvenanceMarker
	}

	root, err := z0.Parse(body[idx:])
	if err != nil {
		return ProvenanceRecord{}, err
	}
	r := z0.NewReader(root)

	count, _ := strconv.Atoi(r.Get("commit-count").Optional("0"))
	return ProvenanceRecord{
		Commit:      r.Get("commit").Optional(""),
		Tag:         r.Get("tag").Optional(""),
		Date:        r.Get("date").Optional(""),
		CommitCount: count,
	}, nil
}
