package publish

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/gitlive/gitlive/internal/git"
)

// SourceTag is one live/* tag resolved from the source repository.
type SourceTag struct {
	// Name is the full tag name including the "live/" prefix.
	Name string
	// DisplayName is Name with the "live/" prefix stripped.
	DisplayName string
	// Timestamp is the tagged commit's committer time.
	Timestamp int64
	FullSHA   string
	ShortSHA  string
}

// CollectTags lists live/* tags and resolves each one's committer
// timestamp and SHAs. A tag whose timestamp can't be resolved is
// silently dropped: the record requires it. The result is sorted
// ascending by timestamp, ties broken by name.
func CollectTags(ctx context.Context, runner git.Runner) ([]SourceTag, error) {
	listing, err := runner.Run(ctx, "tag", "--list", "live/*")
	if err != nil {
		return nil, err
	}
	listing = strings.TrimSpace(listing)
	if listing == "" {
		return nil, nil
	}

	var tags []SourceTag
	for _, name := range strings.Split(listing, "\n") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		tsOut, ok := runner.TryRun(ctx, "log", "-1", "--format=%ct", name+"^{}")
		if !ok {
			continue
		}
		ts, err := strconv.ParseInt(strings.TrimSpace(tsOut), 10, 64)
		if err != nil {
			continue
		}

		full, ok := runner.TryRun(ctx, "rev-parse", name+"^{}")
		if !ok || full == "" {
			continue
		}

		short, ok := runner.TryRun(ctx, "rev-parse", "--short", name+"^{}")
		if !ok || short == "" {
			if len(full) >= 7 {
				short = full[:7]
			} else {
				short = full
			}
		}

		tags = append(tags, SourceTag{
			Name:        name,
			DisplayName: strings.TrimPrefix(name, "live/"),
			Timestamp:   ts,
			FullSHA:     strings.TrimSpace(full),
			ShortSHA:    strings.TrimSpace(short),
		})
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Timestamp != tags[j].Timestamp {
			return tags[i].Timestamp < tags[j].Timestamp
		}
		return tags[i].Name < tags[j].Name
	})
	return tags, nil
}
