package publish

import "github.com/gitlive/gitlive/internal/errors"

// DecideStartIndex runs the mode state machine and returns the
// index into tags the publishing loop should resume from.
//
// A Repair run that finds nothing missing returns errors.ErrNothingToDo,
// which callers should treat as a benign zero-tags-published success,
// not a failure. An Incremental run that finds a gap in the published
// prefix returns a *errors.DivergenceError.
func DecideStartIndex(tags []SourceTag, published *PublishedSet, mode Mode) (int, error) {
	if mode == Nuke {
		return 0, nil
	}
	if published.Len() == 0 {
		return 0, nil
	}

	switch mode {
	case Repair:
		for i, t := range tags {
			if _, ok := published.Has(t.FullSHA); !ok {
				return i, nil
			}
		}
		return 0, errors.ErrNothingToDo

	case Incremental:
		lastIdx := -1
		for i, t := range tags {
			if _, ok := published.Has(t.FullSHA); ok {
				lastIdx = i
			}
		}
		for j := 0; j <= lastIdx; j++ {
			if _, ok := published.Has(tags[j].FullSHA); !ok {
				return 0, errors.NewDivergenceError(tags[j].Name)
			}
		}
		return lastIdx + 1, nil

	default:
		return 0, nil
	}
}
