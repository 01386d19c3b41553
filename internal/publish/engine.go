package publish

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gitlive/gitlive/internal/errors"
	"github.com/gitlive/gitlive/internal/git"
	"github.com/gitlive/gitlive/internal/logger"
	"github.com/gitlive/gitlive/internal/selector"
	"github.com/gitlive/gitlive/internal/workspace"
)

const (
	committerEmail = "gitlive@transient.local"
	committerName  = "GitLive Publisher"
)

// Engine runs one sync end to end: workspace setup, provenance recovery,
// tag collection, the start-index decision, the publishing loop, and the
// push phase, cleaning up its workspace on every exit path.
type Engine struct {
	opts   Options
	logger logger.Logger
	clock  func() time.Time
	pid    int
}

// New creates an Engine. A nil logger falls back to one writing to
// stdout/stderr with no file sink.
func New(opts Options, log logger.Logger) *Engine {
	if log == nil {
		log = nopLogger()
	}
	return &Engine{opts: opts, logger: log, clock: time.Now, pid: os.Getpid()}
}

// Sync performs one publish run and returns its Result.
func (e *Engine) Sync(ctx context.Context) (*Result, error) {
	ws, err := workspace.Create(e.opts.WorkDir)
	if err != nil {
		return nil, errors.Wrap(err, "creating workspace")
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			e.logger.Warning("workspace cleanup failed: %v", cerr)
		}
	}()

	runner := ws.Runner()

	var tmpBranch string
	defer func() {
		e.cleanupBranches(ctx, runner, tmpBranch)
	}()

	if err := e.setupWorkspace(ctx, runner); err != nil {
		return nil, err
	}

	published, err := RecoverProvenance(ctx, runner)
	if err != nil {
		return nil, errors.Wrap(err, "recovering provenance")
	}

	tags, err := CollectTags(ctx, runner)
	if err != nil {
		return nil, errors.Wrap(err, "collecting tags")
	}

	startIdx, err := DecideStartIndex(tags, published, e.opts.Mode)
	if err != nil {
		if errors.Is(err, errors.ErrNothingToDo) {
			e.logger.InfoToUser("nothing to publish")
			return &Result{Mode: e.opts.Mode}, nil
		}
		return nil, err
	}

	liveTip, err := e.prepareBranch(ctx, runner, &tmpBranch)
	if err != nil {
		return nil, err
	}

	newlyPublished, err := e.publishLoop(ctx, runner, tags, startIdx, liveTip, tmpBranch)
	if err != nil {
		return nil, err
	}

	if err := e.push(ctx, runner, tags, published, newlyPublished, tmpBranch); err != nil {
		return nil, err
	}

	return &Result{Mode: e.opts.Mode, TagsPublished: newlyPublished}, nil
}

// setupWorkspace initializes the workspace repo, adds the REPO and LIVE
// remotes, fetches REPO's tags, and probes LIVE for reachability.
func (e *Engine) setupWorkspace(ctx context.Context, runner git.Runner) error {
	if _, err := runner.Run(ctx, "init"); err != nil {
		return err
	}
	if _, err := runner.Run(ctx, "config", "user.email", committerEmail); err != nil {
		return err
	}
	if _, err := runner.Run(ctx, "config", "user.name", committerName); err != nil {
		return err
	}
	if _, err := runner.Run(ctx, "remote", "add", "REPO", e.opts.SourcePath); err != nil {
		return err
	}
	if _, err := runner.Run(ctx, "remote", "add", "LIVE", e.opts.LiveURL); err != nil {
		return err
	}
	if _, err := runner.Run(ctx, "fetch", "REPO", "--tags"); err != nil {
		return err
	}

	runner.TryRun(ctx, "fetch", "LIVE", "main", "--tags")

	out, ok := runner.TryRun(ctx, "ls-remote", "LIVE")
	if !ok || strings.TrimSpace(out) == "" {
		return errors.Wrap(errors.ErrLiveUnreachable, "ls-remote LIVE returned nothing")
	}
	return nil
}

// prepareBranch picks the run's temporary branch name and, outside Nuke
// mode, seeds it from LIVE's current tip. It writes the chosen branch
// name into *tmpBranch so the caller's deferred cleanup sees it even if
// this function (or a later step) fails.
func (e *Engine) prepareBranch(ctx context.Context, runner git.Runner, tmpBranch *string) (string, error) {
	*tmpBranch = fmt.Sprintf("tmp-sync-%d-%d", e.clock().Unix(), e.pid)

	if e.opts.Mode == Nuke {
		return "", nil
	}

	liveTip, err := runner.Run(ctx, "rev-parse", "refs/remotes/LIVE/main")
	if err != nil {
		return "", errors.Wrap(errors.ErrLiveUnreachable, "refs/remotes/LIVE/main does not exist; use --nuke to seed a new target")
	}
	if _, err := runner.Run(ctx, "update-ref", "refs/heads/"+*tmpBranch, liveTip); err != nil {
		return "", err
	}
	return liveTip, nil
}

// publishLoop walks tags from startIdx forward, grafting each one's tree
// onto currentParent as a new squashed commit carrying a provenance
// trailer, and returns the tags it published.
func (e *Engine) publishLoop(ctx context.Context, runner git.Runner, tags []SourceTag, startIdx int, liveTip, tmpBranch string) ([]PublishedTag, error) {
	var result []PublishedTag
	currentParent := liveTip

	var prevTag string
	havePrevTag := startIdx > 0
	if havePrevTag {
		prevTag = tags[startIdx-1].Name
	}

	for i := startIdx; i < len(tags); i++ {
		tag := tags[i]

		tree, err := runner.Run(ctx, "rev-parse", tag.Name+"^{tree}")
		if err != nil {
			return result, errors.NewPublishStepError(tag.Name, err)
		}

		filteredTree := tree
		if len(e.opts.Rules) > 0 {
			filteredTree, err = selector.FilterTree(ctx, runner, tree, e.opts.Rules)
			if err != nil {
				return result, errors.NewPublishStepError(tag.Name, err)
			}
		}

		rangeSpec := tag.Name
		if havePrevTag {
			rangeSpec = prevTag + ".." + tag.Name
		}
		commitLines, err := runner.Run(ctx, "log", "--pretty=format:%H", "--reverse", rangeSpec)
		if err != nil {
			return result, errors.NewPublishStepError(tag.Name, err)
		}
		commitCount := countLines(commitLines)

		message := buildProvenanceMessage(tag, e.clock().UTC(), commitCount)

		args := []string{"commit-tree", filteredTree}
		if currentParent != "" {
			args = append(args, "-p", currentParent)
		}
		newSHA, err := runner.RunWithInput(ctx, message, args...)
		if err != nil {
			return result, errors.NewPublishStepError(tag.Name, err)
		}

		if _, err := runner.Run(ctx, "update-ref", "refs/heads/"+tmpBranch, newSHA); err != nil {
			return result, errors.NewPublishStepError(tag.Name, err)
		}
		if _, err := runner.Run(ctx, "tag", "-f", tag.Name, newSHA); err != nil {
			return result, errors.NewPublishStepError(tag.Name, err)
		}

		result = append(result, PublishedTag{
			SourceTag:   tag.Name,
			SourceSHA:   tag.FullSHA,
			LiveSHA:     newSHA,
			CommitCount: commitCount,
		})

		currentParent = newSHA
		prevTag = tag.Name
		havePrevTag = true
	}

	return result, nil
}

// buildProvenanceMessage renders the subject line and the "// GitLive"
// provenance trailer block that follows it.
func buildProvenanceMessage(tag SourceTag, date time.Time, commitCount int) string {
	subject := fmt.Sprintf("GitLive: publish %s commit %s", tag.DisplayName, tag.ShortSHA)
	dateStr := date.Format("2006-01-02T15:04:05.0000000") + "Z"
	return fmt.Sprintf("%s\n\n%s\ncommit = %s\ntag = %s\ndate = %s\ncommit-count = %d\n",
		subject, provenanceMarker, tag.FullSHA, tag.Name, dateStr, commitCount)
}

func countLines(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(strings.Split(s, "\n"))
}

// push uploads the run's commits and tags to LIVE.
func (e *Engine) push(ctx context.Context, runner git.Runner, tags []SourceTag, priorPublished *PublishedSet, newlyPublished []PublishedTag, tmpBranch string) error {
	if e.opts.DryRun {
		e.logger.InfoToUser("dry run: would push %d tag(s)", len(newlyPublished))
		return nil
	}

	if e.opts.Mode == Nuke && len(newlyPublished) == 0 {
		// prepareBranch never creates refs/heads/tmpBranch in Nuke mode, and
		// publishLoop only creates it on its first iteration, so with no
		// live/* tags to rebuild from there is no local branch to push and
		// nothing on LIVE to delete.
		e.logger.InfoToUser("nothing to publish: no live/* tags to rebuild LIVE from")
		return nil
	}

	force := e.opts.Mode == Nuke || e.opts.Mode == Repair

	if e.opts.Mode == Nuke {
		e.deleteRemoteTags(ctx, runner)
	}

	branchRefspec := fmt.Sprintf("refs/heads/%s:refs/heads/main", tmpBranch)
	if force {
		branchRefspec = "+" + branchRefspec
	}
	if _, err := runner.Run(ctx, "push", "LIVE", branchRefspec); err != nil {
		return errors.Wrap(err, "pushing main")
	}

	published := make(map[string]bool, len(newlyPublished))
	for _, pt := range newlyPublished {
		published[pt.SourceTag] = true
		remoteName := strings.TrimPrefix(pt.SourceTag, "live/")
		if err := e.pushTag(ctx, runner, pt.LiveSHA, remoteName, force); err != nil {
			return errors.Wrapf(err, "pushing tag %s", pt.SourceTag)
		}
	}

	e.normalizeTags(ctx, runner, tags, priorPublished, published, force)
	return nil
}

// normalizeTags pushes the remote name for any tag this run didn't touch
// but a prior run already published, when LIVE doesn't already carry it:
// for example, a run that crashed after pushing main but before pushing
// its tags.
// Failures here are logged, not fatal: normalization is a convenience,
// not the primary contract of this run.
func (e *Engine) normalizeTags(ctx context.Context, runner git.Runner, tags []SourceTag, priorPublished *PublishedSet, alreadyPushed map[string]bool, force bool) {
	for _, t := range tags {
		if alreadyPushed[t.Name] {
			continue
		}
		remoteName := strings.TrimPrefix(t.Name, "live/")

		out, _ := runner.TryRun(ctx, "ls-remote", "LIVE", "refs/tags/"+remoteName)
		if strings.TrimSpace(out) != "" {
			continue
		}

		liveSHA, ok := priorPublished.Has(t.FullSHA)
		if !ok {
			continue
		}
		if err := e.pushTag(ctx, runner, liveSHA, remoteName, force); err != nil {
			e.logger.Warning("normalization push failed for %s: %v", t.Name, err)
		}
	}
}

// pushTag pushes sha directly to refs/tags/remoteName, sidestepping the
// question of which local ref (if any) currently points at sha, true
// for tags just created this run, not necessarily true for tags being
// re-normalized from a past run's provenance.
func (e *Engine) pushTag(ctx context.Context, runner git.Runner, sha, remoteName string, force bool) error {
	refspec := fmt.Sprintf("%s:refs/tags/%s", sha, remoteName)
	if force {
		refspec = "+" + refspec
	}
	_, err := runner.Run(ctx, "push", "LIVE", refspec)
	return err
}

// deleteRemoteTags removes every tag currently on LIVE, best-effort, as
// the first step of a Nuke push.
func (e *Engine) deleteRemoteTags(ctx context.Context, runner git.Runner) {
	out, ok := runner.TryRun(ctx, "ls-remote", "--tags", "LIVE")
	if !ok {
		return
	}

	seen := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(fields[1], "refs/tags/"), "^{}")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if _, err := runner.Run(ctx, "push", "LIVE", "--delete", name); err != nil {
			e.logger.Warning("failed to delete remote tag %s: %v", name, err)
		}
	}
}

// cleanupBranches deletes the run's own temporary branch and sweeps any
// other tmp-sync-* branches present in this workspace's repository.
func (e *Engine) cleanupBranches(ctx context.Context, runner git.Runner, tmpBranch string) {
	if tmpBranch != "" {
		runner.TryRun(ctx, "update-ref", "-d", "refs/heads/"+tmpBranch)
	}

	out, ok := runner.TryRun(ctx, "branch", "--list", "tmp-sync-*")
	if !ok {
		return
	}
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if name == "" || name == tmpBranch {
			continue
		}
		runner.TryRun(ctx, "update-ref", "-d", "refs/heads/"+name)
	}
}
