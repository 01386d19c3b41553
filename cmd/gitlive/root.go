package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	gitliveerrors "github.com/gitlive/gitlive/internal/errors"
	"github.com/gitlive/gitlive/internal/git"
	"github.com/gitlive/gitlive/internal/logger"
	"github.com/gitlive/gitlive/internal/metrics"
	"github.com/gitlive/gitlive/internal/publish"
)

// Runner holds the parsed flag values plus the cobra command tree that
// fills them in, mirroring kptdev-kpt's cmdsync.Runner shape.
type Runner struct {
	Options  Options
	Command  *cobra.Command
	ExitCode int
}

// NewRunner builds the root command and its "check"/"init" children.
func NewRunner() *Runner {
	r := &Runner{}

	c := &cobra.Command{
		Use:           "gitlive",
		Short:         "Publish live/* release snapshots to a public LIVE repository",
		RunE:          r.runSync,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c.PersistentFlags().StringVar(&r.Options.URL, "url", "", "LIVE repository URL")
	c.PersistentFlags().StringVar(&r.Options.User, "user", "", "LIVE username")
	c.PersistentFlags().StringVar(&r.Options.Password, "password", "", "LIVE password or token")
	c.PersistentFlags().BoolVar(&r.Options.DryRun, "dry-run", false, "report what would be published without pushing")
	c.PersistentFlags().BoolVar(&r.Options.Incremental, "incremental", false, "publish only tags not yet seen on LIVE (default)")
	c.PersistentFlags().BoolVar(&r.Options.Repair, "repair", false, "republish the first tag missing from LIVE's history")
	c.PersistentFlags().BoolVar(&r.Options.Nuke, "nuke", false, "rebuild LIVE's history from scratch")
	c.PersistentFlags().BoolVar(&r.Options.Full, "full", false, "legacy alias of --repair")
	c.PersistentFlags().BoolVarP(&r.Options.Verbose, "verbose", "v", false, "verbose console output")
	c.PersistentFlags().BoolVar(&r.Options.VeryVerbose, "very-verbose", false, "verbose console output (alias accepted as -vv)")
	c.PersistentFlags().StringVar(&r.Options.ConfigPath, "config", "gitlive.z0", "path to the Z0 configuration file")
	c.PersistentFlags().StringVar(&r.Options.MetricsFile, "metrics-file", "", "write run metrics to this path in Prometheus text format")

	c.AddCommand(newCheckCommand(r))
	c.AddCommand(newInitCommand())

	r.Command = c
	return r
}

func (r *Runner) newLogger() logger.Logger {
	return logger.New("", r.Options.VerboseEnabled())
}

func (r *Runner) runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := r.newLogger()

	sourcePath, err := os.Getwd()
	if err != nil {
		r.ExitCode = exitCodeFor(err)
		return err
	}

	if !git.IsRepository(ctx, sourcePath) {
		err := gitliveerrors.ErrNotGitRepository
		r.ExitCode = exitCodeFor(err)
		return err
	}

	target, err := resolve(&r.Options)
	if err != nil {
		r.ExitCode = exitCodeFor(err)
		return err
	}

	rec := metrics.New()
	start := time.Now()

	opts := publish.Options{
		SourcePath: sourcePath,
		LiveURL:    target.LiveURL,
		Rules:      target.Rules,
		Mode:       r.Options.Mode(),
		DryRun:     r.Options.DryRun,
	}

	engine := publish.New(opts, log)
	result, err := engine.Sync(ctx)

	rec.SyncDuration(time.Since(start))
	rec.ModeUsed(opts.Mode.String())
	if err != nil {
		rec.PushFailures(1)
		if werr := rec.WriteFile(r.Options.MetricsFile); werr != nil {
			log.Warning("failed to write metrics file: %v", werr)
		}
		r.ExitCode = exitCodeFor(err)
		return err
	}

	rec.TagsPublished(len(result.TagsPublished))
	if werr := rec.WriteFile(r.Options.MetricsFile); werr != nil {
		log.Warning("failed to write metrics file: %v", werr)
	}

	fmt.Fprintln(cmd.OutOrStdout(), publish.Summary(result))
	r.ExitCode = 0
	return nil
}

// Execute runs the command tree against ctx and returns the process's
// documented exit code.
func (r *Runner) Execute(ctx context.Context) int {
	r.Command.SetContext(ctx)
	if err := r.Command.Execute(); err != nil {
		if r.ExitCode == 0 {
			r.ExitCode = exitCodeFor(err)
		}
		fmt.Fprintf(os.Stderr, "gitlive: %v\n", err)
	}
	return r.ExitCode
}
