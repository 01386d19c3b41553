package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gitliveerrors "github.com/gitlive/gitlive/internal/errors"
	"github.com/gitlive/gitlive/internal/git"
	"github.com/gitlive/gitlive/internal/publish"
)

// newCheckCommand builds the "check" subcommand: it runs a dry-run sync,
// which builds the squashed commits inside the throwaway workspace but
// pushes nothing to LIVE, and reports what a real sync would publish.
func newCheckCommand(r *Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report what a sync would publish, without publishing it",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			opts := publish.Options{
				SourcePath: sourcePath,
				LiveURL:    target.LiveURL,
				Rules:      target.Rules,
				Mode:       r.Options.Mode(),
				DryRun:     true,
			}

			engine := publish.New(opts, log)
			result, err := engine.Sync(ctx)
			if err != nil {
				r.ExitCode = exitCodeFor(err)
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.TagsPublished) == 0 {
				fmt.Fprintln(out, "up to date: nothing to publish")
			} else {
				fmt.Fprintln(out, publish.Summary(result))
			}
			r.ExitCode = 0
			return nil
		},
	}
}
