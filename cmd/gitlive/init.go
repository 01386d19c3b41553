package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const starterConfig = `// url = https://example.com/org/live-repo.git
// user = ci-bot
files:
# = + *.md
# = - secret.txt
`

// newInitCommand writes a starter gitlive.z0 so a fresh source repository
// can be wired up without hand-writing Z0 syntax from the grammar tables.
func newInitCommand() *cobra.Command {
	var path string
	c := &cobra.Command{
		Use:   "init",
		Short: "Write a starter gitlive.z0 configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, refusing to overwrite", path)
			}
			if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	c.Flags().StringVar(&path, "config", "gitlive.z0", "path to write")
	return c
}
