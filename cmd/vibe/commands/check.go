package commands

import (
	"github.com/spf13/cobra"

	"github.com/bartekus/vibe/cmd/vibe/internal/clierr"
	"github.com/bartekus/vibe/internal/report"
	"github.com/bartekus/vibe/internal/workspace"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the workspace and tool runtime",
		Long: `Check that the tool runtime is installed and that the workspace has its
package manifest, required files and installed dependencies.

Exits nonzero only when the tool runtime is unavailable; other problems are
reported as warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			rep, err := s.inspector(opts.exec).Inspect(contextOf(cmd), s.dir)
			if err != nil {
				return clierr.Wrap(clierr.ExitGeneric, "", err)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				err = report.WriteJSON(out, report.FromReport(rep))
			} else {
				err = report.WriteEnvironment(out, rep)
			}
			if err != nil {
				return err
			}

			if rep.Status == workspace.StatusError {
				return clierr.New(clierr.ExitToolUnavailable, "environment check failed")
			}
			return nil
		},
	}
}
