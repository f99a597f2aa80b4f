// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Vibe - a launcher that validates a deliverable workspace and drives its
questionnaire and ship pipeline through the workspace's own scripts.

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands contains the Cobra commands of the vibe CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/vibe/internal/procexec"
)

// NewRootCmd constructs the vibe root Cobra command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(procexec.OS{})
}

// newRootCmd builds the command tree around exec so tests can substitute
// the process layer.
func newRootCmd(exec procexec.Executor) *cobra.Command {
	version := os.Getenv("VIBE_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	opts := &globalOptions{exec: exec}

	cmd := &cobra.Command{
		Use:           "vibe",
		Short:         "Vibe - deliverable workspace launcher",
		Long:          "Vibe checks a deliverable workspace and runs its questionnaire and ship pipeline.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "", "workspace directory (default: current directory)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: <workspace>/vibe.yaml if present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "output results in JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of vibe",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "vibe version %s\n", version)
		},
	})

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newShipCmd(opts))
	cmd.AddCommand(newQuestionnaireCmd(opts))
	cmd.AddCommand(newSelfCheckCmd(opts))

	return cmd
}
