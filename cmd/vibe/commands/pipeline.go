package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bartekus/vibe/cmd/vibe/internal/clierr"
	"github.com/bartekus/vibe/internal/procexec"
	"github.com/bartekus/vibe/internal/report"
	"github.com/bartekus/vibe/internal/runner"
)

func newShipCmd(opts *globalOptions) *cobra.Command {
	var (
		answersFile string
		preset      string
	)

	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Run the ship pipeline",
		Long: `Run the workspace's ship script with an answers file.

Without --answers or --preset the first of answers.json and answers.ci.json
found in the workspace is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := runner.ShipRequest{AnswersFile: answersFile}
			if preset != "" {
				file, err := runner.PresetAnswers(preset)
				if err != nil {
					return err
				}
				req.AnswersFile = file
			}
			return runStep(cmd, opts, "Ship pipeline", func(r *runner.Runner, dir string) runner.Operation {
				return r.Ship(dir, req)
			})
		},
	}

	cmd.Flags().StringVar(&answersFile, "answers", "", "answers file passed to the ship script")
	cmd.Flags().StringVar(&preset, "preset", "", "use a predefined answers file (standard, enterprise)")
	cmd.MarkFlagsMutuallyExclusive("answers", "preset")

	return cmd
}

func newQuestionnaireCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "questionnaire",
		Short: "Run the questionnaire script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(cmd, opts, "Questionnaire", (*runner.Runner).Questionnaire)
		},
	}
}

func newSelfCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "Run the workspace's CI self-check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(cmd, opts, "CI self-check", (*runner.Runner).SelfCheck)
		},
	}
}

// runStep runs one pipeline operation in the background until it finishes
// or the process is interrupted, then renders its outcome.
func runStep(cmd *cobra.Command, opts *globalOptions, step string, bind func(*runner.Runner, string) runner.Operation) error {
	s, err := opts.setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := s.runner(opts.exec)
	out, err := r.Start(ctx, bind(r, s.dir)).Wait()
	if err != nil {
		return exitError(err)
	}

	w := cmd.OutOrStdout()
	if opts.json {
		err = report.WriteJSON(w, out)
	} else {
		err = report.WriteOutcome(w, step, out)
	}
	if err != nil {
		return err
	}

	if !out.Success {
		return clierr.Newf(childExitCode(out), "%s failed (exit code: %s)", step, report.ExitCodeText(out))
	}
	return nil
}

func childExitCode(out procexec.Outcome) int {
	if code, ok := out.Code(); ok {
		return code
	}
	return clierr.ExitGeneric
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
