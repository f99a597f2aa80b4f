// SPDX-License-Identifier: AGPL-3.0-or-later

// Package runner resolves pipeline parameters and runs the workspace's
// scripts through the script runner.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bartekus/vibe/internal/procexec"
	"github.com/bartekus/vibe/internal/workspace"
)

// ShipRequest carries the inputs of a ship run.
type ShipRequest struct {
	// AnswersFile overrides answers-file discovery when non-empty.
	AnswersFile string
}

// Runner manages the execution of pipeline scripts. It holds no per-call
// state, so one Runner may serve concurrent calls.
type Runner struct {
	exec      procexec.Executor
	inspector *workspace.Inspector
	layout    workspace.Layout
	toolchain workspace.Toolchain
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLayout overrides workspace.DefaultLayout.
func WithLayout(l workspace.Layout) Option {
	return func(r *Runner) { r.layout = l }
}

// WithToolchain overrides workspace.DefaultToolchain.
func WithToolchain(tc workspace.Toolchain) Option {
	return func(r *Runner) { r.toolchain = tc }
}

// WithTimeout bounds every operation. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithLogger sets the logger. Logging is discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner that spawns processes through exec.
func NewRunner(exec procexec.Executor, opts ...Option) *Runner {
	r := &Runner{
		exec:      exec,
		layout:    workspace.DefaultLayout(),
		toolchain: workspace.DefaultToolchain(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.inspector = workspace.NewInspector(exec,
		workspace.WithLayout(r.layout),
		workspace.WithToolchain(r.toolchain),
		workspace.WithLogger(r.logger),
	)
	return r
}

// RunShip runs "<runner> run ship -- --answers=<path>" in dir.
//
// The workspace marker and the tool runtime are checked before anything is
// spawned. The answers file is the override if given, otherwise the first
// existing answers candidate.
func (r *Runner) RunShip(ctx context.Context, dir string, req ShipRequest) (procexec.Outcome, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	wd, err := r.workspaceDir(dir)
	if err != nil {
		return procexec.Outcome{}, err
	}

	if !r.inspector.ToolAvailable(ctx, wd) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return procexec.Outcome{}, fmt.Errorf("%w: %w", ErrCancelled, ctxErr)
		}
		return procexec.Outcome{}, fmt.Errorf("%w: please install %s and ensure it's in your PATH",
			ErrToolUnavailable, r.toolchain.ToolName)
	}

	answers, err := r.resolveAnswers(wd, req.AnswersFile)
	if err != nil {
		return procexec.Outcome{}, err
	}

	return r.script(ctx, wd, "ship", "--", answersArg(answers))
}

// RunQuestionnaire runs "<runner> run start" in dir. Only the workspace
// marker is checked up front.
func (r *Runner) RunQuestionnaire(ctx context.Context, dir string) (procexec.Outcome, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	wd, err := r.workspaceDir(dir)
	if err != nil {
		return procexec.Outcome{}, err
	}
	return r.script(ctx, wd, "start")
}

// RunSelfCheck runs "<runner> run ci:selfcheck" in dir, which verifies the
// workspace's CI wiring.
func (r *Runner) RunSelfCheck(ctx context.Context, dir string) (procexec.Outcome, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	wd, err := r.workspaceDir(dir)
	if err != nil {
		return procexec.Outcome{}, err
	}
	return r.script(ctx, wd, "ci:selfcheck")
}

func (r *Runner) workspaceDir(dir string) (string, error) {
	wd, err := workspace.Resolve(dir)
	if err != nil {
		return "", err
	}
	if !workspace.HasMarker(wd, r.layout) {
		return "", fmt.Errorf("%w: %s not found", ErrWorkspaceInvalid, r.layout.Marker)
	}
	return wd, nil
}

// script runs a named package script exactly once.
func (r *Runner) script(ctx context.Context, dir, name string, extra ...string) (procexec.Outcome, error) {
	cmd := procexec.Command{
		Name: r.toolchain.Runner,
		Args: append([]string{"run", name}, extra...),
		Dir:  dir,
	}

	r.logger.Info("running script", "command", cmd.String(), "dir", dir)
	start := time.Now()

	out, err := r.exec.Run(ctx, cmd)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			r.logger.Warn("script cancelled", "command", cmd.String(), "error", err)
			return procexec.Outcome{}, fmt.Errorf("%w: %s: %w", ErrCancelled, cmd, err)
		}
		r.logger.Error("script failed to start", "command", cmd.String(), "error", err)
		return procexec.Outcome{}, fmt.Errorf("failed to execute %s: %w", cmd, err)
	}

	code, ok := out.Code()
	r.logger.Info("script finished",
		"command", cmd.String(),
		"success", out.Success,
		"exit_code", code,
		"exit_code_reported", ok,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return out, nil
}

func (r *Runner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout > 0 {
		return context.WithTimeout(ctx, r.timeout)
	}
	return context.WithCancel(ctx)
}
