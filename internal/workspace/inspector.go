// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace decides whether a directory is a usable workspace.
package workspace

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bartekus/vibe/internal/procexec"
)

// Inspector checks a workspace directory and the host's tool runtime.
type Inspector struct {
	exec      procexec.Executor
	layout    Layout
	toolchain Toolchain
	logger    *slog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLayout overrides DefaultLayout.
func WithLayout(l Layout) Option {
	return func(i *Inspector) { i.layout = l }
}

// WithToolchain overrides DefaultToolchain.
func WithToolchain(tc Toolchain) Option {
	return func(i *Inspector) { i.toolchain = tc }
}

// WithLogger sets the logger. Logging is discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(i *Inspector) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewInspector creates an Inspector that queries the tool runtime through exec.
func NewInspector(exec procexec.Executor, opts ...Option) *Inspector {
	i := &Inspector{
		exec:      exec,
		layout:    DefaultLayout(),
		toolchain: DefaultToolchain(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inspect checks, in order, tool availability, the workspace marker, the
// required files and dependency installation. Deficiencies are collected
// into the report; the only error is failing to resolve dir.
func (i *Inspector) Inspect(ctx context.Context, dir string) (Report, error) {
	wd, err := Resolve(dir)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Status: StatusOK, WorkingDirectory: wd}

	// queried from wd, where the scripts run
	rep.ToolVersion = i.toolVersion(ctx, wd)
	if !rep.ToolAvailable() {
		rep.add(Issue{
			Kind:        IssueToolMissing,
			Detail:      []string{i.toolchain.ToolName},
			Requirement: i.toolchain.ToolName + " " + i.toolchain.MinToolVersion + "+",
		}, StatusError)
	}

	rep.WorkspaceValid = HasMarker(wd, i.layout)
	if !rep.WorkspaceValid {
		rep.add(Issue{Kind: IssueWorkspaceMarkerMissing, Detail: []string{i.layout.Marker}}, StatusWarning)
	}

	var missing []string
	for _, f := range i.layout.RequiredFiles {
		if !exists(filepath.Join(wd, f)) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		rep.add(Issue{Kind: IssueRequiredFilesMissing, Detail: missing}, StatusWarning)
	}

	rep.DependenciesInstalled = exists(filepath.Join(wd, i.layout.DependencyDir))
	if !rep.DependenciesInstalled {
		rep.add(Issue{
			Kind:        IssueDependenciesMissing,
			Detail:      []string{i.layout.DependencyDir},
			Requirement: i.toolchain.Runner + " install",
		}, StatusWarning)
	}

	i.logger.Debug("workspace inspected",
		"dir", wd,
		"status", rep.Status,
		"issues", len(rep.Issues),
	)
	return rep, nil
}

// ToolAvailable reports whether the tool runtime can be invoked at all from dir.
func (i *Inspector) ToolAvailable(ctx context.Context, dir string) bool {
	return i.toolVersion(ctx, dir) != ToolNotFound
}

func (i *Inspector) toolVersion(ctx context.Context, dir string) string {
	out, err := i.exec.Run(ctx, procexec.Command{Name: i.toolchain.Tool, Args: []string{"--version"}, Dir: dir})
	if err != nil {
		i.logger.Debug("tool version query failed", "tool", i.toolchain.Tool, "error", err)
		return ToolNotFound
	}
	return strings.TrimSpace(out.Stdout)
}
