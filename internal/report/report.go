// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report renders inspection reports and process outcomes for
// display, as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/bartekus/vibe/internal/procexec"
	"github.com/bartekus/vibe/internal/workspace"
)

// Issue is the display form of a workspace.Issue.
type Issue struct {
	Kind    workspace.IssueKind `json:"kind"`
	Message string              `json:"message"`
}

// Environment is the display form of a workspace.Report.
type Environment struct {
	Status                workspace.Status `json:"status"`
	ToolVersion           string           `json:"tool_version"`
	WorkspaceValid        bool             `json:"workspace_valid"`
	DependenciesInstalled bool             `json:"dependencies_installed"`
	WorkingDirectory      string           `json:"working_directory"`
	Issues                []Issue          `json:"issues"`
}

// FromReport converts a report, rendering each issue's message.
func FromReport(rep workspace.Report) Environment {
	issues := make([]Issue, 0, len(rep.Issues))
	for _, i := range rep.Issues {
		issues = append(issues, Issue{Kind: i.Kind, Message: i.Message()})
	}
	return Environment{
		Status:                rep.Status,
		ToolVersion:           rep.ToolVersion,
		WorkspaceValid:        rep.WorkspaceValid,
		DependenciesInstalled: rep.DependenciesInstalled,
		WorkingDirectory:      rep.WorkingDirectory,
		Issues:                issues,
	}
}

var statusText = map[workspace.Status]string{
	workspace.StatusOK:      "Ready",
	workspace.StatusWarning: "Issues",
	workspace.StatusError:   "Error",
}

// WriteEnvironment renders the report as text.
func WriteEnvironment(w io.Writer, rep workspace.Report) error {
	label, ok := statusText[rep.Status]
	if !ok {
		label = "Unknown"
	}

	p := &printer{w: w}
	p.printf("Status:       %s (%s)\n", label, rep.Status)
	p.printf("Tool:         %s\n", rep.ToolVersion)
	p.printf("Workspace:    %s\n", yesNo(rep.WorkspaceValid, "valid", "invalid"))
	p.printf("Dependencies: %s\n", yesNo(rep.DependenciesInstalled, "installed", "missing"))
	p.printf("Directory:    %s\n", rep.WorkingDirectory)

	if len(rep.Issues) > 0 {
		p.printf("Issues:\n")
		for _, i := range rep.Issues {
			p.printf("  - %s\n", i.Message())
		}
	}
	return p.err
}

// WriteOutcome renders the outcome of a named step as text.
func WriteOutcome(w io.Writer, step string, out procexec.Outcome) error {
	p := &printer{w: w}
	if out.Success {
		p.printf("✅ %s completed successfully!\n\n%s", step, out.Stdout)
		return p.err
	}

	p.printf("❌ %s failed (exit code: %s)\n\n", step, ExitCodeText(out))
	p.printf("STDOUT:\n%s\n\nSTDERR:\n%s\n", out.Stdout, out.Stderr)
	return p.err
}

// ExitCodeText is the exit code, or "none" when the process reported none.
func ExitCodeText(out procexec.Outcome) string {
	code, ok := out.Code()
	if !ok {
		return "none"
	}
	return strconv.Itoa(code)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func yesNo(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}
