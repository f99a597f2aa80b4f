// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"fmt"
	"strings"
)

// IssueKind classifies a reportable workspace deficiency.
type IssueKind string

const (
	IssueToolMissing            IssueKind = "tool_missing"
	IssueWorkspaceMarkerMissing IssueKind = "workspace_marker_missing"
	IssueRequiredFilesMissing   IssueKind = "required_files_missing"
	IssueDependenciesMissing    IssueKind = "dependencies_missing"
)

// Issue is one deficiency found during inspection.
type Issue struct {
	Kind IssueKind
	// Detail names what the issue is about: the tool, the marker, the
	// missing files in check order, or the dependency directory.
	Detail []string
	// Requirement is what resolves it, e.g. "Node.js 18+" or "npm install".
	Requirement string
}

// Message renders the issue for display.
func (i Issue) Message() string {
	switch i.Kind {
	case IssueToolMissing:
		return fmt.Sprintf("%s not found in PATH. Please install %s", i.subject(), i.Requirement)
	case IssueWorkspaceMarkerMissing:
		return fmt.Sprintf("Invalid workspace: %s not found", i.subject())
	case IssueRequiredFilesMissing:
		return "Missing files: " + i.subject()
	case IssueDependenciesMissing:
		return fmt.Sprintf("Dependencies not installed. Run '%s' first", i.Requirement)
	}
	return string(i.Kind)
}

func (i Issue) String() string { return i.Message() }

func (i Issue) subject() string {
	return strings.Join(i.Detail, ", ")
}
