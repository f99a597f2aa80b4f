// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

// Status is the aggregate health of a workspace.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// ToolNotFound is the ToolVersion recorded when the tool runtime cannot be invoked.
const ToolNotFound = "not_found"

func (s Status) rank() int {
	switch s {
	case StatusWarning:
		return 1
	case StatusError:
		return 2
	}
	return 0
}

// escalate returns the more severe of s and to. Status never goes down.
func (s Status) escalate(to Status) Status {
	if to.rank() > s.rank() {
		return to
	}
	return s
}

// Report is the result of one inspection. It is built fresh per call and
// not modified after Inspect returns.
type Report struct {
	Status                Status
	ToolVersion           string
	WorkspaceValid        bool
	DependenciesInstalled bool
	WorkingDirectory      string
	Issues                []Issue
}

// HasIssue reports whether an issue of the given kind was recorded.
func (r Report) HasIssue(kind IssueKind) bool {
	for _, i := range r.Issues {
		if i.Kind == kind {
			return true
		}
	}
	return false
}

// ToolAvailable reports whether the tool runtime answered the version query.
func (r Report) ToolAvailable() bool {
	return r.ToolVersion != ToolNotFound
}

func (r *Report) add(issue Issue, status Status) {
	r.Issues = append(r.Issues, issue)
	r.Status = r.Status.escalate(status)
}
