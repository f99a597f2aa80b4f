// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

// Layout names the files that make a directory a usable workspace.
type Layout struct {
	// Marker is the package manifest whose presence makes the directory a workspace.
	Marker string
	// RequiredFiles are checked in order; missing ones are reported together.
	RequiredFiles []string
	// DependencyDir exists once dependencies have been installed.
	DependencyDir string
	// AnswersCandidates are the pipeline input files, highest priority first.
	AnswersCandidates []string
}

// DefaultLayout returns the layout of a Node-based ship workspace.
func DefaultLayout() Layout {
	return Layout{
		Marker:            "package.json",
		RequiredFiles:     []string{"scripts/ship.js", "AGENTS.md", "answers.json"},
		DependencyDir:     "node_modules",
		AnswersCandidates: []string{"answers.json", "answers.ci.json"},
	}
}

// Toolchain names the external commands the workspace is driven with.
type Toolchain struct {
	// Tool is the runtime binary queried with --version.
	Tool string
	// ToolName is the human-readable runtime name used in messages.
	ToolName string
	// MinToolVersion is the minimum supported major version, for messages.
	MinToolVersion string
	// Runner is the script runner used as "<runner> run <script>".
	Runner string
}

// DefaultToolchain returns node + npm.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Tool:           "node",
		ToolName:       "Node.js",
		MinToolVersion: "18",
		Runner:         "npm",
	}
}
