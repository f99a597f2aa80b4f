// SPDX-License-Identifier: AGPL-3.0-or-later

package runner

import (
	"errors"

	"github.com/bartekus/vibe/internal/procexec"
)

var (
	// ErrWorkspaceInvalid indicates the directory lacks the workspace marker.
	ErrWorkspaceInvalid = errors.New("invalid workspace")

	// ErrToolUnavailable indicates the tool runtime could not be invoked.
	ErrToolUnavailable = errors.New("tool runtime not available")

	// ErrNoAnswersFile indicates no override was given and no answers candidate exists.
	ErrNoAnswersFile = errors.New("no answers file found")

	// ErrSpawnFailed indicates the script runner process could not be started.
	ErrSpawnFailed = procexec.ErrSpawnFailed

	// ErrCancelled indicates the operation's context ended before the process did.
	ErrCancelled = errors.New("operation cancelled")

	// ErrUnknownPreset indicates an answers preset name that is not defined.
	ErrUnknownPreset = errors.New("unknown answers preset")
)
