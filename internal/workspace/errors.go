// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import "errors"

var (
	// ErrWorkingDirectory indicates the workspace directory could not be resolved.
	ErrWorkingDirectory = errors.New("cannot get current directory")
)
