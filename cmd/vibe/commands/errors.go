package commands

import (
	"errors"

	"github.com/bartekus/vibe/cmd/vibe/internal/clierr"
	"github.com/bartekus/vibe/internal/runner"
)

// exitError attaches the exit code that matches a runner error.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	code := clierr.ExitGeneric
	switch {
	case errors.Is(err, runner.ErrCancelled):
		code = clierr.ExitCancelled
	case errors.Is(err, runner.ErrWorkspaceInvalid):
		code = clierr.ExitWorkspaceInvalid
	case errors.Is(err, runner.ErrToolUnavailable):
		code = clierr.ExitToolUnavailable
	case errors.Is(err, runner.ErrNoAnswersFile):
		code = clierr.ExitNoAnswersFile
	case errors.Is(err, runner.ErrSpawnFailed):
		code = clierr.ExitSpawnFailed
	}
	return clierr.Wrap(code, "", err)
}
