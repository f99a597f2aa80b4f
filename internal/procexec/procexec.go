// SPDX-License-Identifier: AGPL-3.0-or-later

// Package procexec spawns external processes and normalizes their results.
package procexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ErrSpawnFailed indicates the process could not be started at all
// (binary missing, not executable, permission denied).
var ErrSpawnFailed = errors.New("failed to spawn process")

// Command describes a single process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command line, e.g. "npm run start".
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Outcome is the normalized result of a process that was started.
// ExitCode is nil when the process was killed by a signal or could not
// report a code.
type Outcome struct {
	Success  bool   `json:"success"`
	ExitCode *int   `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// Code returns the exit code and whether one was reported.
func (o Outcome) Code() (int, bool) {
	if o.ExitCode == nil {
		return 0, false
	}
	return *o.ExitCode, true
}

// NewOutcome builds an Outcome from raw output. Success holds only for a
// reported exit code of 0.
func NewOutcome(exitCode *int, stdout, stderr []byte) Outcome {
	return Outcome{
		Success:  exitCode != nil && *exitCode == 0,
		ExitCode: exitCode,
		Stdout:   lossy(stdout),
		Stderr:   lossy(stderr),
	}
}

// Executor runs a command to completion.
//
// A process that starts and exits nonzero is not an error: it yields an
// Outcome with Success false. Run returns an error wrapping ErrSpawnFailed
// when the process cannot be started, and the context error when ctx ends
// before the process does.
type Executor interface {
	Run(ctx context.Context, cmd Command) (Outcome, error)
}

// DefaultWaitDelay bounds how long Run waits for output pipes after the
// process has been killed, since grandchildren may keep them open.
const DefaultWaitDelay = 2 * time.Second

// OS runs commands as real child processes.
type OS struct {
	// WaitDelay overrides DefaultWaitDelay when positive.
	WaitDelay time.Duration
}

// Run implements Executor.
func (o OS) Run(ctx context.Context, c Command) (Outcome, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = DefaultWaitDelay
	if o.WaitDelay > 0 {
		cmd.WaitDelay = o.WaitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		code := 0
		return NewOutcome(&code, stdout.Bytes(), stderr.Bytes()), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Outcome{}, ctxErr
	}
	// The process ran: a nonzero exit, a signal, or output pipes held open
	// by a grandchild past WaitDelay.
	if cmd.ProcessState != nil {
		return NewOutcome(exitCodeOf(cmd.ProcessState), stdout.Bytes(), stderr.Bytes()), nil
	}
	return Outcome{}, fmt.Errorf("%w: %s: %v", ErrSpawnFailed, c, err)
}

func exitCodeOf(state *os.ProcessState) *int {
	// -1 means terminated by a signal
	code := state.ExitCode()
	if code < 0 {
		return nil
	}
	return &code
}

func lossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
