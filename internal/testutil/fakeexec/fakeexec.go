// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fakeexec provides a recording procexec.Executor for tests.
package fakeexec

import (
	"context"
	"fmt"
	"sync"

	"github.com/bartekus/vibe/internal/procexec"
)

// Response is what the fake returns for a matching command.
type Response struct {
	Outcome procexec.Outcome
	Err     error
}

// Executor records every command it is asked to run and answers from a
// table keyed by command line ("npm run start"). Unknown commands fail to
// spawn, as a missing binary would.
type Executor struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []procexec.Command
}

// New returns an Executor with no known commands.
func New() *Executor {
	return &Executor{responses: map[string]Response{}}
}

// On registers the response for a command line.
func (e *Executor) On(cmdline string, resp Response) *Executor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses[cmdline] = resp
	return e
}

// Exit registers a process that exits with code after writing stdout and stderr.
func (e *Executor) Exit(cmdline string, code int, stdout, stderr string) *Executor {
	return e.On(cmdline, Response{Outcome: procexec.NewOutcome(&code, []byte(stdout), []byte(stderr))})
}

// Run implements procexec.Executor.
func (e *Executor) Run(ctx context.Context, cmd procexec.Command) (procexec.Outcome, error) {
	e.mu.Lock()
	e.calls = append(e.calls, cmd)
	resp, ok := e.responses[cmd.String()]
	e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return procexec.Outcome{}, err
	}
	if !ok {
		return procexec.Outcome{}, fmt.Errorf("%w: %s: executable file not found in $PATH", procexec.ErrSpawnFailed, cmd)
	}
	return resp.Outcome, resp.Err
}

// Calls returns a copy of the recorded commands in invocation order.
func (e *Executor) Calls() []procexec.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]procexec.Command(nil), e.calls...)
}

// Ran reports whether a command line was invoked.
func (e *Executor) Ran(cmdline string) bool {
	for _, c := range e.Calls() {
		if c.String() == cmdline {
			return true
		}
	}
	return false
}
