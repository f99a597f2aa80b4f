// SPDX-License-Identifier: AGPL-3.0-or-later

package runner

import (
	"context"

	"github.com/bartekus/vibe/internal/procexec"
)

// Operation is one pipeline call bound to its arguments.
type Operation func(ctx context.Context) (procexec.Outcome, error)

// Job is an operation running on its own goroutine.
type Job struct {
	done    chan struct{}
	outcome procexec.Outcome
	err     error
}

// Start runs op in the background. The result is delivered all at once
// when the process finishes; cancel ctx to kill it.
func (r *Runner) Start(ctx context.Context, op Operation) *Job {
	j := &Job{done: make(chan struct{})}
	go func() {
		defer close(j.done)
		j.outcome, j.err = op(ctx)
	}()
	return j
}

// Done is closed once the job has finished.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job finishes and returns its result.
func (j *Job) Wait() (procexec.Outcome, error) {
	<-j.done
	return j.outcome, j.err
}

// Ship binds RunShip to its arguments.
func (r *Runner) Ship(dir string, req ShipRequest) Operation {
	return func(ctx context.Context) (procexec.Outcome, error) {
		return r.RunShip(ctx, dir, req)
	}
}

// Questionnaire binds RunQuestionnaire to its arguments.
func (r *Runner) Questionnaire(dir string) Operation {
	return func(ctx context.Context) (procexec.Outcome, error) {
		return r.RunQuestionnaire(ctx, dir)
	}
}

// SelfCheck binds RunSelfCheck to its arguments.
func (r *Runner) SelfCheck(dir string) Operation {
	return func(ctx context.Context) (procexec.Outcome, error) {
		return r.RunSelfCheck(ctx, dir)
	}
}
