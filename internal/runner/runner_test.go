package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/vibe/internal/procexec"
	"github.com/bartekus/vibe/internal/testutil/fakeexec"
	"github.com/bartekus/vibe/internal/workspace"
)

const (
	nodeVersion   = "node --version"
	shipDefault   = "npm run ship -- --answers=answers.json"
	shipCI        = "npm run ship -- --answers=answers.ci.json"
	runStart      = "npm run start"
	runSelfCheck  = "npm run ci:selfcheck"
	shipOverride  = "npm run ship -- --answers=custom/answers.enterprise.json"
	shipPresetEnt = "npm run ship -- --answers=answers.enterprise.ci.json"
)

func newWorkspace(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range append([]string{"package.json"}, files...) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("{}"), 0o600))
	}
	return dir
}

func withNode() *fakeexec.Executor {
	return fakeexec.New().Exit(nodeVersion, 0, "v20.11.1\n", "")
}

func TestRunShip_PrefersDefaultAnswers(t *testing.T) {
	dir := newWorkspace(t, "answers.json", "answers.ci.json")
	exec := withNode().Exit(shipDefault, 0, "shipped\n", "")

	out, err := NewRunner(exec).RunShip(context.Background(), dir, ShipRequest{})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "shipped\n", out.Stdout)
	assert.False(t, exec.Ran(shipCI))

	calls := exec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, dir, calls[0].Dir, "version query runs in the workspace")
	assert.Equal(t, "npm", calls[1].Name)
	assert.Equal(t, []string{"run", "ship", "--", "--answers=answers.json"}, calls[1].Args)
	assert.Equal(t, dir, calls[1].Dir)
}

func TestRunShip_FallsBackToCIAnswers(t *testing.T) {
	dir := newWorkspace(t, "answers.ci.json")
	exec := withNode().Exit(shipCI, 0, "", "")

	out, err := NewRunner(exec).RunShip(context.Background(), dir, ShipRequest{})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.True(t, exec.Ran(shipCI))
}

func TestRunShip_OverrideWins(t *testing.T) {
	dir := newWorkspace(t, "answers.json")
	exec := withNode().Exit(shipOverride, 0, "", "")

	_, err := NewRunner(exec).RunShip(context.Background(), dir, ShipRequest{AnswersFile: "custom/answers.enterprise.json"})
	require.NoError(t, err)
	assert.True(t, exec.Ran(shipOverride))
	assert.False(t, exec.Ran(shipDefault))
}

func TestRunShip_NoAnswersFileSpawnsNothing(t *testing.T) {
	dir := newWorkspace(t)
	exec := withNode()

	_, err := NewRunner(exec).RunShip(context.Background(), dir, ShipRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAnswersFile)

	for _, c := range exec.Calls() {
		assert.NotEqual(t, "npm", c.Name, "script runner must not be invoked")
	}
}

func TestRunShip_ToolUnavailable(t *testing.T) {
	dir := newWorkspace(t, "answers.json")
	exec := fakeexec.New().Exit(shipDefault, 0, "", "")

	_, err := NewRunner(exec).RunShip(context.Background(), dir, ShipRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolUnavailable)
	assert.False(t, exec.Ran(shipDefault))
}

func TestRun_WorkspaceInvalidBeforeSpawn(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "answers.json"), []byte("{}"), 0o600))

	ops := map[string]func(r *Runner) error{
		"ship": func(r *Runner) error {
			_, err := r.RunShip(context.Background(), dir, ShipRequest{})
			return err
		},
		"questionnaire": func(r *Runner) error {
			_, err := r.RunQuestionnaire(context.Background(), dir)
			return err
		},
		"selfcheck": func(r *Runner) error {
			_, err := r.RunSelfCheck(context.Background(), dir)
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			exec := withNode()
			err := op(NewRunner(exec))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrWorkspaceInvalid)
			assert.Contains(t, err.Error(), "package.json not found")
			assert.Empty(t, exec.Calls())
		})
	}
}

func TestRun_NonzeroExitIsOutcome(t *testing.T) {
	dir := newWorkspace(t, "answers.json")
	exec := withNode().
		Exit(shipDefault, 3, "partial\n", "validation failed\n").
		Exit(runStart, 3, "", "validation failed\n")
	r := NewRunner(exec)

	out, err := r.RunShip(context.Background(), dir, ShipRequest{})
	require.NoError(t, err)
	assert.False(t, out.Success)
	require.NotNil(t, out.ExitCode)
	assert.Equal(t, 3, *out.ExitCode)
	assert.Equal(t, "validation failed\n", out.Stderr)
	assert.Equal(t, "partial\n", out.Stdout)

	out, err = r.RunQuestionnaire(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, 3, *out.ExitCode)
}

func TestRunQuestionnaire_NoToolPrecondition(t *testing.T) {
	dir := newWorkspace(t)
	exec := fakeexec.New().Exit(runStart, 0, "✔ Answers saved to answers.json\n", "")

	out, err := NewRunner(exec).RunQuestionnaire(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.False(t, exec.Ran(nodeVersion))
}

func TestRunQuestionnaire_SpawnFailed(t *testing.T) {
	dir := newWorkspace(t)

	_, err := NewRunner(fakeexec.New()).RunQuestionnaire(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSpawnFailed)
	assert.Contains(t, err.Error(), "failed to execute npm run start")
}

func TestRunSelfCheck(t *testing.T) {
	dir := newWorkspace(t)
	exec := fakeexec.New().Exit(runSelfCheck, 1, "", "CI SELF-CHECK ❌ Missing files")

	out, err := NewRunner(exec).RunSelfCheck(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, 1, *out.ExitCode)
}

func TestRun_SignalledProcessHasNoExitCode(t *testing.T) {
	dir := newWorkspace(t)
	exec := fakeexec.New().On(runStart, fakeexec.Response{Outcome: procexec.NewOutcome(nil, nil, []byte("killed"))})

	out, err := NewRunner(exec).RunQuestionnaire(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Nil(t, out.ExitCode)
}

func TestRun_CancelledContext(t *testing.T) {
	dir := newWorkspace(t, "answers.json")
	exec := withNode().Exit(runStart, 0, "", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(exec).RunQuestionnaire(ctx, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewRunner(exec).RunShip(ctx, dir, ShipRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestRun_TimeoutKillsRealProcess(t *testing.T) {
	dir := newWorkspace(t)
	script := filepath.Join(dir, "npm")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 5\n"), 0o755))

	r := NewRunner(procexec.OS{},
		WithTimeout(50*time.Millisecond),
		WithToolchain(workspace.Toolchain{Tool: "node", ToolName: "Node.js", MinToolVersion: "18", Runner: script}),
	)

	start := time.Now()
	_, err := r.RunQuestionnaire(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestPresetAnswers(t *testing.T) {
	file, err := PresetAnswers("enterprise")
	require.NoError(t, err)
	assert.Equal(t, "answers.enterprise.ci.json", file)

	file, err = PresetAnswers("standard")
	require.NoError(t, err)
	assert.Equal(t, "answers.ci.json", file)

	_, err = PresetAnswers("lecun")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	assert.Equal(t, []string{"enterprise", "standard"}, PresetNames())
}

func TestRunShip_PresetOverride(t *testing.T) {
	dir := newWorkspace(t)
	exec := withNode().Exit(shipPresetEnt, 0, "", "")

	file, err := PresetAnswers("enterprise")
	require.NoError(t, err)

	_, err = NewRunner(exec).RunShip(context.Background(), dir, ShipRequest{AnswersFile: file})
	require.NoError(t, err)
	assert.True(t, exec.Ran(shipPresetEnt))
}
