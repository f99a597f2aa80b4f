package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, 0, ExitCodeOf(nil))
	assert.Equal(t, ExitGeneric, ExitCodeOf(cause))
	assert.Equal(t, ExitNoAnswersFile, ExitCodeOf(New(ExitNoAnswersFile, "no answers")))
	assert.Equal(t, ExitCancelled, ExitCodeOf(fmt.Errorf("outer: %w", Wrap(ExitCancelled, "", cause))))
	assert.Equal(t, ExitGeneric, ExitCodeOf(New(0, "zero is not an error code")))
}

func TestWrap_Message(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, "boom", Wrap(3, "", cause).Error())
	assert.Equal(t, "ship: boom", Wrap(3, "ship", cause).Error())
	assert.Equal(t, "ship", Wrap(3, "ship", nil).Error())
	assert.ErrorIs(t, Wrap(3, "ship", cause), cause)
	assert.Equal(t, "step failed (exit code: 3)", Newf(3, "step failed (exit code: %d)", 3).Error())
}
