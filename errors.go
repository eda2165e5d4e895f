package seam

import (
	"errors"
	"fmt"
)

// NameError reports a name that is neither bound as a local nor present
// in the display.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("name %q is not defined", e.Name)
}

// ExecError locates a failed render step. The cause chain underneath is
// carried unchanged, so errors.As still reaches the collaborator error
// that started it.
type ExecError struct {
	Block string // "" for the main sequence
	PC    int
	Op    StepOp
	Cause error
}

func (e *ExecError) Error() string {
	seq := e.Block
	if seq == "" {
		seq = "main"
	}
	return fmt.Sprintf("render failed in %s at step %d (%s): %v", seq, e.PC, e.Op, e.Cause)
}

func (e *ExecError) Unwrap() error {
	return e.Cause
}

// execFail wraps a step failure once; an error already located keeps
// its innermost location.
func execFail(block string, pc int, op StepOp, err error) error {
	var ee *ExecError
	if errors.As(err, &ee) {
		return err
	}
	return &ExecError{Block: block, PC: pc, Op: op, Cause: err}
}
