package seam

import "github.com/seamlang/seam/render"

// StepOp identifies a render step operation.
type StepOp uint8

const (
	OpNop StepOp = iota
	OpText
	OpConst
	OpLoad
	OpStore
	OpResolve
	OpIndex
	OpCall
	OpEmit
	OpNot
	OpCompare
	OpJump
	OpJumpIf
	OpJumpIfNot
	OpDup
	OpPop
	OpIterInit
	OpIterNext
	OpCallBlock
	OpCapture
)

func (op StepOp) String() string {
	switch op {
	case OpNop:
		return "nop"
	case OpText:
		return "text"
	case OpConst:
		return "const"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpResolve:
		return "resolve"
	case OpIndex:
		return "index"
	case OpCall:
		return "call"
	case OpEmit:
		return "emit"
	case OpNot:
		return "not"
	case OpCompare:
		return "compare"
	case OpJump:
		return "jump"
	case OpJumpIf:
		return "jumpif"
	case OpJumpIfNot:
		return "jumpifnot"
	case OpDup:
		return "dup"
	case OpPop:
		return "pop"
	case OpIterInit:
		return "iterinit"
	case OpIterNext:
		return "iternext"
	case OpCallBlock:
		return "callblock"
	case OpCapture:
		return "capture"
	default:
		panic(op)
	}
}

// Step is one instruction of a compiled render program. Which operand
// fields are meaningful depends on Op; the rest stay zero.
type Step struct {
	Op     StepOp
	Name   string           // load, store, call, callblock, capture
	Names  []string         // resolve path, iternext loop variables
	Value  any              // text, const
	Cmp    render.CompareOp // compare
	Argc   int              // call arity
	Target int              // jump, jumpif, jumpifnot, iternext exit
}
