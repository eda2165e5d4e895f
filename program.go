package seam

import (
	"fmt"

	"github.com/seamlang/seam/render"
)

// Program is a compiled render: the main step sequence plus the named
// block sequences it can call or capture. Programs are immutable once
// built and safe to share across renders.
type Program struct {
	Steps  []Step
	Blocks map[string][]Step
}

// Validate checks the structural invariants a compiler must produce:
// jump targets inside the owning sequence, loop variables present,
// sane arities, and block references that exist. The executor runs it
// once per render.
func (p *Program) Validate() error {
	if err := validateSteps("main", p.Steps, p.Blocks); err != nil {
		return err
	}
	for name, steps := range p.Blocks {
		if err := validateSteps(name, steps, p.Blocks); err != nil {
			return err
		}
	}
	return nil
}

func validateSteps(seq string, steps []Step, blocks map[string][]Step) error {
	for pc, st := range steps {
		switch st.Op {
		case OpJump, OpJumpIf, OpJumpIfNot:
			if st.Target < 0 || st.Target > len(steps) {
				return fmt.Errorf("%s: step %d (%s) jumps to %d, out of [0, %d]", seq, pc, st.Op, st.Target, len(steps))
			}
		case OpIterNext:
			if st.Target < 0 || st.Target > len(steps) {
				return fmt.Errorf("%s: step %d (%s) exits to %d, out of [0, %d]", seq, pc, st.Op, st.Target, len(steps))
			}
			if len(st.Names) < 1 || len(st.Names) > 2 {
				return fmt.Errorf("%s: step %d (%s) binds %d names, want 1 or 2", seq, pc, st.Op, len(st.Names))
			}
		case OpLoad, OpStore:
			if st.Name == "" {
				return fmt.Errorf("%s: step %d (%s) has no name", seq, pc, st.Op)
			}
		case OpResolve:
			if len(st.Names) == 0 {
				return fmt.Errorf("%s: step %d (%s) has an empty path", seq, pc, st.Op)
			}
		case OpCall:
			if st.Argc < 0 {
				return fmt.Errorf("%s: step %d (%s) has negative arity", seq, pc, st.Op)
			}
		case OpCallBlock, OpCapture:
			if _, ok := blocks[st.Name]; !ok {
				return fmt.Errorf("%s: step %d (%s) references unknown block %q", seq, pc, st.Op, st.Name)
			}
		}
	}
	return nil
}

// Builder assembles a step sequence. Forward jumps are emitted with an
// unresolved target and fixed up through Patch; backward jumps use a
// pc recorded with Mark. Blocks are built with their own builders and
// attached with SetBlock.
type Builder struct {
	steps  []Step
	blocks map[string][]Step
}

func NewBuilder() *Builder {
	return &Builder{
		blocks: make(map[string][]Step),
	}
}

// Mark returns the pc of the next step to be emitted, for backward
// jump targets.
func (b *Builder) Mark() int {
	return len(b.steps)
}

// Patch points the jump or loop exit emitted at pc to the next step.
func (b *Builder) Patch(pc int) {
	b.steps[pc].Target = len(b.steps)
}

func (b *Builder) emit(st Step) int {
	b.steps = append(b.steps, st)
	return len(b.steps) - 1
}

// Text emits a narrow literal append.
func (b *Builder) Text(s string) {
	b.emit(Step{Op: OpText, Value: s})
}

// TextWide emits a wide literal append.
func (b *Builder) TextWide(s string) {
	b.emit(Step{Op: OpText, Value: []rune(s)})
}

// Const pushes a literal value.
func (b *Builder) Const(v any) {
	b.emit(Step{Op: OpConst, Value: v})
}

// Load pushes the value of a name: local bindings first, then the
// display.
func (b *Builder) Load(name string) {
	b.emit(Step{Op: OpLoad, Name: name})
}

// Store pops a value and binds it in the current scope.
func (b *Builder) Store(name string) {
	b.emit(Step{Op: OpStore, Name: name})
}

// ResolvePath pops a base value and walks a dotted path from it.
func (b *Builder) ResolvePath(names ...string) {
	b.emit(Step{Op: OpResolve, Names: names})
}

// Index pops a key, then a container, and pushes container[key].
func (b *Builder) Index() {
	b.emit(Step{Op: OpIndex})
}

// Call pops argc arguments (last on top), then the callee, and pushes
// the result.
func (b *Builder) Call(argc int) {
	b.emit(Step{Op: OpCall, Argc: argc})
}

// CallBuiltin pops argc arguments and calls a registered builtin.
func (b *Builder) CallBuiltin(name string, argc int) {
	b.emit(Step{Op: OpCall, Name: name, Argc: argc})
}

// Emit pops a value and appends it to the transaction.
func (b *Builder) Emit() {
	b.emit(Step{Op: OpEmit})
}

// Not pops a value and pushes its negated truth.
func (b *Builder) Not() {
	b.emit(Step{Op: OpNot})
}

// Compare pops the right operand, then the left, and pushes the
// comparison result.
func (b *Builder) Compare(op render.CompareOp) {
	b.emit(Step{Op: OpCompare, Cmp: op})
}

// Jump continues at a previously marked pc.
func (b *Builder) Jump(target int) {
	b.emit(Step{Op: OpJump, Target: target})
}

// JumpAhead emits a forward jump and returns its pc for Patch.
func (b *Builder) JumpAhead() int {
	return b.emit(Step{Op: OpJump, Target: -1})
}

// JumpIf pops a value and jumps forward when it is truthy. Returns the
// pc for Patch.
func (b *Builder) JumpIf() int {
	return b.emit(Step{Op: OpJumpIf, Target: -1})
}

// JumpIfNot pops a value and jumps forward when it is falsy. Returns
// the pc for Patch.
func (b *Builder) JumpIfNot() int {
	return b.emit(Step{Op: OpJumpIfNot, Target: -1})
}

// Dup duplicates the top of the stack.
func (b *Builder) Dup() {
	b.emit(Step{Op: OpDup})
}

// Pop discards the top of the stack.
func (b *Builder) Pop() {
	b.emit(Step{Op: OpPop})
}

// IterInit pops a value and opens a loop over its sequence form.
func (b *Builder) IterInit() {
	b.emit(Step{Op: OpIterInit})
}

// IterNext binds the next element to one name, or unpacks a pair into
// two, and falls through; when the loop is exhausted it exits forward.
// Returns the pc for Patch.
func (b *Builder) IterNext(names ...string) int {
	return b.emit(Step{Op: OpIterNext, Names: names, Target: -1})
}

// CallBlock renders a named block in place, against the same display
// and transaction.
func (b *Builder) CallBlock(name string) {
	b.emit(Step{Op: OpCallBlock, Name: name})
}

// Capture renders a named block into a transaction of its own, joins
// it, and pushes the resulting text.
func (b *Builder) Capture(name string) {
	b.emit(Step{Op: OpCapture, Name: name})
}

// SetBlock attaches a block built with its own builder. Blocks defined
// inside sub are merged in as well.
func (b *Builder) SetBlock(name string, sub *Builder) {
	b.blocks[name] = sub.steps
	for k, v := range sub.blocks {
		b.blocks[k] = v
	}
}

// Build finalizes the program.
func (b *Builder) Build() *Program {
	return &Program{
		Steps:  b.steps,
		Blocks: b.blocks,
	}
}
