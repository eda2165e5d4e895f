package seam

import (
	"fmt"
	"time"

	"github.com/seamlang/seam/render"
)

// env is the execution environment of one render pass. It owns the
// value stack and scope frames; the transaction belongs to the caller.
type env struct {
	opts     Options
	prog     *Program
	display  any
	tx       *render.Transaction
	stack    *valueStack
	scopes   *scopeFrames
	logger   render.Logger
	execID   string
	stepsRun int
}

func newEnv(p *Program, display any, tx *render.Transaction, opts Options) *env {
	opts = opts.withDefaults()
	scopes := newScopeFrames()
	scopes.pushFrame() // render-wide frame

	// Unique render ID for correlating log lines
	execID := fmt.Sprintf("r%d", time.Now().UnixNano()%1000000)
	logger := opts.logger().With(map[string]any{"render": execID})

	return &env{
		opts:    opts,
		prog:    p,
		display: display,
		tx:      tx,
		stack:   newValueStack(),
		scopes:  scopes,
		logger:  logger,
		execID:  execID,
	}
}

// Execute runs the program against display, appending output fragments
// into tx. Joining the transaction stays the caller's move, so a host
// can interleave its own appends before and after.
func (p *Program) Execute(display any, tx *render.Transaction, opts Options) error {
	if err := p.Validate(); err != nil {
		return err
	}
	e := newEnv(p, display, tx, opts)
	e.logger.With(map[string]any{
		"steps":   len(p.Steps),
		"blocks":  len(p.Blocks),
		"display": render.ValueSummary(display),
	}).Infof("starting render")

	if err := e.run("", p.Steps, 0); err != nil {
		e.logger.Errorf("render failed: %v", err)
		return err
	}
	e.logger.With(map[string]any{"fragments": tx.Len()}).Infof("render complete")
	return nil
}

// Render executes into a fresh transaction and joins it.
func (p *Program) Render(display any, opts Options) (render.Text, error) {
	tx := render.NewTransaction()
	if err := p.Execute(display, tx, opts); err != nil {
		return render.Text{}, err
	}
	return render.Join(tx)
}

// iterState is one open loop: the materialized sequence and a cursor.
type iterState struct {
	seq []any
	pos int
}

// run executes one step sequence. Blocks recurse through here with a
// fresh scope frame; loops never span a sequence boundary, so the open
// loops are locals.
func (e *env) run(block string, steps []Step, depth int) error {
	if depth > e.opts.MaxBlockDepth {
		return fmt.Errorf("exceeded maximum block depth (%d)", e.opts.MaxBlockDepth)
	}
	var iters []*iterState
	pc := 0
	for pc < len(steps) {
		e.stepsRun++
		if e.stepsRun > e.opts.MaxSteps {
			return fmt.Errorf("exceeded maximum steps (%d), possible jump loop", e.opts.MaxSteps)
		}
		st := steps[pc]
		e.logger.Debugf("step pc=%d op=%s stack=%d tx=%d", pc, st.Op, e.stack.len(), e.tx.Len())

		switch st.Op {
		case OpNop:

		case OpText:
			if s, ok := st.Value.(string); ok {
				e.tx.AppendString(s)
			} else {
				e.tx.AppendValue(st.Value)
			}

		case OpConst:
			e.stack.push(st.Value)

		case OpLoad:
			v, ok := e.scopes.load(st.Name)
			if !ok {
				v, ok = render.Lookup(e.display, st.Name)
			}
			if !ok {
				return execFail(block, pc, st.Op, &NameError{Name: st.Name})
			}
			e.stack.push(v)

		case OpStore:
			e.scopes.store(st.Name, e.stack.pop())

		case OpResolve:
			v, err := render.Resolve(e.stack.pop(), st.Names...)
			if err != nil {
				return execFail(block, pc, st.Op, err)
			}
			e.stack.push(v)

		case OpIndex:
			key := e.stack.pop()
			container := e.stack.pop()
			v, err := render.Index(container, key)
			if err != nil {
				return execFail(block, pc, st.Op, err)
			}
			e.stack.push(v)

		case OpCall:
			args := make([]any, st.Argc)
			for i := st.Argc - 1; i >= 0; i-- {
				args[i] = e.stack.pop()
			}
			var fn render.Func
			if st.Name != "" {
				f, ok := render.Builtin(st.Name)
				if !ok {
					return execFail(block, pc, st.Op, &NameError{Name: st.Name})
				}
				fn = f
			} else {
				f, err := calleeFunc(e.stack.pop())
				if err != nil {
					return execFail(block, pc, st.Op, err)
				}
				fn = f
			}
			v, err := fn(args...)
			if err != nil {
				return execFail(block, pc, st.Op, err)
			}
			e.stack.push(v)

		case OpEmit:
			e.tx.AppendValue(e.stack.pop())

		case OpNot:
			b, err := render.Not(e.stack.pop())
			if err != nil {
				return execFail(block, pc, st.Op, err)
			}
			e.stack.push(b)

		case OpCompare:
			right := e.stack.pop()
			left := e.stack.pop()
			b, err := render.Compare(st.Cmp, left, right)
			if err != nil {
				return execFail(block, pc, st.Op, err)
			}
			e.stack.push(b)

		case OpJump:
			pc = st.Target
			continue

		case OpJumpIf:
			t, err := render.Truthy(e.stack.pop())
			if err != nil {
				return execFail(block, pc, st.Op, err)
			}
			if t {
				pc = st.Target
				continue
			}

		case OpJumpIfNot:
			t, err := render.Truthy(e.stack.pop())
			if err != nil {
				return execFail(block, pc, st.Op, err)
			}
			if !t {
				pc = st.Target
				continue
			}

		case OpDup:
			e.stack.push(e.stack.top())

		case OpPop:
			e.stack.pop()

		case OpIterInit:
			seq, err := render.Sequence(e.stack.pop())
			if err != nil {
				return execFail(block, pc, st.Op, err)
			}
			iters = append(iters, &iterState{seq: seq})

		case OpIterNext:
			if len(iters) == 0 {
				return execFail(block, pc, st.Op, &render.InternalError{Message: "iternext with no open loop"})
			}
			it := iters[len(iters)-1]
			if it.pos >= len(it.seq) {
				iters = iters[:len(iters)-1]
				pc = st.Target
				continue
			}
			elem := it.seq[it.pos]
			it.pos++
			if len(st.Names) == 1 {
				e.scopes.store(st.Names[0], elem)
			} else {
				pair, err := unpackPair(elem)
				if err != nil {
					return execFail(block, pc, st.Op, err)
				}
				e.scopes.store(st.Names[0], pair[0])
				e.scopes.store(st.Names[1], pair[1])
			}

		case OpCallBlock:
			e.scopes.pushFrame()
			err := e.run(st.Name, e.prog.Blocks[st.Name], depth+1)
			e.scopes.popFrame()
			if err != nil {
				return err
			}

		case OpCapture:
			sub := render.NewTransaction()
			outer := e.tx
			e.tx = sub
			e.scopes.pushFrame()
			err := e.run(st.Name, e.prog.Blocks[st.Name], depth+1)
			e.scopes.popFrame()
			e.tx = outer
			if err != nil {
				return err
			}
			text, err := render.Join(sub)
			if err != nil {
				return execFail(block, pc, st.Op, err)
			}
			e.stack.push(text)

		default:
			return execFail(block, pc, st.Op, &render.InternalError{
				Message: fmt.Sprintf("unknown opcode %d", st.Op),
			})
		}
		pc++
	}
	return nil
}

// calleeFunc accepts the callable shapes a display can carry.
func calleeFunc(v any) (render.Func, error) {
	switch f := v.(type) {
	case render.Func:
		return f, nil
	case func(args ...any) (any, error):
		return f, nil
	}
	return nil, fmt.Errorf("cannot call %T", v)
}

// unpackPair splits a two-element sequence for two-variable loops.
func unpackPair(v any) ([2]any, error) {
	seq, ok := v.([]any)
	if !ok || len(seq) != 2 {
		return [2]any{}, fmt.Errorf("cannot unpack %T into two names", v)
	}
	return [2]any{seq[0], seq[1]}, nil
}
