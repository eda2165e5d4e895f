package seam

// valueStack implements a simple stack for render values.
type valueStack struct {
	data []any
}

// newValueStack creates a new value stack.
func newValueStack() *valueStack {
	return &valueStack{
		data: make([]any, 0, 16),
	}
}

// push adds a value to the top of the stack.
func (s *valueStack) push(v any) {
	s.data = append(s.data, v)
}

// pop removes and returns the top value from the stack.
// Panics if stack is empty.
func (s *valueStack) pop() any {
	if len(s.data) == 0 {
		panic("render stack underflow")
	}
	v := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v
}

// top returns the top value without removing it.
func (s *valueStack) top() any {
	if len(s.data) == 0 {
		panic("render stack underflow")
	}
	return s.data[len(s.data)-1]
}

// len returns the number of elements on the stack.
func (s *valueStack) len() int {
	return len(s.data)
}

// scopeFrames manages nested local binding scopes.
type scopeFrames struct {
	frames []map[string]any
}

// newScopeFrames creates a new scope frame manager.
func newScopeFrames() *scopeFrames {
	return &scopeFrames{
		frames: make([]map[string]any, 0, 8),
	}
}

// pushFrame creates a new binding scope.
func (sf *scopeFrames) pushFrame() {
	sf.frames = append(sf.frames, nil)
}

// popFrame removes the current binding scope.
func (sf *scopeFrames) popFrame() {
	if len(sf.frames) > 0 {
		sf.frames = sf.frames[:len(sf.frames)-1]
	}
}

// store binds a value in the current frame.
func (sf *scopeFrames) store(key string, v any) {
	if len(sf.frames) == 0 {
		return
	}
	if sf.frames[len(sf.frames)-1] == nil {
		sf.frames[len(sf.frames)-1] = make(map[string]any)
	}
	sf.frames[len(sf.frames)-1][key] = v
}

// load retrieves a binding from the current or outer frames.
func (sf *scopeFrames) load(key string) (any, bool) {
	// Search from innermost to outermost frame
	for i := len(sf.frames) - 1; i >= 0; i-- {
		if sf.frames[i] == nil {
			continue
		}
		if v, ok := sf.frames[i][key]; ok {
			return v, true
		}
	}
	return nil, false
}
