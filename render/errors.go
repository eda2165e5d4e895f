package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMember is returned by Object.LookupMember to report that the
// named member does not exist. Any other error from an accessor is
// treated as a real failure and propagates to the caller unchanged.
var ErrNoMember = errors.New("no such member")

// ResolveError reports a dotted-path walk that found neither a mapping
// key nor a member at one of its hops. Hop is the zero-based index into
// Path of the name that failed.
type ResolveError struct {
	Path []string
	Hop  int
	Name string
}

func (e *ResolveError) Error() string {
	if len(e.Path) <= 1 {
		return fmt.Sprintf("cannot resolve name %q: no such key or member", e.Name)
	}
	return fmt.Sprintf("cannot resolve %q (step %d of %s): no such key or member",
		e.Name, e.Hop+1, strings.Join(e.Path, "."))
}

// IndexError reports a subscript that the container cannot satisfy:
// an out-of-range position, or a key/container combination with no
// indexing behavior.
type IndexError struct {
	Container string
	Key       any
	Reason    string
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("cannot index %s with %v: %s", e.Container, e.Key, e.Reason)
}

// CoercionError reports a fragment whose value could not be rendered as
// text during a join. Index is the fragment's position in the
// transaction, Value the value that refused, and Cause the rendering
// failure, carried unchanged.
type CoercionError struct {
	Index int
	Value any
	Cause error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot render fragment %d as text: %v", e.Index, e.Cause)
}

func (e *CoercionError) Unwrap() error {
	return e.Cause
}

// InternalError reports a state the engine can only reach through a
// defect, such as a coercion status that is neither narrow nor wide.
// It is never the answer to bad input.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal inconsistency: " + e.Message
}
