package render

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Func is the callable capability: display-provided callables and
// builtins share this shape. An error aborts the render that made the
// call.
type Func func(args ...any) (any, error)

// builtinRegistry maps builtin names to their implementations.
var builtinRegistry = map[string]Func{
	// Text conversion
	"str":  builtinStr,
	"wide": builtinWide,

	// Introspection
	"len":           builtinLen,
	"keys":          builtinKeys,
	"keys_unsorted": builtinKeysUnsorted,
	"contains":      builtinContains,

	// Iteration helpers
	"range":     builtinRange,
	"enumerate": builtinEnumerate,

	// Text operations
	"join":  builtinJoinSeq,
	"upper": builtinUpper,
	"lower": builtinLower,
	"trim":  builtinTrim,
}

// Builtin looks up a registered builtin by name.
func Builtin(name string) (Func, bool) {
	f, ok := builtinRegistry[name]
	return f, ok
}

// BuiltinNames returns the registered builtin names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinRegistry))
	for name := range builtinRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func wantArgs(name string, args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

// textValue narrows an argument to one of the text shapes, keeping its
// representation.
func textValue(name string, v any) (Text, error) {
	switch t := v.(type) {
	case Text:
		return t, nil
	case string:
		return NewText(t), nil
	case []byte:
		return NarrowText(t), nil
	case []rune:
		return WideText(t), nil
	}
	return Text{}, fmt.Errorf("%s: expected text, got %s", name, typeName(v))
}

// ============================================================================
// Text conversion
// ============================================================================

func builtinStr(args ...any) (any, error) {
	if err := wantArgs("str", args, 1); err != nil {
		return nil, err
	}
	b, err := ToNarrow(args[0])
	if err != nil {
		return nil, err
	}
	return NarrowText(b), nil
}

func builtinWide(args ...any) (any, error) {
	if err := wantArgs("wide", args, 1); err != nil {
		return nil, err
	}
	r, err := ToWide(args[0])
	if err != nil {
		return nil, err
	}
	return WideText(r), nil
}

// ============================================================================
// Introspection
// ============================================================================

func builtinLen(args ...any) (any, error) {
	if err := wantArgs("len", args, 1); err != nil {
		return nil, err
	}
	switch t := args[0].(type) {
	case Text:
		return t.Len(), nil
	case string:
		return len(t), nil
	case []byte:
		return len(t), nil
	case []rune:
		return len(t), nil
	case []any:
		return len(t), nil
	case map[string]any:
		return len(t), nil
	case *sequencedmap.Map[string, any]:
		n := 0
		for range t.All() {
			n++
		}
		return n, nil
	}
	rv := reflect.ValueOf(args[0])
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	}
	return nil, fmt.Errorf("len: %s has no length", typeName(args[0]))
}

func builtinKeys(args ...any) (any, error) {
	if err := wantArgs("keys", args, 1); err != nil {
		return nil, err
	}
	keys, err := mappingKeys("keys", args[0])
	if err != nil {
		return nil, err
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].(string) < keys[j].(string)
	})
	return keys, nil
}

// builtinKeysUnsorted keeps insertion order for ordered maps; plain
// maps have no order to keep, so they come back sorted for determinism.
func builtinKeysUnsorted(args ...any) (any, error) {
	if err := wantArgs("keys_unsorted", args, 1); err != nil {
		return nil, err
	}
	if m, ok := args[0].(*sequencedmap.Map[string, any]); ok {
		var keys []any
		for k := range m.All() {
			keys = append(keys, k)
		}
		return keys, nil
	}
	return builtinKeys(args...)
}

func mappingKeys(name string, v any) ([]any, error) {
	switch m := v.(type) {
	case map[string]any:
		keys := make([]any, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		return keys, nil
	case *sequencedmap.Map[string, any]:
		var keys []any
		for k := range m.All() {
			keys = append(keys, k)
		}
		return keys, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		keys := make([]any, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		return keys, nil
	}
	return nil, fmt.Errorf("%s: expected a mapping, got %s", name, typeName(v))
}

func builtinContains(args ...any) (any, error) {
	if err := wantArgs("contains", args, 2); err != nil {
		return nil, err
	}
	return Contains(args[0], args[1])
}

// ============================================================================
// Iteration helpers
// ============================================================================

// builtinRange is range(stop), range(start, stop) or
// range(start, stop, step).
func builtinRange(args ...any) (any, error) {
	if len(args) < 1 || len(args) > 3 {
		return nil, fmt.Errorf("range: expected 1 to 3 arguments, got %d", len(args))
	}
	bounds := make([]int, len(args))
	for i, a := range args {
		n, ok := asInt(a)
		if !ok {
			return nil, fmt.Errorf("range: expected an integer, got %s", typeName(a))
		}
		bounds[i] = n
	}
	start, stop, step := 0, 0, 1
	switch len(bounds) {
	case 1:
		stop = bounds[0]
	case 2:
		start, stop = bounds[0], bounds[1]
	case 3:
		start, stop, step = bounds[0], bounds[1], bounds[2]
	}
	if step == 0 {
		return nil, fmt.Errorf("range: step must not be zero")
	}
	var out []any
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out, nil
}

// builtinEnumerate pairs each element with its position, for
// two-variable loops.
func builtinEnumerate(args ...any) (any, error) {
	if err := wantArgs("enumerate", args, 1); err != nil {
		return nil, err
	}
	seq, err := Sequence(args[0])
	if err != nil {
		return nil, err
	}
	out := make([]any, len(seq))
	for i, v := range seq {
		out[i] = []any{i, v}
	}
	return out, nil
}

// ============================================================================
// Text operations
// ============================================================================

// builtinJoinSeq renders each element of a sequence and joins them with
// a separator, through a transaction of its own.
func builtinJoinSeq(args ...any) (any, error) {
	if err := wantArgs("join", args, 2); err != nil {
		return nil, err
	}
	seq, err := Sequence(args[0])
	if err != nil {
		return nil, err
	}
	sep, err := textValue("join", args[1])
	if err != nil {
		return nil, err
	}
	tx := NewTransaction()
	for i, v := range seq {
		if i > 0 {
			tx.AppendText(sep)
		}
		tx.AppendValue(v)
	}
	return Join(tx)
}

func builtinUpper(args ...any) (any, error) {
	if err := wantArgs("upper", args, 1); err != nil {
		return nil, err
	}
	t, err := textValue("upper", args[0])
	if err != nil {
		return nil, err
	}
	if t.Kind() == Wide {
		return WideText([]rune(strings.ToUpper(string(t.Runes())))), nil
	}
	return NarrowText([]byte(strings.ToUpper(string(t.Bytes())))), nil
}

func builtinLower(args ...any) (any, error) {
	if err := wantArgs("lower", args, 1); err != nil {
		return nil, err
	}
	t, err := textValue("lower", args[0])
	if err != nil {
		return nil, err
	}
	if t.Kind() == Wide {
		return WideText([]rune(strings.ToLower(string(t.Runes())))), nil
	}
	return NarrowText([]byte(strings.ToLower(string(t.Bytes())))), nil
}

func builtinTrim(args ...any) (any, error) {
	if err := wantArgs("trim", args, 1); err != nil {
		return nil, err
	}
	t, err := textValue("trim", args[0])
	if err != nil {
		return nil, err
	}
	if t.Kind() == Wide {
		return WideText([]rune(strings.TrimSpace(string(t.Runes())))), nil
	}
	return NarrowText([]byte(strings.TrimSpace(string(t.Bytes())))), nil
}
