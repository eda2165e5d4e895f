package render

import (
	"fmt"
	"reflect"
	"strings"
)

// CompareOp enumerates the comparison forms a render step can request.
type CompareOp uint8

const (
	CmpEq CompareOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
	CmpIn
	CmpNotIn
)

func (op CompareOp) String() string {
	switch op {
	case CmpEq:
		return "eq"
	case CmpNe:
		return "ne"
	case CmpLt:
		return "lt"
	case CmpLe:
		return "le"
	case CmpGt:
		return "gt"
	case CmpGe:
		return "ge"
	case CmpIn:
		return "in"
	case CmpNotIn:
		return "not in"
	}
	return "unknown"
}

// Compare evaluates a single comparison. Numbers compare across integer
// and float kinds; text compares lexically across representations;
// anything else supports equality only, and asking it to order is an
// error.
func Compare(op CompareOp, a, b any) (bool, error) {
	switch op {
	case CmpEq:
		return equalValues(a, b), nil
	case CmpNe:
		return !equalValues(a, b), nil
	case CmpIn:
		return Contains(b, a)
	case CmpNotIn:
		ok, err := Contains(b, a)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
	c, ok := orderValues(a, b)
	if !ok {
		return false, fmt.Errorf("cannot order %s and %s", typeName(a), typeName(b))
	}
	switch op {
	case CmpLt:
		return c < 0, nil
	case CmpLe:
		return c <= 0, nil
	case CmpGt:
		return c > 0, nil
	case CmpGe:
		return c >= 0, nil
	}
	return false, fmt.Errorf("unknown comparison %d", op)
}

// Contains tests membership: substring for text, key for mappings,
// element equality for sequences.
func Contains(container, item any) (bool, error) {
	switch c := container.(type) {
	case string:
		s, err := itemString(item)
		if err != nil {
			return false, err
		}
		return strings.Contains(c, s), nil
	case []byte:
		s, err := itemString(item)
		if err != nil {
			return false, err
		}
		return strings.Contains(string(c), s), nil
	case []rune:
		s, err := itemString(item)
		if err != nil {
			return false, err
		}
		return strings.Contains(string(c), s), nil
	case Text:
		s, err := itemString(item)
		if err != nil {
			return false, err
		}
		return strings.Contains(c.String(), s), nil
	case map[string]any:
		s, ok := item.(string)
		if !ok {
			return false, nil
		}
		_, found := c[s]
		return found, nil
	case orderedGetter:
		s, ok := item.(string)
		if !ok {
			return false, nil
		}
		_, found := c.Get(s)
		return found, nil
	case []any:
		for _, e := range c {
			if equalValues(e, item) {
				return true, nil
			}
		}
		return false, nil
	}
	rv := reflect.ValueOf(container)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if equalValues(rv.Index(i).Interface(), item) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("cannot test membership in %s", typeName(container))
}

// itemString insists membership probes into text are themselves text.
func itemString(item any) (string, error) {
	switch t := item.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case []rune:
		return string(t), nil
	case Text:
		return t.String(), nil
	}
	return "", fmt.Errorf("cannot search text for %s", typeName(item))
}

func equalValues(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	if as, aok := textString(a); aok {
		bs, bok := textString(b)
		return bok && as == bs
	}
	if ab, aok := a.(bool); aok {
		bb, bok := b.(bool)
		return bok && ab == bb
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}

// orderValues returns -1, 0 or 1 when a and b have an ordering.
func orderValues(a, b any) (int, bool) {
	if af, ok := asFloat(a); ok {
		bf, bok := asFloat(b)
		if !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}
	if as, ok := textString(a); ok {
		bs, bok := textString(b)
		if !bok {
			return 0, false
		}
		return strings.Compare(as, bs), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// textString matches only the text shapes, unlike ToNarrow, so numbers
// never compare equal to their printed form.
func textString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case []rune:
		return string(t), true
	case Text:
		return t.String(), true
	}
	return "", false
}
