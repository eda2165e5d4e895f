package render

import "reflect"

// Logical is implemented by values that decide their own truth value.
// The decision can fail; the failure propagates to whoever asked.
type Logical interface {
	Truthy() (bool, error)
}

// Truthy reports a value's truth: nil and empty things are false,
// numbers are false at zero, booleans are themselves, and values
// implementing Logical answer for themselves. Anything else is true.
func Truthy(v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, nil
	case bool:
		return t, nil
	case Logical:
		return t.Truthy()
	case int:
		return t != 0, nil
	case int8:
		return t != 0, nil
	case int16:
		return t != 0, nil
	case int32:
		return t != 0, nil
	case int64:
		return t != 0, nil
	case uint:
		return t != 0, nil
	case uint8:
		return t != 0, nil
	case uint16:
		return t != 0, nil
	case uint32:
		return t != 0, nil
	case uint64:
		return t != 0, nil
	case float32:
		return t != 0, nil
	case float64:
		return t != 0, nil
	case string:
		return t != "", nil
	case []byte:
		return len(t) > 0, nil
	case []rune:
		return len(t) > 0, nil
	case Text:
		return t.Len() > 0, nil
	case []any:
		return len(t) > 0, nil
	case map[string]any:
		return len(t) > 0, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0, nil
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil(), nil
	}
	return true, nil
}

// Not negates Truthy, passing its error through.
func Not(v any) (bool, error) {
	b, err := Truthy(v)
	if err != nil {
		return false, err
	}
	return !b, nil
}
