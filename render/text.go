package render

import (
	"encoding"
	"fmt"
	"strconv"
)

// decodeNarrow is the default decoding from narrow to wide text: UTF-8.
func decodeNarrow(b []byte) []rune {
	return []rune(string(b))
}

func encodeWide(r []rune) []byte {
	return []byte(string(r))
}

// ToNarrow renders a value as narrow text. Plain Go scalars format
// directly; values implementing encoding.TextMarshaler render through
// it, and a marshal failure is the one way this can return an error.
// Everything else falls back to its fmt form.
func ToNarrow(v any) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case Text:
		return t.Bytes(), nil
	case string:
		return []byte(t), nil
	case []byte:
		return t, nil
	case []rune:
		return encodeWide(t), nil
	case bool:
		if t {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return strconv.AppendInt(nil, int64(t), 10), nil
	case int8:
		return strconv.AppendInt(nil, int64(t), 10), nil
	case int16:
		return strconv.AppendInt(nil, int64(t), 10), nil
	case int32:
		return strconv.AppendInt(nil, int64(t), 10), nil
	case int64:
		return strconv.AppendInt(nil, t, 10), nil
	case uint:
		return strconv.AppendUint(nil, uint64(t), 10), nil
	case uint8:
		return strconv.AppendUint(nil, uint64(t), 10), nil
	case uint16:
		return strconv.AppendUint(nil, uint64(t), 10), nil
	case uint32:
		return strconv.AppendUint(nil, uint64(t), 10), nil
	case uint64:
		return strconv.AppendUint(nil, t, 10), nil
	case float32:
		return []byte(strconv.FormatFloat(float64(t), 'g', 10, 32)), nil
	case float64:
		return []byte(strconv.FormatFloat(t, 'g', 15, 64)), nil
	}
	if m, ok := v.(encoding.TextMarshaler); ok {
		b, err := m.MarshalText()
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	if s, ok := v.(fmt.Stringer); ok {
		return []byte(s.String()), nil
	}
	if e, ok := v.(error); ok {
		return []byte(e.Error()), nil
	}
	return fmt.Appendf(nil, "%v", v), nil
}

// ToWide renders a value as wide text. Values that are already wide
// pass through; narrow text decodes; anything else renders narrow and
// then decodes, so both filters fail for exactly the same values.
func ToWide(v any) ([]rune, error) {
	switch t := v.(type) {
	case Text:
		return t.Runes(), nil
	case []rune:
		return t, nil
	case string:
		return []rune(t), nil
	case []byte:
		return decodeNarrow(t), nil
	}
	b, err := ToNarrow(v)
	if err != nil {
		return nil, err
	}
	return decodeNarrow(b), nil
}
