package render

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Sequence materializes a value for iteration. Sequences keep their
// elements; text iterates unit by unit in its own representation;
// mappings iterate their keys, sorted for plain maps and in insertion
// order for ordered maps. Values with no iteration behavior fail.
func Sequence(v any) ([]any, error) {
	switch t := v.(type) {
	case []any:
		return t, nil
	case Text:
		if t.Kind() == Wide {
			out := make([]any, len(t.r))
			for i := range t.r {
				out[i] = WideText(t.r[i : i+1])
			}
			return out, nil
		}
		out := make([]any, len(t.b))
		for i := range t.b {
			out[i] = NarrowText(t.b[i : i+1])
		}
		return out, nil
	case string:
		out := make([]any, len(t))
		for i := 0; i < len(t); i++ {
			out[i] = t[i : i+1]
		}
		return out, nil
	case []byte:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i : i+1]
		}
		return out, nil
	case []rune:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i : i+1]
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = k
		}
		return out, nil
	case *sequencedmap.Map[string, any]:
		var out []any
		for k := range t.All() {
			out = append(out, k)
		}
		return out, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = k.Interface()
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot iterate %s", typeName(v))
}
