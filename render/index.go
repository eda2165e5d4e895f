package render

import (
	"fmt"
	"math"
	"reflect"
)

// Indexable is implemented by containers with their own subscript
// behavior, consulted before reflection in the generic path.
type Indexable interface {
	Index(key any) (any, error)
}

// Index subscripts container with key. The fast path applies when the
// container is exactly []any and the key is exactly int: a negative key
// gets the length added once, then the position must land in
// [0, len). Everything else takes the generic path, which agrees with
// the fast path on semantics.
func Index(container, key any) (any, error) {
	if seq, ok := container.([]any); ok {
		if k, ok := key.(int); ok {
			i := k
			if i < 0 {
				i += len(seq)
			}
			if i < 0 || i >= len(seq) {
				return nil, &IndexError{
					Container: "sequence",
					Key:       key,
					Reason:    fmt.Sprintf("position out of range [0, %d)", len(seq)),
				}
			}
			return seq[i], nil
		}
	}
	return genericIndex(container, key)
}

func genericIndex(container, key any) (any, error) {
	if x, ok := container.(Indexable); ok {
		return x.Index(key)
	}
	switch c := container.(type) {
	case Text:
		i, ok := asInt(key)
		if !ok {
			return nil, &IndexError{Container: "text", Key: key, Reason: "key is not an integer"}
		}
		if c.Kind() == Wide {
			r, err := indexUnits(len(c.r), i, key, "text")
			if err != nil {
				return nil, err
			}
			return WideText(c.r[r : r+1]), nil
		}
		b, err := indexUnits(len(c.b), i, key, "text")
		if err != nil {
			return nil, err
		}
		return NarrowText(c.b[b : b+1]), nil
	case string:
		i, ok := asInt(key)
		if !ok {
			return nil, &IndexError{Container: "narrow text", Key: key, Reason: "key is not an integer"}
		}
		p, err := indexUnits(len(c), i, key, "narrow text")
		if err != nil {
			return nil, err
		}
		return c[p : p+1], nil
	case []byte:
		i, ok := asInt(key)
		if !ok {
			return nil, &IndexError{Container: "narrow text", Key: key, Reason: "key is not an integer"}
		}
		p, err := indexUnits(len(c), i, key, "narrow text")
		if err != nil {
			return nil, err
		}
		return c[p : p+1], nil
	case []rune:
		i, ok := asInt(key)
		if !ok {
			return nil, &IndexError{Container: "wide text", Key: key, Reason: "key is not an integer"}
		}
		p, err := indexUnits(len(c), i, key, "wide text")
		if err != nil {
			return nil, err
		}
		return c[p : p+1], nil
	case map[string]any:
		ks, ok := key.(string)
		if !ok {
			return nil, &IndexError{Container: "mapping", Key: key, Reason: "key is not a string"}
		}
		v, ok := c[ks]
		if !ok {
			return nil, &IndexError{Container: "mapping", Key: key, Reason: "no such key"}
		}
		return v, nil
	case orderedGetter:
		ks, ok := key.(string)
		if !ok {
			return nil, &IndexError{Container: "mapping", Key: key, Reason: "key is not a string"}
		}
		v, ok := c.Get(ks)
		if !ok {
			return nil, &IndexError{Container: "mapping", Key: key, Reason: "no such key"}
		}
		return v, nil
	}
	rv := reflect.ValueOf(container)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		i, ok := asInt(key)
		if !ok {
			return nil, &IndexError{Container: typeName(container), Key: key, Reason: "key is not an integer"}
		}
		p, err := indexUnits(rv.Len(), i, key, typeName(container))
		if err != nil {
			return nil, err
		}
		return rv.Index(p).Interface(), nil
	case reflect.Map:
		kv := reflect.ValueOf(key)
		kt := rv.Type().Key()
		if !kv.IsValid() {
			return nil, &IndexError{Container: typeName(container), Key: key, Reason: "key is nil"}
		}
		switch {
		case kv.Type().AssignableTo(kt):
		case isIntKind(kv.Kind()) && isIntKind(kt.Kind()):
			kv = kv.Convert(kt)
		default:
			return nil, &IndexError{
				Container: typeName(container),
				Key:       key,
				Reason:    fmt.Sprintf("key type %T does not match map key type %s", key, kt),
			}
		}
		mv := rv.MapIndex(kv)
		if !mv.IsValid() {
			return nil, &IndexError{Container: typeName(container), Key: key, Reason: "no such key"}
		}
		return mv.Interface(), nil
	}
	return nil, &IndexError{Container: typeName(container), Key: key, Reason: "value does not support indexing"}
}

// indexUnits applies the negative-wrap rule and bounds check shared by
// every positional container. orig is the key as the caller wrote it,
// for error reporting.
func indexUnits(length, i int, orig any, container string) (int, error) {
	p := i
	if p < 0 {
		p += length
	}
	if p < 0 || p >= length {
		return 0, &IndexError{
			Container: container,
			Key:       orig,
			Reason:    fmt.Sprintf("position out of range [0, %d)", length),
		}
	}
	return p, nil
}

// asInt accepts any integer kind as a position.
func asInt(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case int8:
		return int(k), true
	case int16:
		return int(k), true
	case int32:
		return int(k), true
	case int64:
		return int(k), true
	case uint:
		if uint64(k) > math.MaxInt {
			return 0, false
		}
		return int(k), true
	case uint8:
		return int(k), true
	case uint16:
		return int(k), true
	case uint32:
		return int(k), true
	case uint64:
		if k > math.MaxInt {
			return 0, false
		}
		return int(k), true
	}
	return 0, false
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
