package render

import (
	"errors"
	"reflect"
)

// Mapping is implemented by display values that support mapping-style
// key lookup. The boolean distinguishes a missing key from a key bound
// to nil.
type Mapping interface {
	LookupKey(key string) (any, bool)
}

// Object is implemented by values that expose named members to
// attribute-style lookup. A missing member is reported as ErrNoMember;
// any other error is a real accessor failure and propagates unchanged.
type Object interface {
	LookupMember(name string) (any, error)
}

// orderedGetter matches ordered map types such as
// sequencedmap.Map[string, any] without naming them here.
type orderedGetter interface {
	Get(key string) (any, bool)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Resolve walks a dotted path from base. Every hop tries mapping-style
// lookup first and attribute-style lookup second; an empty path returns
// base unchanged. The first hop that fails both strategies aborts the
// walk with a ResolveError and later hops never run. Intermediate hop
// results live only for their own hop; accessor side effects are the
// host's business.
func Resolve(base any, path ...string) (any, error) {
	cur := base
	for i, name := range path {
		next, ok := Lookup(cur, name)
		if !ok {
			var err error
			next, err = lookupMember(cur, name)
			if err != nil {
				if errors.Is(err, ErrNoMember) {
					return nil, &ResolveError{Path: path, Hop: i, Name: name}
				}
				return nil, err
			}
		}
		cur = next
	}
	return cur, nil
}

// Lookup performs mapping-style lookup on v: the Mapping interface,
// plain string-keyed maps, and ordered maps exposing Get. A key bound
// to nil is found; a missing key is not.
func Lookup(v any, key string) (any, bool) {
	switch m := v.(type) {
	case Mapping:
		return m.LookupKey(key)
	case map[string]any:
		val, ok := m[key]
		return val, ok
	case orderedGetter:
		return m.Get(key)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		kt := rv.Type().Key()
		var kv reflect.Value
		switch {
		case kt.Kind() == reflect.String:
			kv = reflect.ValueOf(key).Convert(kt)
		case kt.Kind() == reflect.Interface:
			kv = reflect.ValueOf(key)
		default:
			return nil, false
		}
		if mv := rv.MapIndex(kv); mv.IsValid() {
			return mv.Interface(), true
		}
	}
	return nil, false
}

// lookupMember performs attribute-style lookup: the Object interface,
// then exported struct fields (through pointers, including promoted
// fields), then exported niladic methods returning one value or a value
// and an error.
func lookupMember(v any, name string) (any, error) {
	if o, ok := v.(Object); ok {
		return o.LookupMember(name)
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, ErrNoMember
	}
	direct := rv
	for direct.Kind() == reflect.Pointer {
		if direct.IsNil() {
			return nil, ErrNoMember
		}
		direct = direct.Elem()
	}
	if direct.Kind() == reflect.Struct {
		if sf, ok := direct.Type().FieldByName(name); ok && sf.IsExported() {
			return direct.FieldByName(name).Interface(), nil
		}
	}
	if m := rv.MethodByName(name); m.IsValid() {
		return callMemberMethod(m)
	}
	return nil, ErrNoMember
}

// callMemberMethod treats a niladic method as a computed member. A
// (value, error) shape feeds the error straight through; shapes that
// take arguments or return anything else are not members.
func callMemberMethod(m reflect.Value) (any, error) {
	mt := m.Type()
	if mt.NumIn() != 0 {
		return nil, ErrNoMember
	}
	switch mt.NumOut() {
	case 1:
		return m.Call(nil)[0].Interface(), nil
	case 2:
		if !mt.Out(1).Implements(errorType) {
			return nil, ErrNoMember
		}
		out := m.Call(nil)
		if err, _ := out[1].Interface().(error); err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}
	return nil, ErrNoMember
}
