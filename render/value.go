package render

import "fmt"

// FragmentKind classifies entries in a Transaction.
type FragmentKind uint8

const (
	FragmentNarrow FragmentKind = iota
	FragmentWide
	FragmentOpaque
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentNarrow:
		return "narrow"
	case FragmentWide:
		return "wide"
	case FragmentOpaque:
		return "opaque"
	}
	return "unknown"
}

// Fragment is one element of a render transaction: a byte string, a
// code-point string, or an arbitrary value whose text form is decided
// later, during the join. The kind is fixed when the fragment is built;
// coercion rewrites fragments wholesale rather than mutating them.
type Fragment struct {
	kind   FragmentKind
	narrow []byte
	wide   []rune
	value  any
}

// Constructors and accessors.
func NarrowFragment(b []byte) Fragment {
	return Fragment{kind: FragmentNarrow, narrow: b}
}

func WideFragment(r []rune) Fragment {
	return Fragment{kind: FragmentWide, wide: r}
}

func OpaqueFragment(v any) Fragment {
	return Fragment{kind: FragmentOpaque, value: v}
}

// FragmentOf tags an arbitrary value on entry: known text shapes become
// narrow or wide fragments immediately, everything else stays opaque
// until the join's coercion pass renders it.
func FragmentOf(v any) Fragment {
	switch t := v.(type) {
	case Fragment:
		return t
	case Text:
		return t.Fragment()
	case string:
		return Fragment{kind: FragmentNarrow, narrow: []byte(t)}
	case []byte:
		return Fragment{kind: FragmentNarrow, narrow: t}
	case []rune:
		return Fragment{kind: FragmentWide, wide: t}
	}
	return Fragment{kind: FragmentOpaque, value: v}
}

func (f Fragment) Kind() FragmentKind { return f.kind }

func (f Fragment) AsNarrow() ([]byte, bool) {
	if f.kind == FragmentNarrow {
		return f.narrow, true
	}
	return nil, false
}

func (f Fragment) AsWide() ([]rune, bool) {
	if f.kind == FragmentWide {
		return f.wide, true
	}
	return nil, false
}

func (f Fragment) AsValue() (any, bool) {
	if f.kind == FragmentOpaque {
		return f.value, true
	}
	return nil, false
}

// TextKind names the two text representations the engine works in.
// Narrow text is a byte string; wide text is a code-point string. The
// default decoding between them is UTF-8.
type TextKind uint8

const (
	Narrow TextKind = iota
	Wide
)

func (k TextKind) String() string {
	if k == Wide {
		return "wide"
	}
	return "narrow"
}

// Text is finished text in one of the two representations. The zero
// value is empty narrow text.
type Text struct {
	kind TextKind
	b    []byte
	r    []rune
}

func NarrowText(b []byte) Text {
	return Text{kind: Narrow, b: b}
}

func WideText(r []rune) Text {
	return Text{kind: Wide, r: r}
}

// NewText builds narrow text from a Go string.
func NewText(s string) Text {
	return Text{kind: Narrow, b: []byte(s)}
}

func (t Text) Kind() TextKind { return t.kind }

// Len reports the length in the text's own units: bytes when narrow,
// code points when wide.
func (t Text) Len() int {
	if t.kind == Wide {
		return len(t.r)
	}
	return len(t.b)
}

func (t Text) String() string {
	if t.kind == Wide {
		return string(t.r)
	}
	return string(t.b)
}

// Bytes returns the UTF-8 byte form, encoding wide text as needed.
func (t Text) Bytes() []byte {
	if t.kind == Wide {
		return []byte(string(t.r))
	}
	return t.b
}

// Runes returns the code-point form, decoding narrow text as needed.
func (t Text) Runes() []rune {
	if t.kind == Wide {
		return t.r
	}
	return decodeNarrow(t.b)
}

// Fragment converts the text into a transaction fragment of the same
// representation.
func (t Text) Fragment() Fragment {
	if t.kind == Wide {
		return Fragment{kind: FragmentWide, wide: t.r}
	}
	return Fragment{kind: FragmentNarrow, narrow: t.b}
}

// typeName names a value's role in error messages, using engine terms
// for the shapes the engine knows about.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case []any:
		return "sequence"
	case map[string]any:
		return "mapping"
	case string, []byte:
		return "narrow text"
	case []rune:
		return "wide text"
	case Text:
		return "text"
	}
	return fmt.Sprintf("%T", v)
}
