package render

// Transaction is the ordered buffer a render pass appends output
// fragments to. Appends transfer the value into the buffer; the join's
// coercion pass later rewrites fragments in place, so a joined
// transaction holds the coerced forms, not the originals.
//
// A transaction belongs to exactly one render pass at a time and is not
// safe for concurrent use.
type Transaction struct {
	frags []Fragment
}

// NewTransaction creates an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{
		frags: make([]Fragment, 0, 64),
	}
}

// Append adds a pre-built fragment to the end of the transaction.
func (t *Transaction) Append(f Fragment) {
	t.frags = append(t.frags, f)
}

// AppendString adds a narrow fragment holding s.
func (t *Transaction) AppendString(s string) {
	t.frags = append(t.frags, Fragment{kind: FragmentNarrow, narrow: []byte(s)})
}

// AppendBytes adds a narrow fragment. The transaction takes ownership
// of b; the caller must not reuse it.
func (t *Transaction) AppendBytes(b []byte) {
	t.frags = append(t.frags, Fragment{kind: FragmentNarrow, narrow: b})
}

// AppendRunes adds a wide fragment. The transaction takes ownership of r.
func (t *Transaction) AppendRunes(r []rune) {
	t.frags = append(t.frags, Fragment{kind: FragmentWide, wide: r})
}

// AppendText adds finished text, preserving its representation.
func (t *Transaction) AppendText(x Text) {
	t.frags = append(t.frags, x.Fragment())
}

// AppendValue adds any value, tagging known text shapes on entry and
// leaving everything else opaque until the join.
func (t *Transaction) AppendValue(v any) {
	t.frags = append(t.frags, FragmentOf(v))
}

// Len returns the number of fragments appended so far.
func (t *Transaction) Len() int {
	return len(t.frags)
}

// Fragment returns the i'th fragment. Panics if i is out of range.
func (t *Transaction) Fragment(i int) Fragment {
	return t.frags[i]
}

// replace overwrites the i'th fragment during coercion.
func (t *Transaction) replace(i int, f Fragment) {
	t.frags[i] = f
}

// Reset empties the transaction for reuse, keeping its storage.
func (t *Transaction) Reset() {
	t.frags = t.frags[:0]
}
