package render

// concatNarrow copies every fragment's bytes into one exact-size
// allocation. Coercion must have run first: every fragment is narrow
// and total is the sum of their lengths.
func concatNarrow(tx *Transaction, total int) Text {
	out := make([]byte, total)
	n := 0
	for _, f := range tx.frags {
		n += copy(out[n:], f.narrow)
	}
	return Text{kind: Narrow, b: out}
}

// concatWide is the code-point variant of concatNarrow.
func concatWide(tx *Transaction, total int) Text {
	out := make([]rune, total)
	n := 0
	for _, f := range tx.frags {
		n += copy(out[n:], f.wide)
	}
	return Text{kind: Wide, r: out}
}
