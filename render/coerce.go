package render

import "fmt"

// coercionStatus reports which representation a coerced transaction
// settled on. The zero value is deliberately neither, so a defective
// pass that forgets to decide surfaces as an internal inconsistency
// instead of a silent default.
type coercionStatus uint8

const (
	statusInvalid coercionStatus = iota
	statusNarrow
	statusWide
)

// coerce rewrites every fragment of tx into one text representation and
// returns that representation plus the total length in its units (bytes
// when narrow, code points when wide). The scan starts narrow; the
// first wide fragment abandons the narrow accumulation and the whole
// buffer is rescanned with the wide filter. Rewrites are destructive,
// so the rescan sees the already-coerced forms of earlier fragments,
// not their originals.
func coerce(tx *Transaction) (coercionStatus, int, error) {
	total := 0
	for i := 0; i < len(tx.frags); i++ {
		f := tx.frags[i]
		switch f.kind {
		case FragmentNarrow:
			total += len(f.narrow)
		case FragmentWide:
			return coerceWide(tx)
		case FragmentOpaque:
			b, err := ToNarrow(f.value)
			if err != nil {
				return statusInvalid, 0, &CoercionError{Index: i, Value: f.value, Cause: err}
			}
			tx.replace(i, Fragment{kind: FragmentNarrow, narrow: b})
			total += len(b)
		default:
			return statusInvalid, 0, &InternalError{
				Message: fmt.Sprintf("fragment %d has kind %d", i, f.kind),
			}
		}
	}
	return statusNarrow, total, nil
}

// coerceWide runs the wide filter over the whole buffer from the start.
func coerceWide(tx *Transaction) (coercionStatus, int, error) {
	total := 0
	for i := 0; i < len(tx.frags); i++ {
		f := tx.frags[i]
		switch f.kind {
		case FragmentNarrow:
			r := decodeNarrow(f.narrow)
			tx.replace(i, Fragment{kind: FragmentWide, wide: r})
			total += len(r)
		case FragmentWide:
			total += len(f.wide)
		case FragmentOpaque:
			r, err := ToWide(f.value)
			if err != nil {
				return statusInvalid, 0, &CoercionError{Index: i, Value: f.value, Cause: err}
			}
			tx.replace(i, Fragment{kind: FragmentWide, wide: r})
			total += len(r)
		default:
			return statusInvalid, 0, &InternalError{
				Message: fmt.Sprintf("fragment %d has kind %d", i, f.kind),
			}
		}
	}
	return statusWide, total, nil
}
