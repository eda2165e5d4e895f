package render

import "fmt"

// Join coerces the transaction to a single text representation and
// concatenates it into one exactly-sized result. An empty transaction
// joins to empty narrow text. On failure the transaction may be left
// partially coerced; it is not restored, the render is over either way.
func Join(tx *Transaction) (Text, error) {
	status, total, err := coerce(tx)
	if err != nil {
		return Text{}, err
	}
	switch status {
	case statusNarrow:
		return concatNarrow(tx, total), nil
	case statusWide:
		return concatWide(tx, total), nil
	}
	return Text{}, &InternalError{
		Message: fmt.Sprintf("coercion reported status %d", status),
	}
}
