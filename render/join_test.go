package render

import (
	"errors"
	"testing"
)

// brokenMark fails text marshalling so coercion errors can be provoked
// from outside the package.
type brokenMark struct{}

var errBrokenMark = errors.New("mark is broken")

func (brokenMark) MarshalText() ([]byte, error) { return nil, errBrokenMark }

func TestJoinEmptyTransaction(t *testing.T) {
	out, err := Join(NewTransaction())
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if out.Kind() != Narrow {
		t.Errorf("kind = %s, want narrow", out.Kind())
	}
	if out.Len() != 0 || out.String() != "" {
		t.Errorf("joined %q (len %d), want empty", out.String(), out.Len())
	}
}

func TestJoinNarrowOnly(t *testing.T) {
	tx := NewTransaction()
	tx.AppendString("Hello, ")
	tx.AppendValue(42)
	tx.AppendString("!")

	out, err := Join(tx)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if out.Kind() != Narrow {
		t.Errorf("kind = %s, want narrow", out.Kind())
	}
	if out.String() != "Hello, 42!" {
		t.Errorf("joined %q, want %q", out.String(), "Hello, 42!")
	}
	if out.Len() != len("Hello, 42!") {
		t.Errorf("Len() = %d, want byte length %d", out.Len(), len("Hello, 42!"))
	}
}

func TestJoinAppendValueMatchesTaggedAppends(t *testing.T) {
	tagged := NewTransaction()
	tagged.AppendString("n=")
	tagged.AppendRunes([]rune("π"))

	untyped := NewTransaction()
	untyped.AppendValue("n=")
	untyped.AppendValue([]rune("π"))

	want, err := Join(tagged)
	if err != nil {
		t.Fatalf("Join(tagged) failed: %v", err)
	}
	got, err := Join(untyped)
	if err != nil {
		t.Fatalf("Join(untyped) failed: %v", err)
	}
	if got.Kind() != want.Kind() || got.String() != want.String() || got.Len() != want.Len() {
		t.Errorf("joined %q (%s, len %d), want %q (%s, len %d)",
			got.String(), got.Kind(), got.Len(), want.String(), want.Kind(), want.Len())
	}
}

func TestJoinWideFragmentForcesWideResult(t *testing.T) {
	tx := NewTransaction()
	tx.AppendString("x=")
	tx.AppendRunes([]rune("é"))

	out, err := Join(tx)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if out.Kind() != Wide {
		t.Fatalf("kind = %s, want wide", out.Kind())
	}
	if out.String() != "x=é" {
		t.Errorf("joined %q, want %q", out.String(), "x=é")
	}
	// Wide length counts runes, not bytes.
	if out.Len() != 3 {
		t.Errorf("Len() = %d, want 3 runes", out.Len())
	}
}

func TestJoinMultibyteNarrowStaysNarrow(t *testing.T) {
	tx := NewTransaction()
	tx.AppendString("héllo")

	out, err := Join(tx)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if out.Kind() != Narrow {
		t.Errorf("kind = %s, want narrow", out.Kind())
	}
	if out.Len() != 6 {
		t.Errorf("Len() = %d, want 6 bytes", out.Len())
	}
}

// A wide fragment appearing mid-scan restarts coercion: fragments already
// rendered narrow are decoded to runes, fragments not yet visited render
// wide directly. Either way every fragment ends up wide and the
// concatenation is their rune-for-rune join.
func TestJoinRestartAfterLateWideFragment(t *testing.T) {
	tx := NewTransaction()
	tx.AppendValue(42)
	tx.AppendRunes([]rune("π"))
	tx.AppendValue(2.0)

	out, err := Join(tx)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if out.Kind() != Wide {
		t.Fatalf("kind = %s, want wide", out.Kind())
	}
	if out.String() != "42π2" {
		t.Errorf("joined %q, want %q", out.String(), "42π2")
	}
	for i := 0; i < tx.Len(); i++ {
		if kind := tx.Fragment(i).Kind(); kind != FragmentWide {
			t.Errorf("fragment %d kind = %s after wide join, want wide", i, kind)
		}
	}
}

func TestJoinRewritesFragmentsInPlace(t *testing.T) {
	tx := NewTransaction()
	tx.AppendValue(7)
	tx.AppendString("!")

	if _, err := Join(tx); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if kind := tx.Fragment(0).Kind(); kind != FragmentNarrow {
		t.Errorf("opaque fragment kind = %s after narrow join, want narrow", kind)
	}
	if b, ok := tx.Fragment(0).AsNarrow(); !ok || string(b) != "7" {
		t.Errorf("rewritten fragment = %q, %v", b, ok)
	}
}

func TestJoinCoercionFailureNarrow(t *testing.T) {
	tx := NewTransaction()
	tx.AppendString("a")
	tx.AppendValue(1)
	tx.AppendValue(brokenMark{})

	_, err := Join(tx)
	if err == nil {
		t.Fatal("Join succeeded with a failing fragment")
	}
	var ce *CoercionError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a CoercionError: %v", err, err)
	}
	if ce.Index != 2 {
		t.Errorf("Index = %d, want 2", ce.Index)
	}
	if !errors.Is(err, errBrokenMark) {
		t.Errorf("cause not preserved: %v", err)
	}
}

func TestJoinCoercionFailureWide(t *testing.T) {
	tx := NewTransaction()
	tx.AppendRunes([]rune("π"))
	tx.AppendValue(brokenMark{})

	_, err := Join(tx)
	var ce *CoercionError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a CoercionError: %v", err, err)
	}
	if ce.Index != 1 {
		t.Errorf("Index = %d, want 1", ce.Index)
	}
	if !errors.Is(err, errBrokenMark) {
		t.Errorf("cause not preserved: %v", err)
	}
}

func TestJoinAppendText(t *testing.T) {
	tx := NewTransaction()
	tx.AppendText(NewText("ab"))
	tx.AppendText(WideText([]rune("cd")))

	out, err := Join(tx)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if out.Kind() != Wide || out.String() != "abcd" {
		t.Errorf("joined %q (%s), want wide %q", out.String(), out.Kind(), "abcd")
	}
}

func TestJoinBytesOwnership(t *testing.T) {
	buf := []byte("keep")
	tx := NewTransaction()
	tx.AppendBytes(buf)

	out, err := Join(tx)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if out.String() != "keep" {
		t.Errorf("joined %q, want %q", out.String(), "keep")
	}
}
