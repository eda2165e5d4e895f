package render

import (
	"testing"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

func TestCompareEquality(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"ints", 3, 3, true},
		{"int float", 1, 1.0, true},
		{"int uint", 7, uint8(7), true},
		{"different numbers", 1, 2, false},
		{"strings", "a", "a", true},
		{"string vs text", "a", NewText("a"), true},
		{"string vs wide text", "é", WideText([]rune("é")), true},
		{"string vs runes", "ab", []rune("ab"), true},
		{"number vs its spelling", 1, "1", false},
		{"bools", true, true, true},
		{"bool mismatch", true, 1, false},
		{"nils", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"sequences", []any{1, "a"}, []any{1, "a"}, true},
		{"sequence mismatch", []any{1}, []any{2}, false},
	}
	for _, tt := range tests {
		got, err := Compare(CmpEq, tt.a, tt.b)
		if err != nil {
			t.Errorf("%s: Compare failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: Compare(eq, %v, %v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
		}
		ne, err := Compare(CmpNe, tt.a, tt.b)
		if err != nil {
			t.Errorf("%s: Compare(ne) failed: %v", tt.name, err)
			continue
		}
		if ne != !tt.want {
			t.Errorf("%s: Compare(ne, %v, %v) = %v", tt.name, tt.a, tt.b, ne)
		}
	}
}

func TestCompareOrdering(t *testing.T) {
	tests := []struct {
		name string
		op   CompareOp
		a, b any
		want bool
	}{
		{"lt ints", CmpLt, 1, 2, true},
		{"lt equal", CmpLt, 2, 2, false},
		{"le equal", CmpLe, 2, 2, true},
		{"gt float int", CmpGt, 2.5, 2, true},
		{"ge less", CmpGe, 1, 2, false},
		{"lt text", CmpLt, "apple", "banana", true},
		{"gt text across kinds", CmpGt, NewText("b"), "a", true},
	}
	for _, tt := range tests {
		got, err := Compare(tt.op, tt.a, tt.b)
		if err != nil {
			t.Errorf("%s: Compare failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: Compare(%s, %v, %v) = %v, want %v", tt.name, tt.op, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompareUnorderable(t *testing.T) {
	if _, err := Compare(CmpLt, 1, "a"); err == nil {
		t.Error("ordering a number against text succeeded")
	}
	if _, err := Compare(CmpLt, []any{}, []any{}); err == nil {
		t.Error("ordering sequences succeeded")
	}
	// Equality on the same operands is still fine.
	if _, err := Compare(CmpEq, 1, "a"); err != nil {
		t.Errorf("Compare(eq) failed: %v", err)
	}
}

func TestCompareMembership(t *testing.T) {
	sm := sequencedmap.New[string, any]()
	sm.Set("k", 1)

	tests := []struct {
		name      string
		item, box any
		want      bool
	}{
		{"substring", "ell", "hello", true},
		{"substring miss", "z", "hello", false},
		{"rune probe in text", []rune("é"), "café", true},
		{"text probe", NewText("b"), WideText([]rune("abc")), true},
		{"sequence element", 2, []any{1, 2, 3}, true},
		{"sequence cross-kind", 2.0, []any{1, 2, 3}, true},
		{"sequence miss", 9, []any{1, 2, 3}, false},
		{"typed slice element", "b", []string{"a", "b"}, true},
		{"map key", "k", map[string]any{"k": nil}, true},
		{"map key miss", "z", map[string]any{"k": nil}, false},
		{"ordered map key", "k", sm, true},
	}
	for _, tt := range tests {
		got, err := Compare(CmpIn, tt.item, tt.box)
		if err != nil {
			t.Errorf("%s: Compare(in) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: Compare(in, %v, %v) = %v, want %v", tt.name, tt.item, tt.box, got, tt.want)
		}
		not, err := Compare(CmpNotIn, tt.item, tt.box)
		if err != nil {
			t.Errorf("%s: Compare(not in) failed: %v", tt.name, err)
			continue
		}
		if not != !tt.want {
			t.Errorf("%s: Compare(not in) = %v", tt.name, not)
		}
	}
}

func TestCompareMembershipErrors(t *testing.T) {
	if _, err := Compare(CmpIn, 1, "text"); err == nil {
		t.Error("searching text for a number succeeded")
	}
	if _, err := Compare(CmpIn, 1, 42); err == nil {
		t.Error("membership in a number succeeded")
	}
}

func TestCompareOpString(t *testing.T) {
	ops := map[CompareOp]string{
		CmpEq:    "eq",
		CmpNe:    "ne",
		CmpLt:    "lt",
		CmpLe:    "le",
		CmpGt:    "gt",
		CmpGe:    "ge",
		CmpIn:    "in",
		CmpNotIn: "not in",
	}
	for op, want := range ops {
		if op.String() != want {
			t.Errorf("String(%d) = %q, want %q", op, op.String(), want)
		}
	}
}
