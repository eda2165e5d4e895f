package progfmt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/seamlang/seam"
	"github.com/seamlang/seam/render"
)

func TestListing(t *testing.T) {
	b := seam.NewBuilder()
	b.Text("Hi, ")
	b.Load("name")
	b.Emit()
	b.Load("ok")
	skip := b.JumpIfNot()
	b.Text("!")
	b.Patch(skip)

	row := seam.NewBuilder()
	row.Text("- ")
	row.Load("item")
	row.Emit()
	b.SetBlock("row", row)

	want := strings.Join([]string{
		"main:",
		`  0  text       "Hi, "`,
		"  1  load       name",
		"  2  emit",
		"  3  load       ok",
		"  4  jumpifnot  -> 6",
		`  5  text       "!"`,
		"",
		"block row:",
		`  0  text  "- "`,
		"  1  load  item",
		"  2  emit",
		"",
	}, "\n")

	got := Listing(b.Build())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestListingOperands(t *testing.T) {
	b := seam.NewBuilder()
	b.TextWide("π")
	b.Const(42)
	b.Const(nil)
	b.Load("base")
	b.ResolvePath("a", "b")
	b.CallBuiltin("upper", 1)
	b.Call(2)
	b.Compare(render.CmpEq)
	b.IterNext("i", "v")
	p := b.Build()

	got := Listing(p)
	for _, want := range []string{
		`wide "π"`,
		"const     42",
		"const     nil",
		"resolve   a.b",
		"call      upper/1",
		"call      stack/2",
		"compare   eq",
		"iternext  i, v -> -1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("listing missing %q:\n%s", want, got)
		}
	}
}

func TestListingTruncatesLongValues(t *testing.T) {
	b := seam.NewBuilder()
	b.Text(strings.Repeat("a", 60))
	p := b.Build()

	var out strings.Builder
	if err := WriteWith(&out, p, Config{ValueWidth: 10}); err != nil {
		t.Fatalf("WriteWith failed: %v", err)
	}
	want := `"` + strings.Repeat("a", 7) + `..."`
	if !strings.Contains(out.String(), want) {
		t.Errorf("listing = %q, want %q", out.String(), want)
	}
}

func TestListingPcAlignment(t *testing.T) {
	b := seam.NewBuilder()
	for i := 0; i < 11; i++ {
		b.Emit()
	}
	got := Listing(b.Build())
	if !strings.Contains(got, "   0  emit") {
		t.Errorf("single-digit pcs not right-aligned:\n%s", got)
	}
	if !strings.Contains(got, "  10  emit") {
		t.Errorf("double-digit pcs misaligned:\n%s", got)
	}
}

func TestListingEmptyProgram(t *testing.T) {
	got := Listing(seam.NewBuilder().Build())
	if got != "main:\n" {
		t.Errorf("empty listing = %q", got)
	}
}
