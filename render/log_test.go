package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"error", LevelError},
		{"ERROR", LevelError},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"Info", LevelInfo},
		{"debug", LevelDebug},
		{"bogus", LevelWarn},
		{"", LevelWarn},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevelGate(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LevelWarn, &buf)

	logger.Debugf("hidden")
	logger.Infof("hidden")
	if buf.Len() != 0 {
		t.Fatalf("below-level output: %q", buf.String())
	}

	logger.Warnf("shown %d", 1)
	line := buf.String()
	if !strings.HasPrefix(line, "[WARN] ") {
		t.Errorf("line = %q, want [WARN] prefix", line)
	}
	if !strings.HasSuffix(line, " shown 1\n") {
		t.Errorf("line = %q, want formatted message", line)
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LevelInfo, &buf)

	child := logger.With(map[string]any{"b": 2, "a": "x y"})
	child.Infof("msg")

	line := buf.String()
	// Fields print sorted, values with whitespace quoted.
	if !strings.HasSuffix(line, ` msg a="x y" b=2`+"\n") {
		t.Errorf("line = %q, want sorted quoted fields", line)
	}

	// The parent is not polluted by the child's fields.
	buf.Reset()
	logger.Infof("parent")
	if strings.Contains(buf.String(), "a=") {
		t.Errorf("parent line gained child fields: %q", buf.String())
	}
}

func TestNoopLoggerDiscards(t *testing.T) {
	logger := NewNoopLogger()
	logger.Errorf("dropped %d", 1)
	if child := logger.With(map[string]any{"k": 1}); child != logger {
		t.Error("noop With returned a different logger")
	}
}

func TestValueSummary(t *testing.T) {
	sm := sequencedmap.New[string, any]()
	sm.Set("z", 1)
	sm.Set("a", 2)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "nil"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"string", "hi", `"hi"`},
		{"bytes", []byte("b"), `narrow"b"`},
		{"runes", []rune("r"), `wide"r"`},
		{"narrow text", NewText("t"), `narrow"t"`},
		{"wide text", WideText([]rune("w")), `wide"w"`},
		{"empty seq", []any{}, "seq[0]"},
		{"seq", []any{7, 8}, "seq[2, head=7]"},
		{"nested seq", []any{[]any{1}}, "seq[1, head=seq[1, head=1]]"},
		{"map", map[string]any{"b": 1, "a": 2}, "map{a,b}"},
		{"ordered map", sm, "omap{z,a}"},
		{"func", Func(func(args ...any) (any, error) { return nil, nil }), "func"},
		{"fallback", struct{ X int }{}, "struct { X int }"},
	}
	for _, tt := range tests {
		if got := ValueSummary(tt.in); got != tt.want {
			t.Errorf("%s: ValueSummary = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestValueSummaryTruncation(t *testing.T) {
	long := strings.Repeat("a", 40)
	want := `"` + strings.Repeat("a", 21) + `..."`
	if got := ValueSummary(long); got != want {
		t.Errorf("ValueSummary(long) = %q, want %q", got, want)
	}

	m := map[string]any{}
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		m[k] = 1
	}
	if got := ValueSummary(m); got != "map{a,b,c,d,e,+2}" {
		t.Errorf("ValueSummary(big map) = %q", got)
	}
}

func TestFragmentSummary(t *testing.T) {
	if got := FragmentSummary(NarrowFragment([]byte("n"))); got != `narrow"n"` {
		t.Errorf("narrow summary = %q", got)
	}
	if got := FragmentSummary(WideFragment([]rune("w"))); got != `wide"w"` {
		t.Errorf("wide summary = %q", got)
	}
	if got := FragmentSummary(OpaqueFragment(3)); got != "opaque(3)" {
		t.Errorf("opaque summary = %q", got)
	}
}
