// Package diagnose turns render failures into user-facing reports.
package diagnose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/seamlang/seam"
	"github.com/seamlang/seam/render"
)

// Report turns a render failure into a multi-line message a template
// author can act on.
func Report(err error) string {
	if err == nil {
		return "Render failed, but no additional details were provided."
	}

	var b strings.Builder
	b.WriteString("Render failed.\n")

	msg, hint := classifyAndHint(err)
	fmt.Fprintf(&b, "- %s\n", msg)
	if loc := deriveLocation(err); loc != "" {
		fmt.Fprintf(&b, "  Location: %s\n", loc)
	}

	var re *render.ResolveError
	if errors.As(err, &re) && len(re.Path) > 0 {
		path, caret := pathCaret(re)
		fmt.Fprintf(&b, "  Path: %s\n", path)
		fmt.Fprintf(&b, "        %s\n", caret)
	}

	if hint != "" {
		fmt.Fprintf(&b, "  How to fix: %s\n", hint)
	}
	if details := extractDetails(err); details != "" {
		fmt.Fprintf(&b, "  Details: %s\n", details)
	}

	var ce *render.CoercionError
	if errors.As(err, &ce) && ce.Value != nil {
		if block := yamlBlock(ce.Value, "    "); block != "" {
			b.WriteString("  Value:\n")
			b.WriteString(block)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func classifyAndHint(err error) (msg, hint string) {
	var ne *seam.NameError
	if errors.As(err, &ne) {
		msg = fmt.Sprintf("The name %q is not defined.", ne.Name)
		hint = "Add it to the display, or bind it with a set statement before use."
		return
	}
	var re *render.ResolveError
	if errors.As(err, &re) {
		msg = fmt.Sprintf("Could not resolve %q: the value has no such key or member.", re.Name)
		hint = "Check the dotted path against the display; every step before the marked one resolved."
		return
	}
	var ie *render.IndexError
	if errors.As(err, &ie) {
		msg = fmt.Sprintf("Could not index a %s value: %s.", ie.Container, ie.Reason)
		hint = "Positions count from 0; negative positions count back from the end, so valid positions are -len through len-1."
		return
	}
	var ce *render.CoercionError
	if errors.As(err, &ce) {
		msg = fmt.Sprintf("A value appended at position %d could not be rendered as text.", ce.Index)
		hint = "Give the value a MarshalText or String method, or convert it before appending."
		return
	}
	var inte *render.InternalError
	if errors.As(err, &inte) {
		msg = "The engine reached an inconsistent state."
		hint = "This is a defect in the engine or the compiled program, not in the display data."
		return
	}
	return "Render error.", ""
}

func deriveLocation(err error) string {
	var ee *seam.ExecError
	if !errors.As(err, &ee) {
		return ""
	}
	seq := ee.Block
	if seq == "" {
		seq = "main"
	}
	return fmt.Sprintf("%s, step %d (%s)", seq, ee.PC, ee.Op)
}

// pathCaret underlines the failing segment of a dotted path. Widths are
// display widths, so the caret stays aligned under wide runes.
func pathCaret(re *render.ResolveError) (path, caret string) {
	path = strings.Join(re.Path, ".")
	prefix := strings.Join(re.Path[:re.Hop], ".")
	pad := runewidth.StringWidth(prefix)
	if re.Hop > 0 {
		pad++ // the dot before the failing segment
	}
	width := runewidth.StringWidth(re.Name)
	if width < 1 {
		width = 1
	}
	caret = strings.Repeat(" ", pad) + strings.Repeat("^", width)
	return path, caret
}

func extractDetails(err error) string {
	// The innermost error is the collaborator failure itself.
	inner := err
	for {
		u := errors.Unwrap(inner)
		if u == nil {
			break
		}
		inner = u
	}
	if inner == err {
		return strings.TrimSpace(err.Error())
	}
	return strings.TrimSpace(inner.Error())
}

// yamlBlock renders a display value as indented YAML, or "" when the
// value cannot be marshaled.
func yamlBlock(v any, indent string) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}
