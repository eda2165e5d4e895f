// Package progfmt renders compiled programs as human-readable step
// listings for debugging compiler output.
package progfmt

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/seamlang/seam"
)

// Config controls listing output.
type Config struct {
	ValueWidth int // max display width for operand previews (default 40)
}

// DefaultConfig returns the defaults used by Listing.
func DefaultConfig() Config {
	return Config{ValueWidth: 40}
}

// Listing formats the whole program, main sequence first, blocks in
// name order.
func Listing(p *seam.Program) string {
	var b strings.Builder
	_ = WriteWith(&b, p, DefaultConfig())
	return b.String()
}

// Write writes the listing with default configuration.
func Write(w io.Writer, p *seam.Program) error {
	return WriteWith(w, p, DefaultConfig())
}

// WriteWith writes the listing with explicit configuration.
func WriteWith(w io.Writer, p *seam.Program, cfg Config) error {
	if cfg.ValueWidth <= 0 {
		cfg.ValueWidth = 40
	}
	if err := writeSteps(w, "main", p.Steps, cfg); err != nil {
		return err
	}
	names := make([]string, 0, len(p.Blocks))
	for name := range p.Blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := writeSteps(w, "block "+name, p.Blocks[name], cfg); err != nil {
			return err
		}
	}
	return nil
}

func writeSteps(w io.Writer, title string, steps []seam.Step, cfg Config) error {
	if _, err := fmt.Fprintf(w, "%s:\n", title); err != nil {
		return err
	}
	pcWidth := len(strconv.Itoa(max(len(steps)-1, 0)))
	opWidth := 0
	for _, st := range steps {
		if n := len(st.Op.String()); n > opWidth {
			opWidth = n
		}
	}
	for pc, st := range steps {
		line := fmt.Sprintf("  %*d  %s", pcWidth, pc, runewidth.FillRight(st.Op.String(), opWidth))
		if operand := operandString(st, cfg.ValueWidth); operand != "" {
			line += "  " + operand
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func operandString(st seam.Step, valueWidth int) string {
	switch st.Op {
	case seam.OpText, seam.OpConst:
		return preview(st.Value, valueWidth)
	case seam.OpLoad, seam.OpStore, seam.OpCallBlock, seam.OpCapture:
		return st.Name
	case seam.OpResolve:
		return strings.Join(st.Names, ".")
	case seam.OpCall:
		if st.Name != "" {
			return fmt.Sprintf("%s/%d", st.Name, st.Argc)
		}
		return fmt.Sprintf("stack/%d", st.Argc)
	case seam.OpCompare:
		return st.Cmp.String()
	case seam.OpJump, seam.OpJumpIf, seam.OpJumpIfNot:
		return "-> " + strconv.Itoa(st.Target)
	case seam.OpIterNext:
		return strings.Join(st.Names, ", ") + " -> " + strconv.Itoa(st.Target)
	}
	return ""
}

// preview keeps operand literals on one short line, truncating by
// display width so wide runes count for what they show as.
func preview(v any, width int) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(runewidth.Truncate(t, width, "..."))
	case []rune:
		return "wide " + strconv.Quote(runewidth.Truncate(string(t), width, "..."))
	}
	return runewidth.Truncate(fmt.Sprint(v), width, "...")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
