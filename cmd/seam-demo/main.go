// Command seam-demo renders a built-in sample program against a YAML
// display file. It exists to exercise the runtime end to end: step
// listing, rendering, logging and failure reports.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/itchyny/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/seamlang/seam"
	"github.com/seamlang/seam/pkg/diagnose"
	"github.com/seamlang/seam/pkg/progfmt"
)

var (
	displayFile = flag.String("display", "", "YAML file with display values (default: a built-in sample)")
	list        = flag.Bool("list", false, "print the compiled step listing and exit")
	logLevel    = flag.String("log", "", "render log level: error, warn, info or debug")
)

func main() {
	flag.Parse()
	prog := demoProgram()

	if *list {
		if err := progfmt.Write(os.Stdout, prog); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	display, err := loadDisplay(*displayFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := prog.Render(display, seam.Options{LogLevel: *logLevel})
	if err != nil {
		fmt.Fprint(os.Stderr, diagnose.Report(err))
		os.Exit(1)
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Printf("\x1b[32m== rendered %s text, %d units ==\x1b[0m\n", out.Kind(), out.Len())
	}
	fmt.Print(out.String())
}

// demoProgram is the step sequence a compiler would emit for a small
// greeting template with a conditional item list and a date line.
func demoProgram() *seam.Program {
	row := seam.NewBuilder()
	row.Text("  - ")
	row.Load("item")
	row.Emit()
	row.Text("\n")

	b := seam.NewBuilder()
	b.Text("Hello, ")
	b.Load("name")
	b.Emit()
	b.Text("!\n")

	b.Load("items")
	skip := b.JumpIfNot()
	b.Text("Items:\n")
	b.Load("items")
	b.IterInit()
	loop := b.Mark()
	exit := b.IterNext("item")
	b.CallBlock("row")
	b.Jump(loop)
	b.Patch(exit)
	b.Patch(skip)

	b.Text("Generated on ")
	b.Const(time.Now())
	b.Const("%Y-%m-%d")
	b.CallBuiltin("strftime", 2)
	b.Emit()
	b.Text("\n")

	b.SetBlock("row", row)
	return b.Build()
}

func loadDisplay(path string) (any, error) {
	if path == "" {
		sample := sequencedmap.New[string, any]()
		sample.Set("name", "world")
		sample.Set("items", []any{"alpha", "beta", "gamma"})
		return sample, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var display map[string]any
	if err := yaml.Unmarshal(data, &display); err != nil {
		return nil, fmt.Errorf("could not parse display file: %w", err)
	}
	return display, nil
}
