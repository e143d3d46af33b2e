package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"convexify/internal/convexify"
	"convexify/internal/rewrite"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: convexify-cli <file.sexp>")
		os.Exit(1)
	}

	path := os.Args[1]
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("Failed to read file: %s", err)
		os.Exit(1)
	}

	result, err := convexify.Convexify(string(source), nil, rewrite.DefaultCaps)
	if err != nil {
		reportParseError(path, string(source), err)
		os.Exit(1)
	}

	switch result.Status {
	case convexify.StatusNoDCPForm:
		color.Red("❌ No DCP form found for %s (best curvature reached: %s)", path, result.Cost)
		os.Exit(1)
	case convexify.StatusAlreadyDCP:
		color.Green("✅ %s is already DCP-compliant (%s)", path, result.Cost)
	case convexify.StatusRewritten:
		color.Green("✅ Rewrote %s to a DCP-compliant form (%s)", path, result.Cost)
		for _, step := range result.Steps {
			fmt.Printf("  %s (%s) → %s\n", step.Rule, step.Direction, step.Term)
		}
	}

	fmt.Println(result.Extracted)
}

// reportParseError prints a friendly caret-style parse error message, in
// the same shape the rest of this repository's parser-facing tools use.
func reportParseError(path, src string, err error) {
	var pe participle.Error
	if !errors.As(err, &pe) {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("❌ Syntax error in %s at line %d, column %d:", path, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", pe.Message())
}
