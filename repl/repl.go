// Package repl implements an interactive read-eval-print loop over the
// convexify engine: each line is a problem or expression in S-expression
// form, rewritten to DCP-compliant form (or reported as unsolvable) as
// soon as it's entered.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"convexify/internal/convexify"
	"convexify/internal/rewrite"
)

const prompt = "convexify> "

// Start runs the loop, reading lines from in and writing results to out,
// until in is exhausted.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		result, err := convexify.Convexify(line, nil, rewrite.DefaultCaps)
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "error: %s\n", err)
			continue
		}

		switch result.Status {
		case convexify.StatusNoDCPForm:
			color.New(color.FgRed).Fprintf(out, "no DCP form found (best curvature reached: %s)\n", result.Cost)
		case convexify.StatusAlreadyDCP:
			color.New(color.FgGreen).Fprintf(out, "already DCP-compliant (%s)\n", result.Cost)
			fmt.Fprintln(out, result.Extracted)
		case convexify.StatusRewritten:
			color.New(color.FgGreen).Fprintf(out, "rewritten to DCP-compliant form (%s)\n", result.Cost)
			for _, step := range result.Steps {
				fmt.Fprintf(out, "  %s (%s) → %s\n", step.Rule, step.Direction, step.Term)
			}
			fmt.Fprintln(out, result.Extracted)
		}
	}
}
