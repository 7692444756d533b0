package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/claytono/go-itemcmd/internal/dispatch"
	"github.com/claytono/go-itemcmd/internal/resolve"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// useColor reports whether stdout is a terminal and color was not disabled
// by --no-color or NO_COLOR.
func useColor() bool {
	if noColorFlag || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func paint(color bool, code, s string) string {
	if !color {
		return s
	}
	return code + s + colorReset
}

// formatResult renders a resolution for the resolve command.
//
//	✓ Radiant Fiber  /items/radiant_fiber
//	? 7 matches
//	    Radiant Fiber
//	    ...
//	    (+2 more)
//	✗ Ancient_Log  not in catalog
//	    did you mean: Ancient Log
func formatResult(res resolve.Result, suggestions []string, color bool) string {
	var sb strings.Builder
	switch res.Kind {
	case resolve.Resolved:
		fmt.Fprintf(&sb, "%s %s  %s\n", paint(color, colorGreen, "✓"), paint(color, colorBold, res.Name), paint(color, colorCyan, res.HRID))
	case resolve.Ambiguous:
		fmt.Fprintf(&sb, "%s %d matches\n", paint(color, colorYellow, "?"), len(res.Candidates))
		shown, more := res.Shown()
		for _, name := range shown {
			fmt.Fprintf(&sb, "    %s\n", name)
		}
		if more > 0 {
			fmt.Fprintf(&sb, "    %s\n", paint(color, colorGray, fmt.Sprintf("(+%d more)", more)))
		}
	default:
		fmt.Fprintf(&sb, "%s %s  %s\n", paint(color, colorRed, "✗"), res.Name, paint(color, colorGray, "not in catalog"))
		if len(suggestions) > 0 {
			fmt.Fprintf(&sb, "    did you mean: %s\n", strings.Join(suggestions, ", "))
		}
	}
	return sb.String()
}

// formatSkipped explains a dictionary or market command that did nothing.
func formatSkipped(out dispatch.Outcome, color bool) string {
	return paint(color, colorGray, fmt.Sprintf("%s: no item matches %q", out.Command.Kind.Keyword(), out.Command.Arg))
}

// formatSent renders an ordinary chat line as sent.
func formatSent(line string, color bool) string {
	return paint(color, colorGray, "> ") + line
}
