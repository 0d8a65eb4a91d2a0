// Package output renders analysis results for the terminal.
//
// Table renderers return strings so callers decide where they go. ANSI colors
// are only emitted when stdout is a terminal and NO_COLOR is unset.
package output

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/surveystat/internal/analyzer"
	"github.com/blackwell-systems/surveystat/internal/stats"
	"github.com/blackwell-systems/surveystat/internal/store"
)

// ANSI color codes for correlation strength
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// None is printed in place of an undefined value.
const None = "None"

// IsColorEnabled returns true if ANSI color codes should be emitted.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// FormatFloat prints v in its shortest round-trip form, always with a decimal
// point so integral values read as 5.0 rather than 5.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") && !math.IsInf(v, 0) {
		s += ".0"
	}
	return s
}

func formatOptional(v *float64) string {
	if v == nil {
		return None
	}
	return FormatFloat(*v)
}

// RenderSummary renders the six statistics lines followed by the overall
// correlation coefficient. The Passion Score mode prints without a decimal
// point when every row was scored, since the column then holds only integers:
//
//	Mean CGPA: 3.21
//	Median CGPA: 3.2
//	Mode CGPA: None
//	Mean Passion Score: 5.4
//	Median Passion Score: 6.0
//	Mode Passion Score: 8
//	0.1834
func RenderSummary(rep *analyzer.Report) string {
	var sb strings.Builder
	writeSummary(&sb, "CGPA", rep.CGPA, false)
	writeSummary(&sb, "Passion Score", rep.Passion, rep.Rows > 0 && rep.Scored == rep.Rows)

	if rep.Overall.Defined() {
		sb.WriteString(FormatFloat(*rep.Overall.R))
	} else {
		sb.WriteString("nan")
	}
	sb.WriteString("\n")
	return sb.String()
}

func writeSummary(sb *strings.Builder, name string, s stats.Summary, integral bool) {
	if s.Err != nil {
		fmt.Fprintf(sb, "Mean %s: %s\n", name, None)
		fmt.Fprintf(sb, "Median %s: %s\n", name, None)
		fmt.Fprintf(sb, "Mode %s: %s\n", name, None)
		return
	}
	fmt.Fprintf(sb, "Mean %s: %s\n", name, FormatFloat(s.Mean))
	fmt.Fprintf(sb, "Median %s: %s\n", name, FormatFloat(s.Median))
	mode := formatOptional(s.Mode)
	if integral && s.Mode != nil {
		mode = strconv.FormatFloat(*s.Mode, 'f', -1, 64)
	}
	fmt.Fprintf(sb, "Mode %s: %s\n", name, mode)
}

// FormatCorrelation formats a coefficient to two decimals, or "n/a".
func FormatCorrelation(c analyzer.Correlation) string {
	if !c.Defined() {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *c.R)
}

// correlationColor grades |r|: strong green, moderate yellow, weak red.
func correlationColor(c analyzer.Correlation) string {
	if !c.Defined() {
		return colorGray
	}
	switch r := math.Abs(*c.R); {
	case r >= 0.5:
		return colorGreen
	case r >= 0.3:
		return colorYellow
	default:
		return colorRed
	}
}

// RenderMajorTable renders the per-major correlations in the given order.
func RenderMajorTable(groups []analyzer.GroupCorrelation) string {
	if len(groups) == 0 {
		return "No majors found.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-28s %-6s %-6s %-7s %s\n", "Major", "Rows", "Pairs", "r", "Note"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for _, g := range groups {
		name := g.Major
		if name == "" {
			name = "(blank)"
		}
		note := ""
		if g.Err != nil {
			note = g.Err.Error()
		}
		r := fmt.Sprintf("%-7s", FormatCorrelation(g.Correlation))
		sb.WriteString(fmt.Sprintf("%-28s %-6d %-6d %s %s\n",
			truncate(name, 28),
			g.Size,
			g.Pairs,
			colorize(correlationColor(g.Correlation), r),
			note))
	}

	return sb.String()
}

// RenderHistoryTable renders saved runs in the order given.
func RenderHistoryTable(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No saved runs found.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-10s %-16s %-6s %-9s %-9s %-7s %s\n",
		"Run", "Saved", "Rows", "CGPA", "Passion", "r", "Source"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, run := range runs {
		r := "n/a"
		if run.Correlation != nil {
			r = fmt.Sprintf("%.2f", *run.Correlation)
		}
		sb.WriteString(fmt.Sprintf("%-10s %-16s %-6d %-9s %-9s %-7s %s\n",
			shortID(run.ID),
			humanize.Time(run.CreatedAt),
			run.Rows,
			formatMean(run.CGPAMean),
			formatMean(run.PassionMean),
			r,
			truncate(run.Source, 40)))
	}

	return sb.String()
}

func formatMean(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
