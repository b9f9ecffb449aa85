// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watermark

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// maxReportFindings caps the per-character section so a heavily
// watermarked file does not produce an unreadable report.
const maxReportFindings = 50

// WriteReport renders a markdown report of the analysis for source to w.
func WriteReport(w io.Writer, source string, res *Result, now time.Time) error {
	imp := res.Impact

	var b strings.Builder
	fmt.Fprintf(&b, "# Watermark Analysis Report\n\n")
	fmt.Fprintf(&b, "- **File**: %s\n", source)
	fmt.Fprintf(&b, "- **Date**: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Total modifications**: %d\n", res.TotalModifications)
	fmt.Fprintf(&b, "- **Character difference**: %d\n", res.CharDifference)
	fmt.Fprintf(&b, "- **Risk**: %s\n\n", imp.Risk)

	b.WriteString("## Summary by Category\n\n")
	if len(res.Stats) == 0 {
		b.WriteString("No watermark characters detected.\n\n")
	} else {
		categories := make([]string, 0, len(res.Stats))
		for c := range res.Stats {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			s := res.Stats[c]
			fmt.Fprintf(&b, "### %s (%d)\n\n", c, s.Total)
			details := make([]string, 0, len(s.Details))
			for d := range s.Details {
				details = append(details, d)
			}
			sort.Strings(details)
			for _, d := range details {
				fmt.Fprintf(&b, "- %s: %d\n", d, s.Details[d])
			}
			b.WriteString("\n")
		}
	}

	if len(res.Findings) > 0 {
		b.WriteString("## Character Analysis\n\n")
		n := len(res.Findings)
		if n > maxReportFindings {
			n = maxReportFindings
		}
		for _, f := range res.Findings[:n] {
			fmt.Fprintf(&b, "- Position %d: %s %s (%s)", f.Position, f.Codepoint, f.Name, f.Category)
			if f.Replacement != "" && f.Replacement != f.Char {
				fmt.Fprintf(&b, " -> %q", f.Replacement)
			}
			if f.Preserved {
				b.WriteString(" [preserved]")
			}
			fmt.Fprintf(&b, "\n  Context: ...%s|%s...\n", escapeContext(f.Context.Before), escapeContext(f.Context.After))
		}
		if len(res.Findings) > n {
			fmt.Fprintf(&b, "\n(%d further findings omitted)\n", len(res.Findings)-n)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Pattern Analysis\n\n")
	lines := res.Patterns.Describe()
	if len(lines) == 0 {
		b.WriteString("No systematic patterns detected.\n\n")
	} else {
		for _, line := range lines {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Impact Assessment\n\n")
	fmt.Fprintf(&b, "- **Readability impact**: %s\n", imp.Readability)
	fmt.Fprintf(&b, "- **Text structure impact**: %s\n", imp.Structure)
	fmt.Fprintf(&b, "- **Information leakage**: %s\n", imp.Leakage)
	fmt.Fprintf(&b, "- **Intended purpose**: %s\n", imp.Purpose)

	_, err := io.WriteString(w, b.String())
	return err
}

// escapeContext makes surrounding text safe for a single report line.
func escapeContext(s string) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
