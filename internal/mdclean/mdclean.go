// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mdclean rewrites LLM-generated Markdown into clean Markdown:
// typographic punctuation is straightened, Greek letters become inline
// math macros, and every math region is normalized and re-wrapped in a
// caller-selected delimiter dialect.
package mdclean

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/texkit/internal/mathreg"
	"github.com/pdiddy/texkit/internal/refs"
)

// Options configures one cleaning run.
type Options struct {
	// IncludeReferences appends a References section collected from the
	// document's Markdown links.
	IncludeReferences bool

	// Display and Inline select the math delimiter dialect for the
	// output. Zero values fall back to block $$ pairs and single $.
	Display mathreg.Delimiters
	Inline  mathreg.Delimiters

	// EscapeUnderscores escapes underscores inside math bodies, required
	// by Google Docs' auto-LaTeX rendering.
	EscapeUnderscores bool

	// Warn receives restoration warnings. Nil discards them.
	Warn io.Writer
}

// DefaultOptions is the standard Markdown dialect: block math on its own
// lines, inline math in single dollars.
func DefaultOptions() Options {
	return Options{
		IncludeReferences: true,
		Display:           mathreg.Delimiters{Open: "\n$$", Close: "$$\n"},
		Inline:            mathreg.Delimiters{Open: "$", Close: "$"},
	}
}

// GoogleDocOptions targets Google Docs with the auto-LaTeX extension:
// inline math is promoted to $$ pairs and underscores are escaped.
func GoogleDocOptions() Options {
	o := DefaultOptions()
	o.Inline = mathreg.Delimiters{Open: "$$", Close: "$$"}
	o.EscapeUnderscores = true
	return o
}

// EquationTagOptions wraps all math in <equation> tags.
func EquationTagOptions() Options {
	o := DefaultOptions()
	o.Display = mathreg.Delimiters{Open: "<equation>", Close: "</equation>"}
	o.Inline = o.Display
	return o
}

// textCleaner straightens quotes and drops ampersands down to plain text.
var textCleaner = strings.NewReplacer(
	"&", "and",
	"`", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// Clean runs the cleaning pipeline over one buffered document.
func Clean(content string, opts Options) string {
	references := refs.Collect(content)

	content = textCleaner.Replace(content)

	content, regions := mathreg.Protect(content)
	content = mathreg.AnnotateGreek(content, regions)
	content = mathreg.Restore(content, regions, mathreg.RestoreOptions{
		Display:           opts.Display,
		Inline:            opts.Inline,
		EscapeUnderscores: opts.EscapeUnderscores,
		Warn:              opts.Warn,
	})

	if opts.IncludeReferences && len(references) > 0 {
		var b strings.Builder
		b.WriteString("\n\n# References\n")
		for _, r := range references {
			fmt.Fprintf(&b, " - %s: %s\n", r.Text, r.URL)
		}
		content += b.String()
	}

	return content
}
