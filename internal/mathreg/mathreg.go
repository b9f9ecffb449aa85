// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mathreg protects math regions in free-form text behind opaque
// placeholder tokens so that surrounding Markdown/LaTeX rewrites cannot
// corrupt them, then normalizes and restores each region in a configurable
// math dialect.
//
// The lifecycle for one document is: Protect, apply unrelated text
// transforms, AnnotateGreek, Restore. A Regions mapping is created fresh
// per Protect call and discarded after Restore; the package holds no
// mutable state, so independent conversions may run concurrently.
package mathreg

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Regions maps a placeholder token to the verbatim original math span,
// delimiters included. Tokens are generated so that no token is a prefix
// of another and none can occur in ordinary host text.
type Regions map[string]string

// Delimiters is an open/close pair of math markers.
type Delimiters struct {
	Open  string
	Close string
}

// RestoreOptions configures how Restore re-wraps normalized math bodies.
// Zero-value delimiter pairs fall back to $$ / $$ for display math and
// $ / $ for inline math.
type RestoreOptions struct {
	// Display wraps display-math bodies; the body is placed on its own
	// line between Open and Close.
	Display Delimiters

	// Inline wraps inline-math bodies tightly, with no added newlines.
	Inline Delimiters

	// EscapeUnderscores re-escapes every underscore in normalized bodies,
	// for targets (e.g. Google Docs auto-LaTeX) that treat bare
	// underscores as formatting.
	EscapeUnderscores bool

	// Warn receives one line per placeholder whose kind cannot be
	// determined. Nil discards warnings.
	Warn io.Writer
}

// tokenPrefix namespaces for the two restoration templates.
const (
	displayPrefix = "__DISPLAY_MATH_"
	inlinePrefix  = "__INLINE_MATH_"
)

// structuredPatterns are scanned in this exact order. Display dollars must
// run before the inline-dollar pattern: a single-dollar regex run first
// would split a $$...$$ block into two bogus inline matches.
var structuredPatterns = []struct {
	re    *regexp.Regexp
	token string
}{
	{regexp.MustCompile(`(?s)\$\$(.*?)\$\$`), "__DISPLAY_MATH_DOLLARS_%d__"},
	{regexp.MustCompile(`(?s)\$(.*?)\$`), "__INLINE_MATH_DOLLARS_%d__"},
	{regexp.MustCompile(`(?s)\\\[(.*?)\\\]`), "__DISPLAY_MATH_BRACKETS_%d__"},
	{regexp.MustCompile(`(?s)\\\((.*?)\\\)`), "__INLINE_MATH_PAREN_%d__"},
	{regexp.MustCompile(`(?s)\\begin\{equation\}(.*?)\\end\{equation\}`), "__DISPLAY_MATH_EQUATION_%d__"},
}

// inlineDollarRe drives the final sweep over already-substituted text.
var inlineDollarRe = regexp.MustCompile(`(?s)\$(.*?)\$`)

// Protect replaces every math region in text with a unique placeholder
// token and returns the substituted text together with the token-to-span
// mapping. Matches are non-overlapping and non-nested within a kind.
// A match whose exact text can no longer be located in the working buffer
// (earlier substitutions shifted it) is skipped rather than failing the
// whole call.
func Protect(text string) (string, Regions) {
	regions := make(Regions)

	for _, p := range structuredPatterns {
		matches := p.re.FindAllString(text, -1)
		modified := text
		offset := 0
		for i, m := range matches {
			start := indexFrom(modified, m, offset)
			if start < 0 {
				continue
			}
			token := fmt.Sprintf(p.token, i)
			modified = modified[:start] + token + modified[start+len(m):]
			regions[token] = m
			offset = start + len(token)
		}
		text = modified
	}

	// Sweep for inline $...$ spans that survived the structured passes.
	// A match touching a literal $ is assumed to be a fragment of
	// malformed display math and is left alone; this adjacency check is a
	// heuristic, not a guarantee.
	matches := inlineDollarRe.FindAllString(text, -1)
	modified := text
	offset := 0
	for i, m := range matches {
		start := indexFrom(modified, m, offset)
		if start < 0 {
			continue
		}
		end := start + len(m)
		if (start > 0 && modified[start-1] == '$') || (end < len(modified) && modified[end] == '$') {
			offset = end
			continue
		}
		token := fmt.Sprintf("__INLINE_MATH_%d__", i)
		modified = modified[:start] + token + modified[end:]
		regions[token] = m
		offset = start + len(token)
	}

	return modified, regions
}

// indexFrom locates needle in s at or after offset, returning the absolute
// byte position or -1.
func indexFrom(s, needle string, offset int) int {
	if offset > len(s) {
		return -1
	}
	i := strings.Index(s[offset:], needle)
	if i < 0 {
		return -1
	}
	return offset + i
}

// stripPairs is the ordered list of known delimiter pairs tried by
// StripDelimiters. The first pair that changes the string wins, so a span
// captured under one kind is still stripped correctly when the prefix is
// ambiguous ($$ before $).
var stripPairs = []Delimiters{
	{"$$", "$$"},
	{`\[`, `\]`},
	{`\begin{equation}`, `\end{equation}`},
	{"$", "$"},
	{`\(`, `\)`},
}

// StripDelimiters removes the first known delimiter pair found wrapping
// span. A span with no recognized delimiters is returned unchanged.
func StripDelimiters(span string) string {
	for _, p := range stripPairs {
		out := strings.TrimSuffix(strings.TrimPrefix(span, p.Open), p.Close)
		if out != span {
			return out
		}
	}
	return span
}

// Restore substitutes every placeholder in text with its normalized,
// re-wrapped math body. All replacement strings are computed first and
// substituted in a second pass; substitution order across tokens does not
// matter because tokens are disjoint by construction. A token with an
// unknown prefix is reported on opts.Warn and left in the text so the
// remaining substitutions still happen.
func Restore(text string, regions Regions, opts RestoreOptions) string {
	display := opts.Display
	if display == (Delimiters{}) {
		display = Delimiters{"$$", "$$"}
	}
	inline := opts.Inline
	if inline == (Delimiters{}) {
		inline = Delimiters{"$", "$"}
	}
	warn := opts.Warn
	if warn == nil {
		warn = io.Discard
	}

	replacements := make(map[string]string, len(regions))
	for token, span := range regions {
		body := Normalize(StripDelimiters(span), opts.EscapeUnderscores)
		switch {
		case strings.HasPrefix(token, displayPrefix):
			replacements[token] = display.Open + "\n" + body + "\n" + display.Close
		case strings.HasPrefix(token, inlinePrefix):
			replacements[token] = inline.Open + body + inline.Close
		default:
			fmt.Fprintf(warn, "warning: unknown math placeholder %s left in place\n", token)
		}
	}

	for token, repl := range replacements {
		text = strings.ReplaceAll(text, token, repl)
	}
	return text
}
