// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watermark detects, analyzes, and removes Unicode text
// watermarks: invisible characters, homoglyph substitutions, whitespace
// variants, and control characters. Each detection pass records
// per-character findings with context before mutating the buffer, so the
// report and the cleaned text come from one scan.
package watermark

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/runenames"
)

// Stats category keys.
const (
	StatInvisible  = "Invisible Characters"
	StatHomoglyph  = "Homoglyph Substitutions"
	StatWhitespace = "Whitespace Variations"
	StatControl    = "Control Characters"
)

// Finding categories.
const (
	CategoryInvisible  = "Invisible Character"
	CategoryHomoglyph  = "Homoglyph Substitution"
	CategoryWhitespace = "Whitespace Variation"
	CategorySpaces     = "Multiple Spaces"
	CategoryControl    = "Control Character"
)

// Options configures an analysis run.
type Options struct {
	// CollapseSpaces replaces runs of multiple ASCII spaces with a single
	// space. By default such runs are analyzed but preserved: they may be
	// a watermarking channel, but they may equally be intentional
	// formatting.
	CollapseSpaces bool
}

// Context is the text surrounding a finding, up to 20 runes on each side.
type Context struct {
	Before string `json:"-"`
	After  string `json:"-"`
}

// Finding describes one suspicious character (or space run) in the input.
type Finding struct {
	// Position is the byte offset in the text as it stood when the
	// detection pass ran.
	Position    int     `json:"position"`
	Char        string  `json:"character"`
	Replacement string  `json:"replacement,omitempty"`
	Codepoint   string  `json:"unicode"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Preserved   bool    `json:"preserved,omitempty"`
	Context     Context `json:"-"`
}

// CategoryStats aggregates findings for one watermark category.
type CategoryStats struct {
	Total   int            `json:"total"`
	Details map[string]int `json:"details,omitempty"`
}

// Result holds the cleaned text and everything learned while cleaning it.
type Result struct {
	Text               string                   `json:"-"`
	Stats              map[string]CategoryStats `json:"stats"`
	TotalModifications int                      `json:"total_modifications"`
	CharDifference     int                      `json:"char_difference"`
	Findings           []Finding                `json:"character_analysis"`
	Patterns           PatternAnalysis          `json:"pattern_analysis"`
	Impact             Impact                   `json:"impact_analysis"`
	PreservedSpaces    bool                     `json:"preserved_multiple_spaces"`
}

var multiSpaceRe = regexp.MustCompile(` {2,}`)

// Analyze runs all detection passes over text and returns the cleaned
// text with detailed findings. The input is never modified in place; the
// caller keeps the original for diffing.
func Analyze(text string, opts Options) *Result {
	original := text
	res := &Result{
		Stats:           make(map[string]CategoryStats),
		PreservedSpaces: !opts.CollapseSpaces,
	}

	text = res.removeInvisible(text)
	text = res.replaceHomoglyphs(text)
	text = res.normalizeWhitespace(text)
	text = res.analyzeSpaceRuns(text, opts.CollapseSpaces)
	text = res.removeControls(text)

	res.Text = text
	res.CharDifference = len([]rune(original)) - len([]rune(text))

	preserved := 0
	for _, f := range res.Findings {
		if f.Preserved {
			preserved++
		}
	}
	for _, s := range res.Stats {
		res.TotalModifications += s.Total
	}
	res.TotalModifications -= preserved

	res.Patterns = analyzePatterns(original, res.Findings)
	res.Impact = EvaluateImpact(res)

	return res
}

// removeInvisible strips zero-width and joiner characters.
func (res *Result) removeInvisible(text string) string {
	counts := make(map[string]int)
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range text {
		name, bad := invisibleChars[r]
		if !bad {
			b.WriteRune(r)
			continue
		}
		counts[fmt.Sprintf("%s (%s)", codepoint(r), name)]++
		res.Findings = append(res.Findings, Finding{
			Position:  i,
			Char:      string(r),
			Codepoint: codepoint(r),
			Name:      name,
			Category:  CategoryInvisible,
			Context:   contextAt(text, i),
		})
	}

	res.addStats(StatInvisible, counts)
	return b.String()
}

// replaceHomoglyphs maps lookalike characters back to ASCII.
func (res *Result) replaceHomoglyphs(text string) string {
	counts := make(map[string]int)
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range text {
		h, bad := homoglyphs[r]
		if !bad {
			b.WriteRune(r)
			continue
		}
		counts[fmt.Sprintf("%s (%s)", codepoint(r), h.Name)]++
		res.Findings = append(res.Findings, Finding{
			Position:    i,
			Char:        string(r),
			Replacement: string(h.Replacement),
			Codepoint:   codepoint(r),
			Name:        h.Name,
			Category:    CategoryHomoglyph,
			Context:     contextAt(text, i),
		})
		b.WriteRune(h.Replacement)
	}

	res.addStats(StatHomoglyph, counts)
	return b.String()
}

// normalizeWhitespace replaces special space characters with plain spaces.
// The stats entry is shared with analyzeSpaceRuns under one category.
func (res *Result) normalizeWhitespace(text string) string {
	counts := make(map[string]int)
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range text {
		name, bad := whitespaceVariants[r]
		if !bad {
			b.WriteRune(r)
			continue
		}
		counts[fmt.Sprintf("%s (%s)", codepoint(r), name)]++
		res.Findings = append(res.Findings, Finding{
			Position:    i,
			Char:        string(r),
			Replacement: " ",
			Codepoint:   codepoint(r),
			Name:        name,
			Category:    CategoryWhitespace,
			Context:     contextAt(text, i),
		})
		b.WriteRune(' ')
	}

	res.addStats(StatWhitespace, counts)
	return b.String()
}

// analyzeSpaceRuns records runs of multiple ASCII spaces. Runs are
// preserved unless collapse is set; either way they are counted under the
// whitespace category.
func (res *Result) analyzeSpaceRuns(text string, collapse bool) string {
	runs := multiSpaceRe.FindAllStringIndex(text, -1)
	if len(runs) == 0 {
		return text
	}

	for _, loc := range runs {
		spaces := text[loc[0]:loc[1]]
		replacement := spaces
		if collapse {
			replacement = " "
		}
		res.Findings = append(res.Findings, Finding{
			Position:    loc[0],
			Char:        spaces,
			Replacement: replacement,
			Codepoint:   "N/A",
			Name:        fmt.Sprintf("Multiple Spaces (%d spaces)", len(spaces)),
			Category:    CategorySpaces,
			Preserved:   !collapse,
			Context:     contextAt(text, loc[0]),
		})
	}

	key := "Multiple spaces (preserved)"
	if collapse {
		key = "Multiple spaces (collapsed)"
	}
	res.addStats(StatWhitespace, map[string]int{key: len(runs)})

	if collapse {
		return multiSpaceRe.ReplaceAllString(text, " ")
	}
	return text
}

// removeControls strips C0/C1 control characters, keeping tab, newline,
// and carriage return.
func (res *Result) removeControls(text string) string {
	counts := make(map[string]int)
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range text {
		if !isControl(r) {
			b.WriteRune(r)
			continue
		}
		counts[codepoint(r)]++
		res.Findings = append(res.Findings, Finding{
			Position:  i,
			Char:      string(r),
			Codepoint: codepoint(r),
			Name:      controlName(r),
			Category:  CategoryControl,
			Context:   contextAt(text, i),
		})
	}

	res.addStats(StatControl, counts)
	return b.String()
}

// addStats merges per-character counts into the named stats category.
func (res *Result) addStats(category string, counts map[string]int) {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return
	}

	s, ok := res.Stats[category]
	if !ok {
		s = CategoryStats{Details: make(map[string]int)}
	}
	s.Total += total
	for k, n := range counts {
		s.Details[k] += n
	}
	res.Stats[category] = s
}

// codepoint formats r as U+XXXX.
func codepoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

// controlName resolves a display name for a control character. The
// Unicode names table labels controls generically, so those fall back to
// a hex form.
func controlName(r rune) string {
	name := runenames.Name(r)
	if name == "" || name == "<control>" {
		return fmt.Sprintf("Control character (0x%02X)", r)
	}
	return name
}

// contextSize is the number of runes captured on each side of a finding.
const contextSize = 20

// contextAt extracts the text surrounding byte position pos.
func contextAt(text string, pos int) Context {
	before := text[:pos]
	if r := []rune(before); len(r) > contextSize {
		before = string(r[len(r)-contextSize:])
	}
	after := text[pos:]
	if r := []rune(after); len(r) > contextSize+1 {
		after = string(r[:contextSize+1])
	}
	return Context{Before: before, After: after}
}
