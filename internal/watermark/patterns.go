// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watermark

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IntervalPattern reports occurrences of one codepoint spaced at a regular
// distance, which suggests mechanical insertion rather than accidental
// paste artifacts.
type IntervalPattern struct {
	Codepoint   string  `json:"codepoint"`
	Interval    int     `json:"interval"`
	Consistency float64 `json:"consistency"`
}

// PositionPattern reports findings clustered at word boundaries.
type PositionPattern struct {
	Detected bool    `json:"detected"`
	Ratio    float64 `json:"ratio,omitempty"`
}

// EncodingAnalysis reports whether invisible characters could carry a
// binary payload.
type EncodingAnalysis struct {
	PossibleBinary   bool     `json:"possible_binary"`
	UniqueCodepoints []string `json:"unique_codepoints,omitempty"`
}

// PatternAnalysis is the result of looking for structure in the findings.
type PatternAnalysis struct {
	Intervals []IntervalPattern `json:"interval_patterns,omitempty"`
	Position  PositionPattern   `json:"position"`
	Encoding  EncodingAnalysis  `json:"encoding"`
}

// analyzePatterns looks for regularities across the findings that single
// characters cannot show: fixed intervals, word-boundary clustering, and
// two-symbol encodings.
func analyzePatterns(original string, findings []Finding) PatternAnalysis {
	var pa PatternAnalysis

	pa.Intervals = detectIntervals(findings)
	pa.Position = detectWordBoundaries(original, findings)
	pa.Encoding = detectEncoding(findings)

	return pa
}

// detectIntervals checks, for each codepoint separately, whether the gaps
// between its consecutive occurrences repeat. A 60% consistency over more
// than two gaps counts as a pattern. Pooling codepoints would let an
// irregular second character mask a perfectly regular first one.
func detectIntervals(findings []Finding) []IntervalPattern {
	byCodepoint := make(map[string][]int)
	for _, f := range findings {
		if f.Category == CategorySpaces {
			continue
		}
		byCodepoint[f.Codepoint] = append(byCodepoint[f.Codepoint], f.Position)
	}

	var patterns []IntervalPattern
	for cp, positions := range byCodepoint {
		sort.Ints(positions)
		if len(positions) < 4 {
			continue
		}

		gaps := make(map[int]int)
		for i := 1; i < len(positions); i++ {
			gaps[positions[i]-positions[i-1]]++
		}

		best, bestCount := 0, 0
		for gap, count := range gaps {
			if count > bestCount {
				best, bestCount = gap, count
			}
		}

		total := len(positions) - 1
		consistency := float64(bestCount) / float64(total)
		if consistency >= 0.6 {
			patterns = append(patterns, IntervalPattern{Codepoint: cp, Interval: best, Consistency: consistency})
		}
	}
	sort.Slice(patterns, func(i, j int) bool { return patterns[i].Codepoint < patterns[j].Codepoint })
	return patterns
}

// detectWordBoundaries checks how many findings sit on the first or last
// character of a word. Watermarks often anchor there to survive editing.
func detectWordBoundaries(original string, findings []Finding) PositionPattern {
	if len(findings) == 0 {
		return PositionPattern{}
	}

	boundary := 0
	counted := 0
	for _, f := range findings {
		if f.Category == CategorySpaces {
			continue
		}
		counted++
		if atWordBoundary(original, f.Position) {
			boundary++
		}
	}
	if counted == 0 {
		return PositionPattern{}
	}

	ratio := float64(boundary) / float64(counted)
	if ratio >= 0.4 {
		return PositionPattern{Detected: true, Ratio: ratio}
	}
	return PositionPattern{}
}

// atWordBoundary reports whether the rune before or after the rune at
// byte offset pos is whitespace or a text edge.
func atWordBoundary(text string, pos int) bool {
	if pos <= 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:pos])
	_, size := utf8.DecodeRuneInString(text[pos:])
	if pos+size >= len(text) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[pos+size:])
	return unicode.IsSpace(prev) || unicode.IsSpace(next)
}

// detectEncoding checks whether the invisible characters use exactly two
// distinct codepoints, the signature of a bit-per-character payload.
func detectEncoding(findings []Finding) EncodingAnalysis {
	var codepoints []string
	for _, f := range findings {
		if f.Category != CategoryInvisible {
			continue
		}
		codepoints = append(codepoints, f.Codepoint)
		if len(codepoints) == 32 {
			break
		}
	}
	if len(codepoints) < 8 {
		return EncodingAnalysis{}
	}

	unique := make(map[string]bool)
	for _, cp := range codepoints {
		unique[cp] = true
	}
	if len(unique) != 2 {
		return EncodingAnalysis{}
	}

	keys := make([]string, 0, 2)
	for cp := range unique {
		keys = append(keys, cp)
	}
	sort.Strings(keys)
	return EncodingAnalysis{PossibleBinary: true, UniqueCodepoints: keys}
}

// Describe renders the pattern analysis as human-readable lines. An empty
// slice means nothing suspicious was found.
func (pa PatternAnalysis) Describe() []string {
	var lines []string
	for _, ip := range pa.Intervals {
		lines = append(lines, fmt.Sprintf("Regular interval pattern detected: %s every %d characters (%.0f%% consistent)",
			ip.Codepoint, ip.Interval, ip.Consistency*100))
	}
	if pa.Position.Detected {
		lines = append(lines, fmt.Sprintf("Word-boundary clustering detected: %.0f%% of findings at word edges",
			pa.Position.Ratio*100))
	}
	if pa.Encoding.PossibleBinary {
		lines = append(lines, "Possible binary encoding: invisible characters use exactly two codepoints ("+
			strings.Join(pa.Encoding.UniqueCodepoints, ", ")+")")
	}
	return lines
}
