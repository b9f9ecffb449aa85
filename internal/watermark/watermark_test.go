// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watermark

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCleanText(t *testing.T) {
	res := Analyze("Plain ASCII text with nothing unusual.", Options{})

	assert.Equal(t, "Plain ASCII text with nothing unusual.", res.Text)
	assert.Empty(t, res.Findings)
	assert.Empty(t, res.Stats)
	assert.Zero(t, res.TotalModifications)
	assert.Zero(t, res.CharDifference)

	imp := EvaluateImpact(res)
	assert.Equal(t, RiskLow, imp.Risk)
	assert.Equal(t, ImpactNone, imp.Readability)
	assert.Equal(t, LeakageNone, imp.Leakage)
}

func TestAnalyzeInvisibleCharacters(t *testing.T) {
	res := Analyze("hel​lo wor\uFEFFld", Options{})

	assert.Equal(t, "hello world", res.Text)
	assert.Equal(t, 2, res.Stats[StatInvisible].Total)
	assert.Equal(t, 2, res.CharDifference)
	require.Len(t, res.Findings, 2)
	assert.Equal(t, "U+200B", res.Findings[0].Codepoint)
	assert.Equal(t, CategoryInvisible, res.Findings[0].Category)
}

func TestAnalyzeHomoglyphs(t *testing.T) {
	// Cyrillic en, ie, and o in place of their Latin lookalikes.
	res := Analyze("Неllо wоrld", Options{})

	assert.Equal(t, "Hello world", res.Text)
	assert.Equal(t, 4, res.Stats[StatHomoglyph].Total)
	assert.Zero(t, res.CharDifference)
	require.NotEmpty(t, res.Findings)
	assert.Equal(t, "H", res.Findings[0].Replacement)
	assert.Equal(t, CategoryHomoglyph, res.Findings[0].Category)
}

func TestAnalyzeWhitespaceVariants(t *testing.T) {
	res := Analyze("a b c", Options{})

	assert.Equal(t, "a b c", res.Text)
	assert.Equal(t, 2, res.Stats[StatWhitespace].Total)
}

func TestAnalyzeSpaceRunsPreserved(t *testing.T) {
	res := Analyze("a  b   c", Options{})

	assert.Equal(t, "a  b   c", res.Text)
	assert.True(t, res.PreservedSpaces)
	assert.Zero(t, res.TotalModifications)

	require.Len(t, res.Findings, 2)
	assert.True(t, res.Findings[0].Preserved)
	assert.Equal(t, CategorySpaces, res.Findings[0].Category)
	assert.Equal(t, 2, res.Stats[StatWhitespace].Details["Multiple spaces (preserved)"])
}

func TestAnalyzeSpaceRunsCollapsed(t *testing.T) {
	res := Analyze("a  b   c", Options{CollapseSpaces: true})

	assert.Equal(t, "a b c", res.Text)
	assert.False(t, res.PreservedSpaces)
	assert.Equal(t, 2, res.TotalModifications)
	assert.Equal(t, 3, res.CharDifference)
	require.Len(t, res.Findings, 2)
	assert.False(t, res.Findings[0].Preserved)
}

func TestAnalyzeControlCharacters(t *testing.T) {
	res := Analyze("a\x07b\tc\nd", Options{})

	assert.Equal(t, "ab\tc\nd", res.Text)
	assert.Equal(t, 1, res.Stats[StatControl].Total)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, CategoryControl, res.Findings[0].Category)
	assert.Equal(t, "U+0007", res.Findings[0].Codepoint)
}

func TestAnalyzeMixedDocument(t *testing.T) {
	text := "The​ quick brоwn  fox jumps"
	res := Analyze(text, Options{CollapseSpaces: true})

	assert.Equal(t, "The quick brown fox jumps", res.Text)
	assert.Equal(t, 1, res.Stats[StatInvisible].Total)
	assert.Equal(t, 1, res.Stats[StatHomoglyph].Total)
	assert.Equal(t, 2, res.Stats[StatWhitespace].Total)
	assert.Equal(t, 4, res.TotalModifications)
}

func TestPatternBinaryEncoding(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteString("ab​cd‌")
	}
	res := Analyze(b.String(), Options{})

	assert.True(t, res.Patterns.Encoding.PossibleBinary)
	assert.Equal(t, []string{"U+200B", "U+200C"}, res.Patterns.Encoding.UniqueCodepoints)

	imp := EvaluateImpact(res)
	assert.Equal(t, RiskHigh, imp.Risk)
	assert.Equal(t, LeakageHigh, imp.Leakage)
	assert.Equal(t, PurposeEmbed, imp.Purpose)
}

func TestPatternRegularIntervals(t *testing.T) {
	res := Analyze("abcd​abcd​abcd​abcd​", Options{})

	require.Len(t, res.Patterns.Intervals, 1)
	ip := res.Patterns.Intervals[0]
	assert.Equal(t, "U+200B", ip.Codepoint)
	assert.Equal(t, 7, ip.Interval)
	assert.InDelta(t, 1.0, ip.Consistency, 0.001)
}

func TestPatternIntervalPerCodepoint(t *testing.T) {
	// Zero-width spaces recur every 16 bytes; zero-width non-joiners drift
	// through the segments with no repeating gap.
	text := "‌abcdefghij​" +
		"ab‌cdefghij​" +
		"abcde‌fghij​" +
		"abcdefghi‌j​" +
		"abcd‌efghij​"
	res := Analyze(text, Options{})

	require.Len(t, res.Patterns.Intervals, 1)
	ip := res.Patterns.Intervals[0]
	assert.Equal(t, "U+200B", ip.Codepoint)
	assert.Equal(t, 16, ip.Interval)
	assert.InDelta(t, 1.0, ip.Consistency, 0.001)
}

func TestPatternNoneOnSparseFindings(t *testing.T) {
	res := Analyze("a​b", Options{})

	assert.Empty(t, res.Patterns.Intervals)
	assert.False(t, res.Patterns.Encoding.PossibleBinary)
}

func TestEvaluateImpactLevels(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		risk        string
		readability string
		structure   string
	}{
		{"homoglyphs hurt search and copy-paste", "cаt", RiskLow, ImpactMedium, ImpactMedium},
		{"invisible barely affects reading", "a​b", RiskLow, ImpactMinimal, ImpactNone},
		{"whitespace variants alone", "a b", RiskLow, ImpactNone, ImpactNone},
		{"controls disrupt tooling", "a\x07b", RiskMedium, ImpactMedium, ImpactHigh},
		{"clean text", "abc", RiskLow, ImpactNone, ImpactNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := EvaluateImpact(Analyze(tt.text, Options{}))
			assert.Equal(t, tt.risk, imp.Risk)
			assert.Equal(t, tt.readability, imp.Readability)
			assert.Equal(t, tt.structure, imp.Structure)
		})
	}
}

func TestResultJSONIncludesImpact(t *testing.T) {
	res := Analyze("cаt", Options{})
	data, err := json.Marshal(res)
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Contains(t, payload, "impact_analysis")
	require.Contains(t, payload, "pattern_analysis")

	var imp Impact
	require.NoError(t, json.Unmarshal(payload["impact_analysis"], &imp))
	assert.Equal(t, RiskLow, imp.Risk)
	assert.Equal(t, ImpactMedium, imp.Readability)
}

func TestEvaluateImpactIntervalPattern(t *testing.T) {
	text := strings.Repeat("a​", 11)
	imp := EvaluateImpact(Analyze(text, Options{}))

	assert.Equal(t, RiskHigh, imp.Risk)
	assert.Equal(t, LeakageLikely, imp.Leakage)
	assert.Equal(t, PurposeTracking, imp.Purpose)
}

func TestWriteReport(t *testing.T) {
	res := Analyze("Hеllo​  world", Options{})
	var buf strings.Builder
	err := WriteReport(&buf, "draft.md", res, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# Watermark Analysis Report")
	assert.Contains(t, out, "**File**: draft.md")
	assert.Contains(t, out, "2026-03-01T12:00:00Z")
	assert.Contains(t, out, StatHomoglyph)
	assert.Contains(t, out, StatInvisible)
	assert.Contains(t, out, "U+0435")
	assert.Contains(t, out, "## Impact Assessment")
	assert.Contains(t, out, "- **Risk**: medium")
	assert.Contains(t, out, "- **Readability impact**: medium")
}

func TestFindingContext(t *testing.T) {
	res := Analyze("0123456789012345678901234​56789", Options{})

	require.Len(t, res.Findings, 1)
	ctx := res.Findings[0].Context
	assert.Len(t, []rune(ctx.Before), 20)
	assert.Equal(t, "56789012345678901234", ctx.Before)
	assert.True(t, strings.HasSuffix(ctx.After, "56789") || strings.Contains(ctx.After, "56789"))
}
