// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mathreg

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenRe matches any placeholder-shaped token.
var tokenRe = regexp.MustCompile(`__[A-Z_]+_\d+__`)

func TestProtectDisplayBeforeInline(t *testing.T) {
	protected, regions := Protect("$$a+b$$ and $c$")

	require.Len(t, regions, 2)
	assert.Equal(t, "$$a+b$$", regions["__DISPLAY_MATH_DOLLARS_0__"])
	assert.Equal(t, "$c$", regions["__INLINE_MATH_DOLLARS_0__"])
	assert.Equal(t, "__DISPLAY_MATH_DOLLARS_0__ and __INLINE_MATH_DOLLARS_0__", protected)
}

func TestProtectKinds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantToken string
	}{
		{"display dollars", "$$x$$", "__DISPLAY_MATH_DOLLARS_0__"},
		{"inline dollars", "$x$", "__INLINE_MATH_DOLLARS_0__"},
		{"display brackets", `\[x\]`, "__DISPLAY_MATH_BRACKETS_0__"},
		{"inline parens", `\(x\)`, "__INLINE_MATH_PAREN_0__"},
		{"equation environment", `\begin{equation}x\end{equation}`, "__DISPLAY_MATH_EQUATION_0__"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			protected, regions := Protect("before " + tt.input + " after")
			require.Len(t, regions, 1)
			assert.Equal(t, tt.input, regions[tt.wantToken])
			assert.Equal(t, "before "+tt.wantToken+" after", protected)
		})
	}
}

func TestProtectPlaceholderDisjointness(t *testing.T) {
	input := "$$a$$ $p$ text $$b$$ more $q$ and $r$\n$$c$$ tail $s$ end $t$"

	protected, regions := Protect(input)

	// 3 display blocks and 5 inline blocks: exactly 8 distinct keys, each
	// appearing exactly once in the protected text, no span captured twice.
	require.Len(t, regions, 8)
	spans := make(map[string]int)
	for token, span := range regions {
		assert.Equal(t, 1, strings.Count(protected, token), "token %s", token)
		spans[span]++
	}
	for span, n := range spans {
		assert.Equal(t, 1, n, "span %q captured more than once", span)
	}
}

func TestProtectAdjacentDisplayBlocks(t *testing.T) {
	protected, regions := Protect("$$a$$$$b$$")

	require.Len(t, regions, 2)
	assert.Equal(t, "$$a$$", regions["__DISPLAY_MATH_DOLLARS_0__"])
	assert.Equal(t, "$$b$$", regions["__DISPLAY_MATH_DOLLARS_1__"])
	assert.NotContains(t, protected, "$")
}

func TestProtectNoMath(t *testing.T) {
	protected, regions := Protect("plain prose, no delimiters here")
	assert.Empty(t, regions)
	assert.Equal(t, "plain prose, no delimiters here", protected)
}

func TestRoundTripLeavesNoTokens(t *testing.T) {
	inputs := []string{
		"$$a+b$$ and $c$",
		`text \[x^2\] mid \(y_i\) end`,
		"mixed $inline$ with\n$$display$$\nand \\begin{equation}e\\end{equation}",
		"no math at all",
	}

	for _, input := range inputs {
		protected, regions := Protect(input)
		restored := Restore(protected, regions, RestoreOptions{})
		assert.Empty(t, tokenRe.FindAllString(restored, -1),
			"residual placeholder after round trip of %q", input)
	}
}

func TestRestoreDelimiterSubstitution(t *testing.T) {
	protected, regions := Protect("$$E = mc^2$$")

	got := Restore(protected, regions, RestoreOptions{
		Display: Delimiters{"<equation>", "</equation>"},
	})

	assert.Equal(t, "<equation>\nE = mc^{2}\n</equation>", got)
}

func TestRestoreInlineDelimiters(t *testing.T) {
	protected, regions := Protect(`value $\alpha_i$ here`)

	got := Restore(protected, regions, RestoreOptions{
		Inline:            Delimiters{"$$", "$$"},
		EscapeUnderscores: true,
	})

	assert.Equal(t, `value $$\alpha\_{i}$$ here`, got)
}

func TestRestoreDefaultsToDollars(t *testing.T) {
	protected, regions := Protect(`\[a=b\] and \(c\)`)

	got := Restore(protected, regions, RestoreOptions{})

	assert.Equal(t, "$$\na = b\n$$ and $c$", got)
}

func TestRestoreUnknownPlaceholder(t *testing.T) {
	var warnings strings.Builder
	regions := Regions{"__BOGUS_THING_0__": "$x$"}

	got := Restore("before __BOGUS_THING_0__ after", regions, RestoreOptions{Warn: &warnings})

	// Unknown prefix: reported, text left untouched at that token.
	assert.Equal(t, "before __BOGUS_THING_0__ after", got)
	assert.Contains(t, warnings.String(), "__BOGUS_THING_0__")
}

func TestRestoreUnknownDoesNotAbortOthers(t *testing.T) {
	regions := Regions{
		"__BOGUS_THING_0__":         "$x$",
		"__INLINE_MATH_DOLLARS_0__": "$y$",
	}

	got := Restore("__BOGUS_THING_0__ __INLINE_MATH_DOLLARS_0__", regions, RestoreOptions{})

	assert.Equal(t, "__BOGUS_THING_0__ $y$", got)
}

func TestStripDelimiters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$$x$$", "x"},
		{"$x$", "x"},
		{`\[x\]`, "x"},
		{`\(x\)`, "x"},
		{`\begin{equation}x\end{equation}`, "x"},
		{"bare", "bare"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripDelimiters(tt.in), "input %q", tt.in)
	}
}
