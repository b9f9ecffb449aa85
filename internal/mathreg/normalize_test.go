// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mathreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		escape bool
		want   string
	}{
		{
			name: "greek letters",
			body: "α + β",
			want: `\alpha + \beta`,
		},
		{
			name: "omicron maps to latin o",
			body: "ο",
			want: "o",
		},
		{
			name: "uppercase greek",
			body: "Δ = Σ",
			want: `\Delta = \Sigma`,
		},
		{
			name: "subscript braced",
			body: "x_i + y_2",
			want: "x_{i} + y_{2}",
		},
		{
			name: "superscript braced",
			body: "E = mc^2",
			want: "E = mc^{2}",
		},
		{
			name: "braced subscript untouched",
			body: "x_{ij}",
			want: "x_{ij}",
		},
		{
			name: "bracket sizing simplified",
			body: `\left( a \right) \left[ b \right]`,
			want: "( a ) [ b ]",
		},
		{
			name: "spacing noop removed",
			body: `a\!b`,
			want: "ab",
		},
		{
			name: "operator padding collapsed",
			body: `a\;=\;b`,
			want: "a = b",
		},
		{
			name: "equals gets surrounding spaces",
			body: "a=b",
			want: "a = b",
		},
		{
			name: "typographic symbols",
			body: "a·b…c",
			want: `a\cdot b\ldots c`,
		},
		{
			name: "asterisk becomes ast",
			body: "a*b",
			want: `a\ast b`,
		},
		{
			name:   "escape underscores",
			body:   "x_1 + y_2",
			escape: true,
			want:   `x\_{1} + y\_{2}`,
		},
		{
			name: "bare underscores without escape",
			body: "x_1 + y_2",
			want: "x_{1} + y_{2}",
		},
		{
			name:   "previously escaped underscores reprocess cleanly",
			body:   `x\_{1}`,
			escape: true,
			want:   `x\_{1}`,
		},
		{
			name: "unescape when escape off",
			body: `x\_{1}`,
			want: "x_{1}",
		},
		{
			name: "result trimmed",
			body: "  a + b \n",
			want: "a + b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.body, tt.escape))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	bodies := []string{
		"α_i = β^2 · γ",
		`\left( x_1 \right)\;=\;y`,
		"Σ_k a_k … b*c",
		`f(x) = \alpha x^{2} + \beta`,
		"plain",
	}

	for _, body := range bodies {
		for _, escape := range []bool{false, true} {
			once := Normalize(body, escape)
			twice := Normalize(once, escape)
			assert.Equal(t, once, twice, "normalize not idempotent on %q (escape=%v)", body, escape)
		}
	}
}

func TestAnnotateGreek(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		regions Regions
		want    string
	}{
		{
			name: "greek in prose",
			text: "Let α be a constant",
			want: `Let $\alpha$ be a constant`,
		},
		{
			name: "multiple letters",
			text: "α and Ω",
			want: `$\alpha$ and $\Omega$`,
		},
		{
			name: "no greek",
			text: "nothing to do",
			want: "nothing to do",
		},
		{
			name:    "placeholder copied verbatim",
			text:    "pre __INLINE_MATH_DOLLARS_0__ post α",
			regions: Regions{"__INLINE_MATH_DOLLARS_0__": "$β$"},
			want:    `pre __INLINE_MATH_DOLLARS_0__ post $\alpha$`,
		},
		{
			name: "non-ascii non-greek preserved",
			text: "naïve — résumé",
			want: "naïve — résumé",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnnotateGreek(tt.text, tt.regions))
		})
	}
}

func TestAnnotateGreekThenRestore(t *testing.T) {
	// Full pipeline order: protect, annotate, restore. Greek inside math is
	// handled by the normalizer, Greek outside by the annotator.
	text := "Let α scale $β_1$"

	protected, regions := Protect(text)
	annotated := AnnotateGreek(protected, regions)
	restored := Restore(annotated, regions, RestoreOptions{})

	assert.Equal(t, `Let $\alpha$ scale $\beta_{1}$`, restored)
}
