// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPunctuation(t *testing.T) {
	got := Clean("she said “hello’s & more”", Options{})

	assert.Equal(t, `she said "hello's and more"`, got)
}

func TestCleanDefaultMathDialect(t *testing.T) {
	got := Clean("inline $x_i$ and block $$y = z$$", DefaultOptions())

	assert.Contains(t, got, "$x_{i}$")
	assert.Contains(t, got, "\n$$\ny = z\n$$\n")
}

func TestCleanGoogleDocDialect(t *testing.T) {
	got := Clean("value $x_i$ here", GoogleDocOptions())

	assert.Contains(t, got, `$$x\_{i}$$`)
}

func TestCleanEquationTagDialect(t *testing.T) {
	got := Clean("inline $a$ and block $$b$$", EquationTagOptions())

	assert.Contains(t, got, "<equation>a</equation>")
	assert.Contains(t, got, "<equation>\nb\n</equation>")
}

func TestCleanGreekOutsideMath(t *testing.T) {
	got := Clean("Let α be a constant", Options{})

	assert.Equal(t, `Let $\alpha$ be a constant`, got)
}

func TestCleanReferences(t *testing.T) {
	input := "see [paper](https://example.com/p) here"

	t.Run("appended", func(t *testing.T) {
		got := Clean(input, Options{IncludeReferences: true})
		assert.Contains(t, got, "# References\n")
		assert.Contains(t, got, " - paper: https://example.com/p\n")
	})

	t.Run("omitted", func(t *testing.T) {
		got := Clean(input, Options{})
		assert.NotContains(t, got, "# References")
	})
}

func TestCleanNoResidualPlaceholders(t *testing.T) {
	got := Clean("mix $$a$$ and $b$ and \\(c\\) and \\[d\\]", DefaultOptions())

	assert.NotContains(t, got, "__DISPLAY_MATH")
	assert.NotContains(t, got, "__INLINE_MATH")
}
