// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mathreg

import (
	"regexp"
	"strings"
)

// greekMacros maps Greek code points to their LaTeX macro form. Omicron
// maps to a plain Latin o; the table is kept exactly as the conversion
// pipeline has always used it.
var greekMacros = map[rune]string{
	'α': `\alpha`,
	'β': `\beta`,
	'γ': `\gamma`,
	'δ': `\delta`,
	'ε': `\epsilon`,
	'ζ': `\zeta`,
	'η': `\eta`,
	'θ': `\theta`,
	'ι': `\iota`,
	'κ': `\kappa`,
	'λ': `\lambda`,
	'μ': `\mu`,
	'ν': `\nu`,
	'ξ': `\xi`,
	'ο': "o",
	'π': `\pi`,
	'ρ': `\rho`,
	'σ': `\sigma`,
	'τ': `\tau`,
	'υ': `\upsilon`,
	'φ': `\phi`,
	'χ': `\chi`,
	'ψ': `\psi`,
	'ω': `\omega`,
	'Γ': `\Gamma`,
	'Δ': `\Delta`,
	'Θ': `\Theta`,
	'Λ': `\Lambda`,
	'Ξ': `\Xi`,
	'Π': `\Pi`,
	'Σ': `\Sigma`,
	'Υ': `\Upsilon`,
	'Φ': `\Phi`,
	'Ψ': `\Psi`,
	'Ω': `\Omega`,
}

// greekReplacer applies the full Greek table in one pass. Entry order is
// irrelevant: every key is a single distinct rune.
var greekReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len(greekMacros))
	for r, macro := range greekMacros {
		pairs = append(pairs, string(r), macro)
	}
	return strings.NewReplacer(pairs...)
}()

var (
	// subscriptRe braces single-character subscripts: x_i becomes x_{i}.
	// Already-braced subscripts do not match, which keeps the rewrite
	// idempotent.
	subscriptRe = regexp.MustCompile(`_([a-zA-Z0-9])`)

	// superscriptRe is the mirror rule for superscripts: mc^2 becomes
	// mc^{2}.
	superscriptRe = regexp.MustCompile(`\^([a-zA-Z0-9])`)

	// equalsRe collapses horizontal whitespace around = to single spaces.
	// Newlines are intentionally not consumed.
	equalsRe = regexp.MustCompile(`[ \t]*=[ \t]*`)
)

// spacedOperators get their semicolon/thin-space padding collapsed to a
// single surrounding space.
var spacedOperators = []string{"=", "|", `\le`, `\ge`, `\|`, "-"}

// operatorPadding lists the irregular padding sequences emitted by LLM
// markdown around the operators above.
var operatorPadding = []struct{ prefix, suffix string }{
	{"\n;", ";"},
	{"\n\\;", "\\;"},
	{"\n\\,", "\\,"},
	{";", ";"},
	{"\\;", "\\;"},
	{"\\,", "\\,"},
}

// Normalize rewrites one math body (delimiters already stripped) into
// clean LaTeX: Greek code points become macros, single-character
// sub/superscripts are braced, bracket-sizing and spacing macros are
// simplified, and typographic ·, …, * become \cdot, \ldots, \ast.
// When escapeUnderscores is set every underscore in the result is escaped
// as \_. Previously escaped underscores are unescaped first, so the
// function is idempotent on its own output for a fixed escape setting.
func Normalize(body string, escapeUnderscores bool) string {
	body = strings.ReplaceAll(body, `\_`, "_")

	body = greekReplacer.Replace(body)

	body = subscriptRe.ReplaceAllString(body, "_{$1}")
	body = superscriptRe.ReplaceAllString(body, "^{$1}")

	body = simplify(body)

	if escapeUnderscores {
		body = strings.ReplaceAll(body, "_", `\_`)
	}

	return strings.TrimSpace(body)
}

// simplify removes bracket-sizing macros and spacing no-ops and
// regularizes operator spacing.
func simplify(eq string) string {
	eq = strings.ReplaceAll(eq, `\left(`, "(")
	eq = strings.ReplaceAll(eq, `\right)`, ")")
	eq = strings.ReplaceAll(eq, `\left[`, "[")
	eq = strings.ReplaceAll(eq, `\right]`, "]")
	eq = strings.ReplaceAll(eq, `\left{`, "{")
	eq = strings.ReplaceAll(eq, `\right}`, "}")
	eq = strings.ReplaceAll(eq, `\!`, "")
	eq = strings.ReplaceAll(eq, `)\,`, ")")

	for _, op := range spacedOperators {
		for _, pad := range operatorPadding {
			eq = strings.ReplaceAll(eq, pad.prefix+op+pad.suffix, " "+op+" ")
		}
	}

	eq = equalsRe.ReplaceAllString(eq, " = ")

	eq = strings.ReplaceAll(eq, "·", `\cdot `)
	eq = strings.ReplaceAll(eq, "…", `\ldots `)
	eq = strings.ReplaceAll(eq, "*", `\ast `)

	return eq
}
