// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mathreg

import (
	"strings"
	"unicode/utf8"
)

// AnnotateGreek converts Greek letters that appear outside math regions
// into inline-math macro form (α becomes $\alpha$). Placeholder tokens in
// regions are copied verbatim and never annotated: they are already
// protected math, rendered later by Restore. All other text is preserved
// byte-for-byte.
func AnnotateGreek(text string, regions Regions) string {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		if token, ok := placeholderAt(text, i, regions); ok {
			b.WriteString(token)
			i += len(token)
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		if macro, ok := greekMacros[r]; ok {
			b.WriteString("$")
			b.WriteString(macro)
			b.WriteString("$")
		} else {
			b.WriteString(text[i : i+size])
		}
		i += size
	}

	return b.String()
}

// placeholderAt reports whether some live placeholder token starts at byte
// position i. Tokens are prefix-free, so at most one can match.
func placeholderAt(text string, i int, regions Regions) (string, bool) {
	for token := range regions {
		if strings.HasPrefix(text[i:], token) {
			return token, true
		}
	}
	return "", false
}
