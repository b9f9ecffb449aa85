// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watermark

// invisibleChars are zero-width and joiner code points used to fingerprint
// text without visible effect. All are removed.
var invisibleChars = map[rune]string{
	'​': "Zero Width Space",
	'‌': "Zero Width Non-Joiner",
	'‍': "Zero Width Joiner",
	' ': "Narrow No-Break Space",
	'⁠': "Word Joiner",
	'\uFEFF': "Zero Width No-Break Space",
}

// homoglyph describes a lookalike character and its ASCII replacement.
type homoglyph struct {
	Replacement rune
	Name        string
}

// homoglyphs maps visually confusable code points to the standard Latin
// characters they imitate.
var homoglyphs = map[rune]homoglyph{
	// Cyrillic letters that look like Latin.
	'а': {'a', "Cyrillic small letter a"},
	'е': {'e', "Cyrillic small letter ie"},
	'о': {'o', "Cyrillic small letter o"},
	'р': {'p', "Cyrillic small letter er"},
	'с': {'c', "Cyrillic small letter es"},
	'х': {'x', "Cyrillic small letter ha"},
	'В': {'B', "Cyrillic capital letter ve"},
	'Н': {'H', "Cyrillic capital letter en"},
	'М': {'M', "Cyrillic capital letter em"},
	'К': {'K', "Cyrillic capital letter ka"},

	// Mathematical alphanumerics that look like letters.
	'\U0001D41A': {'a', "Mathematical bold small a"},
	'\U0001D41B': {'b', "Mathematical bold small b"},
	'\U0001D400': {'A', "Mathematical bold capital A"},
	'\U0001D401': {'B', "Mathematical bold capital B"},
	'\U0001D44E': {'a', "Mathematical italic small a"},
	'\U0001D44F': {'b', "Mathematical italic small b"},
	'\U0001D482': {'a', "Mathematical bold italic small a"},
	'\U0001D483': {'b', "Mathematical bold italic small b"},

	// Other common lookalikes.
	'ɑ': {'a', "Latin small letter alpha"},
	'ℯ': {'e', "Script small e"},
	'ｉ': {'i', "Fullwidth latin small letter i"},
	'ｏ': {'o', "Fullwidth latin small letter o"},
}

// whitespaceVariants are non-standard space characters replaced with a
// plain ASCII space.
var whitespaceVariants = map[rune]string{
	' ': "Non-Breaking Space",
	' ': "En Quad",
	' ': "Em Quad",
	' ': "En Space",
	' ': "Em Space",
	' ': "Three-Per-Em Space",
	' ': "Four-Per-Em Space",
	' ': "Six-Per-Em Space",
	' ': "Figure Space",
	' ': "Punctuation Space",
	' ': "Thin Space",
	' ': "Hair Space",
	' ': "Line Separator",
	' ': "Paragraph Separator",
	' ': "Medium Mathematical Space",
	'　': "Ideographic Space",
}

// isControl reports whether r is a C0/C1 control character that should be
// removed. Tab, newline, and carriage return are exempt.
func isControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return (r >= 0x00 && r <= 0x1F) || (r >= 0x7F && r <= 0x9F)
}
