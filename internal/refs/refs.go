// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refs collects Markdown link references for the appendix sections
// the converters emit.
package refs

import (
	"regexp"
	"strings"
)

// Reference is one collected link: display text and fragment-stripped URL.
type Reference struct {
	Text string
	URL  string
}

// linkRe matches [text](url) links with an http(s) URL. The optional
// trailing non-paren character absorbs stray punctuation that LLM output
// tends to glue onto URLs.
var linkRe = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)(?:[^)])?\)`)

// Collect scans content for Markdown links and returns them in order of
// first appearance. Duplicate URLs are collapsed keeping the longest link
// text seen for that URL. Must run before any rewriting pass touches the
// link syntax.
func Collect(content string) []Reference {
	var pairs []Reference
	for _, m := range linkRe.FindAllStringSubmatch(content, -1) {
		text := m[1]
		// A nested "[fig 3]" style prefix leaves a bracket in the text;
		// keep only the final segment.
		if i := strings.LastIndexByte(text, ']'); i >= 0 {
			text = text[i+1:]
		}
		pairs = append(pairs, Reference{Text: text, URL: CleanURL(m[2])})
	}
	return dedupe(pairs)
}

// CleanURL strips the fragment from a URL.
func CleanURL(url string) string {
	base, _, _ := strings.Cut(url, "#")
	return base
}

// dedupe removes duplicate URLs, keeping first-appearance order and the
// longest text seen for each URL.
func dedupe(pairs []Reference) []Reference {
	if len(pairs) == 0 {
		return nil
	}

	best := make(map[string]string)
	var order []string
	for _, p := range pairs {
		prev, seen := best[p.URL]
		if !seen {
			order = append(order, p.URL)
		}
		if !seen || len(p.Text) > len(prev) {
			best[p.URL] = p.Text
		}
	}

	out := make([]Reference, len(order))
	for i, url := range order {
		out[i] = Reference{Text: best[url], URL: url}
	}
	return out
}
