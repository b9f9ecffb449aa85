// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latexify converts LLM-generated Markdown into a compilable LaTeX
// article. Math regions and fenced code blocks are placed behind
// placeholder tokens before any formatting pass runs, then restored with
// dialect-appropriate wrapping at the end.
package latexify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/texkit/internal/mathreg"
	"github.com/pdiddy/texkit/internal/refs"
)

// Options configures one conversion.
type Options struct {
	// IncludeReferences appends a numbered References section collected
	// from the document's Markdown links.
	IncludeReferences bool
}

var (
	codeBlockRe = regexp.MustCompile("(?s)```(.*?)```")

	// sectionNumberRe strips hardcoded "1.2." style numbering from headers.
	sectionNumberRe = regexp.MustCompile(`(?m)^(#+)\s*\**\d+(?:\.\d+)*\.?\s*(.*)\**$`)

	h1Re = regexp.MustCompile(`(?m)^# (.*)$`)
	h2Re = regexp.MustCompile(`(?m)^## (.*)$`)
	h3Re = regexp.MustCompile(`(?m)^### (.*)$`)
	h4Re = regexp.MustCompile(`(?m)^#### (.*)$`)
	h5Re = regexp.MustCompile(`(?m)^##### (.*)$`)

	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)

	linkRe      = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s]+)\)`)
	emptyHrefRe = regexp.MustCompile(`\\href\{([^{}]*)\}\{\}`)
	hrefRe      = regexp.MustCompile(`(\\href\{[^}]+\}\{[^}]+\})`)

	// listSectionRe matches a run of consecutive "- " bullet lines.
	listSectionRe = regexp.MustCompile(`(?:^|\n)(?:- .*(?:\n|$))+`)
	listItemRe    = regexp.MustCompile(`(?m)^- (.*)$`)
)

// Convert runs the full Markdown-to-LaTeX pipeline over one buffered
// document and returns a complete LaTeX file body.
func Convert(content string, opts Options) string {
	references := refs.Collect(content)

	content = cleanText(content)

	content, codeBlocks := protectCodeBlocks(content)
	content, mathRegions := mathreg.Protect(content)

	content = sectionNumberRe.ReplaceAllString(content, "$1 **$2**")
	content = upgradeSectionDepth(content)
	content = h1Re.ReplaceAllString(content, `\section{$1}`)
	content = h2Re.ReplaceAllString(content, `\subsection{$1}`)
	content = h3Re.ReplaceAllString(content, `\subsubsection{$1}`)
	content = h4Re.ReplaceAllString(content, `\paragraph{$1}`)
	content = h5Re.ReplaceAllString(content, "$1")

	content = boldRe.ReplaceAllString(content, `\textbf{$1}`)
	content = italicRe.ReplaceAllString(content, `\textit{$1}`)

	content = mathreg.AnnotateGreek(content, mathRegions)

	content = processLinks(content)

	content = mathreg.Restore(content, mathRegions, mathreg.RestoreOptions{})
	content = restoreCodeBlocks(content, codeBlocks)

	content = processLists(content)

	if opts.IncludeReferences && len(references) > 0 {
		content += referencesSection(references)
	}

	return wrapDocument(content)
}

// cleanText escapes LaTeX-special characters in prose. Underscores are
// deliberately left alone here; they are handled in math context by the
// normalizer.
var textCleaner = strings.NewReplacer(
	"&", `\&`,
	"\u201c", "``",
	"\u201d", "''",
	"%", `\%`,
)

func cleanText(text string) string {
	return textCleaner.Replace(text)
}

// upgradeSectionDepth promotes heading levels until the document has an H1,
// so a document written entirely in "##" still produces \section entries.
func upgradeSectionDepth(text string) string {
	for i := 0; !strings.Contains(text, "\n# ") && i <= 4; i++ {
		text = strings.ReplaceAll(text, "\n##", "\n#")
	}
	return text
}

// protectCodeBlocks hides fenced code blocks behind placeholder tokens so
// formatting passes cannot touch their contents.
func protectCodeBlocks(content string) (string, map[string]string) {
	blocks := make(map[string]string)
	for i, block := range codeBlockRe.FindAllString(content, -1) {
		token := fmt.Sprintf("__CODE_BLOCK_%d__", i)
		blocks[token] = block
		content = strings.Replace(content, block, token, 1)
	}
	return content, blocks
}

// restoreCodeBlocks substitutes protected code blocks back. A fence whose
// language line is "math" becomes an equation environment with a
// normalized body; everything else becomes verbatim.
func restoreCodeBlocks(content string, blocks map[string]string) string {
	for token, block := range blocks {
		m := codeBlockRe.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		inner := m[1]

		var replacement string
		lang, rest, hasBody := strings.Cut(inner, "\n")
		if hasBody && strings.TrimSpace(lang) == "math" {
			body := mathreg.Normalize(rest, false)
			replacement = "\\begin{equation}\n" + body + "\n\\end{equation}"
		} else {
			replacement = `\begin{verbatim}` + inner + `\end{verbatim}`
		}

		content = strings.ReplaceAll(content, token, replacement)
	}
	return content
}

// processLinks converts Markdown links to \href commands, fills empty
// hrefs with their URL, and repairs the closing parenthesis the greedy URL
// match swallows.
func processLinks(content string) string {
	content = linkRe.ReplaceAllStringFunc(content, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		return fmt.Sprintf(`\href{%s}{%s}`, refs.CleanURL(sub[2]), sub[1])
	})
	content = emptyHrefRe.ReplaceAllString(content, `\href{$1}{$1}`)
	content = hrefRe.ReplaceAllString(content, "$1)")
	return content
}

// processLists rewrites runs of "- " bullet lines into itemize
// environments.
func processLists(content string) string {
	for _, section := range listSectionRe.FindAllString(content, -1) {
		items := listItemRe.FindAllStringSubmatch(section, -1)
		if len(items) == 0 {
			continue
		}
		var b strings.Builder
		b.WriteString("\\begin{itemize}\n")
		for _, item := range items {
			fmt.Fprintf(&b, "\\item %s\n", strings.TrimSpace(item[1]))
		}
		b.WriteString("\\end{itemize}")
		content = strings.Replace(content, section, b.String(), 1)
	}
	return content
}

// referencesSection renders the collected links as a numbered section.
func referencesSection(references []refs.Reference) string {
	var b strings.Builder
	b.WriteString("\n\n%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%\n\n")
	b.WriteString("\\section{References}\n\\begin{enumerate}\n")
	for _, r := range references {
		fmt.Fprintf(&b, "\\item %s: \\url{%s}\n", r.Text, r.URL)
	}
	b.WriteString("\\end{enumerate}\n")
	return b.String()
}

// wrapDocument adds the article preamble and document environment.
func wrapDocument(content string) string {
	var b strings.Builder
	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage{amsmath, amssymb, url, hyperref}\n")
	b.WriteString("\\begin{document}\n")
	b.WriteString(content)
	b.WriteString("\n\\end{document}\n")
	return b.String()
}
