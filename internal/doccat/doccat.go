// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doccat combines Go source files into a single fenced-block
// digest, shortening doc comments to their first sentence so the result
// stays a readable size for review or prompting.
package doccat

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sort"
	"strings"
)

// minSentenceLen guards against abbreviations: a first "sentence"
// shorter than this is not treated as one.
const minSentenceLen = 10

// Combine renders each path as a fenced code block headed by its file
// name. Go files have their doc comments shortened; missing files and
// non-Go files produce a stub block instead of an error so one bad path
// does not abort the digest.
func Combine(paths []string) string {
	var b strings.Builder

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(&b, "%s:\n```\n// File not found\n```\n\n", path)
			continue
		}
		if !strings.HasSuffix(path, ".go") {
			fmt.Fprintf(&b, "%s:\n```\n// Not a Go file\n```\n\n", path)
			continue
		}

		content, err := processFile(path)
		if err != nil {
			fmt.Fprintf(&b, "%s:\n```\n// Error processing %s: %v\n```\n\n", path, path, err)
			continue
		}
		fmt.Fprintf(&b, "%s:\n```\n%s\n```\n\n", path, content)
	}

	return b.String()
}

// edit is a textual splice: replace source[start:end) with text.
type edit struct {
	start int
	end   int
	text  string
}

// processFile parses a Go file and shortens every doc comment group to
// its first sentence. Edits apply as textual splices so the rest of the
// file keeps its original formatting.
func processFile(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return "", err
	}

	var edits []edit
	addEdit := func(group *ast.CommentGroup) {
		if group == nil {
			return
		}
		shortened := shortenDoc(group)
		if shortened == "" {
			return
		}
		start := fset.Position(group.Pos()).Offset
		end := fset.Position(group.End()).Offset
		if shortened == string(src[start:end]) {
			return
		}
		edits = append(edits, edit{start: start, end: end, text: shortened})
	}

	addEdit(file.Doc)
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			addEdit(d.Doc)
		case *ast.GenDecl:
			addEdit(d.Doc)
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					addEdit(s.Doc)
				case *ast.ValueSpec:
					addEdit(s.Doc)
				}
			}
		}
	}

	// Apply in reverse so earlier offsets stay valid.
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := string(src)
	for _, e := range edits {
		out = out[:e.start] + e.text + out[e.end:]
	}

	return strings.TrimRight(out, "\n"), nil
}

// shortenDoc reduces a comment group to a single line comment holding
// its first sentence. Directive comments (//go:...) are left alone.
func shortenDoc(group *ast.CommentGroup) string {
	if len(group.List) == 1 && strings.HasPrefix(group.List[0].Text, "//go:") {
		return ""
	}

	text := strings.TrimSpace(group.Text())
	if text == "" {
		return ""
	}

	if i := strings.Index(text, "."); i >= 0 {
		sentence := strings.TrimSpace(text[:i])
		if len([]rune(sentence)) > minSentenceLen {
			return "// " + collapseLines(sentence) + "."
		}
	}

	line, _, _ := strings.Cut(text, "\n")
	return "// " + strings.TrimSpace(line)
}

// collapseLines joins a sentence that wraps across comment lines.
func collapseLines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
