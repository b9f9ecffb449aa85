// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doccat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCombineShortensDocComments(t *testing.T) {
	dir := t.TempDir()
	src := `// Package sample holds test fixtures for the combiner. It also has a
// very long second sentence that should disappear from the output.
package sample

// Add returns the sum of two integers. The implementation is left as
// an exercise for the reader, naturally.
func Add(a, b int) int {
	return a + b
}
`
	path := writeSource(t, dir, "sample.go", src)

	out := Combine([]string{path})

	assert.Contains(t, out, path+":\n```\n")
	assert.Contains(t, out, "// Package sample holds test fixtures for the combiner.\npackage sample")
	assert.Contains(t, out, "// Add returns the sum of two integers.\nfunc Add")
	assert.NotContains(t, out, "second sentence")
	assert.NotContains(t, out, "exercise for the reader")
}

func TestCombineKeepsShortDocs(t *testing.T) {
	dir := t.TempDir()
	src := `package sample

// Count of retries.
var Count = 3
`
	path := writeSource(t, dir, "sample.go", src)

	out := Combine([]string{path})
	assert.Contains(t, out, "// Count of retries.\nvar Count = 3")
}

func TestCombineTypeAndConstDocs(t *testing.T) {
	dir := t.TempDir()
	src := `package sample

// Widget models a configurable part. Every widget carries a serial
// number assigned at assembly time.
type Widget struct {
	Serial string
}

const (
	// Limit bounds concurrent widget builds. Raising it needs a matching
	// pool size change.
	Limit = 8
)
`
	path := writeSource(t, dir, "sample.go", src)

	out := Combine([]string{path})
	assert.Contains(t, out, "// Widget models a configurable part.\ntype Widget struct")
	assert.Contains(t, out, "// Limit bounds concurrent widget builds.\n\tLimit = 8")
	assert.NotContains(t, out, "serial\n")
	assert.NotContains(t, out, "pool size")
}

func TestCombineMissingFile(t *testing.T) {
	out := Combine([]string{"/no/such/file.go"})
	assert.Contains(t, out, "/no/such/file.go:\n```\n// File not found\n```")
}

func TestCombineNonGoFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "notes.txt", "hello")

	out := Combine([]string{path})
	assert.Contains(t, out, "// Not a Go file")
}

func TestCombineParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "broken.go", "package sample\nfunc {")

	out := Combine([]string{path})
	assert.Contains(t, out, "// Error processing "+path)
}

func TestCombineMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.go", "package a\n")
	b := writeSource(t, dir, "b.go", "package b\n")

	out := Combine([]string{a, b})

	ia := strings.Index(out, a+":")
	ib := strings.Index(out, b+":")
	require.GreaterOrEqual(t, ia, 0)
	require.Greater(t, ib, ia)
	assert.True(t, strings.HasSuffix(out, "```\n\n"))
}

func TestCombinePreservesNonDocComments(t *testing.T) {
	dir := t.TempDir()
	src := `package sample

func run() {
	// inline comment stays even when it is quite long and has a period. Twice.
	_ = 1
}
`
	path := writeSource(t, dir, "sample.go", src)

	out := Combine([]string{path})
	assert.Contains(t, out, "// inline comment stays even when it is quite long and has a period. Twice.")
}
