// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/texkit/internal/latexify"
)

var latexCmd = &cobra.Command{
	Use:   "latex [input.md] [output.tex]",
	Short: "Convert a Markdown document to a LaTeX article",
	Long: `Latex converts GPT-flavored Markdown into a compilable LaTeX article.
Math regions are protected, normalized, and restored with LaTeX
delimiters; headers, emphasis, links, lists, and code blocks are
translated; Greek letters in prose become math macros. A References
section is built from the document's links unless disabled.`,
	Args: cobra.ExactArgs(2),
	RunE: runLatex,
}

func runLatex(cmd *cobra.Command, args []string) error {
	noRefs, _ := cmd.Flags().GetBool("no-references")

	cfg := loadAppConfig().Latex
	if noRefs {
		cfg.IncludeReferences = false
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	output := latexify.Convert(string(content), latexify.Options{
		IncludeReferences: cfg.IncludeReferences,
	})

	if err := os.WriteFile(args[1], []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", args[1], err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", args[1])
	return nil
}

func init() {
	latexCmd.Flags().Bool("no-references", false, "omit the References section")

	rootCmd.AddCommand(latexCmd)
}
