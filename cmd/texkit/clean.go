// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/texkit/internal/mdclean"
	"github.com/pdiddy/texkit/pkg/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [input.md] [output.md]",
	Short: "Clean GPT-flavored Markdown for downstream tools",
	Long: `Clean normalizes a Markdown document: math regions are protected,
normalized, and restored in the selected dialect; typographic quotes
and backticks become plain ASCII; Greek letters in prose become math
macros. A References section is appended unless disabled.

Math dialects: default ($$ display blocks, $ inline), gdoc (escaped
underscores for the Google Docs importer), equation (<equation> tags).`,
	Args: cobra.ExactArgs(2),
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	noRefs, _ := cmd.Flags().GetBool("no-references")
	mathStyle, _ := cmd.Flags().GetString("math")

	cfg := loadAppConfig().Clean
	if cmd.Flags().Changed("math") {
		cfg.MathStyle = types.MathStyle(mathStyle)
	}
	if noRefs {
		cfg.IncludeReferences = false
	}

	var opts mdclean.Options
	switch cfg.MathStyle {
	case types.MathDefault, "":
		opts = mdclean.DefaultOptions()
	case types.MathGoogleDoc:
		opts = mdclean.GoogleDocOptions()
	case types.MathEquationTag:
		opts = mdclean.EquationTagOptions()
	default:
		return fmt.Errorf("unknown math style %q: want default, gdoc, or equation", cfg.MathStyle)
	}
	opts.IncludeReferences = cfg.IncludeReferences
	opts.Warn = os.Stderr

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	output := mdclean.Clean(string(content), opts)

	if err := os.WriteFile(args[1], []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", args[1], err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", args[1])
	return nil
}

func init() {
	cleanCmd.Flags().Bool("no-references", false, "omit the References section")
	cleanCmd.Flags().String("math", "default", "math dialect: default, gdoc, or equation")

	rootCmd.AddCommand(cleanCmd)
}
