// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/texkit/internal/doccat"
)

var catCmd = &cobra.Command{
	Use:   "cat [files...]",
	Short: "Combine Go files into a digest with shortened doc comments",
	Long: `Cat prints the given Go source files as fenced code blocks, trimming
every doc comment to its first sentence. Useful for pasting a compact
view of a package into a review or a prompt.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(doccat.Combine(args))
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}
