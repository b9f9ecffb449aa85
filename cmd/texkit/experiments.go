// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/texkit/internal/experiments"
)

var experimentsCmd = &cobra.Command{
	Use:   "experiments [template] [config]",
	Short: "Generate experiment scripts from a template and a parameter grid",
	Long: `Experiments renders a template once per parameter combination. The
config file (YAML or JSON) supplies fixed replacements, a grid search,
predefined configurations, or any mix; templates use $PLACEHOLDER
values plus the generated $IDENTIFIER and $RAWIDENTIFIER. Output lands
in a timestamped directory together with an execution script.`,
	Args: cobra.ExactArgs(2),
	RunE: runExperiments,
}

func runExperiments(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	idPrefix, _ := cmd.Flags().GetString("id-prefix")
	filePrefix, _ := cmd.Flags().GetString("file-prefix")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	delimiter, _ := cmd.Flags().GetString("delimiter")

	cfg, err := experiments.LoadConfig(args[1])
	if err != nil {
		return err
	}

	// CLI flags and texkit.yaml defaults override the generation config.
	appCfg := loadAppConfig().Experiments
	if appCfg.OutputDir != "" {
		cfg.OutputDir = appCfg.OutputDir
	}
	if appCfg.IDPrefix != "" {
		cfg.IDPrefix = appCfg.IDPrefix
	}
	if cmd.Flags().Changed("id-prefix") {
		cfg.IDPrefix = idPrefix
	}
	if cmd.Flags().Changed("file-prefix") {
		cfg.OutputPrefix = filePrefix
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("delimiter") {
		cfg.StringDelimiter = &delimiter
	}

	summary, err := experiments.Run(cfg, args[0], experiments.Options{
		DryRun:  dryRun,
		Verbose: verbose,
	}, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed to generate", summary.Failed)
	}
	return nil
}

func init() {
	experimentsCmd.Flags().Bool("dry-run", false, "show what would be generated without creating files")
	experimentsCmd.Flags().BoolP("verbose", "v", false, "report unreplaced placeholders")
	experimentsCmd.Flags().StringP("id-prefix", "i", "", "prefix for the generated $IDENTIFIER")
	experimentsCmd.Flags().StringP("file-prefix", "p", "", "prefix for generated file names")
	experimentsCmd.Flags().StringP("output-dir", "o", "", "output directory prefix")
	experimentsCmd.Flags().StringP("delimiter", "d", "", "delimiter for string values (empty for none)")

	rootCmd.AddCommand(experimentsCmd)
}
