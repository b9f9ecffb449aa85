// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the texkit CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/texkit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the texkit CLI.
var rootCmd = &cobra.Command{
	Use:   "texkit",
	Short: "Text transformation tools for research writing",
	Long: `texkit converts and cleans research documents. Markdown drafts become
LaTeX or cleaned Markdown with math regions protected and normalized;
documents are scanned for Unicode watermarks; experiment scripts are
generated from templates; Go sources are combined into review digests.

Each transformation is a subcommand: latex, clean, watermark,
experiments, and cat.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./texkit.yaml or ~/.config/texkit/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("texkit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "texkit"))
		}
	}

	viper.SetEnvPrefix("TEXKIT")
	viper.AutomaticEnv()

	defaults := types.DefaultConfig()
	viper.SetDefault("latex.include_references", defaults.Latex.IncludeReferences)
	viper.SetDefault("clean.include_references", defaults.Clean.IncludeReferences)
	viper.SetDefault("clean.math_style", string(defaults.Clean.MathStyle))
	viper.SetDefault("watermark.history_db", defaults.Watermark.HistoryDB)
	viper.SetDefault("watermark.collapse_spaces", defaults.Watermark.CollapseSpaces)
	viper.SetDefault("experiments.output_dir", defaults.Experiments.OutputDir)
	viper.SetDefault("experiments.id_prefix", defaults.Experiments.IDPrefix)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadAppConfig resolves settings from defaults, the config file, and
// the environment.
func loadAppConfig() types.Config {
	return types.Config{
		Latex: types.LatexConfig{
			IncludeReferences: viper.GetBool("latex.include_references"),
		},
		Clean: types.CleanConfig{
			IncludeReferences: viper.GetBool("clean.include_references"),
			MathStyle:         types.MathStyle(viper.GetString("clean.math_style")),
		},
		Watermark: types.WatermarkConfig{
			HistoryDB:      viper.GetString("watermark.history_db"),
			CollapseSpaces: viper.GetBool("watermark.collapse_spaces"),
		},
		Experiments: types.ExperimentsConfig{
			OutputDir: viper.GetString("experiments.output_dir"),
			IDPrefix:  viper.GetString("experiments.id_prefix"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
