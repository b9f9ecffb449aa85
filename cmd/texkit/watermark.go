// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/texkit/internal/scanlog"
	"github.com/pdiddy/texkit/internal/watermark"
)

var watermarkCmd = &cobra.Command{
	Use:   "watermark",
	Short: "Detect and remove Unicode watermarks from text",
	Long: `Watermark scans documents for invisible characters, homoglyph
substitutions, whitespace variants, and control characters. Use
subcommands to scan a document or review past scans.`,
}

// --- scan subcommand ---

var watermarkScanCmd = &cobra.Command{
	Use:   "scan [input] [output]",
	Short: "Scan a document and write a cleaned copy",
	Long: `Scan analyzes a document for watermark characters, writes a cleaned
copy, and summarizes what was found. Runs of multiple spaces are
preserved by default since they may be intentional formatting.

With --report a markdown analysis report is written; with --db the
scan is recorded to a history database for later comparison.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatermarkScan,
}

func runWatermarkScan(cmd *cobra.Command, args []string) error {
	reportPath, _ := cmd.Flags().GetString("report")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	collapse, _ := cmd.Flags().GetBool("collapse-spaces")
	dbPath, _ := cmd.Flags().GetString("db")

	cfg := loadAppConfig().Watermark
	if cmd.Flags().Changed("collapse-spaces") {
		cfg.CollapseSpaces = collapse
	}
	if cmd.Flags().Changed("db") {
		cfg.HistoryDB = dbPath
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	res := watermark.Analyze(string(content), watermark.Options{
		CollapseSpaces: cfg.CollapseSpaces,
	})

	if err := os.WriteFile(args[1], []byte(res.Text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", args[1], err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding analysis: %w", err)
		}
	} else {
		printScanSummary(res)
	}

	if reportPath != "" {
		f, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("creating report %s: %w", reportPath, err)
		}
		if err := watermark.WriteReport(f, args[0], res, time.Now()); err != nil {
			f.Close()
			return fmt.Errorf("writing report: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "wrote report %s\n", reportPath)
	}

	if cfg.HistoryDB != "" {
		store, err := scanlog.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		entry := scanlog.NewEntry(args[0], res, time.Now())
		if err := store.Record(context.Background(), entry); err != nil {
			return err
		}
	}

	return nil
}

func printScanSummary(res *watermark.Result) {
	fmt.Printf("modifications: %d, characters removed: %d, risk: %s\n",
		res.TotalModifications, res.CharDifference, res.Impact.Risk)
	for category, s := range res.Stats {
		fmt.Printf("  %s: %d\n", category, s.Total)
	}
	for _, line := range res.Patterns.Describe() {
		fmt.Printf("  %s\n", line)
	}
}

// --- history subcommand ---

var watermarkHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past watermark scans",
	Long: `History lists scans recorded with --db, newest first. Use --format
yaml for a machine-readable export.`,
	RunE: runWatermarkHistory,
}

func runWatermarkHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	cfg := loadAppConfig().Watermark
	if cmd.Flags().Changed("db") {
		cfg.HistoryDB = dbPath
	}
	if cfg.HistoryDB == "" {
		return fmt.Errorf("history database required: pass --db or set watermark.history_db")
	}

	store, err := scanlog.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	if format == "yaml" {
		return store.ExportYAML(context.Background(), os.Stdout)
	}

	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No scans recorded.")
		return nil
	}

	fmt.Printf("%-25s  %-20s  %6s  %8s  %s\n",
		"Scanned", "File", "Mods", "Removed", "Risk")
	fmt.Println(strings.Repeat("-", 72))
	for _, e := range entries {
		fmt.Printf("%-25s  %-20s  %6d  %8d  %s\n",
			e.ScannedAt.Format(time.RFC3339), e.File,
			e.Modifications, e.CharsRemoved, e.Risk)
	}
	return nil
}

func init() {
	watermarkScanCmd.Flags().String("report", "", "write a markdown analysis report to this path")
	watermarkScanCmd.Flags().Bool("json", false, "print the full analysis as JSON")
	watermarkScanCmd.Flags().Bool("collapse-spaces", false, "collapse runs of multiple spaces")
	watermarkScanCmd.Flags().String("db", "", "record the scan to this history database")

	watermarkHistoryCmd.Flags().String("db", "", "history database to read")
	watermarkHistoryCmd.Flags().Int("limit", 20, "maximum entries to list (0 for all)")
	watermarkHistoryCmd.Flags().String("format", "table", "output format: table or yaml")

	watermarkCmd.AddCommand(watermarkScanCmd)
	watermarkCmd.AddCommand(watermarkHistoryCmd)
	rootCmd.AddCommand(watermarkCmd)
}
