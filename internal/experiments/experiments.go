// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experiments

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Options controls a generation run.
type Options struct {
	// DryRun lists what would be generated without writing files.
	DryRun bool
	// Verbose reports unreplaced placeholders per generated file.
	Verbose bool
	// Now supplies the clock for timestamped directories and date
	// fields. Nil means time.Now.
	Now func() time.Time
}

// Summary holds counts from a generation run.
type Summary struct {
	Generated int
	Failed    int
	OutputDir string
	Script    string
}

// Total returns the number of configurations processed.
func (s Summary) Total() int {
	return s.Generated + s.Failed
}

// HasFailures reports whether any file could not be written.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// job is one configuration to render: a predefined preset or a grid
// combination.
type job struct {
	Kind   string
	Name   string
	Params map[string]any
}

var (
	placeholderRe  = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)
	identSanitize  = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// Run renders the template at templatePath once per configuration in cfg
// and writes the results to a timestamped output directory, along with an
// execution script that runs every generated file. Per-file status goes
// to w.
func Run(cfg *Config, templatePath string, opts Options, w io.Writer) (Summary, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	template, err := os.ReadFile(templatePath)
	if err != nil {
		return Summary{}, fmt.Errorf("reading template %s: %w", templatePath, err)
	}

	jobs := buildJobs(cfg)
	ext := cfg.Extension(templatePath)
	startedAt := now()

	if opts.DryRun {
		for i, j := range jobs {
			_, name := outputName(cfg.OutputPrefix, j, i+1)
			fmt.Fprintf(w, "would write %s%s\n", name, ext)
		}
		fmt.Fprintf(w, "\ndry run: %d file(s) would be generated\n", len(jobs))
		return Summary{Generated: 0}, nil
	}

	outputDir := fmt.Sprintf("%s_%s", cfg.OutputDir, startedAt.Format("20060102_150405"))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	summary := Summary{OutputDir: outputDir}

	type generated struct {
		path string
		job  job
		id   string
	}
	var written []generated

	for i, j := range jobs {
		prefix, name := outputName(cfg.OutputPrefix, j, i+1)
		path := filepath.Join(outputDir, name+ext)

		replacements := make(map[string]any, len(cfg.Replacements)+len(j.Params))
		for k, v := range cfg.Replacements {
			replacements[k] = v
		}
		for k, v := range j.Params {
			replacements[k] = v
		}

		id := Identifier(j.Params, cfg.IDPrefix, prefix, startedAt)
		content := ApplyTemplate(string(template), replacements, id, cfg.Delimiter())

		if opts.Verbose {
			reportUnreplaced(w, j, content)
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "wrote   %s\n", path)
		summary.Generated++
		written = append(written, generated{path: path, job: j, id: id})
	}

	// Execution script, one invocation per generated file.
	script := filepath.Join(outputDir, cfg.OutputPrefix+"_execute_all.sh")
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	b.WriteString("# Auto-generated execution script\n")
	fmt.Fprintf(&b, "# Generated at: %s\n", startedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "# Total files: %d\n\n", len(written))
	for _, g := range written {
		if g.job.Name != "" {
			fmt.Fprintf(&b, "# Config: %s (%s)\n", g.job.Name, g.job.Kind)
		} else {
			fmt.Fprintf(&b, "# Config: %s\n", g.job.Kind)
		}
		fmt.Fprintf(&b, "# Identifier: %s\n", g.id)
		b.WriteString(executeLine(g.path))
		b.WriteString("\n")
	}
	if err := os.WriteFile(script, []byte(b.String()), 0o755); err != nil {
		return summary, fmt.Errorf("writing execution script: %w", err)
	}
	summary.Script = script

	fmt.Fprintf(w, "\ngenerated: %d, failed: %d\n", summary.Generated, summary.Failed)
	fmt.Fprintf(w, "output directory: %s\n", outputDir)
	fmt.Fprintf(w, "execution script: %s\n", script)

	return summary, nil
}

// buildJobs collects predefined presets first, then grid combinations.
func buildJobs(cfg *Config) []job {
	var jobs []job

	for i, preset := range cfg.Predefined {
		name, _ := preset["name"].(string)
		if name == "" {
			name = fmt.Sprintf("preset_%d", i+1)
		}
		params := make(map[string]any, len(preset))
		for k, v := range preset {
			if k != "name" {
				params[k] = v
			}
		}
		jobs = append(jobs, job{Kind: "predefined", Name: name, Params: params})
	}

	for _, params := range GridCombinations(cfg.GridSearch) {
		jobs = append(jobs, job{Kind: "grid", Params: params})
	}

	return jobs
}

// GridCombinations expands a grid into the cartesian product of its
// values. Keys are visited in sorted order with the last key varying
// fastest, so output order is deterministic.
func GridCombinations(grid map[string][]any) []map[string]any {
	if len(grid) == 0 {
		return nil
	}

	keys := make([]string, 0, len(grid))
	for k := range grid {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	total := 1
	for _, k := range keys {
		total *= len(grid[k])
	}

	combos := make([]map[string]any, 0, total)
	indices := make([]int, len(keys))
	for {
		combo := make(map[string]any, len(keys))
		for i, k := range keys {
			combo[k] = grid[k][indices[i]]
		}
		combos = append(combos, combo)

		i := len(keys) - 1
		for i >= 0 {
			indices[i]++
			if indices[i] < len(grid[keys[i]]) {
				break
			}
			indices[i] = 0
			i--
		}
		if i < 0 {
			return combos
		}
	}
}

// Identifier builds the $IDENTIFIER value for a parameter set:
// prefix_KEY1_VALUE1_KEY2_VALUE2_... with keys sorted and the reserved
// "name" key skipped. Date fields in the prefix are expanded against now,
// and $FILE against filename.
func Identifier(params map[string]any, prefix, filename string, now time.Time) string {
	var parts []string

	if prefix != "" {
		parts = append(parts, expandDateFields(prefix, filename, now))
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if k != "name" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, sanitizeIdentifier(k)+"_"+sanitizeIdentifier(formatValue(params[k])))
	}

	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, "_")
}

// dateFields maps placeholder names to time layouts, longest names first
// so $DATETIME0 is not clobbered by $DATETIME.
var dateFields = []struct {
	placeholder string
	layout      string
}{
	{"$DATETIME0", "2006-01-02_15:04:05"},
	{"$DATETIME1", "20060102-15:04:05"},
	{"$DATETIME", "20060102150405"},
	{"$DATE0", "2006-01-02"},
	{"$DATE1", "20060102"},
	{"$DATE", "20060102"},
}

func expandDateFields(s, filename string, now time.Time) string {
	for _, f := range dateFields {
		s = strings.ReplaceAll(s, f.placeholder, now.Format(f.layout))
	}
	return strings.ReplaceAll(s, "$FILE", filename)
}

// ApplyTemplate substitutes $PLACEHOLDER values into the template.
// $RAWIDENTIFIER is replaced bare, $IDENTIFIER delimited; parameter keys
// are applied longest first so a key is never clobbered by one of its
// prefixes.
func ApplyTemplate(template string, replacements map[string]any, identifier, delimiter string) string {
	result := strings.ReplaceAll(template, "$RAWIDENTIFIER", identifier)
	result = strings.ReplaceAll(result, "$IDENTIFIER", delimiter+identifier+delimiter)

	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		v := replacements[k]
		str := formatValue(v)
		if _, isString := v.(string); isString {
			str = delimiter + str + delimiter
		}
		result = strings.ReplaceAll(result, "$"+k, str)
	}
	return result
}

// formatValue renders a parameter value for substitution. Numbers parsed
// from JSON arrive as float64; integral values drop the fractional part.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

func sanitizeIdentifier(s string) string {
	s = identSanitize.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

var filenameSanitizer = strings.NewReplacer(
	".", "_", "/", "_", `\`, "_", " ", "_", ":", "_",
	"*", "_", "?", "_", `"`, "_", "<", "_", ">", "_", "|", "_",
)

func sanitizeFilename(s string) string {
	return underscoreRuns.ReplaceAllString(filenameSanitizer.Replace(s), "_")
}

// outputName builds the file name for job number counter. The short
// prefix (prefix_counter) doubles as the $FILE value in identifiers.
func outputName(prefix string, j job, counter int) (shortPrefix, name string) {
	shortPrefix = fmt.Sprintf("%s_%d", prefix, counter)

	parts := []string{shortPrefix}
	if j.Name != "" {
		parts = append(parts, sanitizeFilename(j.Name))
	}

	keys := make([]string, 0, len(j.Params))
	for k := range j.Params {
		if k != "name" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, sanitizeFilename(k)+"_"+sanitizeFilename(formatValue(j.Params[k])))
	}

	return shortPrefix, strings.Join(parts, "_")
}

// executeLine picks the command used to run a generated file.
func executeLine(path string) string {
	switch {
	case strings.HasSuffix(path, ".sbatch"):
		return "sbatch " + path + "\n"
	case strings.HasSuffix(path, ".sh"):
		return "bash " + path + "\n"
	case strings.HasSuffix(path, ".py"):
		return "python " + path + "\n"
	default:
		return "# Execute: " + path + "\n"
	}
}

// reportUnreplaced warns about placeholders the replacements did not
// cover.
func reportUnreplaced(w io.Writer, j job, content string) {
	matches := placeholderRe.FindAllStringSubmatch(content, -1)
	seen := make(map[string]bool)
	var remaining []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			remaining = append(remaining, m[1])
		}
	}
	if len(remaining) == 0 {
		return
	}
	sort.Strings(remaining)
	label := j.Kind
	if j.Name != "" {
		label = j.Name
	}
	fmt.Fprintf(w, "warning %s: %d placeholder(s) not replaced: $%s\n",
		label, len(remaining), strings.Join(remaining, ", $"))
}
