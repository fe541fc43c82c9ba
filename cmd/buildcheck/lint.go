package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/WSG23/optimal-build-sub004/pkg/cli"
	rerrors "github.com/WSG23/optimal-build-sub004/pkg/rules/errors"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/parser"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/validator"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate rule pack files",
	Long: `Validate rule pack files for syntax and semantic errors.

The lint command parses pack files and performs full validation:
  - YAML syntax validation
  - Pack and rule structure validation
  - Semantic validation (target categories, operators, expected sources)

Examples:
  # Lint a single pack
  buildcheck lint --file residential.yaml

  # Lint a directory of packs
  buildcheck lint --dir packs/

  # JSON output for CI
  buildcheck lint --dir packs/ --format json`,
	RunE: lintPacks,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "pack file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of pack files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult is the validation outcome for one pack file.
type LintResult struct {
	File   string        `json:"file"`
	Valid  bool          `json:"valid"`
	Errors []LintFinding `json:"errors,omitempty"`
}

// LintFinding is a single error with its source location.
type LintFinding struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	RuleID     string `json:"rule_id,omitempty"`
	Type       string `json:"type,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func lintPacks(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(lintFlags.format)
	if err != nil {
		return err
	}

	files, err := collectPackFiles(lintFlags.file, lintFlags.dir)
	if err != nil {
		return err
	}

	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintPackFile(file))
	}

	if format == cli.FormatJSON {
		if err := cli.WriteJSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		printLintResults(results)
	}

	for _, result := range results {
		if !result.Valid {
			return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
		}
	}
	return nil
}

// collectPackFiles resolves the --file/--dir flags into a file list.
func collectPackFiles(file, dir string) ([]string, error) {
	if file == "" && dir == "" {
		return nil, fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if file != "" {
		files = append(files, file)
	}
	if dir != "" {
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("failed to list pack files: %w", err)
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no pack files found")
	}
	return files, nil
}

func lintPackFile(path string) LintResult {
	result := LintResult{File: path, Valid: true}

	pack, err := parser.NewParser().ParseFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = collectFindings(err)
		return result
	}

	if err := validator.NewValidator().Validate(pack); err != nil {
		result.Valid = false
		result.Errors = collectFindings(err)
	}
	return result
}

// collectFindings flattens a parse or validation error into findings.
func collectFindings(err error) []LintFinding {
	var list *rerrors.ErrorList
	if errors.As(err, &list) {
		findings := make([]LintFinding, 0, list.Len())
		for _, e := range list.Errors {
			findings = append(findings, LintFinding{
				Line:       e.Location.Line,
				Column:     e.Location.Column,
				RuleID:     e.RuleID,
				Type:       string(e.Type),
				Message:    e.Message,
				Suggestion: e.Suggestion,
			})
		}
		return findings
	}
	return []LintFinding{{Message: err.Error()}}
}

func printLintResults(results []LintResult) {
	totalErrors := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if result.Valid {
			fmt.Println("✓ Pack is valid")
		}

		for _, finding := range result.Errors {
			fmt.Printf("✗ Error: %s", finding.Message)
			if finding.RuleID != "" {
				fmt.Printf(" (rule %s)", finding.RuleID)
			}
			if finding.Line > 0 {
				fmt.Printf(" (line %d", finding.Line)
				if finding.Column > 0 {
					fmt.Printf(", col %d", finding.Column)
				}
				fmt.Print(")")
			}
			if finding.Type != "" {
				fmt.Printf(" [%s]", finding.Type)
			}
			fmt.Println()
			if finding.Suggestion != "" {
				fmt.Printf("  suggestion: %s\n", finding.Suggestion)
			}
			totalErrors++
		}
		fmt.Println()
	}

	fmt.Printf("Summary: %d file(s), %d error(s)\n", len(results), totalErrors)
}
