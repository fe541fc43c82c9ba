package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/WSG23/optimal-build-sub004/pkg/citations"
	"github.com/WSG23/optimal-build-sub004/pkg/cli"
	"github.com/WSG23/optimal-build-sub004/pkg/convert"
	"github.com/WSG23/optimal-build-sub004/pkg/overlay"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/catalog"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/engine"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/parser"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/validator"
)

var validateFlags struct {
	model         string
	pack          string
	slug          string
	db            string
	format        string
	onConfigError string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Evaluate a model against a rule pack",
	Long: `Evaluate a GeoJSON model against a rule pack and report violations.

The pack can come from a YAML file or from a catalogue database.

Examples:
  # Validate against a pack file
  buildcheck validate --model site.geojson --pack residential.yaml

  # Validate against a catalogued pack
  buildcheck validate --model site.geojson --slug residential-checks --db packs.db

  # Stop at the first pack configuration error
  buildcheck validate --model site.geojson --pack residential.yaml --on-config-error abort

  # JSON report for CI
  buildcheck validate --model site.geojson --pack residential.yaml --format json`,
	RunE: validateModel,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.model, "model", "m", "", "GeoJSON model file (required)")
	validateCmd.Flags().StringVarP(&validateFlags.pack, "pack", "p", "", "rule pack YAML file")
	validateCmd.Flags().StringVar(&validateFlags.slug, "slug", "", "catalogued pack slug (requires --db)")
	validateCmd.Flags().StringVar(&validateFlags.db, "db", "", "catalogue database path")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	validateCmd.Flags().StringVar(&validateFlags.onConfigError, "on-config-error", "skip", "config-error policy: skip, abort")
	_ = validateCmd.MarkFlagRequired("model")
}

// validateReport is the JSON payload of the validate command.
type validateReport struct {
	Report      *engine.Report            `json:"report"`
	Citations   []citations.RuleCitations `json:"citations,omitempty"`
	Suggestions []overlay.Suggestion      `json:"suggestions,omitempty"`
}

func validateModel(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(validateFlags.format)
	if err != nil {
		return err
	}

	mode, err := parseErrorMode(validateFlags.onConfigError)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(validateFlags.model)
	if err != nil {
		return fmt.Errorf("failed to read model: %w", err)
	}
	graph, err := convert.GraphFromGeoJSON(raw)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	pack, err := loadPack()
	if err != nil {
		return err
	}

	logger := commandLogger()
	evaluator, err := engine.NewEvaluator(engine.DefaultConfig().WithConfigErrorMode(mode), logger)
	if err != nil {
		return err
	}

	report, err := evaluator.Evaluate(graph, pack)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	ruleCitations := citations.ForReport(report, pack)

	if format == cli.FormatJSON {
		if err := cli.WriteJSON(os.Stdout, validateReport{
			Report:      report,
			Citations:   ruleCitations,
			Suggestions: overlay.FromReport(report),
		}); err != nil {
			return err
		}
	} else {
		printReport(report, ruleCitations)
	}

	if !report.Passed() {
		return cli.NewCommandError("validate", fmt.Errorf("%d violation(s)", report.Summary.Violations))
	}
	return nil
}

// loadPack resolves the pack from --pack or --slug/--db.
func loadPack() (*ast.RulePack, error) {
	switch {
	case validateFlags.pack != "" && validateFlags.slug != "":
		return nil, fmt.Errorf("--pack and --slug are mutually exclusive")

	case validateFlags.pack != "":
		pack, err := parser.NewParser().ParseFile(validateFlags.pack)
		if err != nil {
			return nil, fmt.Errorf("failed to parse pack: %w", err)
		}
		if err := validator.NewValidator().Validate(pack); err != nil {
			return nil, fmt.Errorf("invalid pack: %w", err)
		}
		return pack, nil

	case validateFlags.slug != "":
		if validateFlags.db == "" {
			return nil, fmt.Errorf("--slug requires --db")
		}
		store, err := catalog.NewSQLiteStore(validateFlags.db)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalogue: %w", err)
		}
		defer store.Close()
		return store.Get(context.Background(), validateFlags.slug)

	default:
		return nil, fmt.Errorf("either --pack or --slug must be specified")
	}
}

func parseErrorMode(s string) (engine.ConfigErrorMode, error) {
	switch s {
	case "skip", "":
		return engine.SkipRule, nil
	case "abort":
		return engine.AbortPack, nil
	default:
		return "", fmt.Errorf("unknown config-error policy %q (valid: skip, abort)", s)
	}
}

// commandLogger builds a logger for one-shot commands: quiet unless
// --verbose is set.
func commandLogger() *slog.Logger {
	var w io.Writer = io.Discard
	level := slog.LevelInfo
	if verbose {
		w = os.Stderr
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printReport(report *engine.Report, ruleCitations []citations.RuleCitations) {
	cited := make(map[string][]ast.Citation, len(ruleCitations))
	for _, rc := range ruleCitations {
		cited[rc.RuleID] = rc.Citations
	}

	for _, result := range report.Results {
		switch {
		case result.Err != nil:
			fmt.Printf("! %s: skipped (%s)\n", result.RuleID, result.Err.Reason)
		case result.Passed:
			fmt.Printf("✓ %s: %d entities checked\n", result.RuleID, result.Checked)
		default:
			fmt.Printf("✗ %s: %d violation(s) in %d entities\n", result.RuleID, len(result.Violations), result.Checked)
			for _, v := range result.Violations {
				fmt.Printf("  - %s", v.EntityID)
				if name, ok := v.Attributes["name"]; ok {
					fmt.Printf(" (%v)", name)
				}
				fmt.Println()
				for _, msg := range v.Messages {
					fmt.Printf("      %s\n", msg)
				}
			}
			for _, c := range cited[result.RuleID] {
				fmt.Printf("  see: %s", c.Clause)
				if c.Title != "" {
					fmt.Printf(" (%s)", c.Title)
				}
				fmt.Println()
			}
		}
	}

	fmt.Println()
	fmt.Printf("Summary: %d/%d rules evaluated, %d entities checked, %d violation(s)\n",
		report.Summary.EvaluatedRules,
		report.Summary.TotalRules,
		report.Summary.CheckedEntities,
		report.Summary.Violations,
	)
}
