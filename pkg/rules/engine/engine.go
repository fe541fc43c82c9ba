package engine

import (
	"fmt"
	"log/slog"

	"github.com/WSG23/optimal-build-sub004/pkg/model"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
)

// Evaluator interprets rule packs against building graphs.
//
// An Evaluator is stateless apart from its configuration and is safe for
// concurrent use: every Evaluate call reads immutable inputs and returns
// a freshly allocated report.
type Evaluator struct {
	config *Config
	logger *slog.Logger
}

// NewEvaluator creates a rules evaluator.
func NewEvaluator(config *Config, logger *slog.Logger) (*Evaluator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Evaluator{
		config: config,
		logger: logger,
	}, nil
}

// Evaluate checks every rule in the pack against the graph, in pack
// order. Rules are independent: order affects only result ordering,
// never outcomes.
//
// In AbortPack mode the first configuration error aborts the call and is
// returned as a *ConfigError. In SkipRule mode (the default) the error is
// recorded on the affected rule's result and the remaining rules still
// run; such a result is distinguishable from a zero-violation pass by its
// non-nil Err.
func (ev *Evaluator) Evaluate(graph *model.Graph, pack *ast.RulePack) (*Report, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}
	if pack == nil {
		return nil, ErrNilPack
	}

	report := &Report{
		PackSlug: pack.Slug,
		Results:  make([]*RuleResult, 0, len(pack.Rules)),
	}
	report.Summary.TotalRules = len(pack.Rules)

	for _, rule := range pack.Rules {
		result, err := ev.evaluateRule(graph, rule)
		if err != nil {
			configErr, ok := err.(*ConfigError)
			if !ok {
				return nil, err
			}
			if ev.config.OnConfigError == AbortPack {
				return nil, configErr
			}

			ev.logger.Warn("skipping misconfigured rule",
				"rule_id", rule.ID,
				"kind", configErr.Kind,
				"reason", configErr.Reason,
			)
			report.Results = append(report.Results, &RuleResult{
				RuleID: rule.ID,
				Err:    configErr,
			})
			continue
		}

		report.Results = append(report.Results, result)
		report.Summary.EvaluatedRules++
		report.Summary.Violations += len(result.Violations)
		report.Summary.CheckedEntities += result.Checked
	}

	ev.logger.Debug("pack evaluated",
		"pack", pack.Slug,
		"rules", report.Summary.TotalRules,
		"violations", report.Summary.Violations,
		"checked_entities", report.Summary.CheckedEntities,
	)

	return report, nil
}

// evaluateRule selects and filters the rule's entities, evaluates the
// main predicate against each, and synthesizes violations for failures.
func (ev *Evaluator) evaluateRule(graph *model.Graph, rule *ast.Rule) (*RuleResult, error) {
	candidates, err := selectEntities(graph, rule)
	if err != nil {
		return nil, err
	}

	included, err := filterWhere(rule, candidates, graph)
	if err != nil {
		return nil, err
	}

	result := &RuleResult{
		RuleID:  rule.ID,
		Checked: len(included),
	}

	for _, entity := range included {
		out, err := evalPredicate(rule.ID, rule.Predicate, entity, graph)
		if err != nil {
			return nil, err
		}
		if out.passed {
			continue
		}

		result.Violations = append(result.Violations, &Violation{
			EntityID:   entity.ID,
			Messages:   out.messages,
			Facts:      out.facts,
			Attributes: entity.Attributes(),
		})
	}

	result.Passed = len(result.Violations) == 0
	return result, nil
}
