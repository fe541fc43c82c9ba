package engine

import (
	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
)

// Fact is one recorded comparison, kept for explainability. A fact is
// recorded for every leaf evaluated, passing or failing.
type Fact struct {
	// Field is the dotted path of the actual side.
	Field string `json:"field"`

	// Operator is the comparison applied.
	Operator ast.Operator `json:"operator"`

	// Expected is the resolved expected value. Nil when the expected
	// source did not resolve.
	Expected interface{} `json:"expected"`

	// Actual is the resolved actual value. Nil when the field did not
	// resolve.
	Actual interface{} `json:"actual"`

	// Passed reports whether the comparison held.
	Passed bool `json:"passed"`

	// Message is the comparison's failure reason, empty on success.
	Message string `json:"message,omitempty"`
}

// Violation is the per-entity record of a failed rule.
type Violation struct {
	// EntityID identifies the failing entity within the rule's target
	// collection.
	EntityID string `json:"entity_id"`

	// Messages are the declared messages collected from failing
	// predicate nodes, in evaluation order.
	Messages []string `json:"messages,omitempty"`

	// Facts are every comparison recorded while evaluating the entity,
	// in evaluation order.
	Facts []Fact `json:"facts"`

	// Attributes is a display snapshot of the entity (id, and name when
	// present).
	Attributes map[string]interface{} `json:"attributes"`
}

// RuleResult is the outcome of one rule over its selected entities.
type RuleResult struct {
	// RuleID is the rule's pack-unique id.
	RuleID string `json:"rule_id"`

	// Passed is true iff the rule produced zero violations and no
	// configuration error.
	Passed bool `json:"passed"`

	// Checked is the number of entities evaluated after "where"
	// filtering.
	Checked int `json:"checked"`

	// Violations are the failing entities, in entity order.
	Violations []*Violation `json:"violations,omitempty"`

	// Err records the rule's configuration error when the evaluator
	// runs in skip-rule mode. A result with Err set is distinguishable
	// from a zero-violation pass.
	Err *ConfigError `json:"error,omitempty"`
}

// Failed returns true if the rule produced at least one violation.
func (r *RuleResult) Failed() bool {
	return len(r.Violations) > 0
}

// Summary aggregates a whole evaluation.
type Summary struct {
	// TotalRules is the number of rules in the pack.
	TotalRules int `json:"total_rules"`

	// EvaluatedRules counts rules whose target resolved to a known
	// collection and which evaluated without configuration errors.
	EvaluatedRules int `json:"evaluated_rules"`

	// Violations is the total violation count across all rules.
	Violations int `json:"violations"`

	// CheckedEntities is the total checked-entity count across all
	// rules.
	CheckedEntities int `json:"checked_entities"`
}

// Report is the result of evaluating one pack against one graph.
type Report struct {
	// PackSlug identifies the evaluated pack.
	PackSlug string `json:"pack_slug,omitempty"`

	// Results holds one entry per rule, in pack order.
	Results []*RuleResult `json:"results"`

	// Summary aggregates the results.
	Summary Summary `json:"summary"`
}

// Passed returns true iff every rule passed.
func (r *Report) Passed() bool {
	for _, result := range r.Results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// Result returns the result for the given rule id, or nil.
func (r *Report) Result(ruleID string) *RuleResult {
	for _, result := range r.Results {
		if result.RuleID == ruleID {
			return result
		}
	}
	return nil
}
