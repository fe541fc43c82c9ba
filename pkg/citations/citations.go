// Package citations attaches regulatory clause references to evaluation
// reports. Rules declare the clauses they enforce; after evaluation the
// failed rules' citations are collected and deduplicated for display.
package citations

import (
	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/engine"
)

// RuleCitations pairs a failed rule with its declared clause references.
type RuleCitations struct {
	RuleID    string         `json:"rule_id"`
	Citations []ast.Citation `json:"citations"`
}

// ForReport returns the citations of every failed rule in the report, in
// rule order. Rules that passed, were skipped, or declare no citations
// are omitted.
func ForReport(report *engine.Report, pack *ast.RulePack) []RuleCitations {
	byID := make(map[string]*ast.Rule, len(pack.Rules))
	for _, rule := range pack.Rules {
		byID[rule.ID] = rule
	}

	var out []RuleCitations
	for _, result := range report.Results {
		if result.Passed || result.Err != nil {
			continue
		}
		rule := byID[result.RuleID]
		if rule == nil || len(rule.Citations) == 0 {
			continue
		}
		out = append(out, RuleCitations{
			RuleID:    result.RuleID,
			Citations: rule.Citations,
		})
	}
	return out
}

// Dedupe collapses a citation list to unique clauses, preserving
// first-seen order. Two citations are the same when their clause and URL
// match.
func Dedupe(citations []ast.Citation) []ast.Citation {
	type key struct{ clause, url string }

	seen := make(map[key]bool, len(citations))
	var out []ast.Citation
	for _, c := range citations {
		k := key{c.Clause, c.URL}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// Flatten returns the deduplicated union of all cited clauses across the
// failed rules, in first-seen order. This is the display list shown at
// the bottom of a report.
func Flatten(ruleCitations []RuleCitations) []ast.Citation {
	var all []ast.Citation
	for _, rc := range ruleCitations {
		all = append(all, rc.Citations...)
	}
	return Dedupe(all)
}
