package engine

import (
	"fmt"

	"github.com/WSG23/optimal-build-sub004/pkg/model"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
)

// selectEntities resolves a rule's target to one of the graph's named
// collections and returns its entities in id order. An unrecognized
// target is a configuration error, never a silent empty result.
func selectEntities(g *model.Graph, rule *ast.Rule) ([]*model.Entity, error) {
	collection, ok := g.Collection(rule.Target)
	if !ok {
		return nil, &ConfigError{
			RuleID: rule.ID,
			Kind:   ConfigUnknownTarget,
			Reason: fmt.Sprintf("unknown target %q", rule.Target),
		}
	}
	return model.SortedEntities(collection), nil
}

// filterWhere applies a rule's optional "where" pre-filter. Each
// candidate is evaluated with a throwaway fact bag; entities that do not
// pass are excluded from the checked count and never touch the main
// predicate.
func filterWhere(rule *ast.Rule, entities []*model.Entity, g *model.Graph) ([]*model.Entity, error) {
	if rule.Where == nil {
		return entities, nil
	}

	included := make([]*model.Entity, 0, len(entities))
	for _, e := range entities {
		out, err := evalPredicate(rule.ID, rule.Where, e, g)
		if err != nil {
			return nil, err
		}
		if out.passed {
			included = append(included, e)
		}
	}
	return included, nil
}
