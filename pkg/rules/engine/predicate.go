package engine

import (
	"fmt"

	"github.com/WSG23/optimal-build-sub004/pkg/model"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
)

// outcome is the result of evaluating a predicate subtree against one
// entity: the boolean, plus the facts and messages collected on the way.
type outcome struct {
	passed   bool
	facts    []Fact
	messages []string
}

// evalPredicate recursively evaluates a predicate node against one entity
// and the graph root. The only error it returns is *ConfigError; ordinary
// comparison failures are absorbed into the outcome.
func evalPredicate(ruleID string, node *ast.PredicateNode, e *model.Entity, g *model.Graph) (outcome, error) {
	switch node.Kind {
	case ast.KindLeaf:
		return evalLeaf(ruleID, node, e, g)
	case ast.KindAll:
		return evalAll(ruleID, node, e, g)
	case ast.KindAny:
		return evalAny(ruleID, node, e, g)
	case ast.KindNot:
		return evalNot(ruleID, node, e, g)
	default:
		return outcome{}, &ConfigError{
			RuleID: ruleID,
			Kind:   ConfigPredicateShape,
			Reason: fmt.Sprintf("unknown predicate kind %q", node.Kind),
		}
	}
}

// evalLeaf resolves the field and the expected value, applies the
// operator, and always records exactly one fact.
func evalLeaf(ruleID string, node *ast.PredicateNode, e *model.Entity, g *model.Graph) (outcome, error) {
	fn, ok := lookupOperator(node.Operator)
	if !ok {
		return outcome{}, &ConfigError{
			RuleID: ruleID,
			Kind:   ConfigUnknownOperator,
			Reason: fmt.Sprintf("unknown operator %q", node.Operator),
		}
	}

	expected, err := resolveExpected(ruleID, node, e, g)
	if err != nil {
		return outcome{}, err
	}

	actual := resolveField(node.Field, e)
	cmp := fn(actual, expected)

	result := outcome{
		passed: cmp.passed,
		facts: []Fact{{
			Field:    node.Field,
			Operator: node.Operator,
			Expected: expected.value,
			Actual:   actual.value,
			Passed:   cmp.passed,
			Message:  cmp.reason,
		}},
	}
	if !cmp.passed && node.Message != "" {
		result.messages = append(result.messages, node.Message)
	}
	return result, nil
}

// resolveExpected picks the leaf's single expected-value source. A leaf
// declaring zero or multiple sources is a configuration error; is_truthy
// ignores the expected side entirely.
func resolveExpected(ruleID string, node *ast.PredicateNode, e *model.Entity, g *model.Graph) (operand, error) {
	if node.Operator == ast.OpIsTruthy {
		return absent, nil
	}

	if sources := node.ExpectedSources(); sources != 1 {
		return absent, &ConfigError{
			RuleID: ruleID,
			Kind:   ConfigExpectedSource,
			Reason: fmt.Sprintf("leaf on field %q declares %d expected-value sources; exactly one of value, value_field, value_path is required", node.Field, sources),
		}
	}

	switch {
	case node.HasValue:
		return someValue(node.Value), nil
	case node.ValueField != "":
		return resolveField(node.ValueField, e), nil
	default:
		return resolveGraphPath(node.ValuePath, g), nil
	}
}

// evalAll evaluates an AND group. Every child is evaluated, never
// short-circuited, so the outcome carries the full set of facts.
func evalAll(ruleID string, node *ast.PredicateNode, e *model.Entity, g *model.Graph) (outcome, error) {
	result := outcome{passed: true}

	for _, child := range node.Children {
		childOut, err := evalPredicate(ruleID, child, e, g)
		if err != nil {
			return outcome{}, err
		}
		if !childOut.passed {
			result.passed = false
		}
		result.facts = append(result.facts, childOut.facts...)
		result.messages = append(result.messages, childOut.messages...)
	}

	return result, nil
}

// evalAny evaluates an OR group. Every child is still evaluated; when the
// whole group fails and declares a message, that message is appended once
// after the children's.
func evalAny(ruleID string, node *ast.PredicateNode, e *model.Entity, g *model.Graph) (outcome, error) {
	var result outcome

	for _, child := range node.Children {
		childOut, err := evalPredicate(ruleID, child, e, g)
		if err != nil {
			return outcome{}, err
		}
		if childOut.passed {
			result.passed = true
		}
		result.facts = append(result.facts, childOut.facts...)
		result.messages = append(result.messages, childOut.messages...)
	}

	if !result.passed && node.Message != "" {
		result.messages = append(result.messages, node.Message)
	}

	return result, nil
}

// evalNot inverts its single child's boolean while preserving the child's
// facts and messages for explainability.
func evalNot(ruleID string, node *ast.PredicateNode, e *model.Entity, g *model.Graph) (outcome, error) {
	if len(node.Children) != 1 {
		return outcome{}, &ConfigError{
			RuleID: ruleID,
			Kind:   ConfigPredicateShape,
			Reason: fmt.Sprintf("'not' must have exactly one operand, got %d", len(node.Children)),
		}
	}

	childOut, err := evalPredicate(ruleID, node.Children[0], e, g)
	if err != nil {
		return outcome{}, err
	}

	return outcome{
		passed:   !childOut.passed,
		facts:    childOut.facts,
		messages: childOut.messages,
	}, nil
}
