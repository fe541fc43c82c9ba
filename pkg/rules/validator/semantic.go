package validator

import (
	"fmt"

	"github.com/WSG23/optimal-build-sub004/pkg/model"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
	rerrors "github.com/WSG23/optimal-build-sub004/pkg/rules/errors"
)

// SemanticValidator validates references within a rule pack: targets,
// operators, and the exactly-one-expected-source invariant on leaves.
type SemanticValidator struct{}

// NewSemanticValidator creates a new semantic validator.
func NewSemanticValidator() *SemanticValidator {
	return &SemanticValidator{}
}

// Validate performs semantic validation on a pack. It returns an
// ErrorList containing all semantic errors found, or nil.
func (v *SemanticValidator) Validate(pack *ast.RulePack) error {
	errs := rerrors.NewErrorList()

	for _, rule := range pack.Rules {
		v.validateTarget(rule, errs)
		if rule.Where != nil {
			v.validatePredicate(rule.ID, rule.Where, errs)
		}
		if rule.Predicate != nil {
			v.validatePredicate(rule.ID, rule.Predicate, errs)
		}
	}

	return errs.ToError()
}

// validateTarget checks that the rule targets a known graph collection.
func (v *SemanticValidator) validateTarget(rule *ast.Rule, errs *rerrors.ErrorList) {
	if rule.Target == "" {
		return // structural pass reports the missing field
	}

	for _, name := range model.CollectionNames {
		if rule.Target == name {
			return
		}
	}

	errs.AddErrorWithSuggestion(rerrors.ErrorTypeSemantic, rule.ID,
		fmt.Sprintf("unknown target %q", rule.Target), rule.Location,
		rerrors.SuggestName(model.CollectionNames))
}

// validatePredicate recursively checks a predicate tree.
func (v *SemanticValidator) validatePredicate(ruleID string, node *ast.PredicateNode, errs *rerrors.ErrorList) {
	switch node.Kind {
	case ast.KindLeaf:
		v.validateLeaf(ruleID, node, errs)

	case ast.KindNot:
		if len(node.Children) != 1 {
			errs.AddError(rerrors.ErrorTypeSemantic, ruleID,
				fmt.Sprintf("'not' must have exactly one operand, got %d", len(node.Children)),
				node.Location)
		}
		for _, child := range node.Children {
			v.validatePredicate(ruleID, child, errs)
		}

	case ast.KindAll, ast.KindAny:
		for _, child := range node.Children {
			v.validatePredicate(ruleID, child, errs)
		}
	}
}

// validateLeaf checks a leaf's operator and expected-value source.
func (v *SemanticValidator) validateLeaf(ruleID string, node *ast.PredicateNode, errs *rerrors.ErrorList) {
	if !ast.KnownOperator(node.Operator) {
		names := make([]string, len(ast.Operators))
		for i, op := range ast.Operators {
			names[i] = string(op)
		}
		errs.AddErrorWithSuggestion(rerrors.ErrorTypeSemantic, ruleID,
			fmt.Sprintf("unknown operator %q", node.Operator), node.Location,
			rerrors.SuggestName(names))
	}

	// is_truthy reads only the actual side: a declared expected value is
	// ignored at evaluation, so zero or one source is acceptable.
	sources := node.ExpectedSources()
	if node.Operator == ast.OpIsTruthy {
		if sources > 1 {
			errs.AddError(rerrors.ErrorTypeSemantic, ruleID,
				fmt.Sprintf("leaf on field %q declares %d expected-value sources; at most one is allowed", node.Field, sources),
				node.Location)
		}
		return
	}

	switch sources {
	case 0:
		errs.AddError(rerrors.ErrorTypeSemantic, ruleID,
			fmt.Sprintf("leaf on field %q declares no expected value; set exactly one of value, value_field, value_path", node.Field),
			node.Location)
	case 1:
		// Well-formed.
	default:
		errs.AddError(rerrors.ErrorTypeSemantic, ruleID,
			fmt.Sprintf("leaf on field %q declares %d expected-value sources; set exactly one of value, value_field, value_path", node.Field, sources),
			node.Location)
	}
}
