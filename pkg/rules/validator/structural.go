package validator

import (
	"fmt"
	"regexp"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
	rerrors "github.com/WSG23/optimal-build-sub004/pkg/rules/errors"
)

// kebabCasePattern validates kebab-case identifiers (e.g. "min-space-height").
var kebabCasePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// StructuralValidator validates the structural integrity of a rule pack:
// required fields, naming conventions, and per-rule shape.
type StructuralValidator struct{}

// NewStructuralValidator creates a new structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{}
}

// Validate performs structural validation on a pack. It returns an
// ErrorList containing all structural errors found, or nil.
func (v *StructuralValidator) Validate(pack *ast.RulePack) error {
	errs := rerrors.NewErrorList()

	v.validateMetadata(pack, errs)
	v.validateRules(pack, errs)

	return errs.ToError()
}

// validateMetadata checks pack-level metadata.
func (v *StructuralValidator) validateMetadata(pack *ast.RulePack, errs *rerrors.ErrorList) {
	if pack.Slug == "" {
		errs.AddError(rerrors.ErrorTypeStructural, "",
			"missing required field 'slug'", pack.Location)
	} else if !kebabCasePattern.MatchString(pack.Slug) {
		errs.AddErrorWithSuggestion(rerrors.ErrorTypeStructural, "",
			fmt.Sprintf("slug %q is not kebab-case", pack.Slug), pack.Location,
			"use lowercase letters, digits and hyphens, starting with a letter")
	}

	if pack.Version == "" {
		errs.AddError(rerrors.ErrorTypeStructural, "",
			"missing required field 'version'", pack.Location)
	}

	if len(pack.Rules) == 0 {
		errs.AddError(rerrors.ErrorTypeStructural, "",
			"pack declares no rules", pack.Location)
	}
}

// validateRules checks per-rule shape and id uniqueness.
func (v *StructuralValidator) validateRules(pack *ast.RulePack, errs *rerrors.ErrorList) {
	seen := make(map[string]bool, len(pack.Rules))

	for _, rule := range pack.Rules {
		if rule.ID == "" {
			errs.AddError(rerrors.ErrorTypeStructural, "",
				"rule is missing required field 'id'", rule.Location)
			continue
		}

		if !kebabCasePattern.MatchString(rule.ID) {
			errs.AddErrorWithSuggestion(rerrors.ErrorTypeStructural, rule.ID,
				fmt.Sprintf("rule id %q is not kebab-case", rule.ID), rule.Location,
				"use lowercase letters, digits and hyphens, starting with a letter")
		}

		if seen[rule.ID] {
			errs.AddError(rerrors.ErrorTypeStructural, rule.ID,
				fmt.Sprintf("duplicate rule id %q", rule.ID), rule.Location)
		}
		seen[rule.ID] = true

		if rule.Target == "" {
			errs.AddError(rerrors.ErrorTypeStructural, rule.ID,
				"rule is missing required field 'target'", rule.Location)
		}

		if rule.Predicate == nil {
			errs.AddError(rerrors.ErrorTypeStructural, rule.ID,
				"rule is missing required field 'predicate'", rule.Location)
		}
	}
}
