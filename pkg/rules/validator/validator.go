package validator

import (
	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
	rerrors "github.com/WSG23/optimal-build-sub004/pkg/rules/errors"
)

// Validator orchestrates all validation passes over a rule pack.
type Validator struct {
	structural *StructuralValidator
	semantic   *SemanticValidator
}

// NewValidator creates a validator with all passes.
func NewValidator() *Validator {
	return &Validator{
		structural: NewStructuralValidator(),
		semantic:   NewSemanticValidator(),
	}
}

// Validate runs all passes on a pack and accumulates their findings.
// The semantic pass is skipped when structural errors are present.
func (v *Validator) Validate(pack *ast.RulePack) error {
	errs := rerrors.NewErrorList()

	if err := v.structural.Validate(pack); err != nil {
		if list, ok := err.(*rerrors.ErrorList); ok {
			errs.Errors = append(errs.Errors, list.Errors...)
		}
	}

	if !errs.HasErrorType(rerrors.ErrorTypeStructural) {
		if err := v.semantic.Validate(pack); err != nil {
			if list, ok := err.(*rerrors.ErrorList); ok {
				errs.Errors = append(errs.Errors, list.Errors...)
			}
		}
	}

	return errs.ToError()
}

// ValidateStructural runs only the structural pass.
func (v *Validator) ValidateStructural(pack *ast.RulePack) error {
	return v.structural.Validate(pack)
}

// ValidateSemantic runs only the semantic pass.
func (v *Validator) ValidateSemantic(pack *ast.RulePack) error {
	return v.semantic.Validate(pack)
}
