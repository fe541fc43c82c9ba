package errors

import (
	"fmt"
	"strings"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
)

// ErrorType categorizes the kind of problem found in a rule pack.
type ErrorType string

const (
	ErrorTypeSyntax     ErrorType = "syntax"     // YAML syntax error
	ErrorTypeStructural ErrorType = "structural" // missing/invalid fields, bad shapes
	ErrorTypeSemantic   ErrorType = "semantic"   // unknown target/operator, bad references
	ErrorTypeIO         ErrorType = "io"         // file I/O error
)

// Error is a single parse or validation finding with location context.
type Error struct {
	Type       ErrorType
	RuleID     string // rule the error belongs to, if known
	Message    string
	Location   ast.Location
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] ", e.Type))
	if e.RuleID != "" {
		sb.WriteString(fmt.Sprintf("rule %q: ", e.RuleID))
	}
	sb.WriteString(e.Message)

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location.String()))
	}
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// ErrorList accumulates findings across a whole pack.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*Error, 0)}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and appends an error.
func (el *ErrorList) AddError(errType ErrorType, ruleID, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		RuleID:   ruleID,
		Message:  message,
		Location: location,
	})
}

// AddErrorWithSuggestion creates and appends an error carrying a
// suggested fix.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, ruleID, message string, location ast.Location, suggestion string) {
	el.Add(&Error{
		Type:       errType,
		RuleID:     ruleID,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if any errors were accumulated.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// HasErrorType returns true if the list contains an error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}

// Len returns the number of accumulated errors.
func (el *ErrorList) Len() int {
	return len(el.Errors)
}

// ToError returns the list as an error, or nil if the list is empty.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// Error implements the error interface by joining all findings.
func (el *ErrorList) Error() string {
	if len(el.Errors) == 1 {
		return el.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors:\n", len(el.Errors)))
	for _, err := range el.Errors {
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// SuggestName builds a "valid names are ..." suggestion for an unknown
// identifier (target, operator) from the set of valid names.
func SuggestName(valid []string) string {
	if len(valid) == 0 {
		return ""
	}
	return fmt.Sprintf("valid values: %s", strings.Join(valid, ", "))
}
