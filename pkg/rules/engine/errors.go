package engine

import (
	"errors"
	"fmt"
)

// ErrNilGraph indicates Evaluate was called without a graph.
var ErrNilGraph = errors.New("graph cannot be nil")

// ErrNilPack indicates Evaluate was called without a rule pack.
var ErrNilPack = errors.New("rule pack cannot be nil")

// ConfigKind classifies a configuration error in a rule pack.
type ConfigKind string

const (
	// ConfigUnknownTarget means a rule targets no known collection.
	ConfigUnknownTarget ConfigKind = "unknown_target"

	// ConfigUnknownOperator means a leaf names an operator missing from
	// the operator table.
	ConfigUnknownOperator ConfigKind = "unknown_operator"

	// ConfigExpectedSource means a leaf declares zero or more than one
	// of value, value_field, value_path.
	ConfigExpectedSource ConfigKind = "expected_source"

	// ConfigPredicateShape means a combinator node is malformed, e.g. a
	// "not" without exactly one operand.
	ConfigPredicateShape ConfigKind = "predicate_shape"
)

// ConfigError is a defect in the rule pack itself, as opposed to an
// ordinary per-entity violation. It identifies the affected rule and is
// never retried.
type ConfigError struct {
	RuleID string     `json:"rule_id"`
	Kind   ConfigKind `json:"kind"`
	Reason string     `json:"reason"`
}

// Error returns the error message.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("rule %q: %s", e.RuleID, e.Reason)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
