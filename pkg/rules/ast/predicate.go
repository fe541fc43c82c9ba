package ast

// PredicateKind tags the variant of a predicate node.
type PredicateKind string

const (
	KindLeaf PredicateKind = "leaf" // field op expected
	KindAll  PredicateKind = "all"  // AND of children
	KindAny  PredicateKind = "any"  // OR of children
	KindNot  PredicateKind = "not"  // negation of a single child
)

// Operator names a comparison in the engine's operator table.
type Operator string

const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpGreaterThan  Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLessThan     Operator = "<"
	OpLessEqual    Operator = "<="
	OpIn           Operator = "in"
	OpContains     Operator = "contains"
	OpNotContains  Operator = "not_contains"
	OpIsTruthy     Operator = "is_truthy"
)

// Operators lists every operator the engine recognizes.
var Operators = []Operator{
	OpEqual, OpNotEqual,
	OpGreaterThan, OpGreaterEqual, OpLessThan, OpLessEqual,
	OpIn, OpContains, OpNotContains, OpIsTruthy,
}

// KnownOperator returns true if op is in the operator table.
func KnownOperator(op Operator) bool {
	for _, known := range Operators {
		if op == known {
			return true
		}
	}
	return false
}

// PredicateNode is one node of a predicate tree.
//
// For KindLeaf, Field names the attribute under test and exactly one of
// Value (literal, signalled by HasValue), ValueField (same-entity path) or
// ValuePath (graph-root path) supplies the expected side of the
// comparison. For KindAll/KindAny/KindNot, Children holds the operands.
//
// Message is the declared human-readable explanation: on a leaf it is
// appended when the comparison fails; on an any-group it is appended once
// when the whole group fails.
type PredicateNode struct {
	Kind PredicateKind

	// Leaf fields.
	Field      string
	Operator   Operator
	Value      interface{}
	HasValue   bool
	ValueField string
	ValuePath  string

	Message string

	// Combinator operands (all/any/not).
	Children []*PredicateNode

	Location Location
}

// IsLeaf returns true for leaf comparison nodes.
func (n *PredicateNode) IsLeaf() bool {
	return n.Kind == KindLeaf
}

// ExpectedSources counts how many expected-value sources the leaf
// declares. A well-formed leaf declares exactly one.
func (n *PredicateNode) ExpectedSources() int {
	count := 0
	if n.HasValue {
		count++
	}
	if n.ValueField != "" {
		count++
	}
	if n.ValuePath != "" {
		count++
	}
	return count
}
