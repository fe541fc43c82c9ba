package engine

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
)

// comparison is the outcome of applying one operator: whether it held,
// and a human-readable reason when it did not.
type comparison struct {
	passed bool
	reason string
}

// operatorFunc applies a named comparison to resolved operands. Absent
// operands must produce an ordinary failed comparison with a descriptive
// reason, never a panic or error.
type operatorFunc func(actual, expected operand) comparison

// operatorTable is the fixed registry of comparison operators.
var operatorTable = map[ast.Operator]operatorFunc{
	ast.OpEqual:        opEqual,
	ast.OpNotEqual:     opNotEqual,
	ast.OpGreaterThan:  orderingOp(func(a, b float64) bool { return a > b }, ">"),
	ast.OpGreaterEqual: orderingOp(func(a, b float64) bool { return a >= b }, ">="),
	ast.OpLessThan:     orderingOp(func(a, b float64) bool { return a < b }, "<"),
	ast.OpLessEqual:    orderingOp(func(a, b float64) bool { return a <= b }, "<="),
	ast.OpIn:           opIn,
	ast.OpContains:     opContains,
	ast.OpNotContains:  opNotContains,
	ast.OpIsTruthy:     opIsTruthy,
}

// lookupOperator returns the operator implementation, or false for an
// unrecognized name (a configuration error at the call site).
func lookupOperator(op ast.Operator) (operatorFunc, bool) {
	fn, ok := operatorTable[op]
	return fn, ok
}

func opEqual(actual, expected operand) comparison {
	if c, stop := requireOperands(actual, expected); stop {
		return c
	}
	if valuesEqual(actual.value, expected.value) {
		return comparison{passed: true}
	}
	return comparison{reason: fmt.Sprintf("expected %v, got %v", expected.value, actual.value)}
}

func opNotEqual(actual, expected operand) comparison {
	if c, stop := requireOperands(actual, expected); stop {
		return c
	}
	if !valuesEqual(actual.value, expected.value) {
		return comparison{passed: true}
	}
	return comparison{reason: fmt.Sprintf("expected a value other than %v", expected.value)}
}

// orderingOp builds a numeric ordering operator. Operands compare by
// value across mixed integer and float representations.
func orderingOp(cmp func(a, b float64) bool, symbol string) operatorFunc {
	return func(actual, expected operand) comparison {
		if c, stop := requireOperands(actual, expected); stop {
			return c
		}

		actualNum, ok := toFloat64(actual.value)
		if !ok {
			return comparison{reason: fmt.Sprintf("%q is not numeric; %s requires numbers", describe(actual.value), symbol)}
		}
		expectedNum, ok := toFloat64(expected.value)
		if !ok {
			return comparison{reason: fmt.Sprintf("expected value %q is not numeric; %s requires numbers", describe(expected.value), symbol)}
		}

		if cmp(actualNum, expectedNum) {
			return comparison{passed: true}
		}
		return comparison{reason: fmt.Sprintf("expected %s %v, got %v", symbol, expected.value, actual.value)}
	}
}

// opIn checks actual ∈ expected-as-container. An absent or non-container
// expected fails with a reason naming the container, not the value.
func opIn(actual, expected operand) comparison {
	if !actual.present {
		return comparison{reason: "field did not resolve to a value"}
	}
	if !expected.present {
		return comparison{reason: "candidate container is missing"}
	}

	members, ok := asContainer(expected.value)
	if !ok {
		return comparison{reason: fmt.Sprintf("candidate container is not a list (got %s)", describe(expected.value))}
	}

	for _, member := range members {
		if valuesEqual(actual.value, member) {
			return comparison{passed: true}
		}
	}
	return comparison{reason: fmt.Sprintf("%v is not among the %d candidates", actual.value, len(members))}
}

// opContains checks expected ∈ actual-as-container, where a string actual
// is a substring container.
func opContains(actual, expected operand) comparison {
	if c, stop := requireOperands(actual, expected); stop {
		return c
	}

	if s, ok := actual.value.(string); ok {
		sub, ok := expected.value.(string)
		if !ok {
			return comparison{reason: fmt.Sprintf("cannot search a string for %s", describe(expected.value))}
		}
		if strings.Contains(s, sub) {
			return comparison{passed: true}
		}
		return comparison{reason: fmt.Sprintf("%q does not contain %q", s, sub)}
	}

	members, ok := asContainer(actual.value)
	if !ok {
		return comparison{reason: fmt.Sprintf("field value is not a container (got %s)", describe(actual.value))}
	}
	for _, member := range members {
		if valuesEqual(member, expected.value) {
			return comparison{passed: true}
		}
	}
	return comparison{reason: fmt.Sprintf("container does not include %v", expected.value)}
}

// opNotContains passes iff the container resolves and does not include
// the expected value. A missing or non-container actual still fails.
func opNotContains(actual, expected operand) comparison {
	if c, stop := requireOperands(actual, expected); stop {
		return c
	}

	if s, ok := actual.value.(string); ok {
		sub, ok := expected.value.(string)
		if !ok {
			return comparison{reason: fmt.Sprintf("cannot search a string for %s", describe(expected.value))}
		}
		if strings.Contains(s, sub) {
			return comparison{reason: fmt.Sprintf("%q contains %q", s, sub)}
		}
		return comparison{passed: true}
	}

	members, ok := asContainer(actual.value)
	if !ok {
		return comparison{reason: fmt.Sprintf("field value is not a container (got %s)", describe(actual.value))}
	}
	for _, member := range members {
		if valuesEqual(member, expected.value) {
			return comparison{reason: fmt.Sprintf("container includes %v", expected.value)}
		}
	}
	return comparison{passed: true}
}

// opIsTruthy converts the actual value to a boolean; the expected operand
// is ignored.
func opIsTruthy(actual, _ operand) comparison {
	if !actual.present {
		return comparison{reason: "field did not resolve to a value"}
	}
	if truthy(actual.value) {
		return comparison{passed: true}
	}
	return comparison{reason: fmt.Sprintf("%v is not truthy", actual.value)}
}

// requireOperands fails the comparison early when either side is absent.
func requireOperands(actual, expected operand) (comparison, bool) {
	if !actual.present {
		return comparison{reason: "field did not resolve to a value"}, true
	}
	if !expected.present {
		return comparison{reason: "expected value did not resolve"}, true
	}
	return comparison{}, false
}

// valuesEqual compares two values, comparing numerics by value across
// mixed integer/float representations and everything else deeply.
func valuesEqual(a, b interface{}) bool {
	aNum, aOK := toFloat64(a)
	bNum, bOK := toFloat64(b)
	if aOK && bOK {
		return aNum == bNum
	}
	return reflect.DeepEqual(a, b)
}

// toFloat64 converts a numeric value of any width to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// asContainer views a slice or array value as []interface{}.
func asContainer(v interface{}) ([]interface{}, bool) {
	if members, ok := v.([]interface{}); ok {
		return members, true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}

	members := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		members[i] = rv.Index(i).Interface()
	}
	return members, true
}

// truthy applies boolean conversion: nil, false, zero numbers, empty
// strings and empty containers are falsy; everything else is truthy.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	}

	if num, ok := toFloat64(v); ok {
		return num != 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	}
	return true
}

// describe names a value's dynamic type for reasons shown to humans.
func describe(v interface{}) string {
	if v == nil {
		return "null"
	}
	return reflect.TypeOf(v).String()
}
