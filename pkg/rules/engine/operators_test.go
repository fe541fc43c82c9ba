package engine

import (
	"strings"
	"testing"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
)

func TestOperatorTable_Complete(t *testing.T) {
	for _, op := range ast.Operators {
		if _, ok := lookupOperator(op); !ok {
			t.Errorf("operator %q declared in ast but missing from the table", op)
		}
	}

	if _, ok := lookupOperator(ast.Operator("almost_equal")); ok {
		t.Error("lookupOperator() resolved an unrecognized operator")
	}
}

func TestOperators_Comparisons(t *testing.T) {
	tests := []struct {
		name     string
		op       ast.Operator
		actual   operand
		expected operand
		want     bool
	}{
		// equality
		{"equal strings", ast.OpEqual, someValue("office"), someValue("office"), true},
		{"equal mixed int float", ast.OpEqual, someValue(3), someValue(3.0), true},
		{"equal int64 vs int", ast.OpEqual, someValue(int64(7)), someValue(7), true},
		{"equal bools", ast.OpEqual, someValue(true), someValue(true), true},
		{"unequal strings", ast.OpEqual, someValue("office"), someValue("retail"), false},
		{"not equal", ast.OpNotEqual, someValue("office"), someValue("retail"), true},
		{"not equal same", ast.OpNotEqual, someValue(2.5), someValue(2.5), false},

		// ordering
		{"greater than", ast.OpGreaterThan, someValue(3.6), someValue(3.5), true},
		{"greater than equal values", ast.OpGreaterThan, someValue(3.5), someValue(3.5), false},
		{"greater equal boundary", ast.OpGreaterEqual, someValue(3.5), someValue(3.5), true},
		{"greater equal int vs float", ast.OpGreaterEqual, someValue(4), someValue(3.5), true},
		{"less than", ast.OpLessThan, someValue(2), someValue(3), true},
		{"less equal", ast.OpLessEqual, someValue(3), someValue(3), true},
		{"ordering non-numeric actual", ast.OpGreaterThan, someValue("tall"), someValue(3), false},
		{"ordering non-numeric expected", ast.OpLessThan, someValue(3), someValue("short"), false},

		// membership
		{"in hit", ast.OpIn, someValue("office"), someValue([]interface{}{"office", "retail"}), true},
		{"in miss", ast.OpIn, someValue("lobby"), someValue([]interface{}{"office", "retail"}), false},
		{"in numeric coercion", ast.OpIn, someValue(2), someValue([]interface{}{1.0, 2.0}), true},
		{"in non-container expected", ast.OpIn, someValue("office"), someValue("office"), false},

		// containment
		{"contains substring", ast.OpContains, someValue("fire door"), someValue("fire"), true},
		{"contains substring miss", ast.OpContains, someValue("door"), someValue("fire"), false},
		{"contains slice member", ast.OpContains, someValue([]interface{}{"a", "b"}), someValue("b"), true},
		{"contains slice miss", ast.OpContains, someValue([]interface{}{"a", "b"}), someValue("c"), false},
		{"contains non-container", ast.OpContains, someValue(12), someValue(1), false},
		{"not_contains pass", ast.OpNotContains, someValue([]interface{}{"a"}), someValue("b"), true},
		{"not_contains member present", ast.OpNotContains, someValue([]interface{}{"a"}), someValue("a"), false},
		{"not_contains string pass", ast.OpNotContains, someValue("door"), someValue("fire"), true},
		{"not_contains non-container fails", ast.OpNotContains, someValue(12), someValue(1), false},

		// truthiness (expected ignored)
		{"is_truthy true", ast.OpIsTruthy, someValue(true), absent, true},
		{"is_truthy false", ast.OpIsTruthy, someValue(false), absent, false},
		{"is_truthy nonzero", ast.OpIsTruthy, someValue(0.1), absent, true},
		{"is_truthy zero", ast.OpIsTruthy, someValue(0), absent, false},
		{"is_truthy nonempty string", ast.OpIsTruthy, someValue("x"), absent, true},
		{"is_truthy empty string", ast.OpIsTruthy, someValue(""), absent, false},
		{"is_truthy nonempty slice", ast.OpIsTruthy, someValue([]interface{}{1}), absent, true},
		{"is_truthy empty slice", ast.OpIsTruthy, someValue([]interface{}{}), absent, false},
		{"is_truthy null", ast.OpIsTruthy, someValue(nil), absent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := lookupOperator(tt.op)
			if !ok {
				t.Fatalf("operator %q not in table", tt.op)
			}

			got := fn(tt.actual, tt.expected)
			if got.passed != tt.want {
				t.Errorf("%s: passed = %v, want %v (reason %q)", tt.op, got.passed, tt.want, got.reason)
			}
			if !got.passed && got.reason == "" {
				t.Errorf("%s: failed comparison carries no reason", tt.op)
			}
			if got.passed && got.reason != "" {
				t.Errorf("%s: passing comparison carries reason %q", tt.op, got.reason)
			}
		})
	}
}

func TestOperators_AbsentOperands(t *testing.T) {
	// Every operator must convert an absent operand into an ordinary
	// failed comparison with a reason, never a pass.
	for _, op := range ast.Operators {
		t.Run(string(op), func(t *testing.T) {
			fn, _ := lookupOperator(op)

			got := fn(absent, someValue("anything"))
			if got.passed {
				t.Errorf("%s passed with absent actual", op)
			}
			if got.reason == "" {
				t.Errorf("%s gave no reason for absent actual", op)
			}
		})
	}
}

func TestOpIn_AbsentContainerReason(t *testing.T) {
	fn, _ := lookupOperator(ast.OpIn)

	got := fn(someValue("office"), absent)
	if got.passed {
		t.Fatal("in passed with absent container")
	}
	if !strings.Contains(got.reason, "container") {
		t.Errorf("reason %q does not identify the container as the problem", got.reason)
	}

	got = fn(someValue("office"), someValue(42))
	if got.passed {
		t.Fatal("in passed with non-container expected")
	}
	if !strings.Contains(got.reason, "container") {
		t.Errorf("reason %q does not identify the container as the problem", got.reason)
	}
}

func TestValuesEqual_AbsentNeverEqual(t *testing.T) {
	// An absent operand must not compare equal to a legitimate false or
	// zero: equality goes through requireOperands first.
	fn, _ := lookupOperator(ast.OpEqual)

	for _, v := range []interface{}{false, 0, "", nil} {
		got := fn(absent, someValue(v))
		if got.passed {
			t.Errorf("absent compared equal to %v", v)
		}
	}
}
