package overlay

import (
	"testing"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/engine"
)

func testReport() *engine.Report {
	return &engine.Report{
		PackSlug: "residential-checks",
		Results: []*engine.RuleResult{
			{
				RuleID: "min-space-height",
				Violations: []*engine.Violation{
					{
						EntityID: "s1",
						Messages: []string{"habitable spaces need at least 3.5m clear height"},
						Facts: []engine.Fact{
							{Field: "height", Operator: "gte", Passed: false},
							{Field: "metadata.usage", Operator: "neq", Passed: false},
						},
					},
					{
						EntityID: "s2",
						Facts: []engine.Fact{
							{Field: "metadata.usage", Operator: "neq", Passed: true},
							{Field: "height", Operator: "gte", Passed: false},
						},
					},
				},
			},
			{RuleID: "space-envelope", Passed: true},
		},
	}
}

func TestFromReport(t *testing.T) {
	suggestions := FromReport(testReport())

	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want one per violation", len(suggestions))
	}

	first := suggestions[0]
	if first.RuleID != "min-space-height" || first.EntityID != "s1" {
		t.Errorf("suggestion = %+v", first)
	}
	if first.Status != StatusPending {
		t.Errorf("status = %q, want pending", first.Status)
	}
	if first.ID == "" || first.ID == suggestions[1].ID {
		t.Error("suggestion ids must be unique and non-empty")
	}
	if first.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
	if len(first.Messages) != 1 {
		t.Errorf("messages = %v", first.Messages)
	}

	// Code comes from the first failed fact, with dots flattened.
	if first.Code != "min-space-height/height" {
		t.Errorf("code = %q", first.Code)
	}
	if suggestions[1].Code != "min-space-height/height" {
		t.Errorf("second code = %q, want first failed fact's field", suggestions[1].Code)
	}
}

func TestFromReport_NoFailedFacts(t *testing.T) {
	report := &engine.Report{
		Results: []*engine.RuleResult{{
			RuleID: "odd-rule",
			Violations: []*engine.Violation{
				{EntityID: "s1"}, // no facts recorded
			},
		}},
	}

	suggestions := FromReport(report)
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	if suggestions[0].Code != "odd-rule" {
		t.Errorf("code = %q, want bare rule id", suggestions[0].Code)
	}
}

func TestFromReport_Empty(t *testing.T) {
	if got := FromReport(&engine.Report{}); len(got) != 0 {
		t.Errorf("empty report produced %d suggestions", len(got))
	}
}
