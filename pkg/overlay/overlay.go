// Package overlay turns evaluation violations into reviewable suggestion
// items for an approve/reject workflow. Each violating entity yields one
// suggestion carrying a stable code derived from the rule and the first
// failed fact.
package overlay

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/engine"
)

// Status is the review state of a suggestion.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Suggestion is one reviewable finding produced from a violation.
type Suggestion struct {
	// ID is a unique id for the review workflow.
	ID string `json:"id"`

	// RuleID is the rule that produced the violation.
	RuleID string `json:"rule_id"`

	// EntityID is the violating entity.
	EntityID string `json:"entity_id"`

	// Code is a stable violation code (rule id plus the field of the
	// first failed fact), usable for grouping and filtering.
	Code string `json:"code"`

	// Messages are the violation's explanation messages.
	Messages []string `json:"messages,omitempty"`

	// Status starts pending; reviewers move it to approved or rejected.
	Status Status `json:"status"`

	// CreatedAt is when the suggestion was generated.
	CreatedAt time.Time `json:"created_at"`
}

// FromReport generates one pending suggestion per violation in the
// report, in rule then entity order.
func FromReport(report *engine.Report) []Suggestion {
	now := time.Now().UTC()

	var suggestions []Suggestion
	for _, result := range report.Results {
		for _, violation := range result.Violations {
			suggestions = append(suggestions, Suggestion{
				ID:        uuid.NewString(),
				RuleID:    result.RuleID,
				EntityID:  violation.EntityID,
				Code:      violationCode(result.RuleID, violation),
				Messages:  violation.Messages,
				Status:    StatusPending,
				CreatedAt: now,
			})
		}
	}
	return suggestions
}

// violationCode derives a stable code from the rule id and the field of
// the first failed fact. Dots in field paths become hyphens so codes
// stay single-token.
func violationCode(ruleID string, v *engine.Violation) string {
	for _, fact := range v.Facts {
		if !fact.Passed {
			field := strings.ReplaceAll(fact.Field, ".", "-")
			return fmt.Sprintf("%s/%s", ruleID, field)
		}
	}
	return ruleID
}
