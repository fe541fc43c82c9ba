package ast

// Rule is a single declarative compliance rule.
// Rules are evaluated independently; order within a pack affects only the
// ordering of results, never outcomes.
type Rule struct {
	// ID uniquely identifies the rule within its pack (kebab-case).
	ID string

	// Description is the human-readable intent of the rule.
	Description string

	// Target names the graph collection the rule applies to
	// (spaces, levels, walls, doors, fixtures).
	Target string

	// Where, if set, pre-filters the target's entities: only entities
	// that pass it are checked against Predicate.
	Where *PredicateNode

	// Predicate is the main predicate tree. Required.
	Predicate *PredicateNode

	// Citations are regulatory clause references attached by the
	// validation layer when the rule fails. The engine ignores them.
	Citations []Citation

	Location Location
}

// HasWhere returns true if the rule declares a pre-filter.
func (r *Rule) HasWhere() bool {
	return r.Where != nil
}

// Citation is a reference to the regulatory clause a rule encodes.
type Citation struct {
	// Clause is the clause identifier (e.g. "SCDF 4.2.1").
	Clause string `json:"clause"`

	// Title is the clause's display title.
	Title string `json:"title,omitempty"`

	// URL points at the published text, if available.
	URL string `json:"url,omitempty"`
}
