package ast

// RulePack is the root AST node for a parsed rule pack.
// Packs are versioned and addressed by slug in the catalogue.
type RulePack struct {
	// Slug is the catalogue address of the pack (kebab-case).
	Slug string

	// Name is the display name.
	Name string

	// Version is the pack version (semver).
	Version string

	// Description is the human-readable summary.
	Description string

	// Rules are evaluated in declaration order.
	Rules []*Rule

	// SourceFile is the path the pack was parsed from, if any.
	SourceFile string

	Location Location
}

// GetRule returns the rule with the given id, or nil if not found.
func (p *RulePack) GetRule(id string) *Rule {
	for _, rule := range p.Rules {
		if rule.ID == id {
			return rule
		}
	}
	return nil
}

// HasRule returns true if the pack contains a rule with the given id.
func (p *RulePack) HasRule(id string) bool {
	return p.GetRule(id) != nil
}

// RuleCount returns the number of rules in the pack.
func (p *RulePack) RuleCount() int {
	return len(p.Rules)
}
