package parser

import (
	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
	rerrors "github.com/WSG23/optimal-build-sub004/pkg/rules/errors"
)

// Parser parses YAML rule packs into AST form.
type Parser struct{}

// NewParser creates a new rule pack parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses the rule pack at the given path.
func (p *Parser) ParseFile(path string) (*ast.RulePack, error) {
	pack, _, err := parseYAMLFile(path)
	if err != nil {
		errs := rerrors.NewErrorList()
		errs.AddError(rerrors.ErrorTypeSyntax, "", err.Error(), ast.Location{File: path})
		return nil, errs
	}
	return p.build(pack, path)
}

// ParseBytes parses a rule pack from raw YAML bytes. The sourcePath is
// used only for error locations.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.RulePack, error) {
	pack, _, err := parseYAMLBytes(data)
	if err != nil {
		errs := rerrors.NewErrorList()
		errs.AddError(rerrors.ErrorTypeSyntax, "", err.Error(), ast.Location{File: sourcePath})
		return nil, errs
	}
	return p.build(pack, sourcePath)
}

// build transforms the intermediate YAML structure into the AST.
func (p *Parser) build(pack *yamlPack, sourcePath string) (*ast.RulePack, error) {
	errs := rerrors.NewErrorList()

	result := &ast.RulePack{
		Slug:        pack.Slug,
		Name:        pack.Name,
		Version:     pack.Version,
		Description: pack.Description,
		SourceFile:  sourcePath,
		Location:    ast.Location{File: sourcePath, Line: 1, Column: 1},
	}

	for i := range pack.Rules {
		yr := &pack.Rules[i]

		rule := &ast.Rule{
			ID:          yr.ID,
			Description: yr.Description,
			Target:      yr.Target,
			Location:    ast.Location{File: sourcePath, Line: yr.Predicate.Line, Column: yr.Predicate.Column},
		}

		for _, yc := range yr.Citations {
			rule.Citations = append(rule.Citations, ast.Citation{
				Clause: yc.Clause,
				Title:  yc.Title,
				URL:    yc.URL,
			})
		}

		b := &builder{file: sourcePath, ruleID: yr.ID, errors: errs}

		if !isZeroNode(&yr.Where) {
			rule.Where = b.buildPredicate(&yr.Where)
		}

		if isZeroNode(&yr.Predicate) {
			errs.AddError(rerrors.ErrorTypeStructural, yr.ID,
				"rule is missing required key 'predicate'", rule.Location)
		} else {
			rule.Predicate = b.buildPredicate(&yr.Predicate)
		}

		result.Rules = append(result.Rules, rule)
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return result, nil
}
