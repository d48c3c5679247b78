package document

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"datamix-tools/internal/diagnostic"
)

// scope substitutes document variables into string values.
//
// Placeholders follow the shell-like rules of the original tool: $name and
// ${name} substitute, where name is an ASCII identifier, and $$ is a literal
// dollar. Any other use of $ is an error. Each string is turned into an HCL
// template expression and evaluated against the variables.
type scope struct {
	ctx *hcl.EvalContext
}

// newScope builds the evaluation context from the "variables" object.
// A missing object yields an empty scope.
func newScope(vars *yaml.Node) (*scope, error) {
	values := map[string]cty.Value{}

	if vars != nil {
		if vars.Kind != yaml.MappingNode {
			return nil, diagnostic.Errorf(diagnostic.KindLoad, KeyVariables,
				"expected object for %q, found %s", KeyVariables, Describe(vars))
		}

		for _, e := range Entries(vars) {
			v, err := scalarValue(e.Key, e.Value)
			if err != nil {
				return nil, err
			}

			values[e.Key] = v
		}
	}

	return &scope{ctx: &hcl.EvalContext{Variables: values}}, nil
}

// scalarValue converts a variable's node into a cty string. Numbers and
// booleans substitute as written in the document.
func scalarValue(name string, n *yaml.Node) (cty.Value, error) {
	if n.Kind == yaml.ScalarNode {
		switch n.ShortTag() {
		case "!!str", "!!int", "!!float", "!!bool":
			return cty.StringVal(n.Value), nil
		}
	}

	return cty.NilVal, diagnostic.Errorf(diagnostic.KindLoad, name,
		"variable %q must be a string, number or boolean, found %s", name, Describe(n))
}

// render rewrites every string value below n in place. Mapping keys are
// left alone.
func (s *scope) render(n *yaml.Node, filename string) error {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 1; i < len(n.Content); i += 2 {
			if err := s.render(n.Content[i], filename); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			if err := s.render(item, filename); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		if n.ShortTag() != "!!str" || !strings.Contains(n.Value, "$") {
			return nil
		}

		start := hcl.Pos{Line: n.Line, Column: n.Column}
		out, err := s.renderString(n.Value, hcl.Range{Filename: filename, Start: start, End: start})
		if err != nil {
			return err
		}

		n.Value = out
		n.Tag = "!!str"
	}

	return nil
}

// renderString substitutes the placeholders of one string. Every placeholder
// must name a defined variable.
func (s *scope) renderString(tmpl string, rng hcl.Range) (string, error) {
	parts, err := splitPlaceholders(tmpl)
	if err != nil {
		return "", diagnostic.Errorf(diagnostic.KindLoad, tmpl, "%s: %v", rng.String(), err)
	}

	exprs := make([]hclsyntax.Expression, 0, len(parts))
	for _, p := range parts {
		if p.name == "" {
			exprs = append(exprs, &hclsyntax.LiteralValueExpr{Val: cty.StringVal(p.text), SrcRange: rng})
			continue
		}

		exprs = append(exprs, &hclsyntax.ScopeTraversalExpr{
			Traversal: hcl.Traversal{hcl.TraverseRoot{Name: p.name, SrcRange: rng}},
			SrcRange:  rng,
		})
	}

	expr := &hclsyntax.TemplateExpr{Parts: exprs, SrcRange: rng}

	val, diags := expr.Value(s.ctx)
	if diags.HasErrors() {
		return "", diagnostic.Errorf(diagnostic.KindLoad, tmpl, "cannot substitute: %s", diags.Error())
	}

	if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.String) {
		return "", diagnostic.Errorf(diagnostic.KindLoad, tmpl, "template %q has no value", tmpl)
	}

	return val.AsString(), nil
}

// placeholderPart is either literal text or the name of a variable.
type placeholderPart struct {
	text string
	name string
}

// splitPlaceholders cuts s into literal runs and variable references.
func splitPlaceholders(s string) ([]placeholderPart, error) {
	var (
		parts []placeholderPart
		lit   strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, placeholderPart{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] != '$' {
			lit.WriteByte(s[i])
			i++
			continue
		}

		rest := s[i+1:]

		switch {
		case strings.HasPrefix(rest, "$"):
			lit.WriteByte('$')
			i += 2
		case strings.HasPrefix(rest, "{"):
			n := identLen(rest[1:])
			if n == 0 || !strings.HasPrefix(rest[1+n:], "}") {
				return nil, fmt.Errorf("invalid placeholder at offset %d", i)
			}

			flush()
			parts = append(parts, placeholderPart{name: rest[1 : 1+n]})
			i += n + 3
		default:
			n := identLen(rest)
			if n == 0 {
				return nil, fmt.Errorf("invalid placeholder at offset %d", i)
			}

			flush()
			parts = append(parts, placeholderPart{name: rest[:n]})
			i += n + 1
		}
	}

	flush()

	return parts, nil
}

// identLen returns the length of the ASCII identifier at the start of s.
func identLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return i
		}
	}

	return len(s)
}
