package mixture

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"datamix-tools/internal/common"
	"datamix-tools/internal/diagnostic"
	"datamix-tools/internal/document"
	"datamix-tools/internal/match"
)

// Decode validates a loaded mixture document against the path table and
// builds its Tree. Checks run depth-first in document order and the first
// violation is returned. Keys a node does not understand are ignored and
// reported as warnings.
func Decode(doc *yaml.Node, paths *PathTable) (Tree, *diagnostic.Diagnostics, error) {
	v := newValidator(paths)

	if doc == nil || doc.Kind != yaml.MappingNode {
		return nil, v.diags, diagnostic.Errorf(diagnostic.KindStructural, "",
			"expected object for %s, found %s", common.TopLevel, document.Describe(doc))
	}

	tree, err := v.decodeLevel(doc, common.TopLevel)
	if err != nil {
		return nil, v.diags, err
	}

	v.diags.AddInfo("mixture_summary",
		fmt.Sprintf("%d leaves, %d data IDs unused", tree.Leaves(), paths.Len()-len(v.ids)), "", "")

	return tree, v.diags, nil
}

// Validate checks a loaded mixture document without keeping the tree.
func Validate(doc *yaml.Node, paths *PathTable) error {
	_, _, err := Decode(doc, paths)
	return err
}

func (v *validator) decodeLevel(m *yaml.Node, label string) (Tree, error) {
	entries := document.Entries(m)
	tree := make(Tree, 0, len(entries))
	proportions := make([]float64, 0, len(entries))

	for _, e := range entries {
		node, p, err := v.decodeNode(e, label)
		if err != nil {
			return nil, err
		}

		tree = append(tree, node)
		proportions = append(proportions, p)
	}

	if err := checkBalance(proportions, label); err != nil {
		return nil, err
	}

	return tree, nil
}

func (v *validator) decodeNode(e document.Entry, label string) (Node, float64, error) {
	name := e.Key
	if err := v.claimName(name, label); err != nil {
		return nil, 0, err
	}

	if e.Value.Kind != yaml.MappingNode {
		return nil, 0, diagnostic.Errorf(diagnostic.KindStructural, name,
			"expected object for %q, found %s", name, document.Describe(e.Value))
	}

	p, err := decodeProportion(name, document.Lookup(e.Value, KeyProportion))
	if err != nil {
		return nil, 0, err
	}

	v.warnUnknownKeys(e.Value, name, label)

	mix := document.Lookup(e.Value, KeyMixture)
	data := document.Lookup(e.Value, KeyData)

	switch {
	case mix != nil:
		if mix.Kind != yaml.MappingNode {
			return nil, 0, diagnostic.Errorf(diagnostic.KindStructural, name,
				"expected object %q value for %q, found %s", KeyMixture, name, document.Describe(mix))
		}

		if data != nil {
			return nil, 0, diagnostic.Errorf(diagnostic.KindStructural, name,
				"both %q and %q for %q", KeyData, KeyMixture, name)
		}

		children, err := v.decodeLevel(mix, name)
		if err != nil {
			return nil, 0, err
		}

		return &Group{Name: name, Proportion: p, Children: children}, p, nil

	case data != nil:
		if data.Kind != yaml.ScalarNode || data.ShortTag() != "!!str" {
			return nil, 0, diagnostic.Errorf(diagnostic.KindStructural, name,
				"expected string %q value for %q, found %s", KeyData, name, document.Describe(data))
		}

		if err := v.claimData(name, data.Value); err != nil {
			return nil, 0, err
		}

		return &Leaf{Name: name, Proportion: p, Data: data.Value}, p, nil

	default:
		return nil, 0, diagnostic.Errorf(diagnostic.KindStructural, name,
			"neither %q nor %q for %q", KeyData, KeyMixture, name)
	}
}

func decodeProportion(name string, n *yaml.Node) (float64, error) {
	if n == nil {
		return 0, diagnostic.Errorf(diagnostic.KindStructural, name, "missing %q for %q", KeyProportion, name)
	}

	tag := n.ShortTag()
	if n.Kind != yaml.ScalarNode || (tag != "!!float" && tag != "!!int") {
		return 0, diagnostic.Errorf(diagnostic.KindStructural, name,
			"expected numeric %q value for %q, found %s", KeyProportion, name, document.Describe(n))
	}

	var p float64
	if err := n.Decode(&p); err != nil {
		return 0, diagnostic.Errorf(diagnostic.KindStructural, name,
			"invalid %q value for %q: %v", KeyProportion, name, err)
	}

	if err := checkProportion(name, p); err != nil {
		return 0, err
	}

	return p, nil
}

func (v *validator) warnUnknownKeys(m *yaml.Node, name, label string) {
	for _, e := range document.Entries(m) {
		if slices.Contains(knownKeys, e.Key) {
			continue
		}

		v.diags.AddWarning("unknown_key",
			fmt.Sprintf("unknown key %q is ignored", e.Key),
			label, name, match.Suggest(e.Key, knownKeys)...)
	}
}
