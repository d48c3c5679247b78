package mixture

import (
	"fmt"

	"datamix-tools/internal/common"
	"datamix-tools/internal/diagnostic"
	"datamix-tools/internal/match"
	"datamix-tools/utils"
)

// BalanceTolerance is how far a level's proportion sum may drift from 1.
const BalanceTolerance = 1e-10

// validator carries the state threaded through one traversal. The name and
// ID sets span the whole tree: a name seen in one branch is taken for every
// later branch and depth.
type validator struct {
	paths *PathTable
	names map[string]struct{}
	ids   map[string]struct{}
	diags *diagnostic.Diagnostics
}

func newValidator(paths *PathTable) *validator {
	return &validator{
		paths: paths,
		names: map[string]struct{}{},
		ids:   map[string]struct{}{},
		diags: &diagnostic.Diagnostics{},
	}
}

// Validate checks a tree built in Go against the path table. It applies the
// same rules, in the same order, as Decode does for documents.
func (t Tree) Validate(paths *PathTable) error {
	return newValidator(paths).validateLevel(t, common.TopLevel)
}

func (v *validator) validateLevel(t Tree, label string) error {
	proportions := make([]float64, 0, len(t))

	for _, node := range t {
		if node == nil {
			return diagnostic.Errorf(diagnostic.KindStructural, "", "nil node in %s", label)
		}

		name, p := node.header()
		if err := v.claimName(name, label); err != nil {
			return err
		}

		if err := checkProportion(name, p); err != nil {
			return err
		}

		proportions = append(proportions, p)

		switch node := node.(type) {
		case *Group:
			if err := v.validateLevel(node.Children, node.Name); err != nil {
				return err
			}
		case *Leaf:
			if err := v.claimData(name, node.Data); err != nil {
				return err
			}
		}
	}

	return checkBalance(proportions, label)
}

func (v *validator) claimName(name, label string) error {
	if _, ok := v.names[name]; ok {
		return diagnostic.Errorf(diagnostic.KindDuplicate, name, "duplicate name %q in %s", name, label)
	}

	v.names[name] = struct{}{}

	return nil
}

func (v *validator) claimData(name, id string) error {
	if _, ok := v.paths.Path(id); !ok {
		return diagnostic.Errorf(diagnostic.KindReference, name, "unknown data ID %q for %q", id, name).
			WithSuggestions(match.Suggest(id, v.paths.IDs())...)
	}

	if _, ok := v.ids[id]; ok {
		return diagnostic.Errorf(diagnostic.KindReference, name, "duplicate reference to %q", id)
	}

	v.ids[id] = struct{}{}

	return nil
}

func checkProportion(name string, p float64) error {
	// Written so that NaN fails too.
	if !(p > 0 && p <= 1) {
		return diagnostic.Errorf(diagnostic.KindStructural, name,
			"expected 0 < %q <= 1 for %q, got %v", KeyProportion, name, p)
	}

	return nil
}

// checkBalance sums in level order so results are reproducible.
func checkBalance(proportions []float64, label string) error {
	sum := 0.0
	for _, p := range proportions {
		sum += p
	}

	if !utils.ApproxEqual(sum, 1, BalanceTolerance) {
		return diagnostic.Errorf(diagnostic.KindBalance, label,
			"%q values do not add to 1 for %s (sum %s)", KeyProportion, label, formatSum(sum))
	}

	return nil
}

func formatSum(sum float64) string {
	return fmt.Sprintf("%.12g", sum)
}
