package mixture

// Weight is one leaf's absolute share of the whole mixture.
type Weight struct {
	Name       string
	Proportion float64
	Data       string
}

// Weights maps leaf names to weights, keeping first-insertion order.
type Weights struct {
	items []Weight
	index map[string]int
}

// NewWeights returns an empty weight map.
func NewWeights() *Weights {
	return &Weights{index: map[string]int{}}
}

// Set stores w under w.Name. An existing entry keeps its position and is
// overwritten.
func (w *Weights) Set(weight Weight) {
	if i, ok := w.index[weight.Name]; ok {
		w.items[i] = weight
		return
	}

	w.index[weight.Name] = len(w.items)
	w.items = append(w.items, weight)
}

// Get returns the weight stored for name.
func (w *Weights) Get(name string) (Weight, bool) {
	i, ok := w.index[name]
	if !ok {
		return Weight{}, false
	}

	return w.items[i], true
}

// Items returns a copy of the weights in order.
func (w *Weights) Items() []Weight {
	return append([]Weight(nil), w.items...)
}

// Len returns the number of leaves.
func (w *Weights) Len() int {
	return len(w.items)
}

// Total sums the proportions in order.
func (w *Weights) Total() float64 {
	sum := 0.0
	for _, item := range w.items {
		sum += item.Proportion
	}

	return sum
}

// Flatten multiplies proportions down the tree and returns the absolute
// weight of every leaf. The tree is assumed valid: a leaf name that repeats
// overwrites the earlier leaf.
func Flatten(t Tree) *Weights {
	return FlattenWeighted(t, 1.0)
}

// FlattenWeighted is Flatten with the root level scaled by parentWeight.
func FlattenWeighted(t Tree, parentWeight float64) *Weights {
	out := NewWeights()
	flattenInto(out, t, parentWeight)

	return out
}

func flattenInto(out *Weights, t Tree, parentWeight float64) {
	for _, node := range t {
		switch node := node.(type) {
		case *Group:
			flattenInto(out, node.Children, parentWeight*node.Proportion)
		case *Leaf:
			out.Set(Weight{
				Name:       node.Name,
				Proportion: parentWeight * node.Proportion,
				Data:       node.Data,
			})
		}
	}
}
