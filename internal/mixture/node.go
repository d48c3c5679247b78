package mixture

// Reserved keys of a mixture node.
const (
	KeyProportion = "proportion"
	KeyData       = "data"
	KeyMixture    = "mixture"
)

// knownKeys lists the keys a node may carry, for misspelling suggestions.
var knownKeys = []string{KeyProportion, KeyData, KeyMixture}

// Node is either a *Leaf or a *Group.
type Node interface {
	// header returns the node's name and proportion of its level.
	header() (string, float64)
}

// Leaf references a dataset in the path table.
type Leaf struct {
	Name       string
	Proportion float64
	Data       string
}

// Group holds a nested mixture level.
type Group struct {
	Name       string
	Proportion float64
	Children   Tree
}

func (l *Leaf) header() (string, float64)  { return l.Name, l.Proportion }
func (g *Group) header() (string, float64) { return g.Name, g.Proportion }

// Tree is one mixture level in document order.
type Tree []Node

// NewLeaf builds a leaf node.
func NewLeaf(name string, proportion float64, data string) *Leaf {
	return &Leaf{Name: name, Proportion: proportion, Data: data}
}

// NewGroup builds a group node over the given children.
func NewGroup(name string, proportion float64, children ...Node) *Group {
	return &Group{Name: name, Proportion: proportion, Children: Tree(children)}
}

// Leaves counts the leaf nodes below t.
func (t Tree) Leaves() int {
	n := 0
	for _, node := range t {
		switch node := node.(type) {
		case *Leaf:
			n++
		case *Group:
			n += node.Children.Leaves()
		}
	}
	return n
}
