package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"datamix-tools/internal/diagnostic"
)

// Reserved document keys.
const (
	KeyComment   = "comment"
	KeyVariables = "variables"
)

// LoadFile reads and prepares the document at path.
func LoadFile(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	return Parse(data, path)
}

// Parse parses a JSON or YAML object, strips comments and renders templates.
// The returned node is the root mapping. filename picks the syntax and is
// used in messages.
func Parse(data []byte, filename string) (*yaml.Node, error) {
	var (
		root *yaml.Node
		err  error
	)

	if isJSON(data, filename) {
		root, err = parseJSON(data)
	} else {
		root, err = parseYAML(data)
	}

	if errors.Is(err, errEmptyDocument) {
		return nil, diagnostic.Errorf(diagnostic.KindLoad, "", "%v", err)
	}
	if err != nil {
		return nil, diagnostic.Errorf(diagnostic.KindLoad, "", "failed to parse document: %v", err)
	}

	if root.Kind != yaml.MappingNode {
		return nil, diagnostic.Errorf(diagnostic.KindLoad, "",
			"expected an object at top level, found %s", Describe(root))
	}

	if err := rejectAliases(root); err != nil {
		return nil, err
	}

	if err := rejectDuplicateKeys(root); err != nil {
		return nil, err
	}

	varsNode := Remove(root, KeyVariables)

	scope, err := newScope(varsNode)
	if err != nil {
		return nil, err
	}

	stripComments(root)

	if err := scope.render(root, filename); err != nil {
		return nil, err
	}

	return root, nil
}

// Entry is one key/value pair of a mapping node.
type Entry struct {
	Key     string
	KeyNode *yaml.Node
	Value   *yaml.Node
}

// Entries returns the pairs of a mapping node in document order.
// It returns nil for any other node kind.
func Entries(m *yaml.Node) []Entry {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}

	entries := make([]Entry, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		entries = append(entries, Entry{
			Key:     m.Content[i].Value,
			KeyNode: m.Content[i],
			Value:   m.Content[i+1],
		})
	}

	return entries
}

// Lookup returns the value stored under key in a mapping node, or nil.
// Keys are unique in a parsed document.
func Lookup(m *yaml.Node, key string) *yaml.Node {
	for _, e := range Entries(m) {
		if e.Key == key {
			return e.Value
		}
	}

	return nil
}

// Remove deletes the pair with the given key from a mapping node and
// returns its value, or nil.
func Remove(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			removed := m.Content[i+1]
			m.Content = append(m.Content[:i], m.Content[i+2:]...)

			return removed
		}
	}

	return nil
}

// Describe names the JSON type of a node for messages.
func Describe(n *yaml.Node) string {
	if n == nil {
		return "nothing"
	}

	switch n.Kind {
	case yaml.MappingNode:
		return "object"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return "string"
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		case "!!null":
			return "null"
		default:
			return n.ShortTag()
		}
	default:
		return "unsupported node"
	}
}

func stripComments(n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode:
		Remove(n, KeyComment)

		for i := 1; i < len(n.Content); i += 2 {
			stripComments(n.Content[i])
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			stripComments(item)
		}
	}
}

func rejectAliases(n *yaml.Node) error {
	if n.Kind == yaml.AliasNode {
		return diagnostic.Errorf(diagnostic.KindLoad, n.Value,
			"line %d: aliases are not supported", n.Line)
	}

	for _, child := range n.Content {
		if err := rejectAliases(child); err != nil {
			return err
		}
	}

	return nil
}

func isJSON(data []byte, filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return true
	case ".yaml", ".yml":
		return false
	}

	trimmed := bytes.TrimSpace(data)

	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

func parseYAML(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errEmptyDocument
	}

	return doc.Content[0], nil
}

func rejectDuplicateKeys(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		seen := map[string]bool{}
		for _, e := range Entries(n) {
			if seen[e.Key] {
				return diagnostic.Errorf(diagnostic.KindLoad, e.Key,
					"line %d: duplicate key %q", e.KeyNode.Line, e.Key)
			}
			seen[e.Key] = true
		}
	}

	for _, child := range n.Content {
		if err := rejectDuplicateKeys(child); err != nil {
			return err
		}
	}

	return nil
}
