package mixture

import (
	"gopkg.in/yaml.v3"

	"datamix-tools/internal/diagnostic"
	"datamix-tools/internal/document"
)

// PathEntry maps one data ID to a physical path.
type PathEntry struct {
	ID   string
	Path string
}

// PathTable is a validated data ID to path mapping. No two IDs share a path.
type PathTable struct {
	entries []PathEntry
	byID    map[string]string
}

// NewPathTable validates the entries and builds a table that keeps their order.
func NewPathTable(entries ...PathEntry) (*PathTable, error) {
	t := &PathTable{
		entries: make([]PathEntry, 0, len(entries)),
		byID:    make(map[string]string, len(entries)),
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := t.byID[e.ID]; ok {
			return nil, diagnostic.Errorf(diagnostic.KindDuplicate, e.ID, "duplicate data ID %q", e.ID)
		}

		if _, ok := seen[e.Path]; ok {
			return nil, diagnostic.Errorf(diagnostic.KindDuplicate, e.ID, "duplicate value %q", e.Path)
		}

		seen[e.Path] = struct{}{}
		t.byID[e.ID] = e.Path
		t.entries = append(t.entries, e)
	}

	return t, nil
}

// DecodePaths builds a PathTable from a loaded paths document.
func DecodePaths(doc *yaml.Node) (*PathTable, error) {
	if doc == nil || doc.Kind != yaml.MappingNode {
		return nil, diagnostic.Errorf(diagnostic.KindStructural, "",
			"expected object of data IDs, found %s", document.Describe(doc))
	}

	var entries []PathEntry

	for _, e := range document.Entries(doc) {
		if e.Value.Kind != yaml.ScalarNode || e.Value.ShortTag() != "!!str" {
			return nil, diagnostic.Errorf(diagnostic.KindStructural, e.Key,
				"expected string value for %q, found %s", e.Key, document.Describe(e.Value))
		}

		entries = append(entries, PathEntry{ID: e.Key, Path: e.Value.Value})
	}

	return NewPathTable(entries...)
}

// Path returns the path registered for id.
func (t *PathTable) Path(id string) (string, bool) {
	if t == nil {
		return "", false
	}

	p, ok := t.byID[id]

	return p, ok
}

// IDs returns the data IDs in table order.
func (t *PathTable) IDs() []string {
	if t == nil {
		return nil
	}

	ids := make([]string, len(t.entries))
	for i, e := range t.entries {
		ids[i] = e.ID
	}

	return ids
}

// Len returns the number of entries.
func (t *PathTable) Len() int {
	if t == nil {
		return 0
	}

	return len(t.entries)
}
