package mixture

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"datamix-tools/internal/document"
)

func parseDoc(t *testing.T, src string) *yaml.Node {
	t.Helper()

	root, err := document.Parse([]byte(src), "test.json")
	require.NoError(t, err)

	return root
}

func testPaths(t *testing.T) *PathTable {
	t.Helper()

	paths, err := NewPathTable(
		PathEntry{ID: "web_en", Path: "/data/web_en"},
		PathEntry{ID: "web_fi", Path: "/data/web_fi"},
		PathEntry{ID: "code", Path: "/data/code"},
		PathEntry{ID: "wikipedia", Path: "/data/wikipedia"},
	)
	require.NoError(t, err)

	return paths
}
