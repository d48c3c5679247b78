package mixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_Nested(t *testing.T) {
	tree := Tree{
		NewGroup("web", 0.5,
			NewLeaf("en", 0.5, "web_en"),
			NewGroup("nordic", 0.5,
				NewLeaf("fi", 1, "web_fi"),
			),
		),
		NewLeaf("code", 0.5, "code"),
	}

	w := Flatten(tree)
	require.Equal(t, 3, w.Len())

	assert.Equal(t, []Weight{
		{Name: "en", Proportion: 0.25, Data: "web_en"},
		{Name: "fi", Proportion: 0.25, Data: "web_fi"},
		{Name: "code", Proportion: 0.5, Data: "code"},
	}, w.Items())
	assert.InDelta(t, 1.0, w.Total(), 1e-15)
}

func TestFlattenWeighted_ScalesRoot(t *testing.T) {
	tree := Tree{NewLeaf("a", 0.5, "x"), NewLeaf("b", 0.5, "y")}

	w := FlattenWeighted(tree, 0.5)

	a, ok := w.Get("a")
	require.True(t, ok)
	assert.Equal(t, 0.25, a.Proportion)

	_, ok = w.Get("missing")
	assert.False(t, ok)
}

func TestFlatten_NameCollisionOverwritesInPlace(t *testing.T) {
	// Unreachable from validated input; Flatten does not check names.
	tree := Tree{
		NewLeaf("a", 0.25, "x"),
		NewLeaf("b", 0.25, "y"),
		NewGroup("g", 0.5, NewLeaf("a", 1, "z")),
	}

	w := Flatten(tree)

	assert.Equal(t, []Weight{
		{Name: "a", Proportion: 0.5, Data: "z"},
		{Name: "b", Proportion: 0.25, Data: "y"},
	}, w.Items())
}

func TestWeights_ItemsIsACopy(t *testing.T) {
	w := NewWeights()
	w.Set(Weight{Name: "a", Proportion: 1, Data: "x"})

	items := w.Items()
	items[0].Proportion = 0

	a, _ := w.Get("a")
	assert.Equal(t, 1.0, a.Proportion)
}

func TestFlatten_DecodedDocument(t *testing.T) {
	doc := parseDoc(t, `{
  "web": {"proportion": 0.7, "mixture": {
    "en": {"proportion": 0.8, "data": "web_en"},
    "fi": {"proportion": 0.2, "data": "web_fi"}
  }},
  "code": {"proportion": 0.3, "data": "code"}
}`)

	tree, _, err := Decode(doc, testPaths(t))
	require.NoError(t, err)

	w := Flatten(tree)
	require.Equal(t, 3, w.Len())

	en, _ := w.Get("en")
	fi, _ := w.Get("fi")
	code, _ := w.Get("code")
	assert.InDelta(t, 0.56, en.Proportion, 1e-15)
	assert.InDelta(t, 0.14, fi.Proportion, 1e-15)
	assert.InDelta(t, 0.3, code.Proportion, 1e-15)
	assert.Equal(t, "web_fi", fi.Data)
}
