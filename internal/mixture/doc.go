// Package mixture models a data mixture and compiles it down to flat weights.
//
// A mixture is a tree. Every node carries a proportion of its parent level and
// is either a Leaf that references a dataset by ID, or a Group holding a nested
// level. Proportions of the nodes at one level sum to 1.
//
// # Document shape
//
//	{
//	  "web":  {"proportion": 0.7, "mixture": {
//	    "en": {"proportion": 0.8, "data": "web_en"},
//	    "fi": {"proportion": 0.2, "data": "web_fi"}
//	  }},
//	  "code": {"proportion": 0.3, "data": "code"}
//	}
//
// Names must be unique across the whole tree, not only among siblings, and
// every data ID may be referenced by one leaf only. Flatten relies on both.
//
// # Pipeline
//
//	paths, err := mixture.DecodePaths(pathsDoc)
//	tree, diags, err := mixture.Decode(mixtureDoc, paths)
//	weights := mixture.Flatten(tree)
package mixture
