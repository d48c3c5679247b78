// Package document loads mixture and paths documents into ordered node trees.
//
// Documents are JSON (or YAML) objects. Before a document is handed to the
// compiler three things happen:
//
//   - the top-level "variables" object is removed and becomes the template scope
//   - every "comment" key is removed, at any depth
//   - every string value is rendered as a template, so "${root}/web.bin"
//     expands against the variables; "$${" produces a literal "${"
//
// Parsing goes through gopkg.in/yaml.v3, which keeps object keys in document
// order. The compiler relies on that order for deterministic output.
//
// # Example
//
//	{
//	  "variables": {"root": "/data/tokenized"},
//	  "comment": "ignored",
//	  "web": "${root}/web_text_document",
//	  "code": "${root}/code_text_document"
//	}
package document
