package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

var errEmptyDocument = errors.New("document is empty")

// jsonReader turns a JSON token stream into a yaml.Node tree so that JSON
// and YAML documents share one representation. Object keys keep their
// document order; a repeated key keeps its first position and its last value.
type jsonReader struct {
	dec      *json.Decoder
	newlines []int64
}

func parseJSON(data []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	r := &jsonReader{dec: dec, newlines: newlineOffsets(data)}

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, errEmptyDocument
	}
	if err != nil {
		return nil, r.wrap(err)
	}

	root, err := r.value(tok)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, r.wrap(err)
		}
		line, _ := r.position(dec.InputOffset() - 1)
		return nil, fmt.Errorf("line %d: unexpected data after top-level value", line)
	}

	return root, nil
}

func (r *jsonReader) value(tok json.Token) (*yaml.Node, error) {
	line, column := r.position(r.dec.InputOffset() - 1)

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return r.object(line, column)
		case '[':
			return r.array(line, column)
		default:
			return nil, fmt.Errorf("line %d: unexpected %q", line, v.String())
		}
	case string:
		return scalarNode("!!str", v, line, column), nil
	case json.Number:
		return scalarNode(numberTag(v), v.String(), line, column), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(v), line, column), nil
	case nil:
		return scalarNode("!!null", "null", line, column), nil
	default:
		return nil, fmt.Errorf("line %d: unexpected token %v", line, v)
	}
}

func (r *jsonReader) object(line, column int) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line, Column: column}
	index := map[string]int{}

	for r.dec.More() {
		keyTok, err := r.next()
		if err != nil {
			return nil, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("line %d: expected object key, found %v", line, keyTok)
		}
		keyLine, keyColumn := r.position(r.dec.InputOffset() - 1)

		valTok, err := r.next()
		if err != nil {
			return nil, err
		}

		val, err := r.value(valTok)
		if err != nil {
			return nil, err
		}

		if i, seen := index[key]; seen {
			m.Content[i+1] = val
			continue
		}

		index[key] = len(m.Content)
		m.Content = append(m.Content, scalarNode("!!str", key, keyLine, keyColumn), val)
	}

	if _, err := r.next(); err != nil {
		return nil, err
	}

	return m, nil
}

func (r *jsonReader) array(line, column int) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line, Column: column}

	for r.dec.More() {
		tok, err := r.next()
		if err != nil {
			return nil, err
		}

		item, err := r.value(tok)
		if err != nil {
			return nil, err
		}

		seq.Content = append(seq.Content, item)
	}

	if _, err := r.next(); err != nil {
		return nil, err
	}

	return seq, nil
}

// next reads a token inside a container, where the end of input is an error.
func (r *jsonReader) next() (json.Token, error) {
	tok, err := r.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, r.wrap(err)
	}

	return tok, nil
}

func (r *jsonReader) wrap(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, _ := r.position(syntaxErr.Offset - 1)
		return fmt.Errorf("line %d: %w", line, err)
	}

	return err
}

// position converts a byte offset into a 1-based line and column.
func (r *jsonReader) position(offset int64) (int, int) {
	offset = max(offset, 0)

	i, _ := slices.BinarySearch(r.newlines, offset)
	if i == 0 {
		return 1, int(offset) + 1
	}

	return i + 1, int(offset - r.newlines[i-1])
}

func newlineOffsets(data []byte) []int64 {
	var out []int64
	for i, b := range data {
		if b == '\n' {
			out = append(out, int64(i))
		}
	}

	return out
}

func numberTag(n json.Number) string {
	if _, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return "!!int"
	}

	return "!!float"
}

func scalarNode(tag, value string, line, column int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value, Line: line, Column: column}
}
