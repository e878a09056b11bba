// Package export encodes a snapshot of a tree as JSON.
package export

import (
	"cmp"
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/dshills/ordtree/internal/tree"
)

// field is one top-level key of the exported document.
type field struct {
	path  string
	value any
}

// JSON returns a document describing t:
//
//	{"len":4,"height":2,"balanced":true,"min":1,"max":9,
//	 "levelOrder":[...],"preOrder":[...],"inOrder":[...],"postOrder":[...]}
//
// min and max are omitted for an empty tree.
func JSON[T cmp.Ordered](t *tree.Tree[T]) ([]byte, error) {
	stats := t.Stats()
	fields := []field{
		{"len", stats.Len},
		{"height", stats.Height},
		{"balanced", stats.Balanced},
	}
	if v, err := t.Min(); err == nil {
		fields = append(fields, field{"min", v})
	}
	if v, err := t.Max(); err == nil {
		fields = append(fields, field{"max", v})
	}
	for _, order := range tree.Orders {
		fields = append(fields, field{order.String(), t.Values(order)})
	}

	doc := []byte(`{}`)
	var err error
	for _, f := range fields {
		doc, err = sjson.SetBytes(doc, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.path, err)
		}
	}
	return doc, nil
}
