// Package grammar walks a typed AST and recovers its schema: the ordered
// mapping from node kind to the sorted list of property names that every
// instance of that kind carries.
package grammar

import (
	"fmt"
	"slices"
	"sort"

	"github.com/hmny-labs/jsastcodec/internal/collections"
	"github.com/hmny-labs/jsastcodec/pkg/ast"
)

// Schema is an ordered kind -> sorted-property-names mapping. Kind order
// is discovery order (the order kinds are first encountered while walking
// the AST); property order within a kind is lexicographic, per spec.
type Schema struct {
	kinds collections.OrderedMap[string, []string]
}

// Properties returns the sorted property names recovered for kind, and
// whether kind was seen at all.
func (s *Schema) Properties(kind string) ([]string, bool) { return s.kinds.Get(kind) }

// Kinds returns every recovered kind, in discovery order.
func (s *Schema) Kinds() []string { return s.kinds.Keys() }

// Len returns the number of distinct kinds recovered (spec's G).
func (s *Schema) Len() int { return s.kinds.Len() }

// Entry is one kind's recovered shape, used by NewSchema to rebuild a
// Schema from a decoded header.
type Entry struct {
	Kind       string
	Properties []string
}

// NewSchema rebuilds a Schema from entries in the order given, which the
// decoder uses to reconstruct the grammar a header describes without
// re-walking an AST.
func NewSchema(entries []Entry) *Schema {
	s := &Schema{kinds: collections.NewOrderedMap[string, []string]()}
	for _, e := range entries {
		s.kinds.Set(e.Kind, e.Properties)
	}
	return s
}

// Recover walks root and every node reachable from it, building a Schema.
// It fails fast with InconsistentShape the first time two instances of the
// same kind disagree on their property set, and with UnsupportedPrimitive
// if a property value isn't one of ast.Value's known cases.
func Recover(root ast.Node) (*Schema, error) {
	s := &Schema{kinds: collections.NewOrderedMap[string, []string]()}
	if err := recoverNode(root, s); err != nil {
		return nil, fmt.Errorf("recovering grammar from root kind %q: %w", root.Kind(), err)
	}
	return s, nil
}

func recoverNode(n ast.Node, s *Schema) error {
	if n == nil {
		return nil
	}

	kind := n.Kind()
	props := n.Properties()

	names := make([]string, 0, len(props))
	for _, p := range props {
		if p.Name == "type" {
			continue // reserved discriminator, never part of the schema
		}
		names = append(names, p.Name)
	}
	sort.Strings(names)

	if existing, ok := s.kinds.Get(kind); ok {
		if !slices.Equal(existing, names) {
			return &InconsistentShape{Kind: kind, Expected: existing, Actual: names}
		}
	} else {
		s.kinds.Set(kind, names)
	}

	for _, p := range props {
		if err := recoverValue(p.Value, s); err != nil {
			return fmt.Errorf("recovering property %q of kind %q: %w", p.Name, kind, err)
		}
	}

	return nil
}

func recoverValue(v ast.Value, s *Schema) error {
	switch val := v.(type) {
	case ast.NodeValue:
		return recoverNode(val.Node, s)
	case ast.ListValue:
		for i, item := range val.Items {
			if err := recoverValue(item, s); err != nil {
				return fmt.Errorf("recovering list item %d: %w", i, err)
			}
		}
		return nil
	case ast.NullValue, ast.MissingValue, ast.BoolValue, ast.NumberValue, ast.StringValue:
		return nil
	default:
		return &UnsupportedPrimitive{Value: v}
	}
}
