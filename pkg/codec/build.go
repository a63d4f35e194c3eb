package codec

import (
	"fmt"

	"github.com/hmny-labs/jsastcodec/pkg/ast"
	"github.com/hmny-labs/jsastcodec/pkg/codespace"
	"github.com/hmny-labs/jsastcodec/pkg/grammar"
	"github.com/hmny-labs/jsastcodec/pkg/tree"
)

// builder turns a typed ast.Node into the ranked-tree representation
// treerepair mines, interning strings and numbers as it goes.
type builder struct {
	schema  *grammar.Schema
	arena   *tree.Tree
	strings *codespace.StringInterner
	numbers *codespace.NumberInterner
}

// buildTree builds root (and everything reachable from it) into a fresh
// arena, per schema's declared property order for each kind.
func buildTree(schema *grammar.Schema, root ast.Node) (*tree.Tree, tree.NodeID, *codespace.StringInterner, *codespace.NumberInterner, error) {
	b := &builder{
		schema:  schema,
		arena:   tree.NewTree(),
		strings: codespace.NewStringInterner(),
		numbers: codespace.NewNumberInterner(),
	}
	rootID, err := b.buildNode(root)
	if err != nil {
		return nil, tree.NoNode, nil, nil, fmt.Errorf("building root kind %q: %w", root.Kind(), err)
	}
	b.arena.SetRoot(rootID)
	return b.arena, rootID, b.strings, b.numbers, nil
}

func (b *builder) buildNode(n ast.Node) (tree.NodeID, error) {
	kind := n.Kind()
	props, ok := b.schema.Properties(kind)
	if !ok {
		return tree.NoNode, &UnknownKind{Kind: kind}
	}

	values := ast.PropertyMap(n)
	children := make([]tree.NodeID, len(props))
	for i, name := range props {
		id, err := b.buildValue(values[name])
		if err != nil {
			return tree.NoNode, fmt.Errorf("building property %q of kind %q: %w", name, kind, err)
		}
		children[i] = id
	}

	term := tree.NewGrammarKindTerminal(kind, len(props))
	return b.arena.New(term, children...), nil
}

func (b *builder) buildValue(v ast.Value) (tree.NodeID, error) {
	switch val := v.(type) {
	case ast.NullValue:
		return b.arena.New(tree.NewNullTerminal()), nil
	case ast.MissingValue:
		return b.arena.New(tree.NewMissingTerminal()), nil
	case ast.BoolValue:
		if bool(val) {
			return b.arena.New(tree.NewTrueTerminal()), nil
		}
		return b.arena.New(tree.NewFalseTerminal()), nil
	case ast.NumberValue:
		idx := b.numbers.Intern(float64(val))
		return b.arena.New(tree.NewNumberTerminal(idx)), nil
	case ast.StringValue:
		idx := b.strings.Intern(string(val))
		return b.arena.New(tree.NewStringTerminal(idx)), nil
	case ast.NodeValue:
		return b.buildNode(val.Node)
	case ast.ListValue:
		return b.buildList(val.Items)
	default:
		return tree.NoNode, &UnknownKind{Kind: "<value outside ast.Value's known cases>"}
	}
}

// buildList right-folds items into nested cons cells terminated by nil, so
// [x0, x1, x2] becomes cons(x0, cons(x1, cons(x2, nil))).
func (b *builder) buildList(items []ast.Value) (tree.NodeID, error) {
	tail := b.arena.New(tree.NewNilTerminal())
	for i := len(items) - 1; i >= 0; i-- {
		head, err := b.buildValue(items[i])
		if err != nil {
			return tree.NoNode, fmt.Errorf("building list item %d: %w", i, err)
		}
		tail = b.arena.New(tree.NewConsTerminal(), head, tail)
	}
	return tail, nil
}

// remapPools rewrites every string/number terminal's pool index from
// discovery order to the final (sorted) pool order. It must run before
// treerepair mines the tree, since after mining a terminal leaf may be
// shared between a production body and the start tree's actuals, and both
// need to agree on the same final index.
func remapPools(t *tree.Tree, root tree.NodeID, stringRemap, numberRemap []int) {
	t.PreorderWalk(root, func(id tree.NodeID) {
		node := t.Node(id)
		term, ok := node.Symbol.(tree.Terminal)
		if !ok {
			return
		}
		switch term.Class {
		case tree.ClassString:
			term.Index = stringRemap[term.Index]
			node.Symbol = term
		case tree.ClassNumber:
			term.Index = numberRemap[term.Index]
			node.Symbol = term
		}
	})
}
