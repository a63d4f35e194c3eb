package codec

import (
	"fmt"
	"io"

	"github.com/hmny-labs/jsastcodec/pkg/ast"
	"github.com/hmny-labs/jsastcodec/pkg/codespace"
	"github.com/hmny-labs/jsastcodec/pkg/tree"
	"github.com/hmny-labs/jsastcodec/pkg/wire"
)

// Decode reads a header and body stream written by Encode and replays it
// back into an isomorphic AST. The result is always a Script or Module.
func Decode(source io.Reader) (ast.Node, error) {
	r := wire.NewReader(source)
	h, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	bodies := make([]*tokenNode, h.space.MetaRules.Len())
	for i := range bodies {
		body, err := readTokenTree(r, h.space)
		if err != nil {
			return nil, fmt.Errorf("reading meta-rule body %d: %w", i, err)
		}
		bodies[i] = body
	}

	start, err := readTokenTree(r, h.space)
	if err != nil {
		return nil, fmt.Errorf("reading start tree: %w", err)
	}

	rep := &replayer{header: h, bodies: bodies}
	value, err := rep.replay(start, nil)
	if err != nil {
		return nil, fmt.Errorf("replaying start tree: %w", err)
	}

	nodeValue, ok := value.(ast.NodeValue)
	if !ok {
		return nil, &UnexpectedRoot{Kind: "<non-node>"}
	}
	if k := nodeValue.Node.Kind(); k != "Script" && k != "Module" {
		return nil, &UnexpectedRoot{Kind: k}
	}
	return nodeValue.Node, nil
}

// tokenNode is a buffered, still-uninterpreted body: a wire code plus one
// buffered subtree per child, the child count having been derived from the
// code's rank while reading. Meta-rule bodies are buffered this way
// because they are replayed once per occurrence, each time with different
// actual arguments.
type tokenNode struct {
	code     uint64
	children []*tokenNode
}

// decodeSymbol resolves a wire-read code to its Symbol, surfacing a code
// that falls outside the code space entirely as UnknownTag (spec §7: "tag
// falls outside all known partitions") rather than codespace's own
// InternalInvariant, which is reserved for codespace's internal
// bookkeeping bugs, not malformed wire input.
func decodeSymbol(space *codespace.CodeSpace, code uint64) (tree.Symbol, error) {
	if code >= uint64(space.Total()) {
		return nil, &UnknownTag{Tag: code}
	}
	return space.Decode(code)
}

func readTokenTree(r *wire.Reader, space *codespace.CodeSpace) (*tokenNode, error) {
	code, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	sym, err := decodeSymbol(space, code)
	if err != nil {
		return nil, err
	}
	rank := sym.Rank()
	node := &tokenNode{code: code, children: make([]*tokenNode, rank)}
	for i := 0; i < rank; i++ {
		child, err := readTokenTree(r, space)
		if err != nil {
			return nil, fmt.Errorf("reading child %d of tag %d: %w", i, code, err)
		}
		node.children[i] = child
	}
	return node, nil
}

// replayer replays buffered token trees into ast.Value, substituting
// actuals for parameters and expanding nonterminals into fresh scopes.
type replayer struct {
	header *header
	bodies []*tokenNode
}

func (rep *replayer) replay(node *tokenNode, actuals []ast.Value) (ast.Value, error) {
	sym, err := decodeSymbol(rep.header.space, node.code)
	if err != nil {
		return nil, err
	}

	switch s := sym.(type) {
	case tree.Parameter:
		if s.Index < 0 || s.Index >= len(actuals) {
			return nil, &InternalInvariant{Msg: "parameter index outside current actuals"}
		}
		return actuals[s.Index], nil

	case tree.Nonterminal:
		if s.ID < 0 || s.ID >= len(rep.bodies) {
			return nil, &InternalInvariant{Msg: "meta-rule id outside buffered bodies"}
		}
		newActuals := make([]ast.Value, len(node.children))
		for i, c := range node.children {
			v, err := rep.replay(c, actuals)
			if err != nil {
				return nil, fmt.Errorf("replaying actual argument %d for meta-rule %d: %w", i, s.ID, err)
			}
			newActuals[i] = v
		}
		v, err := rep.replay(rep.bodies[s.ID], newActuals)
		if err != nil {
			return nil, fmt.Errorf("expanding meta-rule %d: %w", s.ID, err)
		}
		return v, nil

	case tree.Terminal:
		return rep.replayTerminal(s, node, actuals)
	}
	return nil, &UnknownTag{Tag: node.code}
}

func (rep *replayer) replayTerminal(s tree.Terminal, node *tokenNode, actuals []ast.Value) (ast.Value, error) {
	switch s.Class {
	case tree.ClassNil:
		return ast.ListValue{}, nil
	case tree.ClassNull:
		return ast.NullValue{}, nil
	case tree.ClassMissing:
		return ast.MissingValue{}, nil
	case tree.ClassTrue:
		return ast.BoolValue(true), nil
	case tree.ClassFalse:
		return ast.BoolValue(false), nil

	case tree.ClassCons:
		head, err := rep.replay(node.children[0], actuals)
		if err != nil {
			return nil, fmt.Errorf("replaying cons head: %w", err)
		}
		tailVal, err := rep.replay(node.children[1], actuals)
		if err != nil {
			return nil, fmt.Errorf("replaying cons tail: %w", err)
		}
		tail, ok := tailVal.(ast.ListValue)
		if !ok {
			return nil, &InternalInvariant{Msg: "cons tail did not replay to a list"}
		}
		items := make([]ast.Value, 0, len(tail.Items)+1)
		items = append(items, head)
		items = append(items, tail.Items...)
		return ast.ListValue{Items: items}, nil

	case tree.ClassString:
		if s.Index < 0 || s.Index >= len(rep.header.strings) {
			return nil, &InternalInvariant{Msg: "string code outside pool"}
		}
		return ast.StringValue(rep.header.strings[s.Index]), nil

	case tree.ClassNumber:
		if s.Index < 0 || s.Index >= len(rep.header.numbers) {
			return nil, &InternalInvariant{Msg: "number code outside pool"}
		}
		return ast.NumberValue(rep.header.numbers[s.Index]), nil

	case tree.ClassGrammarKind:
		props, ok := rep.header.schema.Properties(s.Kind)
		if !ok {
			return nil, &InternalInvariant{Msg: "grammar kind missing from header schema: " + s.Kind}
		}
		if len(props) != len(node.children) {
			return nil, &InternalInvariant{Msg: "grammar kind arity mismatch: " + s.Kind}
		}
		values := make(map[string]ast.Value, len(props))
		for i, name := range props {
			v, err := rep.replay(node.children[i], actuals)
			if err != nil {
				return nil, fmt.Errorf("replaying property %q of kind %q: %w", name, s.Kind, err)
			}
			values[name] = v
		}
		n, err := ast.Construct(s.Kind, values)
		if err != nil {
			return nil, fmt.Errorf("constructing %q node: %w", s.Kind, err)
		}
		return ast.NodeValue{Node: n}, nil
	}
	return nil, &UnknownTag{Tag: node.code}
}
