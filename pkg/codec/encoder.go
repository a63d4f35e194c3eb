package codec

import (
	"fmt"
	"io"

	"github.com/hmny-labs/jsastcodec/pkg/ast"
	"github.com/hmny-labs/jsastcodec/pkg/codespace"
	"github.com/hmny-labs/jsastcodec/pkg/grammar"
	"github.com/hmny-labs/jsastcodec/pkg/tree"
	"github.com/hmny-labs/jsastcodec/pkg/treerepair"
	"github.com/hmny-labs/jsastcodec/pkg/wire"
)

// Encode recovers root's grammar, builds its ranked-tree representation,
// mines repeated structure with treerepair, and writes the resulting
// header and body to sink. root must be a Script or Module.
func Encode(root ast.Node, sink io.Writer) (int64, error) {
	if root.Kind() != "Script" && root.Kind() != "Module" {
		return 0, &UnexpectedRoot{Kind: root.Kind()}
	}

	schema, err := grammar.Recover(root)
	if err != nil {
		return 0, fmt.Errorf("recovering grammar: %w", err)
	}

	arena, rootID, strInterner, numInterner, err := buildTree(schema, root)
	if err != nil {
		return 0, fmt.Errorf("building ranked tree: %w", err)
	}

	sortedStrings, stringRemap, err := strInterner.Finalize()
	if err != nil {
		return 0, fmt.Errorf("finalizing string pool: %w", err)
	}
	sortedNumbers, numberRemap := numInterner.Finalize()
	remapPools(arena, rootID, stringRemap, numberRemap)

	result, err := treerepair.Run(arena, rootID)
	if err != nil {
		return 0, fmt.Errorf("mining grammar: %w", err)
	}

	layout := codespace.BuildMetaRuleLayout(result.Productions)
	kinds := schema.Kinds()
	ranks := make([]int, len(kinds))
	for i, k := range kinds {
		props, _ := schema.Properties(k)
		ranks[i] = len(props)
	}
	space := codespace.NewCodeSpace(result.ParamCount, layout, kinds, ranks, len(sortedStrings), len(sortedNumbers))

	w := wire.NewWriter(sink)
	if err := writeHeader(w, schema, result.ParamCount, layout.Buckets, sortedStrings, sortedNumbers); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	productionByID := make(map[int]treerepair.Production, len(result.Productions))
	for _, p := range result.Productions {
		productionByID[p.Symbol.ID] = p
	}
	for _, id := range layout.Order {
		if err := writeBody(w, result.Tree, productionByID[id].BodyRoot, space); err != nil {
			return 0, fmt.Errorf("writing meta-rule body %d: %w", id, err)
		}
	}
	if err := writeBody(w, result.Tree, result.Start, space); err != nil {
		return 0, fmt.Errorf("writing start tree: %w", err)
	}

	if err := w.Flush(); err != nil {
		return 0, err
	}
	return w.Written(), nil
}

// writeBody emits root's subtree in preorder: each node's code, then its
// children left to right. Every label's rank is known to both sides, so
// no delimiters are needed.
func writeBody(w *wire.Writer, t *tree.Tree, root tree.NodeID, space *codespace.CodeSpace) error {
	node := t.Node(root)
	code, err := space.Code(node.Symbol)
	if err != nil {
		return fmt.Errorf("coding symbol at node %d: %w", root, err)
	}
	if err := w.WriteVarUInt(code); err != nil {
		return err
	}
	for i, c := range node.Children {
		if err := writeBody(w, t, c, space); err != nil {
			return fmt.Errorf("writing child %d of node %d (code %d): %w", i, root, code, err)
		}
	}
	return nil
}
