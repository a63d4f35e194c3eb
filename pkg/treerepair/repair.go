// Package treerepair implements the TreeRePair-style grammar compression
// engine: repeatedly find the most frequent non-overlapping digram (a
// parent/child label pair at a fixed child position), extract it into a
// fresh nonterminal production, and replace every occurrence, until no
// digram recurs.
package treerepair

import (
	"fmt"

	"github.com/hmny-labs/jsastcodec/pkg/tree"
)

// Production is one synthesized grammar rule: a nonterminal symbol and the
// root of its body, both living in the same arena as the start tree.
type Production struct {
	Symbol   tree.Nonterminal
	BodyRoot tree.NodeID
}

// Result is the fully mined grammar: the (possibly mutated) start tree, its
// current root, and the productions extracted, in discovery order.
type Result struct {
	Tree        *tree.Tree
	Start       tree.NodeID
	Productions []Production
	ParamCount  int
}

// Run mines t starting from start until no digram occurs more than once,
// mutating t in place and returning every production it extracted.
func Run(t *tree.Tree, start tree.NodeID) (*Result, error) {
	t.SetRoot(start)
	var productions []Production
	nextNonterminalID := 0
	nextParamIndex := 0

	for {
		res := scan(t, t.Root())
		chosen, ok := best(res)
		if !ok {
			break
		}

		nt, bodyRoot, err := synthesize(t, chosen.key, nextNonterminalID, &nextParamIndex)
		if err != nil {
			return nil, fmt.Errorf("synthesizing nonterminal %d for digram (parent=%v pos=%d child=%v): %w",
				nextNonterminalID, chosen.key.Parent, chosen.key.Pos, chosen.key.Child, err)
		}
		nextNonterminalID++
		productions = append(productions, Production{Symbol: nt, BodyRoot: bodyRoot})

		for _, parentID := range res.occurrences[chosen.key] {
			if err := replaceOccurrence(t, parentID, chosen.key, nt); err != nil {
				return nil, fmt.Errorf("replacing occurrence at node %d for nonterminal %d: %w", parentID, nt.ID, err)
			}
		}
	}

	return &Result{Tree: t, Start: t.Root(), Productions: productions, ParamCount: nextParamIndex}, nil
}

// synthesize builds the body for the nonterminal that replaces digram key:
// a node labelled key.Parent whose key.Pos-th child is a node labelled
// key.Child, with parameters 0..rank-1 standing in for every other child of
// either node (key.Parent's children first in original order, excluding
// position key.Pos, then key.Child's children in original order). Parameter
// indices are positional within each production; paramCounter is raised to
// the largest formal count seen so far.
func synthesize(t *tree.Tree, key DigramKey, nonterminalID int, paramCounter *int) (tree.Nonterminal, tree.NodeID, error) {
	rankA := key.Parent.Rank()
	rankB := key.Child.Rank()
	if key.Pos < 0 || key.Pos >= rankA {
		return tree.Nonterminal{}, tree.NoNode, &InternalInvariant{Msg: "digram position outside parent's rank"}
	}
	rankN := rankA + rankB - 1

	formals := make([]tree.Parameter, rankN)
	for i := range formals {
		formals[i] = tree.Parameter{Index: i}
	}
	if rankN > *paramCounter {
		*paramCounter = rankN
	}

	remainingA := rankA - 1
	bFormals := formals[remainingA:]
	bChildren := make([]tree.NodeID, rankB)
	for i, p := range bFormals {
		bChildren[i] = t.New(p)
	}
	bNode := t.New(key.Child, bChildren...)

	aChildren := make([]tree.NodeID, rankA)
	cursor := 0
	for pos := 0; pos < rankA; pos++ {
		if pos == key.Pos {
			aChildren[pos] = bNode
			continue
		}
		aChildren[pos] = t.New(formals[cursor])
		cursor++
	}
	bodyRoot := t.New(key.Parent, aChildren...)

	nt := tree.Nonterminal{ID: nonterminalID, FormalCount: rankN}
	return nt, bodyRoot, nil
}

// replaceOccurrence splices the nonterminal nt in place of the digram
// occurrence rooted at parentID: the new node's children are parentID's
// children other than the one at key.Pos, followed by that child's own
// children, in original order (matching synthesize's formal ordering
// exactly, so the actuals line up with the production's parameters).
func replaceOccurrence(t *tree.Tree, parentID tree.NodeID, key DigramKey, nt tree.Nonterminal) error {
	a := t.Node(parentID)
	if a.Symbol != key.Parent {
		return &InternalInvariant{Msg: "occurrence parent symbol changed since scan"}
	}
	if key.Pos >= len(a.Children) {
		return &InternalInvariant{Msg: "occurrence position outside parent's current children"}
	}
	bID := a.Children[key.Pos]
	b := t.Node(bID)
	if b.Symbol != key.Child {
		return &InternalInvariant{Msg: "occurrence child symbol changed since scan"}
	}

	actuals := make([]tree.NodeID, 0, len(a.Children)-1+len(b.Children))
	for pos, c := range a.Children {
		if pos == key.Pos {
			continue
		}
		actuals = append(actuals, c)
	}
	actuals = append(actuals, b.Children...)

	newID := t.New(nt, actuals...)

	grandparent := a.Parent
	if grandparent == tree.NoNode {
		t.SetRoot(newID)
		return nil
	}
	idx := a.ChildIndex
	gp := t.Node(grandparent)
	gp.Children[idx] = newID
	n := t.Node(newID)
	n.Parent = grandparent
	n.ChildIndex = idx
	return nil
}
