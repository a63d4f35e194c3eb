package treerepair_test

import (
	"testing"

	"github.com/hmny-labs/jsastcodec/pkg/tree"
	"github.com/hmny-labs/jsastcodec/pkg/treerepair"
)

// buildRepeatedList builds cons(x, cons(x, cons(x, cons(x, nil)))) where x
// is a shared string terminal, i.e. a chain whose (cons, 0, x) digram occurs
// four times and so must be extracted into a production.
func buildRepeatedList(t *tree.Tree, n int) tree.NodeID {
	x := tree.NewStringTerminal(0)
	tail := t.New(tree.NewNilTerminal())
	for i := 0; i < n; i++ {
		tail = t.New(tree.NewConsTerminal(), t.New(x), tail)
	}
	return tail
}

func TestRunExtractsRepeatedDigram(t *testing.T) {
	arena := tree.NewTree()
	root := buildRepeatedList(arena, 4)

	result, err := treerepair.Run(arena, root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Productions) == 0 {
		t.Fatalf("expected at least one production to be extracted")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	arena := tree.NewTree()
	root := buildRepeatedList(arena, 4)

	first, err := treerepair.Run(arena, root)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}

	second, err := treerepair.Run(first.Tree, first.Start)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(second.Productions) != 0 {
		t.Fatalf("expected no new productions on a re-mined grammar, got %d", len(second.Productions))
	}
}

func TestRunOnNonRepeatingTreeExtractsNothing(t *testing.T) {
	arena := tree.NewTree()
	leaf := arena.New(tree.NewStringTerminal(0))
	root := arena.New(tree.NewConsTerminal(), leaf, arena.New(tree.NewNilTerminal()))

	result, err := treerepair.Run(arena, root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Productions) != 0 {
		t.Fatalf("expected no productions from a tree with no repeated digram, got %d", len(result.Productions))
	}
}
