package codespace_test

import (
	"testing"

	"github.com/hmny-labs/jsastcodec/pkg/codespace"
	"github.com/hmny-labs/jsastcodec/pkg/tree"
	"github.com/hmny-labs/jsastcodec/pkg/treerepair"
)

func sampleCodeSpace() *codespace.CodeSpace {
	productions := []treerepair.Production{
		{Symbol: tree.Nonterminal{ID: 0, FormalCount: 1}},
		{Symbol: tree.Nonterminal{ID: 1, FormalCount: 2}},
		{Symbol: tree.Nonterminal{ID: 2, FormalCount: 1}},
	}
	layout := codespace.BuildMetaRuleLayout(productions)
	return codespace.NewCodeSpace(4, layout, []string{"Script", "Identifier"}, []int{2, 1}, 3, 2)
}

func TestCodeDecodeRoundTrip(t *testing.T) {
	cs := sampleCodeSpace()

	symbols := []tree.Symbol{
		tree.Parameter{Index: 0},
		tree.Parameter{Index: 3},
		tree.NewNilTerminal(),
		tree.NewConsTerminal(),
		tree.NewMissingTerminal(),
		tree.NewGrammarKindTerminal("Script", 2),
		tree.NewGrammarKindTerminal("Identifier", 1),
		tree.NewStringTerminal(0),
		tree.NewStringTerminal(2),
		tree.NewNumberTerminal(1),
		tree.Nonterminal{ID: 0, FormalCount: 1},
		tree.Nonterminal{ID: 1, FormalCount: 2},
	}

	for _, sym := range symbols {
		code, err := cs.Code(sym)
		if err != nil {
			t.Fatalf("Code(%#v): %v", sym, err)
		}
		got, err := cs.Decode(code)
		if err != nil {
			t.Fatalf("Decode(%d): %v", code, err)
		}
		if got != sym {
			t.Fatalf("round trip of %#v produced %#v (code %d)", sym, got, code)
		}
	}
}

func TestMetaRulesGroupedByAscendingRank(t *testing.T) {
	cs := sampleCodeSpace()
	// productions 0 and 2 share rank 1, production 1 has rank 2; rank-1
	// entries must sort before the rank-2 entry, ties broken by discovery
	// (extraction) order: nonterminal 0 before nonterminal 2.
	want := []int{0, 2, 1}
	for i, id := range want {
		if cs.MetaRules.Order[i] != id {
			t.Fatalf("MetaRules.Order = %v, want nonterminal %d at position %d", cs.MetaRules.Order, id, i)
		}
	}
}

func TestDecodeOutOfRangeIsInternalInvariant(t *testing.T) {
	cs := sampleCodeSpace()
	_, err := cs.Decode(uint64(cs.Total()))
	if _, ok := err.(*codespace.InternalInvariant); !ok {
		t.Fatalf("expected *codespace.InternalInvariant, got %T (%v)", err, err)
	}
}
