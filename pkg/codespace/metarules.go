package codespace

import (
	"sort"

	"github.com/hmny-labs/jsastcodec/pkg/treerepair"
)

// RankBucket is one row of the header's meta-rule rank histogram: Count
// productions share Rank.
type RankBucket struct {
	Rank  int
	Count int
}

// MetaRuleLayout fixes the meta-rule partition's internal order: productions
// grouped by ascending rank, ties broken by discovery (extraction) order.
// Order's index, added to the meta-rule partition base, is a production's
// final wire code.
type MetaRuleLayout struct {
	Order     []int // nonterminal IDs in final code order
	Buckets   []RankBucket
	indexByID map[int]int
}

// BuildMetaRuleLayout derives a MetaRuleLayout from the productions a
// treerepair run extracted, in discovery order.
func BuildMetaRuleLayout(productions []treerepair.Production) MetaRuleLayout {
	ids := make([]int, len(productions))
	rankByID := make(map[int]int, len(productions))
	for i, p := range productions {
		ids[i] = p.Symbol.ID
		rankByID[p.Symbol.ID] = p.Symbol.Rank()
	}
	sort.SliceStable(ids, func(i, j int) bool { return rankByID[ids[i]] < rankByID[ids[j]] })

	var buckets []RankBucket
	for _, id := range ids {
		rank := rankByID[id]
		if len(buckets) == 0 || buckets[len(buckets)-1].Rank != rank {
			buckets = append(buckets, RankBucket{Rank: rank})
		}
		buckets[len(buckets)-1].Count++
	}

	indexByID := make(map[int]int, len(ids))
	for i, id := range ids {
		indexByID[id] = i
	}

	return MetaRuleLayout{Order: ids, Buckets: buckets, indexByID: indexByID}
}

// NewDecodedMetaRuleLayout rebuilds a MetaRuleLayout from a header's rank
// histogram alone (the decoder never runs treerepair, so there is no
// treerepair.Production to derive discovery-order IDs from). Meta-rule
// bodies are read "in the same order as the histogram" (spec §4.5), so the
// partition-relative index doubles as this side's nonterminal ID.
func NewDecodedMetaRuleLayout(buckets []RankBucket) MetaRuleLayout {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	order := make([]int, total)
	indexByID := make(map[int]int, total)
	for i := range order {
		order[i] = i
		indexByID[i] = i
	}
	return MetaRuleLayout{Order: order, Buckets: buckets, indexByID: indexByID}
}

// CodeOffset returns nonterminal id's position within the meta-rule
// partition.
func (l MetaRuleLayout) CodeOffset(id int) (int, bool) {
	i, ok := l.indexByID[id]
	return i, ok
}

// Len returns the number of meta-rules (productions) in this layout.
func (l MetaRuleLayout) Len() int { return len(l.Order) }
