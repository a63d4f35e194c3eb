package treerepair

import "github.com/hmny-labs/jsastcodec/pkg/tree"

// DigramKey identifies a (parent label, child position, child label) shape,
// independent of which nodes happen to exhibit it.
type DigramKey struct {
	Parent tree.Symbol
	Pos    int
	Child  tree.Symbol
}

// scanResult is one full preorder pass over a tree: for every digram shape
// seen, its non-overlapping occurrence count and the parent NodeIDs it occurs at
// (earliest preorder position first), plus the order in which each shape
// was first observed (used for the heap's FIFO tie-break).
type scanResult struct {
	counts      map[DigramKey]int
	occurrences map[DigramKey][]tree.NodeID
	firstSeen   map[DigramKey]int
}

// scan walks t from root and applies the overlap rule: when a digram
// occurrence (parent=X) is counted, X's matching child is locked for that
// same digram key, so a chain of identical digrams (e.g. a cons spine) is
// greedily split into non-overlapping pairs instead of over-counted.
func scan(t *tree.Tree, root tree.NodeID) scanResult {
	res := scanResult{
		counts:      map[DigramKey]int{},
		occurrences: map[DigramKey][]tree.NodeID{},
		firstSeen:   map[DigramKey]int{},
	}
	locked := map[DigramKey]map[tree.NodeID]bool{}
	seq := 0

	t.PreorderWalk(root, func(id tree.NodeID) {
		node := t.Node(id)
		for pos, childID := range node.Children {
			child := t.Node(childID)
			key := DigramKey{Parent: node.Symbol, Pos: pos, Child: child.Symbol}

			if locked[key] != nil && locked[key][id] {
				continue
			}
			if _, seen := res.firstSeen[key]; !seen {
				res.firstSeen[key] = seq
				seq++
			}
			res.counts[key]++
			res.occurrences[key] = append(res.occurrences[key], id)
			if locked[key] == nil {
				locked[key] = map[tree.NodeID]bool{}
			}
			locked[key][childID] = true
		}
	})
	return res
}
