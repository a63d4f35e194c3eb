package treerepair

import "container/heap"

// digramEntry is one candidate digram up for extraction this round.
type digramEntry struct {
	key       DigramKey
	count     int
	firstSeen int
}

// digramHeap is a container/heap max-heap ordered by occurrence count,
// breaking ties by first-seen order (FIFO: whichever digram the preorder
// scan encountered first wins a tie).
type digramHeap []digramEntry

func (h digramHeap) Len() int { return len(h) }

func (h digramHeap) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count > h[j].count
	}
	return h[i].firstSeen < h[j].firstSeen
}

func (h digramHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *digramHeap) Push(x any) { *h = append(*h, x.(digramEntry)) }

func (h *digramHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// best returns the highest-priority candidate, or ok=false if none qualify
// (every digram occurs at most once).
func best(res scanResult) (digramEntry, bool) {
	h := make(digramHeap, 0, len(res.counts))
	for key, count := range res.counts {
		if count < 2 {
			continue
		}
		h = append(h, digramEntry{key: key, count: count, firstSeen: res.firstSeen[key]})
	}
	if len(h) == 0 {
		return digramEntry{}, false
	}
	heap.Init(&h)
	return heap.Pop(&h).(digramEntry), true
}
