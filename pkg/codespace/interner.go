package codespace

import (
	"math"
	"sort"
)

// StringInterner assigns each distinct string a discovery-order index as it
// is first seen, then Finalize reorders them lexicographically for the
// wire pool (spec §4.4's "strings: lexicographic").
type StringInterner struct {
	order []string
	index map[string]int
}

// NewStringInterner returns an empty interner.
func NewStringInterner() *StringInterner {
	return &StringInterner{index: map[string]int{}}
}

// Intern returns s's discovery-order index, assigning a fresh one the
// first time s is seen.
func (in *StringInterner) Intern(s string) int {
	if i, ok := in.index[s]; ok {
		return i
	}
	i := len(in.order)
	in.order = append(in.order, s)
	in.index[s] = i
	return i
}

// Finalize returns the interned strings in final lexicographic order and a
// remap from discovery-order index to final index. Intern's map-based
// dedup makes every order entry unique by construction; Finalize still
// checks for an adjacent duplicate after sorting and surfaces
// InternalInvariant rather than silently folding it, since the spec's
// header format assumes a strictly ordered, duplicate-free pool.
func (in *StringInterner) Finalize() (sorted []string, remap []int, err error) {
	type entry struct {
		s string
		i int
	}
	entries := make([]entry, len(in.order))
	for i, s := range in.order {
		entries[i] = entry{s, i}
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].s < entries[b].s })

	sorted = make([]string, len(entries))
	remap = make([]int, len(entries))
	for finalIdx, e := range entries {
		if finalIdx > 0 && sorted[finalIdx-1] == e.s {
			return nil, nil, &InternalInvariant{Msg: "duplicate string key survived interning: " + e.s}
		}
		sorted[finalIdx] = e.s
		remap[e.i] = finalIdx
	}
	return sorted, remap, nil
}

// NumberInterner assigns each distinct number (compared by exact IEEE-754
// bit pattern, so distinct NaN payloads are never merged) a discovery-order
// index, tracking how many times it was used so Finalize can sort pool
// entries by descending frequency (spec §4.4's "numbers: descending use
// count, ties by discovery order").
type NumberInterner struct {
	order []float64
	bits  []uint64
	uses  []int
	index map[uint64]int
}

// NewNumberInterner returns an empty interner.
func NewNumberInterner() *NumberInterner {
	return &NumberInterner{index: map[uint64]int{}}
}

// Intern returns v's discovery-order index, bumping its use count.
func (in *NumberInterner) Intern(v float64) int {
	key := math.Float64bits(v)
	if i, ok := in.index[key]; ok {
		in.uses[i]++
		return i
	}
	i := len(in.order)
	in.order = append(in.order, v)
	in.bits = append(in.bits, key)
	in.uses = append(in.uses, 1)
	in.index[key] = i
	return i
}

// Finalize returns the interned numbers ordered by descending use count
// (ties broken by discovery order, via a stable sort) and a remap from
// discovery-order index to final index.
func (in *NumberInterner) Finalize() (sorted []float64, remap []int) {
	order := make([]int, len(in.order))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return in.uses[order[a]] > in.uses[order[b]] })

	sorted = make([]float64, len(order))
	remap = make([]int, len(order))
	for finalIdx, discoveryIdx := range order {
		sorted[finalIdx] = in.order[discoveryIdx]
		remap[discoveryIdx] = finalIdx
	}
	return sorted, remap
}
