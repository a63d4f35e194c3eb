// Package codespace implements the fixed symbol code-space partitioning
// shared by the encoder and decoder: one consecutive-integer range per
// symbol family (parameters, built-ins, meta-rules, grammar kinds, the
// string pool, the numeric pool), so a single VarUInt in the wire body
// unambiguously names any symbol.
package codespace

import "github.com/hmny-labs/jsastcodec/pkg/tree"

// builtinCount is the number of built-in terminals. Their position within
// the partition mirrors tree.TerminalClass's declaration order exactly
// (Nil, Null, Cons, False, True, Missing), so a built-in's partition offset
// is simply its TerminalClass value.
const builtinCount = 6

// CodeSpace is the fully-resolved layout for one encode/decode pass: how
// many parameters and grammar kinds/strings/numbers there are, and which
// meta-rule occupies which slot.
type CodeSpace struct {
	ParamCount   int
	MetaRules    MetaRuleLayout
	GrammarKinds []string
	GrammarRanks []int
	StringCount  int
	NumberCount  int

	grammarIndex map[string]int
}

// NewCodeSpace builds a CodeSpace from its resolved parts. grammarKinds and
// grammarRanks must be parallel slices (grammarRanks[i] is grammarKinds[i]'s
// property count).
func NewCodeSpace(paramCount int, metaRules MetaRuleLayout, grammarKinds []string, grammarRanks []int, stringCount, numberCount int) *CodeSpace {
	idx := make(map[string]int, len(grammarKinds))
	for i, k := range grammarKinds {
		idx[k] = i
	}
	return &CodeSpace{
		ParamCount:   paramCount,
		MetaRules:    metaRules,
		GrammarKinds: grammarKinds,
		GrammarRanks: grammarRanks,
		StringCount:  stringCount,
		NumberCount:  numberCount,
		grammarIndex: idx,
	}
}

func (cs *CodeSpace) builtinBase() int { return cs.ParamCount }
func (cs *CodeSpace) metaBase() int    { return cs.builtinBase() + builtinCount }
func (cs *CodeSpace) grammarBase() int { return cs.metaBase() + cs.MetaRules.Len() }
func (cs *CodeSpace) stringBase() int  { return cs.grammarBase() + len(cs.GrammarKinds) }
func (cs *CodeSpace) numberBase() int  { return cs.stringBase() + cs.StringCount }

// Total returns the size of the whole code space (one past the last valid
// code), used by the decoder to range-check an incoming VarUInt.
func (cs *CodeSpace) Total() int { return cs.numberBase() + cs.NumberCount }

// Code returns sym's wire code.
func (cs *CodeSpace) Code(sym tree.Symbol) (uint64, error) {
	switch s := sym.(type) {
	case tree.Parameter:
		if s.Index < 0 || s.Index >= cs.ParamCount {
			return 0, &InternalInvariant{Msg: "parameter index outside declared count"}
		}
		return uint64(s.Index), nil

	case tree.Terminal:
		switch s.Class {
		case tree.ClassNil, tree.ClassNull, tree.ClassCons, tree.ClassFalse, tree.ClassTrue, tree.ClassMissing:
			return uint64(cs.builtinBase() + int(s.Class)), nil
		case tree.ClassGrammarKind:
			idx, ok := cs.grammarIndex[s.Kind]
			if !ok {
				return 0, &InternalInvariant{Msg: "unknown grammar kind: " + s.Kind}
			}
			return uint64(cs.grammarBase() + idx), nil
		case tree.ClassString:
			return uint64(cs.stringBase() + s.Index), nil
		case tree.ClassNumber:
			return uint64(cs.numberBase() + s.Index), nil
		}
		return 0, &InternalInvariant{Msg: "unrecognized terminal class"}

	case tree.Nonterminal:
		idx, ok := cs.MetaRules.CodeOffset(s.ID)
		if !ok {
			return 0, &InternalInvariant{Msg: "unknown nonterminal id"}
		}
		return uint64(cs.metaBase() + idx), nil
	}
	return 0, &InternalInvariant{Msg: "unrecognized symbol type"}
}

// Decode returns the Symbol named by code.
func (cs *CodeSpace) Decode(code uint64) (tree.Symbol, error) {
	c := int(code)
	switch {
	case c < 0:
		return nil, &InternalInvariant{Msg: "negative code"}
	case c < cs.builtinBase():
		return tree.Parameter{Index: c}, nil
	case c < cs.metaBase():
		switch tree.TerminalClass(c - cs.builtinBase()) {
		case tree.ClassNil:
			return tree.NewNilTerminal(), nil
		case tree.ClassNull:
			return tree.NewNullTerminal(), nil
		case tree.ClassCons:
			return tree.NewConsTerminal(), nil
		case tree.ClassFalse:
			return tree.NewFalseTerminal(), nil
		case tree.ClassTrue:
			return tree.NewTrueTerminal(), nil
		case tree.ClassMissing:
			return tree.NewMissingTerminal(), nil
		}
		return nil, &InternalInvariant{Msg: "built-in code out of range"}
	case c < cs.grammarBase():
		idx := c - cs.metaBase()
		if idx >= len(cs.MetaRules.Order) {
			return nil, &InternalInvariant{Msg: "meta-rule code out of range"}
		}
		return tree.Nonterminal{ID: cs.MetaRules.Order[idx], FormalCount: rankOf(cs.MetaRules, idx)}, nil
	case c < cs.stringBase():
		idx := c - cs.grammarBase()
		if idx >= len(cs.GrammarKinds) {
			return nil, &InternalInvariant{Msg: "grammar-kind code out of range"}
		}
		return tree.NewGrammarKindTerminal(cs.GrammarKinds[idx], cs.GrammarRanks[idx]), nil
	case c < cs.numberBase():
		return tree.NewStringTerminal(c - cs.stringBase()), nil
	case c < cs.Total():
		return tree.NewNumberTerminal(c - cs.numberBase()), nil
	}
	return nil, &InternalInvariant{Msg: "code exceeds code space"}
}

// rankOf looks up the rank a meta-rule at layout position idx was recorded
// with by consulting the bucket histogram (since MetaRuleLayout.Order only
// stores nonterminal IDs, not their rank).
func rankOf(layout MetaRuleLayout, idx int) int {
	cursor := 0
	for _, b := range layout.Buckets {
		if idx < cursor+b.Count {
			return b.Rank
		}
		cursor += b.Count
	}
	return 0
}
