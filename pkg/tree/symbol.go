// Package tree implements the ranked-tree algebra the compression engine
// operates on: symbols with a declared rank (child count), and trees over
// those symbols stored in a flat arena so nodes can be spliced in place
// without juggling raw pointers (spec's "arena allocation and integer
// node indices" redesign note).
package tree

// Symbol is implemented by every label a tree Node can carry: Terminal,
// Nonterminal or Parameter. All three are small comparable structs, so
// Symbol values can be used directly as map keys (the digram index relies
// on this).
type Symbol interface {
	Rank() int
	symbol()
}

// ----------------------------------------------------------------------------
// Terminal

// TerminalClass enumerates the fixed terminal families spec §3 defines:
// the six built-ins (the rank-0 empty list, null, false, true and missing,
// plus the rank-2 cons cell), one terminal per AST grammar kind (its rank
// is the kind's property count), and one terminal per interned string or
// numeric literal.
type TerminalClass uint8

const (
	ClassNil TerminalClass = iota
	ClassNull
	ClassCons
	ClassFalse
	ClassTrue
	ClassMissing
	ClassGrammarKind
	ClassString
	ClassNumber
)

// Terminal is an opaque leaf/inner-node label. Kind and Index are only
// meaningful for ClassGrammarKind (Kind holds the AST kind tag) and
// ClassString/ClassNumber (Index is the position in the relevant pool)
// respectively; Rank carries the symbol's declared child count.
type Terminal struct {
	Class TerminalClass
	Kind  string
	Index int
	rank  int
}

func (Terminal) symbol()     {}
func (t Terminal) Rank() int { return t.rank }

// NewNilTerminal returns the rank-0 empty-list terminal.
func NewNilTerminal() Terminal { return Terminal{Class: ClassNil} }

// NewNullTerminal returns the rank-0 `null` terminal.
func NewNullTerminal() Terminal { return Terminal{Class: ClassNull} }

// NewConsTerminal returns the rank-2 list-cons terminal.
func NewConsTerminal() Terminal { return Terminal{Class: ClassCons, rank: 2} }

// NewFalseTerminal returns the rank-0 `false` terminal.
func NewFalseTerminal() Terminal { return Terminal{Class: ClassFalse} }

// NewTrueTerminal returns the rank-0 `true` terminal.
func NewTrueTerminal() Terminal { return Terminal{Class: ClassTrue} }

// NewMissingTerminal returns the rank-0 "absent" (⊥) terminal.
func NewMissingTerminal() Terminal { return Terminal{Class: ClassMissing} }

// NewGrammarKindTerminal returns the terminal for one AST kind; rank is
// the number of properties the grammar recovered for that kind.
func NewGrammarKindTerminal(kind string, rank int) Terminal {
	return Terminal{Class: ClassGrammarKind, Kind: kind, rank: rank}
}

// NewStringTerminal returns the rank-0 terminal for the string interned at
// poolIndex.
func NewStringTerminal(poolIndex int) Terminal {
	return Terminal{Class: ClassString, Index: poolIndex}
}

// NewNumberTerminal returns the rank-0 terminal for the number interned at
// poolIndex.
func NewNumberTerminal(poolIndex int) Terminal {
	return Terminal{Class: ClassNumber, Index: poolIndex}
}

// ----------------------------------------------------------------------------
// Nonterminal

// Nonterminal is a grammar production synthesized by the compression
// engine. ID is its discovery-order index (0-based, the order productions
// were extracted in); Rank is its formal-parameter count.
type Nonterminal struct {
	ID          int
	FormalCount int
}

func (Nonterminal) symbol()     {}
func (n Nonterminal) Rank() int { return n.FormalCount }

// ----------------------------------------------------------------------------
// Parameter

// Parameter is a positional hole inside a Nonterminal's body, substituted
// for an actual argument at expansion time. Index is this parameter's
// position among its production's formals (0-based), which is also the
// index of the actual argument it stands for; productions share these
// indices, so P is the largest formal count of any production.
type Parameter struct{ Index int }

func (Parameter) symbol()     {}
func (Parameter) Rank() int   { return 0 }
