package ast

// Value is the closed primitive union a Property can hold: a JS primitive,
// a nested Node, or an ordered list of further Values (used for both
// node lists such as `statements` and string lists such as `params`).
type Value interface{ isValue() }

// NullValue is the JS `null` primitive.
type NullValue struct{}

// MissingValue is the "absent" sentinel (rendered `⊥` in spec prose) used
// for optional properties that were not supplied, distinct from explicit
// null — e.g. an IfStatement with no else branch vs. one whose else
// branch is a no-op.
type MissingValue struct{}

// BoolValue is `true` or `false`.
type BoolValue bool

// NumberValue is a finite (or NaN) IEEE-754 double.
type NumberValue float64

// StringValue is a UTF-8 string.
type StringValue string

// NodeValue wraps a nested AST node as a property value.
type NodeValue struct{ Node Node }

// ListValue is an ordered, possibly-empty sequence of further Values.
type ListValue struct{ Items []Value }

func (NullValue) isValue()    {}
func (MissingValue) isValue() {}
func (BoolValue) isValue()    {}
func (NumberValue) isValue()  {}
func (StringValue) isValue()  {}
func (NodeValue) isValue()    {}
func (ListValue) isValue()    {}
