// Package ast defines the closed set of JavaScript AST node kinds this
// codec knows how to compress, encode and decode.
//
// This is the "typed AST" the rest of the codec treats as a given input:
// a node exposes its kind tag and its ordered set of named properties, and
// nothing else. Parsing source text into these nodes, and any rewriting
// or canonicalization of them, happens upstream of this package.
package ast

// Node is implemented by every concrete AST kind. Kind identifies the node
// class (the tag used by the grammar recoverer and the codec's symbol
// table); Properties lists its named property values in the struct's own
// natural order — callers that need the canonical (sorted) order defined
// by a recovered grammar.Schema look values up by name instead of relying
// on this order.
type Node interface {
	Kind() string
	Properties() []Property
}

// Property is one named value attached to a Node.
type Property struct {
	Name  string
	Value Value
}

// PropertyMap collects a node's properties into a name-indexed map, for
// callers that need to fetch values in an order other than the one
// Properties returns them in (the encoder does this to honor the
// recovered grammar's sorted property order).
func PropertyMap(n Node) map[string]Value {
	props := n.Properties()
	out := make(map[string]Value, len(props))
	for _, p := range props {
		out[p.Name] = p.Value
	}
	return out
}

// ----------------------------------------------------------------------------
// Root kinds

// Script is a top-level, non-module program: a list of directive prologue
// strings followed by a list of statements.
type Script struct {
	Directives []string
	Statements []Node
}

func (n Script) Kind() string { return "Script" }
func (n Script) Properties() []Property {
	return []Property{
		{"directives", stringList(n.Directives)},
		{"statements", nodeList(n.Statements)},
	}
}

// Module is the ES module counterpart of Script. This codec does not model
// import/export bindings; a Module is otherwise identical to a Script.
type Module struct {
	Directives []string
	Statements []Node
}

func (n Module) Kind() string { return "Module" }
func (n Module) Properties() []Property {
	return []Property{
		{"directives", stringList(n.Directives)},
		{"statements", nodeList(n.Statements)},
	}
}

// ----------------------------------------------------------------------------
// Statements

// ExpressionStatement evaluates Expression and discards its result.
type ExpressionStatement struct{ Expression Node }

func (n ExpressionStatement) Kind() string { return "ExpressionStatement" }
func (n ExpressionStatement) Properties() []Property {
	return []Property{{"expression", NodeValue{n.Expression}}}
}

// VariableDeclarationKind enumerates var/let/const.
type VariableDeclarationKind string

const (
	Var   VariableDeclarationKind = "var"
	Let   VariableDeclarationKind = "let"
	Const VariableDeclarationKind = "const"
)

// VariableDeclarator binds Name to the (optional) result of Init.
type VariableDeclarator struct {
	Name string
	Init Node // nil (encoded as Missing) when there's no initializer
}

func (n VariableDeclarator) Kind() string { return "VariableDeclarator" }
func (n VariableDeclarator) Properties() []Property {
	return []Property{
		{"name", StringValue(n.Name)},
		{"init", optionalNode(n.Init)},
	}
}

// VariableDeclarationStatement declares one or more bindings of the same
// DeclKind in a single statement (e.g. "let x = 1, y = 2").
type VariableDeclarationStatement struct {
	DeclKind    VariableDeclarationKind
	Declarators []Node // each a VariableDeclarator
}

func (n VariableDeclarationStatement) Kind() string { return "VariableDeclarationStatement" }
func (n VariableDeclarationStatement) Properties() []Property {
	return []Property{
		{"kind", StringValue(n.DeclKind)},
		{"declarators", nodeList(n.Declarators)},
	}
}

// BlockStatement is a brace-delimited list of statements introducing no
// scope of its own in this simplified AST.
type BlockStatement struct{ Statements []Node }

func (n BlockStatement) Kind() string { return "BlockStatement" }
func (n BlockStatement) Properties() []Property {
	return []Property{{"statements", nodeList(n.Statements)}}
}

// IfStatement runs Consequent when Test is truthy, else Alternate (Missing
// when there is no else branch).
type IfStatement struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

func (n IfStatement) Kind() string { return "IfStatement" }
func (n IfStatement) Properties() []Property {
	return []Property{
		{"test", NodeValue{n.Test}},
		{"consequent", NodeValue{n.Consequent}},
		{"alternate", optionalNode(n.Alternate)},
	}
}

// WhileStatement runs Body for as long as Test is truthy.
type WhileStatement struct {
	Test Node
	Body Node
}

func (n WhileStatement) Kind() string { return "WhileStatement" }
func (n WhileStatement) Properties() []Property {
	return []Property{
		{"test", NodeValue{n.Test}},
		{"body", NodeValue{n.Body}},
	}
}

// ReturnStatement exits the enclosing function, optionally with a value.
type ReturnStatement struct{ Expression Node }

func (n ReturnStatement) Kind() string { return "ReturnStatement" }
func (n ReturnStatement) Properties() []Property {
	return []Property{{"expression", optionalNode(n.Expression)}}
}

// FunctionDeclaration declares a named function with positional Params.
type FunctionDeclaration struct {
	Name   string
	Params []string
	Body   Node // BlockStatement
}

func (n FunctionDeclaration) Kind() string { return "FunctionDeclaration" }
func (n FunctionDeclaration) Properties() []Property {
	return []Property{
		{"name", StringValue(n.Name)},
		{"params", stringList(n.Params)},
		{"body", NodeValue{n.Body}},
	}
}

// ----------------------------------------------------------------------------
// Expressions

// IdentifierExpression reads the current value bound to Name.
type IdentifierExpression struct{ Name string }

func (n IdentifierExpression) Kind() string { return "IdentifierExpression" }
func (n IdentifierExpression) Properties() []Property {
	return []Property{{"name", StringValue(n.Name)}}
}

// LiteralNumericExpression is a numeric literal; Value is the exact
// IEEE-754 double the literal denotes (including NaN payloads).
type LiteralNumericExpression struct{ Value float64 }

func (n LiteralNumericExpression) Kind() string { return "LiteralNumericExpression" }
func (n LiteralNumericExpression) Properties() []Property {
	return []Property{{"value", NumberValue(n.Value)}}
}

// LiteralStringExpression is a string literal.
type LiteralStringExpression struct{ Value string }

func (n LiteralStringExpression) Kind() string { return "LiteralStringExpression" }
func (n LiteralStringExpression) Properties() []Property {
	return []Property{{"value", StringValue(n.Value)}}
}

// LiteralBooleanExpression is `true` or `false`.
type LiteralBooleanExpression struct{ Value bool }

func (n LiteralBooleanExpression) Kind() string { return "LiteralBooleanExpression" }
func (n LiteralBooleanExpression) Properties() []Property {
	return []Property{{"value", BoolValue(n.Value)}}
}

// LiteralNullExpression is the `null` literal. It has no properties of its
// own (the value it produces is the Null primitive, not a property).
type LiteralNullExpression struct{}

func (n LiteralNullExpression) Kind() string         { return "LiteralNullExpression" }
func (n LiteralNullExpression) Properties() []Property { return nil }

// AssignmentExpression assigns the result of Expression to Binding.
type AssignmentExpression struct {
	Binding    Node
	Expression Node
}

func (n AssignmentExpression) Kind() string { return "AssignmentExpression" }
func (n AssignmentExpression) Properties() []Property {
	return []Property{
		{"binding", NodeValue{n.Binding}},
		{"expression", NodeValue{n.Expression}},
	}
}

// BinaryExpression applies Operator (e.g. "+", "===") to Left and Right.
type BinaryExpression struct {
	Operator string
	Left     Node
	Right    Node
}

func (n BinaryExpression) Kind() string { return "BinaryExpression" }
func (n BinaryExpression) Properties() []Property {
	return []Property{
		{"operator", StringValue(n.Operator)},
		{"left", NodeValue{n.Left}},
		{"right", NodeValue{n.Right}},
	}
}

// CallExpression invokes Callee with the ordered Arguments.
type CallExpression struct {
	Callee    Node
	Arguments []Node
}

func (n CallExpression) Kind() string { return "CallExpression" }
func (n CallExpression) Properties() []Property {
	return []Property{
		{"callee", NodeValue{n.Callee}},
		{"arguments", nodeList(n.Arguments)},
	}
}

// ----------------------------------------------------------------------------
// small helpers shared by the Properties() implementations above

func optionalNode(n Node) Value {
	if n == nil {
		return MissingValue{}
	}
	return NodeValue{n}
}

func nodeList(nodes []Node) Value {
	items := make([]Value, len(nodes))
	for i, n := range nodes {
		items[i] = NodeValue{n}
	}
	return ListValue{items}
}

func stringList(strs []string) Value {
	items := make([]Value, len(strs))
	for i, s := range strs {
		items[i] = StringValue(s)
	}
	return ListValue{items}
}
