// Package fixture provides a small textual notation for building ast.Node
// trees in tests, so codec test cases can be written as one-line fixtures
// instead of deeply nested struct literals.
package fixture

import (
	"fmt"
	"strconv"
	"strings"

	pc "github.com/prataprc/goparsec"

	domast "github.com/hmny-labs/jsastcodec/pkg/ast"
)

var grammarAST = pc.NewAST("fixture", 64)

var (
	pIdent  = pc.Token(`[A-Za-z_$][0-9A-Za-z_$]*`, "IDENT")
	pString = pc.Token(`"(?:\\.|[^"\\])*"`, "STRING")
	pTrue   = pc.Atom("true", "TRUE")
	pFalse  = pc.Atom("false", "FALSE")
	pNull   = pc.Atom("null", "NULL")

	// Numeric literals before identifiers: see the teacher's own ordering
	// note in pkg/jack/parsing.go about Float/Int needing to run first.
	pLiteral = grammarAST.OrdChoice("literal", nil, pc.Float(), pc.Int(), pString, pTrue, pFalse, pNull, pIdent)

	pScriptKind = pc.Atom("script", "SCRIPT")
	pModuleKind = pc.Atom("module", "MODULE")
	pRootKind   = grammarAST.OrdChoice("root_kind", nil, pScriptKind, pModuleKind)

	pRoot = grammarAST.And("root", nil, pRootKind, grammarAST.Kleene("statements", nil, pLiteral))
)

// Parse builds a Script or Module from src, a space-separated sequence
// starting with the literal "script" or "module" followed by zero or more
// bare expression statements: identifiers, numbers, quoted strings, true,
// false, or null. Each one becomes an ExpressionStatement wrapping the
// matching literal expression node.
//
// Example: Parse(`script x 1 "s" true null`)
func Parse(src string) (domast.Node, error) {
	root, ok := grammarAST.Parsewith(pRoot, pc.NewScanner([]byte(src)))
	if !ok || root == nil {
		return nil, fmt.Errorf("fixture: could not parse %q", src)
	}

	children := root.GetChildren()
	if len(children) == 0 {
		return nil, fmt.Errorf("fixture: malformed root for %q", src)
	}

	kindNode := children[0]
	var statements []domast.Node
	if len(children) > 1 {
		for _, lit := range children[1].GetChildren() {
			n, err := literalStatement(lit)
			if err != nil {
				return nil, err
			}
			statements = append(statements, n)
		}
	}

	switch kindNode.GetValue() {
	case "script":
		return domast.Script{Statements: statements}, nil
	case "module":
		return domast.Module{Statements: statements}, nil
	default:
		return nil, fmt.Errorf("fixture: unknown root kind %q", kindNode.GetValue())
	}
}

func literalStatement(lit pc.Queryable) (domast.Node, error) {
	expr, err := literalExpression(lit)
	if err != nil {
		return nil, err
	}
	return domast.ExpressionStatement{Expression: expr}, nil
}

func literalExpression(lit pc.Queryable) (domast.Node, error) {
	name := lit.GetName()
	value := lit.GetValue()

	switch {
	case name == "TRUE":
		return domast.LiteralBooleanExpression{Value: true}, nil
	case name == "FALSE":
		return domast.LiteralBooleanExpression{Value: false}, nil
	case name == "NULL":
		return domast.LiteralNullExpression{}, nil
	case name == "STRING":
		return domast.LiteralStringExpression{Value: strings.Trim(value, `"`)}, nil
	case name == "IDENT":
		return domast.IdentifierExpression{Name: value}, nil
	default:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("fixture: %q is not a number literal (%s): %w", value, name, err)
		}
		return domast.LiteralNumericExpression{Value: n}, nil
	}
}
