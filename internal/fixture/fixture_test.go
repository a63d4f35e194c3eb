package fixture_test

import (
	"testing"

	"github.com/hmny-labs/jsastcodec/internal/fixture"
	"github.com/hmny-labs/jsastcodec/pkg/ast"
)

func TestParseScriptWithMixedLiterals(t *testing.T) {
	got, err := fixture.Parse(`script x 1 "hi" true false null`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := ast.Script{
		Statements: []ast.Node{
			ast.ExpressionStatement{Expression: ast.IdentifierExpression{Name: "x"}},
			ast.ExpressionStatement{Expression: ast.LiteralNumericExpression{Value: 1}},
			ast.ExpressionStatement{Expression: ast.LiteralStringExpression{Value: "hi"}},
			ast.ExpressionStatement{Expression: ast.LiteralBooleanExpression{Value: true}},
			ast.ExpressionStatement{Expression: ast.LiteralBooleanExpression{Value: false}},
			ast.ExpressionStatement{Expression: ast.LiteralNullExpression{}},
		},
	}

	if !ast.Equal(got, want) {
		t.Fatalf("Parse result mismatch:\n  got:  %#v\n  want: %#v", got, want)
	}
}

func TestParseModuleWithNoStatements(t *testing.T) {
	got, err := fixture.Parse(`module`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !ast.Equal(got, ast.Module{}) {
		t.Fatalf("expected empty Module, got %#v", got)
	}
}

func TestParseRejectsUnknownRootKind(t *testing.T) {
	if _, err := fixture.Parse(`banana x`); err == nil {
		t.Fatalf("expected an error for an unrecognized root kind")
	}
}
