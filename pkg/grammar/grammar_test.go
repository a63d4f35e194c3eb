package grammar_test

import (
	"errors"
	"testing"

	"github.com/hmny-labs/jsastcodec/internal/fixture"
	"github.com/hmny-labs/jsastcodec/pkg/ast"
	"github.com/hmny-labs/jsastcodec/pkg/grammar"
)

func TestRecoverEmptyScript(t *testing.T) {
	root := ast.Script{}

	schema, err := grammar.Recover(root)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}

	if schema.Len() != 1 {
		t.Fatalf("expected 1 kind, got %d: %v", schema.Len(), schema.Kinds())
	}

	props, ok := schema.Properties("Script")
	if !ok {
		t.Fatalf("Script kind missing from schema")
	}
	if want := []string{"directives", "statements"}; !equalStrings(props, want) {
		t.Fatalf("Script properties = %v, want %v", props, want)
	}
}

func TestRecoverNestedKinds(t *testing.T) {
	root, err := fixture.Parse(`script x 1`)
	if err != nil {
		t.Fatalf("fixture.Parse: %v", err)
	}

	schema, err := grammar.Recover(root)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}

	for _, kind := range []string{"Script", "ExpressionStatement", "IdentifierExpression", "LiteralNumericExpression"} {
		if _, ok := schema.Properties(kind); !ok {
			t.Errorf("expected kind %q in recovered schema, got kinds %v", kind, schema.Kinds())
		}
	}
}

// inconsistentKind reports property set {a} for variant 0 and {b} for any
// other variant, so two instances with different variants force
// InconsistentShape.
type inconsistentKind struct{ variant int }

func (n inconsistentKind) Kind() string { return "Weird" }
func (n inconsistentKind) Properties() []ast.Property {
	if n.variant == 0 {
		return []ast.Property{{Name: "a", Value: ast.NullValue{}}}
	}
	return []ast.Property{{Name: "b", Value: ast.NullValue{}}}
}

func TestRecoverInconsistentShape(t *testing.T) {
	root := ast.Script{
		Statements: []ast.Node{
			ast.ExpressionStatement{Expression: inconsistentKind{variant: 0}},
			ast.ExpressionStatement{Expression: inconsistentKind{variant: 1}},
		},
	}

	_, err := grammar.Recover(root)
	var shapeErr *grammar.InconsistentShape
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected InconsistentShape, got %v", err)
	}
	if shapeErr.Kind != "Weird" {
		t.Fatalf("expected kind 'Weird', got %q", shapeErr.Kind)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
