package codec_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/hmny-labs/jsastcodec/internal/fixture"
	"github.com/hmny-labs/jsastcodec/pkg/ast"
	"github.com/hmny-labs/jsastcodec/pkg/codec"
	"github.com/hmny-labs/jsastcodec/pkg/wire"
)

// parseFixture is a thin t.Fatal-on-error wrapper around fixture.Parse for
// the test cases below whose scripts fit its literal-statement notation.
func parseFixture(t *testing.T, src string) ast.Node {
	t.Helper()
	root, err := fixture.Parse(src)
	if err != nil {
		t.Fatalf("fixture.Parse(%q): %v", src, err)
	}
	return root
}

func roundTrip(t *testing.T, root ast.Node) ast.Node {
	t.Helper()

	var buf bytes.Buffer
	if _, err := codec.Encode(root, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := codec.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !ast.Equal(root, decoded) {
		t.Fatalf("round trip mismatch:\n  input:   %#v\n  decoded: %#v", root, decoded)
	}
	return decoded
}

func TestEmptyScript(t *testing.T) {
	roundTrip(t, parseFixture(t, `script`))
}

func TestLiteralOne(t *testing.T) {
	roundTrip(t, parseFixture(t, `script 1`))
}

func TestRepeatedIdentifier(t *testing.T) {
	src := "script " + strings.Repeat("x ", 10)
	roundTrip(t, parseFixture(t, src))
}

func TestStatementListOrderPreserved(t *testing.T) {
	root := parseFixture(t, `script a b c`)
	decoded := roundTrip(t, root)

	script, ok := decoded.(ast.Script)
	if !ok {
		t.Fatalf("decoded root is %T, want ast.Script", decoded)
	}
	if len(script.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(script.Statements))
	}
	for i, want := range []string{"a", "b", "c"} {
		stmt := script.Statements[i].(ast.ExpressionStatement)
		ident := stmt.Expression.(ast.IdentifierExpression)
		if ident.Name != want {
			t.Fatalf("statement %d: name = %q, want %q", i, ident.Name, want)
		}
	}
}

func TestNaNPayloadPreserved(t *testing.T) {
	nan := math.Float64frombits(0x7ff8000000000001)
	root := ast.Script{
		Statements: []ast.Node{
			ast.ExpressionStatement{Expression: ast.LiteralNumericExpression{Value: nan}},
		},
	}
	decoded := roundTrip(t, root)

	script := decoded.(ast.Script)
	stmt := script.Statements[0].(ast.ExpressionStatement)
	lit := stmt.Expression.(ast.LiteralNumericExpression)
	if math.Float64bits(lit.Value) != 0x7ff8000000000001 {
		t.Fatalf("NaN payload not preserved: got bits %x", math.Float64bits(lit.Value))
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	root := parseFixture(t, `script x x y`)

	var first, second bytes.Buffer
	if _, err := codec.Encode(root, &first); err != nil {
		t.Fatalf("Encode (first): %v", err)
	}
	if _, err := codec.Encode(root, &second); err != nil {
		t.Fatalf("Encode (second): %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("encoding the same AST twice produced different bytes")
	}
}

func TestDecodeVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	grammarJSON := []byte(`{"Script":["directives","statements"]}`)
	w.WriteVarUInt(uint64(len(grammarJSON)))
	w.WriteRawBytes(grammarJSON)
	w.WriteVarUInt(0) // P
	w.WriteVarUInt(7) // built-in count: wrong on purpose
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	_, err := codec.Decode(&buf)
	var mismatch *codec.VersionMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected VersionMismatch, got %v", err)
	}
}

func TestEncodeRejectsNonRootKind(t *testing.T) {
	_, err := codec.Encode(ast.IdentifierExpression{Name: "x"}, &bytes.Buffer{})
	var unexpected *codec.UnexpectedRoot
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedRoot, got %v", err)
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	grammarJSON := []byte(`{"Script":[]}`)
	w.WriteVarUInt(uint64(len(grammarJSON)))
	w.WriteRawBytes(grammarJSON)
	w.WriteVarUInt(0) // P
	w.WriteVarUInt(6) // built-in count
	w.WriteVarUInt(0) // rank histogram: 0 meta-rule buckets
	w.WriteVarUInt(0) // string pool size
	w.WriteVarUInt(0) // numeric pool size
	// Start tree: a single tag, chosen well outside the 7-wide code space
	// this header describes (0 params + 6 built-ins + 0 meta-rules + 1
	// grammar kind + 0 strings + 0 numbers).
	w.WriteVarUInt(999)
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	_, err := codec.Decode(&buf)
	var unknown *codec.UnknownTag
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTag, got %v", err)
	}
}
