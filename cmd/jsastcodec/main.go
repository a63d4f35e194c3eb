package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"github.com/hmny-labs/jsastcodec/pkg/ast"
	"github.com/hmny-labs/jsastcodec/pkg/codec"
	"github.com/hmny-labs/jsastcodec/pkg/grammar"
)

var Description = strings.ReplaceAll(`
jsastcodec encodes and decodes JavaScript ASTs to and from a compact binary
representation that mines repeated tree structure before serializing it.
The AST itself is read from and written as JSON, one node per the host
AST library's kind/property shape.
`, "\n", " ")

var JsAstCodec = cli.New(Description).
	WithArg(cli.NewArg("command", "One of: encode, decode, inspect")).
	WithArg(cli.NewArg("input", "The input file (JSON for encode, binary for decode/inspect)")).
	WithArg(cli.NewArg("output", "The output file (binary for encode, JSON for decode)").
		AsOptional().WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 2 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	command, input := args[0], args[1]
	switch command {
	case "encode":
		if len(args) < 3 {
			fmt.Printf("ERROR: 'encode' requires an output path\n")
			return -1
		}
		return runEncode(input, args[2])
	case "decode":
		if len(args) < 3 {
			fmt.Printf("ERROR: 'decode' requires an output path\n")
			return -1
		}
		return runDecode(input, args[2])
	case "inspect":
		return runInspect(input)
	default:
		fmt.Printf("ERROR: Unknown command %q, use --help\n", command)
		return -1
	}
}

func runEncode(inputPath, outputPath string) int {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}

	root, err := decodeJSONNode(content)
	if err != nil {
		fmt.Printf("ERROR: Unable to parse input AST: %s\n", err)
		return -1
	}

	output, err := os.Create(outputPath)
	if err != nil {
		fmt.Printf("ERROR: Unable to open output file: %s\n", err)
		return -1
	}
	defer output.Close()

	written, err := codec.Encode(root, output)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'encode' pass: %s\n", err)
		return -1
	}

	fmt.Printf("Wrote %d bytes to %s\n", written, outputPath)
	return 0
}

func runDecode(inputPath, outputPath string) int {
	input, err := os.Open(inputPath)
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}
	defer input.Close()

	root, err := codec.Decode(input)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'decode' pass: %s\n", err)
		return -1
	}

	encoded, err := json.MarshalIndent(encodeJSONNode(root), "", "  ")
	if err != nil {
		fmt.Printf("ERROR: Unable to marshal decoded AST: %s\n", err)
		return -1
	}

	if err := os.WriteFile(outputPath, encoded, 0644); err != nil {
		fmt.Printf("ERROR: Unable to write output file: %s\n", err)
		return -1
	}
	return 0
}

func runInspect(inputPath string) int {
	input, err := os.Open(inputPath)
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}
	defer input.Close()

	root, err := codec.Decode(input)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'decode' pass: %s\n", err)
		return -1
	}

	schema, err := grammar.Recover(root)
	if err != nil {
		fmt.Printf("ERROR: Unable to recover grammar: %s\n", err)
		return -1
	}

	fmt.Printf("root kind: %s\n", root.Kind())
	fmt.Printf("recovered grammar (%d kinds):\n", schema.Len())
	for _, kind := range schema.Kinds() {
		props, _ := schema.Properties(kind)
		fmt.Printf("  %s: %v\n", kind, props)
	}
	return 0
}

func main() { os.Exit(JsAstCodec.Run(os.Args, os.Stdout)) }

// jsonNode/decodeJSONNode/encodeJSONNode bridge the typed ast.Node tree to
// a plain JSON document, one {"kind": ..., properties...} object per node,
// so the CLI's input/output format needs no bespoke grammar of its own.
type jsonNode map[string]any

func decodeJSONNode(data []byte) (ast.Node, error) {
	var raw jsonNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return decodeJSONValue(raw).(ast.NodeValue).Node, nil
}

func decodeJSONValue(raw any) ast.Value {
	switch v := raw.(type) {
	case nil:
		return ast.NullValue{}
	case bool:
		return ast.BoolValue(v)
	case float64:
		return ast.NumberValue(v)
	case string:
		return ast.StringValue(v)
	case []any:
		items := make([]ast.Value, len(v))
		for i, item := range v {
			items[i] = decodeJSONValue(item)
		}
		return ast.ListValue{Items: items}
	case map[string]any:
		kind, _ := v["kind"].(string)
		props := make(map[string]ast.Value, len(v))
		for name, value := range v {
			if name == "kind" {
				continue
			}
			props[name] = decodeJSONValue(value)
		}
		n, err := ast.Construct(kind, props)
		if err != nil {
			return ast.NullValue{}
		}
		return ast.NodeValue{Node: n}
	default:
		return ast.NullValue{}
	}
}

func encodeJSONNode(n ast.Node) jsonNode {
	out := jsonNode{"kind": n.Kind()}
	for name, v := range ast.PropertyMap(n) {
		out[name] = encodeJSONValue(v)
	}
	return out
}

func encodeJSONValue(v ast.Value) any {
	switch val := v.(type) {
	case ast.NullValue:
		return nil
	case ast.MissingValue:
		return nil
	case ast.BoolValue:
		return bool(val)
	case ast.NumberValue:
		return float64(val)
	case ast.StringValue:
		return string(val)
	case ast.NodeValue:
		return encodeJSONNode(val.Node)
	case ast.ListValue:
		items := make([]any, len(val.Items))
		for i, item := range val.Items {
			items[i] = encodeJSONValue(item)
		}
		return items
	default:
		return nil
	}
}
