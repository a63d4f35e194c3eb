package ast

import "fmt"

// UnknownKind is returned by Construct when kind names none of the node
// kinds this package defines.
type UnknownKind struct{ Kind string }

func (e *UnknownKind) Error() string { return fmt.Sprintf("ast: unknown kind %q", e.Kind) }

// MalformedProperty is returned by Construct when a named property holds a
// Value of the wrong shape for kind (e.g. a string where a node list was
// expected).
type MalformedProperty struct {
	Kind, Property string
}

func (e *MalformedProperty) Error() string {
	return fmt.Sprintf("ast: %s.%s has the wrong value shape", e.Kind, e.Property)
}

// Construct builds the Node named by kind from its property map, the
// inverse of Kind()/Properties(). This is the "constructor by kind name"
// the decoder's AST node construction contract requires: it is given a
// kind tag and an unordered property map and must produce the
// corresponding typed node.
func Construct(kind string, props map[string]Value) (Node, error) {
	switch kind {
	case "Script":
		directives, err := stringListOf(kind, "directives", props)
		if err != nil {
			return nil, err
		}
		statements, err := nodeListOf(kind, "statements", props)
		if err != nil {
			return nil, err
		}
		return Script{Directives: directives, Statements: statements}, nil

	case "Module":
		directives, err := stringListOf(kind, "directives", props)
		if err != nil {
			return nil, err
		}
		statements, err := nodeListOf(kind, "statements", props)
		if err != nil {
			return nil, err
		}
		return Module{Directives: directives, Statements: statements}, nil

	case "ExpressionStatement":
		expr, err := nodeOf(kind, "expression", props)
		if err != nil {
			return nil, err
		}
		return ExpressionStatement{Expression: expr}, nil

	case "VariableDeclarator":
		name, err := stringOf(kind, "name", props)
		if err != nil {
			return nil, err
		}
		init, err := optionalNodeOf(kind, "init", props)
		if err != nil {
			return nil, err
		}
		return VariableDeclarator{Name: name, Init: init}, nil

	case "VariableDeclarationStatement":
		declKind, err := stringOf(kind, "kind", props)
		if err != nil {
			return nil, err
		}
		declarators, err := nodeListOf(kind, "declarators", props)
		if err != nil {
			return nil, err
		}
		return VariableDeclarationStatement{DeclKind: VariableDeclarationKind(declKind), Declarators: declarators}, nil

	case "BlockStatement":
		statements, err := nodeListOf(kind, "statements", props)
		if err != nil {
			return nil, err
		}
		return BlockStatement{Statements: statements}, nil

	case "IfStatement":
		test, err := nodeOf(kind, "test", props)
		if err != nil {
			return nil, err
		}
		consequent, err := nodeOf(kind, "consequent", props)
		if err != nil {
			return nil, err
		}
		alternate, err := optionalNodeOf(kind, "alternate", props)
		if err != nil {
			return nil, err
		}
		return IfStatement{Test: test, Consequent: consequent, Alternate: alternate}, nil

	case "WhileStatement":
		test, err := nodeOf(kind, "test", props)
		if err != nil {
			return nil, err
		}
		body, err := nodeOf(kind, "body", props)
		if err != nil {
			return nil, err
		}
		return WhileStatement{Test: test, Body: body}, nil

	case "ReturnStatement":
		expr, err := optionalNodeOf(kind, "expression", props)
		if err != nil {
			return nil, err
		}
		return ReturnStatement{Expression: expr}, nil

	case "FunctionDeclaration":
		name, err := stringOf(kind, "name", props)
		if err != nil {
			return nil, err
		}
		params, err := stringListOf(kind, "params", props)
		if err != nil {
			return nil, err
		}
		body, err := nodeOf(kind, "body", props)
		if err != nil {
			return nil, err
		}
		return FunctionDeclaration{Name: name, Params: params, Body: body}, nil

	case "IdentifierExpression":
		name, err := stringOf(kind, "name", props)
		if err != nil {
			return nil, err
		}
		return IdentifierExpression{Name: name}, nil

	case "LiteralNumericExpression":
		v, err := numberOf(kind, "value", props)
		if err != nil {
			return nil, err
		}
		return LiteralNumericExpression{Value: v}, nil

	case "LiteralStringExpression":
		v, err := stringOf(kind, "value", props)
		if err != nil {
			return nil, err
		}
		return LiteralStringExpression{Value: v}, nil

	case "LiteralBooleanExpression":
		v, err := boolOf(kind, "value", props)
		if err != nil {
			return nil, err
		}
		return LiteralBooleanExpression{Value: v}, nil

	case "LiteralNullExpression":
		return LiteralNullExpression{}, nil

	case "AssignmentExpression":
		binding, err := nodeOf(kind, "binding", props)
		if err != nil {
			return nil, err
		}
		expr, err := nodeOf(kind, "expression", props)
		if err != nil {
			return nil, err
		}
		return AssignmentExpression{Binding: binding, Expression: expr}, nil

	case "BinaryExpression":
		op, err := stringOf(kind, "operator", props)
		if err != nil {
			return nil, err
		}
		left, err := nodeOf(kind, "left", props)
		if err != nil {
			return nil, err
		}
		right, err := nodeOf(kind, "right", props)
		if err != nil {
			return nil, err
		}
		return BinaryExpression{Operator: op, Left: left, Right: right}, nil

	case "CallExpression":
		callee, err := nodeOf(kind, "callee", props)
		if err != nil {
			return nil, err
		}
		args, err := nodeListOf(kind, "arguments", props)
		if err != nil {
			return nil, err
		}
		return CallExpression{Callee: callee, Arguments: args}, nil

	default:
		return nil, &UnknownKind{Kind: kind}
	}
}

func nodeOf(kind, name string, props map[string]Value) (Node, error) {
	v, ok := props[name].(NodeValue)
	if !ok {
		return nil, &MalformedProperty{Kind: kind, Property: name}
	}
	return v.Node, nil
}

func optionalNodeOf(kind, name string, props map[string]Value) (Node, error) {
	switch v := props[name].(type) {
	case NodeValue:
		return v.Node, nil
	case MissingValue:
		return nil, nil
	default:
		return nil, &MalformedProperty{Kind: kind, Property: name}
	}
}

func stringOf(kind, name string, props map[string]Value) (string, error) {
	v, ok := props[name].(StringValue)
	if !ok {
		return "", &MalformedProperty{Kind: kind, Property: name}
	}
	return string(v), nil
}

func numberOf(kind, name string, props map[string]Value) (float64, error) {
	v, ok := props[name].(NumberValue)
	if !ok {
		return 0, &MalformedProperty{Kind: kind, Property: name}
	}
	return float64(v), nil
}

func boolOf(kind, name string, props map[string]Value) (bool, error) {
	v, ok := props[name].(BoolValue)
	if !ok {
		return false, &MalformedProperty{Kind: kind, Property: name}
	}
	return bool(v), nil
}

func nodeListOf(kind, name string, props map[string]Value) ([]Node, error) {
	v, ok := props[name].(ListValue)
	if !ok {
		return nil, &MalformedProperty{Kind: kind, Property: name}
	}
	nodes := make([]Node, len(v.Items))
	for i, item := range v.Items {
		nv, ok := item.(NodeValue)
		if !ok {
			return nil, &MalformedProperty{Kind: kind, Property: name}
		}
		nodes[i] = nv.Node
	}
	return nodes, nil
}

func stringListOf(kind, name string, props map[string]Value) ([]string, error) {
	v, ok := props[name].(ListValue)
	if !ok {
		return nil, &MalformedProperty{Kind: kind, Property: name}
	}
	strs := make([]string, len(v.Items))
	for i, item := range v.Items {
		sv, ok := item.(StringValue)
		if !ok {
			return nil, &MalformedProperty{Kind: kind, Property: name}
		}
		strs[i] = string(sv)
	}
	return strs, nil
}
