package grammar

import "fmt"

// InconsistentShape is raised when two instances of the same AST kind
// expose different property name sets, violating the per-kind invariant
// every grammar recovery run depends on.
type InconsistentShape struct {
	Kind     string
	Expected []string
	Actual   []string
}

func (e *InconsistentShape) Error() string {
	return fmt.Sprintf("grammar: inconsistent shape for kind %q: expected properties %v, got %v",
		e.Kind, e.Expected, e.Actual)
}

// UnsupportedPrimitive is raised when a property value isn't one of the
// supported primitive classes (ast.Value's closed union).
type UnsupportedPrimitive struct{ Value any }

func (e *UnsupportedPrimitive) Error() string {
	return fmt.Sprintf("grammar: unsupported primitive value of type %T", e.Value)
}
