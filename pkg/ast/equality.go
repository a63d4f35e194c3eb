package ast

import "math"

// Equal reports whether a and b are structurally identical: same kind,
// same property names and values, same list contents, and bit-identical
// doubles (so a NaN payload must match exactly, not just "is NaN").
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	pa, pb := PropertyMap(a), PropertyMap(b)
	if len(pa) != len(pb) {
		return false
	}

	for name, va := range pa {
		vb, ok := pb[name]
		if !ok || !valueEqual(va, vb) {
			return false
		}
	}

	return true
}

func valueEqual(a, b Value) bool {
	switch av := a.(type) {
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case MissingValue:
		_, ok := b.(MissingValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && math.Float64bits(float64(av)) == math.Float64bits(float64(bv))
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av == bv
	case NodeValue:
		bv, ok := b.(NodeValue)
		return ok && Equal(av.Node, bv.Node)
	case ListValue:
		bv, ok := b.(ListValue)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !valueEqual(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
