package codec

import "fmt"

// UnknownKind is raised when the encoder meets an AST node whose kind was
// never recovered into the grammar.
type UnknownKind struct{ Kind string }

func (e *UnknownKind) Error() string {
	return fmt.Sprintf("codec: kind %q absent from recovered grammar", e.Kind)
}

// VersionMismatch is raised when the header's built-in count isn't the 6
// this decoder knows about.
type VersionMismatch struct{ Got int }

func (e *VersionMismatch) Error() string {
	return fmt.Sprintf("codec: built-in count %d, want 6", e.Got)
}

// UnknownTag is raised when a body tag falls outside every known code
// partition.
type UnknownTag struct{ Tag uint64 }

func (e *UnknownTag) Error() string {
	return fmt.Sprintf("codec: tag %d outside all known partitions", e.Tag)
}

// UnexpectedRoot is raised when the fully replayed start tree isn't a
// Script or Module.
type UnexpectedRoot struct{ Kind string }

func (e *UnexpectedRoot) Error() string {
	return fmt.Sprintf("codec: decoded root has kind %q, want Script or Module", e.Kind)
}

// InternalInvariant mirrors the kind treerepair/codespace raise, for
// invariant violations detected in this package directly (a parameter or
// meta-rule reference outside what replay has bound, a grammar entry
// missing at replay time).
type InternalInvariant struct{ Msg string }

func (e *InternalInvariant) Error() string { return "codec: internal invariant violated: " + e.Msg }
