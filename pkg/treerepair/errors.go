package treerepair

// InternalInvariant is raised when the mining/replacement loop observes
// state that should be structurally impossible (an occurrence whose parent
// or child symbol no longer matches the digram it was recorded under). Its
// presence always indicates a bug in this package, not malformed input.
type InternalInvariant struct{ Msg string }

func (e *InternalInvariant) Error() string { return "treerepair: internal invariant violated: " + e.Msg }
