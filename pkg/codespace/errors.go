package codespace

import "fmt"

// InternalInvariant is raised when pool finalization observes a duplicate
// key after interning, which should be structurally impossible (Intern
// always dedups by construction), and when Code or Decode is handed a
// symbol or code outside this code space's own bookkeeping. It surfaces
// such bugs loudly rather than silently dropping or re-merging anything.
type InternalInvariant struct{ Msg string }

func (e *InternalInvariant) Error() string {
	return fmt.Sprintf("codespace: internal invariant violated: %s", e.Msg)
}
