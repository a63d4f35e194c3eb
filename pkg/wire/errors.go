package wire

import "fmt"

// Truncated is raised when a read consumes the underlying stream before a
// token (varint, float, or a requested run of raw bytes) finishes.
type Truncated struct{ Want string }

func (e *Truncated) Error() string {
	return fmt.Sprintf("wire: stream ended mid-%s", e.Want)
}

// Overflow is raised when a VarUInt/VarInt occupies more bytes than a
// 64-bit result can ever need (ceil(64/7) = 10 groups).
type Overflow struct{}

func (e *Overflow) Error() string { return "wire: varint exceeded 64-bit range" }
