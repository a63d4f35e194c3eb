// Package wire implements the byte-level primitives the codec is built on:
// a VarUInt/VarInt varint pair, a fixed 8-byte little-endian float, raw
// (unprefixed) UTF-8 bytes, and a bounded buffered writer/reader pair over
// arbitrary io.Writer/io.Reader sinks and sources.
package wire

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// DefaultBufferSize is the recommended bound (§5: "recommended 64 KiB")
// for both the writer's accumulation buffer and the reader's bufio window.
const DefaultBufferSize = 64 * 1024

const maxVarIntGroups = 10 // ceil(64/7), the most 7-bit groups a 64-bit value ever needs

// ----------------------------------------------------------------------------
// Writer

// Writer accumulates encoded bytes in a bounded in-memory buffer, flushing
// to sink whenever the buffer reaches its bound. Callers must call Flush
// after the last write to push any remaining buffered bytes out.
type Writer struct {
	sink    io.Writer
	buf     []byte
	bound   int
	written int64
}

// NewWriter wraps sink with the default buffer bound.
func NewWriter(sink io.Writer) *Writer { return NewWriterSize(sink, DefaultBufferSize) }

// NewWriterSize wraps sink with an explicit buffer bound.
func NewWriterSize(sink io.Writer, bound int) *Writer {
	if bound <= 0 {
		bound = DefaultBufferSize
	}
	return &Writer{sink: sink, bound: bound, buf: make([]byte, 0, bound)}
}

// Written returns the total number of bytes handed to the writer so far
// (buffered or already flushed).
func (w *Writer) Written() int64 { return w.written }

// Flush pushes any buffered bytes to sink.
func (w *Writer) Flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	if _, err := w.sink.Write(w.buf); err != nil {
		return err
	}
	w.buf = w.buf[:0]
	return nil
}

func (w *Writer) append(b []byte) error {
	w.written += int64(len(b))
	w.buf = append(w.buf, b...)
	if len(w.buf) >= w.bound {
		return w.Flush()
	}
	return nil
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error { return w.append([]byte{b}) }

// WriteRawBytes writes b verbatim, with no length prefix; callers that
// need a length-prefixed string write a VarUInt length first (§4.1).
func (w *Writer) WriteRawBytes(b []byte) error { return w.append(b) }

// WriteFloat64 writes v as 8 little-endian bytes, bit-exact (NaN payloads
// survive the round trip).
func (w *Writer) WriteFloat64(v float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return w.append(buf[:])
}

// WriteVarUInt writes v 7 bits at a time, least-significant group first,
// with the continuation bit (0x80) set on every group but the last.
func (w *Writer) WriteVarUInt(v uint64) error {
	var buf []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			buf = append(buf, b|0x80)
			continue
		}
		buf = append(buf, b)
		break
	}
	return w.append(buf)
}

// WriteVarInt writes v using two's-complement arithmetic right shifts,
// terminating the group sequence once the remaining value fits entirely
// in the final signed 7-bit group (i.e. is in [-64, 63]).
func (w *Writer) WriteVarInt(v int64) error {
	var buf []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			buf = append(buf, b)
			break
		}
		buf = append(buf, b|0x80)
	}
	return w.append(buf)
}

// ----------------------------------------------------------------------------
// Reader

// Reader reads the same primitives back from a buffered io.Reader source.
type Reader struct {
	src *bufio.Reader
}

// NewReader wraps source with the default buffer bound.
func NewReader(source io.Reader) *Reader { return NewReaderSize(source, DefaultBufferSize) }

// NewReaderSize wraps source with an explicit buffer bound.
func NewReaderSize(source io.Reader, bound int) *Reader {
	if bound <= 0 {
		bound = DefaultBufferSize
	}
	return &Reader{src: bufio.NewReaderSize(source, bound)}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.src.ReadByte()
	if err != nil {
		return 0, &Truncated{Want: "byte"}
	}
	return b, nil
}

// ReadRawBytes reads exactly n raw bytes.
func (r *Reader) ReadRawBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return nil, &Truncated{Want: "raw bytes"}
	}
	return buf, nil
}

// ReadFloat64 reads 8 little-endian bytes and returns their exact bit
// pattern reinterpreted as a float64.
func (r *Reader) ReadFloat64() (float64, error) {
	buf, err := r.ReadRawBytes(8)
	if err != nil {
		return 0, &Truncated{Want: "float64"}
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
}

// ReadVarUInt reads a VarUInt, failing with Truncated if the stream ends
// mid-token or Overflow if more than ceil(64/7) groups arrive.
func (r *Reader) ReadVarUInt() (uint64, error) {
	var result uint64
	for i := 0; i < maxVarIntGroups; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, &Truncated{Want: "varuint"}
		}
		result |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return result, nil
		}
	}
	return 0, &Overflow{}
}

// ReadVarInt reads a VarInt, sign-extending the final group.
func (r *Reader) ReadVarInt() (int64, error) {
	var result int64
	var shift uint
	var last byte
	ok := false

	for i := 0; i < maxVarIntGroups; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, &Truncated{Want: "varint"}
		}
		result |= int64(b&0x7f) << shift
		shift += 7
		last = b
		if b&0x80 == 0 {
			ok = true
			break
		}
	}
	if !ok {
		return 0, &Overflow{}
	}

	if shift < 64 && last&0x40 != 0 {
		result |= -(int64(1) << shift)
	}
	return result, nil
}
