package wire_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/hmny-labs/jsastcodec/pkg/wire"
)

func roundTripVarUInt(t *testing.T, v uint64) {
	t.Helper()

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	if err := w.WriteVarUInt(v); err != nil {
		t.Fatalf("WriteVarUInt(%d): %v", v, err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := wire.NewReader(&buf)
	got, err := r.ReadVarUInt()
	if err != nil {
		t.Fatalf("ReadVarUInt(%d): %v", v, err)
	}
	if got != v {
		t.Fatalf("round trip of %d produced %d", v, got)
	}

	wantLen := 1
	if v > 0 {
		wantLen = (bits64(v) + 6) / 7
		if wantLen < 1 {
			wantLen = 1
		}
	}
	if w.Written() != int64(wantLen) {
		t.Fatalf("VarUInt(%d) encoded to %d bytes, want %d", v, w.Written(), wantLen)
	}
}

func bits64(v uint64) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

func TestVarUIntRoundTrip(t *testing.T) {
	cases := []uint64{
		0, 1, 63, 64, 127, 128, 300,
		1 << 20, 1<<63 - 1, math.MaxUint64,
	}
	for _, v := range cases {
		roundTripVarUInt(t, v)
	}
}

func TestVarIntRoundTrip(t *testing.T) {
	cases := []int64{
		0, 1, -1, 63, -64, 64, -65, 1000, -1000,
		math.MaxInt64, math.MinInt64,
	}
	for _, v := range cases {
		var buf bytes.Buffer
		w := wire.NewWriter(&buf)
		if err := w.WriteVarInt(v); err != nil {
			t.Fatalf("WriteVarInt(%d): %v", v, err)
		}
		w.Flush()

		r := wire.NewReader(&buf)
		got, err := r.ReadVarInt()
		if err != nil {
			t.Fatalf("ReadVarInt(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip of %d produced %d", v, got)
		}
	}
}

func TestFloat64RoundTripPreservesNaNPayload(t *testing.T) {
	nan := math.Float64frombits(0x7ff8000000000001)

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	if err := w.WriteFloat64(nan); err != nil {
		t.Fatalf("WriteFloat64: %v", err)
	}
	w.Flush()

	r := wire.NewReader(&buf)
	got, err := r.ReadFloat64()
	if err != nil {
		t.Fatalf("ReadFloat64: %v", err)
	}
	if math.Float64bits(got) != 0x7ff8000000000001 {
		t.Fatalf("NaN payload not preserved: got bits %x", math.Float64bits(got))
	}
}

func TestReadVarUIntTruncated(t *testing.T) {
	// A lone continuation byte with nothing after it.
	r := wire.NewReader(bytes.NewReader([]byte{0x80}))
	_, err := r.ReadVarUInt()

	var truncated *wire.Truncated
	if !errors.As(err, &truncated) {
		t.Fatalf("expected Truncated, got %v", err)
	}
}

func TestReadVarUIntOverflow(t *testing.T) {
	// 11 bytes, all with the continuation bit set: more than ceil(64/7).
	raw := bytes.Repeat([]byte{0x80}, 11)
	r := wire.NewReader(bytes.NewReader(raw))
	_, err := r.ReadVarUInt()

	var overflow *wire.Overflow
	if !errors.As(err, &overflow) {
		t.Fatalf("expected Overflow, got %v", err)
	}
}

func TestRawBytesAreNotLengthPrefixed(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.WriteRawBytes([]byte("hello"))
	w.Flush()

	if buf.String() != "hello" {
		t.Fatalf("expected raw bytes with no framing, got %q", buf.String())
	}
}
