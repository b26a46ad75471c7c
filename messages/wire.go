// Package messages holds the decoded in-memory form of every message
// type the registry knows how to frame, plus the per-type processor
// capability interface the registry's dispatch thunk calls into.
//
// Payloads are encoded per spec.md §6.2: a binary, length-delimited,
// field-tagged scheme compatible with the Protocol Buffers wire
// format. There is no generated .proto code here — protoc is not
// available in this environment — so each type hand-codes its field
// layout against google.golang.org/protobuf/encoding/protowire's raw
// varint/tag/length-delimited primitives (see SPEC_FULL.md §B for the
// full justification).
package messages

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// appendString writes a length-delimited string field.
func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, []byte(s))
}

// appendBytes writes a length-delimited bytes field.
func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendVarint writes a varint field, skipping the zero value (proto3
// implicit-presence semantics, matching the wire format the spec asks
// implementations to round-trip bit-exactly for non-zero values only).
func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	return appendVarint(b, num, 1)
}

// fieldReader walks a length-delimited message payload one field at a
// time, mirroring the decode loop every hand-written Decode method
// below shares.
type fieldReader struct {
	buf []byte
}

func (r *fieldReader) next() (num protowire.Number, typ protowire.Type, ok bool) {
	if len(r.buf) == 0 {
		return 0, 0, false
	}
	num, typ, n := protowire.ConsumeTag(r.buf)
	if n < 0 {
		return 0, 0, false
	}
	r.buf = r.buf[n:]
	return num, typ, true
}

func (r *fieldReader) varint() (uint64, error) {
	v, n := protowire.ConsumeVarint(r.buf)
	if n < 0 {
		return 0, fmt.Errorf("messages: malformed varint")
	}
	r.buf = r.buf[n:]
	return v, nil
}

func (r *fieldReader) bytes() ([]byte, error) {
	v, n := protowire.ConsumeBytes(r.buf)
	if n < 0 {
		return nil, fmt.Errorf("messages: malformed length-delimited field")
	}
	r.buf = r.buf[n:]
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (r *fieldReader) skip(typ protowire.Type) error {
	n := protowire.ConsumeFieldValue(0, typ, r.buf)
	if n < 0 {
		return fmt.Errorf("messages: malformed field")
	}
	r.buf = r.buf[n:]
	return nil
}
