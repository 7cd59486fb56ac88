// Copyright 2025 Certen Protocol
//
// Minimal protobuf wire writer for the canonical-vote encoding. CometBFT's
// own gogoproto-generated Marshal methods exist on the equivalent proto
// types, but they serialize a non-nullable stdtime Timestamp field
// unconditionally (by design, to avoid timestamp-omission ambiguity in
// mainline consensus). This module's fixtures instead follow the
// omit-if-absent / omit-if-zero convention spec'd for the vote encoder
// under study, so the wire bytes are produced by hand here field by field,
// using the real proto schema's field numbers and wire types.
package canonical

import "encoding/binary"

type wireType byte

const (
	wireVarint wireType = 0
	wireFixed64 wireType = 1
	wireBytes   wireType = 2
)

type protoWriter struct {
	buf []byte
}

func (w *protoWriter) tag(field int, wt wireType) {
	w.varint(uint64(field)<<3 | uint64(wt))
}

func (w *protoWriter) varint(v uint64) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// VarintField writes a varint-wire scalar field, omitted when v == 0
// (proto3 default-value omission).
func (w *protoWriter) VarintField(field int, v uint64) {
	if v == 0 {
		return
	}
	w.tag(field, wireVarint)
	w.varint(v)
}

// SFixed64Field writes an 8-byte little-endian fixed64 field. Per the
// vote encoder's rules this field is written even when zero (height),
// unless the caller explicitly omits it (round, via VarintField-style
// zero-check performed by the caller before invoking this).
func (w *protoWriter) SFixed64Field(field int, v int64) {
	w.tag(field, wireFixed64)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	w.buf = append(w.buf, b[:]...)
}

// SFixed64FieldOmitZero writes an 8-byte fixed64 field, omitted when v == 0.
func (w *protoWriter) SFixed64FieldOmitZero(field int, v int64) {
	if v == 0 {
		return
	}
	w.SFixed64Field(field, v)
}

// BytesField writes a length-delimited bytes/string field, omitted when empty.
func (w *protoWriter) BytesField(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	w.tag(field, wireBytes)
	w.varint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// StringField writes a length-delimited string field, omitted when empty.
func (w *protoWriter) StringField(field int, s string) {
	if s == "" {
		return
	}
	w.BytesField(field, []byte(s))
}

// EmbeddedField writes a length-delimited embedded-message field from
// already-encoded submessage bytes. sub may be empty (an embedded message
// with no set fields still has presence, e.g. a part-set header of all
// zero values): callers pass present=false to omit the field entirely.
func (w *protoWriter) EmbeddedField(field int, sub []byte, present bool) {
	if !present {
		return
	}
	w.tag(field, wireBytes)
	w.varint(uint64(len(sub)))
	w.buf = append(w.buf, sub...)
}

func (w *protoWriter) Bytes() []byte { return w.buf }
