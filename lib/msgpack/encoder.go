// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package msgpack

import (
	"math"

	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// Encoder writes Values to a MessagePack byte stream. Not safe for
// concurrent use; one Encoder belongs to one encode call (or a
// sequence of calls against the same backing Writer).
type Encoder struct {
	w *buffer.Writer
}

// NewEncoder returns an Encoder backed by a fresh Writer.
func NewEncoder() *Encoder {
	return &Encoder{w: buffer.NewWriter(256)}
}

// Encode serializes v and returns the MessagePack bytes.
func Encode(v value.Value) ([]byte, error) {
	e := NewEncoder()
	if err := e.WriteAny(v); err != nil {
		return nil, err
	}
	return e.w.Flush(), nil
}

// WriteAny dispatches on v's Kind, per spec §4.2's value-dispatch table.
func (e *Encoder) WriteAny(v value.Value) error {
	switch v.Kind {
	case value.Null:
		e.w.U8(hNil)
	case value.Bool:
		if v.B {
			e.w.U8(hTrue)
		} else {
			e.w.U8(hFalse)
		}
	case value.Int:
		e.encodeSignedInt(v.I)
	case value.UInt:
		e.encodeUnsignedInt(v.U)
	case value.BigInt:
		// MessagePack has no bignum type; values that fit are
		// narrowed, values that don't are out of the format's
		// supported subset (spec §8's round-trip property is
		// scoped to "the supported subset of C").
		if v.Z.IsInt64() {
			e.encodeSignedInt(v.Z.Int64())
		} else if v.Z.IsUint64() {
			e.encodeUnsignedInt(v.Z.Uint64())
		} else {
			return wireerr.New(wireerr.InvalidSize, "bigint exceeds 64 bits, unsupported by MessagePack")
		}
	case value.Float32:
		e.encodeFloat32(v.F32)
	case value.Float64:
		e.encodeFloat(v.F64)
	case value.Bytes:
		e.encodeBin(v.Bin)
	case value.String:
		e.encodeString(v.Str)
	case value.Array:
		return e.encodeArray(v.Arr)
	case value.Object:
		return e.encodeObject(v.Obj)
	case value.Map:
		return e.encodeMapAsMap(v.Pairs)
	case value.Extension:
		return e.encodeExtension(v)
	case value.Raw:
		e.w.Buf(v.RawBytes)
	case value.TypedArray:
		return e.encodeArray(typedArrayToValues(v))
	default:
		// writeUnknown hook (spec §4.2): unknown variants emit Null.
		e.w.U8(hNil)
	}
	return nil
}

func (e *Encoder) encodeSignedInt(n int64) {
	if n >= 0 {
		e.encodeUnsignedInt(uint64(n))
		return
	}
	switch {
	case n >= -32:
		e.w.U8(byte(int8(n)))
	case n >= -128:
		e.w.U8(hInt8)
		e.w.U8(byte(int8(n)))
	case n >= -32768:
		e.w.U8(hInt16)
		e.w.U16(uint16(int16(n)))
	case n >= -2147483648:
		e.w.U8(hInt32)
		e.w.U32(uint32(int32(n)))
	default:
		e.w.U8(hInt64)
		e.w.U64(uint64(n))
	}
}

func (e *Encoder) encodeUnsignedInt(n uint64) {
	switch {
	case n <= fixintPosMax:
		e.w.U8(byte(n))
	case n <= math.MaxUint8:
		e.w.U8(hUint8)
		e.w.U8(byte(n))
	case n <= math.MaxUint16:
		e.w.U8(hUint16)
		e.w.U16(uint16(n))
	case n <= math.MaxUint32:
		e.w.U8(hUint32)
		e.w.U32(uint32(n))
	default:
		e.w.U8(hUint64)
		e.w.U64(n)
	}
}

// encodeFloat picks float32 when n round-trips exactly through that
// narrower width, else float64 (spec §4.3 encodeNumber).
func (e *Encoder) encodeFloat(n float64) {
	if f32 := float32(n); float64(f32) == n {
		e.encodeFloat32(f32)
		return
	}
	e.w.U8(hFloat64)
	e.w.F64(math.Float64bits(n))
}

func (e *Encoder) encodeFloat32(f float32) {
	e.w.U8(hFloat32)
	e.w.F32(math.Float32bits(f))
}

func (e *Encoder) encodeString(s string) {
	n := len(s)
	switch {
	case n <= 31:
		e.w.U8(byte(fixstrMask | n))
	case n <= math.MaxUint8:
		e.w.U8(hStr8)
		e.w.U8(byte(n))
	case n <= math.MaxUint16:
		e.w.U8(hStr16)
		e.w.U16(uint16(n))
	default:
		e.w.U8(hStr32)
		e.w.U32(uint32(n))
	}
	e.w.ASCII(s)
}

func (e *Encoder) encodeBin(b []byte) {
	n := len(b)
	switch {
	case n <= math.MaxUint8:
		e.w.U8(hBin8)
		e.w.U8(byte(n))
	case n <= math.MaxUint16:
		e.w.U8(hBin16)
		e.w.U16(uint16(n))
	default:
		e.w.U8(hBin32)
		e.w.U32(uint32(n))
	}
	e.w.Buf(b)
}

func (e *Encoder) writeArrayHeader(n int) {
	switch {
	case n <= 15:
		e.w.U8(byte(fixarrayMask | n))
	case n <= math.MaxUint16:
		e.w.U8(hArray16)
		e.w.U16(uint16(n))
	default:
		e.w.U8(hArray32)
		e.w.U32(uint32(n))
	}
}

func (e *Encoder) writeMapHeader(n int) {
	switch {
	case n <= 15:
		e.w.U8(byte(fixmapMask | n))
	case n <= math.MaxUint16:
		e.w.U8(hMap16)
		e.w.U16(uint16(n))
	default:
		e.w.U8(hMap32)
		e.w.U32(uint32(n))
	}
}

func (e *Encoder) encodeArray(items []value.Value) error {
	e.writeArrayHeader(len(items))
	for _, item := range items {
		if err := e.WriteAny(item); err != nil {
			return err
		}
	}
	return nil
}

// encodeObject writes (writeString(key), writeAny(value)) pairs in
// insertion order, per spec §4.3.
func (e *Encoder) encodeObject(members []value.Member) error {
	e.writeMapHeader(len(members))
	for _, m := range members {
		e.encodeString(m.Key)
		if err := e.WriteAny(m.Value); err != nil {
			return err
		}
	}
	return nil
}

// encodeMapAsMap writes a Map value (non-string keys allowed).
func (e *Encoder) encodeMapAsMap(pairs []value.Pair) error {
	e.writeMapHeader(len(pairs))
	for _, p := range pairs {
		if err := e.WriteAny(p.Key); err != nil {
			return err
		}
		if err := e.WriteAny(p.Value); err != nil {
			return err
		}
	}
	return nil
}

// encodeExtension emits fixext1..16 / ext8/16/32 based on the
// payload's encoded length, then the int8 tag, then payload bytes
// (spec §4.3). The payload Value is first encoded to bytes: for most
// callers the payload is itself a Raw value already holding the exact
// extension body, since MessagePack extension payloads are opaque
// bytes, not recursively-typed values.
func (e *Encoder) encodeExtension(v value.Value) error {
	var body []byte
	if v.Payload.Kind == value.Raw {
		body = v.Payload.RawBytes
	} else if v.Payload.Kind == value.Bytes {
		body = v.Payload.Bin
	} else {
		encoded, err := Encode(*v.Payload)
		if err != nil {
			return err
		}
		body = encoded
	}

	n := len(body)
	switch n {
	case 1:
		e.w.U8(hFixext1)
	case 2:
		e.w.U8(hFixext2)
	case 4:
		e.w.U8(hFixext4)
	case 8:
		e.w.U8(hFixext8)
	case 16:
		e.w.U8(hFixext16)
	default:
		switch {
		case n <= math.MaxUint8:
			e.w.U8(hExt8)
			e.w.U8(byte(n))
		case n <= math.MaxUint16:
			e.w.U8(hExt16)
			e.w.U16(uint16(n))
		default:
			e.w.U8(hExt32)
			e.w.U32(uint32(n))
		}
	}
	e.w.U8(byte(int8(v.Tag)))
	e.w.Buf(body)
	return nil
}

func typedArrayToValues(v value.Value) []value.Value {
	switch v.Elem {
	case value.ElemInt8:
		out := make([]value.Value, len(v.TA.I8))
		for i, n := range v.TA.I8 {
			out[i] = value.IntValue(int64(n))
		}
		return out
	case value.ElemInt16:
		out := make([]value.Value, len(v.TA.I16))
		for i, n := range v.TA.I16 {
			out[i] = value.IntValue(int64(n))
		}
		return out
	case value.ElemInt32:
		out := make([]value.Value, len(v.TA.I32))
		for i, n := range v.TA.I32 {
			out[i] = value.IntValue(int64(n))
		}
		return out
	case value.ElemInt64:
		out := make([]value.Value, len(v.TA.I64))
		for i, n := range v.TA.I64 {
			out[i] = value.IntValue(n)
		}
		return out
	case value.ElemUint8:
		out := make([]value.Value, len(v.TA.U8))
		for i, n := range v.TA.U8 {
			out[i] = value.UIntValue(uint64(n))
		}
		return out
	case value.ElemUint16:
		out := make([]value.Value, len(v.TA.U16))
		for i, n := range v.TA.U16 {
			out[i] = value.UIntValue(uint64(n))
		}
		return out
	case value.ElemUint32:
		out := make([]value.Value, len(v.TA.U32))
		for i, n := range v.TA.U32 {
			out[i] = value.UIntValue(uint64(n))
		}
		return out
	case value.ElemUint64:
		out := make([]value.Value, len(v.TA.U64))
		for i, n := range v.TA.U64 {
			out[i] = value.UIntValue(n)
		}
		return out
	case value.ElemFloat32:
		out := make([]value.Value, len(v.TA.F32))
		for i, n := range v.TA.F32 {
			out[i] = value.Float32Value(n)
		}
		return out
	case value.ElemFloat64:
		out := make([]value.Value, len(v.TA.F64))
		for i, n := range v.TA.F64 {
			out[i] = value.Float64Value(n)
		}
		return out
	default:
		return nil
	}
}
