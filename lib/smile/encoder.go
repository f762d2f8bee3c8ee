// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"math"
	"math/big"

	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/smile/dictionary"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// Encoder writes Values to a Smile byte stream. The shared-string
// tables are per-document state (spec §5): construct a fresh Encoder
// (or call Reset) for every top-level document.
type Encoder struct {
	w      *buffer.Writer
	opts   EncOptions
	keys   *dictionary.Table
	values *dictionary.Table
}

// NewEncoder returns an Encoder under opts, with fresh shared-string
// tables.
func NewEncoder(opts EncOptions) *Encoder {
	return &Encoder{
		w:      buffer.NewWriter(256),
		opts:   opts,
		keys:   dictionary.New(dictionary.DefaultCapacity),
		values: dictionary.New(dictionary.DefaultCapacity),
	}
}

// Reset clears the Encoder's shared-string tables and write cursor
// for reuse on the next document.
func (e *Encoder) Reset() {
	e.w.Reset()
	e.keys.Reset()
	e.values.Reset()
}

// Encode serializes v as a complete Smile document, including the
// 4-byte header (spec §4.5). Seed scenario 4: encoding null under
// default options produces exactly 0x3A 0x29 0x0A 0x01 0x21.
func Encode(v value.Value, opts EncOptions) ([]byte, error) {
	e := NewEncoder(opts)
	e.writeHeader()
	if err := e.WriteAny(v); err != nil {
		return nil, err
	}
	return e.w.Flush(), nil
}

func (e *Encoder) writeHeader() {
	e.w.U8(header0)
	e.w.U8(header1)
	e.w.U8(header2)
	e.w.U8(e.opts.headerFlags())
}

// WriteAny dispatches on v's Kind in value mode (spec §4.5's
// value-mode token map).
func (e *Encoder) WriteAny(v value.Value) error {
	switch v.Kind {
	case value.Null:
		e.w.U8(vNull)
	case value.Bool:
		if v.B {
			e.w.U8(vTrue)
		} else {
			e.w.U8(vFalse)
		}
	case value.Int:
		e.writeInt(v.I)
	case value.UInt:
		if v.U <= math.MaxInt64 {
			e.writeInt(int64(v.U))
		} else {
			e.writeBigInt(new(big.Int).SetUint64(v.U))
		}
	case value.BigInt:
		e.writeBigInt(v.Z)
	case value.Float32:
		e.writeFloat32(v.F32)
	case value.Float64:
		e.writeFloat64(v.F64)
	case value.Bytes:
		e.writeBinary(v.Bin)
	case value.String:
		return e.writeValueString(v.Str)
	case value.Array:
		return e.writeArray(v.Arr)
	case value.Object:
		return e.writeObject(v.Obj)
	case value.Map:
		return e.writeMapAsObject(v.Pairs)
	case value.Extension:
		if v.Payload == nil {
			e.w.U8(vNull)
			return nil
		}
		return e.WriteAny(*v.Payload)
	case value.Raw:
		e.w.Buf(v.RawBytes)
	case value.TypedArray:
		items, err := typedArrayToValues(v)
		if err != nil {
			return err
		}
		return e.writeArray(items)
	default:
		e.w.U8(vNull)
	}
	return nil
}

// writeInt emits the small-int single-byte form for -16..15, else the
// int32/int64 VInt forms (spec §4.5).
func (e *Encoder) writeInt(n int64) {
	if n >= -smallIntBias && n < smallIntBias {
		e.w.U8(byte(vSmallIntMin + int(n) + smallIntBias))
		return
	}
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		e.w.U8(vInt32)
	} else {
		e.w.U8(vInt64)
	}
	writeSignedVInt(e.w, n)
}

// writeBigInt emits the BigInteger token followed by a sign byte, a
// VInt magnitude length, and the magnitude's 7-bit-safe bytes. This is
// this implementation's own self-consistent scheme for values outside
// int64 range; spec §4.5 names the BigInteger token but leaves its
// exact payload framing to the implementation.
func (e *Encoder) writeBigInt(z *big.Int) {
	e.w.U8(vBigInteger)
	sign := byte(0)
	if z.Sign() < 0 {
		sign = 1
	}
	e.w.U8(sign)
	mag := z.Bytes()
	writeVInt(e.w, uint64(len(mag)))
	e.w.Buf(encode7Bit(mag))
}

// writeFloat32 emits the 5-byte 7-bit-safe chunking of f's big-endian
// IEEE-754 bits (spec §4.5).
func (e *Encoder) writeFloat32(f float32) {
	e.w.U8(vFloat32)
	var raw [4]byte
	bits := math.Float32bits(f)
	raw[0] = byte(bits >> 24)
	raw[1] = byte(bits >> 16)
	raw[2] = byte(bits >> 8)
	raw[3] = byte(bits)
	e.w.Buf(encode7Bit(raw[:]))
}

// writeFloat64 emits the 10-byte 7-bit-safe chunking of f's big-endian
// IEEE-754 bits.
func (e *Encoder) writeFloat64(f float64) {
	e.w.U8(vFloat64)
	var raw [8]byte
	bits := math.Float64bits(f)
	for i := 0; i < 8; i++ {
		raw[i] = byte(bits >> (56 - 8*i))
	}
	e.w.Buf(encode7Bit(raw[:]))
}

// writeBinary emits either the raw or 7-bit-safe binary token
// depending on opts.RawBinaryEnabled (spec §4.5).
func (e *Encoder) writeBinary(b []byte) {
	if e.opts.RawBinaryEnabled {
		e.w.U8(vRawBinary)
		writeVInt(e.w, uint64(len(b)))
		e.w.Buf(b)
		return
	}
	e.w.U8(vBinary7Bit)
	writeVInt(e.w, uint64(len(b)))
	e.w.Buf(encode7Bit(b))
}

// writeValueString emits a value-mode string, consulting and updating
// the shared-value table when opts.SharedStringValues is set (spec
// §4.5's shared-string logic).
func (e *Encoder) writeValueString(s string) error {
	if s == "" {
		e.w.U8(vEmptyString)
		return nil
	}
	if e.opts.SharedStringValues && len(s) <= maxShareableStringLen {
		if idx, ok := e.values.Lookup(s); ok {
			e.writeSharedRef(idx, vSharedRefShortMin, vSharedRefShortMax, vSharedRefLongMin)
			return nil
		}
	}
	e.writeLiteralString(s)
	if e.opts.SharedStringValues && len(s) <= maxShareableStringLen {
		e.values.Add(s)
	}
	return nil
}

func (e *Encoder) writeSharedRef(idx int, shortMin, shortMax, longMin byte) {
	shortRange := int(shortMax-shortMin) + 1
	if idx < shortRange {
		e.w.U8(shortMin + byte(idx))
		return
	}
	rel := idx - shortRange
	e.w.U8(longMin + byte(rel>>8))
	e.w.U8(byte(rel & 0xFF))
}

func (e *Encoder) writeLiteralString(s string) {
	n := len(s)
	ascii := isASCII(s)
	switch {
	case ascii && n <= 32:
		e.w.U8(byte(vTinyASCIIMin + n - 1))
		e.w.ASCII(s)
	case ascii && n <= 64:
		e.w.U8(byte(vShortASCIIMin + n - 33))
		e.w.ASCII(s)
	case !ascii && n >= 2 && n <= 33:
		e.w.U8(byte(vTinyUnicodeMin + n - 2))
		e.w.Buf([]byte(s))
	case !ascii && n <= 65:
		e.w.U8(byte(vShortUnicodeMin + n - 34))
		e.w.Buf([]byte(s))
	case ascii:
		e.w.U8(vLongASCII)
		e.w.ASCII(s)
		e.w.U8(vEndOfString)
	default:
		e.w.U8(vLongUnicode)
		e.w.Buf([]byte(s))
		e.w.U8(vEndOfString)
	}
}

// writeKey emits an object key in key mode, consulting and updating
// the shared-key table when opts.SharedPropertyNames is set.
func (e *Encoder) writeKey(key string) {
	if key == "" {
		e.w.U8(kEmptyKey)
		return
	}
	if e.opts.SharedPropertyNames {
		if idx, ok := e.keys.Lookup(key); ok {
			e.writeSharedRef(idx, kSharedRefShortMin, kSharedRefShortMax, kSharedRefLongMin)
			return
		}
	}
	n := len(key)
	ascii := isASCII(key)
	switch {
	case ascii && n <= 64:
		e.w.U8(byte(kShortASCIIMin + n - 1))
		e.w.ASCII(key)
	case !ascii && n >= 2 && n <= 57:
		e.w.U8(byte(kShortUnicodeMin + n - 2))
		e.w.Buf([]byte(key))
	default:
		e.w.U8(kLongUnicode)
		e.w.Buf([]byte(key))
		e.w.U8(vEndOfString)
	}
	if e.opts.SharedPropertyNames && n <= maxShareableStringLen {
		e.keys.Add(key)
	}
}

func (e *Encoder) writeArray(items []value.Value) error {
	e.w.U8(vStartArray)
	for _, item := range items {
		if err := e.WriteAny(item); err != nil {
			return err
		}
	}
	e.w.U8(vEndArray)
	return nil
}

func (e *Encoder) writeObject(members []value.Member) error {
	e.w.U8(vStartObject)
	for _, m := range members {
		e.writeKey(m.Key)
		if err := e.WriteAny(m.Value); err != nil {
			return err
		}
	}
	e.w.U8(kEndObject)
	return nil
}

func (e *Encoder) writeMapAsObject(pairs []value.Pair) error {
	e.w.U8(vStartObject)
	for _, p := range pairs {
		if p.Key.Kind != value.String {
			return wireerr.New(wireerr.UnexpectedToken, "Smile object keys must be strings")
		}
		e.writeKey(p.Key.Str)
		if err := e.WriteAny(p.Value); err != nil {
			return err
		}
	}
	e.w.U8(kEndObject)
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func typedArrayToValues(v value.Value) ([]value.Value, error) {
	switch v.Elem {
	case value.ElemInt8:
		out := make([]value.Value, len(v.TA.I8))
		for i, x := range v.TA.I8 {
			out[i] = value.IntValue(int64(x))
		}
		return out, nil
	case value.ElemInt16:
		out := make([]value.Value, len(v.TA.I16))
		for i, x := range v.TA.I16 {
			out[i] = value.IntValue(int64(x))
		}
		return out, nil
	case value.ElemInt32:
		out := make([]value.Value, len(v.TA.I32))
		for i, x := range v.TA.I32 {
			out[i] = value.IntValue(int64(x))
		}
		return out, nil
	case value.ElemInt64:
		out := make([]value.Value, len(v.TA.I64))
		for i, x := range v.TA.I64 {
			out[i] = value.IntValue(x)
		}
		return out, nil
	case value.ElemUint8:
		out := make([]value.Value, len(v.TA.U8))
		for i, x := range v.TA.U8 {
			out[i] = value.UIntValue(uint64(x))
		}
		return out, nil
	case value.ElemUint16:
		out := make([]value.Value, len(v.TA.U16))
		for i, x := range v.TA.U16 {
			out[i] = value.UIntValue(uint64(x))
		}
		return out, nil
	case value.ElemUint32:
		out := make([]value.Value, len(v.TA.U32))
		for i, x := range v.TA.U32 {
			out[i] = value.UIntValue(uint64(x))
		}
		return out, nil
	case value.ElemUint64:
		out := make([]value.Value, len(v.TA.U64))
		for i, x := range v.TA.U64 {
			out[i] = value.UIntValue(x)
		}
		return out, nil
	case value.ElemFloat32:
		out := make([]value.Value, len(v.TA.F32))
		for i, x := range v.TA.F32 {
			out[i] = value.Float32Value(x)
		}
		return out, nil
	case value.ElemFloat64:
		out := make([]value.Value, len(v.TA.F64))
		for i, x := range v.TA.F64 {
			out[i] = value.Float64Value(x)
		}
		return out, nil
	default:
		return nil, wireerr.New(wireerr.InvalidSize, "unrecognized typed array element kind")
	}
}
