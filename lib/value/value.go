// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package value defines the universal value model every codec in this
// module consumes and produces (spec §3.1): the JSON data model
// extended with binary blobs, tagged extensions, big integers, and
// typed arrays. Every codec translates to and from this one ADT rather
// than directly between wire formats, so adding a tenth format never
// touches the other nine.
package value

import "math/big"

// Kind discriminates the variant a Value holds. Go has no native sum
// type, so Value is a tagged struct: exactly one of the fields below
// is meaningful for a given Kind, mirroring the decoded-value shape
// used throughout the retrieval pack's binary codecs.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Int
	UInt
	BigInt
	Float32
	Float64
	Bytes
	String
	Array
	Object
	Map
	Extension
	Raw
	TypedArray
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case UInt:
		return "uint"
	case BigInt:
		return "bigint"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Bytes:
		return "bytes"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	case Map:
		return "map"
	case Extension:
		return "extension"
	case Raw:
		return "raw"
	case TypedArray:
		return "typedarray"
	default:
		return "unknown"
	}
}

// ElemType enumerates the element type carried by a TypedArray value,
// surfaced by CBOR's RFC 8746 tags (spec §3.1, §4.4).
type ElemType uint8

const (
	ElemInt8 ElemType = iota
	ElemInt16
	ElemInt32
	ElemInt64
	ElemUint8
	ElemUint16
	ElemUint32
	ElemUint64
	ElemFloat32
	ElemFloat64
)

// Member is one (key, value) pair of an Object. Order is preserved by
// encoders; it is the caller's obligation to keep keys unique.
type Member struct {
	Key   string
	Value Value
}

// Pair is one (key, value) pair of a Map, where the key may itself be
// any Value — the distinction from Object exists because CBOR and
// MessagePack allow non-string map keys.
type Pair struct {
	Key   Value
	Value Value
}

// Value is the tagged sum described in spec §3.1. The zero Value is
// Null.
type Value struct {
	Kind Kind

	B bool
	I int64
	U uint64
	Z *big.Int
	F32 float32
	F64 float64
	Bin []byte
	Str string

	Arr []Value
	Obj []Member
	Pairs []Pair

	// Tag and Payload are meaningful only when Kind == Extension: a
	// CBOR tag / MessagePack extension type wrapping an arbitrary
	// inner Value.
	Tag     uint64
	Payload *Value

	// RawBytes is meaningful only when Kind == Raw: the exact,
	// already-encoded byte span of one complete value, copied
	// verbatim by encoders and captured verbatim by decoders
	// instructed to read "as raw".
	RawBytes []byte

	// Elem and TA are meaningful only when Kind == TypedArray.
	Elem ElemType
	TA   TypedArrayData
}

// TypedArrayData is a host-endianness-agnostic carrier for the numeric
// element slices CBOR's typed-array tags (64..87) address. Exactly one
// field matching Elem is populated.
type TypedArrayData struct {
	I8  []int8
	I16 []int16
	I32 []int32
	I64 []int64
	U8  []uint8
	U16 []uint16
	U32 []uint32
	U64 []uint64
	F32 []float32
	F64 []float64
}

// Len returns the element/byte count of Array, Object, Map, String, or
// Bytes values, and 0 for everything else.
func (v Value) Len() int {
	switch v.Kind {
	case Array:
		return len(v.Arr)
	case Object:
		return len(v.Obj)
	case Map:
		return len(v.Pairs)
	case String:
		return len(v.Str)
	case Bytes:
		return len(v.Bin)
	default:
		return 0
	}
}

// Get returns the value for key in an Object (linear scan, last
// matching entry wins per spec §3.1's decoder leniency), or nil if the
// key is absent or v is not an Object.
func (v *Value) Get(key string) *Value {
	if v.Kind != Object {
		return nil
	}
	var found *Value
	for i := range v.Obj {
		if v.Obj[i].Key == key {
			found = &v.Obj[i].Value
		}
	}
	return found
}

// NullValue, BoolValue, ... are constructors for the common scalar
// variants, used throughout encoder tests and the JSON bridge.
func NullValue() Value           { return Value{Kind: Null} }
func BoolValue(b bool) Value     { return Value{Kind: Bool, B: b} }
func IntValue(i int64) Value     { return Value{Kind: Int, I: i} }
func UIntValue(u uint64) Value   { return Value{Kind: UInt, U: u} }
func BigIntValue(z *big.Int) Value { return Value{Kind: BigInt, Z: z} }
func Float32Value(f float32) Value { return Value{Kind: Float32, F32: f} }
func Float64Value(f float64) Value { return Value{Kind: Float64, F64: f} }
func BytesValue(b []byte) Value  { return Value{Kind: Bytes, Bin: b} }
func StringValue(s string) Value { return Value{Kind: String, Str: s} }
func ArrayValue(a []Value) Value { return Value{Kind: Array, Arr: a} }
func ObjectValue(m []Member) Value { return Value{Kind: Object, Obj: m} }
func MapValue(p []Pair) Value    { return Value{Kind: Map, Pairs: p} }

// ExtensionValue wraps payload under tag (CBOR tag / MessagePack
// extension type), per spec §3.1's Extension{tag, payload} carrier.
func ExtensionValue(tag uint64, payload Value) Value {
	return Value{Kind: Extension, Tag: tag, Payload: &payload}
}

// RawValue wraps an already-encoded byte span, copied verbatim on
// emission (spec §3.1's RawValue{bytes} sentinel).
func RawValue(b []byte) Value {
	return Value{Kind: Raw, RawBytes: b}
}
