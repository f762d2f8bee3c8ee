// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package value

import "bytes"

// Equal implements the equivalence relation spec §8's "universal
// round-trip" property is stated against: Null/Bool exact, integers by
// value (a BigInt equals only a BigInt), floats by == with any NaN
// equal to any NaN (so +0 equals -0), strings by content, bytes by
// content, arrays
// index-wise, objects by set of (key, value) pairs (order-independent
// — encoders preserve insertion order, but two Objects with the same
// members in different orders are still equivalent values).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		// Int/UInt interop: a nonnegative Int and the same-valued
		// UInt are the same number, and several encoders round an
		// input through whichever variant the wire format prefers.
		if a.Kind == Int && b.Kind == UInt && a.I >= 0 && uint64(a.I) == b.U {
			return true
		}
		if a.Kind == UInt && b.Kind == Int && b.I >= 0 && uint64(b.I) == a.U {
			return true
		}
		return false
	}
	switch a.Kind {
	case Null:
		return true
	case Bool:
		return a.B == b.B
	case Int:
		return a.I == b.I
	case UInt:
		return a.U == b.U
	case BigInt:
		if a.Z == nil || b.Z == nil {
			return a.Z == b.Z
		}
		return a.Z.Cmp(b.Z) == 0
	case Float32:
		return a.F32 == b.F32 || (isNaN32(a.F32) && isNaN32(b.F32))
	case Float64:
		return a.F64 == b.F64 || (isNaN64(a.F64) && isNaN64(b.F64))
	case Bytes:
		return bytes.Equal(a.Bin, b.Bin)
	case String:
		return a.Str == b.Str
	case Array:
		if len(a.Arr) != len(b.Arr) {
			return false
		}
		for i := range a.Arr {
			if !Equal(a.Arr[i], b.Arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.Obj) != len(b.Obj) {
			return false
		}
		for _, m := range a.Obj {
			other := b.Get(m.Key)
			if other == nil || !Equal(m.Value, *other) {
				return false
			}
		}
		return true
	case Map:
		if len(a.Pairs) != len(b.Pairs) {
			return false
		}
		for _, pa := range a.Pairs {
			matched := false
			for _, pb := range b.Pairs {
				if Equal(pa.Key, pb.Key) && Equal(pa.Value, pb.Value) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		return true
	case Extension:
		if a.Tag != b.Tag {
			return false
		}
		if a.Payload == nil || b.Payload == nil {
			return a.Payload == b.Payload
		}
		return Equal(*a.Payload, *b.Payload)
	case Raw:
		return bytes.Equal(a.RawBytes, b.RawBytes)
	case TypedArray:
		return typedArrayEqual(a, b)
	default:
		return false
	}
}

func isNaN32(f float32) bool { return f != f }
func isNaN64(f float64) bool { return f != f }

func typedArrayEqual(a, b Value) bool {
	if a.Elem != b.Elem {
		return false
	}
	switch a.Elem {
	case ElemInt8:
		return int8SliceEqual(a.TA.I8, b.TA.I8)
	case ElemInt16:
		return int16SliceEqual(a.TA.I16, b.TA.I16)
	case ElemInt32:
		return int32SliceEqual(a.TA.I32, b.TA.I32)
	case ElemInt64:
		return int64SliceEqual(a.TA.I64, b.TA.I64)
	case ElemUint8:
		return bytes.Equal(a.TA.U8, b.TA.U8)
	case ElemUint16:
		return uint16SliceEqual(a.TA.U16, b.TA.U16)
	case ElemUint32:
		return uint32SliceEqual(a.TA.U32, b.TA.U32)
	case ElemUint64:
		return uint64SliceEqual(a.TA.U64, b.TA.U64)
	case ElemFloat32:
		return float32SliceEqual(a.TA.F32, b.TA.F32)
	case ElemFloat64:
		return float64SliceEqual(a.TA.F64, b.TA.F64)
	default:
		return false
	}
}

func int8SliceEqual(a, b []int8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func int16SliceEqual(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func int32SliceEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func int64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func uint16SliceEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func uint32SliceEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func uint64SliceEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func float32SliceEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func float64SliceEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
