// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"encoding/binary"
	"math"

	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// encodeTypedArray maps a host typed array to (tag, byte-string) per
// RFC 8746, with host-endianness reflected in the tag choice (spec
// §4.4). This implementation always emits big-endian, since Go's
// encoding/binary.BigEndian is the module-wide default (spec §4.1);
// little-endian typed-array tags are still understood on decode.
func (e *Encoder) encodeTypedArray(v value.Value) error {
	var tag uint64
	var body []byte

	switch v.Elem {
	case value.ElemInt8:
		tag, body = tagI8, int8Bytes(v.TA.I8)
	case value.ElemUint8:
		tag, body = tagU8, v.TA.U8
	case value.ElemInt16:
		tag, body = tagI16BE, beBytes16(int16SliceToUint16(v.TA.I16))
	case value.ElemUint16:
		tag, body = tagU16BE, beBytes16(v.TA.U16)
	case value.ElemInt32:
		tag, body = tagI32BE, beBytes32(int32SliceToUint32(v.TA.I32))
	case value.ElemUint32:
		tag, body = tagU32BE, beBytes32(v.TA.U32)
	case value.ElemInt64:
		tag, body = tagI64BE, beBytes64(int64SliceToUint64(v.TA.I64))
	case value.ElemUint64:
		tag, body = tagU64BE, beBytes64(v.TA.U64)
	case value.ElemFloat32:
		tag, body = tagF32BE, beFloatBytes32(v.TA.F32)
	case value.ElemFloat64:
		tag, body = tagF64BE, beFloatBytes64(v.TA.F64)
	default:
		return wireerr.New(wireerr.InvalidSize, "unknown typed array element type")
	}

	e.writeLen(majorTag, tag)
	e.writeLen(majorBytes, uint64(len(body)))
	e.w.Buf(body)
	return nil
}

func int8Bytes(s []int8) []byte {
	out := make([]byte, len(s))
	for i, n := range s {
		out[i] = byte(n)
	}
	return out
}

func int16SliceToUint16(s []int16) []uint16 {
	out := make([]uint16, len(s))
	for i, n := range s {
		out[i] = uint16(n)
	}
	return out
}

func int32SliceToUint32(s []int32) []uint32 {
	out := make([]uint32, len(s))
	for i, n := range s {
		out[i] = uint32(n)
	}
	return out
}

func int64SliceToUint64(s []int64) []uint64 {
	out := make([]uint64, len(s))
	for i, n := range s {
		out[i] = uint64(n)
	}
	return out
}

func beBytes16(s []uint16) []byte {
	out := make([]byte, len(s)*2)
	for i, n := range s {
		binary.BigEndian.PutUint16(out[i*2:], n)
	}
	return out
}

func beBytes32(s []uint32) []byte {
	out := make([]byte, len(s)*4)
	for i, n := range s {
		binary.BigEndian.PutUint32(out[i*4:], n)
	}
	return out
}

func beBytes64(s []uint64) []byte {
	out := make([]byte, len(s)*8)
	for i, n := range s {
		binary.BigEndian.PutUint64(out[i*8:], n)
	}
	return out
}

func beFloatBytes32(s []float32) []byte {
	out := make([]byte, len(s)*4)
	for i, n := range s {
		binary.BigEndian.PutUint32(out[i*4:], math.Float32bits(n))
	}
	return out
}

func beFloatBytes64(s []float64) []byte {
	out := make([]byte, len(s)*8)
	for i, n := range s {
		binary.BigEndian.PutUint64(out[i*8:], math.Float64bits(n))
	}
	return out
}

// decodeTypedArray reconstructs a host typed array from a tag's
// byte-string payload, choosing element width/signedness/endianness
// by tag (spec §4.4's readTagRaw: "typed arrays -> construct host
// typed array").
func decodeTypedArray(tag uint64, body []byte) (value.Value, bool, error) {
	switch tag {
	case tagU8, tagU8Clamped:
		out := make([]uint8, len(body))
		copy(out, body)
		return value.Value{Kind: value.TypedArray, Elem: value.ElemUint8, TA: value.TypedArrayData{U8: out}}, true, nil
	case tagI8:
		out := make([]int8, len(body))
		for i, b := range body {
			out[i] = int8(b)
		}
		return value.Value{Kind: value.TypedArray, Elem: value.ElemInt8, TA: value.TypedArrayData{I8: out}}, true, nil
	case tagU16BE, tagU16LE:
		vals, err := decodeUint16s(body, tag == tagU16LE)
		if err != nil {
			return value.Value{}, false, err
		}
		return value.Value{Kind: value.TypedArray, Elem: value.ElemUint16, TA: value.TypedArrayData{U16: vals}}, true, nil
	case tagI16BE, tagI16LE:
		vals, err := decodeUint16s(body, tag == tagI16LE)
		if err != nil {
			return value.Value{}, false, err
		}
		out := make([]int16, len(vals))
		for i, v := range vals {
			out[i] = int16(v)
		}
		return value.Value{Kind: value.TypedArray, Elem: value.ElemInt16, TA: value.TypedArrayData{I16: out}}, true, nil
	case tagU32BE, tagU32LE:
		vals, err := decodeUint32s(body, tag == tagU32LE)
		if err != nil {
			return value.Value{}, false, err
		}
		return value.Value{Kind: value.TypedArray, Elem: value.ElemUint32, TA: value.TypedArrayData{U32: vals}}, true, nil
	case tagI32BE, tagI32LE:
		vals, err := decodeUint32s(body, tag == tagI32LE)
		if err != nil {
			return value.Value{}, false, err
		}
		out := make([]int32, len(vals))
		for i, v := range vals {
			out[i] = int32(v)
		}
		return value.Value{Kind: value.TypedArray, Elem: value.ElemInt32, TA: value.TypedArrayData{I32: out}}, true, nil
	case tagU64BE, tagU64LE:
		vals, err := decodeUint64s(body, tag == tagU64LE)
		if err != nil {
			return value.Value{}, false, err
		}
		return value.Value{Kind: value.TypedArray, Elem: value.ElemUint64, TA: value.TypedArrayData{U64: vals}}, true, nil
	case tagI64BE, tagI64LE:
		vals, err := decodeUint64s(body, tag == tagI64LE)
		if err != nil {
			return value.Value{}, false, err
		}
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = int64(v)
		}
		return value.Value{Kind: value.TypedArray, Elem: value.ElemInt64, TA: value.TypedArrayData{I64: out}}, true, nil
	case tagF32BE, tagF32LE:
		vals, err := decodeUint32s(body, tag == tagF32LE)
		if err != nil {
			return value.Value{}, false, err
		}
		out := make([]float32, len(vals))
		for i, v := range vals {
			out[i] = math.Float32frombits(v)
		}
		return value.Value{Kind: value.TypedArray, Elem: value.ElemFloat32, TA: value.TypedArrayData{F32: out}}, true, nil
	case tagF64BE, tagF64LE:
		vals, err := decodeUint64s(body, tag == tagF64LE)
		if err != nil {
			return value.Value{}, false, err
		}
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i] = math.Float64frombits(v)
		}
		return value.Value{Kind: value.TypedArray, Elem: value.ElemFloat64, TA: value.TypedArrayData{F64: out}}, true, nil
	default:
		return value.Value{}, false, nil
	}
}

func decodeUint16s(body []byte, little bool) ([]uint16, error) {
	if len(body)%2 != 0 {
		return nil, wireerr.New(wireerr.InvalidSize, "typed array byte string length not a multiple of element size")
	}
	out := make([]uint16, len(body)/2)
	for i := range out {
		if little {
			out[i] = binary.LittleEndian.Uint16(body[i*2:])
		} else {
			out[i] = binary.BigEndian.Uint16(body[i*2:])
		}
	}
	return out, nil
}

func decodeUint32s(body []byte, little bool) ([]uint32, error) {
	if len(body)%4 != 0 {
		return nil, wireerr.New(wireerr.InvalidSize, "typed array byte string length not a multiple of element size")
	}
	out := make([]uint32, len(body)/4)
	for i := range out {
		if little {
			out[i] = binary.LittleEndian.Uint32(body[i*4:])
		} else {
			out[i] = binary.BigEndian.Uint32(body[i*4:])
		}
	}
	return out, nil
}

func decodeUint64s(body []byte, little bool) ([]uint64, error) {
	if len(body)%8 != 0 {
		return nil, wireerr.New(wireerr.InvalidSize, "typed array byte string length not a multiple of element size")
	}
	out := make([]uint64, len(body)/8)
	for i := range out {
		if little {
			out[i] = binary.LittleEndian.Uint64(body[i*8:])
		} else {
			out[i] = binary.BigEndian.Uint64(body[i*8:])
		}
	}
	return out, nil
}
