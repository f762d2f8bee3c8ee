// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package ubjson

import (
	"math"
	"strconv"

	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// Encode serializes v as a single UBJSON value. UBJSON has no document
// header; the returned bytes are exactly one type-tagged value.
func Encode(v value.Value) ([]byte, error) {
	w := buffer.NewWriter(256)
	e := &encoder{w: w}
	if err := e.writeAny(v); err != nil {
		return nil, err
	}
	return w.Flush(), nil
}

type encoder struct {
	w *buffer.Writer
}

func (e *encoder) writeAny(v value.Value) error {
	switch v.Kind {
	case value.Null:
		e.w.U8(tNull)
	case value.Bool:
		if v.B {
			e.w.U8(tTrue)
		} else {
			e.w.U8(tFalse)
		}
	case value.Int:
		e.writeInt(v.I)
	case value.UInt:
		if v.U <= math.MaxInt64 {
			e.writeInt(int64(v.U))
		} else {
			e.writeHighPrecision(strconv.FormatUint(v.U, 10))
		}
	case value.BigInt:
		e.writeHighPrecision(v.Z.String())
	case value.Float32:
		e.w.U8(tFloat32)
		e.w.F32(math.Float32bits(v.F32))
	case value.Float64:
		e.w.U8(tFloat64)
		e.w.F64(math.Float64bits(v.F64))
	case value.Bytes:
		return e.writeByteArray(v.Bin)
	case value.String:
		e.writeString(v.Str)
	case value.Array:
		return e.writeArray(v.Arr)
	case value.Object:
		return e.writeObject(v.Obj)
	case value.Map:
		return e.writeMapAsObject(v.Pairs)
	case value.Extension:
		if v.Payload == nil {
			e.w.U8(tNull)
			return nil
		}
		return e.writeAny(*v.Payload)
	case value.Raw:
		e.w.Buf(v.RawBytes)
	default:
		e.w.U8(tNull)
	}
	return nil
}

// writeInt picks the smallest UBJSON integer type that can hold n.
func (e *encoder) writeInt(n int64) {
	switch {
	case n >= -128 && n <= 127:
		e.w.U8(tInt8)
		e.w.U8(byte(int8(n)))
	case n >= 0 && n <= 255:
		e.w.U8(tUint8)
		e.w.U8(byte(n))
	case n >= -32768 && n <= 32767:
		e.w.U8(tInt16)
		e.w.U16(uint16(int16(n)))
	case n >= math.MinInt32 && n <= math.MaxInt32:
		e.w.U8(tInt32)
		e.w.U32(uint32(int32(n)))
	default:
		e.w.U8(tInt64)
		e.w.U64(uint64(n))
	}
}

// writeLength emits a container-size/string-length value with no
// outer 'S' marker: the markerless form used for object keys and as
// the length prefix inside a top-level string value.
func (e *encoder) writeLength(n int) {
	e.writeInt(int64(n))
}

func (e *encoder) writeString(s string) {
	e.w.U8(tString)
	e.writeLength(len(s))
	e.w.Buf([]byte(s))
}

// writeByteArray emits UBJSON's optimized strongly-typed container
// form ('[' '$' U '#' count byte...), the idiomatic way UBJSON
// represents a byte array: a single type marker and explicit count up
// front, no closing ']' and no per-element type tag. Without this,
// a byte slice would decode back as an Array of per-byte integers
// instead of a Bytes value.
func (e *encoder) writeByteArray(b []byte) error {
	e.w.U8(tArrayStart)
	e.w.U8('$')
	e.w.U8(tUint8)
	e.w.U8('#')
	e.writeLength(len(b))
	e.w.Buf(b)
	return nil
}

func (e *encoder) writeHighPrecision(digits string) {
	e.w.U8(tHighPrecision)
	e.writeLength(len(digits))
	e.w.ASCII(digits)
}

func (e *encoder) writeArray(items []value.Value) error {
	e.w.U8(tArrayStart)
	for _, item := range items {
		if err := e.writeAny(item); err != nil {
			return err
		}
	}
	e.w.U8(tArrayEnd)
	return nil
}

func (e *encoder) writeKey(key string) {
	e.writeLength(len(key))
	e.w.Buf([]byte(key))
}

func (e *encoder) writeObject(members []value.Member) error {
	e.w.U8(tObjectStart)
	for _, m := range members {
		e.writeKey(m.Key)
		if err := e.writeAny(m.Value); err != nil {
			return err
		}
	}
	e.w.U8(tObjectEnd)
	return nil
}

func (e *encoder) writeMapAsObject(pairs []value.Pair) error {
	e.w.U8(tObjectStart)
	for _, p := range pairs {
		if p.Key.Kind != value.String {
			return wireerr.New(wireerr.UnexpectedToken, "UBJSON object keys must be strings")
		}
		e.writeKey(p.Key.Str)
		if err := e.writeAny(p.Value); err != nil {
			return err
		}
	}
	e.w.U8(tObjectEnd)
	return nil
}
