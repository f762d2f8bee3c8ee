// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"math"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// EncOptions configures an Encoder (spec §6's JSON encoder surface:
// default insertion-order keys, or Stable code-point-sorted keys).
type EncOptions struct {
	// Stable sorts object keys by Unicode code-point order before
	// writing, for the idempotence property in spec §8.
	Stable bool
	// BinaryPrefix overrides DefaultBinaryPrefix for Bytes values;
	// empty uses DefaultBinaryPrefix.
	BinaryPrefix string
}

// Encoder writes Values to a JSON byte stream.
type Encoder struct {
	w    *buffer.Writer
	opts EncOptions
}

// NewEncoder returns an Encoder under opts.
func NewEncoder(opts EncOptions) *Encoder {
	if opts.BinaryPrefix == "" {
		opts.BinaryPrefix = DefaultBinaryPrefix
	}
	return &Encoder{w: buffer.NewWriter(256), opts: opts}
}

// Encode serializes v under opts.
func Encode(v value.Value, opts EncOptions) ([]byte, error) {
	e := NewEncoder(opts)
	if err := e.WriteAny(v); err != nil {
		return nil, err
	}
	return e.w.Flush(), nil
}

// WriteAny dispatches on v's Kind.
func (e *Encoder) WriteAny(v value.Value) error {
	switch v.Kind {
	case value.Null:
		e.w.ASCII("null")
	case value.Bool:
		if v.B {
			e.w.ASCII("true")
		} else {
			e.w.ASCII("false")
		}
	case value.Int:
		e.w.ASCII(strconv.FormatInt(v.I, 10))
	case value.UInt:
		e.w.ASCII(strconv.FormatUint(v.U, 10))
	case value.BigInt:
		if v.Z == nil {
			e.w.ASCII("null")
		} else {
			e.w.ASCII(v.Z.String())
		}
	case value.Float32:
		return e.writeFloat(float64(v.F32))
	case value.Float64:
		return e.writeFloat(v.F64)
	case value.Bytes:
		e.writeString(e.opts.BinaryPrefix + encodeBase64(v.Bin))
	case value.String:
		e.writeString(v.Str)
	case value.Array:
		return e.encodeArray(v.Arr)
	case value.Object:
		return e.encodeObject(v.Obj)
	case value.Map:
		return e.encodeMapAsObject(v.Pairs)
	case value.Extension:
		if v.Payload == nil {
			e.w.ASCII("null")
			return nil
		}
		return e.WriteAny(*v.Payload)
	case value.Raw:
		e.w.Buf(v.RawBytes)
	case value.TypedArray:
		return e.encodeTypedArray(v)
	default:
		e.w.ASCII("null")
	}
	return nil
}

func (e *Encoder) writeFloat(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return wireerr.New(wireerr.InvalidJSON, "JSON cannot represent NaN or Infinity")
	}
	e.w.ASCII(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

func (e *Encoder) encodeArray(items []value.Value) error {
	e.w.U8('[')
	for i, item := range items {
		if i > 0 {
			e.w.U8(',')
		}
		if err := e.WriteAny(item); err != nil {
			return err
		}
	}
	e.w.U8(']')
	return nil
}

func (e *Encoder) encodeObject(members []value.Member) error {
	ordered := members
	if e.opts.Stable {
		ordered = make([]value.Member, len(members))
		copy(ordered, members)
		sort.SliceStable(ordered, func(i, j int) bool {
			return codePointLess(ordered[i].Key, ordered[j].Key)
		})
	}
	e.w.U8('{')
	for i, m := range ordered {
		if i > 0 {
			e.w.U8(',')
		}
		e.writeString(m.Key)
		e.w.U8(':')
		if err := e.WriteAny(m.Value); err != nil {
			return err
		}
	}
	e.w.U8('}')
	return nil
}

// encodeMapAsObject renders a non-string-keyed Map by coercing every
// key to its JSON-encoded text, the only lossless rendering JSON's
// text-only-key grammar allows.
func (e *Encoder) encodeMapAsObject(pairs []value.Pair) error {
	members := make([]value.Member, len(pairs))
	for i, p := range pairs {
		key, err := Encode(p.Key, e.opts)
		if err != nil {
			return err
		}
		members[i] = value.Member{Key: string(key), Value: p.Value}
	}
	return e.encodeObject(members)
}

func (e *Encoder) encodeTypedArray(v value.Value) error {
	items, err := typedArrayToValues(v)
	if err != nil {
		return err
	}
	return e.encodeArray(items)
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

// codePointLess orders a before b by Unicode scalar value, the
// "Unicode code-point order" spec §4.6 requires of the Stable
// encoder — distinct from Go's default byte-wise string comparison
// whenever either key contains a multi-byte rune above U+007F that
// sorts differently by code point than by UTF-8 byte sequence (in
// practice UTF-8's byte order already matches code-point order, but
// this makes that guarantee explicit rather than incidental).
func codePointLess(a, b string) bool {
	for {
		if a == "" {
			return b != ""
		}
		if b == "" {
			return false
		}
		ra, sizeA := utf8.DecodeRuneInString(a)
		rb, sizeB := utf8.DecodeRuneInString(b)
		if ra != rb {
			return ra < rb
		}
		a, b = a[sizeA:], b[sizeB:]
	}
}

func (e *Encoder) writeString(s string) {
	e.w.U8('"')
	for _, r := range s {
		switch r {
		case '"':
			e.w.ASCII(`\"`)
		case '\\':
			e.w.ASCII(`\\`)
		case '\n':
			e.w.ASCII(`\n`)
		case '\r':
			e.w.ASCII(`\r`)
		case '\t':
			e.w.ASCII(`\t`)
		default:
			if r < 0x20 {
				e.w.ASCII(`\u`)
				e.w.ASCII(hex4(uint16(r)))
			} else {
				e.w.ASCII(string(r))
			}
		}
	}
	e.w.U8('"')
}

func hex4(v uint16) string {
	const digits = "0123456789abcdef"
	return string([]byte{
		digits[(v>>12)&0xF],
		digits[(v>>8)&0xF],
		digits[(v>>4)&0xF],
		digits[v&0xF],
	})
}
