// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package ubjson

import (
	"math"
	"math/big"

	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

const maxDecodeDepth = 10000

// Decode parses a single UBJSON value.
func Decode(data []byte) (value.Value, error) {
	d := &decoder{r: buffer.NewReader(data)}
	return d.readAny(0)
}

type decoder struct {
	r *buffer.Reader
}

func (d *decoder) readAny(depth int) (value.Value, error) {
	if depth > maxDecodeDepth {
		return value.Value{}, wireerr.At(wireerr.DepthExceeded, d.r.Pos(), "UBJSON nesting too deep")
	}
	start := d.r.Pos()
	b, err := d.r.U8()
	if err != nil {
		return value.Value{}, err
	}
	switch b {
	case tNull:
		return value.NullValue(), nil
	case tTrue:
		return value.BoolValue(true), nil
	case tFalse:
		return value.BoolValue(false), nil
	case tInt8:
		v, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(int8(v))), nil
	case tUint8:
		v, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(v)), nil
	case tInt16:
		v, err := d.r.U16()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(int16(v))), nil
	case tInt32:
		v, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(int32(v))), nil
	case tInt64:
		v, err := d.r.U64()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(v)), nil
	case tFloat32:
		bits, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float32Value(math.Float32frombits(bits)), nil
	case tFloat64:
		bits, err := d.r.U64()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float64Value(math.Float64frombits(bits)), nil
	case tHighPrecision:
		digits, err := d.readLengthPrefixed()
		if err != nil {
			return value.Value{}, err
		}
		z := new(big.Int)
		if _, ok := z.SetString(digits, 10); !ok {
			return value.Value{}, wireerr.At(wireerr.UnexpectedToken, start, "malformed UBJSON high-precision number")
		}
		return value.BigIntValue(z), nil
	case tString:
		s, err := d.readLengthPrefixed()
		if err != nil {
			return value.Value{}, err
		}
		return value.StringValue(s), nil
	case tArrayStart:
		return d.readArray(depth)
	case tObjectStart:
		return d.readObject(depth)
	default:
		return value.Value{}, wireerr.At(wireerr.UnexpectedToken, start, "unrecognized UBJSON type marker")
	}
}

// readLength reads an integer-typed value (type marker plus payload):
// the length-prefix form used before string bytes and object keys.
func (d *decoder) readLength() (int, error) {
	start := d.r.Pos()
	marker, err := d.r.U8()
	if err != nil {
		return 0, err
	}
	switch marker {
	case tInt8:
		v, err := d.r.U8()
		if err != nil {
			return 0, err
		}
		return int(int8(v)), nil
	case tUint8:
		v, err := d.r.U8()
		if err != nil {
			return 0, err
		}
		return int(v), nil
	case tInt16:
		v, err := d.r.U16()
		if err != nil {
			return 0, err
		}
		return int(int16(v)), nil
	case tInt32:
		v, err := d.r.U32()
		if err != nil {
			return 0, err
		}
		return int(int32(v)), nil
	case tInt64:
		v, err := d.r.U64()
		if err != nil {
			return 0, err
		}
		return int(int64(v)), nil
	default:
		return 0, wireerr.At(wireerr.UnexpectedToken, start, "expected an integer length marker")
	}
}

func (d *decoder) readLengthPrefixed() (string, error) {
	n, err := d.readLength()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", wireerr.At(wireerr.InvalidSize, d.r.Pos(), "negative UBJSON length prefix")
	}
	raw, err := d.r.Buf(n)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (d *decoder) readArray(depth int) (value.Value, error) {
	b, err := d.r.Peek()
	if err != nil {
		return value.Value{}, err
	}
	if b == '$' {
		return d.readOptimizedArray()
	}

	var items []value.Value
	for {
		b, err := d.r.Peek()
		if err != nil {
			return value.Value{}, err
		}
		if b == tArrayEnd {
			d.r.U8()
			break
		}
		item, err := d.readAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, item)
	}
	return value.ArrayValue(items), nil
}

// readOptimizedArray decodes the strongly-typed '$' type '#' count
// form. It has no closing ']': the count fully determines the span.
// Uint8-typed containers decode to a Bytes value, matching
// writeByteArray; any other element type decodes to an Array of that
// element, read without a per-element type tag.
func (d *decoder) readOptimizedArray() (value.Value, error) {
	d.r.U8() // consume '$'
	elemType, err := d.r.U8()
	if err != nil {
		return value.Value{}, err
	}
	hashMark, err := d.r.U8()
	if err != nil {
		return value.Value{}, err
	}
	if hashMark != '#' {
		return value.Value{}, wireerr.At(wireerr.UnexpectedToken, d.r.Pos(), "expected '#' count marker after optimized array type")
	}
	n, err := d.readLength()
	if err != nil {
		return value.Value{}, err
	}
	if n < 0 {
		return value.Value{}, wireerr.At(wireerr.InvalidSize, d.r.Pos(), "negative optimized array count")
	}

	if elemType == tUint8 {
		raw, err := d.r.Buf(n)
		if err != nil {
			return value.Value{}, err
		}
		return value.BytesValue(append([]byte{}, raw...)), nil
	}

	items := make([]value.Value, n)
	for i := 0; i < n; i++ {
		v, err := d.readTypedElement(elemType)
		if err != nil {
			return value.Value{}, err
		}
		items[i] = v
	}
	return value.ArrayValue(items), nil
}

// readTypedElement reads one value of a fixed, already-known type
// marker (no tag byte in the stream), used by readOptimizedArray for
// non-uint8 element types.
func (d *decoder) readTypedElement(marker byte) (value.Value, error) {
	switch marker {
	case tNull:
		return value.NullValue(), nil
	case tTrue:
		return value.BoolValue(true), nil
	case tFalse:
		return value.BoolValue(false), nil
	case tInt8:
		v, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(int8(v))), nil
	case tInt16:
		v, err := d.r.U16()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(int16(v))), nil
	case tInt32:
		v, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(int32(v))), nil
	case tInt64:
		v, err := d.r.U64()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(v)), nil
	case tFloat32:
		bits, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float32Value(math.Float32frombits(bits)), nil
	case tFloat64:
		bits, err := d.r.U64()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float64Value(math.Float64frombits(bits)), nil
	case tString:
		s, err := d.readLengthPrefixed()
		if err != nil {
			return value.Value{}, err
		}
		return value.StringValue(s), nil
	default:
		return value.Value{}, wireerr.At(wireerr.UnexpectedToken, d.r.Pos(), "unsupported optimized-array element type")
	}
}

func (d *decoder) readObject(depth int) (value.Value, error) {
	var members []value.Member
	for {
		b, err := d.r.Peek()
		if err != nil {
			return value.Value{}, err
		}
		if b == tObjectEnd {
			d.r.U8()
			break
		}
		key, err := d.readLengthPrefixed()
		if err != nil {
			return value.Value{}, err
		}
		val, err := d.readAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		members = append(members, value.Member{Key: key, Value: val})
	}
	return value.ObjectValue(members), nil
}
