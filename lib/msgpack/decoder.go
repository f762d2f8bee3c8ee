// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package msgpack

import (
	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// DefaultMaxDepth bounds decoder recursion (spec §3.1: "Recursion
// depth is bounded by a decoder-configurable limit (default: 1024)").
const DefaultMaxDepth = 1024

// Decoder reads Values from a MessagePack byte buffer. Not safe for
// concurrent use.
type Decoder struct {
	r        *buffer.Reader
	maxDepth int
}

// NewDecoder returns a Decoder over data with the default depth cap.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{r: buffer.NewReader(data), maxDepth: DefaultMaxDepth}
}

// SetMaxDepth overrides the recursion depth cap.
func (d *Decoder) SetMaxDepth(n int) { d.maxDepth = n }

// Decode parses exactly one MessagePack value from data.
func Decode(data []byte) (value.Value, error) {
	d := NewDecoder(data)
	return d.ReadAny(0)
}

// ReadAny reads one head byte and dispatches on the major family
// (spec §4.3's decoder operations). depth tracks recursion for the
// DepthExceeded cap.
func (d *Decoder) ReadAny(depth int) (value.Value, error) {
	if depth > d.maxDepth {
		return value.Value{}, wireerr.At(wireerr.DepthExceeded, d.r.Pos(), "max depth exceeded")
	}
	head, err := d.r.U8()
	if err != nil {
		return value.Value{}, err
	}
	return d.readByHead(head, depth)
}

func (d *Decoder) readByHead(head byte, depth int) (value.Value, error) {
	switch {
	case head <= fixintPosMax:
		return value.IntValue(int64(head)), nil
	case head >= fixintNegMin:
		return value.IntValue(int64(int8(head))), nil
	case head >= fixmapMask && head <= fixmapMax:
		return d.readMap(int(head&0x0f), depth)
	case head >= fixarrayMask && head <= fixarrayMax:
		return d.readArray(int(head&0x0f), depth)
	case head >= fixstrMask && head <= fixstrMax:
		return d.readStr(int(head & 0x1f))
	}

	switch head {
	case hNil:
		return value.NullValue(), nil
	case hFalse:
		return value.BoolValue(false), nil
	case hTrue:
		return value.BoolValue(true), nil
	case hBin8:
		n, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		return d.readBin(int(n))
	case hBin16:
		n, err := d.r.U16()
		if err != nil {
			return value.Value{}, err
		}
		return d.readBin(int(n))
	case hBin32:
		n, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return d.readBin(int(n))
	case hExt8:
		n, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		return d.readExt(int(n))
	case hExt16:
		n, err := d.r.U16()
		if err != nil {
			return value.Value{}, err
		}
		return d.readExt(int(n))
	case hExt32:
		n, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return d.readExt(int(n))
	case hFloat32:
		f, err := d.r.F32()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float32Value(f), nil
	case hFloat64:
		f, err := d.r.F64()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float64Value(f), nil
	case hUint8:
		n, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		return value.UIntValue(uint64(n)), nil
	case hUint16:
		n, err := d.r.U16()
		if err != nil {
			return value.Value{}, err
		}
		return value.UIntValue(uint64(n)), nil
	case hUint32:
		n, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return value.UIntValue(uint64(n)), nil
	case hUint64:
		n, err := d.r.U64()
		if err != nil {
			return value.Value{}, err
		}
		return value.UIntValue(n), nil
	case hInt8:
		n, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(int8(n))), nil
	case hInt16:
		n, err := d.r.U16()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(int16(n))), nil
	case hInt32:
		n, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(int32(n))), nil
	case hInt64:
		n, err := d.r.U64()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(int64(n)), nil
	case hFixext1:
		return d.readExt(1)
	case hFixext2:
		return d.readExt(2)
	case hFixext4:
		return d.readExt(4)
	case hFixext8:
		return d.readExt(8)
	case hFixext16:
		return d.readExt(16)
	case hStr8:
		n, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		return d.readStr(int(n))
	case hStr16:
		n, err := d.r.U16()
		if err != nil {
			return value.Value{}, err
		}
		return d.readStr(int(n))
	case hStr32:
		n, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return d.readStr(int(n))
	case hArray16:
		n, err := d.r.U16()
		if err != nil {
			return value.Value{}, err
		}
		return d.readArray(int(n), depth)
	case hArray32:
		n, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return d.readArray(int(n), depth)
	case hMap16:
		n, err := d.r.U16()
		if err != nil {
			return value.Value{}, err
		}
		return d.readMap(int(n), depth)
	case hMap32:
		n, err := d.r.U32()
		if err != nil {
			return value.Value{}, err
		}
		return d.readMap(int(n), depth)
	case hNever:
		return value.Value{}, wireerr.At(wireerr.UnexpectedToken, d.r.Pos()-1, "0xc1 is never used")
	default:
		return value.Value{}, wireerr.At(wireerr.UnexpectedToken, d.r.Pos()-1, "unrecognized head byte")
	}
}

func (d *Decoder) readStr(n int) (value.Value, error) {
	b, err := d.r.Buf(n)
	if err != nil {
		return value.Value{}, err
	}
	// Zero-copy would alias the caller's buffer; a decoded Value
	// routinely outlives that buffer, so the string is copied here.
	return value.StringValue(string(b)), nil
}

func (d *Decoder) readBin(n int) (value.Value, error) {
	b, err := d.r.Buf(n)
	if err != nil {
		return value.Value{}, err
	}
	out := make([]byte, n)
	copy(out, b)
	return value.BytesValue(out), nil
}

func (d *Decoder) readExt(n int) (value.Value, error) {
	tagByte, err := d.r.U8()
	if err != nil {
		return value.Value{}, err
	}
	body, err := d.r.Buf(n)
	if err != nil {
		return value.Value{}, err
	}
	out := make([]byte, n)
	copy(out, body)
	payload := value.BytesValue(out)
	return value.ExtensionValue(uint64(uint8(tagByte)), payload), nil
}

func (d *Decoder) readArray(n int, depth int) (value.Value, error) {
	items := make([]value.Value, n)
	for i := 0; i < n; i++ {
		v, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		items[i] = v
	}
	return value.ArrayValue(items), nil
}

func (d *Decoder) readMap(n int, depth int) (value.Value, error) {
	members := make([]value.Member, 0, n)
	for i := 0; i < n; i++ {
		key, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		v, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		if key.Kind == value.String {
			members = append(members, value.Member{Key: key.Str, Value: v})
			continue
		}
		// Non-string map key: MessagePack allows it; surface the
		// whole thing as a Map rather than an Object from here on.
		return d.finishAsMap(members, key, v, n-i-1, depth)
	}
	return value.ObjectValue(members), nil
}

// finishAsMap is reached when a map turns out to have a non-string
// key partway through decoding; the already-decoded string-keyed
// prefix is folded into Pairs alongside the rest.
func (d *Decoder) finishAsMap(prefix []value.Member, key, val value.Value, remaining int, depth int) (value.Value, error) {
	pairs := make([]value.Pair, 0, len(prefix)+1+remaining)
	for _, m := range prefix {
		pairs = append(pairs, value.Pair{Key: value.StringValue(m.Key), Value: m.Value})
	}
	pairs = append(pairs, value.Pair{Key: key, Value: val})
	for i := 0; i < remaining; i++ {
		k, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		v, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		pairs = append(pairs, value.Pair{Key: k, Value: v})
	}
	return value.MapValue(pairs), nil
}
