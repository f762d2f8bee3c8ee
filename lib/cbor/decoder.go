// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"math"
	"math/big"

	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// DefaultMaxDepth bounds decoder recursion (spec §3.1).
const DefaultMaxDepth = 1024

// indefinite is the sentinel readMinorLen returns for minor 31
// (spec §4.4: "31 = indefinite (sentinel -1)").
const indefinite = -1

// Decoder reads Values from a CBOR byte buffer. Not safe for
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

// Decode parses exactly one CBOR value from data.
func Decode(data []byte) (value.Value, error) {
	d := NewDecoder(data)
	return d.ReadAny(0)
}

// head splits a head byte into (major, minor).
func head(b byte) (major, minor byte) { return b >> 5, b & 0x1f }

// readMinorLen reads the length that follows a head's minor field:
// 0..23 is the literal value, 24/25/26/27 read 1/2/4/8 extra bytes,
// 31 returns the indefinite sentinel (spec §4.4).
func (d *Decoder) readMinorLen(minor byte) (int64, error) {
	switch minor {
	case minorIndefinite:
		return indefinite, nil
	case minorUint8:
		v, err := d.r.U8()
		return int64(v), err
	case minorUint16:
		v, err := d.r.U16()
		return int64(v), err
	case minorUint32:
		v, err := d.r.U32()
		return int64(v), err
	case minorUint64:
		v, err := d.r.U64()
		return int64(v), err
	default:
		if minor > minorLiteralMax {
			return 0, wireerr.At(wireerr.UnexpectedToken, d.r.Pos(), "reserved minor value")
		}
		return int64(minor), nil
	}
}

// readMinorUint is readMinorLen widened to a full uint64, for major 0
// literals that can legitimately reach 2^64-1.
func (d *Decoder) readMinorUint(minor byte) (uint64, error) {
	switch minor {
	case minorUint8:
		v, err := d.r.U8()
		return uint64(v), err
	case minorUint16:
		v, err := d.r.U16()
		return uint64(v), err
	case minorUint32:
		v, err := d.r.U32()
		return uint64(v), err
	case minorUint64:
		return d.r.U64()
	default:
		if minor > minorLiteralMax {
			return 0, wireerr.At(wireerr.UnexpectedToken, d.r.Pos(), "reserved minor value")
		}
		return uint64(minor), nil
	}
}

// ReadAny reads one head byte and dispatches on the major (spec
// §4.4's readAny). depth tracks recursion for the DepthExceeded cap.
func (d *Decoder) ReadAny(depth int) (value.Value, error) {
	if depth > d.maxDepth {
		return value.Value{}, wireerr.At(wireerr.DepthExceeded, d.r.Pos(), "max depth exceeded")
	}
	b, err := d.r.U8()
	if err != nil {
		return value.Value{}, err
	}
	major, minor := head(b)
	switch major {
	case majorUint:
		n, err := d.readMinorUint(minor)
		if err != nil {
			return value.Value{}, err
		}
		return value.UIntValue(n), nil
	case majorNint:
		n, err := d.readMinorUint(minor)
		if err != nil {
			return value.Value{}, err
		}
		// n = -1 - encoded (spec §4.4). When n doesn't fit int64
		// (encoded > 2^63-1), surface as BigInt.
		if n > math.MaxInt64 {
			z := new(big.Int).SetUint64(n)
			z.Add(z, big.NewInt(1))
			z.Neg(z)
			return value.BigIntValue(z), nil
		}
		return value.IntValue(-1 - int64(n)), nil
	case majorBytes:
		return d.readBytesMajor(minor, depth)
	case majorText:
		return d.readTextMajor(minor, depth)
	case majorArray:
		length, err := d.readMinorLen(minor)
		if err != nil {
			return value.Value{}, err
		}
		return d.readArray(length, depth)
	case majorMap:
		length, err := d.readMinorLen(minor)
		if err != nil {
			return value.Value{}, err
		}
		return d.readMap(length, depth)
	case majorTag:
		tag, err := d.readMinorUint(minor)
		if err != nil {
			return value.Value{}, err
		}
		return d.readTag(tag, depth)
	case majorToken:
		return d.readToken(minor)
	default:
		return value.Value{}, wireerr.At(wireerr.UnexpectedToken, d.r.Pos()-1, "unreachable major")
	}
}

func (d *Decoder) readToken(minor byte) (value.Value, error) {
	switch minor {
	case simpleFalse:
		return value.BoolValue(false), nil
	case simpleTrue:
		return value.BoolValue(true), nil
	case simpleNull:
		return value.NullValue(), nil
	case simpleUndefined:
		return value.NullValue(), nil
	case minorUint8:
		v, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		return value.UIntValue(uint64(v)), nil // unassigned simple value N
	case float16Minor:
		bits, err := d.r.U16()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float32Value(float16ToFloat32(bits)), nil
	case float32Minor:
		f, err := d.r.F32()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float32Value(f), nil
	case float64Minor:
		f, err := d.r.F64()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float64Value(f), nil
	case minorIndefinite:
		return value.Value{}, wireerr.At(wireerr.UnexpectedToken, d.r.Pos()-1, "unexpected standalone break")
	default:
		if minor <= minorLiteralMax {
			return value.UIntValue(uint64(minor)), nil // simple value 0..19
		}
		return value.Value{}, wireerr.At(wireerr.UnexpectedToken, d.r.Pos()-1, "unrecognized major-7 minor")
	}
}

func (d *Decoder) readBytesMajor(minor byte, depth int) (value.Value, error) {
	length, err := d.readMinorLen(minor)
	if err != nil {
		return value.Value{}, err
	}
	if length != indefinite {
		b, err := d.r.Buf(int(length))
		if err != nil {
			return value.Value{}, err
		}
		out := make([]byte, len(b))
		copy(out, b)
		return value.BytesValue(out), nil
	}
	var chunks []byte
	for {
		atEnd, err := d.peekBreak()
		if err != nil {
			return value.Value{}, err
		}
		if atEnd {
			d.r.Skip(1)
			break
		}
		chunk, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		if chunk.Kind != value.Bytes {
			return value.Value{}, wireerr.At(wireerr.UnexpectedToken, d.r.Pos(), "indefinite byte string chunk is not a byte string")
		}
		chunks = append(chunks, chunk.Bin...)
	}
	return value.BytesValue(chunks), nil
}

func (d *Decoder) readTextMajor(minor byte, depth int) (value.Value, error) {
	length, err := d.readMinorLen(minor)
	if err != nil {
		return value.Value{}, err
	}
	if length != indefinite {
		b, err := d.r.Buf(int(length))
		if err != nil {
			return value.Value{}, err
		}
		return value.StringValue(string(b)), nil
	}
	var sb []byte
	for {
		atEnd, err := d.peekBreak()
		if err != nil {
			return value.Value{}, err
		}
		if atEnd {
			d.r.Skip(1)
			break
		}
		chunk, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		if chunk.Kind != value.String {
			return value.Value{}, wireerr.At(wireerr.UnexpectedToken, d.r.Pos(), "indefinite text chunk is not a string")
		}
		sb = append(sb, []byte(chunk.Str)...)
	}
	return value.StringValue(string(sb)), nil
}

// peekBreak reports whether the next byte is a standalone break
// (0xFF) without consuming it on the "no" path.
func (d *Decoder) peekBreak() (bool, error) {
	b, err := d.r.Peek()
	if err != nil {
		return false, err
	}
	return b == breakByte, nil
}

func (d *Decoder) readArray(length int64, depth int) (value.Value, error) {
	if length != indefinite {
		items := make([]value.Value, length)
		for i := range items {
			v, err := d.ReadAny(depth + 1)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.ArrayValue(items), nil
	}
	var items []value.Value
	for {
		atEnd, err := d.peekBreak()
		if err != nil {
			return value.Value{}, err
		}
		if atEnd {
			d.r.Skip(1)
			break
		}
		v, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}
	return value.ArrayValue(items), nil
}

func (d *Decoder) readMap(length int64, depth int) (value.Value, error) {
	if length != indefinite {
		return d.readMapEntries(int(length), depth, nil)
	}
	var pairs []value.Pair
	for {
		atEnd, err := d.peekBreak()
		if err != nil {
			return value.Value{}, err
		}
		if atEnd {
			d.r.Skip(1)
			break
		}
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
	return foldPairsToObjectIfAllString(pairs), nil
}

func (d *Decoder) readMapEntries(n int, depth int, _ []value.Pair) (value.Value, error) {
	pairs := make([]value.Pair, n)
	for i := 0; i < n; i++ {
		k, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		v, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		pairs[i] = value.Pair{Key: k, Value: v}
	}
	return foldPairsToObjectIfAllString(pairs), nil
}

// foldPairsToObjectIfAllString returns an Object when every key is a
// String (the common case, and what the Value model's Object variant
// is for), else a Map (CBOR's non-string-key generality, spec §3.1).
func foldPairsToObjectIfAllString(pairs []value.Pair) value.Value {
	members := make([]value.Member, 0, len(pairs))
	for _, p := range pairs {
		if p.Key.Kind != value.String {
			return value.MapValue(pairs)
		}
		members = append(members, value.Member{Key: p.Key.Str, Value: p.Value})
	}
	return value.ObjectValue(members)
}
