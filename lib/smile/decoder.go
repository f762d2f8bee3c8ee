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

// maxDecodeDepth guards against stack exhaustion on maliciously or
// accidentally deep nested input (spec §4.5's DepthExceeded error).
const maxDecodeDepth = 10000

// valueShortRefRange is the number of distinct short-form value-mode
// shared-reference slots (0x01..0x1F).
const valueShortRefRange = vSharedRefShortMax - vSharedRefShortMin + 1

// keyShortRefRange is the number of distinct short-form key-mode
// shared-reference slots (0x40..0x7F).
const keyShortRefRange = kSharedRefShortMax - kSharedRefShortMin + 1

// Decoder reads a single Smile document from a byte stream, tracking
// the shared-key and shared-value tables the header flags declare
// (spec §4.5).
type Decoder struct {
	r      *buffer.Reader
	opts   DecOptions
	keys   *dictionary.Table
	values *dictionary.Table

	sharedKeys   bool
	sharedValues bool
	rawBinary    bool
}

// NewDecoder parses the 4-byte header and returns a Decoder positioned
// at the first content byte.
func NewDecoder(data []byte, opts DecOptions) (*Decoder, error) {
	r := buffer.NewReader(data)
	b0, err := r.U8()
	if err != nil {
		return nil, err
	}
	b1, err := r.U8()
	if err != nil {
		return nil, err
	}
	b2, err := r.U8()
	if err != nil {
		return nil, err
	}
	flags, err := r.U8()
	if err != nil {
		return nil, err
	}
	if b0 != header0 || b1 != header1 || b2 != header2 {
		return nil, wireerr.At(wireerr.InvalidHeader, 0, "missing Smile magic prefix")
	}
	if flags>>versionShift != 0 {
		return nil, wireerr.At(wireerr.UnsupportedVersion, 3, "unsupported Smile version")
	}
	capacity := opts.MaxSharedReferences
	if capacity <= 0 {
		capacity = dictionary.DefaultCapacity
	}
	return &Decoder{
		r:            r,
		opts:         opts,
		keys:         dictionary.New(capacity),
		values:       dictionary.New(capacity),
		sharedKeys:   flags&flagSharedPropertyNames != 0,
		sharedValues: flags&flagSharedStringValues != 0,
		rawBinary:    flags&flagRawBinaryEnabled != 0,
	}, nil
}

// Decode parses data as a complete Smile document.
func Decode(data []byte, opts DecOptions) (value.Value, error) {
	d, err := NewDecoder(data, opts)
	if err != nil {
		return value.Value{}, err
	}
	return d.ReadAny(0)
}

// ReadAny decodes one value-mode token and whatever it introduces.
func (d *Decoder) ReadAny(depth int) (value.Value, error) {
	if depth > maxDecodeDepth {
		return value.Value{}, wireerr.At(wireerr.DepthExceeded, d.r.Pos(), "Smile nesting too deep")
	}
	start := d.r.Pos()
	b, err := d.r.U8()
	if err != nil {
		return value.Value{}, err
	}

	switch {
	case b == vNull:
		return value.NullValue(), nil
	case b == vFalse:
		return value.BoolValue(false), nil
	case b == vTrue:
		return value.BoolValue(true), nil
	case b == vEmptyString:
		return value.StringValue(""), nil
	case b >= vSmallIntMin && b <= vSmallIntMax:
		return value.IntValue(int64(b-vSmallIntMin) - smallIntBias), nil
	case b == vInt32 || b == vInt64:
		n, err := readSignedVInt(d.r)
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(n), nil
	case b == vBigInteger:
		return d.readBigInteger()
	case b == vFloat32:
		return d.readFloat32()
	case b == vFloat64:
		return d.readFloat64()
	case b == vBinary7Bit:
		return d.readBinary7Bit()
	case b == vRawBinary:
		return d.readRawBinary()
	case b >= vSharedRefShortMin && b <= vSharedRefShortMax:
		idx := int(b - vSharedRefShortMin)
		return d.resolveValueRef(idx)
	case b >= vSharedRefLongMin && b <= vSharedRefLongMax:
		lo, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		idx := int(valueShortRefRange) + int(b-vSharedRefLongMin)<<8 + int(lo)
		return d.resolveValueRef(idx)
	case b >= vTinyASCIIMin && b <= vTinyASCIIMax:
		n := int(b-vTinyASCIIMin) + 1
		return d.readLiteralValueString(n)
	case b >= vShortASCIIMin && b <= vShortASCIIMax:
		n := int(b-vShortASCIIMin) + 33
		return d.readLiteralValueString(n)
	case b >= vTinyUnicodeMin && b <= vTinyUnicodeMax:
		n := int(b-vTinyUnicodeMin) + 2
		return d.readLiteralValueString(n)
	case b >= vShortUnicodeMin && b <= vShortUnicodeMax:
		n := int(b-vShortUnicodeMin) + 34
		return d.readLiteralValueString(n)
	case b == vLongASCII || b == vLongUnicode:
		return d.readLongValueString()
	case b == vStartArray:
		return d.readArray(depth)
	case b == vStartObject:
		return d.readObject(depth)
	default:
		return value.Value{}, wireerr.At(wireerr.UnexpectedToken, start, "unrecognized Smile value-mode token")
	}
}

func (d *Decoder) resolveValueRef(idx int) (value.Value, error) {
	s, ok := d.values.Get(idx)
	if !ok {
		return value.Value{}, wireerr.At(wireerr.InvalidReference, d.r.Pos(), "shared value-string index out of range")
	}
	return value.StringValue(s), nil
}

func (d *Decoder) readLiteralValueString(n int) (value.Value, error) {
	raw, err := d.r.Buf(n)
	if err != nil {
		return value.Value{}, err
	}
	s := string(raw)
	if d.sharedValues && n <= maxShareableStringLen {
		d.values.Add(s)
	}
	return value.StringValue(s), nil
}

func (d *Decoder) readLongValueString() (value.Value, error) {
	var buf []byte
	for {
		b, err := d.r.U8()
		if err != nil {
			return value.Value{}, err
		}
		if b == vEndOfString {
			break
		}
		buf = append(buf, b)
	}
	s := string(buf)
	if d.sharedValues && len(buf) <= maxShareableStringLen {
		d.values.Add(s)
	}
	return value.StringValue(s), nil
}

func (d *Decoder) readBigInteger() (value.Value, error) {
	sign, err := d.r.U8()
	if err != nil {
		return value.Value{}, err
	}
	n, err := readVInt(d.r)
	if err != nil {
		return value.Value{}, err
	}
	encoded, err := d.r.Buf(encoded7BitLen(int(n)))
	if err != nil {
		return value.Value{}, err
	}
	mag := decode7Bit(encoded, int(n))
	z := new(big.Int).SetBytes(mag)
	if sign == 1 {
		z.Neg(z)
	}
	return value.BigIntValue(z), nil
}

func (d *Decoder) readFloat32() (value.Value, error) {
	encoded, err := d.r.Buf(encoded7BitLen(4))
	if err != nil {
		return value.Value{}, err
	}
	raw := decode7Bit(encoded, 4)
	bits := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
	return value.Float32Value(math.Float32frombits(bits)), nil
}

func (d *Decoder) readFloat64() (value.Value, error) {
	encoded, err := d.r.Buf(encoded7BitLen(8))
	if err != nil {
		return value.Value{}, err
	}
	raw := decode7Bit(encoded, 8)
	var bits uint64
	for i := 0; i < 8; i++ {
		bits = bits<<8 | uint64(raw[i])
	}
	return value.Float64Value(math.Float64frombits(bits)), nil
}

func (d *Decoder) readBinary7Bit() (value.Value, error) {
	n, err := readVInt(d.r)
	if err != nil {
		return value.Value{}, err
	}
	encoded, err := d.r.Buf(encoded7BitLen(int(n)))
	if err != nil {
		return value.Value{}, err
	}
	return value.BytesValue(decode7Bit(encoded, int(n))), nil
}

func (d *Decoder) readRawBinary() (value.Value, error) {
	n, err := readVInt(d.r)
	if err != nil {
		return value.Value{}, err
	}
	raw, err := d.r.Buf(int(n))
	if err != nil {
		return value.Value{}, err
	}
	return value.BytesValue(append([]byte{}, raw...)), nil
}

func (d *Decoder) readArray(depth int) (value.Value, error) {
	var items []value.Value
	for {
		b, err := d.r.Peek()
		if err != nil {
			return value.Value{}, err
		}
		if b == vEndArray {
			d.r.U8()
			break
		}
		item, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, item)
	}
	return value.ArrayValue(items), nil
}

func (d *Decoder) readObject(depth int) (value.Value, error) {
	var members []value.Member
	for {
		b, err := d.r.Peek()
		if err != nil {
			return value.Value{}, err
		}
		if b == kEndObject {
			d.r.U8()
			break
		}
		key, err := d.readKey()
		if err != nil {
			return value.Value{}, err
		}
		val, err := d.ReadAny(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		members = append(members, value.Member{Key: key, Value: val})
	}
	return value.ObjectValue(members), nil
}

// readKey decodes one key-mode token (spec §4.5's key-mode table).
func (d *Decoder) readKey() (string, error) {
	start := d.r.Pos()
	b, err := d.r.U8()
	if err != nil {
		return "", err
	}
	switch {
	case b == kEmptyKey:
		return "", nil
	case b >= kSharedRefShortMin && b <= kSharedRefShortMax:
		idx := int(b - kSharedRefShortMin)
		return d.resolveKeyRef(idx)
	case b >= kSharedRefLongMin && b <= kSharedRefLongMax:
		lo, err := d.r.U8()
		if err != nil {
			return "", err
		}
		idx := int(keyShortRefRange) + int(b-kSharedRefLongMin)<<8 + int(lo)
		return d.resolveKeyRef(idx)
	case b >= kShortASCIIMin && b <= kShortASCIIMax:
		n := int(b-kShortASCIIMin) + 1
		return d.readLiteralKey(n)
	case b >= kShortUnicodeMin && b <= kShortUnicodeMax:
		n := int(b-kShortUnicodeMin) + 2
		return d.readLiteralKey(n)
	case b == kLongUnicode:
		return d.readLongKey()
	default:
		return "", wireerr.At(wireerr.UnexpectedToken, start, "unrecognized Smile key-mode token")
	}
}

func (d *Decoder) resolveKeyRef(idx int) (string, error) {
	s, ok := d.keys.Get(idx)
	if !ok {
		return "", wireerr.At(wireerr.InvalidReference, d.r.Pos(), "shared key-string index out of range")
	}
	return s, nil
}

func (d *Decoder) readLiteralKey(n int) (string, error) {
	raw, err := d.r.Buf(n)
	if err != nil {
		return "", err
	}
	key := string(raw)
	if d.sharedKeys && n <= maxShareableStringLen {
		d.keys.Add(key)
	}
	return key, nil
}

func (d *Decoder) readLongKey() (string, error) {
	var buf []byte
	for {
		b, err := d.r.U8()
		if err != nil {
			return "", err
		}
		if b == vEndOfString {
			break
		}
		buf = append(buf, b)
	}
	key := string(buf)
	if d.sharedKeys && len(buf) <= maxShareableStringLen {
		d.keys.Add(key)
	}
	return key, nil
}

// encoded7BitLen returns how many 7-bit-packed bytes encode7Bit
// produces for an originalLen-byte source.
func encoded7BitLen(originalLen int) int {
	return (originalLen*8 + 6) / 7
}
