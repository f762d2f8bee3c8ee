// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"math"
	"math/big"
	"sort"

	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// Profile selects one of the four encoder variants named in spec
// §4.4. The source language expressed these as a class hierarchy
// (CborEncoder extends CborEncoderFast); here they are one encoder
// with an orthogonal mode flag, per spec §9's "composition + variants"
// guidance.
type Profile int

const (
	// Fast dispatches minimally: scalars, strings, arrays, and
	// string-keyed objects, favoring definite lengths, no key sort.
	Fast Profile = iota
	// Full additionally dispatches on typed arrays, non-string-keyed
	// Maps, Extensions, and BigInts.
	Full
	// Stable is Full plus lexicographic key sorting, for canonical
	// output (spec §8's idempotence property).
	Stable
	// DAG is Stable plus length-then-lex key ordering and a
	// restriction against non-canonical floats (no NaN/±Inf), per
	// the DAG-CBOR profile; tag 42 is reserved for CIDs and is never
	// assigned automatically.
	DAG
)

// EncOptions configures an Encoder, mirroring the programmatic surface
// in spec §6 ({ stableKeys: bool, canonical_dag: bool }).
type EncOptions struct {
	StableKeys   bool
	CanonicalDAG bool
}

// Encoder writes Values to a CBOR byte stream under a chosen Profile.
type Encoder struct {
	w       *buffer.Writer
	profile Profile
}

// NewEncoder returns an Encoder for the given profile.
func NewEncoder(profile Profile) *Encoder {
	return &Encoder{w: buffer.NewWriter(256), profile: profile}
}

// NewEncoderWithOptions derives a profile from EncOptions the way the
// programmatic surface in spec §6 describes it.
func NewEncoderWithOptions(opts EncOptions) *Encoder {
	switch {
	case opts.CanonicalDAG:
		return NewEncoder(DAG)
	case opts.StableKeys:
		return NewEncoder(Stable)
	default:
		return NewEncoder(Full)
	}
}

// Encode serializes v under the given profile.
func Encode(v value.Value, profile Profile) ([]byte, error) {
	e := NewEncoder(profile)
	if err := e.WriteAny(v); err != nil {
		return nil, err
	}
	return e.w.Flush(), nil
}

// WriteAny dispatches on v's Kind (spec §4.2, §4.4).
func (e *Encoder) WriteAny(v value.Value) error {
	switch v.Kind {
	case value.Null:
		e.w.U8(makeHead(majorToken, simpleNull))
	case value.Bool:
		if v.B {
			e.w.U8(makeHead(majorToken, simpleTrue))
		} else {
			e.w.U8(makeHead(majorToken, simpleFalse))
		}
	case value.Int:
		e.encodeInt(v.I)
	case value.UInt:
		e.writeLen(majorUint, v.U)
	case value.BigInt:
		if e.profile == Fast {
			return wireerr.New(wireerr.InvalidSize, "BigInt requires Full/Stable/DAG profile")
		}
		e.encodeBigInt(v.Z)
	case value.Float32:
		return e.encodeFloat32(v.F32)
	case value.Float64:
		return e.encodeFloat64(v.F64)
	case value.Bytes:
		e.writeLen(majorBytes, uint64(len(v.Bin)))
		e.w.Buf(v.Bin)
	case value.String:
		e.writeLen(majorText, uint64(len(v.Str)))
		e.w.ASCII(v.Str)
	case value.Array:
		return e.encodeArray(v.Arr)
	case value.Object:
		return e.encodeObject(v.Obj)
	case value.Map:
		if e.profile == Fast {
			return wireerr.New(wireerr.InvalidSize, "Map requires Full/Stable/DAG profile")
		}
		return e.encodeMap(v.Pairs)
	case value.Extension:
		if e.profile == Fast {
			return wireerr.New(wireerr.InvalidSize, "Extension requires Full/Stable/DAG profile")
		}
		if v.Payload == nil {
			return e.encodeTag(v.Tag, value.NullValue())
		}
		return e.encodeTag(v.Tag, *v.Payload)
	case value.Raw:
		e.w.Buf(v.RawBytes)
	case value.TypedArray:
		if e.profile == Fast {
			return wireerr.New(wireerr.InvalidSize, "TypedArray requires Full/Stable/DAG profile")
		}
		return e.encodeTypedArray(v)
	default:
		e.w.U8(makeHead(majorToken, simpleNull))
	}
	return nil
}

func makeHead(major, minor byte) byte { return (major << 5) | minor }

// writeLen writes major's head with n as the minor/length, choosing
// the smallest representation that fits (spec §4.4).
func (e *Encoder) writeLen(major byte, n uint64) {
	switch {
	case n <= minorLiteralMax:
		e.w.U8(makeHead(major, byte(n)))
	case n <= math.MaxUint8:
		e.w.U8(makeHead(major, minorUint8))
		e.w.U8(byte(n))
	case n <= math.MaxUint16:
		e.w.U8(makeHead(major, minorUint16))
		e.w.U16(uint16(n))
	case n <= math.MaxUint32:
		e.w.U8(makeHead(major, minorUint32))
		e.w.U32(uint32(n))
	default:
		e.w.U8(makeHead(major, minorUint64))
		e.w.U64(n)
	}
}

// writeIndefiniteHeader writes major's head with minor 31 for a
// streaming container (spec §4.4's "streaming variant").
func (e *Encoder) writeIndefiniteHeader(major byte) {
	e.w.U8(makeHead(major, minorIndefinite))
}

// writeBreak closes an indefinite-length container.
func (e *Encoder) writeBreak() { e.w.U8(breakByte) }

func (e *Encoder) encodeInt(n int64) {
	if n >= 0 {
		e.writeLen(majorUint, uint64(n))
		return
	}
	// major 1 encodes |n|-1 (spec §4.4: "n = -1 - encoded").
	e.writeLen(majorNint, uint64(-1-n))
}

// encodeBigInt emits tag 2 (positive bignum) or tag 3 (negative
// bignum) with the magnitude as a byte string, per RFC 8949 §3.4.3.
func (e *Encoder) encodeBigInt(z *big.Int) {
	neg := z.Sign() < 0
	mag := z.Bytes() // abs value, big-endian, no sign
	tag := uint64(tagPosBignum)
	if neg {
		tag = tagNegBignum
		// Negative bignum N encodes -1-N's magnitude; adjust by one.
		mag = subtractOneBigEndian(mag)
	}
	e.writeLen(majorTag, tag)
	e.writeLen(majorBytes, uint64(len(mag)))
	e.w.Buf(mag)
}

// subtractOneBigEndian returns mag-1 as big-endian bytes of the same
// or shorter length (RFC 8949 §3.4.3's negative bignum encoding: the
// stored magnitude is -1-n, i.e. n's magnitude minus one).
func subtractOneBigEndian(mag []byte) []byte {
	out := make([]byte, len(mag))
	copy(out, mag)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] > 0 {
			out[i]--
			break
		}
		out[i] = 0xFF
	}
	// strip a possible leading zero byte introduced by the borrow
	i := 0
	for i < len(out)-1 && out[i] == 0 {
		i++
	}
	return out[i:]
}

func (e *Encoder) encodeArray(items []value.Value) error {
	e.writeLen(majorArray, uint64(len(items)))
	for _, item := range items {
		if err := e.WriteAny(item); err != nil {
			return err
		}
	}
	return nil
}

// encodeObject writes a definite-length map header then each member,
// sorting keys lexicographically first when the profile demands it
// (spec §4.4's Stable/DAG variants).
func (e *Encoder) encodeObject(members []value.Member) error {
	ordered := members
	if e.profile == Stable || e.profile == DAG {
		ordered = sortedMembers(members, e.profile == DAG)
	}
	e.writeLen(majorMap, uint64(len(ordered)))
	for _, m := range ordered {
		e.writeLen(majorText, uint64(len(m.Key)))
		e.w.ASCII(m.Key)
		if err := e.WriteAny(m.Value); err != nil {
			return err
		}
	}
	return nil
}

// sortedMembers returns a copy of members in key order. dagOrder
// sorts by encoded-length-then-lexicographic, the DAG-CBOR map key
// order (spec §4.4); plain Stable sorts lexicographically only.
func sortedMembers(members []value.Member, dagOrder bool) []value.Member {
	out := make([]value.Member, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if dagOrder && len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return out
}

func (e *Encoder) encodeMap(pairs []value.Pair) error {
	e.writeLen(majorMap, uint64(len(pairs)))
	for _, p := range pairs {
		if err := e.WriteAny(p.Key); err != nil {
			return err
		}
		if err := e.WriteAny(p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeTag(tag uint64, payload value.Value) error {
	e.writeLen(majorTag, tag)
	return e.WriteAny(payload)
}

// encodeFloat32 promotes to the smallest IEEE width that round-trips:
// float32 is already the narrowest width this model carries, so it is
// written directly unless the DAG profile's no-NaN/±Inf rule rejects it.
func (e *Encoder) encodeFloat32(f float32) error {
	if e.profile == DAG && isNonCanonicalFloat(float64(f)) {
		return wireerr.New(wireerr.InvalidSize, "DAG-CBOR rejects NaN/Infinity")
	}
	e.w.U8(makeHead(majorToken, float32Minor))
	e.w.F32(math.Float32bits(f))
	return nil
}

// encodeFloat64 writes float32 when n is exactly representable at
// that width, else float64 (spec §4.4's "promote to the smallest
// IEEE width that round-trips").
func (e *Encoder) encodeFloat64(n float64) error {
	if e.profile == DAG && isNonCanonicalFloat(n) {
		return wireerr.New(wireerr.InvalidSize, "DAG-CBOR rejects NaN/Infinity")
	}
	if e.profile == DAG && n == 0 {
		// DAG-CBOR canonicalizes -0 to +0 (spec §8).
		n = 0
	}
	if f32 := float32(n); float64(f32) == n {
		e.w.U8(makeHead(majorToken, float32Minor))
		e.w.F32(math.Float32bits(f32))
		return nil
	}
	e.w.U8(makeHead(majorToken, float64Minor))
	e.w.F64(math.Float64bits(n))
	return nil
}

func isNonCanonicalFloat(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
