// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "github.com/wireline-go/wireline/lib/wireerr"

// SkipAny parses only enough of one value to step over it, without
// constructing a Value (spec §4.4). It shares the head-dispatch logic
// with ReadAny but never allocates array/object results.
func (d *Decoder) SkipAny(depth int) error {
	if depth > d.maxDepth {
		return wireerr.At(wireerr.DepthExceeded, d.r.Pos(), "max depth exceeded")
	}
	b, err := d.r.U8()
	if err != nil {
		return err
	}
	major, minor := head(b)
	switch major {
	case majorUint, majorNint:
		_, err := d.readMinorUint(minor)
		return err
	case majorBytes, majorText:
		return d.skipBytesOrText(minor, depth)
	case majorArray:
		length, err := d.readMinorLen(minor)
		if err != nil {
			return err
		}
		if length == indefinite {
			return d.skipIndefinite(depth, 0)
		}
		return d.skipN(length, depth)
	case majorMap:
		length, err := d.readMinorLen(minor)
		if err != nil {
			return err
		}
		if length == indefinite {
			return d.skipIndefinite(depth, 0)
		}
		return d.skipN(length*2, depth)
	case majorTag:
		if _, err := d.readMinorUint(minor); err != nil {
			return err
		}
		return d.SkipAny(depth + 1)
	case majorToken:
		return d.skipToken(minor)
	default:
		return wireerr.At(wireerr.UnexpectedToken, d.r.Pos()-1, "unreachable major")
	}
}

func (d *Decoder) skipToken(minor byte) error {
	switch minor {
	case minorUint8:
		_, err := d.r.U8()
		return err
	case float16Minor:
		_, err := d.r.U16()
		return err
	case float32Minor:
		_, err := d.r.U32()
		return err
	case float64Minor:
		_, err := d.r.U64()
		return err
	default:
		return nil // false/true/null/undefined/literal simple values carry no extra bytes
	}
}

func (d *Decoder) skipBytesOrText(minor byte, depth int) error {
	length, err := d.readMinorLen(minor)
	if err != nil {
		return err
	}
	if length != indefinite {
		return d.r.Skip(int(length))
	}
	return d.skipIndefiniteChunks(depth)
}

func (d *Decoder) skipIndefiniteChunks(depth int) error {
	for {
		atEnd, err := d.peekBreak()
		if err != nil {
			return err
		}
		if atEnd {
			return d.r.Skip(1)
		}
		if err := d.SkipAny(depth + 1); err != nil {
			return err
		}
	}
}

// skipN skips exactly n complete values (spec §4.4's skipN).
func (d *Decoder) skipN(n int64, depth int) error {
	for i := int64(0); i < n; i++ {
		if err := d.SkipAny(depth + 1); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) skipIndefinite(depth int, already int) error {
	for {
		atEnd, err := d.peekBreak()
		if err != nil {
			return err
		}
		if atEnd {
			return d.r.Skip(1)
		}
		if err := d.SkipAny(depth + 1); err != nil {
			return err
		}
	}
}
