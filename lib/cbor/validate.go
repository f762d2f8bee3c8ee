// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "github.com/wireline-go/wireline/lib/wireerr"

// Validate confirms that data[offset:offset+size] holds exactly one
// complete CBOR value with no trailing bytes (spec §4.4's validate
// method, §6's Decoder.validate surface).
func Validate(data []byte, offset, size int) error {
	if offset < 0 || size < 0 || offset+size > len(data) {
		return wireerr.At(wireerr.InvalidSize, offset, "offset/size out of range")
	}
	span := data[offset : offset+size]
	d := NewDecoder(span)
	if err := d.SkipAny(0); err != nil {
		return err
	}
	if d.r.Len() != 0 {
		return wireerr.At(wireerr.InvalidSize, d.r.Pos(), "value span does not match expected size")
	}
	return nil
}
