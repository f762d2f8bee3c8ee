// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// maxVIntBytes bounds the scan for a VInt's terminating byte, guarding
// against MalformedVInt inputs that never set the high bit (spec
// §4.5's "terminator never seen" error condition).
const maxVIntBytes = 10

// writeVInt writes n as an unsigned base-128 little-endian VInt: every
// byte except the last carries 7 payload bits with the high bit clear;
// the last byte carries only 6 payload bits with just the high bit set
// (0x80 OR payload, bit 6 left clear) so it can never read as 0xFF
// (spec §4.5).
func writeVInt(w *buffer.Writer, n uint64) {
	if n < (1 << 6) {
		w.U8(0x80 | byte(n))
		return
	}
	var chunks []byte
	rem := n >> 6
	for rem > 0 {
		chunks = append(chunks, byte(rem&0x7F))
		rem >>= 7
	}
	for i := len(chunks) - 1; i >= 0; i-- {
		w.U8(chunks[i])
	}
	w.U8(0x80 | byte(n&0x3F))
}

// readVInt reads an unsigned VInt written by writeVInt.
func readVInt(r *buffer.Reader) (uint64, error) {
	start := r.Pos()
	var n uint64
	for i := 0; i < maxVIntBytes; i++ {
		b, err := r.U8()
		if err != nil {
			return 0, err
		}
		if b&0x80 != 0 {
			n = n<<6 | uint64(b&0x3F)
			return n, nil
		}
		n = n<<7 | uint64(b&0x7F)
	}
	return 0, wireerr.At(wireerr.MalformedVarint, start, "VInt terminator never seen")
}

// zigZagEncode maps a signed n onto the unsigned VInt space: n >= 0
// becomes 2n, n < 0 becomes -(2n)-1 (spec §4.5). Written bitwise so
// math.MinInt64 (whose negation overflows int64) encodes correctly.
func zigZagEncode(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// zigZagDecode reverses zigZagEncode. Written as the bitwise identity
// int64(u>>1) ^ -int64(u&1) rather than the arithmetic -(u+1)/2 form,
// which overflows uint64 at u == math.MaxUint64 (the encoding of
// math.MinInt64).
func zigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func writeSignedVInt(w *buffer.Writer, n int64) {
	writeVInt(w, zigZagEncode(n))
}

func readSignedVInt(r *buffer.Reader) (int64, error) {
	u, err := readVInt(r)
	if err != nil {
		return 0, err
	}
	return zigZagDecode(u), nil
}
