// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package buffer provides the growable-writer / cursor-reader substrate
// every codec in this module builds on (spec §3.2-3.3, §4.1-4.2). It
// has no knowledge of any wire format: callers write typed values at
// explicit byte order and patch previously-written spans once a length
// becomes known.
package buffer

import "encoding/binary"

const minGrow = 64

// Writer is a growable byte buffer with an explicit write cursor. It is
// not safe for concurrent use; one Writer belongs to one encoder call.
type Writer struct {
	view []byte
	x    int
}

// NewWriter returns a Writer with the given initial capacity hint.
func NewWriter(capacityHint int) *Writer {
	if capacityHint < minGrow {
		capacityHint = minGrow
	}
	return &Writer{view: make([]byte, capacityHint)}
}

// Reset clears the cursor so the backing storage can be reused by the
// next encode call without reallocating.
func (w *Writer) Reset() {
	w.x = 0
}

// Len returns the number of bytes written since the last Reset/flush.
func (w *Writer) Len() int { return w.x }

// EnsureCapacity guarantees that n more bytes are writable at the
// cursor, growing the backing slice (doubling, or more if n demands
// it) without ever shrinking it mid-encode.
func (w *Writer) EnsureCapacity(n int) {
	need := w.x + n
	if need <= len(w.view) {
		return
	}
	grown := len(w.view) * 2
	if grown < need {
		grown = need
	}
	if grown < len(w.view)+minGrow {
		grown = len(w.view) + minGrow
	}
	next := make([]byte, grown)
	copy(next, w.view[:w.x])
	w.view = next
}

// Move advances the cursor by n bytes without writing, reserving space
// for a later Patch. Move ensures capacity for the n bytes itself.
func (w *Writer) Move(n int) (at int) {
	w.EnsureCapacity(n)
	at = w.x
	w.x += n
	return at
}

// U8 writes a single byte.
func (w *Writer) U8(v byte) {
	w.EnsureCapacity(1)
	w.view[w.x] = v
	w.x++
}

// U16 writes v big-endian.
func (w *Writer) U16(v uint16) {
	w.EnsureCapacity(2)
	binary.BigEndian.PutUint16(w.view[w.x:], v)
	w.x += 2
}

// U32 writes v big-endian.
func (w *Writer) U32(v uint32) {
	w.EnsureCapacity(4)
	binary.BigEndian.PutUint32(w.view[w.x:], v)
	w.x += 4
}

// U64 writes v big-endian.
func (w *Writer) U64(v uint64) {
	w.EnsureCapacity(8)
	binary.BigEndian.PutUint64(w.view[w.x:], v)
	w.x += 8
}

// U16LE writes v little-endian (BSON/Ion/Smile-adjacent paths).
func (w *Writer) U16LE(v uint16) {
	w.EnsureCapacity(2)
	binary.LittleEndian.PutUint16(w.view[w.x:], v)
	w.x += 2
}

// U32LE writes v little-endian.
func (w *Writer) U32LE(v uint32) {
	w.EnsureCapacity(4)
	binary.LittleEndian.PutUint32(w.view[w.x:], v)
	w.x += 4
}

// U64LE writes v little-endian.
func (w *Writer) U64LE(v uint64) {
	w.EnsureCapacity(8)
	binary.LittleEndian.PutUint64(w.view[w.x:], v)
	w.x += 8
}

// F32 writes the IEEE-754 bits of v big-endian.
func (w *Writer) F32(bits uint32) { w.U32(bits) }

// F64 writes the IEEE-754 bits of v big-endian.
func (w *Writer) F64(bits uint64) { w.U64(bits) }

// Buf appends a byte slice verbatim.
func (w *Writer) Buf(b []byte) {
	w.EnsureCapacity(len(b))
	copy(w.view[w.x:], b)
	w.x += len(b)
}

// ASCII is a fast path for 7-bit text: it is functionally identical to
// Buf but documents the caller's guarantee that s is pure ASCII, which
// lets callers skip a UTF-8 validation pass on the way in.
func (w *Writer) ASCII(s string) {
	w.EnsureCapacity(len(s))
	copy(w.view[w.x:], s)
	w.x += len(s)
}

// Capture returns the current cursor position, to be paired with a
// later Patch once a length or size becomes known. This is the only
// sanctioned way to backfill a length prefix — never shift bytes to
// insert one, which would invalidate every cursor taken after it.
func (w *Writer) Capture() int { return w.x }

// PatchU8 overwrites a single byte previously reserved via Move.
func (w *Writer) PatchU8(at int, v byte) { w.view[at] = v }

// PatchU16 overwrites 2 bytes at `at`, big-endian, previously reserved via Move.
func (w *Writer) PatchU16(at int, v uint16) { binary.BigEndian.PutUint16(w.view[at:], v) }

// PatchU32 overwrites 4 bytes at `at`, big-endian, previously reserved via Move.
func (w *Writer) PatchU32(at int, v uint32) { binary.BigEndian.PutUint32(w.view[at:], v) }

// PatchU32LE overwrites 4 bytes at `at`, little-endian.
func (w *Writer) PatchU32LE(at int, v uint32) { binary.LittleEndian.PutUint32(w.view[at:], v) }

// PatchBuf overwrites len(b) bytes starting at `at`.
func (w *Writer) PatchBuf(at int, b []byte) { copy(w.view[at:], b) }

// Flush returns ownership of the filled byte range [0, x) and resets
// the cursor so the backing storage can be reused. The returned slice
// aliases the Writer's backing array; callers that retain it past the
// next Reset/encode must copy it.
func (w *Writer) Flush() []byte {
	out := w.view[:w.x]
	w.x = 0
	return out
}

// Bytes returns the filled range without resetting the cursor, for
// callers (e.g. tests, patch sequences that need to keep writing)
// that want a peek rather than ownership transfer.
func (w *Writer) Bytes() []byte {
	return w.view[:w.x]
}
