// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"encoding/binary"
	"math"

	"github.com/wireline-go/wireline/lib/wireerr"
)

// Reader is a cursor over an immutable byte slice. It is not safe for
// concurrent use; the backing slice is owned by the caller and borrowed
// for the duration of one decode call.
type Reader struct {
	data []byte
	x    int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Reset rebinds the Reader to a new slice and clears the cursor.
func (r *Reader) Reset(data []byte) {
	r.data = data
	r.x = 0
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int { return r.x }

// SeekTo moves the cursor to an absolute position, for the path
// navigator's cursor-advancing resolution (spec §4.7).
func (r *Reader) SeekTo(pos int) { r.x = pos }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.data) - r.x }

// Data returns the entire backing slice (for decoders that need to
// slice it directly, e.g. to capture a RawValue span).
func (r *Reader) Data() []byte { return r.data }

func (r *Reader) need(n int) error {
	if r.x+n > len(r.data) {
		return wireerr.At(wireerr.UnexpectedEnd, r.x, "need more bytes than remain")
	}
	return nil
}

// Peek returns the next byte without advancing the cursor.
func (r *Reader) Peek() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	return r.data[r.x], nil
}

// U8 reads and advances past one byte.
func (r *Reader) U8() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.x]
	r.x++
	return v, nil
}

// U16 reads 2 big-endian bytes.
func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.x:])
	r.x += 2
	return v, nil
}

// U32 reads 4 big-endian bytes.
func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.x:])
	r.x += 4
	return v, nil
}

// U64 reads 8 big-endian bytes.
func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.data[r.x:])
	r.x += 8
	return v, nil
}

// U16LE reads 2 little-endian bytes.
func (r *Reader) U16LE() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.x:])
	r.x += 2
	return v, nil
}

// U32LE reads 4 little-endian bytes.
func (r *Reader) U32LE() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.x:])
	r.x += 4
	return v, nil
}

// U64LE reads 8 little-endian bytes.
func (r *Reader) U64LE() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.x:])
	r.x += 8
	return v, nil
}

// F32 reads a big-endian float32.
func (r *Reader) F32() (float32, error) {
	bits, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// F64 reads a big-endian float64.
func (r *Reader) F64() (float64, error) {
	bits, err := r.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// Buf returns a borrowed subslice of n bytes at the cursor and
// advances past it. The caller must not retain the slice past the
// next Reset.
func (r *Reader) Buf(n int) ([]byte, error) {
	if n < 0 {
		return nil, wireerr.At(wireerr.InvalidSize, r.x, "negative length")
	}
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := r.data[r.x : r.x+n]
	r.x += n
	return v, nil
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.x += n
	return nil
}
