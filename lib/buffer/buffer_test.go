// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"bytes"
	"testing"
)

func TestWriterTypedWrites(t *testing.T) {
	w := NewWriter(4)
	w.U8(0x01)
	w.U16(0x0203)
	w.U32(0x04050607)
	w.Buf([]byte{0xAA, 0xBB})
	w.ASCII("hi")

	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0xAA, 0xBB, 'h', 'i'}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

func TestWriterPatching(t *testing.T) {
	w := NewWriter(4)
	lenAt := w.Move(4)
	w.ASCII("payload")
	w.PatchU32(lenAt, uint32(len("payload")))

	want := append([]byte{0, 0, 0, 7}, []byte("payload")...)
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

func TestWriterGrowthNeverShrinks(t *testing.T) {
	w := NewWriter(1)
	for i := 0; i < 1000; i++ {
		w.U8(byte(i))
	}
	if w.Len() != 1000 {
		t.Fatalf("len = %d, want 1000", w.Len())
	}
	for i := 0; i < 1000; i++ {
		if w.Bytes()[i] != byte(i) {
			t.Fatalf("byte %d corrupted during growth", i)
		}
	}
}

func TestWriterFlushAndReset(t *testing.T) {
	w := NewWriter(4)
	w.U8(0x01)
	first := w.Flush()
	if !bytes.Equal(first, []byte{0x01}) {
		t.Fatalf("first flush = %x", first)
	}
	w.U8(0x02)
	second := w.Flush()
	if !bytes.Equal(second, []byte{0x02}) {
		t.Fatalf("second flush = %x", second)
	}
}

func TestReaderTypedReads(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07})
	b, err := r.U8()
	if err != nil || b != 0x01 {
		t.Fatalf("U8: %v, %x", err, b)
	}
	u16, err := r.U16()
	if err != nil || u16 != 0x0203 {
		t.Fatalf("U16: %v, %x", err, u16)
	}
	u32, err := r.U32()
	if err != nil || u32 != 0x04050607 {
		t.Fatalf("U32: %v, %x", err, u32)
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d, want 0", r.Len())
	}
}

func TestReaderUnexpectedEnd(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.U32(); err == nil {
		t.Fatal("expected UnexpectedEnd error")
	}
	// cursor must not have moved on a failed multi-byte read
	if r.Pos() != 0 {
		t.Fatalf("cursor moved to %d on failed read", r.Pos())
	}
}

func TestReaderPeekDoesNotAdvance(t *testing.T) {
	r := NewReader([]byte{0xAB, 0xCD})
	b, err := r.Peek()
	if err != nil || b != 0xAB {
		t.Fatalf("Peek: %v, %x", err, b)
	}
	if r.Pos() != 0 {
		t.Fatalf("Peek advanced cursor to %d", r.Pos())
	}
}

func TestReaderBufIsBorrowed(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := NewReader(data)
	b, err := r.Buf(4)
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 99
	if b[0] != 99 {
		t.Fatal("Buf did not alias the backing slice as documented")
	}
}

func TestReaderResetRebinds(t *testing.T) {
	r := NewReader([]byte{1, 2})
	r.Skip(2)
	r.Reset([]byte{9, 8, 7})
	if r.Pos() != 0 || r.Len() != 3 {
		t.Fatalf("Reset did not rebind cleanly: pos=%d len=%d", r.Pos(), r.Len())
	}
}
