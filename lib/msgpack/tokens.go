// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package msgpack implements the MessagePack encoder, decoder, and
// shallow-read path navigator described in spec §4.3. Every value
// begins with a 1-byte head; most heads are followed by a length and
// payload. See the MessagePack specification for the full token
// table; the constants below are its byte-for-byte transcription.
package msgpack

const (
	fixintPosMax = 0x7f
	fixintNegMin = 0xe0 // negative fixint range starts here (as int8 -32)

	fixmapMask   = 0x80
	fixmapMax    = 0x8f
	fixarrayMask = 0x90
	fixarrayMax  = 0x9f
	fixstrMask   = 0xa0
	fixstrMax    = 0xbf

	hNil    = 0xc0
	hNever  = 0xc1
	hFalse  = 0xc2
	hTrue   = 0xc3
	hBin8   = 0xc4
	hBin16  = 0xc5
	hBin32  = 0xc6
	hExt8   = 0xc7
	hExt16  = 0xc8
	hExt32  = 0xc9
	hFloat32 = 0xca
	hFloat64 = 0xcb
	hUint8  = 0xcc
	hUint16 = 0xcd
	hUint32 = 0xce
	hUint64 = 0xcf
	hInt8   = 0xd0
	hInt16  = 0xd1
	hInt32  = 0xd2
	hInt64  = 0xd3
	hFixext1  = 0xd4
	hFixext2  = 0xd5
	hFixext4  = 0xd6
	hFixext8  = 0xd7
	hFixext16 = 0xd8
	hStr8   = 0xd9
	hStr16  = 0xda
	hStr32  = 0xdb
	hArray16 = 0xdc
	hArray32 = 0xdd
	hMap16  = 0xde
	hMap32  = 0xdf

	// extTimestamp is the standard extension type (-1, i.e. 0xff as a
	// signed byte) used by the timestamp extension (spec §4.3).
	extTimestamp = -1
)
