// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package smile implements the Smile binary JSON format (spec §4.5):
// a 4-byte header, two lexical token modes (value mode and object-key
// mode), base-128 VInts, 7-bit-safe binary and float encoding, and
// FIFO shared-string dictionaries for keys and short string values.
package smile

// header bytes, fixed per the v1.0.6 specification (spec §4.5).
const (
	header0 = 0x3A
	header1 = 0x29
	header2 = 0x0A
)

// header flag bits (byte 4 of the document header).
const (
	flagSharedPropertyNames = 1 << 0
	flagSharedStringValues  = 1 << 1
	flagRawBinaryEnabled    = 1 << 2
	versionShift            = 4
)

// Value-mode tokens (spec §4.5's value-mode token map).
const (
	vReserved           = 0x00
	vSharedRefShortMin  = 0x01
	vSharedRefShortMax  = 0x1F
	vEmptyString        = 0x20
	vNull               = 0x21
	vFalse              = 0x22
	vTrue               = 0x23
	vInt32              = 0x24
	vInt64              = 0x25
	vBigInteger         = 0x26
	vFloat32            = 0x28
	vFloat64            = 0x29
	vBigDecimal         = 0x2A
	vTinyASCIIMin       = 0x40
	vTinyASCIIMax       = 0x5F
	vShortASCIIMin      = 0x60
	vShortASCIIMax      = 0x7F
	vTinyUnicodeMin     = 0x80
	vTinyUnicodeMax     = 0x9F
	vShortUnicodeMin    = 0xA0
	vShortUnicodeMax    = 0xBF
	vSmallIntMin        = 0xC0
	vSmallIntMax        = 0xDF
	vLongASCII          = 0xE0
	vLongUnicode        = 0xE4
	vBinary7Bit         = 0xE8
	vSharedRefLongMin   = 0xEC
	vSharedRefLongMax   = 0xEF
	vStartObject        = 0xFA
	vStartArray         = 0xF8
	vEndArray           = 0xF9
	vEndOfString        = 0xFC
	vRawBinary          = 0xFD
	vEndOfContent       = 0xFF
)

// Key-mode tokens (spec §4.5's key-mode token map).
const (
	kEmptyKey          = 0x20
	kSharedRefLongMin  = 0x30
	kSharedRefLongMax  = 0x33
	kLongUnicode       = 0x34
	kSharedRefShortMin = 0x40
	kSharedRefShortMax = 0x7F
	kShortASCIIMin     = 0x80
	kShortASCIIMax     = 0xBF
	kShortUnicodeMin   = 0xC0
	kShortUnicodeMax   = 0xF7
	kEndObject         = 0xFB
)

// smallIntBias centers the biased single-byte small-int range
// 0xC0..0xDF on zero: 0xC0 encodes -16, 0xDF encodes +15.
const smallIntBias = 16

// maxShareableStringLen is the longest UTF-8 byte length eligible for
// the shared-value/shared-key dictionaries (spec §4.5: "UTF-8 <= 64
// bytes").
const maxShareableStringLen = 64
