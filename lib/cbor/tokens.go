// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package cbor implements the CBOR encoder (fast/full/stable/DAG
// variants), decoder, skipper, validator, shallow-read navigator, and
// tag transforms described in spec §4.4 (RFC 8949, plus RFC 8746
// typed-array tags and RFC 8943 date tags).
package cbor

// Major types (3 bits of the head byte).
const (
	majorUint  = 0
	majorNint  = 1
	majorBytes = 2
	majorText  = 3
	majorArray = 4
	majorMap   = 5
	majorTag   = 6
	majorToken = 7
)

// Minor-info reserved meanings (5 bits of the head byte).
const (
	minorLiteralMax = 23
	minorUint8      = 24
	minorUint16     = 25
	minorUint32     = 26
	minorUint64     = 27
	minorIndefinite = 31
)

// Major-7 simple values / tokens.
const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
	float16Minor    = 25
	float32Minor    = 26
	float64Minor    = 27
	breakByte       = 0xFF
)

// Well-known tags this package gives first-class treatment.
const (
	tagDateTimeString = 0     // RFC 3339 string
	tagEpochDateTime  = 1     // Unix timestamp (int or float)
	tagPosBignum      = 2
	tagNegBignum      = 3
	tagExpectBase64URL = 21
	tagExpectBase64    = 22
	tagExpectBase16    = 23
	tagEmbeddedCBOR      = 24   // RFC 8949 §3.4.5.1: nested CBOR item, parsed on decode
	tagMultiDimRowMajor  = 40   // RFC 8746 §2.1: multi-dimensional array, row-major
	tagHomogeneousArray  = 41   // RFC 8746 §2.2: array whose elements share one type
	tagCID               = 42   // DAG-CBOR reserves this for CID links
	tagSelfDescribe      = 55799
	tagDateDays          = 100  // RFC 8943: days since 1970-01-01
	tagMultiDimRowMajor2 = 1040 // RFC 8746 §2.1: multi-dimensional array, column-major
	tagDateDaysAlt       = 1004 // "YYYY-MM-DD" string alternative

	// Typed-array tags (RFC 8746), tags 64..87.
	tagU8        = 64
	tagU16BE     = 65
	tagU32BE     = 66
	tagU64BE     = 67
	tagU8Clamped = 68
	tagU16LE     = 69
	tagU32LE     = 70
	tagU64LE     = 71
	tagI8        = 72
	tagI16BE     = 73
	tagI32BE     = 74
	tagI64BE     = 75
	tagI16LE     = 77
	tagI32LE     = 78
	tagI64LE     = 79
	tagF16BE     = 80 // half float: rejected on encode (spec §4.4)
	tagF32BE     = 81
	tagF64BE     = 82
	tagF128BE    = 83 // quad float: rejected on encode (spec §4.4)
	tagF16LE     = 84
	tagF32LE     = 85
	tagF64LE     = 86
)
