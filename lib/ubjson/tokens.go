// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package ubjson implements Universal Binary JSON as a boundary format
// (spec §6). Unlike bson/bencode/resp/ion, no actively maintained
// third-party UBJSON library was found in the retrieval pack or the
// wider ecosystem at the quality bar this module holds its other
// dependencies to, so this codec is hand-rolled in the same
// token-dispatch style as lib/smile and lib/cbor (see DESIGN.md).
package ubjson

// Type markers (UBJSON draft 12).
const (
	tNull   = 'Z'
	tTrue   = 'T'
	tFalse  = 'F'
	tInt8   = 'i'
	tUint8  = 'U'
	tInt16  = 'I'
	tInt32  = 'l'
	tInt64  = 'L'
	tFloat32 = 'd'
	tFloat64 = 'D'
	tHighPrecision = 'H'
	tChar   = 'C'
	tString = 'S'
	tArrayStart  = '['
	tArrayEnd    = ']'
	tObjectStart = '{'
	tObjectEnd   = '}'
)
