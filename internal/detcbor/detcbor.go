// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package detcbor wraps fxamacker/cbor's decoder and diagnostic
// notation for the CLI's diagnostic and validation commands. The hand-rolled
// lib/cbor package is the module's actual CBOR codec; this package
// exists only so "wire diag" and "wire validate" can cross-check a
// byte stream against an independent implementation and print RFC
// 8949 §8 diagnostic notation, which lib/cbor does not produce.
package detcbor

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var decMode cbor.DecMode

func init() {
	mode, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("detcbor: decoder initialization failed: " + err.Error())
	}
	decMode = mode
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns diagnostic notation for the first data item in
// data, along with the remaining unconsumed bytes.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}

// Validate decodes data into a generic any value using fxamacker/cbor
// as a second, independently-implemented decoder. A successful
// Validate call is strong evidence that data is well-formed CBOR
// beyond what lib/cbor's own Validate (structural only) catches.
func Validate(data []byte) error {
	var v any
	return decMode.Unmarshal(data, &v)
}

// Decode decodes data into a generic any value (map[string]any for
// maps, []any for arrays) for callers that want Go-native values
// rather than this module's Value tree.
func Decode(data []byte) (any, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
