// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "github.com/x448/float16"

// float16ToFloat32 decodes a CBOR major-7 minor-25 half-float payload
// (spec §4.4 lists minor 25 as float16) into the nearest float32. The
// encoder never emits half floats (tag 80 is rejected per spec §4.4),
// but the decoder still accepts them from other emitters.
func float16ToFloat32(bits uint16) float32 {
	return float16.Frombits(bits).Float32()
}
