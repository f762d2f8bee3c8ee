// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package json

import "encoding/base64"

func decodeBase64(s string) ([]byte, bool) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return b, true
}

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
