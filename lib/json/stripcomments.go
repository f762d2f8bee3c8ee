// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package json

import "github.com/tidwall/jsonc"

// StripComments rewrites JSONC-style input (// and /* */ comments)
// to plain JSON, used as an optional pre-filter ahead of Decode when
// DecOptions.StripComments is set. Grounded on the teacher's own use
// of tidwall/jsonc for tolerant config-file parsing.
func StripComments(data []byte) []byte {
	return jsonc.ToJSON(data)
}
