// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wireline-go/wireline/lib/pathnav"
	"github.com/wireline-go/wireline/lib/value"
)

// parsePath parses a dotted-path expression like "a.b[2].c" into a
// pathnav.Path. A leading '.' is optional; an empty string is the
// empty path (the whole document).
func parsePath(s string) (pathnav.Path, error) {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, nil
	}
	var path pathnav.Path
	for _, key := range strings.Split(s, ".") {
		for key != "" {
			if idx := strings.IndexByte(key, '['); idx == 0 {
				end := strings.IndexByte(key, ']')
				if end < 0 {
					return nil, fmt.Errorf("unterminated [ in path segment %q", key)
				}
				n, err := strconv.Atoi(key[1:end])
				if err != nil {
					return nil, fmt.Errorf("invalid array index in %q: %w", key, err)
				}
				path = append(path, pathnav.Index(n))
				key = key[end+1:]
			} else if idx > 0 {
				path = append(path, pathnav.Key(key[:idx]))
				key = key[idx:]
			} else {
				path = append(path, pathnav.Key(key))
				key = ""
			}
		}
	}
	return path, nil
}

// genericNavigate walks an already-decoded Value tree, for formats
// with no specialized byte-level Navigator (spec §4.7's cursor
// algorithm is only specified for MessagePack and CBOR; every other
// format here pays the full-decode cost instead).
func genericNavigate(v value.Value, path pathnav.Path) (value.Value, error) {
	cur := v
	for _, seg := range path {
		if seg.IsIndex {
			if cur.Kind != value.Array {
				return value.Value{}, fmt.Errorf("path descends into a non-array with an index segment")
			}
			if seg.Index < 0 || seg.Index >= len(cur.Arr) {
				return value.Value{}, fmt.Errorf("index %d out of range (length %d)", seg.Index, len(cur.Arr))
			}
			cur = cur.Arr[seg.Index]
			continue
		}
		found := cur.Get(seg.Key)
		if found == nil {
			return value.Value{}, fmt.Errorf("key %q not found", seg.Key)
		}
		cur = *found
	}
	return cur, nil
}
