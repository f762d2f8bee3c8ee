// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"sort"

	"github.com/wireline-go/wireline/lib/bencode"
	"github.com/wireline-go/wireline/lib/bson"
	"github.com/wireline-go/wireline/lib/cbor"
	"github.com/wireline-go/wireline/lib/ion"
	"github.com/wireline-go/wireline/lib/json"
	"github.com/wireline-go/wireline/lib/msgpack"
	"github.com/wireline-go/wireline/lib/pathnav"
	"github.com/wireline-go/wireline/lib/resp"
	"github.com/wireline-go/wireline/lib/smile"
	"github.com/wireline-go/wireline/lib/ubjson"
	"github.com/wireline-go/wireline/lib/value"
)

// format bundles one wire codec's Decode/Encode entry points under a
// uniform signature so convert/diag/validate/at can dispatch on a
// name rather than a format-specific call shape. navigator is nil for
// formats with no O(visited bytes) path lookup (spec §4.7 only
// specifies it for MessagePack and CBOR); at.go falls back to
// decode-then-walk for everything else.
type format struct {
	name      string
	decode    func([]byte) (value.Value, error)
	encode    func(value.Value) ([]byte, error)
	navigator func([]byte, pathnav.Path) (value.Value, error)
}

var formats = map[string]*format{
	"msgpack": {
		name:      "msgpack",
		decode:    msgpack.Decode,
		encode:    msgpack.Encode,
		navigator: msgpack.ReadAsRaw,
	},
	"cbor": {
		name:      "cbor",
		decode:    cbor.Decode,
		encode:    func(v value.Value) ([]byte, error) { return cbor.Encode(v, cbor.Stable) },
		navigator: cbor.ReadAsRaw,
	},
	"smile": {
		name:   "smile",
		decode: func(b []byte) (value.Value, error) { return smile.Decode(b, smile.DefaultDecOptions()) },
		encode: func(v value.Value) ([]byte, error) { return smile.Encode(v, smile.DefaultEncOptions()) },
	},
	"json": {
		name:   "json",
		decode: func(b []byte) (value.Value, error) { return json.Decode(b, json.DecOptions{}) },
		encode: func(v value.Value) ([]byte, error) { return json.Encode(v, json.EncOptions{}) },
	},
	"bson": {
		name:   "bson",
		decode: bson.Decode,
		encode: bson.Encode,
	},
	"bencode": {
		name:   "bencode",
		decode: bencode.Decode,
		encode: bencode.Encode,
	},
	"resp": {
		name:   "resp",
		decode: resp.Decode,
		encode: resp.Encode,
	},
	"ubjson": {
		name:   "ubjson",
		decode: ubjson.Decode,
		encode: ubjson.Encode,
	},
	"ion": {
		name:   "ion",
		decode: ion.Decode,
		encode: ion.Encode,
	},
	"yaml": {
		name: "yaml",
		decode: func([]byte) (value.Value, error) {
			return value.Value{}, fmt.Errorf("yaml is a display-only convert target, not a source format")
		},
		encode: encodeYAML,
	},
}

func formatNames() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupFormat(name string) (*format, error) {
	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (supported: %v)", name, formatNames())
	}
	return f, nil
}
