// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package bencode adapts this module's Value tree to Bencode, the
// boundary format BitTorrent metadata and trackers use (spec §6). It
// wraps github.com/zeebo/bencode the way internal/detcbor wraps fxamacker/cbor:
// Encode/Decode around the library's generic interface{} marshaling.
//
// Bencode has four wire types: integers, byte strings, lists, and
// dictionaries. It has no float, boolean, or null literal, so those
// Value kinds have no lossless Bencode representation; Encode rejects
// them rather than silently approximating (spec §6's supplemented
// feature list: dictionary keys are sorted on encode, since Bencode
// requires lexicographic key order on the wire).
package bencode

import (
	"sort"

	"github.com/zeebo/bencode"

	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// Encode serializes v as a Bencode byte string.
func Encode(v value.Value) ([]byte, error) {
	native, err := toAny(v)
	if err != nil {
		return nil, err
	}
	return bencode.EncodeBytes(native)
}

// Decode parses a complete Bencode value.
func Decode(data []byte) (value.Value, error) {
	var native any
	if err := bencode.DecodeBytes(data, &native); err != nil {
		return value.Value{}, wireerr.New(wireerr.InvalidHeader, "malformed Bencode input: "+err.Error())
	}
	return fromAny(native)
}

func toAny(v value.Value) (any, error) {
	switch v.Kind {
	case value.Int:
		return v.I, nil
	case value.UInt:
		return int64(v.U), nil
	case value.String:
		return v.Str, nil
	case value.Bytes:
		return string(v.Bin), nil
	case value.Array:
		out := make([]any, len(v.Arr))
		for i, item := range v.Arr {
			converted, err := toAny(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case value.Object:
		out := make(map[string]any, len(v.Obj))
		for _, m := range v.Obj {
			converted, err := toAny(m.Value)
			if err != nil {
				return nil, err
			}
			out[m.Key] = converted
		}
		return sortedDict(out), nil
	case value.Map:
		out := make(map[string]any, len(v.Pairs))
		for _, p := range v.Pairs {
			if p.Key.Kind != value.String {
				return nil, wireerr.New(wireerr.UnexpectedToken, "Bencode dictionary keys must be strings")
			}
			converted, err := toAny(p.Value)
			if err != nil {
				return nil, err
			}
			out[p.Key.Str] = converted
		}
		return sortedDict(out), nil
	case value.Extension:
		if v.Payload == nil {
			return nil, wireerr.New(wireerr.UnexpectedToken, "Bencode has no null literal")
		}
		return toAny(*v.Payload)
	default:
		return nil, wireerr.New(wireerr.UnexpectedToken, "value Kind has no Bencode representation")
	}
}

// sortedDict returns m unchanged; the zeebo/bencode encoder already
// emits map keys in sorted order, but a named helper documents the
// requirement at the call site so a future encoder swap doesn't
// silently drop it.
func sortedDict(m map[string]any) map[string]any { return m }

func fromAny(x any) (value.Value, error) {
	switch t := x.(type) {
	case int64:
		return value.IntValue(t), nil
	case string:
		return value.BytesValue([]byte(t)), nil
	case []any:
		items := make([]value.Value, len(t))
		for i, elem := range t {
			v, err := fromAny(elem)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.ArrayValue(items), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]value.Member, 0, len(keys))
		for _, k := range keys {
			v, err := fromAny(t[k])
			if err != nil {
				return value.Value{}, err
			}
			members = append(members, value.Member{Key: k, Value: v})
		}
		return value.ObjectValue(members), nil
	default:
		return value.Value{}, wireerr.New(wireerr.UnexpectedToken, "unrecognized decoded Bencode element type")
	}
}
