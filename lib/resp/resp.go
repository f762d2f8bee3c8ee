// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package resp adapts this module's Value tree to RESP, the Redis
// wire protocol, as a boundary format (spec §6). It targets RESP2
// semantics via github.com/tidwall/resp: the five classic types
// (simple string, error, integer, bulk string, array) plus null.
// RESP2 has no map, boolean, or float type and RESP3's richer type set
// (Map, Set, Double, Push, Boolean) is out of scope for this adapter:
// Decode handles only the RESP2 kinds and returns an error for any
// other.
package resp

import (
	"bytes"

	"github.com/tidwall/resp"

	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// Encode serializes v as a single RESP value.
func Encode(v value.Value) ([]byte, error) {
	rv, err := toRESP(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := resp.NewWriter(&buf)
	if err := w.WriteValue(rv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a single RESP value.
func Decode(data []byte) (value.Value, error) {
	r := resp.NewReader(bytes.NewReader(data))
	rv, _, err := r.ReadValue()
	if err != nil {
		return value.Value{}, wireerr.New(wireerr.InvalidHeader, "malformed RESP input: "+err.Error())
	}
	return fromRESP(rv)
}

// objectAsFlatArray flattens an Object into [k0, v0, k1, v1, ...],
// matching how Redis commands like HGETALL represent a hash over
// RESP2's array type (no native map exists in this wire protocol).
func objectAsFlatArray(members []value.Member) (resp.Value, error) {
	vals := make([]resp.Value, 0, len(members)*2)
	for _, m := range members {
		vals = append(vals, resp.StringValue(m.Key))
		elem, err := toRESP(m.Value)
		if err != nil {
			return resp.Value{}, err
		}
		vals = append(vals, elem)
	}
	return resp.ArrayValue(vals), nil
}

func toRESP(v value.Value) (resp.Value, error) {
	switch v.Kind {
	case value.Null:
		return resp.NullValue(), nil
	case value.Bool:
		if v.B {
			return resp.IntegerValue(1), nil
		}
		return resp.IntegerValue(0), nil
	case value.Int:
		return resp.IntegerValue(int(v.I)), nil
	case value.UInt:
		return resp.IntegerValue(int(v.U)), nil
	case value.String:
		return resp.StringValue(v.Str), nil
	case value.Bytes:
		return resp.BytesValue(v.Bin), nil
	case value.Array:
		vals := make([]resp.Value, len(v.Arr))
		for i, item := range v.Arr {
			converted, err := toRESP(item)
			if err != nil {
				return resp.Value{}, err
			}
			vals[i] = converted
		}
		return resp.ArrayValue(vals), nil
	case value.Object:
		return objectAsFlatArray(v.Obj)
	case value.Extension:
		if v.Payload == nil {
			return resp.NullValue(), nil
		}
		return toRESP(*v.Payload)
	default:
		return resp.Value{}, wireerr.New(wireerr.UnexpectedToken, "value Kind has no RESP2 representation")
	}
}

func fromRESP(v resp.Value) (value.Value, error) {
	if v.IsNull() {
		return value.NullValue(), nil
	}
	switch v.Type() {
	case resp.Integer:
		return value.IntValue(int64(v.Integer())), nil
	case resp.BulkString, resp.SimpleString:
		return value.StringValue(v.String()), nil
	case resp.Error:
		return value.Value{}, wireerr.New(wireerr.UnexpectedToken, "RESP error reply: "+v.String())
	case resp.Array:
		items := make([]value.Value, 0, len(v.Array()))
		for _, elem := range v.Array() {
			converted, err := fromRESP(elem)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, converted)
		}
		return value.ArrayValue(items), nil
	default:
		return value.Value{}, wireerr.New(wireerr.UnexpectedToken, "unrecognized RESP value type")
	}
}
