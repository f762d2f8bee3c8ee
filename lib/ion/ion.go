// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package ion adapts this module's Value tree to Amazon Ion binary
// encoding, a boundary format per spec §6. It wraps
// github.com/amazon-ion/ion-go/ion the way internal/detcbor wraps
// fxamacker/cbor, converting through Go's generic interface{} shape
// rather than driving the writer/reader token API directly.
package ion

import (
	"math"
	"math/big"

	"github.com/amazon-ion/ion-go/ion"

	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// Encode serializes v as binary Ion.
func Encode(v value.Value) ([]byte, error) {
	native, err := toAny(v)
	if err != nil {
		return nil, err
	}
	return ion.MarshalBinary(native)
}

// Decode parses a complete Ion value.
func Decode(data []byte) (value.Value, error) {
	var native any
	if err := ion.Unmarshal(data, &native); err != nil {
		return value.Value{}, wireerr.New(wireerr.InvalidHeader, "malformed Ion input: "+err.Error())
	}
	return fromAny(native)
}

func toAny(v value.Value) (any, error) {
	switch v.Kind {
	case value.Null:
		return nil, nil
	case value.Bool:
		return v.B, nil
	case value.Int:
		return v.I, nil
	case value.UInt:
		if v.U > math.MaxInt64 {
			return new(big.Int).SetUint64(v.U), nil
		}
		return int64(v.U), nil
	case value.BigInt:
		return v.Z, nil
	case value.Float32:
		return float64(v.F32), nil
	case value.Float64:
		return v.F64, nil
	case value.Bytes:
		return v.Bin, nil
	case value.String:
		return v.Str, nil
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
		return out, nil
	case value.Map:
		out := make(map[string]any, len(v.Pairs))
		for _, p := range v.Pairs {
			if p.Key.Kind != value.String {
				return nil, wireerr.New(wireerr.UnexpectedToken, "Ion struct keys must be strings")
			}
			converted, err := toAny(p.Value)
			if err != nil {
				return nil, err
			}
			out[p.Key.Str] = converted
		}
		return out, nil
	case value.Extension:
		if v.Payload == nil {
			return nil, nil
		}
		return toAny(*v.Payload)
	case value.Raw:
		return v.RawBytes, nil
	default:
		return nil, wireerr.New(wireerr.UnexpectedToken, "value Kind has no Ion representation")
	}
}

func fromAny(x any) (value.Value, error) {
	switch t := x.(type) {
	case nil:
		return value.NullValue(), nil
	case bool:
		return value.BoolValue(t), nil
	case int:
		return value.IntValue(int64(t)), nil
	case int64:
		return value.IntValue(t), nil
	case *big.Int:
		return value.BigIntValue(t), nil
	case float64:
		return value.Float64Value(t), nil
	case string:
		return value.StringValue(t), nil
	case []byte:
		return value.BytesValue(t), nil
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
		members := make([]value.Member, 0, len(t))
		for k, elem := range t {
			v, err := fromAny(elem)
			if err != nil {
				return value.Value{}, err
			}
			members = append(members, value.Member{Key: k, Value: v})
		}
		return value.ObjectValue(members), nil
	default:
		return value.Value{}, wireerr.New(wireerr.UnexpectedToken, "unrecognized decoded Ion element type")
	}
}
