// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package bson adapts this module's Value tree to BSON, the boundary
// format MongoDB drivers and tooling expect (spec §6). It is a thin
// wrapper over go.mongodb.org/mongo-driver/v2/bson, following the same
// "wrap a real backend behind this module's own Encode/Decode names"
// shape as internal/detcbor's CBOR wrapper.
package bson

import (
	"math"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// Encode marshals v as a BSON document. v must be an Object or a Map
// whose keys are all strings — BSON documents are ordered string-keyed
// maps, with no top-level scalar or array form.
func Encode(v value.Value) ([]byte, error) {
	doc, err := toD(v)
	if err != nil {
		return nil, err
	}
	return bson.Marshal(doc)
}

// Decode unmarshals a BSON document into a Value of Kind Object,
// preserving field order.
func Decode(data []byte) (value.Value, error) {
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return value.Value{}, wireerr.New(wireerr.InvalidHeader, "malformed BSON document: "+err.Error())
	}
	return fromD(doc)
}

func toD(v value.Value) (bson.D, error) {
	switch v.Kind {
	case value.Object:
		out := make(bson.D, 0, len(v.Obj))
		for _, m := range v.Obj {
			elem, err := toAny(m.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, bson.E{Key: m.Key, Value: elem})
		}
		return out, nil
	case value.Map:
		out := make(bson.D, 0, len(v.Pairs))
		for _, p := range v.Pairs {
			if p.Key.Kind != value.String {
				return nil, wireerr.New(wireerr.UnexpectedToken, "BSON document keys must be strings")
			}
			elem, err := toAny(p.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, bson.E{Key: p.Key.Str, Value: elem})
		}
		return out, nil
	default:
		return nil, wireerr.New(wireerr.UnexpectedToken, "BSON top level must be an Object or a Map")
	}
}

// toAny converts an arbitrary Value to whatever native Go type the
// mongo-driver bson package expects for that shape.
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
			return nil, wireerr.New(wireerr.InvalidSize, "BSON has no unsigned 64-bit integer type")
		}
		return int64(v.U), nil
	case value.BigInt:
		return nil, wireerr.New(wireerr.InvalidSize, "BSON has no arbitrary-precision integer type")
	case value.Float32:
		return float64(v.F32), nil
	case value.Float64:
		return v.F64, nil
	case value.Bytes:
		return bson.Binary{Subtype: 0x00, Data: v.Bin}, nil
	case value.String:
		return v.Str, nil
	case value.Array:
		out := make(bson.A, len(v.Arr))
		for i, item := range v.Arr {
			converted, err := toAny(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case value.Object, value.Map:
		return toD(v)
	case value.Extension:
		if v.Payload == nil {
			return nil, nil
		}
		return toAny(*v.Payload)
	case value.Raw:
		return v.RawBytes, nil
	default:
		return nil, wireerr.New(wireerr.UnexpectedToken, "value Kind has no BSON representation")
	}
}

func fromD(doc bson.D) (value.Value, error) {
	members := make([]value.Member, 0, len(doc))
	for _, e := range doc {
		v, err := fromAny(e.Value)
		if err != nil {
			return value.Value{}, err
		}
		members = append(members, value.Member{Key: e.Key, Value: v})
	}
	return value.ObjectValue(members), nil
}

func fromAny(x any) (value.Value, error) {
	switch t := x.(type) {
	case nil:
		return value.NullValue(), nil
	case bool:
		return value.BoolValue(t), nil
	case int32:
		return value.IntValue(int64(t)), nil
	case int64:
		return value.IntValue(t), nil
	case float64:
		return value.Float64Value(t), nil
	case string:
		return value.StringValue(t), nil
	case bson.Binary:
		return value.BytesValue(t.Data), nil
	case bson.D:
		return fromD(t)
	case bson.A:
		items := make([]value.Value, len(t))
		for i, elem := range t {
			v, err := fromAny(elem)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.ArrayValue(items), nil
	case bson.DateTime:
		return value.IntValue(int64(t)), nil
	default:
		return value.Value{}, wireerr.New(wireerr.UnexpectedToken, "unsupported BSON element type in document")
	}
}
