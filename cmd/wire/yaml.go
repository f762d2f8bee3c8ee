// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/base64"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/wireline-go/wireline/lib/value"
)

// encodeYAML renders v as YAML for human inspection (convert's
// "-to=yaml" target). YAML is display-only here: there is no
// corresponding decodeYAML, since a Value decoded back from YAML text
// couldn't recover which scalar types (Int vs UInt vs Float64, Bytes
// vs String) the original wire format distinguished.
func encodeYAML(v value.Value) ([]byte, error) {
	return yaml.Marshal(yamlAny(v))
}

func yamlAny(v value.Value) any {
	switch v.Kind {
	case value.Null:
		return nil
	case value.Bool:
		return v.B
	case value.Int:
		return v.I
	case value.UInt:
		return v.U
	case value.BigInt:
		return v.Z.String()
	case value.Float32:
		return v.F32
	case value.Float64:
		return v.F64
	case value.Bytes:
		return base64.StdEncoding.EncodeToString(v.Bin)
	case value.String:
		return v.Str
	case value.Array:
		items := make([]any, len(v.Arr))
		for i, item := range v.Arr {
			items[i] = yamlAny(item)
		}
		return items
	case value.Object:
		m := yaml.MapSlice{}
		for _, member := range v.Obj {
			m = append(m, yaml.MapItem{Key: member.Key, Value: yamlAny(member.Value)})
		}
		return m
	case value.Map:
		m := yaml.MapSlice{}
		for _, pair := range v.Pairs {
			m = append(m, yaml.MapItem{Key: yamlAny(pair.Key), Value: yamlAny(pair.Value)})
		}
		return m
	case value.Extension:
		if v.Payload == nil {
			return nil
		}
		return map[string]any{
			"tag":     v.Tag,
			"payload": yamlAny(*v.Payload),
		}
	case value.Raw:
		return base64.StdEncoding.EncodeToString(v.RawBytes)
	default:
		return fmt.Sprintf("<unrepresentable kind %v>", v.Kind)
	}
}
