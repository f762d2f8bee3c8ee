// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package json implements the tolerant JSON codec described in spec
// §4.6: a whitespace-skipping recursive-descent decoder over the full
// RFC 8259 grammar, extended with signed-exponent scientific notation,
// a base64 binary round-trip convention, and an optional partial-parse
// recovery mode, plus a default and a key-stable encoder.
package json

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// DefaultBinaryPrefix is the data-URI sentinel a decoded string is
// checked against to recover a Bytes value (spec §4.6).
const DefaultBinaryPrefix = "data:application/octet-stream;base64,"

// DefaultMaxDepth bounds decoder recursion.
const DefaultMaxDepth = 1024

// DecOptions configures a Decoder (spec §6's JSON decoder config
// struct).
type DecOptions struct {
	// Partial recovers the assembled-so-far container on EOF or a
	// malformed element inside an array/object instead of failing.
	Partial bool
	// AllowProtoKey disables the __proto__ key rejection.
	AllowProtoKey bool
	// BinaryPrefix overrides DefaultBinaryPrefix; empty uses
	// DefaultBinaryPrefix, so the binary round-trip convention is
	// always active.
	BinaryPrefix string
	// MaxDepth overrides DefaultMaxDepth.
	MaxDepth int
	// StripComments runs a JSONC comment/trailing-comma pre-filter
	// over the input before parsing (SPEC_FULL's supplemented
	// tolerant-decoder feature).
	StripComments bool
}

// Decoder parses Values from a JSON byte buffer. Not safe for
// concurrent use.
type Decoder struct {
	r    *buffer.Reader
	opts DecOptions
}

// NewDecoder returns a Decoder over data under opts.
func NewDecoder(data []byte, opts DecOptions) *Decoder {
	if opts.BinaryPrefix == "" {
		opts.BinaryPrefix = DefaultBinaryPrefix
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.StripComments {
		data = StripComments(data)
	}
	return &Decoder{r: buffer.NewReader(data), opts: opts}
}

// Decode parses exactly one JSON value from data under opts.
func Decode(data []byte, opts DecOptions) (value.Value, error) {
	d := NewDecoder(data, opts)
	return d.ReadAny(0)
}

func (d *Decoder) skipWS() {
	for {
		b, err := d.r.Peek()
		if err != nil {
			return
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			d.r.Skip(1)
		default:
			return
		}
	}
}

// ReadAny parses one JSON value (spec §4.6's recursive-descent entry
// point).
func (d *Decoder) ReadAny(depth int) (value.Value, error) {
	if depth > d.opts.MaxDepth {
		return value.Value{}, wireerr.At(wireerr.DepthExceeded, d.r.Pos(), "max depth exceeded")
	}
	d.skipWS()
	b, err := d.r.Peek()
	if err != nil {
		return value.Value{}, wireerr.At(wireerr.InvalidJSON, d.r.Pos(), "unexpected end of input")
	}
	switch {
	case b == '{':
		return d.readObject(depth)
	case b == '[':
		return d.readArray(depth)
	case b == '"':
		s, err := d.readString()
		if err != nil {
			return value.Value{}, err
		}
		return d.stringToValue(s), nil
	case b == 't':
		return d.readLiteral("true", value.BoolValue(true))
	case b == 'f':
		return d.readLiteral("false", value.BoolValue(false))
	case b == 'n':
		return d.readLiteral("null", value.NullValue())
	case b == '-' || (b >= '0' && b <= '9'):
		return d.readNumber()
	default:
		return value.Value{}, wireerr.At(wireerr.InvalidJSON, d.r.Pos(), "unexpected character")
	}
}

// stringToValue recovers a Bytes value when s carries the configured
// binary-round-trip prefix, else returns a plain String (spec §4.6).
func (d *Decoder) stringToValue(s string) value.Value {
	if d.opts.BinaryPrefix != "" && strings.HasPrefix(s, d.opts.BinaryPrefix) {
		if b, ok := decodeBase64(s[len(d.opts.BinaryPrefix):]); ok {
			return value.BytesValue(b)
		}
	}
	return value.StringValue(s)
}

func (d *Decoder) readLiteral(word string, v value.Value) (value.Value, error) {
	start := d.r.Pos()
	for i := 0; i < len(word); i++ {
		b, err := d.r.U8()
		if err != nil || b != word[i] {
			return value.Value{}, wireerr.At(wireerr.InvalidJSON, start, "invalid literal")
		}
	}
	return v, nil
}

// readNumber scans a JSON number, including the signed-exponent
// extension (spec §4.6: "1.5e+10", "1E-3").
func (d *Decoder) readNumber() (value.Value, error) {
	start := d.r.Pos()
	isFloat := false
	consume := func(pred func(byte) bool) {
		for {
			b, err := d.r.Peek()
			if err != nil || !pred(b) {
				return
			}
			d.r.Skip(1)
		}
	}
	if b, _ := d.r.Peek(); b == '-' {
		d.r.Skip(1)
	}
	consume(isDigit)
	if b, _ := d.r.Peek(); b == '.' {
		isFloat = true
		d.r.Skip(1)
		consume(isDigit)
	}
	if b, _ := d.r.Peek(); b == 'e' || b == 'E' {
		isFloat = true
		d.r.Skip(1)
		if b, _ := d.r.Peek(); b == '+' || b == '-' {
			d.r.Skip(1)
		}
		consume(isDigit)
	}
	end := d.r.Pos()
	text := string(d.r.Data()[start:end])
	if text == "" || text == "-" {
		return value.Value{}, wireerr.At(wireerr.InvalidJSON, start, "malformed number")
	}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return value.Value{}, wireerr.At(wireerr.InvalidJSON, start, "malformed float literal")
		}
		return value.Float64Value(f), nil
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return value.IntValue(n), nil
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return value.UIntValue(u), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return value.Value{}, wireerr.At(wireerr.InvalidJSON, start, "integer literal overflows float64")
	}
	return value.Float64Value(f), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// readString scans one JSON string literal, including \uXXXX escapes
// and UTF-16 surrogate pairs.
func (d *Decoder) readString() (string, error) {
	start := d.r.Pos()
	if b, err := d.r.U8(); err != nil || b != '"' {
		return "", wireerr.At(wireerr.InvalidJSON, start, "expected string")
	}
	var sb strings.Builder
	for {
		b, err := d.r.U8()
		if err != nil {
			return "", wireerr.At(wireerr.UnexpectedEnd, d.r.Pos(), "unterminated string")
		}
		switch b {
		case '"':
			return sb.String(), nil
		case '\\':
			if err := d.readEscape(&sb); err != nil {
				return "", err
			}
		default:
			if b < 0x20 {
				return "", wireerr.At(wireerr.InvalidJSON, d.r.Pos()-1, "control character in string")
			}
			sb.WriteByte(b)
		}
	}
}

func (d *Decoder) readEscape(sb *strings.Builder) error {
	b, err := d.r.U8()
	if err != nil {
		return wireerr.At(wireerr.UnexpectedEnd, d.r.Pos(), "unterminated escape")
	}
	switch b {
	case '"', '\\', '/':
		sb.WriteByte(b)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r1, err := d.readHex4()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(rune(r1)) {
			start := d.r.Pos()
			b1, err1 := d.r.U8()
			b2, err2 := d.r.U8()
			if err1 == nil && err2 == nil && b1 == '\\' && b2 == 'u' {
				r2, err := d.readHex4()
				if err != nil {
					return err
				}
				dec := utf16.DecodeRune(rune(r1), rune(r2))
				if dec != utf8.RuneError {
					sb.WriteRune(dec)
					return nil
				}
			}
			d.r.SeekTo(start)
			sb.WriteRune(utf8.RuneError)
			return nil
		}
		sb.WriteRune(rune(r1))
	default:
		return wireerr.At(wireerr.InvalidJSON, d.r.Pos()-1, "invalid escape character")
	}
	return nil
}

func (d *Decoder) readHex4() (int32, error) {
	start := d.r.Pos()
	var v int32
	for i := 0; i < 4; i++ {
		b, err := d.r.U8()
		if err != nil {
			return 0, wireerr.At(wireerr.UnexpectedEnd, start, "truncated \\u escape")
		}
		var nibble int32
		switch {
		case b >= '0' && b <= '9':
			nibble = int32(b - '0')
		case b >= 'a' && b <= 'f':
			nibble = int32(b-'a') + 10
		case b >= 'A' && b <= 'F':
			nibble = int32(b-'A') + 10
		default:
			return 0, wireerr.At(wireerr.InvalidJSON, start, "invalid \\u escape")
		}
		v = v<<4 | nibble
	}
	return v, nil
}

// readArray parses "[" ... "]", tolerating trailing/repeated commas
// and recovering a partial array on EOF or a malformed element when
// opts.Partial is set (spec §4.6).
func (d *Decoder) readArray(depth int) (value.Value, error) {
	d.r.Skip(1) // '['
	var items []value.Value
	d.skipWS()
	for {
		if b, err := d.r.Peek(); err == nil && b == ']' {
			d.r.Skip(1)
			return value.ArrayValue(items), nil
		}
		if b, err := d.r.Peek(); err == nil && b == ',' {
			d.r.Skip(1) // tolerate a stray/repeated comma, no element
			d.skipWS()
			continue
		}
		if _, err := d.r.Peek(); err != nil {
			if d.opts.Partial {
				return value.ArrayValue(items), nil
			}
			return value.Value{}, wireerr.At(wireerr.UnexpectedEnd, d.r.Pos(), "unterminated array")
		}
		v, err := d.ReadAny(depth + 1)
		if err != nil {
			if d.opts.Partial {
				return value.ArrayValue(items), nil
			}
			return value.Value{}, err
		}
		items = append(items, v)
		d.skipWS()
		if b, err := d.r.Peek(); err == nil && b == ',' {
			d.r.Skip(1)
		}
		d.skipWS()
	}
}

// readObject parses "{" ... "}" the way readArray parses arrays, and
// additionally rejects the "__proto__" key as a fatal error unless
// opts.AllowProtoKey is set (spec §4.6).
func (d *Decoder) readObject(depth int) (value.Value, error) {
	d.r.Skip(1) // '{'
	var members []value.Member
	d.skipWS()
	for {
		if b, err := d.r.Peek(); err == nil && b == '}' {
			d.r.Skip(1)
			return value.ObjectValue(members), nil
		}
		if b, err := d.r.Peek(); err == nil && b == ',' {
			d.r.Skip(1)
			d.skipWS()
			continue
		}
		if b, err := d.r.Peek(); err != nil || b != '"' {
			if d.opts.Partial {
				return value.ObjectValue(members), nil
			}
			return value.Value{}, wireerr.At(wireerr.InvalidJSON, d.r.Pos(), "expected string key")
		}
		key, err := d.readString()
		if err != nil {
			if d.opts.Partial {
				return value.ObjectValue(members), nil
			}
			return value.Value{}, err
		}
		if key == "__proto__" && !d.opts.AllowProtoKey {
			return value.Value{}, wireerr.At(wireerr.InvalidJSON, d.r.Pos(), "__proto__ key is rejected")
		}
		d.skipWS()
		if b, err := d.r.U8(); err != nil || b != ':' {
			if d.opts.Partial {
				return value.ObjectValue(members), nil
			}
			return value.Value{}, wireerr.At(wireerr.InvalidJSON, d.r.Pos(), "expected ':' after key")
		}
		v, err := d.ReadAny(depth + 1)
		if err != nil {
			if d.opts.Partial {
				return value.ObjectValue(members), nil
			}
			return value.Value{}, err
		}
		members = append(members, value.Member{Key: key, Value: v})
		d.skipWS()
		if b, err := d.r.Peek(); err == nil && b == ',' {
			d.r.Skip(1)
		}
		d.skipWS()
	}
}
