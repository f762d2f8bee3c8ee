// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package wireerr defines the error-kind taxonomy shared by every codec
// in this module. Each codec package constructs *wireerr.Error values
// rather than bare fmt.Errorf strings, so callers can branch on Kind
// with errors.As regardless of which wire format raised the error.
package wireerr

import "fmt"

// Kind enumerates the error categories every codec in this module can
// raise. A single taxonomy lets callers write format-agnostic error
// handling (e.g. "retry on UnexpectedEnd, never on InvalidReference").
type Kind int

const (
	// UnexpectedEnd means a read crossed the end of the input buffer.
	UnexpectedEnd Kind = iota
	// InvalidHeader means format-specific header bytes were wrong
	// (Smile's 4-byte prefix, BSON's document length, ...).
	InvalidHeader
	// UnsupportedVersion means a version byte/flag outside what this
	// implementation understands (Smile version != 0, ...).
	UnsupportedVersion
	// UnexpectedToken means a byte was encountered outside the
	// defined token table for the current mode (MessagePack head,
	// CBOR major/minor, Smile value/key-mode token, ...).
	UnexpectedToken
	// InvalidUTF8 means string bytes failed UTF-8 validation.
	InvalidUTF8
	// InvalidReference means a Smile shared-table index was at or
	// beyond the live table size.
	InvalidReference
	// MalformedVarint means a variable-length integer's terminator
	// was never seen within the allowed byte count (Smile VInt,
	// CBOR minor-length bytes).
	MalformedVarint
	// InvalidSize means a decoded value's span did not match an
	// expected size (CBOR Validate).
	InvalidSize
	// DepthExceeded means recursion depth exceeded the configured cap.
	DepthExceeded
	// KeyNotFound means the path navigator could not find an object
	// key segment.
	KeyNotFound
	// IndexOutOfBounds means the path navigator's array index
	// segment was beyond the container's length.
	IndexOutOfBounds
	// InvalidJSON means the JSON scanner hit a malformed literal,
	// unexpected character, or mismatched brace (strict mode only).
	InvalidJSON
)

func (k Kind) String() string {
	switch k {
	case UnexpectedEnd:
		return "UnexpectedEnd"
	case InvalidHeader:
		return "InvalidHeader"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case UnexpectedToken:
		return "UnexpectedToken"
	case InvalidUTF8:
		return "InvalidUTF8"
	case InvalidReference:
		return "InvalidReference"
	case MalformedVarint:
		return "MalformedVarint"
	case InvalidSize:
		return "InvalidSize"
	case DepthExceeded:
		return "DepthExceeded"
	case KeyNotFound:
		return "KeyNotFound"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case InvalidJSON:
		return "InvalidJSON"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type every codec package raises. Offset
// is the byte position in the input (or -1 when not applicable, e.g.
// encode-side errors). Context is a short human-readable description
// such as "expected object, saw major=2".
type Error struct {
	Kind    Kind
	Offset  int
	Context string
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Context)
	}
	return fmt.Sprintf("%s at byte %d: %s", e.Kind, e.Offset, e.Context)
}

// New constructs an *Error with no byte offset (encode-side, or an
// offset the caller doesn't track).
func New(kind Kind, context string) *Error {
	return &Error{Kind: kind, Offset: -1, Context: context}
}

// At constructs an *Error anchored to a byte offset in the input.
func At(kind Kind, offset int, context string) *Error {
	return &Error{Kind: kind, Offset: offset, Context: context}
}
