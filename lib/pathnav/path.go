// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package pathnav implements the generic cursor-advancing path
// resolution algorithm described in spec §4.7, shared by the
// MessagePack and CBOR decoders. It knows nothing about either wire
// format: it drives a Navigable implementation that does.
package pathnav

import "github.com/wireline-go/wireline/lib/wireerr"

// Segment is one step of a Path: either a string (object key) or a
// non-negative integer (array index). Exactly one of Key/IsIndex
// applies.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path is a sequence of Segments resolved left to right.
type Path []Segment

// Key returns a string path segment.
func Key(k string) Segment { return Segment{Key: k} }

// Index returns an array-index path segment.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

// HeaderKind enumerates what ReadHeader found at the cursor.
type HeaderKind int

const (
	HeaderObject HeaderKind = iota
	HeaderArray
	HeaderOther
)

// Navigable is the minimal surface a binary decoder exposes to let
// pathnav walk it without materializing the full value tree. Every
// method advances the cursor forward only; "skip" costs are
// proportional to the bytes actually skipped, never to document size.
type Navigable interface {
	// ReadHeader inspects (without fully consuming, beyond the header
	// itself) the value at the cursor: HeaderObject/HeaderArray report
	// their entry count (or -1 for an indefinite-length CBOR
	// container, which the caller must then walk key-by-key / one
	// child at a time); HeaderOther means "treat as an opaque scalar,
	// call SkipAny/ReadAny on it directly".
	ReadHeader() (kind HeaderKind, length int, err error)

	// ReadKey reads one object entry's key, leaving the cursor at that
	// entry's value. Only valid immediately after ReadHeader reported
	// HeaderObject.
	ReadKey() (string, error)

	// SkipAny advances past exactly one complete value at the cursor
	// without decoding it.
	SkipAny() error

	// AtContainerEnd reports whether an indefinite-length container's
	// terminator (e.g. CBOR's break byte) is at the cursor. Definite-
	// length formats/containers never need this; it returns false.
	AtContainerEnd() (bool, error)

	// Pos returns the current cursor position, for error offsets.
	Pos() int
}

// Find advances nav's cursor to the value at path, per spec §4.7's
// algorithm: for each Object/Map header, read keys until a match or
// skip the value; for each Array header, skip index times then
// descend. Returns KeyNotFound / IndexOutOfBounds on failure.
func Find(nav Navigable, path Path) error {
	for _, seg := range path {
		kind, length, err := nav.ReadHeader()
		if err != nil {
			return err
		}
		switch kind {
		case HeaderObject:
			if err := findInObject(nav, seg, length); err != nil {
				return err
			}
		case HeaderArray:
			if err := findInArray(nav, seg, length); err != nil {
				return err
			}
		default:
			return wireerr.At(wireerr.KeyNotFound, nav.Pos(), "path descends into a scalar value")
		}
	}
	return nil
}

func findInObject(nav Navigable, seg Segment, length int) error {
	if seg.IsIndex {
		return wireerr.At(wireerr.KeyNotFound, nav.Pos(), "expected object key segment, path has an index")
	}
	if length < 0 {
		return findInIndefiniteObject(nav, seg)
	}
	for i := 0; i < length; i++ {
		key, err := nav.ReadKey()
		if err != nil {
			return err
		}
		if key == seg.Key {
			return nil // cursor is now at the matching value
		}
		if err := nav.SkipAny(); err != nil {
			return err
		}
	}
	return wireerr.At(wireerr.KeyNotFound, nav.Pos(), "key "+seg.Key+" not found")
}

func findInIndefiniteObject(nav Navigable, seg Segment) error {
	for {
		done, err := nav.AtContainerEnd()
		if err != nil {
			return err
		}
		if done {
			return wireerr.At(wireerr.KeyNotFound, nav.Pos(), "key "+seg.Key+" not found")
		}
		key, err := nav.ReadKey()
		if err != nil {
			return err
		}
		if key == seg.Key {
			return nil
		}
		if err := nav.SkipAny(); err != nil {
			return err
		}
	}
}

func findInArray(nav Navigable, seg Segment, length int) error {
	if !seg.IsIndex {
		return wireerr.At(wireerr.IndexOutOfBounds, nav.Pos(), "expected array index segment, path has a key")
	}
	if length >= 0 {
		if seg.Index >= length {
			return wireerr.At(wireerr.IndexOutOfBounds, nav.Pos(), "index beyond array length")
		}
		for i := 0; i < seg.Index; i++ {
			if err := nav.SkipAny(); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < seg.Index; i++ {
		done, err := nav.AtContainerEnd()
		if err != nil {
			return err
		}
		if done {
			return wireerr.At(wireerr.IndexOutOfBounds, nav.Pos(), "index beyond indefinite array length")
		}
		if err := nav.SkipAny(); err != nil {
			return err
		}
	}
	done, err := nav.AtContainerEnd()
	if err != nil {
		return err
	}
	if done {
		return wireerr.At(wireerr.IndexOutOfBounds, nav.Pos(), "index beyond indefinite array length")
	}
	return nil
}
