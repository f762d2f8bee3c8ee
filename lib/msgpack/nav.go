// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package msgpack

import (
	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/pathnav"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// Navigator adapts a MessagePack buffer to pathnav.Navigable, giving
// O(visited bytes) lookup instead of O(document size) (spec §4.7).
// MessagePack has no indefinite-length containers, so AtContainerEnd
// is never meaningful here and always reports false.
type Navigator struct {
	r *buffer.Reader
}

// NewNavigator returns a Navigator positioned at the start of data.
func NewNavigator(data []byte) *Navigator {
	return &Navigator{r: buffer.NewReader(data)}
}

func (n *Navigator) Pos() int { return n.r.Pos() }

func (n *Navigator) AtContainerEnd() (bool, error) { return false, nil }

// ReadHeader reads a container header (array/map, any width) and
// returns its element count, or treats any other head byte as an
// opaque scalar the caller should SkipAny/decode directly.
func (n *Navigator) ReadHeader() (pathnav.HeaderKind, int, error) {
	head, err := n.r.U8()
	if err != nil {
		return pathnav.HeaderOther, 0, err
	}
	switch {
	case head >= fixmapMask && head <= fixmapMax:
		return pathnav.HeaderObject, int(head & 0x0f), nil
	case head >= fixarrayMask && head <= fixarrayMax:
		return pathnav.HeaderArray, int(head & 0x0f), nil
	}
	switch head {
	case hMap16:
		l, err := n.r.U16()
		return pathnav.HeaderObject, int(l), err
	case hMap32:
		l, err := n.r.U32()
		return pathnav.HeaderObject, int(l), err
	case hArray16:
		l, err := n.r.U16()
		return pathnav.HeaderArray, int(l), err
	case hArray32:
		l, err := n.r.U32()
		return pathnav.HeaderArray, int(l), err
	default:
		// Not a container head: rewind so SkipAny/ReadAny can
		// re-read it as a scalar.
		n.r.SeekTo(n.r.Pos() - 1)
		return pathnav.HeaderOther, 0, nil
	}
}

// ReadKey reads one object entry's key. MessagePack keys are
// themselves full values; per spec §4.3 Bureau-style usage always
// uses string keys, so a non-string key here is an error from the
// navigator's point of view (callers wanting non-string-keyed Map
// traversal should decode fully instead of navigating).
func (n *Navigator) ReadKey() (string, error) {
	d := &Decoder{r: n.r, maxDepth: DefaultMaxDepth}
	v, err := d.ReadAny(0)
	if err != nil {
		return "", err
	}
	if v.Kind != value.String {
		return "", wireerr.At(wireerr.UnexpectedToken, n.r.Pos(), "non-string map key under path navigation")
	}
	return v.Str, nil
}

// SkipAny advances past one complete value without decoding it
// (spec §4.3's skipAny). It is implemented as ReadAny with the result
// discarded; MessagePack headers always carry an exact byte length so
// there is no cheaper representation than walking the structure once.
func (n *Navigator) SkipAny() error {
	d := &Decoder{r: n.r, maxDepth: DefaultMaxDepth}
	_, err := d.ReadAny(0)
	return err
}

// Find advances to the value at path within data and returns the
// navigator positioned there; its Pos is the byte offset of that
// value (spec §4.7's find(path) -> cursor).
func Find(data []byte, path pathnav.Path) (*Navigator, error) {
	nav := NewNavigator(data)
	if err := pathnav.Find(nav, path); err != nil {
		return nil, err
	}
	return nav, nil
}

// ReadAt resolves path within data and fully decodes the value found
// there.
func ReadAt(data []byte, path pathnav.Path) (value.Value, error) {
	nav, err := Find(data, path)
	if err != nil {
		return value.Value{}, err
	}
	d := &Decoder{r: nav.r, maxDepth: DefaultMaxDepth}
	return d.ReadAny(0)
}

// ReadAsRaw resolves path within data and captures the exact byte
// span of the value found there without decoding it, per spec §3.1's
// RawValue sentinel.
func ReadAsRaw(data []byte, path pathnav.Path) (value.Value, error) {
	nav, err := Find(data, path)
	if err != nil {
		return value.Value{}, err
	}
	start := nav.Pos()
	if err := nav.SkipAny(); err != nil {
		return value.Value{}, err
	}
	return value.RawValue(data[start:nav.Pos()]), nil
}
