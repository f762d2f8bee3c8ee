// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"github.com/wireline-go/wireline/lib/buffer"
	"github.com/wireline-go/wireline/lib/pathnav"
	"github.com/wireline-go/wireline/lib/value"
	"github.com/wireline-go/wireline/lib/wireerr"
)

// Navigator adapts a CBOR buffer to pathnav.Navigable. Unlike
// MessagePack, CBOR's indefinite-length containers (minor 31) mean
// ReadHeader can report an unknown length; AtContainerEnd then lets
// pathnav step through children one at a time until the break byte.
type Navigator struct {
	r *buffer.Reader
}

// NewNavigator returns a Navigator positioned at the start of data.
func NewNavigator(data []byte) *Navigator {
	return &Navigator{r: buffer.NewReader(data)}
}

func (n *Navigator) Pos() int { return n.r.Pos() }

func (n *Navigator) AtContainerEnd() (bool, error) {
	b, err := n.r.Peek()
	if err != nil {
		return false, err
	}
	return b == breakByte, nil
}

func (n *Navigator) ReadHeader() (pathnav.HeaderKind, int, error) {
	d := &Decoder{r: n.r, maxDepth: DefaultMaxDepth}
	start := n.r.Pos()
	b, err := n.r.U8()
	if err != nil {
		return pathnav.HeaderOther, 0, err
	}
	major, minor := head(b)
	switch major {
	case majorArray:
		length, err := d.readMinorLen(minor)
		if err != nil {
			return pathnav.HeaderOther, 0, err
		}
		return pathnav.HeaderArray, int(length), nil
	case majorMap:
		length, err := d.readMinorLen(minor)
		if err != nil {
			return pathnav.HeaderOther, 0, err
		}
		return pathnav.HeaderObject, int(length), nil
	default:
		n.r.SeekTo(start)
		return pathnav.HeaderOther, 0, nil
	}
}

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

func (n *Navigator) SkipAny() error {
	d := &Decoder{r: n.r, maxDepth: DefaultMaxDepth}
	return d.SkipAny(0)
}

// Find advances to the value at path within data (spec §4.7).
func Find(data []byte, path pathnav.Path) (*Navigator, error) {
	nav := NewNavigator(data)
	if err := pathnav.Find(nav, path); err != nil {
		return nil, err
	}
	return nav, nil
}

// ReadAt resolves path within data and fully decodes the value found
// there (spec §8 seed scenario 7).
func ReadAt(data []byte, path pathnav.Path) (value.Value, error) {
	nav, err := Find(data, path)
	if err != nil {
		return value.Value{}, err
	}
	d := &Decoder{r: nav.r, maxDepth: DefaultMaxDepth}
	return d.ReadAny(0)
}

// ReadAsRaw resolves path within data and captures the exact byte
// span of the value found there without decoding it.
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

// ReadLevel produces a one-level-deep tree: array/object contents are
// returned as Raw nodes holding each element's exact byte span, for
// lazy later decoding (spec §4.4's decodeLevel/readLevel).
func ReadLevel(data []byte) (value.Value, error) {
	d := NewDecoder(data)
	return d.readLevel(0)
}

func (d *Decoder) readLevel(depth int) (value.Value, error) {
	start := d.r.Pos()
	b, err := d.r.Peek()
	if err != nil {
		return value.Value{}, err
	}
	major, _ := head(b)
	switch major {
	case majorArray:
		return d.readLevelArray(depth)
	case majorMap:
		return d.readLevelMap(depth)
	default:
		d.r.SeekTo(start)
		return d.ReadAny(depth)
	}
}

func (d *Decoder) readLevelArray(depth int) (value.Value, error) {
	nav := &Navigator{r: d.r}
	kind, length, err := nav.ReadHeader()
	if err != nil || kind != pathnav.HeaderArray {
		return value.Value{}, err
	}
	var items []value.Value
	if length != indefinite {
		items = make([]value.Value, 0, length)
		for i := 0; i < length; i++ {
			v, err := d.captureRawChild(depth)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.ArrayValue(items), nil
	}
	for {
		atEnd, err := nav.AtContainerEnd()
		if err != nil {
			return value.Value{}, err
		}
		if atEnd {
			d.r.Skip(1)
			break
		}
		v, err := d.captureRawChild(depth)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}
	return value.ArrayValue(items), nil
}

func (d *Decoder) readLevelMap(depth int) (value.Value, error) {
	nav := &Navigator{r: d.r}
	kind, length, err := nav.ReadHeader()
	if err != nil || kind != pathnav.HeaderObject {
		return value.Value{}, err
	}
	var members []value.Member
	readEntry := func() error {
		key, err := d.ReadAny(depth + 1)
		if err != nil {
			return err
		}
		if key.Kind != value.String {
			return wireerr.At(wireerr.UnexpectedToken, d.r.Pos(), "readLevel only supports string-keyed maps")
		}
		v, err := d.captureRawChild(depth)
		if err != nil {
			return err
		}
		members = append(members, value.Member{Key: key.Str, Value: v})
		return nil
	}
	if length != indefinite {
		for i := 0; i < length; i++ {
			if err := readEntry(); err != nil {
				return value.Value{}, err
			}
		}
		return value.ObjectValue(members), nil
	}
	for {
		atEnd, err := nav.AtContainerEnd()
		if err != nil {
			return value.Value{}, err
		}
		if atEnd {
			d.r.Skip(1)
			break
		}
		if err := readEntry(); err != nil {
			return value.Value{}, err
		}
	}
	return value.ObjectValue(members), nil
}

// captureRawChild captures one complete value's exact byte span
// without decoding its contents, the "container contents returned as
// RawValue nodes" behavior spec §4.4 describes for decodeLevel.
func (d *Decoder) captureRawChild(depth int) (value.Value, error) {
	start := d.r.Pos()
	if err := d.SkipAny(depth + 1); err != nil {
		return value.Value{}, err
	}
	return value.RawValue(d.r.Data()[start:d.r.Pos()]), nil
}
