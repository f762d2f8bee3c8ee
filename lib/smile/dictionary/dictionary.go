// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Package dictionary implements the FIFO shared-string table Smile
// encoders and decoders keep for key names and short string values
// (spec §4.5). Both sides must build the same table in the same
// order from the same byte stream, so the table's only job is
// insertion-ordered lookup — the hash bucket below exists purely to
// speed up the encoder's "have I seen this string" check and has no
// effect on wire bytes.
package dictionary

import "github.com/zeebo/blake3"

// DefaultCapacity matches spec §6's Smile decoder default
// (maxSharedReferences: u16, default 1024).
const DefaultCapacity = 1024

const bucketCount = 64

// Table is a capacity-bounded FIFO string table. Index 0 is the
// oldest live entry; strings are appended in encounter order and the
// whole table is cleared and restarted once it reaches capacity
// (spec §4.5's "clear-and-restart" eviction policy).
type Table struct {
	capacity int
	entries  []string
	buckets  [bucketCount][]int // indices into entries, by hash bucket
}

// New returns an empty Table bounded at capacity entries.
func New(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table{capacity: capacity}
}

// Reset empties the table, required before every top-level
// encode/decode call per spec §5's "MUST be cleared" resource rule.
func (t *Table) Reset() {
	t.entries = t.entries[:0]
	for i := range t.buckets {
		t.buckets[i] = nil
	}
}

// Len returns the number of live entries.
func (t *Table) Len() int { return len(t.entries) }

// Lookup returns the index of s in the table and whether it was
// found, using a BLAKE3-bucketed linear scan (grounded on the
// teacher's zeebo/blake3 dependency — used here as a fast
// string-equality pre-filter, not for any cryptographic purpose).
func (t *Table) Lookup(s string) (int, bool) {
	b := bucket(s)
	for _, idx := range t.buckets[b] {
		if t.entries[idx] == s {
			return idx, true
		}
	}
	return 0, false
}

// Get returns the string at index, or "" and false if out of range.
func (t *Table) Get(index int) (string, bool) {
	if index < 0 || index >= len(t.entries) {
		return "", false
	}
	return t.entries[index], true
}

// Add appends s to the table in encounter order, clearing and
// restarting first if the table is at capacity. Returns the index s
// was stored at.
func (t *Table) Add(s string) int {
	if len(t.entries) >= t.capacity {
		t.Reset()
	}
	idx := len(t.entries)
	t.entries = append(t.entries, s)
	b := bucket(s)
	t.buckets[b] = append(t.buckets[b], idx)
	return idx
}

func bucket(s string) int {
	sum := blake3.Sum256([]byte(s))
	return int(sum[0]) % bucketCount
}
