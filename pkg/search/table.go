// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"math/bits"
	"unsafe"

	"github.com/pbnjay/memory"
)

// Bound classifies a stored score against the window which produced it.
type Bound uint8

const (
	Exact      Bound = iota // score is the true value
	UpperBound              // search failed low, true value <= score
	LowerBound              // search failed high, true value >= score
)

func (bound Bound) String() string {
	switch bound {
	case Exact:
		return "exact"
	case UpperBound:
		return "upper"
	case LowerBound:
		return "lower"
	default:
		return "?"
	}
}

// Entry is a single transposition table record.
type Entry[M comparable] struct {
	Key   uint64
	Depth int
	Score int
	Move  M
	Bound Bound

	used bool
}

// Table is a fixed size hash-indexed memo of search results. Each key
// maps to exactly one slot and every store overwrites that slot, so the
// last write always wins. A Table belongs to one search call.
type Table[M comparable] struct {
	entries []Entry[M]
	mask    uint64

	Lookups, Hits, Stores int
}

// minTableEntries is the size of the smallest table ever allocated.
const minTableEntries = 1 << 10

// NewTable allocates a table using at most megabytes of memory, never more
// than an eighth of the machine's physical memory.
func NewTable[M comparable](megabytes int) *Table[M] {
	budget := uint64(megabytes) << 20
	if total := memory.TotalMemory(); total > 0 && budget > total/8 {
		budget = total / 8
	}

	size := uint64(unsafe.Sizeof(Entry[M]{}))
	count := budget / size
	if count < minTableEntries {
		count = minTableEntries
	}

	// round down to a power of two so keys can be masked into slots
	count = 1 << (63 - bits.LeadingZeros64(count))

	return &Table[M]{
		entries: make([]Entry[M], count),
		mask:    count - 1,
	}
}

// Lookup returns the entry stored for key, if the slot holds that key.
func (table *Table[M]) Lookup(key uint64) (Entry[M], bool) {
	table.Lookups++

	entry := table.entries[key&table.mask]
	if !entry.used || entry.Key != key {
		return Entry[M]{}, false
	}

	table.Hits++
	return entry, true
}

// Store writes entry into the slot for key.
func (table *Table[M]) Store(key uint64, entry Entry[M]) {
	table.Stores++

	entry.Key = key
	entry.used = true
	table.entries[key&table.mask] = entry
}

// Len returns the number of slots in the table.
func (table *Table[M]) Len() int {
	return len(table.entries)
}

// classify returns the bound of a finished node given the window it was
// searched with.
func classify(score, alpha, beta int) Bound {
	switch {
	case score <= alpha:
		return UpperBound
	case score >= beta:
		return LowerBound
	default:
		return Exact
	}
}
