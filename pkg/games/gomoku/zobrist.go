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

package gomoku

import (
	"math"

	"lukechampine.com/frand"
)

// zobrist holds one random key per (cell, colour) pair and one for the
// side to move.
type zobrist struct {
	stones [Cells][2]uint64
	side   uint64
}

var keys = newZobrist()

func newZobrist() *zobrist {
	var table zobrist
	for cell := range table.stones {
		table.stones[cell][0] = randomKey()
		table.stones[cell][1] = randomKey()
	}

	table.side = randomKey()
	return &table
}

// randomKey never returns 0, so every stone changes the hash.
func randomKey() uint64 {
	return frand.Uint64n(math.MaxUint64) + 1
}

func (table *zobrist) stone(move Move, stone Stone) uint64 {
	return table.stones[move][stone-1]
}
