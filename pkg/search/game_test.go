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

// walk is a small two player game used to exercise the search: a token
// on a grid of values moves right, down or diagonally, and each player
// collects the value of the cells the token lands on.
type walk struct {
	values [][]int

	x, y  int
	diff  int // first player's tally minus second player's
	first bool

	stack []walkState
}

type walkState struct {
	x, y, diff int
	first      bool
}

const walkSize = 64

func newWalk(seed uint64) *walk {
	values := make([][]int, walkSize)
	state := seed | 1
	for y := range values {
		values[y] = make([]int, walkSize)
		for x := range values[y] {
			// xorshift, deterministic per seed
			state ^= state << 13
			state ^= state >> 7
			state ^= state << 17
			values[y][x] = int(state%41) - 20
		}
	}

	return &walk{values: values, first: true}
}

func (g *walk) LegalMoves() []int {
	var moves []int
	for move := 0; move < 3; move++ {
		x, y := g.target(move)
		if x < walkSize && y < walkSize {
			moves = append(moves, move)
		}
	}
	return moves
}

func (g *walk) target(move int) (int, int) {
	switch move {
	case 0:
		return g.x + 1, g.y
	case 1:
		return g.x, g.y + 1
	default:
		return g.x + 1, g.y + 1
	}
}

func (g *walk) Apply(move int) {
	g.stack = append(g.stack, walkState{g.x, g.y, g.diff, g.first})

	g.x, g.y = g.target(move)
	if g.first {
		g.diff += g.values[g.y][g.x]
	} else {
		g.diff -= g.values[g.y][g.x]
	}
	g.first = !g.first
}

func (g *walk) Revert() {
	last := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	g.x, g.y, g.diff, g.first = last.x, last.y, last.diff, last.first
}

func (g *walk) Evaluate() int {
	score := g.diff
	if !g.first {
		score = -score
	}
	return score
}

func (g *walk) Terminal() (Outcome, bool) { return Drawn, false }

func (g *walk) Hash() uint64 {
	// the ply is part of the key so transpositions only occur between
	// positions with the same remaining depth
	key := uint64(g.x) | uint64(g.y)<<8 | uint64(len(g.stack))<<16 | uint64(uint32(int32(g.diff)))<<24
	if g.first {
		key |= 1 << 63
	}
	key *= 0x9e3779b97f4a7c15
	return key ^ key>>29
}

func (g *walk) snapshot() walkState {
	return walkState{g.x, g.y, g.diff, g.first}
}

// minimax is an unpruned negamax over the same move order the searcher
// uses for games without a table or tactical moves.
func minimax(g *walk, depth int) (int, int) {
	if depth == 0 {
		return g.Evaluate(), -1
	}

	best, bestMove := -Infinity, -1
	for _, move := range g.LegalMoves() {
		g.Apply(move)
		score, _ := minimax(g, depth-1)
		g.Revert()

		if -score > best {
			best, bestMove = -score, move
		}
	}

	return best, bestMove
}

// shuttle toggles between two positions and keeps a position history so
// repetitions can be detected. The side to move always evaluates as a
// clear advantage.
type shuttle struct {
	at      int
	history []uint64
}

func (g *shuttle) LegalMoves() []int { return []int{1 - g.at} }

func (g *shuttle) Apply(move int) {
	g.at = move
	g.history = append(g.history, g.Hash())
}

func (g *shuttle) Revert() {
	g.history = g.history[:len(g.history)-1]
	g.at = 1 - g.at
}

func (g *shuttle) Evaluate() int { return 300 }
func (g *shuttle) Terminal() (Outcome, bool) { return Drawn, false }
func (g *shuttle) Hash() uint64 { return uint64(g.at) + 1 }

func (g *shuttle) IsRepetition(threshold int) bool {
	current, count := g.Hash(), 0
	for _, key := range g.history {
		if key == current {
			count++
		}
	}
	return count >= threshold
}

// stuck has no legal moves and may or may not be in check.
type stuck struct{ check bool }

func (g *stuck) LegalMoves() []int { return nil }
func (g *stuck) Apply(int) {}
func (g *stuck) Revert() {}
func (g *stuck) Evaluate() int { return 0 }
func (g *stuck) Terminal() (Outcome, bool) { return Drawn, false }
func (g *stuck) Hash() uint64 { return 0 }
func (g *stuck) InCheck() bool { return g.check }

// stuckTactical is a stuck game with captures, so quiescence generates
// its moves.
type stuckTactical struct{ stuck }

func (g *stuckTactical) Capture(int) (int, int, bool) { return 0, 0, false }
func (g *stuckTactical) Promotion(int) bool { return false }

// tactics decorates a walk with capture and promotion information for the
// move ordering tests.
type tactics struct {
	*walk

	capture   map[int][2]int
	promotion map[int]bool
}

func (g *tactics) Capture(move int) (int, int, bool) {
	pieces, ok := g.capture[move]
	return pieces[0], pieces[1], ok
}

func (g *tactics) Promotion(move int) bool { return g.promotion[move] }

// lattice moves a token right or down over a grid of values. Everything
// about a position follows from the token's square, so different paths to
// the same square transpose.
type lattice struct {
	values [][]int

	x, y  int
	stack [][2]int

	applied []int // every move ever applied, in order
}

func newLattice(seed uint64) *lattice {
	return &lattice{values: newWalk(seed).values}
}

func (g *lattice) LegalMoves() []int {
	var moves []int
	if g.x+1 < walkSize {
		moves = append(moves, 0)
	}
	if g.y+1 < walkSize {
		moves = append(moves, 1)
	}
	return moves
}

func (g *lattice) Apply(move int) {
	g.stack = append(g.stack, [2]int{g.x, g.y})
	g.applied = append(g.applied, move)

	if move == 0 {
		g.x++
	} else {
		g.y++
	}
}

func (g *lattice) Revert() {
	last := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	g.x, g.y = last[0], last[1]
}

func (g *lattice) Evaluate() int {
	if (g.x+g.y)%2 == 1 {
		return -g.values[g.y][g.x]
	}
	return g.values[g.y][g.x]
}

func (g *lattice) Terminal() (Outcome, bool) { return Drawn, false }

func (g *lattice) Hash() uint64 {
	key := (uint64(g.x) | uint64(g.y)<<8) * 0x9e3779b97f4a7c15
	return key ^ key>>29
}

// negamaxOf is an unpruned negamax over any game without tactical moves.
func negamaxOf(g Game[int], depth int) int {
	moves := g.LegalMoves()
	if depth == 0 || len(moves) == 0 {
		return g.Evaluate()
	}

	best := -Infinity
	for _, move := range moves {
		g.Apply(move)
		best = max(best, -negamaxOf(g, depth-1))
		g.Revert()
	}

	return best
}
