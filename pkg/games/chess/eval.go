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

package chess

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

var pieceValues = [7]int{
	dragontoothmg.Pawn:   100,
	dragontoothmg.Knight: 320,
	dragontoothmg.Bishop: 330,
	dragontoothmg.Rook:   500,
	dragontoothmg.Queen:  900,
	dragontoothmg.King:   10000,
}

// Piece square tables, written from white's point of view with the eighth
// rank first.
var (
	pawnTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}

	knightTable = [64]int{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}

	bishopTable = [64]int{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}

	rookTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	}

	queenTable = [64]int{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}

	kingTable = [64]int{
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	}

	kingEndgameTable = [64]int{
		-50, -40, -30, -20, -20, -30, -40, -50,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	}
)

// Evaluation terms.
const (
	DoubledPawnPenalty = 10
	BishopPairBonus    = 30
	Tempo              = 10
)

// Evaluate scores the position for the side to move: material and piece
// squares, mobility, doubled pawns, the bishop pair and a tempo bonus.
func (position *Position) Evaluate() int {
	white, black := &position.board.White, &position.board.Black
	endgame := position.endgame()

	score := side(white, false, endgame) - side(black, true, endgame)

	score += position.mobility()
	score += doubled(black) - doubled(white)

	if bits.OnesCount64(white.Bishops) >= 2 {
		score += BishopPairBonus
	}

	if bits.OnesCount64(black.Bishops) >= 2 {
		score -= BishopPairBonus
	}

	if !position.board.Wtomove {
		score = -score
	}

	return score + Tempo
}

// side adds up the material and piece square values of one colour.
func side(pieces *dragontoothmg.Bitboards, black, endgame bool) int {
	king := &kingTable
	if endgame {
		king = &kingEndgameTable
	}

	score := 0
	for _, set := range []struct {
		bitboard uint64
		value    int
		table    *[64]int
	}{
		{pieces.Pawns, pieceValues[dragontoothmg.Pawn], &pawnTable},
		{pieces.Knights, pieceValues[dragontoothmg.Knight], &knightTable},
		{pieces.Bishops, pieceValues[dragontoothmg.Bishop], &bishopTable},
		{pieces.Rooks, pieceValues[dragontoothmg.Rook], &rookTable},
		{pieces.Queens, pieceValues[dragontoothmg.Queen], &queenTable},
		{pieces.Kings, pieceValues[dragontoothmg.King], king},
	} {
		for bb := set.bitboard; bb != 0; bb &= bb - 1 {
			square := bits.TrailingZeros64(bb)
			score += set.value + set.table[tableIndex(square, black)]
		}
	}

	return score
}

// tableIndex maps a square, a1 being 0, to its piece square table index.
func tableIndex(square int, black bool) int {
	rank, file := square/8, square%8
	if black {
		return rank*8 + file
	}

	return (7-rank)*8 + file
}

// endgame reports positions with few pieces or without queens.
func (position *Position) endgame() bool {
	white, black := &position.board.White, &position.board.Black

	all := (white.All &^ white.Kings) | (black.All &^ black.Kings)
	pieces := bits.OnesCount64(all)
	queens := bits.OnesCount64(white.Queens | black.Queens)

	return pieces <= 8 || queens == 0 || (queens <= 1 && pieces <= 10)
}

// mobility is the number of white's legal moves minus black's.
func (position *Position) mobility() int {
	ours := len(position.board.GenerateLegalMoves())

	flipped := position.board
	flipped.Wtomove = !flipped.Wtomove
	theirs := len(flipped.GenerateLegalMoves())

	if position.board.Wtomove {
		return ours - theirs
	}

	return theirs - ours
}

// doubled is the penalty for extra pawns sharing a file.
func doubled(pieces *dragontoothmg.Bitboards) int {
	const fileA = 0x0101010101010101

	penalty := 0
	for file := 0; file < 8; file++ {
		if count := bits.OnesCount64(pieces.Pawns & (fileA << file)); count > 1 {
			penalty += DoubledPawnPenalty * (count - 1)
		}
	}

	return penalty
}

func minors(pieces *dragontoothmg.Bitboards) int {
	return bits.OnesCount64(pieces.Knights | pieces.Bishops)
}
