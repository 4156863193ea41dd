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
	"sort"

	"github.com/samber/lo"
)

// Candidate ordering weights.
const (
	ownFiveBonus   = 10000
	blockFiveBonus = 5000
)

// LegalMoves returns the empty cells within two rows and columns of a
// stone, best candidates first. An empty board only has the centre as a
// candidate.
func (board *Board) LegalMoves() []Move {
	if board.stones == 0 {
		return []Move{Centre}
	}

	var seen [Cells]bool
	var moves []Move
	board.near(func(move Move) bool {
		if !seen[move] {
			seen[move] = true
			moves = append(moves, move)
		}
		return true
	})

	// index order breaks ties
	sort.Slice(moves, func(i, j int) bool { return moves[i] < moves[j] })

	scores := lo.SliceToMap(moves, func(move Move) (Move, int) {
		return move, board.candidateScore(move)
	})

	sort.SliceStable(moves, func(i, j int) bool {
		return scores[moves[i]] > scores[moves[j]]
	})

	return moves
}

// candidateScore prefers central cells, and above all cells which make or
// stop five in a row.
func (board *Board) candidateScore(move Move) int {
	score := (Size - centreDistance(move)) * 10

	if board.wouldCreateFive(move, board.toMove) {
		score += ownFiveBonus
	}

	if board.wouldCreateFive(move, board.toMove.Other()) {
		score += blockFiveBonus
	}

	return score
}

// centreDistance is the manhattan distance of move from the centre.
func centreDistance(move Move) int {
	return abs(move.Row()-Centre.Row()) + abs(move.Col()-Centre.Col())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
