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

// FiveScore is the evaluation of a position with five in a row.
const FiveScore = 1_000_000

// Evaluate scores the board for the side to move. A finished five is worth
// FiveScore, otherwise every stone counts for more the closer it sits to
// the centre.
func (board *Board) Evaluate() int {
	score := 0

	switch board.Winner() {
	case Black:
		score = FiveScore
	case White:
		score = -FiveScore
	default:
		for cell, stone := range board.cells {
			weight := 10 + Size - centreDistance(Move(cell))
			switch stone {
			case Black:
				score += weight
			case White:
				score -= weight
			}
		}
	}

	if board.toMove == White {
		return -score
	}

	return score
}
