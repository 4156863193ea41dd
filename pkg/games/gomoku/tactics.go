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

// Scores reported for moves chosen by the tactical detectors.
const (
	WinScore          = 1_000_000
	BlockScore        = 900_000
	DoubleThreatScore = 800_000
)

// FindForcingMove returns the first empty cell next to a stone where a
// stone of colour would complete five in a row.
func (board *Board) FindForcingMove(colour Stone) (Move, bool) {
	found := NoMove
	board.near(func(move Move) bool {
		if board.wouldCreateFive(move, colour) {
			found = move
			return false
		}
		return true
	})

	return found, found != NoMove
}

// FindDoubleThreatMove returns an empty cell where a stone of colour would
// threaten to complete five on at least two different cells, a threat
// which cannot be stopped with one move.
func (board *Board) FindDoubleThreatMove(colour Stone) (Move, bool) {
	found := NoMove
	board.near(func(move Move) bool {
		if board.completions(move, colour) >= 2 {
			found = move
			return false
		}
		return true
	})

	return found, found != NoMove
}

// Shortcut plays an immediate win, then a block of the opponent's win,
// then the cell the opponent needs for a double threat.
func (board *Board) Shortcut() (Move, int, bool) {
	us, them := board.toMove, board.toMove.Other()

	if move, ok := board.FindForcingMove(us); ok {
		return move, WinScore, true
	}

	if move, ok := board.FindForcingMove(them); ok {
		return move, BlockScore, true
	}

	if move, ok := board.FindDoubleThreatMove(them); ok {
		return move, DoubleThreatScore, true
	}

	return NoMove, 0, false
}
