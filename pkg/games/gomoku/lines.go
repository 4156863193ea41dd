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

// directions are the four line directions: horizontal, vertical and the
// two diagonals.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// Five is the length of a winning line.
const Five = 5

// run counts the consecutive stones of colour starting next to (row, col)
// and going in the direction (dr, dc), up to Five-1 stones.
func (board *Board) run(row, col, dr, dc int, stone Stone) int {
	count := 0
	for k := 1; k < Five; k++ {
		r, c := row+k*dr, col+k*dc
		if !inside(r, c) || board.cells[NewMove(r, c)] != stone {
			break
		}
		count++
	}
	return count
}

// lineThrough returns the length of the longest line of colour stone that
// passes through move in any direction, counting move itself.
func (board *Board) lineThrough(move Move, stone Stone) int {
	row, col := move.Row(), move.Col()

	longest := 0
	for _, dir := range directions {
		length := 1 +
			board.run(row, col, dir[0], dir[1], stone) +
			board.run(row, col, -dir[0], -dir[1], stone)
		longest = max(longest, length)
	}

	return longest
}

// fiveThrough reports whether the stone on move is part of five in a row.
func (board *Board) fiveThrough(move Move, stone Stone) bool {
	return stone != Empty && board.lineThrough(move, stone) >= Five
}

// wouldCreateFive reports whether placing colour stone on the empty cell
// move would complete five in a row.
func (board *Board) wouldCreateFive(move Move, stone Stone) bool {
	return board.lineThrough(move, stone) >= Five
}

// hasFive scans the whole board for five in a row of colour stone.
func (board *Board) hasFive(stone Stone) bool {
	for cell, content := range board.cells {
		if content == stone && board.fiveThrough(Move(cell), stone) {
			return true
		}
	}

	return false
}

// completions returns the number of distinct empty cells which would
// complete five in a row for colour stone through move, once a stone of
// that colour is placed on move.
func (board *Board) completions(move Move, stone Stone) int {
	board.cells[move] = stone
	defer func() { board.cells[move] = Empty }()

	row, col := move.Row(), move.Col()

	seen := map[Move]bool{}
	for _, dir := range directions {
		for k := -(Five - 1); k < Five; k++ {
			r, c := row+k*dir[0], col+k*dir[1]
			if k == 0 || !inside(r, c) {
				continue
			}

			cell := NewMove(r, c)
			if board.cells[cell] == Empty && board.wouldCreateFive(cell, stone) {
				seen[cell] = true
			}
		}
	}

	return len(seen)
}

// near calls fn for every empty cell within two rows and columns of a
// stone, in stone order. Cells next to several stones are visited more
// than once. fn returns false to stop the scan.
func (board *Board) near(fn func(Move) bool) {
	for cell, stone := range board.cells {
		if stone == Empty {
			continue
		}

		row, col := Move(cell).Row(), Move(cell).Col()
		for dr := -2; dr <= 2; dr++ {
			for dc := -2; dc <= 2; dc++ {
				r, c := row+dr, col+dc
				if !inside(r, c) || board.cells[NewMove(r, c)] != Empty {
					continue
				}

				if !fn(NewMove(r, c)) {
					return
				}
			}
		}
	}
}
