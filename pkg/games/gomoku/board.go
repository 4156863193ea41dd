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

// Package gomoku implements five-in-a-row on a 15x15 board, along with the
// tactical detectors and evaluation the searcher uses to play it.
package gomoku

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"laptudirm.com/x/kibitz/pkg/search"
)

const (
	Size  = 15
	Cells = Size * Size

	// Centre is the cell played on an empty board.
	Centre = Move(Size/2*Size + Size/2)
)

// Stone is the content of a cell.
type Stone uint8

const (
	Empty Stone = iota
	Black
	White
)

// Other returns the opposing colour.
func (stone Stone) Other() Stone {
	return 3 - stone
}

func (stone Stone) String() string {
	switch stone {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return "."
	}
}

// Move is the index of a cell, row major.
type Move int

const NoMove Move = -1

func NewMove(row, col int) Move {
	return Move(row*Size + col)
}

func (move Move) Row() int { return int(move) / Size }
func (move Move) Col() int { return int(move) % Size }

// String returns the move as "row,col".
func (move Move) String() string {
	if move == NoMove {
		return "none"
	}

	return fmt.Sprintf("%d,%d", move.Row(), move.Col())
}

var (
	ErrInvalidBoard = errors.New("gomoku: invalid board")
	ErrInvalidMove  = errors.New("gomoku: invalid move")
	ErrIllegalMove  = errors.New("gomoku: illegal move")
)

// ParseMove parses a move written as "row,col".
func ParseMove(str string) (Move, error) {
	rowStr, colStr, found := strings.Cut(strings.TrimSpace(str), ",")
	if !found {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, str)
	}

	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, str)
	}

	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, str)
	}

	if !inside(row, col) {
		return NoMove, fmt.Errorf("%w: %q is off the board", ErrInvalidMove, str)
	}

	return NewMove(row, col), nil
}

// Board is a gomoku position. It is mutated in place by Apply and
// restored by Revert.
type Board struct {
	cells  [Cells]Stone
	toMove Stone
	hash   uint64

	stones int
	moves  []Move // moves applied since the board was created

	// five is the colour which already had five in a row when the board
	// was parsed, if any.
	five Stone
}

// NewBoard returns an empty board with black to move.
func NewBoard() *Board {
	return &Board{toMove: Black}
}

// Parse reads a board from its 225 character row major representation.
// 'B' and 'b' are black stones, 'W' and 'w' are white stones and any other
// character is an empty cell. Characters past the 225th are ignored. Black
// moves first, so black is to move when both colours have the same number
// of stones.
func Parse(str string) (*Board, error) {
	if len(str) < Cells {
		return nil, fmt.Errorf("%w: %d cells, need %d", ErrInvalidBoard, len(str), Cells)
	}

	board := NewBoard()

	var count [3]int
	for i := 0; i < Cells; i++ {
		var stone Stone
		switch str[i] {
		case 'B', 'b':
			stone = Black
		case 'W', 'w':
			stone = White
		default:
			continue
		}

		board.put(Move(i), stone)
		count[stone]++
	}

	if count[Black] == count[White]+1 {
		board.toMove = White
	}

	if board.toMove == White {
		board.hash ^= keys.side
	}

	switch {
	case board.hasFive(Black):
		board.five = Black
	case board.hasFive(White):
		board.five = White
	}

	return board, nil
}

// ParseOpening reads a board written either in the format accepted by
// Parse, or as space separated "row,col" moves played from the empty board.
func ParseOpening(str string) (*Board, error) {
	if len(str) >= Cells {
		return Parse(str)
	}

	board := NewBoard()
	for _, move := range strings.Fields(str) {
		if err := board.Play(move); err != nil {
			return nil, err
		}
	}

	return board, nil
}

func (board *Board) put(move Move, stone Stone) {
	board.cells[move] = stone
	board.hash ^= keys.stone(move, stone)
	board.stones++
}

func (board *Board) remove(move Move) {
	board.hash ^= keys.stone(move, board.cells[move])
	board.cells[move] = Empty
	board.stones--
}

// At returns the stone on the given cell.
func (board *Board) At(row, col int) Stone {
	return board.cells[NewMove(row, col)]
}

// SideToMove returns the colour of the player to move.
func (board *Board) SideToMove() Stone {
	return board.toMove
}

// Full reports whether no empty cell is left.
func (board *Board) Full() bool {
	return board.stones == Cells
}

// Winner returns the colour with five in a row, or Empty.
func (board *Board) Winner() Stone {
	if n := len(board.moves); n > 0 {
		last := board.moves[n-1]
		if board.fiveThrough(last, board.cells[last]) {
			return board.cells[last]
		}
	}

	return board.five
}

// Play validates and applies a move given as "row,col".
func (board *Board) Play(str string) error {
	move, err := ParseMove(str)
	if err != nil {
		return err
	}

	if board.cells[move] != Empty {
		return fmt.Errorf("%w: %s is occupied", ErrIllegalMove, move)
	}

	board.Apply(move)
	return nil
}

// Apply places a stone of the side to move on move's cell.
func (board *Board) Apply(move Move) {
	board.put(move, board.toMove)
	board.moves = append(board.moves, move)

	board.toMove = board.toMove.Other()
	board.hash ^= keys.side
}

// Revert takes back the last applied move.
func (board *Board) Revert() {
	last := board.moves[len(board.moves)-1]
	board.moves = board.moves[:len(board.moves)-1]

	board.toMove = board.cells[last]
	board.hash ^= keys.side
	board.remove(last)
}

// Hash returns the board's Zobrist key.
func (board *Board) Hash() uint64 {
	return board.hash
}

// Terminal reports a finished game: a five in a row made by the previous
// move loses for the side to move, and a full board is a draw.
func (board *Board) Terminal() (search.Outcome, bool) {
	switch winner := board.Winner(); winner {
	case board.toMove:
		return search.Won, true
	case board.toMove.Other():
		return search.Lost, true
	}

	if board.Full() {
		return search.Drawn, true
	}

	return search.Drawn, false
}

// String returns the board in the format accepted by Parse.
func (board *Board) String() string {
	var str strings.Builder
	str.Grow(Cells)

	for _, stone := range board.cells {
		str.WriteString(stone.String())
	}

	return str.String()
}

// Pretty renders the board as a grid with row and column numbers.
func (board *Board) Pretty() string {
	var str strings.Builder

	str.WriteString("   ")
	for col := 0; col < Size; col++ {
		fmt.Fprintf(&str, "%2d", col)
	}
	str.WriteString("\n")

	for row := 0; row < Size; row++ {
		fmt.Fprintf(&str, "%2d ", row)
		for col := 0; col < Size; col++ {
			fmt.Fprintf(&str, " %s", board.At(row, col))
		}
		str.WriteString("\n")
	}

	return str.String()
}

func inside(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}
