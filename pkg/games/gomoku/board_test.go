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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/kibitz/pkg/search"
)

// layout builds a board string with the given black and white stones.
func layout(black, white []Move) string {
	cells := []byte(strings.Repeat(".", Cells))
	for _, move := range black {
		cells[move] = 'B'
	}
	for _, move := range white {
		cells[move] = 'W'
	}
	return string(cells)
}

func mustParse(t *testing.T, black, white []Move) *Board {
	t.Helper()

	board, err := Parse(layout(black, white))
	require.NoError(t, err)
	return board
}

func row(r int, cols ...int) []Move {
	moves := make([]Move, len(cols))
	for i, c := range cols {
		moves[i] = NewMove(r, c)
	}
	return moves
}

func TestParse(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		_, err := Parse(strings.Repeat(".", Cells-1))
		assert.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("side to move", func(t *testing.T) {
		board := mustParse(t, nil, nil)
		assert.Equal(t, Black, board.SideToMove())

		board = mustParse(t, row(7, 7), nil)
		assert.Equal(t, White, board.SideToMove())

		board = mustParse(t, row(7, 7), row(7, 8))
		assert.Equal(t, Black, board.SideToMove())
	})

	t.Run("lowercase and extra", func(t *testing.T) {
		str := layout(row(0, 0), row(0, 1))
		str = "bw" + str[2:] + "trailing"

		board, err := Parse(str)
		require.NoError(t, err)
		assert.Equal(t, Black, board.At(0, 0))
		assert.Equal(t, White, board.At(0, 1))
		assert.Equal(t, layout(row(0, 0), row(0, 1)), board.String()[:Cells])
	})

	t.Run("parsed five", func(t *testing.T) {
		board := mustParse(t, row(2, 0, 1, 2, 3, 4), row(9, 0, 2, 4, 6))

		outcome, over := board.Terminal()
		require.True(t, over)
		assert.Equal(t, search.Lost, outcome)
	})
}

func TestParseOpening(t *testing.T) {
	board, err := ParseOpening("7,7 7,8  8,8")
	require.NoError(t, err)
	assert.Equal(t, Black, board.At(7, 7))
	assert.Equal(t, White, board.At(7, 8))
	assert.Equal(t, Black, board.At(8, 8))
	assert.Equal(t, White, board.SideToMove())

	empty, err := ParseOpening("")
	require.NoError(t, err)
	assert.Equal(t, NewBoard().String(), empty.String())

	full, err := ParseOpening(layout(row(0, 0), nil))
	require.NoError(t, err)
	assert.Equal(t, Black, full.At(0, 0))

	_, err = ParseOpening("7,7 7,7")
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestParseMove(t *testing.T) {
	move, err := ParseMove(" 3, 11")
	require.NoError(t, err)
	assert.Equal(t, NewMove(3, 11), move)
	assert.Equal(t, "3,11", move.String())

	for _, bad := range []string{"", "3", "a,1", "1,b", "15,0", "0,-1"} {
		_, err := ParseMove(bad)
		assert.ErrorIs(t, err, ErrInvalidMove, bad)
	}
}

func TestPlay(t *testing.T) {
	board := NewBoard()

	require.NoError(t, board.Play("7,7"))
	assert.Equal(t, Black, board.At(7, 7))
	assert.Equal(t, White, board.SideToMove())

	assert.ErrorIs(t, board.Play("7,7"), ErrIllegalMove)
	assert.ErrorIs(t, board.Play("seven"), ErrInvalidMove)
}

func TestApplyRevert(t *testing.T) {
	board := mustParse(t, row(7, 7, 8), row(6, 7, 8))

	before := board.String()
	hash := board.Hash()

	moves := board.LegalMoves()
	require.NotEmpty(t, moves)

	for _, move := range moves {
		board.Apply(move)
		assert.NotEqual(t, hash, board.Hash())
		board.Revert()

		assert.Equal(t, hash, board.Hash())
		assert.Equal(t, before, board.String())
		assert.Equal(t, Black, board.SideToMove())
	}
}

func TestTransposition(t *testing.T) {
	a, b := NewBoard(), NewBoard()

	for _, move := range []string{"7,7", "7,8", "8,8", "6,6"} {
		require.NoError(t, a.Play(move))
	}
	for _, move := range []string{"8,8", "6,6", "7,7", "7,8"} {
		require.NoError(t, b.Play(move))
	}

	assert.Equal(t, a.Hash(), b.Hash())

	parsed, err := Parse(a.String())
	require.NoError(t, err)
	assert.Equal(t, a.Hash(), parsed.Hash())
}

func TestTerminal(t *testing.T) {
	board := mustParse(t, row(7, 3, 4, 5, 6), row(0, 0, 2, 4, 6))

	_, over := board.Terminal()
	require.False(t, over)

	board.Apply(NewMove(7, 7))
	assert.Equal(t, Black, board.Winner())

	outcome, over := board.Terminal()
	require.True(t, over)
	assert.Equal(t, search.Lost, outcome)

	board.Revert()
	assert.Equal(t, Empty, board.Winner())
}

// full returns a full board string with no five in a row anywhere.
func full() string {
	cells := make([]byte, Cells)
	for cell := range cells {
		move := Move(cell)
		if (move.Col()/2+move.Row())%2 == 0 {
			cells[cell] = 'B'
		} else {
			cells[cell] = 'W'
		}
	}
	return string(cells)
}

func TestFullBoard(t *testing.T) {
	board, err := Parse(full())
	require.NoError(t, err)

	assert.True(t, board.Full())
	assert.Equal(t, Empty, board.Winner())

	outcome, over := board.Terminal()
	require.True(t, over)
	assert.Equal(t, search.Drawn, outcome)
}
