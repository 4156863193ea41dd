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
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/kibitz/pkg/search"
)

func quiet() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestEngine() *Engine {
	return NewEngine(search.Options{MaxDepth: 2, Logger: quiet()})
}

func TestLegalMoves(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, []Move{Centre}, NewBoard().LegalMoves())
	})

	t.Run("single stone", func(t *testing.T) {
		moves := mustParse(t, row(7, 7), nil).LegalMoves()
		require.Len(t, moves, 24)

		assert.NotContains(t, moves, Centre)
		for _, move := range moves[:4] {
			assert.Equal(t, 1, centreDistance(move), move.String())
		}
	})

	t.Run("winning cell first", func(t *testing.T) {
		board := mustParse(t, row(1, 3, 4, 5, 6), row(12, 0, 2, 4, 6))
		assert.Contains(t, []Move{NewMove(1, 2), NewMove(1, 7)}, board.LegalMoves()[0])
	})

	t.Run("nearly full", func(t *testing.T) {
		board, err := Parse(full())
		require.NoError(t, err)

		board.remove(NewMove(0, 0))
		board.remove(NewMove(14, 14))
		assert.Equal(t, []Move{NewMove(0, 0), NewMove(14, 14)}, board.LegalMoves())
	})
}

func TestEvaluate(t *testing.T) {
	board := mustParse(t, row(7, 7), nil)
	assert.Equal(t, -(10 + Size), board.Evaluate(), "white to move")

	board = mustParse(t, row(7, 7), row(0, 0))
	assert.Equal(t, 10+Size-(10+Size-14), board.Evaluate())

	board = mustParse(t, row(7, 3, 4, 5, 6), row(0, 0, 2, 4, 6))
	board.Apply(NewMove(7, 7))
	assert.Equal(t, -FiveScore, board.Evaluate())
}

func TestFindForcingMove(t *testing.T) {
	board := mustParse(t, row(7, 3, 4, 5, 6), row(0, 0, 2, 4, 6))

	move, ok := board.FindForcingMove(Black)
	require.True(t, ok)
	assert.Equal(t, NewMove(7, 2), move)

	_, ok = board.FindForcingMove(White)
	assert.False(t, ok)
}

func TestFindDoubleThreatMove(t *testing.T) {
	board := mustParse(t, row(12, 0, 2, 4), row(5, 5, 6, 7))

	move, ok := board.FindDoubleThreatMove(White)
	require.True(t, ok)
	assert.Equal(t, NewMove(5, 4), move)

	assert.Equal(t, White, board.At(5, 5))
	assert.Equal(t, Empty, board.At(5, 4), "probe stone removed")

	_, ok = board.FindDoubleThreatMove(Black)
	assert.False(t, ok)
}

func TestEngine(t *testing.T) {
	engine := newTestEngine()

	t.Run("win", func(t *testing.T) {
		board := mustParse(t, row(7, 3, 4, 5, 6), row(0, 0, 2, 4, 6))

		result := engine.Search(board, time.Second, nil)
		assert.Contains(t, []Move{NewMove(7, 2), NewMove(7, 7)}, result.Move)
		assert.Equal(t, WinScore, result.Eval)
		assert.Equal(t, 1, result.Depth)
	})

	t.Run("block", func(t *testing.T) {
		board := mustParse(t,
			[]Move{NewMove(3, 2), NewMove(10, 10), NewMove(10, 12), NewMove(12, 10)},
			row(3, 3, 4, 5, 6),
		)

		result := engine.Search(board, time.Second, nil)
		assert.Equal(t, NewMove(3, 7), result.Move)
		assert.Equal(t, 3, result.Row)
		assert.Equal(t, 7, result.Col)
		assert.Equal(t, BlockScore, result.Eval)
	})

	t.Run("double threat", func(t *testing.T) {
		board := mustParse(t, row(12, 0, 2, 4), row(5, 5, 6, 7))

		result := engine.Search(board, time.Second, nil)
		assert.Equal(t, NewMove(5, 4), result.Move)
		assert.Equal(t, DoubleThreatScore, result.Eval)
	})

	t.Run("centre", func(t *testing.T) {
		result, err := engine.Analyse(layout(nil, nil), 0)
		require.NoError(t, err)
		assert.Equal(t, Centre.Row(), result.Row)
		assert.Equal(t, Centre.Col(), result.Col)
	})

	t.Run("zero budget", func(t *testing.T) {
		board := mustParse(t, row(7, 7, 9), row(8, 8, 6))

		var depths []int
		result := engine.Search(board, 0, func(result Result) {
			depths = append(depths, result.Depth)
		})

		assert.Equal(t, []int{1}, depths)
		assert.Equal(t, 1, result.Depth)
		assert.Equal(t, Empty, board.cells[result.Move])
	})

	t.Run("full", func(t *testing.T) {
		result, err := engine.Analyse(full(), time.Second)
		require.NoError(t, err)
		assert.Equal(t, NoResult, result)
	})

	t.Run("short", func(t *testing.T) {
		result, err := engine.Analyse("BW", time.Second)
		assert.ErrorIs(t, err, ErrInvalidBoard)
		assert.Equal(t, -1, result.Row)
	})
}

func TestEngineBudget(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	engine := NewEngine(search.Options{Logger: quiet()})
	board := mustParse(t,
		[]Move{NewMove(7, 7), NewMove(9, 6)},
		[]Move{NewMove(8, 7), NewMove(6, 9)},
	)

	for _, budget := range []time.Duration{200 * time.Millisecond, 500 * time.Millisecond} {
		start := time.Now()
		result := engine.Search(board, budget, nil)
		elapsed := time.Since(start)

		assert.Equal(t, Empty, board.cells[result.Move])
		assert.Less(t, elapsed, 2*budget, "budget %v", budget)
	}
}
