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

package data_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/kibitz/pkg/data"
	"laptudirm.com/x/kibitz/pkg/games/chess"
	"laptudirm.com/x/kibitz/pkg/games/gomoku"
)

func TestChessSuites(t *testing.T) {
	for _, suite := range data.Suites("chess") {
		openings, err := data.Openings("chess", suite)
		require.NoError(t, err)
		require.NotEmpty(t, openings)

		for _, fen := range openings {
			position, err := chess.NewPosition(fen)
			require.NoError(t, err, fen)
			assert.NotEmpty(t, position.LegalMoves(), fen)
		}
	}
}

func TestGomokuSuites(t *testing.T) {
	openings, err := data.Openings("connect5", "")
	require.NoError(t, err)
	require.Len(t, openings, 10)

	for _, opening := range openings {
		board, err := gomoku.ParseOpening(opening)
		require.NoError(t, err, opening)
		assert.Equal(t, gomoku.Empty, board.Winner(), opening)
	}
}

func TestUnknownSuite(t *testing.T) {
	_, err := data.Openings("chess", "nope")
	assert.Error(t, err)

	_, err = data.Openings("ataxx", "")
	assert.Error(t, err)

	assert.Equal(t, []string{"default", "startpos"}, data.Suites("chess"))
}
