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

import (
	"sort"

	"github.com/samber/lo"
)

// Move ordering weights.
const (
	TableMoveBonus = 1 << 20
	PromotionBonus = 800

	// RepetitionPenalty is subtracted from moves which repeat a position
	// while the static evaluation is further than RepetitionMargin from 0.
	RepetitionPenalty = 200
	RepetitionMargin  = 100
)

// CaptureScore ranks a capture, preferring valuable victims taken by
// cheap attackers.
func CaptureScore(victim, attacker int) int {
	return 10*victim - attacker/10
}

type scoredMove[M comparable] struct {
	move  M
	score int
}

// order sorts moves by descending ordering score. Moves with equal scores
// keep the order the game generated them in.
func (w *worker[M]) order(moves []M, tableMove M, hasTableMove bool) []M {
	scored := make([]scoredMove[M], len(moves))

	unbalanced := false
	if w.repeater != nil {
		unbalanced = abs(w.game.Evaluate()) > RepetitionMargin
	}

	for i, move := range moves {
		score := 0

		if hasTableMove && move == tableMove {
			score += TableMoveBonus
		}

		if w.tactical != nil {
			if victim, attacker, ok := w.tactical.Capture(move); ok {
				score += CaptureScore(victim, attacker)
			}

			if w.tactical.Promotion(move) {
				score += PromotionBonus
			}
		}

		if unbalanced && w.repeats(move) {
			score -= RepetitionPenalty
		}

		scored[i] = scoredMove[M]{move: move, score: score}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	return lo.Map(scored, func(sm scoredMove[M], _ int) M { return sm.move })
}

// repeats trial-plays move and reports whether it produces a repetition.
func (w *worker[M]) repeats(move M) bool {
	w.game.Apply(move)
	defer w.game.Revert()

	return w.repeater.IsRepetition(RepetitionPenaltyThreshold)
}

// captures returns the capturing moves of moves ordered by CaptureScore.
func (w *worker[M]) captures(moves []M) []M {
	if w.tactical == nil {
		return nil
	}

	scored := lo.FilterMap(moves, func(move M, _ int) (scoredMove[M], bool) {
		victim, attacker, ok := w.tactical.Capture(move)
		return scoredMove[M]{move: move, score: CaptureScore(victim, attacker)}, ok
	})

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	return lo.Map(scored, func(sm scoredMove[M], _ int) M { return sm.move })
}
