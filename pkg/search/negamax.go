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

// worker holds the state of a single search call: the position being
// searched, its optional capabilities and the call's transposition table.
type worker[M comparable] struct {
	game Game[M]

	checker  Checker
	repeater Repeater
	tactical Tactical[M]

	table *Table[M] // nil when the table is disabled

	nodes int
}

func newWorker[M comparable](game Game[M], table *Table[M]) *worker[M] {
	w := &worker[M]{game: game, table: table}

	w.checker, _ = game.(Checker)
	w.repeater, _ = game.(Repeater)
	w.tactical, _ = game.(Tactical[M])

	return w
}

// negamax searches the position to depth plies with the window (alpha,
// beta) and returns its score from the side to move's point of view along
// with the best move found. found is false when the node returned without
// examining any move (draws, terminal nodes and the horizon).
func (w *worker[M]) negamax(depth, ply, alpha, beta int) (score int, best M, found bool) {
	w.nodes++

	// a repetition inside the tree is scored as a draw; the root itself
	// must still produce a move
	if ply > 0 && w.repeater != nil && w.repeater.IsRepetition(RepetitionDrawThreshold) {
		return 0, best, false
	}

	if outcome, over := w.game.Terminal(); over && ply > 0 {
		switch outcome {
		case Lost:
			return mated(ply), best, false
		case Won:
			return -mated(ply), best, false
		default:
			return 0, best, false
		}
	}

	if depth <= 0 {
		return w.quiesce(ply, alpha, beta), best, false
	}

	moves := w.game.LegalMoves()
	if len(moves) == 0 {
		return w.noMoves(ply), best, false
	}

	key := w.game.Hash()

	var tableMove M
	hasTableMove := false
	if w.table != nil {
		if entry, hit := w.table.Lookup(key); hit {
			tableMove, hasTableMove = entry.Move, true

			if entry.Depth >= depth {
				stored := fromTable(entry.Score, ply)

				switch entry.Bound {
				case Exact:
					return stored, entry.Move, true
				case UpperBound:
					if stored <= alpha {
						return stored, entry.Move, true
					}
					beta = min(beta, stored)
				case LowerBound:
					if stored >= beta {
						return stored, entry.Move, true
					}
					alpha = max(alpha, stored)
				}
			}
		}
	}

	moves = w.order(moves, tableMove, hasTableMove)

	originalAlpha := alpha
	bestScore := -Infinity
	best = moves[0]

	for i, move := range moves {
		var eval int
		if i == 0 {
			eval = w.child(move, depth-1, ply+1, alpha, beta)
		} else {
			// null window probe, re-searched only if it lands inside
			// the window
			eval = w.child(move, depth-1, ply+1, alpha, alpha+1)
			if eval > alpha && eval < beta {
				eval = w.child(move, depth-1, ply+1, alpha, beta)
			}
		}

		if eval > bestScore {
			bestScore = eval
			best = move
		}

		alpha = max(alpha, eval)
		if alpha >= beta {
			break
		}
	}

	if w.table != nil {
		w.table.Store(key, Entry[M]{
			Depth: depth,
			Score: toTable(bestScore, ply),
			Move:  best,
			Bound: classify(bestScore, originalAlpha, beta),
		})
	}

	return bestScore, best, true
}

// child plays move, searches the resulting position with the negated
// window and returns the score from the parent's point of view. The move
// is reverted on every path out of the call.
func (w *worker[M]) child(move M, depth, ply, alpha, beta int) int {
	w.game.Apply(move)
	defer w.game.Revert()

	score, _, _ := w.negamax(depth, ply, -beta, -alpha)
	return -score
}

// quiesce extends the search at the horizon with captures only, so the
// static evaluation is only trusted in quiet positions. It fails hard:
// the result is always inside [alpha, beta].
func (w *worker[M]) quiesce(ply, alpha, beta int) int {
	w.nodes++

	// games without captures have nothing to extend, and no move
	// generation is done for them at the horizon
	var moves []M
	if w.tactical != nil {
		moves = w.game.LegalMoves()
		if len(moves) == 0 {
			return min(max(w.noMoves(ply), alpha), beta)
		}
	}

	standPat := w.game.Evaluate()
	if standPat >= beta {
		return beta
	}

	alpha = max(alpha, standPat)
	if w.tactical == nil {
		return alpha
	}

	for _, move := range w.captures(moves) {
		score := w.quiesceChild(move, ply+1, alpha, beta)

		if score >= beta {
			return beta
		}

		alpha = max(alpha, score)
	}

	return alpha
}

// noMoves scores a position where the side to move has no legal moves:
// lost when in check, or always for games without check, else a draw.
func (w *worker[M]) noMoves(ply int) int {
	if w.checker == nil || w.checker.InCheck() {
		return mated(ply)
	}

	return 0 // stalemate
}

func (w *worker[M]) quiesceChild(move M, ply, alpha, beta int) int {
	w.game.Apply(move)
	defer w.game.Revert()

	return -w.quiesce(ply, -beta, -alpha)
}
