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

// Package search implements a game independent adversarial search: an
// iterative deepening driver over a negamax alpha-beta search with
// principal variation re-search, a transposition table, quiescence search
// and move ordering. Games plug in by implementing Game, and optionally
// some of the smaller capability interfaces declared below.
package search

// Game is the capability set every searchable position must provide. A
// Game is mutated in place by Apply and restored by Revert, which must be
// called in the exact reverse order of the Apply calls.
type Game[M comparable] interface {
	// LegalMoves returns the strictly legal moves for the side to move.
	// An empty list means the side to move has no moves left.
	LegalMoves() []M

	Apply(move M)
	Revert()

	// Evaluate returns a static score for the position from the point of
	// view of the side to move. It must be a pure function of the position.
	Evaluate() int

	// Terminal reports whether the game has already ended in the current
	// position, before any move generation is done.
	Terminal() (Outcome, bool)

	// Hash returns the position's 64-bit key. Positions with the same
	// contents and side to move must return the same key.
	Hash() uint64
}

// Outcome is the result of a finished game for the side to move.
type Outcome int

const (
	Lost Outcome = iota
	Drawn
	Won
)

// Checker is implemented by games which distinguish a position with no
// legal moves by whether the side to move is in check. Games which do not
// implement it treat every such position as lost.
type Checker interface {
	InCheck() bool
}

// Repeater is implemented by games whose positions can repeat.
type Repeater interface {
	// IsRepetition reports whether the current position has occurred at
	// least threshold times in the game's history, counting itself.
	IsRepetition(threshold int) bool
}

// Tactical is implemented by games with capturing and promoting moves.
type Tactical[M comparable] interface {
	// Capture returns the values of the captured and capturing pieces
	// when move is a capture.
	Capture(move M) (victim, attacker int, ok bool)
	Promotion(move M) bool
}

// Shortcutter is implemented by games with cheap pattern detectors which
// can decide the root move without a full search.
type Shortcutter[M comparable] interface {
	Shortcut() (move M, score int, ok bool)
}

// Repetition thresholds. The search treats a position seen twice as a
// draw, a claimed draw needs three occurrences, and move ordering demotes
// moves which produce a second occurrence.
const (
	RepetitionDrawThreshold    = 2
	RepetitionClaimThreshold   = 3
	RepetitionPenaltyThreshold = 2
)
