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

// Package chess adapts dragontoothmg boards to the searcher, adding the
// game history needed for repetition detection and a static evaluation.
package chess

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"laptudirm.com/x/kibitz/pkg/search"
)

// Move is a dragontoothmg move.
type Move = dragontoothmg.Move

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrInvalidFEN  = errors.New("chess: invalid fen")
	ErrIllegalMove = errors.New("chess: illegal move")
)

// Position is a chess position along with the keys of every position
// which led to it. It is mutated in place by Apply and restored by Revert.
type Position struct {
	board dragontoothmg.Board

	history []uint64 // keys of every position so far, the current one last
	undo    []func()
}

// NewPosition parses fen into a Position.
func NewPosition(fen string) (*Position, error) {
	board, err := parseFEN(fen)
	if err != nil {
		return nil, err
	}

	return &Position{
		board:   board,
		history: []uint64{board.Hash()},
	}, nil
}

// parseFEN checks the shape of fen before handing it to dragontoothmg,
// which panics on malformed input.
func parseFEN(fen string) (board dragontoothmg.Board, err error) {
	fields := strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		return board, fmt.Errorf("%w: %q: want 4 or 6 fields", ErrInvalidFEN, fen)
	}

	if err := checkPlacement(fields[0]); err != nil {
		return board, fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, err)
	}

	if fields[1] != "w" && fields[1] != "b" {
		return board, fmt.Errorf("%w: %q: bad side to move %q", ErrInvalidFEN, fen, fields[1])
	}

	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, r)
		}
	}()

	return dragontoothmg.ParseFen(strings.Join(fields, " ")), nil
}

func checkPlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%d ranks", len(ranks))
	}

	pieces := map[rune]int{}
	for _, rank := range ranks {
		files := 0
		for _, r := range rank {
			switch {
			case r >= '1' && r <= '8':
				files += int(r - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", r):
				files++
				pieces[r]++
			default:
				return fmt.Errorf("bad piece %q", r)
			}
		}

		if files != 8 {
			return fmt.Errorf("rank %q has %d files", rank, files)
		}
	}

	if pieces['K'] != 1 || pieces['k'] != 1 {
		return errors.New("each side needs exactly one king")
	}

	return nil
}

// FEN returns the position's FEN string.
func (position *Position) FEN() string {
	return position.board.ToFen()
}

// WhiteToMove reports whether white is the side to move.
func (position *Position) WhiteToMove() bool {
	return position.board.Wtomove
}

func (position *Position) LegalMoves() []Move {
	return position.board.GenerateLegalMoves()
}

func (position *Position) Apply(move Move) {
	position.undo = append(position.undo, position.board.Apply(move))
	position.history = append(position.history, position.board.Hash())
}

func (position *Position) Revert() {
	last := len(position.undo) - 1
	position.undo[last]()

	position.undo = position.undo[:last]
	position.history = position.history[:len(position.history)-1]
}

func (position *Position) Hash() uint64 {
	return position.board.Hash()
}

// Plies returns the number of moves applied to the position.
func (position *Position) Plies() int {
	return len(position.history) - 1
}

// ParseMove finds the legal move written as uci.
func (position *Position) ParseMove(uci string) (Move, error) {
	for _, move := range position.LegalMoves() {
		if strings.EqualFold(MoveString(move), uci) {
			return move, nil
		}
	}

	return 0, fmt.Errorf("%w: %s in %s", ErrIllegalMove, uci, position.FEN())
}

// Play applies the legal move written as uci.
func (position *Position) Play(uci string) error {
	move, err := position.ParseMove(uci)
	if err != nil {
		return err
	}

	position.Apply(move)
	return nil
}

// MoveString returns move in UCI notation.
func MoveString(move Move) string {
	return move.String()
}

// InCheck reports whether the side to move is in check.
func (position *Position) InCheck() bool {
	return position.board.OurKingInCheck()
}

// IsRepetition reports whether the current position has occurred at least
// threshold times, counting itself.
func (position *Position) IsRepetition(threshold int) bool {
	current := position.history[len(position.history)-1]

	count := 0
	for _, key := range position.history {
		if key == current {
			count++
			if count >= threshold {
				return true
			}
		}
	}

	return false
}

// IsRepetitionDraw reports a draw by threefold repetition.
func (position *Position) IsRepetitionDraw() bool {
	return position.IsRepetition(search.RepetitionClaimThreshold)
}

// WouldCauseRepetition reports whether playing move repeats a position at
// least threshold times.
func (position *Position) WouldCauseRepetition(move Move, threshold int) bool {
	position.Apply(move)
	defer position.Revert()

	return position.IsRepetition(threshold)
}

// HalfmoveClock returns the number of plies since the last capture or
// pawn move.
func (position *Position) HalfmoveClock() int {
	return int(position.board.Halfmoveclock)
}

// FiftyMoves reports a draw by the fifty move rule.
func (position *Position) FiftyMoves() bool {
	return position.HalfmoveClock() >= 100
}

// InsufficientMaterial reports positions where neither side can mate: no
// pawns or major pieces, and at most one minor piece per side.
func (position *Position) InsufficientMaterial() bool {
	white, black := &position.board.White, &position.board.Black

	if white.Pawns|black.Pawns|white.Rooks|black.Rooks|white.Queens|black.Queens != 0 {
		return false
	}

	return minors(white) <= 1 && minors(black) <= 1
}

// Terminal reports draws by the fifty move rule and by insufficient
// material. A mate delivered on the hundredth half move still counts as
// a mate. Other positions without moves are left to the search.
func (position *Position) Terminal() (search.Outcome, bool) {
	if position.InsufficientMaterial() {
		return search.Drawn, true
	}

	if position.FiftyMoves() {
		if position.InCheck() && len(position.LegalMoves()) == 0 {
			return search.Lost, true
		}

		return search.Drawn, true
	}

	return search.Drawn, false
}

// Capture returns the values of the captured and capturing pieces.
func (position *Position) Capture(move Move) (victim, attacker int, ok bool) {
	us, them := position.sides()
	from, to := move.From(), move.To()

	piece := pieceAt(us, from)
	captured := pieceAt(them, to)

	// en passant: a pawn changing file onto an empty square
	if captured == dragontoothmg.Nothing && piece == dragontoothmg.Pawn && from%8 != to%8 {
		captured = dragontoothmg.Pawn
	}

	if captured == dragontoothmg.Nothing {
		return 0, 0, false
	}

	return pieceValues[captured], pieceValues[piece], true
}

func (position *Position) Promotion(move Move) bool {
	return move.Promote() != dragontoothmg.Nothing
}

// sides returns the pieces of the side to move and of its opponent.
func (position *Position) sides() (us, them *dragontoothmg.Bitboards) {
	if position.board.Wtomove {
		return &position.board.White, &position.board.Black
	}

	return &position.board.Black, &position.board.White
}

func pieceAt(side *dragontoothmg.Bitboards, square uint8) dragontoothmg.Piece {
	bit := uint64(1) << square
	switch {
	case side.Pawns&bit != 0:
		return dragontoothmg.Pawn
	case side.Knights&bit != 0:
		return dragontoothmg.Knight
	case side.Bishops&bit != 0:
		return dragontoothmg.Bishop
	case side.Rooks&bit != 0:
		return dragontoothmg.Rook
	case side.Queens&bit != 0:
		return dragontoothmg.Queen
	case side.Kings&bit != 0:
		return dragontoothmg.King
	default:
		return dragontoothmg.Nothing
	}
}
