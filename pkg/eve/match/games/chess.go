package games

import (
	"laptudirm.com/x/kibitz/pkg/games/chess"
)

// ChessOracle adjudicates chess games.
type ChessOracle struct {
	position *chess.Position
}

func (oracle *ChessOracle) Initialize(fen string) error {
	if fen == "" {
		fen = chess.StartFEN
	}

	position, err := chess.NewPosition(fen)
	if err != nil {
		return err
	}

	oracle.position = position
	return nil
}

func (oracle *ChessOracle) FirstToMove() bool {
	return oracle.position.WhiteToMove()
}

func (oracle *ChessOracle) MakeMove(move string) error {
	return oracle.position.Play(move)
}

func (oracle *ChessOracle) Position() string {
	return oracle.position.FEN()
}

func (oracle *ChessOracle) ZeroMoves() bool {
	return oracle.position.HalfmoveClock() == 0
}

func (oracle *ChessOracle) GameResult() (Result, string) {
	switch {
	case len(oracle.position.LegalMoves()) == 0:
		if oracle.position.InCheck() {
			return XtmWins, "Checkmate"
		}

		return Draw, "Stalemate"

	case oracle.position.FiftyMoves():
		return Draw, "50-move Rule"
	case oracle.position.IsRepetitionDraw():
		return Draw, "Threefold Repetition"
	case oracle.position.InsufficientMaterial():
		return Draw, "Insufficient Material"
	}

	return Ongoing, ""
}
