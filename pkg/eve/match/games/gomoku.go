package games

import (
	"laptudirm.com/x/kibitz/pkg/games/gomoku"
)

// GomokuOracle adjudicates gomoku games.
type GomokuOracle struct {
	board *gomoku.Board
}

// Initialize accepts a full board or a list of moves from the empty board.
func (oracle *GomokuOracle) Initialize(position string) error {
	board, err := gomoku.ParseOpening(position)
	if err != nil {
		return err
	}

	oracle.board = board
	return nil
}

func (oracle *GomokuOracle) FirstToMove() bool {
	return oracle.board.SideToMove() == gomoku.Black
}

func (oracle *GomokuOracle) MakeMove(move string) error {
	return oracle.board.Play(move)
}

func (oracle *GomokuOracle) Position() string {
	return oracle.board.String()
}

// ZeroMoves is always false, stones are never taken back.
func (oracle *GomokuOracle) ZeroMoves() bool {
	return false
}

func (oracle *GomokuOracle) GameResult() (Result, string) {
	switch {
	case oracle.board.Winner() != gomoku.Empty:
		return XtmWins, "Five in a Row"
	case oracle.board.Full():
		return Draw, "Full Board"
	}

	return Ongoing, ""
}
