package games

import "fmt"

// Oracle keeps track of a game played between two players and decides
// when and how it ends.
type Oracle interface {
	// Initialize sets up the oracle to start from the given position.
	Initialize(position string) error

	// MakeMove plays a move reported by a player. Illegal or malformed
	// moves are reported as errors.
	MakeMove(move string) error

	// Position returns the current position in the game's notation.
	Position() string

	// FirstToMove reports whether the first colour (white in chess,
	// black in gomoku) is to move.
	FirstToMove() bool

	GameResult() (Result, string)

	// ZeroMoves reports whether the position was reset by the last move,
	// so the move history before it can be dropped.
	ZeroMoves() bool
}

// GetOracle returns the oracle for the named game.
func GetOracle(game string) (Oracle, error) {
	switch game {
	case "chess", "":
		return &ChessOracle{}, nil
	case "gomoku", "connect5":
		return &GomokuOracle{}, nil
	default:
		return nil, fmt.Errorf("oracle: unknown game %q", game)
	}
}

// Result is the state of a game from the side to move's point of view.
type Result uint8

const (
	Ongoing Result = iota
	StmWins
	XtmWins
	Draw
)
