package match

// PairResult represents the result of a single game pair.
type PairResult int

const (
	WinWin   = PairResult(Win + Win)   // Player 1 Double kills
	WinDraw  = PairResult(Win + Draw)  // Player 1 Wins and Holds
	DrawDraw = PairResult(Draw + Draw) // Win-Loss or Draw-Draw
	DrawLoss = PairResult(Draw + Loss) // Player 2 Wins and Holds
	LossLoss = PairResult(Loss + Loss) // Player 2 Double kills
)

// GetPairResult returns the PairResult given the Result of each game in the
// pair, both seen from player 1's side of the board.
func GetPairResult(result1, result2 Result) PairResult {
	return PairResult(result1 + result2)
}

// Result represents the result of a single game for player 1.
type Result int

const (
	Win  Result = +1
	Draw Result = 0
	Loss Result = -1
)

// GameLostBy maps the losing player to the game's Result.
var GameLostBy = [2]Result{
	0: Loss,
	1: Win,
}

// Flip returns the result from the other player's point of view.
func (result Result) Flip() Result {
	return -result
}

// Score returns the points player 1 earned: 1 for a win, 0.5 for a draw.
func (result Result) Score() float64 {
	return float64(result+1) / 2
}

func (result Result) String() string {
	switch result {
	case Win:
		return "1-0"
	case Draw:
		return "1/2-1/2"
	case Loss:
		return "0-1"
	default:
		return "?-?"
	}
}
