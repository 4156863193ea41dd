package stats

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestStoppingBounds(t *testing.T) {
	is := is.New(t)

	lower, upper := StoppingBounds(0.05, 0.05)
	is.True(near(lower, -2.944))
	is.True(near(upper, 2.944))
}

func TestScoreToElo(t *testing.T) {
	is := is.New(t)

	is.Equal(scoreToElo(0.5), 0.0)
	is.Equal(scoreToElo(0), 0.0)
	is.Equal(scoreToElo(1), 0.0)
	is.True(near(scoreToElo(0.75), 190.849))
	is.True(near(scoreToElo(0.25), -190.849))
}

func TestWDL(t *testing.T) {
	is := is.New(t)

	is.Equal(WDL{}.Score(), 0.5)
	is.Equal(WDL{}.LOS(), 0.5)
	is.Equal(WDL{Wins: 3, Draws: 2, Losses: 5}.Games(), 10)
	is.Equal(WDL{Wins: 3, Draws: 2, Losses: 5}.Score(), 0.4)

	lower, elo, upper := WDL{Wins: 50, Draws: 20, Losses: 50}.Elo()
	is.True(near(elo, 0))
	is.True(lower < 0 && upper > 0)

	lower, elo, upper = WDL{Wins: 60, Draws: 20, Losses: 40}.Elo()
	is.True(elo > 0)
	is.True(lower < elo && elo < upper)

	is.True(WDL{Wins: 60, Losses: 40}.LOS() > 0.95)
}

func TestWDLLLR(t *testing.T) {
	is := is.New(t)

	strong := WDL{Wins: 600, Draws: 200, Losses: 200}
	is.True(strong.LLR(0, 5) > 0)
	is.True(strong.LLR(5, 0) < 0)
	is.True(near(strong.LLR(0, 5), -strong.LLR(5, 0)))

	even := WDL{Wins: 500, Draws: 200, Losses: 500}
	is.True(even.LLR(0, 10) < 0) // no gain favours H0
}

func TestPenta(t *testing.T) {
	is := is.New(t)

	even := Penta{LossLoss: 10, DrawLoss: 20, DrawDraw: 40, WinDraw: 20, WinWin: 10}
	is.Equal(even.Pairs(), 100)

	lower, elo, upper := even.Elo()
	is.True(near(elo, 0))
	is.True(lower < 0 && upper > 0)
	is.True(even.LLR(0, 5) < 0)

	strong := Penta{LossLoss: 5, DrawLoss: 10, DrawDraw: 40, WinDraw: 30, WinWin: 15}
	_, elo, _ = strong.Elo()
	is.True(elo > 0)
	is.True(strong.LLR(0, 5) > 0)
}
