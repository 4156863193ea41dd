package schedule

// Gauntlet pits the first player against every other player.
type Gauntlet struct {
	playerCount int
	gameNumber  int
}

func (g *Gauntlet) Initialize(n int) {
	g.playerCount = n
	g.gameNumber = 0
}

func (g *Gauntlet) NextEncounter() (int, int) {
	g.gameNumber++
	return 0, g.gameNumber
}

func (g *Gauntlet) TotalEncounters() int {
	return max(g.playerCount-1, 0)
}
