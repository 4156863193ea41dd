package schedule

// RoundRobin pits every player against every other player once a round.
type RoundRobin struct {
	playerCount int
	p1, p2      int
}

func (r *RoundRobin) Initialize(n int) {
	r.playerCount = n
	r.p1, r.p2 = 0, 0
}

func (r *RoundRobin) NextEncounter() (int, int) {
	r.p2++
	if r.p2 >= r.playerCount {
		r.p1++
		r.p2 = r.p1 + 1
	}

	return r.p1, r.p2
}

func (r *RoundRobin) TotalEncounters() int {
	return r.playerCount * (r.playerCount - 1) / 2
}
