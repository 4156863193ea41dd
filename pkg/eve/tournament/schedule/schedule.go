package schedule

import (
	"fmt"
)

func New(name string) (Scheduler, error) {
	switch name {
	case "round-robin", "":
		return &RoundRobin{}, nil
	case "gauntlet":
		return &Gauntlet{}, nil
	default:
		return nil, fmt.Errorf("new tour: invalid scheduler %s", name)
	}
}

// Scheduler decides which players meet in a round. Initialize starts a
// new round of n players, after which NextEncounter is called
// TotalEncounters times.
type Scheduler interface {
	Initialize(n int)
	NextEncounter() (int, int)
	TotalEncounters() int
}
