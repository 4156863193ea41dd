package match

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// TimeControl is a player's clock. A zero Base means the player has no
// clock and searches for its own fixed budget.
type TimeControl struct {
	MovesToGo int
	Base, Inc time.Duration
}

// ParseTime parses a time control written as [movestogo/]time+increment,
// both time and increment in seconds. An empty string is no clock.
func ParseTime(str string) (TimeControl, error) {
	tc := TimeControl{MovesToGo: -1}
	if str == "" {
		return tc, nil
	}

	movesStr, timeStr, found := strings.Cut(str, "/")
	if found {
		moves, err := strconv.Atoi(movesStr)
		if err != nil {
			return TimeControl{}, err
		}

		tc.MovesToGo = moves
	} else {
		timeStr = movesStr
	}

	timeStr, incStr, found := strings.Cut(timeStr, "+")
	if !found {
		return TimeControl{}, errors.New("parse tc: increment not found")
	}

	inc, err := strconv.ParseFloat(incStr, 64)
	if err != nil {
		return TimeControl{}, err
	}

	secs, err := strconv.ParseFloat(timeStr, 64)
	if err != nil {
		return TimeControl{}, err
	}

	tc.Inc = time.Duration(inc * float64(time.Second))
	tc.Base = time.Duration(secs * float64(time.Second))
	return tc, nil
}

// Unlimited reports whether the time control has no clock.
func (tc TimeControl) Unlimited() bool {
	return tc.Base <= 0 && tc.Inc <= 0
}

// Spend takes elapsed off the clock and adds the increment. It reports
// false when the flag fell.
func (tc *TimeControl) Spend(elapsed time.Duration) bool {
	if tc.Unlimited() {
		return true
	}

	tc.Base -= elapsed
	if tc.Base < 0 {
		return false
	}

	tc.Base += tc.Inc
	return true
}

// Budget returns how long to think for the next move.
func (tc TimeControl) Budget() time.Duration {
	moves := 20
	if tc.MovesToGo > 0 {
		moves = tc.MovesToGo
	}

	return tc.Base/time.Duration(moves) + tc.Inc/2
}
