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

package search

const (
	// MateScore is the score of a won game at the root. A game won in n
	// plies scores MateScore - n.
	MateScore = 1_000_000

	// Infinity bounds every score the search can return.
	Infinity = 10_000_000

	// MaxPly is the deepest ply a mate score can be reported at.
	MaxPly = 256

	// MateThreshold separates mate scores from ordinary evaluations.
	MateThreshold = MateScore - MaxPly
)

// IsMate reports whether score announces a forced win or loss.
func IsMate(score int) bool {
	return score >= MateThreshold || score <= -MateThreshold
}

// MateIn converts a mate score to the signed number of moves (not plies)
// to mate. A positive value means the side to move delivers the mate. It
// returns 0 for scores which are not mate scores.
func MateIn(score int) int {
	switch {
	case score >= MateThreshold:
		return (MateScore - score + 1) / 2
	case score <= -MateThreshold:
		return -(MateScore + score + 1) / 2
	default:
		return 0
	}
}

// mated is the score of the side to move when it has lost at ply.
func mated(ply int) int {
	return -MateScore + ply
}

// toTable converts a score relative to the root into one relative to the
// node at ply, so mate distances stay correct when read back elsewhere.
func toTable(score, ply int) int {
	switch {
	case score >= MateThreshold:
		return score + ply
	case score <= -MateThreshold:
		return score - ply
	default:
		return score
	}
}

// fromTable is the inverse of toTable.
func fromTable(score, ply int) int {
	switch {
	case score >= MateThreshold:
		return score - ply
	case score <= -MateThreshold:
		return score + ply
	default:
		return score
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
