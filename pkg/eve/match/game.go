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

package match

import (
	"time"

	"github.com/sirupsen/logrus"
	"laptudirm.com/x/kibitz/pkg/eve/match/games"
)

// Config describes a single game between two players.
type Config struct {
	Game string

	// Position is the starting position, empty for the game's default.
	Position string

	Players [2]PlayerConfig

	// MaxMoves caps the number of plies, zero for no cap.
	MaxMoves int
}

// Run starts both players, plays the game and returns the result from
// the first player's point of view with the reason the game ended.
func Run(config *Config) (Result, string) {
	clocks := [2]TimeControl{}
	players := [2]Player{}

	var err error
	for i := range clocks {
		if clocks[i], err = ParseTime(config.Players[i].TimeC); err != nil {
			return GameLostBy[i], err.Error()
		}
	}

	for i := range players {
		if players[i], err = NewPlayer(config.Players[i], config.Game); err != nil {
			if i == 1 {
				players[0].Close()
			}

			return GameLostBy[i], err.Error()
		}
	}

	defer players[0].Close()
	defer players[1].Close()

	return Play(config.Game, config.Position, players, clocks, config.MaxMoves)
}

// Play plays a game between two started players. players[0] moves first
// from position.
func Play(game, position string, players [2]Player, clocks [2]TimeControl, maxMoves int) (Result, string) {
	oracle, err := games.GetOracle(game)
	if err != nil {
		return Draw, err.Error()
	}

	if err := oracle.Initialize(position); err != nil {
		return Draw, err.Error()
	}

	for i, player := range players {
		if err := player.NewGame(); err != nil {
			return GameLostBy[i], err.Error()
		}
	}

	position = oracle.Position()
	firstIsFirst := oracle.FirstToMove()

	var moves []string
	toMove := 0
	for ply := 0; ; ply++ {
		if maxMoves > 0 && ply >= maxMoves {
			return Draw, "Move Cap"
		}

		player := players[toMove]
		clock := Clock{
			Ours:   clocks[toMove],
			Theirs: clocks[1^toMove],
			First:  (toMove == 0) == firstIsFirst,
		}

		start := time.Now()
		move, err := player.BestMove(position, moves, clock)
		elapsed := time.Since(start)

		if err != nil {
			return GameLostBy[toMove], err.Error()
		}

		if !clocks[toMove].Spend(elapsed) {
			return GameLostBy[toMove], "Timeout"
		}

		if err := oracle.MakeMove(move); err != nil {
			return GameLostBy[toMove], err.Error()
		}

		logrus.Debugf("%s plays %s", player.Name(), move)

		moves = append(moves, move)
		toMove ^= 1

		result, reason := oracle.GameResult()
		switch result {
		case games.StmWins:
			return Win - Result(2*toMove), reason
		case games.XtmWins:
			return Loss + Result(2*toMove), reason
		case games.Draw:
			return Draw, reason
		}

		if oracle.ZeroMoves() {
			position = oracle.Position()
			moves = nil
		}
	}
}
