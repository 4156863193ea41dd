// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

package tournament

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"laptudirm.com/x/kibitz/pkg/eve/match"
	"laptudirm.com/x/kibitz/pkg/eve/stats"
	"laptudirm.com/x/kibitz/pkg/eve/tournament/schedule"
)

func NewTournament(config Config) (*Tournament, error) {
	var tour Tournament
	tour.Config = config
	tour.Scores = make([]stats.WDL, len(config.Players))
	tour.Out = os.Stdout

	if len(config.Players) < 2 {
		return nil, fmt.Errorf("new tour: need at least two players, have %d", len(config.Players))
	}

	if tour.Config.Concurrency < 1 {
		tour.Config.Concurrency = 1
	}

	if tour.Config.Rounds < 1 {
		tour.Config.Rounds = 1
	}

	if tour.Config.GamePairs < 1 {
		tour.Config.GamePairs = 1
	}

	var err error
	tour.openings, err = match.NewBook(config.Openings, config.Game)
	if err != nil {
		return nil, err
	}

	tour.Scheduler, err = schedule.New(config.Scheduler)
	if err != nil {
		return nil, err
	}

	return &tour, nil
}

type Tournament struct {
	Config Config

	Scheduler schedule.Scheduler
	openings  *match.OpeningBook

	// Out receives the standings reports.
	Out io.Writer

	mu     sync.Mutex
	Games  int
	Scores []stats.WDL
}

// Schedule lists every game of the tournament in order.
func (tour *Tournament) Schedule() []*Match {
	// 1 Tournament = {ROUNDS} Rounds
	// 1 Round      = {SOME_N} Encounters
	// 1 Encounter  = {GAME_P} Game Pairs
	// 1 Game Pair  = 2 Games

	var games []*Match
	for round := 0; round < tour.Config.Rounds; round++ {
		tour.Scheduler.Initialize(len(tour.Config.Players))

		number := 0
		for encounter := 0; encounter < tour.Scheduler.TotalEncounters(); encounter++ {
			p1, p2 := tour.Scheduler.NextEncounter()

			for pair := 0; pair < tour.Config.GamePairs; pair++ {
				opening := tour.openings.Current()
				for game := 0; game < 2; game++ {
					number++
					games = append(games, &Match{
						Config: match.Config{
							Game:     tour.Config.Game,
							Position: opening,
							Players: [2]match.PlayerConfig{
								tour.Config.Players[p1],
								tour.Config.Players[p2],
							},
							MaxMoves: tour.Config.MaxMoves,
						},

						Round:  round + 1,
						Number: number,

						Player1: p1,
						Player2: p2,
					})

					// Switch turn.
					p1, p2 = p2, p1
				}

				tour.openings.Next()
			}
		}
	}

	return games
}

// Start plays every scheduled game on Concurrency workers and prints the
// final standings. It stops early when ctx is cancelled.
func (tour *Tournament) Start(parent context.Context) error {
	games := tour.Schedule()

	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(tour.Config.Concurrency)

	for _, game := range games {
		game := game
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			tour.record(tour.RunGame(game), len(games))
			return nil
		})
	}

	err := g.Wait()
	tour.Report()

	if err == nil {
		err = parent.Err()
	}

	return err
}

type Match struct {
	match.Config

	Round, Number    int
	Player1, Player2 int
}

func (tour *Tournament) RunGame(game *Match) Result {
	logrus.Infof(
		"\x1b[33mStarting\x1b[0m Round #%d Game #%d: %s vs %s (\x1b[33m%s\x1b[0m)",
		game.Round,
		game.Number,
		game.Players[0].Name,
		game.Players[1].Name,
		game.Position,
	)

	score, reason := match.Run(&game.Config)

	return Result{
		Match:  game,
		Result: score,
		Reason: reason,
	}
}

func (tour *Tournament) record(result Result, target int) {
	tour.mu.Lock()
	defer tour.mu.Unlock()

	tour.Games++

	p1, p2 := &tour.Scores[result.Match.Player1], &tour.Scores[result.Match.Player2]
	switch result.Result {
	case match.Win:
		p1.Wins++
		p2.Losses++

	case match.Loss:
		p2.Wins++
		p1.Losses++

	case match.Draw:
		p1.Draws++
		p2.Draws++
	}

	logrus.Infof(
		"\x1b[32mFinished\x1b[0m Round #%d Game #%d: %s vs %s: %s",
		result.Match.Round,
		result.Match.Number,
		result.Match.Players[0].Name,
		result.Match.Players[1].Name,
		result,
	)

	if tour.Games%5 == 0 && tour.Games != target {
		tour.report()
	}
}

// Report prints the standings table.
func (tour *Tournament) Report() {
	tour.mu.Lock()
	defer tour.mu.Unlock()

	tour.report()
}

func (tour *Tournament) report() {
	out := tour.Out

	fmt.Fprintln(out, "╔══════════════════════════════════════════════════════════╗")
	fmt.Fprintln(out, "║    Name               Elo Error   Wins Loss Draw   Total ║")
	fmt.Fprintln(out, "╠══════════════════════════════════════════════════════════╣")
	for i, player := range tour.Config.Players {
		score := tour.Scores[i]
		lower, elo, upper := score.Elo()

		format := "║ %2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d ║\n"
		if tour.Config.Scheduler == "gauntlet" && i == 0 {
			if elo >= 0 {
				format = "║ \x1b[32m%2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d\x1b[0m ║\n"
			} else {
				format = "║ \x1b[31m%2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d\x1b[0m ║\n"
			}
		}

		fmt.Fprintf(
			out, format,
			i+1, player.Name,
			elo, math.Abs(math.Max(upper-elo, elo-lower)),
			score.Wins, score.Losses, score.Draws,
			score.Games())
	}
	fmt.Fprintln(out, "╚══════════════════════════════════════════════════════════╝")
}

// Standings returns the player names ordered by score, best first.
func (tour *Tournament) Standings() []string {
	tour.mu.Lock()
	defer tour.mu.Unlock()

	order := lo.Range(len(tour.Config.Players))
	sort.SliceStable(order, func(i, j int) bool {
		return tour.Scores[order[i]].Score() > tour.Scores[order[j]].Score()
	})

	return lo.Map(order, func(i int, _ int) string {
		return tour.Config.Players[i].Name
	})
}

type Result struct {
	Match *Match

	Result match.Result
	Reason string
}

func (result Result) String() string {
	switch result.Result {
	case match.Win:
		return fmt.Sprintf("%s wins by %s", result.Match.Players[0].Name, result.Reason)
	case match.Loss:
		return fmt.Sprintf("%s wins by %s", result.Match.Players[1].Name, result.Reason)
	case match.Draw:
		return fmt.Sprintf("Draw by %s", result.Reason)
	}

	return "illegal result"
}

type Config struct {
	// The players participating in the tournament.
	Players []match.PlayerConfig `yaml:"engines"`

	// The game that will be played.
	Game string `yaml:"game"`

	// Number of games that will be played concurrently.
	Concurrency int `yaml:"concurrency"`

	// Games longer than this many plies are drawn.
	MaxMoves int `yaml:"max-moves"`

	Scheduler string `yaml:"scheduler"`

	Rounds    int `yaml:"rounds"`     // Number of rounds to run the tournament for.
	GamePairs int `yaml:"game-pairs"` // Number of games per encounter in every round.

	Openings match.OpeningConfig `yaml:"openings"`
}
