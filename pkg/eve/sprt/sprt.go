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

package sprt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/kibitz/pkg/config"
	"laptudirm.com/x/kibitz/pkg/eve/match"
	"laptudirm.com/x/kibitz/pkg/eve/stats"
)

func NewTournament(conf Config) (*SPRT, error) {
	var sprt SPRT
	sprt.Config = conf
	sprt.Out = os.Stdout

	if sprt.Config.Concurrency < 1 {
		sprt.Config.Concurrency = 1
	}

	if sprt.Config.Alpha <= 0 || sprt.Config.Alpha >= 1 || sprt.Config.Beta <= 0 || sprt.Config.Beta >= 1 {
		return nil, fmt.Errorf("sprt: alpha and beta must be in (0, 1), have %v and %v", conf.Alpha, conf.Beta)
	}

	if sprt.Config.Elo0 >= sprt.Config.Elo1 {
		return nil, fmt.Errorf("sprt: elo0 %v is not below elo1 %v", conf.Elo0, conf.Elo1)
	}

	var err error
	sprt.openings, err = match.NewBook(conf.Openings, conf.Game)
	if err != nil {
		return nil, err
	}

	sprt.a, sprt.b = stats.StoppingBounds(sprt.Config.Alpha, sprt.Config.Beta)
	if conf.Name != "" {
		sprt.StateFile = config.PausedSPRTFile(conf.Name)
	}

	return &sprt, nil
}

// Load reads the state of the paused SPRT name.
func Load(name string) (Config, error) {
	return LoadFile(config.PausedSPRTFile(name))
}

func LoadFile(path string) (Config, error) {
	var sprt Config

	data, err := os.ReadFile(path)
	if err != nil {
		return sprt, err
	}

	err = yaml.Unmarshal(data, &sprt)
	return sprt, err
}

type SPRT struct {
	Config

	// Out receives the reports.
	Out io.Writer

	// StateFile is where the state is saved after every report. Empty
	// disables saving.
	StateFile string

	openings *match.OpeningBook

	mu      sync.Mutex
	number  int
	verdict Verdict

	a, b float64
}

// Verdict is the outcome of an SPRT.
type Verdict int

const (
	Inconclusive Verdict = iota
	AcceptH0
	AcceptH1
)

func (verdict Verdict) String() string {
	switch verdict {
	case AcceptH0:
		return "H0 Accepted"
	case AcceptH1:
		return "H1 Accepted"
	default:
		return "Inconclusive"
	}
}

var errDone = errors.New("sprt: test finished")

// Start plays game pairs on Concurrency workers until a hypothesis is
// accepted, MaxPairs pairs were played or ctx is cancelled.
func (sprt *SPRT) Start(ctx context.Context) (Verdict, error) {
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < sprt.Config.Concurrency; i++ {
		g.Go(func() error {
			for gctx.Err() == nil {
				game, ok := sprt.next()
				if !ok {
					return errDone
				}

				if sprt.record(sprt.RunPair(game)) {
					return errDone
				}
			}

			return nil
		})
	}

	err := g.Wait()

	sprt.mu.Lock()
	defer sprt.mu.Unlock()

	sprt.report()
	if err := sprt.save(); err != nil {
		logrus.Error(err)
	}

	switch {
	case errors.Is(err, errDone), err == nil && ctx.Err() == nil:
		return sprt.verdict, nil
	case err == nil:
		return sprt.verdict, ctx.Err()
	default:
		return sprt.verdict, err
	}
}

// next schedules the next game pair, if any are left.
func (sprt *SPRT) next() (*Match, bool) {
	sprt.mu.Lock()
	defer sprt.mu.Unlock()

	scheduled := sprt.State.Pairs.Pairs() + sprt.number
	if sprt.verdict != Inconclusive || (sprt.Config.MaxPairs > 0 && scheduled >= sprt.Config.MaxPairs) {
		return nil, false
	}

	sprt.number++
	opening := sprt.openings.Current()
	sprt.openings.Next()

	return &Match{
		Config: match.Config{
			Game:     sprt.Config.Game,
			Position: opening,
			Players:  sprt.Config.Players,
			MaxMoves: sprt.Config.MaxMoves,
		},

		Number: scheduled + 1,
	}, true
}

type Match struct {
	match.Config
	Number int
}

// RunPair plays both games of a pair, swapping colours, and returns the
// results from the first player's point of view.
func (sprt *SPRT) RunPair(game *Match) PairResult {
	var pair PairResult

	for i := 0; i < 2; i++ {
		config := game.Config
		if i == 1 {
			config.Players[0], config.Players[1] = config.Players[1], config.Players[0]
		}

		logrus.Infof(
			"\x1b[33mStarting\x1b[0m Pair #%d Game #%d: %s vs %s (\x1b[33m%s\x1b[0m)",
			game.Number, i+1,
			config.Players[0].Name,
			config.Players[1].Name,
			config.Position,
		)

		score, reason := match.Run(&config)
		if i == 1 {
			score = score.Flip()
		}

		pair.Matches[i] = Result{Players: config.Players, Result: score, Reason: reason, Flipped: i == 1}
	}

	pair.Result = match.GetPairResult(
		pair.Matches[0].Result,
		pair.Matches[1].Result,
	)

	return pair
}

// record adds a finished pair to the state and reports whether the test
// has reached a verdict.
func (sprt *SPRT) record(pair PairResult) bool {
	sprt.mu.Lock()
	defer sprt.mu.Unlock()

	sprt.number--

	state := &sprt.State
	switch pair.Result {
	case match.WinWin:
		state.Pairs.WinWin++
	case match.WinDraw:
		state.Pairs.WinDraw++
	case match.DrawDraw:
		state.Pairs.DrawDraw++
	case match.DrawLoss:
		state.Pairs.DrawLoss++
	case match.LossLoss:
		state.Pairs.LossLoss++
	}

	for _, result := range pair.Matches {
		switch result.Result {
		case match.Win:
			state.Games.Wins++
		case match.Loss:
			state.Games.Losses++
		case match.Draw:
			state.Games.Draws++
		}

		logrus.Infof("\x1b[32mFinished\x1b[0m Game: %s vs %s: %s", result.Players[0].Name, result.Players[1].Name, result)
	}

	if sprt.verdict != Inconclusive {
		return true
	}

	if llr := sprt.LLR(); llr <= sprt.a {
		sprt.verdict = AcceptH0
	} else if llr >= sprt.b {
		sprt.verdict = AcceptH1
	}

	if state.Pairs.Pairs()%5 == 0 && sprt.verdict == Inconclusive {
		sprt.report()
		if err := sprt.save(); err != nil {
			logrus.Error(err)
		}
	}

	return sprt.verdict != Inconclusive
}

// save writes the state so the test can be resumed later.
func (sprt *SPRT) save() error {
	if sprt.StateFile == "" {
		return nil
	}

	if err := config.TryMkdir(filepath.Dir(sprt.StateFile)); err != nil {
		return err
	}

	data, err := yaml.Marshal(sprt.Wrap())
	if err != nil {
		return err
	}

	return os.WriteFile(sprt.StateFile, data, 0o644)
}

func (sprt *SPRT) report() {
	out := sprt.Out

	lower, elo, upper := sprt.Elo()
	err := math.Abs(math.Max(upper-elo, elo-lower))

	games := sprt.State.Games
	llr := sprt.LLR()

	eloStr := fmt.Sprintf("║ ELO   | %.2f +- %.2f (95%%)", elo, err)
	llrStr := fmt.Sprintf("║ LLR   | %.2f (%.2f, %.2f) [%.2f, %.2f]", llr, sprt.a, sprt.b, sprt.Config.Elo0, sprt.Config.Elo1)
	gamStr := fmt.Sprintf("║ GAMES | N: %d W: %d L: %d D: %d", games.Games(), games.Wins, games.Losses, games.Draws)

	if sprt.verdict == AcceptH0 {
		fmt.Fprintln(out, "\x1b[31m"+sprt.verdict.String()+"\x1b[0m")
	} else if sprt.verdict == AcceptH1 {
		fmt.Fprintln(out, "\x1b[32m"+sprt.verdict.String()+"\x1b[0m")
	}

	fmt.Fprintln(out, "╔═════════════════════════════════════════════════╗")
	fmt.Fprintf(out, "%-50s║\n", eloStr)
	fmt.Fprintf(out, "%-50s║\n", llrStr)
	fmt.Fprintf(out, "%-50s║\n", gamStr)
	if !sprt.Config.Legacy {
		pairs := sprt.State.Pairs
		pentaStr := fmt.Sprintf(
			"║ PENTA | [%d, %d, %d, %d, %d]",
			pairs.LossLoss, pairs.DrawLoss,
			pairs.DrawDraw,
			pairs.WinDraw, pairs.WinWin,
		)
		fmt.Fprintf(out, "%-50s║\n", pentaStr)
	}
	fmt.Fprintln(out, "╚═════════════════════════════════════════════════╝")
}

func (sprt *SPRT) Elo() (float64, float64, float64) {
	if sprt.Config.Legacy {
		return sprt.State.Games.Elo()
	}

	return sprt.State.Pairs.Elo()
}

func (sprt *SPRT) LLR() float64 {
	if sprt.Config.Legacy {
		return sprt.State.Games.LLR(sprt.Config.Elo0, sprt.Config.Elo1)
	}

	return sprt.State.Pairs.LLR(sprt.Config.Elo0, sprt.Config.Elo1)
}

// Wrap returns the config with the current state, ready to be resumed.
func (sprt *SPRT) Wrap() Config {
	conf := sprt.Config
	conf.Openings = sprt.openings.Wrap(conf.Openings)
	return conf
}

type PairResult struct {
	Result  match.PairResult
	Matches [2]Result
}

// Result is a game of a pair, scored for the first configured player.
type Result struct {
	Players [2]match.PlayerConfig

	Result  match.Result
	Reason  string
	Flipped bool
}

func (result Result) String() string {
	winner, loser := result.Players[0].Name, result.Players[1].Name
	if result.Flipped {
		winner, loser = loser, winner
	}

	switch result.Result {
	case match.Win:
		return fmt.Sprintf("%s wins by %s", winner, result.Reason)
	case match.Loss:
		return fmt.Sprintf("%s wins by %s", loser, result.Reason)
	case match.Draw:
		return fmt.Sprintf("Draw by %s", result.Reason)
	}

	return "illegal result"
}

type Config struct {
	Name string `yaml:"name"`

	// The players being tested; the first is the one under test.
	Players [2]match.PlayerConfig `yaml:"engines"`

	// The game that will be played.
	Game string `yaml:"game"`

	// Number of games that will be played concurrently.
	Concurrency int `yaml:"concurrency"`

	// Games longer than this many plies are drawn.
	MaxMoves int `yaml:"max-moves"`

	// Stop after this many pairs without a verdict, zero for no limit.
	MaxPairs int `yaml:"max-pairs"`

	// Legacy uses the trinomial model over single games.
	Legacy bool `yaml:"legacy"`

	Elo0  float64 `yaml:"elo0"` // The null elo hypothesis.
	Elo1  float64 `yaml:"elo1"` // The alternate elo hypothesis.
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`

	Openings match.OpeningConfig `yaml:"openings"`

	State State `yaml:"state"`
}

// State is the tally of a running test.
type State struct {
	Games stats.WDL   `yaml:"games"`
	Pairs stats.Penta `yaml:"pairs"`
}
