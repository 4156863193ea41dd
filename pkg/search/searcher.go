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

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Options configures a Searcher.
type Options struct {
	// Guard is the fraction of the time budget after which no new
	// iteration is started.
	Guard float64 `yaml:"guard" mapstructure:"guard"`

	// MaxDepth is the deepest iteration that will be searched.
	MaxDepth int `yaml:"max-depth" mapstructure:"max_depth"`

	// Decisive stops the deepening once the absolute score exceeds it.
	Decisive int `yaml:"decisive" mapstructure:"decisive"`

	// TableMB is the memory budget of the per call transposition table.
	// NoTable disables the table altogether.
	TableMB int  `yaml:"table-mb" mapstructure:"table_mb"`
	NoTable bool `yaml:"no-table" mapstructure:"no_table"`

	Logger logrus.FieldLogger `yaml:"-" mapstructure:"-"`
}

// DefaultOptions are used for every zero field of a Searcher's Options.
var DefaultOptions = Options{
	Guard:    0.7,
	MaxDepth: 8,
	Decisive: 9000,
	TableMB:  64,
}

// Merge returns options with every zero field taken from defaults.
func (options Options) Merge(defaults Options) Options {
	if options.Guard <= 0 {
		options.Guard = defaults.Guard
	}

	if options.MaxDepth <= 0 {
		options.MaxDepth = defaults.MaxDepth
	}

	if options.Decisive <= 0 {
		options.Decisive = defaults.Decisive
	}

	if options.TableMB <= 0 {
		options.TableMB = defaults.TableMB
	}

	if options.Logger == nil {
		options.Logger = defaults.Logger
	}

	return options
}

func (options Options) withDefaults() Options {
	options = options.Merge(DefaultOptions)
	if options.Logger == nil {
		options.Logger = logrus.StandardLogger()
	}

	return options
}

// Result is the outcome of a search. Found is false when the position had
// no legal moves, in which case Score and Depth are 0.
type Result[M comparable] struct {
	Move  M
	Found bool

	Score int
	Depth int

	Nodes   int
	Elapsed time.Duration
}

// Searcher finds the best move of a Game within a time budget using
// iterative deepening. A Searcher holds no state between calls and may be
// used for any number of positions, one at a time.
type Searcher[M comparable] struct {
	Options Options

	// OnDepth, if set, is called after every completed iteration.
	OnDepth func(Result[M])
}

func New[M comparable](options Options) *Searcher[M] {
	return &Searcher[M]{Options: options.withDefaults()}
}

// Bounds on the factor by which one iteration is expected to take longer
// than the one before it.
const (
	minGrowth = 2
	maxGrowth = 32
)

// FindBestMove searches game at increasing depths until the budget guard
// triggers, MaxDepth is reached or a decisive score is found, and returns
// the result of the deepest completed iteration. The first iteration is
// always completed, so a move is returned even with a zero budget. The
// budget is only checked between iterations: a new iteration is started
// only if the guard has not passed and the iteration is predicted, from
// the growth of the previous ones, to finish within the budget. A long
// iteration can still overrun it.
func (searcher *Searcher[M]) FindBestMove(game Game[M], budget time.Duration) Result[M] {
	options := searcher.Options.withDefaults()
	start := time.Now()

	// a position drawn by rule still has moves to play, so only an empty
	// move list ends the search at the root
	moves := game.LegalMoves()
	if len(moves) == 0 {
		return Result[M]{}
	}

	if shortcutter, ok := game.(Shortcutter[M]); ok {
		if move, score, ok := shortcutter.Shortcut(); ok {
			result := Result[M]{
				Move: move, Found: true,
				Score: score, Depth: 1,
				Elapsed: time.Since(start),
			}

			options.Logger.WithFields(logrus.Fields{
				"score": score,
			}).Debug("search: tactical shortcut")

			searcher.report(result)
			return result
		}
	}

	w := newWorker(game, searcher.newTable(options))
	best := Result[M]{Move: moves[0], Found: true}

	var previous time.Duration
	growth, lastRatio := float64(minGrowth), 0.0

	for depth := 1; depth <= options.MaxDepth; depth++ {
		iteration := time.Now()
		score, move, found := w.negamax(depth, 0, -Infinity, Infinity)
		took := time.Since(iteration)
		if found {
			best.Move = move
			best.Score = score
			best.Depth = depth
		}

		best.Nodes = w.nodes
		best.Elapsed = time.Since(start)

		options.Logger.WithFields(logrus.Fields{
			"depth":   depth,
			"score":   score,
			"nodes":   w.nodes,
			"elapsed": best.Elapsed,
		}).Debug("search: iteration complete")

		searcher.report(best)

		if float64(best.Elapsed) > options.Guard*float64(budget) {
			break
		}

		if previous > 0 {
			ratio := float64(took) / float64(previous)
			growth = min(max(ratio, lastRatio, minGrowth), maxGrowth)
			lastRatio = ratio
		}
		previous = took

		// the next iteration is not started if it is expected to end
		// past the budget
		if best.Elapsed+time.Duration(growth*float64(took)) > budget {
			break
		}

		if abs(best.Score) > options.Decisive {
			break
		}

		// a forced move needs no deeper search
		if len(moves) == 1 {
			break
		}
	}

	return best
}

// SearchDepth runs a single full window search of game to depth with a
// fresh table and no time limit.
func (searcher *Searcher[M]) SearchDepth(game Game[M], depth int) Result[M] {
	options := searcher.Options.withDefaults()
	start := time.Now()

	w := newWorker(game, searcher.newTable(options))
	score, move, found := w.negamax(depth, 0, -Infinity, Infinity)

	return Result[M]{
		Move: move, Found: found,
		Score: score, Depth: depth,
		Nodes: w.nodes, Elapsed: time.Since(start),
	}
}

func (searcher *Searcher[M]) newTable(options Options) *Table[M] {
	if options.NoTable {
		return nil
	}

	return NewTable[M](options.TableMB)
}

func (searcher *Searcher[M]) report(result Result[M]) {
	if searcher.OnDepth != nil {
		searcher.OnDepth(result)
	}
}
