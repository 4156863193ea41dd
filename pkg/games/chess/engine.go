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

package chess

import (
	"time"

	"laptudirm.com/x/kibitz/pkg/search"
)

// DefaultOptions are the search options chess is played with.
var DefaultOptions = search.DefaultOptions

// Result is the engine's answer for a position.
type Result struct {
	Move Move

	// BestMove is the move in UCI notation, empty when the side to move
	// has no legal moves.
	BestMove string

	// Score is in centipawns for the side to move. Mate is the signed
	// number of moves to mate when Score is a mate score, else 0.
	Score int
	Mate  int

	Depth int
	Nodes int

	Elapsed time.Duration
}

// Engine picks chess moves. It is safe for concurrent use.
type Engine struct {
	options search.Options
}

// NewEngine returns an engine searching with options, with zero fields
// taken from DefaultOptions.
func NewEngine(options search.Options) *Engine {
	return &Engine{options: options.Merge(DefaultOptions)}
}

// Options returns the search options of the engine.
func (engine *Engine) Options() search.Options {
	return engine.options
}

// Analyse parses fen and searches it for budget.
func (engine *Engine) Analyse(fen string, budget time.Duration) (Result, error) {
	position, err := NewPosition(fen)
	if err != nil {
		return Result{}, err
	}

	return engine.Search(position, budget, nil), nil
}

// Search finds the best move in position. onDepth, if not nil, is called
// with the result of every completed iteration.
func (engine *Engine) Search(position *Position, budget time.Duration, onDepth func(Result)) Result {
	searcher := search.New[Move](engine.options)
	if onDepth != nil {
		searcher.OnDepth = func(result search.Result[Move]) {
			onDepth(convert(result))
		}
	}

	return convert(searcher.FindBestMove(position, budget))
}

func convert(result search.Result[Move]) Result {
	if !result.Found {
		return Result{}
	}

	return Result{
		Move:     result.Move,
		BestMove: MoveString(result.Move),

		Score: result.Score,
		Mate:  search.MateIn(result.Score),
		Depth: result.Depth,
		Nodes: result.Nodes,

		Elapsed: result.Elapsed,
	}
}
