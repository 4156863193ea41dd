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

package gomoku

import (
	"time"

	"laptudirm.com/x/kibitz/pkg/search"
)

// DefaultOptions are the search options gomoku is played with.
var DefaultOptions = search.Options{
	Guard:    0.8,
	MaxDepth: 10,
	Decisive: 900_000,
	TableMB:  search.DefaultOptions.TableMB,
}

// Result is the engine's answer for a board. Row and Col are -1 when the
// board had no move to play.
type Result struct {
	Move     Move
	Row, Col int

	// Eval is from the point of view of the side to move.
	Eval  int
	Depth int
	Nodes int

	Elapsed time.Duration
}

// NoResult is returned for boards without a move to play.
var NoResult = Result{Move: NoMove, Row: -1, Col: -1}

// Engine picks gomoku moves. It is safe for concurrent use.
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

// Analyse parses board and searches it for budget.
func (engine *Engine) Analyse(board string, budget time.Duration) (Result, error) {
	position, err := Parse(board)
	if err != nil {
		return NoResult, err
	}

	return engine.Search(position, budget, nil), nil
}

// Search finds the best move on board. onDepth, if not nil, is called
// with the result of every completed iteration.
func (engine *Engine) Search(board *Board, budget time.Duration, onDepth func(Result)) Result {
	searcher := search.New[Move](engine.options)
	if onDepth != nil {
		searcher.OnDepth = func(result search.Result[Move]) {
			onDepth(convert(result))
		}
	}

	return convert(searcher.FindBestMove(board, budget))
}

func convert(result search.Result[Move]) Result {
	if !result.Found {
		return NoResult
	}

	return Result{
		Move: result.Move,
		Row:  result.Move.Row(), Col: result.Move.Col(),
		Eval:  result.Score,
		Depth: result.Depth,
		Nodes: result.Nodes,

		Elapsed: result.Elapsed,
	}
}
