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
	"errors"
	"fmt"
	"time"

	"laptudirm.com/x/kibitz/pkg/games/chess"
	"laptudirm.com/x/kibitz/pkg/games/gomoku"
	"laptudirm.com/x/kibitz/pkg/search"
)

// Player is one side of a game.
type Player interface {
	Name() string

	// NewGame prepares the player for a new game.
	NewGame() error

	// BestMove returns the player's move in the position reached by
	// playing moves from position.
	BestMove(position string, moves []string, clock Clock) (string, error)

	Close() error
}

// Clock is the time situation seen by the player to move.
type Clock struct {
	Ours, Theirs TimeControl

	// First reports whether the player to move has the first colour:
	// white in chess and black in gomoku.
	First bool
}

// PlayerConfig describes a player in a tournament file.
type PlayerConfig struct {
	Name string `yaml:"name"`

	// Kind is "search" for the built in engine, the default, or "uci"
	// for an external chess engine.
	Kind string `yaml:"kind"`

	// External engine process.
	Cmd      string            `yaml:"cmd"`
	Dir      string            `yaml:"dir"`
	Arg      string            `yaml:"arg"`
	Protocol string            `yaml:"protocol"`
	InitStr  string            `yaml:"init-string"`
	Options  map[string]string `yaml:"options"`

	TimeC string `yaml:"tc"`
	Depth int    `yaml:"depth"`

	// Built in engine.
	TimeMS int            `yaml:"time-ms"`
	Search search.Options `yaml:"search"`
}

var ErrNoMove = errors.New("player: no move to play")

// NewPlayer starts the player described by config for game.
func NewPlayer(config PlayerConfig, game string) (Player, error) {
	switch config.Kind {
	case "uci":
		if game != "chess" && game != "" {
			return nil, fmt.Errorf("player %s: uci engines only play chess", config.Name)
		}

		return StartUCIPlayer(config)

	case "search", "":
		return NewSearchPlayer(config, game)

	default:
		return nil, fmt.Errorf("player %s: unknown kind %q", config.Name, config.Kind)
	}
}

// DefaultMoveTime is the budget of a built in player without a clock or
// a fixed move time.
const DefaultMoveTime = 100 * time.Millisecond

// SearchPlayer plays with the built in engine.
type SearchPlayer struct {
	name string
	game string

	moveTime time.Duration

	chess  *chess.Engine
	gomoku *gomoku.Engine
}

func NewSearchPlayer(config PlayerConfig, game string) (*SearchPlayer, error) {
	options := config.Search
	if config.Depth > 0 {
		options.MaxDepth = config.Depth
	}

	player := &SearchPlayer{
		name:     config.Name,
		game:     game,
		moveTime: time.Duration(config.TimeMS) * time.Millisecond,
	}

	switch game {
	case "chess", "":
		player.game = "chess"
		player.chess = chess.NewEngine(options)
	case "gomoku", "connect5":
		player.game = "gomoku"
		player.gomoku = gomoku.NewEngine(options)
	default:
		return nil, fmt.Errorf("player %s: unknown game %q", config.Name, game)
	}

	return player, nil
}

func (player *SearchPlayer) Name() string   { return player.name }
func (player *SearchPlayer) NewGame() error { return nil }
func (player *SearchPlayer) Close() error   { return nil }

func (player *SearchPlayer) budget(clock Clock) time.Duration {
	switch {
	case player.moveTime > 0:
		return player.moveTime
	case clock.Ours.Unlimited():
		return DefaultMoveTime
	default:
		return clock.Ours.Budget()
	}
}

func (player *SearchPlayer) BestMove(position string, moves []string, clock Clock) (string, error) {
	budget := player.budget(clock)

	if player.game == "gomoku" {
		board, err := gomoku.ParseOpening(position)
		if err != nil {
			return "", err
		}

		for _, move := range moves {
			if err := board.Play(move); err != nil {
				return "", err
			}
		}

		result := player.gomoku.Search(board, budget, nil)
		if result.Move == gomoku.NoMove {
			return "", ErrNoMove
		}

		return result.Move.String(), nil
	}

	if position == "" {
		position = chess.StartFEN
	}

	board, err := chess.NewPosition(position)
	if err != nil {
		return "", err
	}

	for _, move := range moves {
		if err := board.Play(move); err != nil {
			return "", err
		}
	}

	result := player.chess.Search(board, budget, nil)
	if result.BestMove == "" {
		return "", ErrNoMove
	}

	return result.BestMove, nil
}
