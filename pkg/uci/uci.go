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

// Package uci drives the chess engine with the Universal Chess Interface,
// so it can play under standard tournament managers.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/kibitz/pkg/games/chess"
	"laptudirm.com/x/kibitz/pkg/search"
)

// Identification sent in reply to the uci command.
const (
	Name   = "kibitz"
	Author = "the kibitz authors"
)

// Client answers UCI commands read from an input stream.
type Client struct {
	options search.Options
	budget  time.Duration

	position *chess.Position

	out    io.Writer
	logger logrus.FieldLogger
}

// NewClient returns a client searching with options, and for budget when
// a go command carries no time information.
func NewClient(options search.Options, budget time.Duration) *Client {
	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	position, _ := chess.NewPosition(chess.StartFEN)
	return &Client{
		options:  options,
		budget:   budget,
		position: position,
		logger:   logger,
	}
}

// Run reads commands from in until quit or the end of the input, writing
// the replies to out.
func (client *Client) Run(in io.Reader, out io.Writer) error {
	client.out = out

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		client.logger.Debugf("uci: < %s", line)
		if quit := client.handle(strings.Fields(line)); quit {
			return nil
		}
	}

	return scanner.Err()
}

func (client *Client) handle(args []string) (quit bool) {
	switch args[0] {
	case "uci":
		client.reply("id name %s", Name)
		client.reply("id author %s", Author)
		client.reply("uciok")

	case "isready":
		client.reply("readyok")

	case "ucinewgame":
		client.position, _ = chess.NewPosition(chess.StartFEN)

	case "position":
		position, err := parsePosition(args[1:])
		if err != nil {
			client.reply("info string %v", err)
			return false
		}

		client.position = position

	case "go":
		client.search(parseGo(args[1:]))

	case "stop":
		// searches are synchronous, so there is nothing to stop

	case "quit":
		return true

	default:
		client.logger.Debugf("uci: unknown command %q", args[0])
	}

	return false
}

// parsePosition parses the arguments of a position command.
func parsePosition(args []string) (*chess.Position, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("position: missing arguments")
	}

	fen, rest := "", []string(nil)
	switch args[0] {
	case "startpos":
		fen, rest = chess.StartFEN, args[1:]
	case "fen":
		end := 1
		for end < len(args) && args[end] != "moves" {
			end++
		}

		fen, rest = strings.Join(args[1:end], " "), args[end:]
	default:
		return nil, fmt.Errorf("position: unknown kind %q", args[0])
	}

	position, err := chess.NewPosition(fen)
	if err != nil {
		return nil, err
	}

	if len(rest) > 0 && rest[0] == "moves" {
		for _, move := range rest[1:] {
			if err := position.Play(move); err != nil {
				return nil, err
			}
		}
	}

	return position, nil
}

// limits are the arguments of a go command.
type limits struct {
	moveTime  time.Duration
	time, inc [2]time.Duration // indexed by white, black
	depth     int
}

func parseGo(args []string) limits {
	var l limits
	for i := 0; i+1 < len(args); i++ {
		value, err := strconv.Atoi(args[i+1])
		if err != nil {
			continue
		}

		ms := time.Duration(value) * time.Millisecond
		switch args[i] {
		case "movetime":
			l.moveTime = ms
		case "wtime":
			l.time[0] = ms
		case "btime":
			l.time[1] = ms
		case "winc":
			l.inc[0] = ms
		case "binc":
			l.inc[1] = ms
		case "depth":
			l.depth = value
		default:
			continue
		}

		i++
	}

	return l
}

// budget picks the time to search for: movetime if given, else a slice
// of the mover's clock, else fallback.
func (l limits) budget(white bool, fallback time.Duration) time.Duration {
	side := 0
	if !white {
		side = 1
	}

	switch {
	case l.moveTime > 0:
		return l.moveTime
	case l.time[side] > 0:
		return l.time[side]/20 + l.inc[side]/2
	case l.depth > 0:
		// a fixed depth search runs to completion
		return time.Hour
	default:
		return fallback
	}
}

func (client *Client) search(l limits) {
	options := client.options
	if l.depth > 0 {
		options.MaxDepth = l.depth
	}

	engine := chess.NewEngine(options)
	budget := l.budget(client.position.WhiteToMove(), client.budget)

	result := engine.Search(client.position, budget, func(result chess.Result) {
		score := fmt.Sprintf("cp %d", result.Score)
		if result.Mate != 0 {
			score = fmt.Sprintf("mate %d", result.Mate)
		}

		client.reply("info depth %d score %s nodes %d time %d pv %s",
			result.Depth, score, result.Nodes, result.Elapsed.Milliseconds(), result.BestMove)
	})

	if result.BestMove == "" {
		client.reply("bestmove 0000")
		return
	}

	client.reply("bestmove %s", result.BestMove)
}

func (client *Client) reply(format string, a ...any) {
	client.logger.Debugf("uci: > "+format, a...)
	fmt.Fprintf(client.out, format+"\n", a...)
}
