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

package data

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/samber/lo"
)

// suites maps a game to its named opening suites, one position per line.
// Chess positions are FENs, gomoku positions are move lists played from
// the empty board.
var suites = map[string]map[string]string{
	"chess": {
		"startpos": heredoc.Doc(`
			rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1
		`),

		"default": heredoc.Doc(`
			rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2
			rnbqkbnr/ppp1pppp/8/3p4/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 0 2
			rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2
			rnbqkbnr/pppp1ppp/8/4p3/2P5/8/PP1PPPPP/RNBQKBNR w KQkq - 0 2
			rnbqkb1r/pppppppp/5n2/8/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 1 2
			rnbqkbnr/pppp1ppp/4p3/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2
			rnbqkbnr/pp1ppppp/2p5/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2
			rnbqkbnr/ppp1pppp/8/3p4/8/5N2/PPPPPPPP/RNBQKB1R w KQkq - 0 2
			r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3
			rnbqkb1r/pppp1ppp/5n2/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3
		`),
	},

	"gomoku": {
		"default": heredoc.Doc(`
			7,7
			7,7 7,8
			7,7 8,8
			7,7 6,8 8,6
			7,7 7,9 9,7
			7,7 8,7 6,9
			7,7 6,6 8,9
			6,7 8,7 7,5
			7,6 7,8 5,7
			7,7 9,9 5,9 9,5
		`),
	},
}

// Openings returns the positions of the named suite for game. An empty
// suite name selects the default suite.
func Openings(game, suite string) ([]string, error) {
	switch game {
	case "", "chess":
		game = "chess"
	case "connect5":
		game = "gomoku"
	}

	if suite == "" {
		suite = "default"
	}

	book, found := suites[game][suite]
	if !found {
		return nil, fmt.Errorf("openings: no suite %q for %s", suite, game)
	}

	return strings.Split(strings.TrimSpace(book), "\n"), nil
}

// Suites lists the suite names available for game.
func Suites(game string) []string {
	names := lo.Keys(suites[game])
	sort.Strings(names)
	return names
}
