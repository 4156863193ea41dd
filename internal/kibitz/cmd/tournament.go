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

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/kibitz/pkg/eve/match"
	"laptudirm.com/x/kibitz/pkg/eve/sprt"
	"laptudirm.com/x/kibitz/pkg/eve/tournament"
)

// readYAML decodes the yaml file at path into v.
func readYAML(path string, v any) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(file, v)
}

// kibitz tournament
func Tournament() *cobra.Command {
	return &cobra.Command{
		Use:   "tournament details-file",
		Short: "Run a tournament between different players",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`tournament plays a round-robin or gauntlet tournament
			described by a yaml file and reports the standings.

			Players are either the built in engine (kind: search) with
			its own search options, or external uci engines (kind: uci)
			for chess tournaments.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var config tournament.Config
			if err := readYAML(args[0], &config); err != nil {
				return err
			}

			tour, err := tournament.NewTournament(config)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return tour.Start(ctx)
		},
	}
}

// kibitz selfplay
func SelfPlay() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "selfplay { chess | gomoku }",
		Short:     "Play the built in engine against itself with two time budgets",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"chess", "gomoku"},

		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			games, _ := flags.GetInt("games")
			timeA, _ := flags.GetInt("time-a")
			timeB, _ := flags.GetInt("time-b")
			concurrency, _ := flags.GetInt("concurrency")
			maxMoves, _ := flags.GetInt("max-moves")

			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			game := cfg.Chess
			if args[0] == "gomoku" {
				game = cfg.Gomoku
			}

			player := func(ms int) match.PlayerConfig {
				return match.PlayerConfig{
					Name:   fmt.Sprintf("kibitz-%dms", ms),
					TimeMS: ms,
					Search: cfg.Options(game, logrus.StandardLogger()),
				}
			}

			tour, err := tournament.NewTournament(tournament.Config{
				Players:     []match.PlayerConfig{player(timeA), player(timeB)},
				Game:        args[0],
				Concurrency: concurrency,
				MaxMoves:    maxMoves,
				GamePairs:   (games + 1) / 2,
			})
			if err != nil {
				return err
			}

			// both players share a name when the budgets are equal
			if timeA == timeB {
				tour.Config.Players[1].Name += "-b"
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return tour.Start(ctx)
		},
	}

	cmd.Flags().Int("games", 10, "Number of games to play")
	cmd.Flags().Int("time-a", 200, "First player's budget per move in milliseconds")
	cmd.Flags().Int("time-b", 100, "Second player's budget per move in milliseconds")
	cmd.Flags().Int("concurrency", 1, "Number of games played at once")
	cmd.Flags().Int("max-moves", 300, "Plies after which a game is drawn")
	return cmd
}

// kibitz sprt
func SPRT() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprt { details-file | --resume test-name }",
		Short: "Run a Sequential Probability Ratio Test between two players",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`sprt plays game pairs between two players until the
			log-likelihood ratio of the elo1 hypothesis against the
			elo0 hypothesis crosses one of the stopping bounds.

			The state of the test is saved in the data directory under
			the test's name, which defaults to the details file's name,
			and an interrupted test is continued with --resume.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var config sprt.Config

			resume, _ := cmd.Flags().GetString("resume")
			switch {
			case resume != "":
				var err error
				if config, err = sprt.Load(resume); err != nil {
					return err
				}

				config.Name = resume

			case len(args) == 1:
				if err := readYAML(args[0], &config); err != nil {
					return err
				}

				if config.Name == "" {
					config.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				}

			default:
				return fmt.Errorf("sprt: need a details file or --resume")
			}

			test, err := sprt.NewTournament(config)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			verdict, err := test.Start(ctx)
			if err != nil {
				return err
			}

			logrus.Infof("sprt %s: %s", config.Name, verdict)
			return nil
		},
	}

	cmd.Flags().String("resume", "", "Resume the paused test with this name")
	return cmd
}
