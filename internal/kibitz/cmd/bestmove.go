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
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/kibitz/internal/util"
	"laptudirm.com/x/kibitz/pkg/config"
	"laptudirm.com/x/kibitz/pkg/games/chess"
	"laptudirm.com/x/kibitz/pkg/games/gomoku"
)

// kibitz bestmove
func BestMove() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bestmove",
		Short: "Search a single position",
	}

	cmd.PersistentFlags().Int("time-ms", 0, "Search budget in milliseconds")

	cmd.AddCommand(bestMoveChess())
	cmd.AddCommand(bestMoveGomoku())
	return cmd
}

// budget returns the --time-ms flag, or the configured budget of game.
func budget(cmd *cobra.Command, game config.Game) time.Duration {
	if ms, _ := cmd.Flags().GetInt("time-ms"); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}

	return game.Budget()
}

func bestMoveChess() *cobra.Command {
	return &cobra.Command{
		Use:   "chess fen",
		Short: "Find the best chess move in a FEN position",
		Args:  cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			engine := chess.NewEngine(cfg.Options(cfg.Chess, logrus.StandardLogger()))
			fen := strings.Join(args, " ")

			type outcome struct {
				result chess.Result
				err    error
			}

			out := util.Spin("searching", func() outcome {
				result, err := engine.Analyse(fen, budget(cmd, cfg.Chess))
				return outcome{result, err}
			})

			if out.err != nil {
				return out.err
			}

			result := out.result
			if result.BestMove == "" {
				fmt.Println("bestmove (none)")
				return nil
			}

			score := fmt.Sprintf("cp %d", result.Score)
			if result.Mate != 0 {
				score = fmt.Sprintf("mate %d", result.Mate)
			}

			fmt.Printf("bestmove %s (%s, depth %d, nodes %d, %s)\n",
				result.BestMove, score, result.Depth, result.Nodes, result.Elapsed.Round(time.Millisecond))
			return nil
		},
	}
}

func bestMoveGomoku() *cobra.Command {
	return &cobra.Command{
		Use:   "gomoku board",
		Short: "Find the best gomoku move on a 225 character board or a move list",
		Args:  cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			board, err := gomoku.ParseOpening(strings.Join(args, " "))
			if err != nil {
				return err
			}

			engine := gomoku.NewEngine(cfg.Options(cfg.Gomoku, logrus.StandardLogger()))
			result := util.Spin("searching", func() gomoku.Result {
				return engine.Search(board, budget(cmd, cfg.Gomoku), nil)
			})

			if result.Move == gomoku.NoMove {
				fmt.Println("bestmove (none)")
				return nil
			}

			board.Apply(result.Move)
			fmt.Print(board.Pretty())
			fmt.Printf("bestmove %s (eval %d, depth %d, nodes %d, %s)\n",
				result.Move, result.Eval, result.Depth, result.Nodes, result.Elapsed.Round(time.Millisecond))
			return nil
		},
	}
}
