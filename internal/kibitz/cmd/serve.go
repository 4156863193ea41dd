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
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/kibitz/pkg/server"
)

// kibitz serve
func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve best move queries over HTTP",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve starts the HTTP host surface of kibitz. It answers
			POST /bestmove with a chess move for a FEN, POST
			/connect-five-move with a gomoku move for a board and
			streams the search progress of either game over the
			/analysis websocket.

			The listen address and the search settings of both games
			are read from kibitz.yaml and KIBITZ_* variables.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			if cmd.Flag("addr").Changed {
				cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, logrus.StandardLogger()).ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().String("addr", ":8000", "Address to listen on")
	return cmd
}
