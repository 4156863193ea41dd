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
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/kibitz/pkg/uci"
)

// kibitz uci
func UCI() *cobra.Command {
	return &cobra.Command{
		Use:   "uci",
		Short: "Speak the Universal Chess Interface on stdin and stdout",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			// stdout belongs to the protocol
			logrus.SetOutput(os.Stderr)

			client := uci.NewClient(cfg.Options(cfg.Chess, logrus.StandardLogger()), cfg.Chess.Budget())
			return client.Run(os.Stdin, os.Stdout)
		},
	}
}
