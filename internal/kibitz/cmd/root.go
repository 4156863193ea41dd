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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/kibitz/pkg/config"
)

// Version is set at build time with -ldflags.
var Version = "v0.1.0"

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "kibitz",
		Short: "Game-tree search engine for chess and gomoku",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace or --debug is provided, raise the logging level.
			switch {
			case cmd.Flag("trace").Changed:
				logrus.SetLevel(logrus.TraceLevel)
			case cmd.Flag("debug").Changed:
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Kibitz's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().BoolP("debug", "d", false, "Show Debug Information")
	root.PersistentFlags().StringP("config", "c", "", "Path to kibitz.yaml")

	root.SetVersionTemplate(Version + "\n")
	root.Version = Version

	// Register the various commands.
	root.AddCommand(Serve())
	root.AddCommand(BestMove())
	root.AddCommand(UCI())
	root.AddCommand(SelfPlay())
	root.AddCommand(Tournament())
	root.AddCommand(SPRT())
	root.AddCommand(VersionCmd())

	return root
}

// load reads the configuration named by the --config flag.
func load(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	return config.Load(path)
}

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of kibitz",
		Args:  cobra.NoArgs,

		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("kibitz " + Version)
		},
	}
}
