// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-horn/pkg/chc"
	"github.com/consensys/go-horn/pkg/split"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve [flags] problem_file",
	Short: "Run the splitting loop over a Horn clause problem.",
	Long: `Run the splitting loop over a Horn clause problem: each negative
	clause is isolated in turn and its sub-instance checked for feasibility.
	Learning is performed by an embedding application; this command runs the
	feasibility-only pass.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if getFlag(cmd, "debug") {
			log.SetLevel(log.DebugLevel)
		}
		//
		cfg := split.Config{
			Split:     !getFlag(cmd, "no-split"),
			SplitSort: !getFlag(cmd, "no-sort"),
			Infer:     false,
		}
		//
		instance := chc.Share(readInstanceFile(args[0]))
		//
		result, err := split.Run(instance, cfg, split.SliceReducer{}, nil)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		switch result.Kind {
		case split.CONTRADICTION:
			fmt.Printf("%s (by %s)\n", emph("unsat"), result.Verdict.Reason)
			os.Exit(10)
		default:
			fmt.Println(emph("no contradiction found"))
		}
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().Bool("no-split", false, "disable instance splitting")
	solveCmd.Flags().Bool("no-sort", false, "disable the clause connectivity heuristic")
}
