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

var infoCmd = &cobra.Command{
	Use:   "info [flags] problem_file",
	Short: "Report statistics and the split ordering of a Horn clause problem.",
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
		instance := readInstanceFile(args[0])
		//
		fmt.Printf("%s: %d predicate(s), %d clause(s), %d negative clause(s)\n",
			emph(args[0]), instance.NumPredicates(), instance.NumClauses(),
			len(instance.NegClauses()))
		//
		cfg := split.Config{
			Split:     true,
			SplitSort: !getFlag(cmd, "no-sort"),
		}
		//
		shared := chc.Share(instance)
		splitter := split.NewSplitter(shared, cfg)
		//
		for {
			clause, handled, total, ok := splitter.Peek()
			if !ok {
				break
			}
			//
			fmt.Printf("split %d of %d: clause #%d %s\n", handled+1, total,
				clause, instance.Clause(clause))
			// Consume without reducing anything.
			if _, err := splitter.Advance(peekReducer{}); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}
	},
}

// peekReducer is a preprocessor which reduces nothing, used to drain the
// splitter for diagnostics.
type peekReducer struct{}

func (p peekReducer) Reduce(instance *chc.Instance, isolate chc.ClauseIndex,
	excluded *chc.ClauseSet) (split.Outcome, error) {
	return split.Outcome{Kind: split.TRIVIAL}, nil
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().Bool("no-sort", false, "disable the clause connectivity heuristic")
}
