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
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Parse an instance file, exiting on failure.
func readInstanceFile(filename string) *chc.Instance {
	bytes, err := os.ReadFile(filename)
	//
	if err == nil {
		var instance *chc.Instance
		//
		instance, err = chc.ParseInstance(string(bytes))
		if err == nil {
			return instance
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// emph wraps a string in ANSI bold when stdout is a terminal.
func emph(text string) string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Sprintf("\x1b[1m%s\x1b[0m", text)
	}
	//
	return text
}
