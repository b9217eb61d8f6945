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
package split

// Config determines how the splitting loop behaves.  It is threaded
// explicitly through the loop; there is no ambient configuration state.
type Config struct {
	// Split determines whether instance splitting is enabled at all.  When
	// disabled the loop runs once over the whole instance.
	Split bool
	// SplitSort enables the connectivity heuristic when ordering negative
	// clauses.  When disabled, clauses are visited in insertion order.
	SplitSort bool
	// Infer determines whether the learner is invoked on sub-instances.  When
	// disabled the loop performs a feasibility-only pass.
	Infer bool
}

// DefaultConfig returns the configuration used by the solver front-end:
// splitting and the connectivity heuristic enabled, inference enabled.
func DefaultConfig() Config {
	return Config{Split: true, SplitSort: true, Infer: true}
}
