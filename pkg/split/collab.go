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

import (
	"github.com/consensys/go-horn/pkg/chc"
)

// OutcomeKind discriminates the possible results of reducing an instance
// around one isolated negative clause.
type OutcomeKind uint8

const (
	// REDUCED indicates preprocessing produced a reduced sub-instance which
	// must still be solved.
	REDUCED OutcomeKind = iota
	// TRIVIAL indicates preprocessing solved the sub-instance outright,
	// yielding a partial model without needing a learner.
	TRIVIAL
	// UNSAT indicates preprocessing determined the instance unsatisfiable.
	UNSAT
)

// Outcome is the result of one preprocessing step.
type Outcome struct {
	// Kind of this outcome.
	Kind OutcomeKind
	// Instance holds the reduced sub-instance (REDUCED only).  Ownership of
	// the handle passes to the caller, which must release it.
	Instance chc.SharedInstance
	// Model holds the trivial partial model (TRIVIAL only).
	Model chc.CandidateModel
}

// Preprocessor reduces an instance around one isolated negative clause,
// excluding clauses already handled by previous splits.  Implementations must
// guarantee that the reduced instance's negative clauses are driven only by
// the isolated clause.
type Preprocessor interface {
	Reduce(instance *chc.Instance, isolate chc.ClauseIndex, excluded *chc.ClauseSet) (Outcome, error)
}

// UnsatVerdict is the legitimate terminal outcome of an unsatisfiable split:
// a typed verdict, not an error.
type UnsatVerdict struct {
	// Reason describes which stage established unsatisfiability.
	Reason string
}

// LearnerResult is the outcome of invoking the learner on a sub-instance:
// either a satisfying candidate assignment, or an unsatisfiability verdict.
type LearnerResult struct {
	// Unsat indicates the sub-instance has no model.
	Unsat bool
	// Candidate assignment found (when not unsat).
	Candidate chc.Candidate
	// Verdict established (when unsat).
	Verdict UnsatVerdict
}

// Learner produces candidate definitions satisfying a sub-instance, treating
// the accumulated background model as additional known-true facts.
type Learner interface {
	Solve(sub chc.SharedInstance, background *Candidates) (LearnerResult, error)
}
