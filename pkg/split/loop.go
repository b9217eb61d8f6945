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
	"fmt"

	"github.com/consensys/go-horn/pkg/chc"
	log "github.com/sirupsen/logrus"
)

// ResultKind discriminates the possible results of the splitting loop.
type ResultKind uint8

const (
	// MODEL indicates the loop completed and accumulated a candidate model.
	MODEL ResultKind = iota
	// CONTRADICTION indicates some split was found unsatisfiable.
	CONTRADICTION
	// NO_MODEL indicates the loop completed a feasibility-only pass without
	// finding a contradiction; no model was requested.
	NO_MODEL
)

// Result is the overall outcome of the splitting loop.
type Result struct {
	// Kind of this result.
	Kind ResultKind
	// Model accumulated across all splits (MODEL only).
	Model *Candidates
	// Verdict established (CONTRADICTION only).
	Verdict UnsatVerdict
}

// Run drives the splitting loop over an already pre-processed instance: each
// negative clause is isolated in turn, the resulting sub-instance solved, and
// partial results merged into one conjunctive candidate model.  The loop
// aborts on the first unsatisfiable split.  When inference is disabled the
// learner is never invoked and the result is the NO_MODEL sentinel.
func Run(instance chc.SharedInstance, cfg Config, preproc Preprocessor, learner Learner) (Result, error) {
	accumulator := NewCandidates()
	splitter := NewSplitter(instance, cfg)
	//
	for {
		if clause, handled, total, ok := splitter.Peek(); ok {
			log.Infof("splitting on negative clause #%d (%d of %d)", clause, handled+1, total)
		}
		//
		next, err := splitter.Advance(preproc)
		//
		if err != nil {
			return Result{}, err
		} else if next.IsEmpty() {
			break
		}
		//
		outcome := next.Unwrap()
		//
		switch outcome.Kind {
		case UNSAT:
			log.Info("unsat by preprocessing")
			return Result{Kind: CONTRADICTION, Verdict: UnsatVerdict{"preprocessing"}}, nil
		case TRIVIAL:
			log.Info("sat by preprocessing")
			accumulator.Merge(instance.Get(), outcome.Model)
		case REDUCED:
			done, err := runSplit(instance, cfg, outcome.Instance, accumulator, learner)
			//
			if err != nil {
				return Result{}, err
			} else if done != nil {
				return Result{Kind: CONTRADICTION, Verdict: *done}, nil
			}
		}
	}
	//
	if cfg.Infer {
		return Result{Kind: MODEL, Model: accumulator}, nil
	}
	//
	return Result{Kind: NO_MODEL}, nil
}

// runSplit solves one reduced sub-instance, merging any candidate found into
// the accumulator.  A non-nil verdict means the sub-instance was
// unsatisfiable and the loop must abort.
func runSplit(top chc.SharedInstance, cfg Config, sub chc.SharedInstance,
	accumulator *Candidates, learner Learner) (*UnsatVerdict, error) {
	defer sub.Release()
	//
	if !cfg.Infer {
		log.Info("skipping learning")
		return nil, nil
	}
	//
	log.Info("starting learning")
	//
	result, err := learner.Solve(sub, accumulator)
	//
	if err != nil {
		return nil, fmt.Errorf("solving sub-instance: %w", err)
	} else if result.Unsat {
		return &result.Verdict, nil
	}
	//
	log.Info("sat")
	//
	model := sub.Get().ModelOf(result.Candidate)
	// Simplification requires exclusive ownership; skipping it is
	// correctness-preserving.
	if exclusive, ok := sub.TryExclusive(); ok {
		exclusive.SimplifyDefs(model)
	}
	//
	accumulator.Merge(top.Get(), model)
	//
	return nil, nil
}
