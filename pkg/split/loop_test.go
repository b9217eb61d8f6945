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
	"testing"

	"github.com/consensys/go-horn/pkg/chc"
	"github.com/consensys/go-horn/pkg/chc/term"
)

// scripted is a preprocessor stub replaying a fixed sequence of outcomes.
type scripted struct {
	outcomes []Outcome
	calls    uint
}

// Reduce implementation for the Preprocessor interface.
func (p *scripted) Reduce(instance *chc.Instance, isolate chc.ClauseIndex,
	excluded *chc.ClauseSet) (Outcome, error) {
	outcome := p.outcomes[p.calls]
	p.calls++
	//
	return outcome, nil
}

// fixedLearner is a learner stub returning the same result for every
// sub-instance.
type fixedLearner struct {
	result LearnerResult
	calls  uint
}

// Solve implementation for the Learner interface.
func (p *fixedLearner) Solve(sub chc.SharedInstance, background *Candidates) (LearnerResult, error) {
	p.calls++
	return p.result, nil
}

func Test_Loop_01(t *testing.T) {
	// A feasibility-only pass never invokes the learner and yields no model.
	instance, _ := negChainInstance(t, 2)
	learner := &fixedLearner{}
	//
	cfg := Config{Split: true, SplitSort: true, Infer: false}
	result, err := Run(chc.Share(instance), cfg, SliceReducer{}, learner)
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if result.Kind != NO_MODEL || learner.calls != 0 {
		t.Errorf("unexpected result of feasibility pass")
	}
}

func Test_Loop_02(t *testing.T) {
	// An unsat verdict from preprocessing aborts the loop immediately.
	instance, _ := negChainInstance(t, 2)
	preproc := &scripted{outcomes: []Outcome{{Kind: UNSAT}, {Kind: TRIVIAL}}}
	//
	result, err := Run(chc.Share(instance), DefaultConfig(), preproc, &fixedLearner{})
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if result.Kind != CONTRADICTION || result.Verdict.Reason != "preprocessing" {
		t.Errorf("unexpected result %v", result.Kind)
	}
	//
	if preproc.calls != 1 {
		t.Errorf("loop continued past the contradiction")
	}
}

func Test_Loop_03(t *testing.T) {
	// Trivial outcomes merge their partial model without invoking the learner.
	instance, _ := negChainInstance(t, 2)
	q := instance.AddPredicate(chc.NewPredicate("q", term.INT))
	//
	v0 := term.NewVar("v0", term.INT)
	frag := chc.NewAtom(term.Geq(v0, term.Int(0)))
	//
	preproc := &scripted{outcomes: []Outcome{
		{Kind: TRIVIAL, Model: chc.CandidateModel{{Pred: q, Frag: frag}}},
		{Kind: TRIVIAL},
	}}
	//
	learner := &fixedLearner{}
	result, err := Run(chc.Share(instance), DefaultConfig(), preproc, learner)
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if result.Kind != MODEL || learner.calls != 0 {
		t.Fatalf("unexpected result of trivial run")
	}
	//
	frags := result.Model.Fragments(q)
	//
	if len(frags) != 1 || !frags[0].Equal(frag) {
		t.Errorf("trivial model was not merged")
	}
}

func Test_Loop_04(t *testing.T) {
	// An unsat verdict from the learner aborts the loop immediately.
	instance, _ := negChainInstance(t, 2)
	//
	learner := &fixedLearner{result: LearnerResult{
		Unsat: true, Verdict: UnsatVerdict{"learning"}}}
	//
	result, err := Run(chc.Share(instance), DefaultConfig(), SliceReducer{}, learner)
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if result.Kind != CONTRADICTION || result.Verdict.Reason != "learning" {
		t.Errorf("unexpected result %v", result.Kind)
	}
	//
	if learner.calls != 1 {
		t.Errorf("loop continued past the contradiction")
	}
}

func Test_Loop_05(t *testing.T) {
	// Candidates found by the learner are simplified and accumulated across
	// splits.
	instance, _ := negChainInstance(t, 2)
	//
	v0 := term.NewVar("v0", term.INT)
	frag := chc.NewAtom(term.Lt(v0, term.Int(5)))
	// Predicate 0 is the sole predicate of the chain instance.
	learner := &fixedLearner{result: LearnerResult{
		Candidate: chc.Candidate{0: chc.NewConj(chc.Truth(true), frag)}}}
	//
	result, err := Run(chc.Share(instance), DefaultConfig(), SliceReducer{}, learner)
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if result.Kind != MODEL || learner.calls != 2 {
		t.Fatalf("unexpected result kind %v after %d learner calls", result.Kind, learner.calls)
	}
	// The literal-true conjunct was folded away before merging, and the
	// identical fragment from the second split deduplicated.
	frags := result.Model.Fragments(0)
	//
	if len(frags) != 1 || !frags[0].Equal(frag) {
		t.Errorf("unexpected accumulated fragments %v", frags)
	}
}
