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

func Test_Candidates_01(t *testing.T) {
	instance := chc.NewInstance()
	p := instance.AddPredicate(chc.NewPredicate("p", term.INT))
	//
	v0 := term.NewVar("v0", term.INT)
	f1 := chc.NewAtom(term.Geq(v0, term.Int(0)))
	f2 := chc.NewAtom(term.Lt(v0, term.Int(10)))
	//
	accumulator := NewCandidates()
	accumulator.Merge(instance, chc.CandidateModel{{Pred: p, Frag: f1}})
	accumulator.Merge(instance, chc.CandidateModel{{Pred: p, Frag: f2}})
	// Identical fragments are merged at most once.
	accumulator.Merge(instance, chc.CandidateModel{{Pred: p, Frag: f1}})
	//
	check_Fragments(t, accumulator, p, f1, f2)
}

func Test_Candidates_02(t *testing.T) {
	instance := chc.NewInstance()
	p := instance.AddPredicate(chc.NewPredicate("p", term.INT))
	//
	accumulator := NewCandidates()
	// A trivially true fragment records nothing, but does open the entry.
	accumulator.Merge(instance, chc.CandidateModel{{Pred: p, Frag: chc.Truth(true)}})
	//
	check_Fragments(t, accumulator, p)
	//
	if len(accumulator.Preds()) != 1 {
		t.Errorf("expected an (empty) entry for the predicate")
	}
}

func Test_Candidates_03(t *testing.T) {
	instance := chc.NewInstance()
	p := instance.AddPredicate(chc.NewPredicate("p", term.INT))
	//
	v0 := term.NewVar("v0", term.INT)
	f1 := chc.NewAtom(term.Geq(v0, term.Int(0)))
	//
	accumulator := NewCandidates()
	accumulator.Merge(instance, chc.CandidateModel{{Pred: p, Frag: f1}})
	// A literal-false fragment collapses the whole entry.
	accumulator.Merge(instance, chc.CandidateModel{{Pred: p, Frag: chc.Truth(false)}})
	//
	check_Fragments(t, accumulator, p, chc.Truth(false))
	// Further fragments cannot revive a collapsed entry.
	accumulator.Merge(instance, chc.CandidateModel{{Pred: p, Frag: f1}})
	//
	check_Fragments(t, accumulator, p, chc.Truth(false))
}

func Test_Candidates_04(t *testing.T) {
	instance := chc.NewInstance()
	p := instance.AddPredicate(chc.NewPredicate("p", term.INT))
	//
	v0 := term.NewVar("v0", term.INT)
	instance.Define(p, chc.Definition{
		Params: []term.Var{v0}, Body: chc.NewAtom(term.Eq(v0, term.Int(0)))})
	// Predicates already defined in the top-level instance are skipped.
	accumulator := NewCandidates()
	accumulator.Merge(instance, chc.CandidateModel{
		{Pred: p, Frag: chc.NewAtom(term.Geq(v0, term.Int(0)))}})
	//
	if len(accumulator.Preds()) != 0 {
		t.Errorf("defined predicate was merged")
	}
}

func Test_Candidates_05(t *testing.T) {
	instance := chc.NewInstance()
	p := instance.AddPredicate(chc.NewPredicate("p", term.INT))
	q := instance.AddPredicate(chc.NewPredicate("q", term.INT))
	//
	accumulator := NewCandidates()
	accumulator.Merge(instance, chc.CandidateModel{
		{Pred: q, Frag: chc.Truth(true)}, {Pred: p, Frag: chc.Truth(true)}})
	//
	preds := accumulator.Preds()
	//
	if len(preds) != 2 || preds[0] != p || preds[1] != q {
		t.Errorf("predicates not in ascending order: %v", preds)
	}
}

func check_Fragments(t *testing.T, accumulator *Candidates, pred chc.PredIndex, expected ...chc.Formula) {
	t.Helper()
	//
	actual := accumulator.Fragments(pred)
	//
	if len(actual) != len(expected) {
		t.Errorf("expected %d fragments, got %d", len(expected), len(actual))
		return
	}
	//
	for i, frag := range expected {
		if !actual[i].Equal(frag) {
			t.Errorf("fragment %d: expected %s, got %s", i, frag, actual[i])
		}
	}
}
