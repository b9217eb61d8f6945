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
package unsat

import (
	"errors"
	"fmt"
	"testing"

	"github.com/consensys/go-horn/pkg/chc"
	"github.com/consensys/go-horn/pkg/chc/term"
	"github.com/consensys/go-horn/pkg/smt"
)

// fakeSession is an oracle stub sufficient for witnessing the clauses used in
// these tests: satisfiability is decided by propagating equalities between
// variables and known values until a fixpoint, then checking every assertion
// evaluates to true.
type fakeSession struct {
	defs   map[chc.PredIndex]chc.Definition
	frames [][]term.Term
	model  term.Assignment
}

func newFakeSession() *fakeSession {
	return &fakeSession{frames: [][]term.Term{nil}}
}

// Push implementation for the Session interface.
func (p *fakeSession) Push() error {
	p.frames = append(p.frames, nil)
	return nil
}

// Pop implementation for the Session interface.
func (p *fakeSession) Pop() error {
	if len(p.frames) == 1 {
		return fmt.Errorf("popping base scope")
	}
	//
	p.frames = p.frames[:len(p.frames)-1]
	//
	return nil
}

// Declare implementation for the Session interface.
func (p *fakeSession) Declare(vars []term.Var) error {
	return nil
}

// Assert implementation for the Session interface.
func (p *fakeSession) Assert(t term.Term) error {
	p.frames[len(p.frames)-1] = append(p.frames[len(p.frames)-1], t)
	return nil
}

// AssertApp implementation for the Session interface.
func (p *fakeSession) AssertApp(app chc.PredApp) error {
	t, err := smt.Inline(app, p.defs)
	if err != nil {
		return err
	}
	//
	return p.Assert(t)
}

// Define implementation for the Session interface.
func (p *fakeSession) Define(defs map[chc.PredIndex]chc.Definition) error {
	p.defs = defs
	return nil
}

// CheckSat implementation for the Session interface.
func (p *fakeSession) CheckSat() (bool, error) {
	assignment := term.Assignment{}
	// Propagate variable/value equalities to a fixpoint.
	for changed := true; changed; {
		changed = false
		//
		for _, t := range p.assertions() {
			if bin, ok := t.(term.Bin); ok && bin.Op == term.EQ {
				changed = propagate(bin.Lhs, bin.Rhs, assignment) || changed
				changed = propagate(bin.Rhs, bin.Lhs, assignment) || changed
			}
		}
	}
	//
	for _, t := range p.assertions() {
		val := t.Eval(assignment)
		//
		if !val.Known() || !bool(val.(term.BoolValue)) {
			return false, nil
		}
	}
	//
	p.model = assignment
	//
	return true, nil
}

// propagate binds to onto v when v is an unbound variable and to evaluates to
// a known value, reporting whether anything changed.
func propagate(v, to term.Term, assignment term.Assignment) bool {
	variable, ok := v.(term.Var)
	//
	if !ok || assignment[variable.Name] != nil {
		return false
	}
	//
	if val := to.Eval(assignment); val.Known() {
		assignment[variable.Name] = val
		return true
	}
	//
	return false
}

// Model implementation for the Session interface.
func (p *fakeSession) Model() (term.Assignment, error) {
	return p.model, nil
}

// Reset implementation for the Session interface.
func (p *fakeSession) Reset() error {
	p.defs = nil
	p.frames = [][]term.Term{nil}
	p.model = nil
	//
	return nil
}

func (p *fakeSession) assertions() []term.Term {
	var all []term.Term
	//
	for _, frame := range p.frames {
		all = append(all, frame...)
	}
	//
	return all
}

func Test_Fixpoint_01(t *testing.T) {
	instance := chc.NewInstance()
	a := instance.AddPredicate(chc.NewPredicate("a", term.INT))
	b := instance.AddPredicate(chc.NewPredicate("b", term.INT))
	c := instance.AddPredicate(chc.NewPredicate("c", term.INT))
	d := instance.AddPredicate(chc.NewPredicate("d", term.INT))
	//
	v0 := term.NewVar("v0", term.INT)
	// a references no predicate at all.
	instance.Define(a, chc.Definition{Params: []term.Var{v0}, Body: chc.NewAtom(term.Eq(v0, term.Int(0)))})
	// b references only a.
	instance.Define(b, chc.Definition{Params: []term.Var{v0}, Body: chc.NewPredApp(a, v0)})
	// c references the undefined d.
	instance.Define(c, chc.Definition{Params: []term.Var{v0}, Body: chc.NewPredApp(d, v0)})
	//
	r := NewReconstructor(instance, instance, nil, newFakeSession())
	// Safe predicates are exactly those resting on defined predicates alone.
	if !r.safe.Contains(a) || !r.safe.Contains(b) || r.safe.Count() != 2 {
		t.Errorf("unexpected safe set")
	}
	// Positive predicates reference no predicate at all.
	if !r.pos.Contains(a) || r.pos.Count() != 1 {
		t.Errorf("unexpected positive set")
	}
}

func Test_Reconstruct_01(t *testing.T) {
	// A sample backed by a fact clause witnesses successfully while
	// contributing no further samples.
	instance := chc.NewInstance()
	r := instance.AddPredicate(chc.NewPredicate("r", term.INT))
	x := term.NewVar("x", term.INT)
	// r(x) :- x = 5
	instance.AddClause(chc.NewClause(
		[]term.Var{x}, nil, []term.Term{term.Eq(x, term.Int(5))},
		chc.NewPredApp(r, x)))
	//
	todo := []chc.Sample{chc.NewSample(r, term.IntValue(5))}
	//
	samples, err := NewReconstructor(instance, instance, todo, newFakeSession()).Run()
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if !samples.IsEmpty() {
		t.Errorf("fact witnesses must not contribute samples")
	}
}

func Test_Reconstruct_02(t *testing.T) {
	// A sample no clause can witness is unreconstructable.
	instance := chc.NewInstance()
	r := instance.AddPredicate(chc.NewPredicate("r", term.INT))
	x := term.NewVar("x", term.INT)
	//
	instance.AddClause(chc.NewClause(
		[]term.Var{x}, nil, []term.Term{term.Eq(x, term.Int(5))},
		chc.NewPredApp(r, x)))
	//
	todo := []chc.Sample{chc.NewSample(r, term.IntValue(6))}
	//
	_, err := NewReconstructor(instance, instance, todo, newFakeSession()).Run()
	//
	var target *UnreconstructableSampleError
	//
	if !errors.As(err, &target) {
		t.Fatalf("expected an unreconstructable sample, got %v", err)
	}
	//
	if target.Sample.Cmp(todo[0]) != 0 {
		t.Errorf("unexpected sample in error")
	}
}

func Test_Reconstruct_03(t *testing.T) {
	// Witnessing through a usable clause grounds its LHS applications under
	// the oracle model, recording those of positive predicates.
	instance := chc.NewInstance()
	p := instance.AddPredicate(chc.NewPredicate("p", term.INT))
	tt := instance.AddPredicate(chc.NewPredicate("t", term.INT))
	//
	x := term.NewVar("x", term.INT)
	y := term.NewVar("y", term.INT)
	// t(y) :- p(x), y = x
	instance.AddClause(chc.NewClause(
		[]term.Var{x, y},
		[]chc.PredApp{chc.NewPredApp(p, x)},
		[]term.Term{term.Eq(y, x)},
		chc.NewPredApp(tt, y)))
	// p is defined, hence safe and positive; t is not.
	v0 := term.NewVar("v0", term.INT)
	instance.Define(p, chc.Definition{Params: []term.Var{v0}, Body: chc.NewAtom(term.Eq(v0, term.Int(5)))})
	//
	todo := []chc.Sample{chc.NewSample(tt, term.IntValue(5))}
	//
	samples, err := NewReconstructor(instance, instance, todo, newFakeSession()).Run()
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	expected := chc.NewSampleSet(chc.NewSample(p, term.IntValue(5)))
	//
	if !samples.Equal(&expected) {
		t.Errorf("expected {%s}, got %v", expected.Samples()[0], samples.Samples())
	}
}

func Test_Reconstruct_04(t *testing.T) {
	// Unknown argument positions are left unpinned: only the known value
	// constrains the witness.
	instance := chc.NewInstance()
	p := instance.AddPredicate(chc.NewPredicate("p", term.INT))
	tt := instance.AddPredicate(chc.NewPredicate("t", term.INT, term.INT))
	//
	x := term.NewVar("x", term.INT)
	y := term.NewVar("y", term.INT)
	// t(x, y) :- p(y), x = 0
	instance.AddClause(chc.NewClause(
		[]term.Var{x, y},
		[]chc.PredApp{chc.NewPredApp(p, y)},
		[]term.Term{term.Eq(x, term.Int(0))},
		chc.NewPredApp(tt, x, y)))
	//
	v0 := term.NewVar("v0", term.INT)
	instance.Define(p, chc.Definition{Params: []term.Var{v0}, Body: chc.NewAtom(term.Eq(v0, term.Int(7)))})
	//
	todo := []chc.Sample{chc.NewSample(tt, term.None(term.INT), term.IntValue(7))}
	//
	samples, err := NewReconstructor(instance, instance, todo, newFakeSession()).Run()
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	expected := chc.NewSampleSet(chc.NewSample(p, term.IntValue(7)))
	//
	if !samples.Equal(&expected) {
		t.Errorf("unexpected reconstruction result %v", samples.Samples())
	}
}
