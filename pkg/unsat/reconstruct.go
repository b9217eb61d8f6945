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
	"fmt"

	"github.com/consensys/go-horn/pkg/chc"
	"github.com/consensys/go-horn/pkg/chc/term"
	"github.com/consensys/go-horn/pkg/smt"
	log "github.com/sirupsen/logrus"
)

// Reconstructor re-derives target samples, expressed against a (possibly
// transformed) working instance, as ground facts over the original instance.
// It is created fresh per reconstruction request and discarded afterwards.
//
// Reconstruction is deliberately single-pass: the LHS applications of a
// witnessing clause are recorded, never re-queued.  Only positive predicates
// contribute output samples; the remaining safe predicates are resolved
// purely through the background axioms written up front.
type Reconstructor struct {
	// safe holds predicates whose definition references only other safe
	// predicates.
	safe chc.PredSet
	// pos holds safe predicates whose definition references no predicate at
	// all, i.e. unconditionally true ground facts.
	pos chc.PredSet
	// original instance, against which clauses are witnessed.
	original *chc.Instance
	// working instance, supplying the predicate definitions.
	working *chc.Instance
	// todo holds the samples still to reconstruct.
	todo []chc.Sample
	// samples accumulates the resulting ground facts.
	samples chc.SampleSet
	// session is the scoped oracle session for this request.
	session smt.Session
}

// NewReconstructor constructs a reconstructor for a given list of target
// samples.  The safe-predicate fixpoint over the working instance is computed
// here: a predicate joins the safe set once every predicate referenced by its
// definition is already safe, iterating until a full pass adds nothing.
func NewReconstructor(original, working *chc.Instance, todo []chc.Sample, session smt.Session) *Reconstructor {
	var safe, pos chc.PredSet
	//
	for fp := false; !fp; {
		fp = true
		//
		for i := uint(0); i < working.NumPredicates(); i++ {
			index := chc.PredIndex(i)
			pred := working.Predicate(index)
			//
			if safe.Contains(index) || !pred.IsDefined() {
				continue
			}
			//
			var refs chc.PredSet
			//
			def := pred.Def.Unwrap()
			def.Preds(&refs)
			//
			if refs.Count() == 0 {
				pos.Insert(index)
			}
			//
			if refs.IsSubsetOf(&safe) {
				fp = false
				//
				safe.Insert(index)
			}
		}
	}
	//
	safe.Iter(func(pred chc.PredIndex) {
		log.Debugf("safe predicate %s", working.Predicate(pred).Name)
	})
	//
	return &Reconstructor{safe, pos, original, working, todo, chc.SampleSet{}, session}
}

// Run reconstructs every pending sample, then resets the oracle session and
// returns the accumulated ground facts.
func (p *Reconstructor) Run() (chc.SampleSet, error) {
	// Write the safe definitions once, as background axioms, before any
	// sample is processed.
	if p.safe.Count() > 0 {
		if err := p.session.Define(p.working.OriginalDefinitions()); err != nil {
			return chc.SampleSet{}, err
		}
	}
	//
	for len(p.todo) > 0 {
		sample := p.todo[len(p.todo)-1]
		p.todo = p.todo[:len(p.todo)-1]
		//
		if err := p.reconstruct(sample); err != nil {
			return chc.SampleSet{}, err
		}
	}
	//
	if err := p.session.Reset(); err != nil {
		return chc.SampleSet{}, err
	}
	//
	return p.samples, nil
}

// clausesFor partitions the original clauses of which a given predicate is
// the RHS into fact clauses (empty LHS predicate set) and usable clauses (all
// LHS predicates safe).  Clauses with any unsafe LHS predicate cannot be
// resolved without unknowns and are excluded.
func (p *Reconstructor) clausesFor(pred chc.PredIndex) (facts, usable []chc.ClauseIndex) {
	p.original.RhsClausesOf(pred).Iter(func(index chc.ClauseIndex) {
		clause := p.original.Clause(index)
		//
		var refs chc.PredSet
		//
		clause.LhsPreds(&refs)
		//
		if clause.IsFact() {
			facts = append(facts, index)
		} else if refs.IsSubsetOf(&p.safe) {
			usable = append(usable, index)
		}
	})
	//
	return facts, usable
}

// reconstruct witnesses a single sample, trying fact clauses first and then
// usable clauses, returning on the first success.
func (p *Reconstructor) reconstruct(sample chc.Sample) error {
	log.Debugf("working on %s", sample.Text(p.working))
	//
	facts, usable := p.clausesFor(sample.Pred)
	//
	log.Debugf("%d fact clause(s), %d usable clause(s)", len(facts), len(usable))
	//
	for _, clause := range append(facts, usable...) {
		okay, err := p.witness(sample, clause)
		//
		if err != nil {
			return err
		} else if okay {
			log.Debugf("reconstructed using clause #%d", clause)
			return nil
		}
	}
	//
	return &UnreconstructableSampleError{sample}
}

// witness attempts to justify a sample through one clause: the clause's side
// conditions and LHS applications are asserted together with equality between
// its RHS arguments and the sample's values, and the oracle is asked for a
// model.  On success the LHS application arguments are evaluated under that
// model, and applications of positive predicates contribute ground facts to
// the result set.
func (p *Reconstructor) witness(sample chc.Sample, index chc.ClauseIndex) (bool, error) {
	clause := p.original.Clause(index)
	//
	if clause.Rhs.IsEmpty() {
		return false, &IllegalClauseError{index}
	}
	//
	if err := p.session.Push(); err != nil {
		return false, err
	}
	//
	okay, err := p.witnessInScope(sample, clause)
	//
	if popErr := p.session.Pop(); err == nil && popErr != nil {
		err = popErr
	}
	//
	if err != nil {
		return false, fmt.Errorf("witnessing %s against clause #%d: %w", sample, index, err)
	}
	//
	return okay, nil
}

func (p *Reconstructor) witnessInScope(sample chc.Sample, clause *chc.Clause) (bool, error) {
	if err := p.session.Declare(clause.Vars); err != nil {
		return false, err
	}
	//
	for _, t := range clause.LhsTerms {
		if err := p.session.Assert(t); err != nil {
			return false, err
		}
	}
	//
	for _, app := range clause.LhsApps {
		if err := p.session.AssertApp(app); err != nil {
			return false, err
		}
	}
	// Pin the RHS arguments to the sample's known values.
	rhs := clause.Rhs.Unwrap()
	//
	for i, arg := range rhs.Args {
		if val := sample.Args[i]; val.Known() {
			if err := p.session.Assert(term.Eq(arg, term.NewConst(val))); err != nil {
				return false, err
			}
		}
	}
	//
	sat, err := p.session.CheckSat()
	//
	if err != nil || !sat {
		return false, err
	}
	//
	model, err := p.session.Model()
	if err != nil {
		return false, err
	}
	// Ground every LHS application under the model, recording those of
	// positive predicates.
	for _, app := range clause.LhsApps {
		values := make([]term.Value, len(app.Args))
		//
		for i, arg := range app.Args {
			values[i] = arg.Eval(model)
		}
		//
		if p.pos.Contains(app.Pred) {
			p.samples.Insert(chc.NewSample(app.Pred, values...))
		}
	}
	//
	return true, nil
}
