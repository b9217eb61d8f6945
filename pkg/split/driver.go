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
	"cmp"
	"fmt"
	"sort"

	"github.com/consensys/go-horn/pkg/chc"
	"github.com/consensys/go-horn/pkg/util"
)

// Splitter lazily produces one reduced sub-instance per negative clause of an
// instance, highest-priority clause first.  When splitting is disabled, or
// fewer than two negative clauses qualify, it degrades to a one-shot driver
// returning the unmodified instance once.
type Splitter struct {
	// instance being split.
	instance chc.SharedInstance
	// state is either active (pending clauses remain) or one-shot.
	state driverState
	// total number of clauses considered.
	total uint
	// prev records negative clauses already isolated.
	prev chc.ClauseSet
}

// driverState is the tagged two-state variant of the driver.
type driverState interface {
	isDriverState()
}

// active holds the pending clauses, sorted ascending by priority and
// consumed from the end.
type active struct {
	pending []chc.ClauseIndex
}

func (p *active) isDriverState() {}

// oneShot fires once, returning the unmodified instance, then reports done.
type oneShot struct {
	fired bool
}

func (p *oneShot) isDriverState() {}

// NewSplitter constructs a driver over the negative clauses of a given
// instance.
func NewSplitter(instance chc.SharedInstance, cfg Config) *Splitter {
	var (
		state driverState
		total uint
	)
	//
	neg := instance.Get().NegClauses()
	//
	if cfg.Split && len(neg) > 1 {
		pending := orderClauses(instance.Get(), neg, cfg.SplitSort)
		total = uint(len(pending))
		// A degenerate ordering falls back to the one-shot driver.
		if len(pending) <= 1 {
			state = &oneShot{}
		} else {
			state = &active{pending}
		}
	} else {
		state = &oneShot{}
		total = 1
	}
	//
	return &Splitter{instance, state, total, chc.ClauseSet{}}
}

// Peek returns the next clause to split on, the number of clauses already
// handled and the total, without consuming anything.  It returns empty when
// the driver is inactive or exhausted.
func (p *Splitter) Peek() (chc.ClauseIndex, uint, uint, bool) {
	if state, ok := p.state.(*active); ok && len(state.pending) > 0 {
		clause := state.pending[len(state.pending)-1]
		handled := p.total - uint(len(state.pending))
		//
		return clause, handled, p.total, true
	}
	//
	return 0, 0, 0, false
}

// Advance produces the next sub-instance to work on, or empty when the driver
// is exhausted.  In the active state this isolates the highest-priority
// remaining clause via the given preprocessor; in the one-shot state it
// returns the unmodified instance exactly once.
func (p *Splitter) Advance(preproc Preprocessor) (util.Option[Outcome], error) {
	switch state := p.state.(type) {
	case *active:
		if len(state.pending) == 0 {
			return util.None[Outcome](), nil
		}
		//
		clause := state.pending[len(state.pending)-1]
		state.pending = state.pending[:len(state.pending)-1]
		//
		outcome, err := preproc.Reduce(p.instance.Get(), clause, &p.prev)
		if err != nil {
			return util.None[Outcome](), fmt.Errorf("isolating clause #%d: %w", clause, err)
		}
		//
		p.prev.Insert(clause)
		//
		return util.Some(outcome), nil
	case *oneShot:
		if state.fired {
			return util.None[Outcome](), nil
		}
		//
		state.fired = true
		//
		return util.Some(Outcome{REDUCED, p.instance.Retain(), nil}), nil
	default:
		panic("unreachable")
	}
}

// orderClauses sorts negative clauses ascending by priority, so that the
// highest-priority clause sits at the end (drivers pop from the end).
// Priority is, in order: strictly negative clauses first, then clauses
// derived from unrolling, then the connectivity score.
func orderClauses(instance *chc.Instance, neg []chc.ClauseIndex, splitSort bool) []chc.ClauseIndex {
	type scored struct {
		clause chc.ClauseIndex
		score  int
	}
	//
	clauses := make([]scored, len(neg))
	//
	for i, clause := range neg {
		var score int
		//
		if splitSort {
			score = connectivityScore(instance, clause)
		} else {
			score = -int(clause)
		}
		//
		clauses[i] = scored{clause, score}
	}
	//
	sort.SliceStable(clauses, func(i, j int) bool {
		lhs, rhs := clauses[i], clauses[j]
		lhsClause := instance.Clause(lhs.clause)
		rhsClause := instance.Clause(rhs.clause)
		//
		if lhsClause.StrictNeg != rhsClause.StrictNeg {
			// Strictly negative clauses sort last, hence pop first.
			return rhsClause.StrictNeg
		} else if lhsClause.FromUnrolling != rhsClause.FromUnrolling {
			return rhsClause.FromUnrolling
		}
		//
		return cmp.Compare(lhs.score, rhs.score) < 0
	})
	//
	ordered := make([]chc.ClauseIndex, len(clauses))
	//
	for i, entry := range clauses {
		ordered[i] = entry.clause
	}
	//
	return ordered
}

// connectivityScore estimates how much information isolating a clause yields:
// for each predicate on its LHS, the number of LHS occurrences of that
// predicate in clauses with a defined consequence.  Predicates backed by a
// bare fact force the score to zero, since isolating them yields little new
// information.
func connectivityScore(instance *chc.Instance, clause chc.ClauseIndex) int {
	var (
		preds chc.PredSet
		score int
	)
	//
	instance.Clause(clause).LhsPreds(&preds)
	//
	preds.Iter(func(pred chc.PredIndex) {
		instance.LhsClausesOf(pred).Iter(func(other chc.ClauseIndex) {
			if instance.Clause(other).Rhs.HasValue() {
				score++
			}
		})
		//
		factBacked := false
		//
		instance.RhsClausesOf(pred).Iter(func(other chc.ClauseIndex) {
			if instance.Clause(other).IsFact() {
				factBacked = true
			}
		})
		//
		if factBacked {
			score = 0
		}
	})
	//
	return score
}
