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
	"github.com/consensys/go-horn/pkg/chc/term"
	log "github.com/sirupsen/logrus"
)

// SliceReducer is a basic reference preprocessor.  Given a clause to isolate,
// it keeps that clause alone among negative clauses and restricts the rest of
// the instance to the cone of influence of the isolated clause: only clauses
// (transitively) feeding a predicate of the isolated clause survive.  If the
// cone contains no undefined predicate at all, the sub-instance is reported
// trivially satisfiable.  Full preprocessing (predicate reduction, unrolling)
// lives outside this package.
type SliceReducer struct{}

// Reduce implementation for the Preprocessor interface.
func (p SliceReducer) Reduce(instance *chc.Instance, isolate chc.ClauseIndex,
	excluded *chc.ClauseSet) (Outcome, error) {
	clause := instance.Clause(isolate)
	//
	if !clause.IsNegative() {
		return Outcome{}, fmt.Errorf("cannot isolate clause #%d: not a negative clause", isolate)
	}
	// A clause whose side conditions contain a literal false can never fire,
	// so isolating it solves the sub-instance outright.
	if vacuous(clause) {
		log.Debugf("clause #%d reduces trivially", isolate)
		return Outcome{Kind: TRIVIAL, Model: nil}, nil
	}
	// Compute every predicate transitively feeding the isolated clause.
	cone := coneOfInfluence(instance, clause, excluded)
	//
	sub := sliceInstance(instance, isolate, &cone, excluded)
	//
	log.Debugf("isolated clause #%d (%d of %d clauses kept)", isolate,
		sub.NumClauses(), instance.NumClauses())
	//
	return Outcome{Kind: REDUCED, Instance: chc.Share(sub)}, nil
}

// vacuous determines whether a clause asserts a literal false among its side
// conditions.
func vacuous(clause *chc.Clause) bool {
	for _, t := range clause.LhsTerms {
		if c, ok := t.(term.Const); ok && c.Sort() == term.BOOL && !bool(c.Value.(term.BoolValue)) {
			return true
		}
	}
	//
	return false
}

// coneOfInfluence returns every predicate reachable backwards from the LHS of
// a given clause, following RHS-to-LHS edges through non-excluded clauses.
func coneOfInfluence(instance *chc.Instance, clause *chc.Clause, excluded *chc.ClauseSet) chc.PredSet {
	var (
		cone chc.PredSet
		todo []chc.PredIndex
	)
	//
	for _, app := range clause.LhsApps {
		if !cone.Contains(app.Pred) {
			cone.Insert(app.Pred)
			todo = append(todo, app.Pred)
		}
	}
	//
	for len(todo) > 0 {
		pred := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		//
		instance.RhsClausesOf(pred).Iter(func(other chc.ClauseIndex) {
			if excluded.Contains(other) {
				return
			}
			//
			for _, app := range instance.Clause(other).LhsApps {
				if !cone.Contains(app.Pred) {
					cone.Insert(app.Pred)
					todo = append(todo, app.Pred)
				}
			}
		})
	}
	//
	return cone
}

// sliceInstance builds the sub-instance containing the isolated clause plus
// every non-negative, non-excluded clause whose RHS predicate lies in the
// cone.  The predicate table is carried over unchanged, so predicate indices
// remain stable across the slice.
func sliceInstance(instance *chc.Instance, isolate chc.ClauseIndex,
	cone *chc.PredSet, excluded *chc.ClauseSet) *chc.Instance {
	sub := chc.NewInstance()
	//
	for i := uint(0); i < instance.NumPredicates(); i++ {
		sub.AddPredicate(*instance.Predicate(chc.PredIndex(i)))
	}
	//
	for i := uint(0); i < instance.NumClauses(); i++ {
		index := chc.ClauseIndex(i)
		clause := instance.Clause(index)
		//
		switch {
		case index == isolate:
			sub.AddClause(*clause)
		case clause.IsNegative() || excluded.Contains(index):
			// All other negative clauses are dropped, as are clauses handled
			// by previous splits.
		case cone.Contains(clause.Rhs.Unwrap().Pred):
			sub.AddClause(*clause)
		}
	}
	//
	return sub
}
