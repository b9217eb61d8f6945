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
package chc

import (
	"fmt"

	"github.com/consensys/go-horn/pkg/chc/term"
	"github.com/consensys/go-horn/pkg/util"
)

// Instance is one constrained Horn clause problem: an indexed table of
// predicates and an indexed table of clauses.  Instances are shared by
// reference across the sub-instances derived from them, and must not be
// mutated once shared except via an exclusive handle (see SharedInstance).
type Instance struct {
	preds   []Predicate
	clauses []Clause
	// lhsOf[p] holds the clauses in which p occurs on the LHS.
	lhsOf []ClauseSet
	// rhsOf[p] holds the clauses of which p is the RHS.
	rhsOf []ClauseSet
	// negClauses lists negative clauses in insertion order.
	negClauses []ClauseIndex
}

// NewInstance constructs an empty instance.
func NewInstance() *Instance {
	return &Instance{}
}

// AddPredicate appends a predicate to the predicate table, returning its
// index.
func (p *Instance) AddPredicate(pred Predicate) PredIndex {
	index := PredIndex(len(p.preds))
	p.preds = append(p.preds, pred)
	p.lhsOf = append(p.lhsOf, ClauseSet{})
	p.rhsOf = append(p.rhsOf, ClauseSet{})
	//
	return index
}

// AddClause appends a clause to the clause table, returning its index and
// maintaining the derived occurrence indices.
func (p *Instance) AddClause(clause Clause) ClauseIndex {
	index := ClauseIndex(len(p.clauses))
	p.clauses = append(p.clauses, clause)
	//
	for _, app := range clause.LhsApps {
		p.lhsOf[app.Pred].Insert(index)
	}
	//
	if clause.Rhs.HasValue() {
		p.rhsOf[clause.Rhs.Unwrap().Pred].Insert(index)
	} else {
		p.negClauses = append(p.negClauses, index)
	}
	//
	return index
}

// NumPredicates returns the size of the predicate table.
func (p *Instance) NumPredicates() uint {
	return uint(len(p.preds))
}

// NumClauses returns the size of the clause table.
func (p *Instance) NumClauses() uint {
	return uint(len(p.clauses))
}

// Predicate returns the predicate at a given index.
func (p *Instance) Predicate(index PredIndex) *Predicate {
	return &p.preds[index]
}

// Clause returns the clause at a given index.
func (p *Instance) Clause(index ClauseIndex) *Clause {
	return &p.clauses[index]
}

// NegClauses returns the negative clauses of this instance, in insertion
// order.
func (p *Instance) NegClauses() []ClauseIndex {
	return p.negClauses
}

// LhsClausesOf returns the clauses in which a given predicate occurs on the
// LHS.
func (p *Instance) LhsClausesOf(pred PredIndex) *ClauseSet {
	return &p.lhsOf[pred]
}

// RhsClausesOf returns the clauses of which a given predicate is the RHS.
func (p *Instance) RhsClausesOf(pred PredIndex) *ClauseSet {
	return &p.rhsOf[pred]
}

// IsKnown indicates whether a given predicate is already fully defined in
// this instance.
func (p *Instance) IsKnown(pred PredIndex) bool {
	return p.preds[pred].IsDefined()
}

// Define attaches a definition to a given predicate.
func (p *Instance) Define(pred PredIndex, def Definition) {
	if len(def.Params) != len(p.preds[pred].Sig) {
		panic(fmt.Sprintf("definition arity mismatch for %s", p.preds[pred].Name))
	}
	//
	p.preds[pred].Def = util.Some(def)
}

// OriginalDefinitions returns the definitions of all defined predicates of
// this instance, rewritten so that their formal parameters range over each
// predicate's original signature.  Argument positions dropped by signature
// reduction become unconstrained parameters.
func (p *Instance) OriginalDefinitions() map[PredIndex]Definition {
	defs := make(map[PredIndex]Definition)
	//
	for i := range p.preds {
		pred := &p.preds[i]
		//
		if !pred.IsDefined() {
			continue
		}
		//
		defs[PredIndex(i)] = rewriteDefinition(pred, pred.Def.Unwrap())
	}
	//
	return defs
}

// rewriteDefinition maps a definition over a predicate's current signature
// into one over its original signature, using the stored position map.
func rewriteDefinition(pred *Predicate, def Definition) Definition {
	origParams := originalParams(pred)
	binding := make(map[string]term.Term, len(def.Params))
	//
	for i, param := range def.Params {
		binding[param.Name] = origParams[pred.SigMap[i]]
	}
	//
	return Definition{origParams, def.Body.Subst(binding)}
}

// originalParams returns canonical formal parameters over a predicate's
// original signature.
func originalParams(pred *Predicate) []term.Var {
	params := make([]term.Var, len(pred.OrigSig))
	//
	for i, sort := range pred.OrigSig {
		params[i] = term.NewVar(fmt.Sprintf("u%d", i), sort)
	}
	//
	return params
}
