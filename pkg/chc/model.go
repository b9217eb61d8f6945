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
	"sort"
)

// Candidate is a raw candidate assignment produced by a learner: one formula
// per predicate, over that predicate's formal parameters.
type Candidate map[PredIndex]Formula

// PredFragment pairs a predicate with one fragment of its candidate
// definition.
type PredFragment struct {
	// Pred being (partially) defined.
	Pred PredIndex
	// Frag is one conjunct of the candidate definition.
	Frag Formula
}

// CandidateModel is an ordered list of predicate fragments, as merged into
// the candidate accumulator.  Order is ascending by predicate, hence
// deterministic.
type CandidateModel []PredFragment

// ModelOf translates a raw learner candidate into instance-level predicate
// fragments, ordered by predicate index.
func (p *Instance) ModelOf(candidate Candidate) CandidateModel {
	model := make(CandidateModel, 0, len(candidate))
	//
	for pred, frag := range candidate {
		model = append(model, PredFragment{pred, frag})
	}
	//
	sort.Slice(model, func(i, j int) bool {
		return model[i].Pred < model[j].Pred
	})
	//
	return model
}

// SimplifyDefs simplifies the fragments of a candidate model in place, using
// constant folding.  Callers must hold this instance exclusively; the loop
// skips this step otherwise.
func (p *Instance) SimplifyDefs(model CandidateModel) {
	for i := range model {
		model[i].Frag = SimplifyFormula(model[i].Frag)
	}
}

// SimplifyFormula performs boolean constant folding on a formula: literal
// units are dropped from connectives and short-circuiting literals collapse
// them.
func SimplifyFormula(f Formula) Formula {
	switch f := f.(type) {
	case Conj:
		return simplifyNary(f.Args, true)
	case Disj:
		return simplifyNary(f.Args, false)
	default:
		if b := f.Bool(); b.HasValue() {
			return Truth(b.Unwrap())
		}
		//
		return f
	}
}

// simplifyNary folds a connective whose unit is the given literal (true for
// conjunction, false for disjunction).
func simplifyNary(args []Formula, unit bool) Formula {
	nargs := make([]Formula, 0, len(args))
	//
	for _, arg := range args {
		arg = SimplifyFormula(arg)
		//
		if b := arg.Bool(); b.HasValue() {
			if b.Unwrap() != unit {
				// Short-circuiting literal.
				return Truth(!unit)
			}
			// Unit literal, dropped.
			continue
		}
		//
		nargs = append(nargs, arg)
	}
	//
	switch len(nargs) {
	case 0:
		return Truth(unit)
	case 1:
		return nargs[0]
	default:
		if unit {
			return Conj{nargs}
		}
		//
		return Disj{nargs}
	}
}
