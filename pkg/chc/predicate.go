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

// Definition gives an explicit meaning to a predicate, as a formula over its
// formal parameters.  Definitions may reference other predicates, which is
// what the safe-predicate fixpoint reasons about.
type Definition struct {
	// Params are the formal parameters of this definition.
	Params []term.Var
	// Body of this definition, over the formal parameters.
	Body Formula
}

// Preds accumulates the predicates referenced by this definition.
func (d *Definition) Preds(set *PredSet) {
	d.Body.Preds(set)
}

// Instantiate substitutes actual arguments for the formal parameters of this
// definition, yielding the body specialised to a given application.
func (d *Definition) Instantiate(args []term.Term) Formula {
	binding := make(map[string]term.Term, len(d.Params))
	//
	for i, param := range d.Params {
		binding[param.Name] = args[i]
	}
	//
	return d.Body.Subst(binding)
}

// Predicate is one relation symbol of an instance.  Predicates carry both
// their current signature and the signature they had in the original problem,
// together with the mapping from current to original argument positions.  For
// an untransformed instance the two coincide and the mapping is the identity.
type Predicate struct {
	// Name of this predicate.
	Name string
	// Sig is the current (possibly reduced) signature.
	Sig []term.Sort
	// OrigSig is the signature of this predicate in the original problem.
	OrigSig []term.Sort
	// SigMap maps each current argument position to its original position.
	SigMap []uint
	// Def is the explicit definition of this predicate, if it has one.
	Def util.Option[Definition]
}

// NewPredicate constructs an undefined predicate whose original signature is
// its current signature.
func NewPredicate(name string, sig ...term.Sort) Predicate {
	sigmap := make([]uint, len(sig))
	//
	for i := range sig {
		sigmap[i] = uint(i)
	}
	//
	return Predicate{name, sig, sig, sigmap, util.None[Definition]()}
}

// NewReducedPredicate constructs an undefined predicate whose signature has
// been reduced from an original signature, keeping only the argument
// positions listed in sigmap.
func NewReducedPredicate(name string, origSig []term.Sort, sigmap []uint) Predicate {
	sig := make([]term.Sort, len(sigmap))
	//
	for i, pos := range sigmap {
		sig[i] = origSig[pos]
	}
	//
	return Predicate{name, sig, origSig, sigmap, util.None[Definition]()}
}

// IsDefined indicates whether this predicate has an explicit definition.
func (p *Predicate) IsDefined() bool {
	return p.Def.HasValue()
}

// Params returns canonical formal parameter variables for this predicate's
// current signature.
func (p *Predicate) Params() []term.Var {
	params := make([]term.Var, len(p.Sig))
	//
	for i, sort := range p.Sig {
		params[i] = term.NewVar(fmt.Sprintf("v%d", i), sort)
	}
	//
	return params
}
