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
	"strings"

	"github.com/consensys/go-horn/pkg/chc/term"
	"github.com/consensys/go-horn/pkg/util"
)

// Formula represents a fragment of a predicate definition: a boolean
// combination of side-condition terms and predicate applications.  Formulas
// are the currency of candidate models, and of the definitions against which
// the safe-predicate fixpoint is computed.
type Formula interface {
	// Bool returns the literal truth value of this formula, if it has one.
	Bool() util.Option[bool]
	// Preds accumulates the predicates referenced by this formula.
	Preds(set *PredSet)
	// Subst replaces variables by terms throughout this formula.
	Subst(binding map[string]term.Term) Formula
	// Equal determines whether this formula is structurally identical to
	// another.
	Equal(other Formula) bool
	// String returns an SMT-LIB style rendering with anonymous predicate
	// names (e.g. "p3").
	String() string
}

// ============================================================================
// Truth
// ============================================================================

// Truth is the literal true or false formula.
type Truth bool

// Bool implementation for the Formula interface.
func (f Truth) Bool() util.Option[bool] {
	return util.Some(bool(f))
}

// Preds implementation for the Formula interface.
func (f Truth) Preds(set *PredSet) {}

// Subst implementation for the Formula interface.
func (f Truth) Subst(binding map[string]term.Term) Formula { return f }

// Equal implementation for the Formula interface.
func (f Truth) Equal(other Formula) bool {
	g, ok := other.(Truth)
	return ok && f == g
}

func (f Truth) String() string {
	if f {
		return "true"
	}
	//
	return "false"
}

// ============================================================================
// Atoms
// ============================================================================

// Atom is a single side-condition term embedded as a formula.
type Atom struct {
	// Term held by this atom.
	Term term.Term
}

// NewAtom lifts a boolean term into a formula.
func NewAtom(t term.Term) Atom {
	return Atom{t}
}

// Bool implementation for the Formula interface.
func (f Atom) Bool() util.Option[bool] {
	if c, ok := f.Term.(term.Const); ok && c.Sort() == term.BOOL {
		return util.Some(bool(c.Value.(term.BoolValue)))
	}
	//
	return util.None[bool]()
}

// Preds implementation for the Formula interface.
func (f Atom) Preds(set *PredSet) {}

// Subst implementation for the Formula interface.
func (f Atom) Subst(binding map[string]term.Term) Formula {
	return Atom{f.Term.Subst(binding)}
}

// Equal implementation for the Formula interface.
func (f Atom) Equal(other Formula) bool {
	g, ok := other.(Atom)
	return ok && f.Term.Equal(g.Term)
}

func (f Atom) String() string { return f.Term.String() }

// ============================================================================
// Predicate applications
// ============================================================================

// PredApp is the application of a predicate to argument terms.  It doubles as
// the LHS/RHS application of a clause and as a formula node within predicate
// definitions.
type PredApp struct {
	// Pred being applied.
	Pred PredIndex
	// Args the predicate is applied to.
	Args []term.Term
}

// NewPredApp constructs a predicate application.
func NewPredApp(pred PredIndex, args ...term.Term) PredApp {
	return PredApp{pred, args}
}

// Bool implementation for the Formula interface.
func (f PredApp) Bool() util.Option[bool] {
	return util.None[bool]()
}

// Preds implementation for the Formula interface.
func (f PredApp) Preds(set *PredSet) {
	set.Insert(f.Pred)
}

// Subst implementation for the Formula interface.
func (f PredApp) Subst(binding map[string]term.Term) Formula {
	args := make([]term.Term, len(f.Args))
	//
	for i, arg := range f.Args {
		args[i] = arg.Subst(binding)
	}
	//
	return PredApp{f.Pred, args}
}

// Equal implementation for the Formula interface.
func (f PredApp) Equal(other Formula) bool {
	g, ok := other.(PredApp)
	//
	if !ok || f.Pred != g.Pred || len(f.Args) != len(g.Args) {
		return false
	}
	//
	for i, arg := range f.Args {
		if !arg.Equal(g.Args[i]) {
			return false
		}
	}
	//
	return true
}

func (f PredApp) String() string {
	var builder strings.Builder
	//
	fmt.Fprintf(&builder, "(p%d", uint(f.Pred))
	//
	for _, arg := range f.Args {
		builder.WriteString(" ")
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ============================================================================
// Connectives
// ============================================================================

// Conj is the conjunction of zero or more formulas.  An empty conjunction is
// true.
type Conj struct {
	// Args being conjoined.
	Args []Formula
}

// NewConj constructs a conjunction.
func NewConj(args ...Formula) Conj {
	return Conj{args}
}

// Bool implementation for the Formula interface.
func (f Conj) Bool() util.Option[bool] {
	return naryBool(f.Args, true)
}

// Preds implementation for the Formula interface.
func (f Conj) Preds(set *PredSet) {
	for _, arg := range f.Args {
		arg.Preds(set)
	}
}

// Subst implementation for the Formula interface.
func (f Conj) Subst(binding map[string]term.Term) Formula {
	return Conj{substAll(f.Args, binding)}
}

// Equal implementation for the Formula interface.
func (f Conj) Equal(other Formula) bool {
	g, ok := other.(Conj)
	return ok && formulasEqual(f.Args, g.Args)
}

func (f Conj) String() string { return naryString("and", f.Args) }

// Disj is the disjunction of zero or more formulas.  An empty disjunction is
// false.
type Disj struct {
	// Args being disjoined.
	Args []Formula
}

// NewDisj constructs a disjunction.
func NewDisj(args ...Formula) Disj {
	return Disj{args}
}

// Bool implementation for the Formula interface.
func (f Disj) Bool() util.Option[bool] {
	return naryBool(f.Args, false)
}

// Preds implementation for the Formula interface.
func (f Disj) Preds(set *PredSet) {
	for _, arg := range f.Args {
		arg.Preds(set)
	}
}

// Subst implementation for the Formula interface.
func (f Disj) Subst(binding map[string]term.Term) Formula {
	return Disj{substAll(f.Args, binding)}
}

// Equal implementation for the Formula interface.
func (f Disj) Equal(other Formula) bool {
	g, ok := other.(Disj)
	return ok && formulasEqual(f.Args, g.Args)
}

func (f Disj) String() string { return naryString("or", f.Args) }

// ============================================================================
// Helpers
// ============================================================================

// naryBool determines the literal truth value of a connective, where unit is
// true for conjunction and false for disjunction.
func naryBool(args []Formula, unit bool) util.Option[bool] {
	all := true
	//
	for _, arg := range args {
		b := arg.Bool()
		//
		switch {
		case b.IsEmpty():
			all = false
		case b.Unwrap() != unit:
			// Short-circuiting value observed.
			return b
		}
	}
	//
	if all {
		return util.Some(unit)
	}
	//
	return util.None[bool]()
}

func substAll(args []Formula, binding map[string]term.Term) []Formula {
	nargs := make([]Formula, len(args))
	//
	for i, arg := range args {
		nargs[i] = arg.Subst(binding)
	}
	//
	return nargs
}

func formulasEqual(lhs, rhs []Formula) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	for i, arg := range lhs {
		if !arg.Equal(rhs[i]) {
			return false
		}
	}
	//
	return true
}

func naryString(op string, args []Formula) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(op)
	//
	for _, arg := range args {
		builder.WriteString(" ")
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
