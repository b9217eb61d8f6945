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
package term

import (
	"fmt"
	"strings"
)

// Assignment maps variable names to ground values, as produced by an oracle
// model or by evaluation.
type Assignment map[string]Value

// Term represents a side-condition term over integer and boolean variables.
// Terms are pure values: all operations return fresh terms.
type Term interface {
	// Sort returns the sort of this term.
	Sort() Sort
	// Eval evaluates this term under a given assignment.  Variables absent
	// from the assignment, and operations over unknown operands, evaluate to
	// the unknown placeholder of the appropriate sort.
	Eval(env Assignment) Value
	// Vars accumulates the free variables of this term.
	Vars(env map[string]Sort)
	// Subst replaces variables by terms, returning the rewritten term.
	Subst(binding map[string]Term) Term
	// Equal determines whether this term is structurally identical to another.
	Equal(other Term) bool
	// String returns an SMT-LIB style rendering of this term.
	String() string
}

// ============================================================================
// Variables
// ============================================================================

// Var is a sorted variable.
type Var struct {
	// Name of this variable.
	Name string
	// VarSort gives the sort of this variable.
	VarSort Sort
}

// NewVar constructs a variable of a given sort.
func NewVar(name string, sort Sort) Var {
	return Var{name, sort}
}

// Sort implementation for the Term interface.
func (v Var) Sort() Sort { return v.VarSort }

// Eval implementation for the Term interface.
func (v Var) Eval(env Assignment) Value {
	if val, ok := env[v.Name]; ok {
		return val
	}
	//
	return None(v.VarSort)
}

// Vars implementation for the Term interface.
func (v Var) Vars(env map[string]Sort) {
	env[v.Name] = v.VarSort
}

// Subst implementation for the Term interface.
func (v Var) Subst(binding map[string]Term) Term {
	if t, ok := binding[v.Name]; ok {
		return t
	}
	//
	return v
}

// Equal implementation for the Term interface.
func (v Var) Equal(other Term) bool {
	w, ok := other.(Var)
	return ok && v == w
}

func (v Var) String() string { return v.Name }

// ============================================================================
// Constants
// ============================================================================

// Const is a literal value embedded as a term.
type Const struct {
	// Value of this constant.
	Value Value
}

// NewConst lifts a value into a term.
func NewConst(val Value) Const {
	return Const{val}
}

// Int constructs an integer literal term.
func Int(val int64) Const {
	return Const{IntValue(val)}
}

// Bool constructs a boolean literal term.
func Bool(val bool) Const {
	return Const{BoolValue(val)}
}

// Sort implementation for the Term interface.
func (c Const) Sort() Sort { return c.Value.Sort() }

// Eval implementation for the Term interface.
func (c Const) Eval(env Assignment) Value { return c.Value }

// Vars implementation for the Term interface.
func (c Const) Vars(env map[string]Sort) {}

// Subst implementation for the Term interface.
func (c Const) Subst(binding map[string]Term) Term { return c }

// Equal implementation for the Term interface.
func (c Const) Equal(other Term) bool {
	d, ok := other.(Const)
	return ok && c.Value.Cmp(d.Value) == 0
}

func (c Const) String() string { return c.Value.String() }

// ============================================================================
// Binary operations
// ============================================================================

// BinOp identifies a binary operation over terms.
type BinOp uint8

const (
	// ADD is integer addition.
	ADD BinOp = iota
	// SUB is integer subtraction.
	SUB
	// MUL is integer multiplication.
	MUL
	// EQ is equality (over either sort).
	EQ
	// LT is integer strict less-than.
	LT
	// LEQ is integer less-than-or-equal.
	LEQ
	// GT is integer strict greater-than.
	GT
	// GEQ is integer greater-than-or-equal.
	GEQ
)

func (op BinOp) String() string {
	switch op {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case EQ:
		return "="
	case LT:
		return "<"
	case LEQ:
		return "<="
	case GT:
		return ">"
	case GEQ:
		return ">="
	default:
		return "?"
	}
}

// Bin is the application of a binary operation to two terms.
type Bin struct {
	// Op applied by this term.
	Op BinOp
	// Lhs is the left operand.
	Lhs Term
	// Rhs is the right operand.
	Rhs Term
}

// Add constructs an integer addition.
func Add(lhs, rhs Term) Bin { return Bin{ADD, lhs, rhs} }

// Sub constructs an integer subtraction.
func Sub(lhs, rhs Term) Bin { return Bin{SUB, lhs, rhs} }

// Mul constructs an integer multiplication.
func Mul(lhs, rhs Term) Bin { return Bin{MUL, lhs, rhs} }

// Eq constructs an equality.
func Eq(lhs, rhs Term) Bin { return Bin{EQ, lhs, rhs} }

// Lt constructs a strict less-than comparison.
func Lt(lhs, rhs Term) Bin { return Bin{LT, lhs, rhs} }

// Leq constructs a less-than-or-equal comparison.
func Leq(lhs, rhs Term) Bin { return Bin{LEQ, lhs, rhs} }

// Gt constructs a strict greater-than comparison.
func Gt(lhs, rhs Term) Bin { return Bin{GT, lhs, rhs} }

// Geq constructs a greater-than-or-equal comparison.
func Geq(lhs, rhs Term) Bin { return Bin{GEQ, lhs, rhs} }

// Sort implementation for the Term interface.
func (b Bin) Sort() Sort {
	switch b.Op {
	case ADD, SUB, MUL:
		return INT
	default:
		return BOOL
	}
}

// Eval implementation for the Term interface.
func (b Bin) Eval(env Assignment) Value {
	lhs, rhs := b.Lhs.Eval(env), b.Rhs.Eval(env)
	//
	if !lhs.Known() || !rhs.Known() {
		return None(b.Sort())
	}
	//
	if b.Op == EQ {
		return BoolValue(lhs.Cmp(rhs) == 0)
	}
	//
	l, r := int64(lhs.(IntValue)), int64(rhs.(IntValue))
	//
	switch b.Op {
	case ADD:
		return IntValue(l + r)
	case SUB:
		return IntValue(l - r)
	case MUL:
		return IntValue(l * r)
	case LT:
		return BoolValue(l < r)
	case LEQ:
		return BoolValue(l <= r)
	case GT:
		return BoolValue(l > r)
	case GEQ:
		return BoolValue(l >= r)
	default:
		panic(fmt.Sprintf("unknown binary operation %d", b.Op))
	}
}

// Vars implementation for the Term interface.
func (b Bin) Vars(env map[string]Sort) {
	b.Lhs.Vars(env)
	b.Rhs.Vars(env)
}

// Subst implementation for the Term interface.
func (b Bin) Subst(binding map[string]Term) Term {
	return Bin{b.Op, b.Lhs.Subst(binding), b.Rhs.Subst(binding)}
}

// Equal implementation for the Term interface.
func (b Bin) Equal(other Term) bool {
	c, ok := other.(Bin)
	return ok && b.Op == c.Op && b.Lhs.Equal(c.Lhs) && b.Rhs.Equal(c.Rhs)
}

func (b Bin) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op, b.Lhs, b.Rhs)
}

// ============================================================================
// Logical connectives
// ============================================================================

// Not is boolean negation.
type Not struct {
	// Arg being negated.
	Arg Term
}

// Neg constructs a boolean negation.
func Neg(arg Term) Not { return Not{arg} }

// Sort implementation for the Term interface.
func (n Not) Sort() Sort { return BOOL }

// Eval implementation for the Term interface.
func (n Not) Eval(env Assignment) Value {
	v := n.Arg.Eval(env)
	if !v.Known() {
		return None(BOOL)
	}
	//
	return BoolValue(!bool(v.(BoolValue)))
}

// Vars implementation for the Term interface.
func (n Not) Vars(env map[string]Sort) { n.Arg.Vars(env) }

// Subst implementation for the Term interface.
func (n Not) Subst(binding map[string]Term) Term {
	return Not{n.Arg.Subst(binding)}
}

// Equal implementation for the Term interface.
func (n Not) Equal(other Term) bool {
	m, ok := other.(Not)
	return ok && n.Arg.Equal(m.Arg)
}

func (n Not) String() string {
	return fmt.Sprintf("(not %s)", n.Arg)
}

// NaryOp identifies an n-ary boolean connective.
type NaryOp uint8

const (
	// AND is boolean conjunction.
	AND NaryOp = iota
	// OR is boolean disjunction.
	OR
)

func (op NaryOp) String() string {
	if op == AND {
		return "and"
	}
	//
	return "or"
}

// Nary is the application of an n-ary connective over zero or more terms.  An
// empty conjunction is true, an empty disjunction false.
type Nary struct {
	// Op applied by this term.
	Op NaryOp
	// Args being connected.
	Args []Term
}

// And constructs a boolean conjunction.
func And(args ...Term) Nary { return Nary{AND, args} }

// Or constructs a boolean disjunction.
func Or(args ...Term) Nary { return Nary{OR, args} }

// Sort implementation for the Term interface.
func (n Nary) Sort() Sort { return BOOL }

// Eval implementation for the Term interface.
func (n Nary) Eval(env Assignment) Value {
	unknown := false
	//
	for _, arg := range n.Args {
		v := arg.Eval(env)
		//
		switch {
		case !v.Known():
			unknown = true
		case bool(v.(BoolValue)) == (n.Op == OR):
			// Short-circuiting value observed.
			return v
		}
	}
	//
	if unknown {
		return None(BOOL)
	}
	//
	return BoolValue(n.Op == AND)
}

// Vars implementation for the Term interface.
func (n Nary) Vars(env map[string]Sort) {
	for _, arg := range n.Args {
		arg.Vars(env)
	}
}

// Subst implementation for the Term interface.
func (n Nary) Subst(binding map[string]Term) Term {
	args := make([]Term, len(n.Args))
	//
	for i, arg := range n.Args {
		args[i] = arg.Subst(binding)
	}
	//
	return Nary{n.Op, args}
}

// Equal implementation for the Term interface.
func (n Nary) Equal(other Term) bool {
	m, ok := other.(Nary)
	//
	if !ok || n.Op != m.Op || len(n.Args) != len(m.Args) {
		return false
	}
	//
	for i, arg := range n.Args {
		if !arg.Equal(m.Args[i]) {
			return false
		}
	}
	//
	return true
}

func (n Nary) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(n.Op.String())
	//
	for _, arg := range n.Args {
		builder.WriteString(" ")
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
