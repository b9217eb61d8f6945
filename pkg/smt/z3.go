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
package smt

import (
	"fmt"

	"github.com/aclements/go-z3/z3"
	"github.com/consensys/go-horn/pkg/chc"
	"github.com/consensys/go-horn/pkg/chc/term"
)

// Z3Session is an oracle session backed by an in-process Z3 solver.
type Z3Session struct {
	ctx    *z3.Context
	solver *z3.Solver
	// vars maps declared variable names to their solver constants.
	vars map[string]z3.Value
	// frames records, per open scope, the variables it declared.
	frames [][]string
	// defs holds the background predicate definitions.
	defs map[chc.PredIndex]chc.Definition
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Session = (*Z3Session)(nil)

// NewZ3Session spawns a fresh Z3-backed session.
func NewZ3Session() *Z3Session {
	ctx := z3.NewContext(nil)
	//
	return &Z3Session{ctx, z3.NewSolver(ctx), make(map[string]z3.Value), nil, nil}
}

// Push implementation for the Session interface.
func (p *Z3Session) Push() error {
	p.solver.Push()
	p.frames = append(p.frames, nil)
	//
	return nil
}

// Pop implementation for the Session interface.
func (p *Z3Session) Pop() error {
	if len(p.frames) == 0 {
		return fmt.Errorf("popping session scope which was never pushed")
	}
	//
	p.solver.Pop()
	//
	frame := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	//
	for _, name := range frame {
		delete(p.vars, name)
	}
	//
	return nil
}

// Declare implementation for the Session interface.
func (p *Z3Session) Declare(vars []term.Var) error {
	for _, v := range vars {
		if _, ok := p.vars[v.Name]; ok {
			return fmt.Errorf("variable %s declared twice", v.Name)
		}
		//
		p.vars[v.Name] = p.ctx.Const(v.Name, p.sortOf(v.VarSort))
		//
		if len(p.frames) > 0 {
			top := len(p.frames) - 1
			p.frames[top] = append(p.frames[top], v.Name)
		}
	}
	//
	return nil
}

// Assert implementation for the Session interface.
func (p *Z3Session) Assert(t term.Term) error {
	value, err := p.lower(t)
	if err != nil {
		return err
	}
	//
	cond, ok := value.(z3.Bool)
	if !ok {
		return fmt.Errorf("cannot assert non-boolean term %s", t)
	}
	//
	p.solver.Assert(cond)
	//
	return nil
}

// AssertApp implementation for the Session interface.
func (p *Z3Session) AssertApp(app chc.PredApp) error {
	t, err := Inline(app, p.defs)
	if err != nil {
		return err
	}
	//
	return p.Assert(t)
}

// Define implementation for the Session interface.
func (p *Z3Session) Define(defs map[chc.PredIndex]chc.Definition) error {
	p.defs = defs
	return nil
}

// CheckSat implementation for the Session interface.
func (p *Z3Session) CheckSat() (bool, error) {
	return p.solver.Check()
}

// Model implementation for the Session interface.
func (p *Z3Session) Model() (term.Assignment, error) {
	model := p.solver.Model()
	assignment := make(term.Assignment, len(p.vars))
	//
	for name, v := range p.vars {
		val, err := p.valueOf(model.Eval(v, true))
		if err != nil {
			return nil, fmt.Errorf("extracting model value for %s: %w", name, err)
		}
		//
		assignment[name] = val
	}
	//
	return assignment, nil
}

// Reset implementation for the Session interface.
func (p *Z3Session) Reset() error {
	p.solver.Reset()
	p.vars = make(map[string]z3.Value)
	p.frames = nil
	p.defs = nil
	//
	return nil
}

// lower translates a term into the corresponding solver expression.
func (p *Z3Session) lower(t term.Term) (z3.Value, error) {
	switch t := t.(type) {
	case term.Var:
		value, ok := p.vars[t.Name]
		//
		if !ok {
			return nil, fmt.Errorf("undeclared variable %s", t.Name)
		}
		//
		return value, nil
	case term.Const:
		switch val := t.Value.(type) {
		case term.IntValue:
			return p.ctx.FromInt(int64(val), p.ctx.IntSort()), nil
		case term.BoolValue:
			return p.ctx.FromBool(bool(val)), nil
		default:
			return nil, fmt.Errorf("cannot lower unknown placeholder %s", t)
		}
	case term.Bin:
		return p.lowerBin(t)
	case term.Not:
		arg, err := p.lowerBool(t.Arg)
		if err != nil {
			return nil, err
		}
		//
		return arg.Not(), nil
	case term.Nary:
		return p.lowerNary(t)
	default:
		return nil, fmt.Errorf("cannot lower term %s", t)
	}
}

func (p *Z3Session) lowerBin(t term.Bin) (z3.Value, error) {
	lhs, err := p.lower(t.Lhs)
	if err != nil {
		return nil, err
	}
	//
	rhs, err := p.lower(t.Rhs)
	if err != nil {
		return nil, err
	}
	//
	if t.Op == term.EQ {
		if l, ok := lhs.(z3.Bool); ok {
			return l.Eq(rhs.(z3.Bool)), nil
		}
		//
		return lhs.(z3.Int).Eq(rhs.(z3.Int)), nil
	}
	//
	l, ok := lhs.(z3.Int)
	r, okR := rhs.(z3.Int)
	//
	if !ok || !okR {
		return nil, fmt.Errorf("integer operands expected in %s", t)
	}
	//
	switch t.Op {
	case term.ADD:
		return l.Add(r), nil
	case term.SUB:
		return l.Sub(r), nil
	case term.MUL:
		return l.Mul(r), nil
	case term.LT:
		return l.LT(r), nil
	case term.LEQ:
		return l.LE(r), nil
	case term.GT:
		return l.GT(r), nil
	case term.GEQ:
		return l.GE(r), nil
	default:
		return nil, fmt.Errorf("unknown binary operation in %s", t)
	}
}

func (p *Z3Session) lowerNary(t term.Nary) (z3.Value, error) {
	args := make([]z3.Bool, len(t.Args))
	//
	for i, arg := range t.Args {
		cond, err := p.lowerBool(arg)
		if err != nil {
			return nil, err
		}
		//
		args[i] = cond
	}
	//
	unit := p.ctx.FromBool(t.Op == term.AND)
	//
	if len(args) == 0 {
		return unit, nil
	} else if t.Op == term.AND {
		return args[0].And(args[1:]...), nil
	}
	//
	return args[0].Or(args[1:]...), nil
}

func (p *Z3Session) lowerBool(t term.Term) (z3.Bool, error) {
	value, err := p.lower(t)
	if err != nil {
		return z3.Bool{}, err
	}
	//
	cond, ok := value.(z3.Bool)
	if !ok {
		return z3.Bool{}, fmt.Errorf("boolean term expected, got %s", t)
	}
	//
	return cond, nil
}

// sortOf maps a term sort onto the corresponding solver sort.
func (p *Z3Session) sortOf(sort term.Sort) z3.Sort {
	if sort == term.BOOL {
		return p.ctx.BoolSort()
	}
	//
	return p.ctx.IntSort()
}

// valueOf maps a solver model value back onto a term value.
func (p *Z3Session) valueOf(value z3.Value) (term.Value, error) {
	switch value := value.(type) {
	case z3.Int:
		val, isLiteral, ok := value.AsInt64()
		//
		if !isLiteral || !ok {
			return nil, fmt.Errorf("non-literal model value %s", value)
		}
		//
		return term.IntValue(val), nil
	case z3.Bool:
		switch value.String() {
		case "true":
			return term.BoolValue(true), nil
		case "false":
			return term.BoolValue(false), nil
		default:
			return nil, fmt.Errorf("non-literal model value %s", value)
		}
	default:
		return nil, fmt.Errorf("unsupported model value %s", value)
	}
}
