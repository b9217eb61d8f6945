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
	"testing"

	"github.com/consensys/go-horn/pkg/chc"
	"github.com/consensys/go-horn/pkg/chc/term"
)

func Test_Inline_01(t *testing.T) {
	check_Inline(t, chc.Truth(true), nil, term.Bool(true))
	check_Inline(t, chc.Truth(false), nil, term.Bool(false))
	//
	x := term.NewVar("x", term.INT)
	check_Inline(t, chc.NewAtom(term.Eq(x, term.Int(1))), nil, term.Eq(x, term.Int(1)))
}

func Test_Inline_02(t *testing.T) {
	// Applications are replaced by their definition body, with actuals
	// substituted for formals.
	v0 := term.NewVar("v0", term.INT)
	defs := map[chc.PredIndex]chc.Definition{
		0: {Params: []term.Var{v0}, Body: chc.NewAtom(term.Geq(v0, term.Int(0)))},
	}
	//
	x := term.NewVar("x", term.INT)
	check_Inline(t, chc.NewPredApp(0, term.Add(x, term.Int(1))), defs,
		term.Geq(term.Add(x, term.Int(1)), term.Int(0)))
}

func Test_Inline_03(t *testing.T) {
	// Stratified definitions expand transitively: p1 is defined in terms of p0.
	v0 := term.NewVar("v0", term.INT)
	defs := map[chc.PredIndex]chc.Definition{
		0: {Params: []term.Var{v0}, Body: chc.NewAtom(term.Geq(v0, term.Int(0)))},
		1: {Params: []term.Var{v0}, Body: chc.NewConj(
			chc.NewPredApp(0, v0),
			chc.NewAtom(term.Lt(v0, term.Int(10))))},
	}
	//
	check_Inline(t, chc.NewPredApp(1, term.Int(3)), defs,
		term.And(
			term.Geq(term.Int(3), term.Int(0)),
			term.Lt(term.Int(3), term.Int(10))))
}

func Test_Inline_04(t *testing.T) {
	// Applications of undefined predicates cannot be inlined.
	if _, err := Inline(chc.NewPredApp(7), nil); err == nil {
		t.Errorf("expected an error inlining an undefined predicate")
	}
}

func check_Inline(t *testing.T, f chc.Formula, defs map[chc.PredIndex]chc.Definition, expected term.Term) {
	t.Helper()
	//
	actual, err := Inline(f, defs)
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if !actual.Equal(expected) {
		t.Errorf("inlining %s: expected %s, got %s", f, expected, actual)
	}
}
