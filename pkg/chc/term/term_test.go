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
	"testing"
)

func Test_Term_01(t *testing.T) {
	x := NewVar("x", INT)
	env := Assignment{"x": IntValue(3)}
	//
	check_Eval(t, Add(x, Int(2)), env, IntValue(5))
	check_Eval(t, Sub(x, Int(5)), env, IntValue(-2))
	check_Eval(t, Mul(x, x), env, IntValue(9))
}

func Test_Term_02(t *testing.T) {
	x := NewVar("x", INT)
	env := Assignment{"x": IntValue(3)}
	//
	check_Eval(t, Eq(x, Int(3)), env, BoolValue(true))
	check_Eval(t, Lt(x, Int(3)), env, BoolValue(false))
	check_Eval(t, Leq(x, Int(3)), env, BoolValue(true))
	check_Eval(t, Gt(Int(4), x), env, BoolValue(true))
	check_Eval(t, Geq(Int(2), x), env, BoolValue(false))
}

func Test_Term_03(t *testing.T) {
	x := NewVar("x", INT)
	y := NewVar("y", INT)
	env := Assignment{"x": IntValue(0)}
	// Unbound variables evaluate to the unknown placeholder.
	if v := y.Eval(env); v.Known() {
		t.Errorf("expected unknown, got %s", v)
	}
	// Unknown operands propagate.
	if v := Add(x, y).Eval(env); v.Known() {
		t.Errorf("expected unknown, got %s", v)
	}
}

func Test_Term_04(t *testing.T) {
	x := NewVar("x", BOOL)
	env := Assignment{}
	// Connectives short-circuit around unknowns.
	check_Eval(t, And(x, Bool(false)), env, BoolValue(false))
	check_Eval(t, Or(x, Bool(true)), env, BoolValue(true))
	check_Eval(t, And(), env, BoolValue(true))
	check_Eval(t, Or(), env, BoolValue(false))
	//
	if v := And(x, Bool(true)).Eval(env); v.Known() {
		t.Errorf("expected unknown, got %s", v)
	}
}

func Test_Term_05(t *testing.T) {
	x := NewVar("x", INT)
	// Substitution rewrites variables throughout.
	subst := map[string]Term{"x": Int(7)}
	//
	check_Eval(t, Add(x, Int(1)).Subst(subst), Assignment{}, IntValue(8))
	//
	if !Neg(Eq(x, Int(1))).Subst(subst).Equal(Neg(Eq(Int(7), Int(1)))) {
		t.Errorf("unexpected substitution result")
	}
}

func Test_Value_01(t *testing.T) {
	// Values are totally ordered: by sort, unknown before known, then payload.
	ordered := []Value{
		None(INT), IntValue(-1), IntValue(0), IntValue(4),
		None(BOOL), BoolValue(false), BoolValue(true),
	}
	//
	for i, lhs := range ordered {
		for j, rhs := range ordered {
			c := lhs.Cmp(rhs)
			//
			switch {
			case i < j && c >= 0:
				t.Errorf("expected %s < %s", lhs, rhs)
			case i == j && c != 0:
				t.Errorf("expected %s == %s", lhs, rhs)
			case i > j && c <= 0:
				t.Errorf("expected %s > %s", lhs, rhs)
			}
		}
	}
}

func check_Eval(t *testing.T, tm Term, env Assignment, expected Value) {
	t.Helper()
	//
	actual := tm.Eval(env)
	//
	if !actual.Known() || actual.Cmp(expected) != 0 {
		t.Errorf("evaluating %s: expected %s, got %s", tm, expected, actual)
	}
}
