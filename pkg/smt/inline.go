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

	"github.com/consensys/go-horn/pkg/chc"
	"github.com/consensys/go-horn/pkg/chc/term"
)

// Inline lowers a formula into a plain term by resolving every predicate
// application against a set of definitions: each application is replaced by
// the definition body with actual arguments substituted for the formal
// parameters.  Definitions must be stratified (the safe-predicate fixpoint
// guarantees this), so the expansion terminates.  An application of an
// undefined predicate is an error.
func Inline(formula chc.Formula, defs map[chc.PredIndex]chc.Definition) (term.Term, error) {
	switch f := formula.(type) {
	case chc.Truth:
		return term.Bool(bool(f)), nil
	case chc.Atom:
		return f.Term, nil
	case chc.PredApp:
		def, ok := defs[f.Pred]
		//
		if !ok {
			return nil, fmt.Errorf("cannot inline application of undefined predicate p%d", uint(f.Pred))
		}
		//
		return Inline(def.Instantiate(f.Args), defs)
	case chc.Conj:
		args, err := inlineAll(f.Args, defs)
		if err != nil {
			return nil, err
		}
		//
		return term.And(args...), nil
	case chc.Disj:
		args, err := inlineAll(f.Args, defs)
		if err != nil {
			return nil, err
		}
		//
		return term.Or(args...), nil
	default:
		return nil, fmt.Errorf("cannot inline formula %s", formula)
	}
}

func inlineAll(formulas []chc.Formula, defs map[chc.PredIndex]chc.Definition) ([]term.Term, error) {
	terms := make([]term.Term, len(formulas))
	//
	for i, f := range formulas {
		t, err := Inline(f, defs)
		if err != nil {
			return nil, err
		}
		//
		terms[i] = t
	}
	//
	return terms, nil
}
