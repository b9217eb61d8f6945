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
	"strings"

	"github.com/consensys/go-horn/pkg/chc/term"
	"github.com/consensys/go-horn/pkg/util"
)

// Clause is one constrained Horn clause: the conjunction of its LHS
// applications and LHS side-condition terms implies its RHS application, or
// false when there is no RHS.
type Clause struct {
	// Vars declared by this clause.
	Vars []term.Var
	// LhsApps are the predicate applications of the antecedent.
	LhsApps []PredApp
	// LhsTerms are the side-condition terms of the antecedent.
	LhsTerms []term.Term
	// Rhs application, or empty for a negative clause.
	Rhs util.Option[PredApp]
	// StrictNeg indicates a negative clause not derived by unrolling.
	StrictNeg bool
	// FromUnrolling indicates this clause was derived by an unrolling
	// transformation.
	FromUnrolling bool
}

// NewClause constructs a clause with a RHS application.
func NewClause(vars []term.Var, apps []PredApp, terms []term.Term, rhs PredApp) Clause {
	return Clause{vars, apps, terms, util.Some(rhs), false, false}
}

// NewNegClause constructs a strictly negative clause, i.e. one whose
// consequence is false.
func NewNegClause(vars []term.Var, apps []PredApp, terms []term.Term) Clause {
	return Clause{vars, apps, terms, util.None[PredApp](), true, false}
}

// IsNegative indicates whether this clause has no RHS application.
func (c *Clause) IsNegative() bool {
	return c.Rhs.IsEmpty()
}

// IsFact indicates whether this clause has an empty antecedent predicate set.
func (c *Clause) IsFact() bool {
	return len(c.LhsApps) == 0
}

// LhsPreds accumulates the predicates applied on the LHS of this clause.
func (c *Clause) LhsPreds(set *PredSet) {
	for _, app := range c.LhsApps {
		set.Insert(app.Pred)
	}
}

func (c *Clause) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(clause")
	//
	for _, app := range c.LhsApps {
		builder.WriteString(" ")
		builder.WriteString(app.String())
	}
	//
	for _, t := range c.LhsTerms {
		builder.WriteString(" ")
		builder.WriteString(t.String())
	}
	//
	builder.WriteString(" => ")
	//
	if c.Rhs.HasValue() {
		rhs := c.Rhs.Unwrap()
		builder.WriteString(rhs.String())
	} else {
		builder.WriteString("false")
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
