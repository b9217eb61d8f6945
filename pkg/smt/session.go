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
	"github.com/consensys/go-horn/pkg/chc"
	"github.com/consensys/go-horn/pkg/chc/term"
)

// Session is a scoped, stateful oracle session.  A session accumulates
// declarations and assertions; Push/Pop scope them.  No concurrent use of a
// single session is permitted.  Predicate definitions written via Define act
// as background axioms: subsequent predicate-application assertions are
// resolved against them, so defined predicates behave as defined relations
// rather than uninterpreted ones.
type Session interface {
	// Push opens a new assertion scope.
	Push() error
	// Pop discards the innermost assertion scope, including the variable
	// declarations it made.
	Pop() error
	// Declare introduces variables into the current scope.
	Declare(vars []term.Var) error
	// Assert a boolean side-condition term.
	Assert(t term.Term) error
	// AssertApp asserts a predicate application, resolved against the
	// definitions previously written via Define.
	AssertApp(app chc.PredApp) error
	// Define writes a set of predicate definitions once, as reusable
	// background axioms for the lifetime of the session (until Reset).
	Define(defs map[chc.PredIndex]chc.Definition) error
	// CheckSat determines whether the current assertions are satisfiable.
	CheckSat() (bool, error)
	// Model extracts a satisfying assignment after a successful CheckSat.
	Model() (term.Assignment, error)
	// Reset returns this session to its initial state.
	Reset() error
}

// Pool hands out oracle sessions, resetting each one before it is reused.
// Each reconstruction request holds one session for its full duration.
type Pool struct {
	spawn func() (Session, error)
	free  []Session
}

// NewPool constructs a pool spawning sessions with a given factory.
func NewPool(spawn func() (Session, error)) *Pool {
	return &Pool{spawn, nil}
}

// Acquire returns a session for exclusive use, spawning one if none is free.
func (p *Pool) Acquire() (Session, error) {
	if n := len(p.free); n > 0 {
		session := p.free[n-1]
		p.free = p.free[:n-1]
		//
		return session, nil
	}
	//
	return p.spawn()
}

// Release returns a session to this pool, resetting it first.
func (p *Pool) Release(session Session) error {
	if err := session.Reset(); err != nil {
		return err
	}
	//
	p.free = append(p.free, session)
	//
	return nil
}
