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
	"github.com/bits-and-blooms/bitset"
)

// PredIndex is an opaque index into the predicate table of some instance.
// Indices are stable only for the lifetime of that instance.
type PredIndex uint

// ClauseIndex is an opaque index into the clause table of some instance.
// Indices are stable only for the lifetime of that instance.
type ClauseIndex uint

// PredSet is a set of predicate indices.  Iteration is always in ascending
// index order, hence deterministic.
type PredSet struct {
	bits bitset.BitSet
}

// Insert a given predicate into this set.
func (p *PredSet) Insert(pred PredIndex) {
	p.bits.Set(uint(pred))
}

// Contains determines whether a given predicate is in this set.
func (p *PredSet) Contains(pred PredIndex) bool {
	return p.bits.Test(uint(pred))
}

// Count returns the number of predicates in this set.
func (p *PredSet) Count() uint {
	return p.bits.Count()
}

// IsSubsetOf determines whether every predicate in this set is also in a
// given other set.
func (p *PredSet) IsSubsetOf(other *PredSet) bool {
	return other.bits.IsSuperSet(&p.bits)
}

// Iter calls a given function once for each predicate in this set, in
// ascending index order.
func (p *PredSet) Iter(fn func(PredIndex)) {
	for i, ok := p.bits.NextSet(0); ok; i, ok = p.bits.NextSet(i + 1) {
		fn(PredIndex(i))
	}
}

// ClauseSet is a set of clause indices.  Iteration is always in ascending
// index order, hence deterministic.
type ClauseSet struct {
	bits bitset.BitSet
}

// Insert a given clause into this set.
func (p *ClauseSet) Insert(clause ClauseIndex) {
	p.bits.Set(uint(clause))
}

// Remove a given clause from this set.
func (p *ClauseSet) Remove(clause ClauseIndex) {
	p.bits.Clear(uint(clause))
}

// Contains determines whether a given clause is in this set.
func (p *ClauseSet) Contains(clause ClauseIndex) bool {
	return p.bits.Test(uint(clause))
}

// Count returns the number of clauses in this set.
func (p *ClauseSet) Count() uint {
	return p.bits.Count()
}

// Iter calls a given function once for each clause in this set, in ascending
// index order.
func (p *ClauseSet) Iter(fn func(ClauseIndex)) {
	for i, ok := p.bits.NextSet(0); ok; i, ok = p.bits.NextSet(i + 1) {
		fn(ClauseIndex(i))
	}
}
