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
package split

import (
	"sort"
	"strings"

	"github.com/consensys/go-horn/pkg/chc"
)

// Candidates accumulates, across all splits, the best current definition of
// each predicate as a deduplicated conjunction of formula fragments.  An
// entry holding a single literal-false fragment means the predicate is
// forced to reject everything seen so far.
type Candidates struct {
	entries map[chc.PredIndex][]chc.Formula
}

// NewCandidates constructs an empty accumulator.
func NewCandidates() *Candidates {
	return &Candidates{make(map[chc.PredIndex][]chc.Formula)}
}

// Merge a partial model into this accumulator.  Predicates already fully
// defined in the top-level instance are skipped.  For the rest, a fragment
// evaluating to literal true is dropped, one evaluating to literal false
// collapses the entry, and anything else is appended unless an identical
// fragment (or a literal-false fragment) is already present.  Merging is
// purely additive and never fails.
func (p *Candidates) Merge(top *chc.Instance, model chc.CandidateModel) {
	for _, pair := range model {
		if top.IsKnown(pair.Pred) {
			continue
		}
		//
		conj := p.entries[pair.Pred]
		//
		if b := pair.Frag.Bool(); b.HasValue() && !b.Unwrap() {
			conj = conj[:0]
		} else if b.HasValue() {
			// Trivially satisfied, nothing to record.
			p.entries[pair.Pred] = conj
			continue
		}
		//
		if !containsOrFalse(conj, pair.Frag) {
			conj = append(conj, pair.Frag)
		}
		//
		p.entries[pair.Pred] = conj
	}
}

// containsOrFalse determines whether a conjunction already holds an identical
// fragment, or a literal-false fragment.
func containsOrFalse(conj []chc.Formula, frag chc.Formula) bool {
	for _, existing := range conj {
		if existing.Equal(frag) {
			return true
		} else if b := existing.Bool(); b.HasValue() && !b.Unwrap() {
			return true
		}
	}
	//
	return false
}

// Preds returns the predicates with a (possibly empty) accumulated entry, in
// ascending index order.
func (p *Candidates) Preds() []chc.PredIndex {
	preds := make([]chc.PredIndex, 0, len(p.entries))
	//
	for pred := range p.entries {
		preds = append(preds, pred)
	}
	//
	sort.Slice(preds, func(i, j int) bool { return preds[i] < preds[j] })
	//
	return preds
}

// Fragments returns the accumulated fragments for a given predicate.
func (p *Candidates) Fragments(pred chc.PredIndex) []chc.Formula {
	return p.entries[pred]
}

// Text renders this accumulator using the predicate names of a given
// instance.
func (p *Candidates) Text(instance *chc.Instance) string {
	var builder strings.Builder
	//
	for _, pred := range p.Preds() {
		builder.WriteString(instance.Predicate(pred).Name)
		builder.WriteString(" :=")
		//
		for _, frag := range p.entries[pred] {
			builder.WriteString(" ")
			builder.WriteString(frag.String())
		}
		//
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
