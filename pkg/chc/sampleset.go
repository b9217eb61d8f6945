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
	"slices"
	"sort"
)

// SampleSet is a sorted set of samples (no duplicates).  Keeping the elements
// sorted gives a deterministic iteration order, which the dependency fixpoint
// over samples relies upon for reproducibility.
type SampleSet struct {
	items []Sample
}

// NewSampleSet constructs a sample set from zero or more samples.
func NewSampleSet(samples ...Sample) SampleSet {
	var set SampleSet
	//
	for _, sample := range samples {
		set.Insert(sample)
	}
	//
	return set
}

// Len returns the number of samples in this set.
func (p *SampleSet) Len() uint {
	return uint(len(p.items))
}

// IsEmpty indicates whether this set contains no samples.
func (p *SampleSet) IsEmpty() bool {
	return len(p.items) == 0
}

// Insert a sample into this set, returning true if it was not already
// present.
func (p *SampleSet) Insert(sample Sample) bool {
	index := p.search(sample)
	//
	if index < len(p.items) && p.items[index].Cmp(sample) == 0 {
		return false
	}
	//
	p.items = slices.Insert(p.items, index, sample)
	//
	return true
}

// InsertAll inserts every sample of a given other set into this set.
func (p *SampleSet) InsertAll(other *SampleSet) {
	for _, sample := range other.items {
		p.Insert(sample)
	}
}

// Contains determines whether a given sample is in this set.
func (p *SampleSet) Contains(sample Sample) bool {
	index := p.search(sample)
	return index < len(p.items) && p.items[index].Cmp(sample) == 0
}

// Samples returns the samples of this set in ascending order.  The returned
// slice must not be mutated.
func (p *SampleSet) Samples() []Sample {
	return p.items
}

// Clone returns a copy of this set sharing no state with the original.
func (p *SampleSet) Clone() SampleSet {
	return SampleSet{slices.Clone(p.items)}
}

// Equal determines whether this set holds exactly the samples of another.
func (p *SampleSet) Equal(other *SampleSet) bool {
	if len(p.items) != len(other.items) {
		return false
	}
	//
	for i, sample := range p.items {
		if sample.Cmp(other.items[i]) != 0 {
			return false
		}
	}
	//
	return true
}

// search returns the index at which a given sample occurs, or should occur,
// in the underlying sorted array.
func (p *SampleSet) search(sample Sample) int {
	return sort.Search(len(p.items), func(i int) bool {
		return sample.Cmp(p.items[i]) <= 0
	})
}
