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
package unsat

import (
	"sort"
	"strings"

	"github.com/consensys/go-horn/pkg/chc"
)

// EntryPoints tracks, across a whole solving session, which samples are
// directly known positive ("real") and which real samples any derived sample
// transitively rests on.  All iteration is in sample order, so dependency
// resolution is reproducible across runs.
type EntryPoints struct {
	// real holds the samples directly known positive.
	real chc.SampleSet
	// deps maps derived samples to the real samples they depend on, keyed in
	// ascending sample order.
	deps []depEntry
}

type depEntry struct {
	sample chc.Sample
	entry  chc.SampleSet
}

// NewEntryPoints constructs an empty registry.
func NewEntryPoints() *EntryPoints {
	return &EntryPoints{}
}

// Register a sample as directly known positive.  Registration is idempotent.
func (p *EntryPoints) Register(sample chc.Sample) {
	p.real.Insert(sample)
}

// RegisterDep records that a derived sample depends on another sample: dep's
// own justification set ({dep} when it is real, its registered dependency set
// otherwise) is unioned into the dependency set stored for sample.  A dep
// which is neither real nor registered is an UnknownSampleError.  Registering
// further dependencies for the same sample accumulates.
func (p *EntryPoints) RegisterDep(sample chc.Sample, dep chc.Sample) error {
	var set chc.SampleSet
	//
	if index, ok := p.find(sample); ok {
		set = p.deps[index].entry
	}
	//
	if p.real.Contains(dep) {
		set.Insert(dep)
	} else if index, ok := p.find(dep); ok {
		set.InsertAll(&p.deps[index].entry)
	} else {
		return &UnknownSampleError{dep}
	}
	//
	p.store(sample, set)
	//
	return nil
}

// EntryPointsOf retrieves the real positive samples a given sample rests on:
// the sample itself when real, otherwise its registered dependency set.  An
// unknown sample is an UnknownSampleError.
func (p *EntryPoints) EntryPointsOf(sample chc.Sample) (chc.SampleSet, error) {
	if p.real.Contains(sample) {
		return chc.NewSampleSet(sample), nil
	}
	//
	if index, ok := p.find(sample); ok {
		return p.deps[index].entry.Clone(), nil
	}
	//
	return chc.SampleSet{}, &UnknownSampleError{sample}
}

// Text renders this registry using the predicate names of a given instance.
func (p *EntryPoints) Text(instance *chc.Instance) string {
	var builder strings.Builder
	//
	builder.WriteString("real samples:")
	//
	for _, sample := range p.real.Samples() {
		builder.WriteString("\n  ")
		builder.WriteString(sample.Text(instance))
	}
	//
	builder.WriteString("\ndependencies:")
	//
	for _, entry := range p.deps {
		builder.WriteString("\n  ")
		builder.WriteString(entry.sample.Text(instance))
		//
		for _, dep := range entry.entry.Samples() {
			builder.WriteString("\n  -> ")
			builder.WriteString(dep.Text(instance))
		}
	}
	//
	return builder.String()
}

// find returns the index of a sample in the dependency mapping, if present.
func (p *EntryPoints) find(sample chc.Sample) (int, bool) {
	index := sort.Search(len(p.deps), func(i int) bool {
		return sample.Cmp(p.deps[i].sample) <= 0
	})
	//
	if index < len(p.deps) && p.deps[index].sample.Cmp(sample) == 0 {
		return index, true
	}
	//
	return index, false
}

// store sets the dependency set for a sample, keeping the mapping sorted.
func (p *EntryPoints) store(sample chc.Sample, set chc.SampleSet) {
	index, ok := p.find(sample)
	//
	if ok {
		p.deps[index].entry = set
		return
	}
	//
	p.deps = append(p.deps, depEntry{})
	copy(p.deps[index+1:], p.deps[index:])
	p.deps[index] = depEntry{sample, set}
}
