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
	"github.com/consensys/go-horn/pkg/chc"
	"github.com/consensys/go-horn/pkg/chc/term"
	"github.com/consensys/go-horn/pkg/smt"
	log "github.com/sirupsen/logrus"
)

// Entry is a set of samples forming a minimal justification for some
// conclusion, such as a contradiction.
type Entry struct {
	// Samples justifying the conclusion.
	Samples chc.SampleSet
}

// NewEntry constructs an entry over a given sample set.
func NewEntry(samples chc.SampleSet) Entry {
	return Entry{samples}
}

// Rewrite maps the samples of this entry from the working instance's
// (possibly reduced) predicate signatures back onto the original signatures,
// substituting the unknown placeholder for argument positions absent from the
// reduced signature.
func (p *Entry) Rewrite(working *chc.Instance) []chc.Sample {
	samples := make([]chc.Sample, 0, p.Samples.Len())
	//
	for _, sample := range p.Samples.Samples() {
		pred := working.Predicate(sample.Pred)
		args := make([]term.Value, len(pred.OrigSig))
		//
		for i, sort := range pred.OrigSig {
			args[i] = term.None(sort)
		}
		//
		for i, val := range sample.Args {
			args[pred.SigMap[i]] = val
		}
		//
		samples = append(samples, chc.NewSample(sample.Pred, args...))
	}
	//
	return samples
}

// Reconstruct re-derives this entry in terms of the original instance: each
// sample is rewritten to its original signature and then witnessed against
// the original clauses via an oracle session drawn from the given pool.
func (p *Entry) Reconstruct(working, original *chc.Instance, pool *smt.Pool) (Entry, error) {
	samples := p.Rewrite(working)
	//
	log.Debugf("reconstructing %d sample(s)", len(samples))
	//
	session, err := pool.Acquire()
	if err != nil {
		return Entry{}, err
	}
	//
	result, err := NewReconstructor(original, working, samples, session).Run()
	//
	if err != nil {
		return Entry{}, err
	}
	//
	if err := pool.Release(session); err != nil {
		return Entry{}, err
	}
	//
	return NewEntry(result), nil
}
