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
	"testing"

	"github.com/consensys/go-horn/pkg/chc/term"
)

func Test_Sample_01(t *testing.T) {
	// Ordered by predicate, then arity, then argument values; unknown values
	// sort before known ones of the same sort.
	ordered := []Sample{
		NewSample(0, term.IntValue(1)),
		NewSample(0, term.IntValue(2)),
		NewSample(1),
		NewSample(1, term.None(term.INT)),
		NewSample(1, term.IntValue(0)),
		NewSample(1, term.IntValue(0), term.IntValue(0)),
		NewSample(2, term.BoolValue(false)),
		NewSample(2, term.BoolValue(true)),
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

func Test_SampleSet_01(t *testing.T) {
	var set SampleSet
	//
	s1 := NewSample(1, term.IntValue(5))
	s2 := NewSample(0, term.IntValue(3))
	//
	if !set.Insert(s1) || !set.Insert(s2) {
		t.Errorf("fresh insertion reported as duplicate")
	}
	//
	if set.Insert(s1) {
		t.Errorf("duplicate insertion reported as fresh")
	}
	//
	if set.Len() != 2 || !set.Contains(s1) || !set.Contains(s2) {
		t.Errorf("unexpected set contents")
	}
	// Iteration order is ascending, regardless of insertion order.
	items := set.Samples()
	//
	if items[0].Cmp(s2) != 0 || items[1].Cmp(s1) != 0 {
		t.Errorf("samples not in ascending order")
	}
}

func Test_SampleSet_02(t *testing.T) {
	lhs := NewSampleSet(NewSample(0, term.IntValue(1)), NewSample(1))
	rhs := NewSampleSet(NewSample(1), NewSample(2))
	//
	lhs.InsertAll(&rhs)
	//
	expected := NewSampleSet(
		NewSample(0, term.IntValue(1)), NewSample(1), NewSample(2))
	//
	if !lhs.Equal(&expected) {
		t.Errorf("unexpected union contents")
	}
}

func Test_SampleSet_03(t *testing.T) {
	original := NewSampleSet(NewSample(0, term.IntValue(1)))
	clone := original.Clone()
	//
	clone.Insert(NewSample(0, term.IntValue(2)))
	//
	if original.Len() != 1 {
		t.Errorf("mutating a clone affected the original")
	}
}
