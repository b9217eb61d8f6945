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
	"cmp"
	"fmt"
	"strings"

	"github.com/consensys/go-horn/pkg/chc/term"
)

// Sample is a ground reference to one relation instance: a predicate together
// with an assignment of values to its argument positions.  Samples are
// totally ordered (by predicate, then argument values) so that sets and maps
// of samples have a reproducible iteration order.
type Sample struct {
	// Pred this sample instantiates.
	Pred PredIndex
	// Args holds one value per argument position of Pred.
	Args []term.Value
}

// NewSample constructs a sample.
func NewSample(pred PredIndex, args ...term.Value) Sample {
	return Sample{pred, args}
}

// Cmp returns < 0 if this sample is less than other, 0 if they are equal and
// > 0 otherwise.  The order is total and deterministic.
func (s Sample) Cmp(other Sample) int {
	if c := cmp.Compare(s.Pred, other.Pred); c != 0 {
		return c
	}
	//
	if c := cmp.Compare(len(s.Args), len(other.Args)); c != 0 {
		return c
	}
	//
	for i, arg := range s.Args {
		if c := arg.Cmp(other.Args[i]); c != 0 {
			return c
		}
	}
	//
	return 0
}

func (s Sample) String() string {
	var builder strings.Builder
	//
	fmt.Fprintf(&builder, "(p%d", uint(s.Pred))
	//
	for _, arg := range s.Args {
		builder.WriteString(" ")
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// Text renders this sample using the predicate names of a given instance.
func (s Sample) Text(instance *Instance) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(instance.Predicate(s.Pred).Name)
	//
	for _, arg := range s.Args {
		builder.WriteString(" ")
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
