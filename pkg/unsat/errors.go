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
	"fmt"

	"github.com/consensys/go-horn/pkg/chc"
)

// UnknownSampleError indicates a dependency or lookup referencing a sample
// which is neither real nor previously registered.  This is an invariant
// violation in the caller and is always surfaced.
type UnknownSampleError struct {
	// Sample which was not known.
	Sample chc.Sample
}

func (e *UnknownSampleError) Error() string {
	return fmt.Sprintf("unknown positive sample %s", e.Sample)
}

// UnreconstructableSampleError indicates that no clause of the original
// instance could witness a target sample.  This is a hard failure: it means
// the working and original instances disagree.
type UnreconstructableSampleError struct {
	// Sample which could not be reconstructed.
	Sample chc.Sample
}

func (e *UnreconstructableSampleError) Error() string {
	return fmt.Sprintf("could not reconstruct sample %s", e.Sample)
}

// IllegalClauseError indicates a clause without a RHS was used in a context
// requiring one.  This is an internal invariant violation and always fatal.
type IllegalClauseError struct {
	// Clause which was illegal in context.
	Clause chc.ClauseIndex
}

func (e *IllegalClauseError) Error() string {
	return fmt.Sprintf("illegal witnessing query against clause #%d (no rhs)", e.Clause)
}
