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
package term

import (
	"cmp"
	"fmt"
)

// Sort identifies the type of a term or value.  Only integers and booleans
// are supported, which is sufficient for linear integer arithmetic clauses.
type Sort uint8

const (
	// INT is the sort of integer terms and values.
	INT Sort = iota
	// BOOL is the sort of boolean terms and values.
	BOOL
)

func (s Sort) String() string {
	switch s {
	case INT:
		return "Int"
	case BOOL:
		return "Bool"
	default:
		return fmt.Sprintf("?sort%d", uint(s))
	}
}

// Value represents a ground value of some sort.  Values are totally ordered
// (first by sort, then unknown before known, then by payload) so that
// collections of values have a reproducible iteration order.
type Value interface {
	// Sort returns the sort this value inhabits.
	Sort() Sort
	// Known indicates whether this is an actual value, or the unknown
	// placeholder used for argument positions dropped by signature reduction.
	Known() bool
	// Cmp returns < 0 if this value is less than other, 0 if they are equal
	// and > 0 otherwise.
	Cmp(other Value) int
	// String returns a human-readable rendering of this value.
	String() string
}

// IntValue is a known integer value.
type IntValue int64

// Sort implementation for the Value interface.
func (v IntValue) Sort() Sort { return INT }

// Known implementation for the Value interface.
func (v IntValue) Known() bool { return true }

// Cmp implementation for the Value interface.
func (v IntValue) Cmp(other Value) int {
	if c := rankCmp(v, other); c != 0 {
		return c
	}
	//
	return cmp.Compare(int64(v), int64(other.(IntValue)))
}

func (v IntValue) String() string {
	return fmt.Sprintf("%d", int64(v))
}

// BoolValue is a known boolean value.
type BoolValue bool

// Sort implementation for the Value interface.
func (v BoolValue) Sort() Sort { return BOOL }

// Known implementation for the Value interface.
func (v BoolValue) Known() bool { return true }

// Cmp implementation for the Value interface.
func (v BoolValue) Cmp(other Value) int {
	if c := rankCmp(v, other); c != 0 {
		return c
	}
	// false < true
	w := other.(BoolValue)
	//
	return boolToInt(bool(v)) - boolToInt(bool(w))
}

func (v BoolValue) String() string {
	if v {
		return "true"
	}
	//
	return "false"
}

// NoneValue is the unknown placeholder of a given sort.  It stands for an
// argument position which was dropped when a predicate signature was reduced,
// and which therefore carries no information.
type NoneValue struct {
	sort Sort
}

// None constructs the unknown placeholder for a given sort.
func None(sort Sort) NoneValue {
	return NoneValue{sort}
}

// Sort implementation for the Value interface.
func (v NoneValue) Sort() Sort { return v.sort }

// Known implementation for the Value interface.
func (v NoneValue) Known() bool { return false }

// Cmp implementation for the Value interface.
func (v NoneValue) Cmp(other Value) int {
	return rankCmp(v, other)
}

func (v NoneValue) String() string {
	return fmt.Sprintf("(_ %s)", v.sort)
}

// rankCmp orders values by sort first, then unknown before known.  When both
// are known and of the same sort it returns 0, leaving the payload comparison
// to the caller.
func rankCmp(lhs, rhs Value) int {
	if c := cmp.Compare(lhs.Sort(), rhs.Sort()); c != 0 {
		return c
	}
	//
	return boolToInt(lhs.Known()) - boolToInt(rhs.Known())
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	//
	return 0
}
