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

// SharedInstance is an explicitly reference-counted handle on an instance.
// In-place mutation of the underlying instance is only permitted through
// TryExclusive, which grants it exactly when no other handle is outstanding.
// The count is not synchronised: the splitting loop is single-threaded.
type SharedInstance struct {
	instance *Instance
	refs     *uint
}

// Share wraps an instance into a fresh shared handle with a count of one.
func Share(instance *Instance) SharedInstance {
	refs := uint(1)
	return SharedInstance{instance, &refs}
}

// Get returns the underlying instance for read-only use.
func (p SharedInstance) Get() *Instance {
	return p.instance
}

// Retain produces a further handle on the same instance, incrementing the
// count.
func (p SharedInstance) Retain() SharedInstance {
	*p.refs++
	return p
}

// Release drops this handle, decrementing the count.
func (p SharedInstance) Release() {
	if *p.refs == 0 {
		panic("releasing an instance handle which was already released")
	}
	//
	*p.refs--
}

// TryExclusive returns the underlying instance for mutation when this is the
// only outstanding handle.  Otherwise it returns false and mutation must be
// skipped.
func (p SharedInstance) TryExclusive() (*Instance, bool) {
	if *p.refs == 1 {
		return p.instance, true
	}
	//
	return nil, false
}
