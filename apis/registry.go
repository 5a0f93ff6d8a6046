/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "reflect"

// Registry provides explicit per-field wire-name overrides.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register associates the field goName of the (nearest struct) type t
	// with a fixed wire name. Implementations should be idempotent;
	// conflicting re-registrations return an error.
	Register(t reflect.Type, goName, name string) error
	// Lookup returns the override for a (type, field) pair if present.
	Lookup(t reflect.Type, goName string) (name string, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered overrides.
	Count() int
	// Reset clears all registered overrides.
	Reset()
}

// Entry is a single (type, field, name) override in a Registry snapshot.
type Entry struct {
	// Type is the declaring struct type.
	Type reflect.Type
	// GoName is the declared Go field name.
	GoName string
	// Name is the overriding wire name.
	Name string
}
