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

// Resolver resolves selectors and Go field names to named Fields.
// Typical naming chain behind it: TagStrategy -> RegistryStrategy ->
// ReflectStrategy.
type Resolver interface {
	// ResolveAddr resolves the field addressed by addr within the struct
	// that root points to. root must be a non-nil pointer to a struct
	// value; addr is expected to box a pointer to one of its directly
	// declared fields. A pointer landing inside an embedded field resolves
	// to the embedded declaring type and fails the exact-type check.
	ResolveAddr(root reflect.Value, addr any, cfg Config) (Field, error)

	// ResolveName resolves the directly declared field of (the nearest
	// struct type of) t with the given Go field name. A name only reachable
	// by promotion from an embedded type fails the exact-type check.
	ResolveName(t reflect.Type, goName string, cfg Config) (Field, error)

	// ResolveAll returns every directly declared exported field of (the
	// nearest struct type of) t, in declaration order, with wire names
	// resolved. cfg.IncludeEmbedded controls whether embedded fields are
	// included.
	ResolveAll(t reflect.Type, cfg Config) ([]Field, error)
}
