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

// Package fsx provides typed field selection for Go structs.
//
// fsx is responsible for turning "this field of that model type" into a
// stable, ordered list of field name strings. Such lists are what generic
// bind/update mechanisms consume ("copy only these named fields from the
// payload onto the instance"); fsx replaces the hand-written magic-string
// slices those call sites otherwise carry:
//
//	fields := fsx.Select[Movie]().
//		Add(func(m *Movie) any { return &m.Name }).
//		Add(func(m *Movie) any { return &m.GenreId }).
//		Fields() // ["Name", "GenreId"]
//
// A selector is a function that returns the address of exactly one directly
// declared field of the model type. Because the selector is typed against
// *M, picking a field of an unrelated model does not compile; what remains
// is checked at resolution time, fail-fast.
//
// # Design
//
// The core of fsx is a read-mostly global snapshot (state). The snapshot
// holds five things:
//
//   - Config: rules that control how fields are named and how model types
//     are normalized (which struct tag overrides names, how deep to unwrap
//     pointers/slices/maps, whether embedded fields are enumerated).
//
//   - Catalog: a process-wide cache of structural schemas, one per struct
//     type: the directly declared exported fields in declaration order with
//     their offsets and tags. Schemas are structural only; wire names are
//     resolved per lookup so that renaming never invalidates the cache.
//
//   - Registry: a process-wide mapping from (struct type, field) to an
//     explicit, human-chosen wire name. This is how you force a stable name
//     for an important field without touching its struct tag. The registry
//     can be written to at runtime (Register).
//
//   - Resolver: a read-only object that answers "which field does this
//     selector address, and what is its name?". Naming runs strategies in
//     priority order:
//     1. If Config.TagName is set and the field carries that tag, use it.
//     2. If the (type, field) pair is found in the Registry, use that name.
//     3. Otherwise, fall back to the declared Go field name.
//     Resolver is expected to be concurrency-safe for reads.
//
//   - Builder: a pluggable factory that knows how to construct Catalog,
//     Registry, and Resolver instances for a given Config (and optional
//     extension data). The Builder is also allowed to reuse/migrate state
//     from previous instances.
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state and
// atomically swap it in, so selection builders created concurrently always
// see a consistent snapshot.
//
// The selection.Builder[M] values returned by Select are different: each is
// a single-owner accumulator, intended to be built once (typically at
// startup, often cached per model type) and only read thereafter. Mutating
// one instance from multiple goroutines is undefined; the builder carries
// no lock on purpose, since a lock would tax every reader of what is in
// practice a static configuration object.
//
// # Errors
//
// Selector failures come in exactly two kinds, both programmer errors
// surfaced immediately at the call site, never retried, logged, or
// corrected:
//
//   - resolver.ErrInvalidSelector: the selector does not reduce to a single
//     directly declared field (it returned a non-pointer, a pointer outside
//     the model value, or the address of a member nested inside another
//     field).
//
//   - resolver.ErrForeignField: the selector resolved to a field whose
//     declaring type is not exactly the model type. The concrete
//     *resolver.ForeignFieldError carries both the expected and the actual
//     declaring type.
//
// The fluent methods (Add, Remove, AddNamed, RemoveNamed) panic on these
// conditions, in the same register as regexp.MustCompile: by the time a
// selector is wrong the program is wrong. TryAdd, TryRemove, and FieldName
// return the error instead. A failed call never mutates the builder.
//
// Known rough edge: the declaring-type check is exact, not assignability.
// A field promoted from an embedded struct is declared on the embedded
// type, so selecting it through the outer model fails with
// ErrForeignField even though the access itself is legal Go. Select the
// embedded field as a whole, or declare the field on the model directly,
// if its name should participate in selection.
package fsx
