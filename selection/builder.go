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

// Package selection provides the fluent field-selection builder.
//
// A Builder[M] accumulates an ordered, deduplicated list of field names for
// the model struct type M, replacing hand-written string slices passed to
// generic bind/update mechanisms. Fields are picked with typed selectors:
//
//	names := selection.New[Movie](res, cfg).
//		Add(func(m *Movie) any { return &m.Name }).
//		Add(func(m *Movie) any { return &m.GenreId }).
//		Fields()
//
// Selector and name validation is fail-fast: the fluent methods panic on the
// two programmer-error conditions (a selector that does not address a single
// directly declared field, and a field declared on a type other than M, e.g.
// promoted from an embedded struct). The Try variants return those errors
// instead. The declaring-type check is exact, which intentionally rejects
// promoted fields of embedded types; see the root package documentation.
//
// A Builder is a single-owner value: build it once (typically at startup),
// read it afterwards. Concurrent mutation of one instance is not supported.
package selection

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/fsx/apis"
	"dirpx.dev/fsx/resolver"
)

var (
	// ErrNilResolver is returned when a builder is constructed without a resolver.
	ErrNilResolver = errors.New("fsx(selection): nil resolver provided")
	// ErrInvalidModel indicates that the model type parameter is not a
	// struct or a pointer chain ending in one.
	ErrInvalidModel = errors.New("fsx(selection): model type has no underlying struct")
)

// Selector picks exactly one directly declared field of M by returning its
// address: func(m *Movie) any { return &m.Name }. Anything else the function
// returns fails resolution with an ErrInvalidSelector-wrapped error.
type Selector[M any] func(*M) any

// Builder accumulates an ordered, deduplicated list of field names for the
// model type M.
type Builder[M any] struct {
	// res resolves selectors and names fields.
	res apis.Resolver
	// cfg carries the naming and normalization knobs.
	cfg apis.Config
	// mt is the declared model type parameter M.
	mt reflect.Type
	// model is the underlying struct type of M (pointers unwrapped).
	model reflect.Type
	// names is the accumulated list in first-insertion order.
	names []string
	// index maps each name to its position in names.
	index map[string]int
}

// New constructs an empty Builder for M using the given resolver and config.
// It panics with ErrNilResolver or an ErrInvalidModel-wrapped error on
// programmer errors; a valid instantiation never fails.
func New[M any](res apis.Resolver, cfg apis.Config) *Builder[M] {
	if res == nil {
		panic(ErrNilResolver)
	}
	mt := reflect.TypeOf((*M)(nil)).Elem()
	st := mt
	for st.Kind() == reflect.Ptr {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		panic(fmt.Errorf("%w: %v", ErrInvalidModel, mt))
	}
	return &Builder[M]{
		res:   res,
		cfg:   cfg,
		mt:    mt,
		model: st,
		index: make(map[string]int),
	}
}

// Model returns the underlying struct type of M.
func (b *Builder[M]) Model() reflect.Type {
	return b.model
}

// SelectAll appends every directly declared exported field name of M, in
// declaration order, skipping names already present. It never fails.
func (b *Builder[M]) SelectAll() *Builder[M] {
	fields, err := b.res.ResolveAll(b.model, b.cfg)
	if err != nil {
		// The model type was validated in New; a failure here means the
		// resolver was swapped for one that cannot see it.
		panic(err)
	}
	for _, f := range fields {
		b.append(f.Name)
	}
	return b
}

// Add resolves sel and appends its name if not already present (idempotent,
// no reordering). It panics on an invalid or foreign selector; nothing is
// mutated in that case.
func (b *Builder[M]) Add(sel Selector[M]) *Builder[M] {
	f, err := b.resolve(sel)
	if err != nil {
		panic(err)
	}
	b.append(f.Name)
	return b
}

// TryAdd is Add with the error returned instead of panicking.
func (b *Builder[M]) TryAdd(sel Selector[M]) error {
	f, err := b.resolve(sel)
	if err != nil {
		return err
	}
	b.append(f.Name)
	return nil
}

// Remove resolves sel and deletes its name if present, preserving the order
// of the remaining names; an absent name is a no-op. It panics on an invalid
// or foreign selector; nothing is mutated in that case.
func (b *Builder[M]) Remove(sel Selector[M]) *Builder[M] {
	f, err := b.resolve(sel)
	if err != nil {
		panic(err)
	}
	b.delete(f.Name)
	return b
}

// TryRemove is Remove with the error returned instead of panicking.
func (b *Builder[M]) TryRemove(sel Selector[M]) error {
	f, err := b.resolve(sel)
	if err != nil {
		return err
	}
	b.delete(f.Name)
	return nil
}

// AddNamed appends the field with the given declared Go name. It is the
// string fallback for call sites that cannot use a selector, with the same
// validation: the name must be declared directly on M.
func (b *Builder[M]) AddNamed(goName string) *Builder[M] {
	f, err := b.res.ResolveName(b.model, goName, b.cfg)
	if err != nil {
		panic(err)
	}
	b.append(f.Name)
	return b
}

// RemoveNamed deletes the field with the given declared Go name, with the
// same validation as AddNamed.
func (b *Builder[M]) RemoveNamed(goName string) *Builder[M] {
	f, err := b.res.ResolveName(b.model, goName, b.cfg)
	if err != nil {
		panic(err)
	}
	b.delete(f.Name)
	return b
}

// FieldName resolves sel without mutating the builder and returns the
// resolved wire name.
func (b *Builder[M]) FieldName(sel Selector[M]) (string, error) {
	f, err := b.resolve(sel)
	if err != nil {
		return "", err
	}
	return f.Name, nil
}

// Fields returns the accumulated names in first-insertion order.
// The returned slice is a copy; mutating it does not affect the builder.
func (b *Builder[M]) Fields() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Contains reports whether the given wire name is present.
func (b *Builder[M]) Contains(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Len returns the number of accumulated names.
func (b *Builder[M]) Len() int {
	return len(b.names)
}

// Join returns the accumulated names joined with sep.
// An empty builder yields an empty string.
func (b *Builder[M]) Join(sep string) string {
	return strings.Join(b.names, sep)
}

// String returns the accumulated names joined with ",".
func (b *Builder[M]) String() string {
	return b.Join(",")
}

// resolve runs sel against a probe value and resolves the returned address.
func (b *Builder[M]) resolve(sel Selector[M]) (apis.Field, error) {
	if sel == nil {
		return apis.Field{}, fmt.Errorf("%w: nil selector", resolver.ErrInvalidSelector)
	}

	// Probe: a zero struct value the selector can take an address in.
	sv := reflect.New(b.model)

	// Climb pointer levels until the probe has type *M. For M == struct
	// this loop does not run; for M == *S it wraps once, and so on.
	root := sv
	target := reflect.PointerTo(b.mt)
	for root.Type() != target {
		p := reflect.New(root.Type())
		p.Elem().Set(root)
		root = p
	}

	addr := sel(root.Interface().(*M))
	return b.res.ResolveAddr(sv, addr, b.cfg)
}

// append adds name at the end unless already present.
func (b *Builder[M]) append(name string) {
	if _, ok := b.index[name]; ok {
		return
	}
	b.index[name] = len(b.names)
	b.names = append(b.names, name)
}

// delete removes name if present, reindexing the names after it.
func (b *Builder[M]) delete(name string) {
	i, ok := b.index[name]
	if !ok {
		return
	}
	b.names = append(b.names[:i], b.names[i+1:]...)
	delete(b.index, name)
	for j := i; j < len(b.names); j++ {
		b.index[b.names[j]] = j
	}
}
