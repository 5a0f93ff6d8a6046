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

package resolver

import (
	"fmt"
	"reflect"

	"dirpx.dev/fsx/apis"
)

// New creates an apis.Resolver over the given catalog and naming strategies,
// applied in order. Nil strategies are ignored. New panics with ErrNilCatalog
// if cat is nil; a resolver without a catalog cannot do anything.
//
// The returned resolver is safe for concurrent use provided the catalog and
// strategies themselves are safe for concurrent calls.
func New(cat apis.Catalog, strategies ...apis.Strategy) apis.Resolver {
	if cat == nil {
		panic(ErrNilCatalog)
	}
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{cat: cat, strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	cat    apis.Catalog
	strats []apis.Strategy
}

// name runs strategies in order until one handles the field.
// Falls back to the declared Go name if no strategy produced one.
func (r chain) name(f apis.Field, cfg apis.Config) string {
	for _, s := range r.strats {
		if name, ok := s.TryName(f, cfg); ok {
			return name
		}
	}
	return f.GoName
}

// ResolveName resolves the directly declared field of (the nearest struct
// type of) t with the given Go field name.
func (r chain) ResolveName(t reflect.Type, goName string, cfg apis.Config) (apis.Field, error) {
	if goName == "" {
		return apis.Field{}, fmt.Errorf("%w: empty field name", ErrInvalidSelector)
	}
	sch, err := r.cat.Schema(t)
	if err != nil {
		return apis.Field{}, fmt.Errorf("%w: %v", ErrInvalidSelector, err)
	}

	for _, f := range sch.Fields {
		if f.GoName == goName {
			f.Name = r.name(f, cfg)
			return f, nil
		}
	}

	// Not declared directly. A promoted match is a foreign declaration,
	// anything else is simply unknown.
	if sf, ok := sch.Type.FieldByName(goName); ok && sf.IsExported() && len(sf.Index) > 1 {
		return apis.Field{}, &ForeignFieldError{
			Model:     sch.Type,
			Declaring: declaringOf(sch.Type, sf.Index),
			Field:     goName,
		}
	}
	return apis.Field{}, fmt.Errorf("%w: no field %q declared on %v", ErrInvalidSelector, goName, sch.Type)
}

// ResolveAll returns every directly declared exported field of (the nearest
// struct type of) t, in declaration order, with wire names resolved.
func (r chain) ResolveAll(t reflect.Type, cfg apis.Config) ([]apis.Field, error) {
	sch, err := r.cat.Schema(t)
	if err != nil {
		return nil, err
	}

	out := make([]apis.Field, 0, len(sch.Fields))
	for _, f := range sch.Fields {
		if f.Anonymous && !cfg.IncludeEmbedded {
			continue
		}
		f.Name = r.name(f, cfg)
		out = append(out, f)
	}
	return out, nil
}

// declaringOf walks an embedded index path and returns the struct type that
// declares its final element.
func declaringOf(st reflect.Type, index []int) reflect.Type {
	cur := st
	for _, i := range index[:len(index)-1] {
		cur = cur.Field(i).Type
		if cur.Kind() == reflect.Ptr {
			cur = cur.Elem()
		}
	}
	return cur
}
