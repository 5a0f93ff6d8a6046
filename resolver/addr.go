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

// ResolveAddr resolves the field addressed by addr within the struct that
// root points to. root must be a non-nil pointer to a struct value held
// alive by the caller for the duration of the call.
//
// Two selector shapes resolve:
//   - a typed pointer to a directly declared field, matched by byte offset
//     and pointer element type;
//   - a pointer landing inside an embedded (anonymous) field, which is
//     descended into; the resolved field is declared on the embedded type,
//     so the exact-type check fails with a *ForeignFieldError.
//
// Everything else wraps ErrInvalidSelector.
func (r chain) ResolveAddr(root reflect.Value, addr any, cfg apis.Config) (apis.Field, error) {
	if !root.IsValid() || root.Kind() != reflect.Ptr || root.IsNil() ||
		root.Type().Elem().Kind() != reflect.Struct {
		return apis.Field{}, fmt.Errorf("%w: root is not a non-nil struct pointer", ErrInvalidSelector)
	}

	sch, err := r.cat.Schema(root.Type().Elem())
	if err != nil {
		return apis.Field{}, fmt.Errorf("%w: %v", ErrInvalidSelector, err)
	}

	if addr == nil {
		return apis.Field{}, fmt.Errorf("%w: selector returned nil", ErrInvalidSelector)
	}
	rv := reflect.ValueOf(addr)
	if rv.Kind() != reflect.Ptr {
		return apis.Field{}, fmt.Errorf("%w: selector returned %s, want the address of a field", ErrInvalidSelector, rv.Kind())
	}
	if rv.IsNil() {
		return apis.Field{}, fmt.Errorf("%w: selector returned a nil pointer", ErrInvalidSelector)
	}

	base := root.Pointer()
	p := rv.Pointer()
	if p < base || p > base+sch.Type.Size() {
		return apis.Field{}, fmt.Errorf("%w: selector returned a pointer outside the model value", ErrInvalidSelector)
	}

	off := p - base
	elem := rv.Type().Elem()

	// Direct shape: a declared field at exactly this offset with exactly
	// this type. Matching both disambiguates offset ties (an embedded field
	// and its own first field share an address).
	for _, f := range sch.Fields {
		if f.Offset == off && f.Type == elem {
			f.Name = r.name(f, cfg)
			return f, nil
		}
	}

	// Embedded shape: the pointer lands inside an anonymous field. Descend
	// to find what it addresses; whatever is found is declared on the
	// embedded type, which is never exactly the model type.
	for _, f := range sch.Fields {
		if !f.Anonymous || f.Type.Kind() != reflect.Struct {
			continue
		}
		if off < f.Offset || off >= f.Offset+f.Type.Size() {
			continue
		}
		if g, ok := r.locate(f.Type, off-f.Offset, elem); ok {
			return apis.Field{}, &ForeignFieldError{
				Model:     sch.Type,
				Declaring: g.Declaring,
				Field:     g.GoName,
			}
		}
	}

	// Inside a named nested struct, or an offset/type combination that is
	// no field boundary: either way, not a single direct field access.
	for _, f := range sch.Fields {
		if !f.Anonymous && off > f.Offset && off < f.Offset+f.Type.Size() {
			return apis.Field{}, fmt.Errorf("%w: selector addresses a member nested inside field %q", ErrInvalidSelector, f.GoName)
		}
	}
	return apis.Field{}, fmt.Errorf("%w: no declared field of type %v at the selected address", ErrInvalidSelector, elem)
}

// locate searches the struct type st for a field at the given relative
// offset with the given type, descending through further embedded structs.
func (r chain) locate(st reflect.Type, off uintptr, elem reflect.Type) (apis.Field, bool) {
	sch, err := r.cat.Schema(st)
	if err != nil {
		return apis.Field{}, false
	}
	for _, f := range sch.Fields {
		if f.Offset == off && f.Type == elem {
			return f, true
		}
	}
	for _, f := range sch.Fields {
		if !f.Anonymous || f.Type.Kind() != reflect.Struct {
			continue
		}
		if off < f.Offset || off >= f.Offset+f.Type.Size() {
			continue
		}
		if g, ok := r.locate(f.Type, off-f.Offset, elem); ok {
			return g, true
		}
	}
	return apis.Field{}, false
}
