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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/fsx/apis"
	"dirpx.dev/fsx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotStruct indicates that the provided type (after unwrapping
	// containers) does not contain a struct type (e.g., int, func, interface{}).
	ErrReflectNotStruct = errors.New("reflect: type has no underlying struct")
)

// Normalize unwraps containers according to config (MaxUnwrap) and returns
// the nearest struct inner type, or an error if none is found.
//
// Unwrapping policy:
//   - ptr/slice/array/chan  -> Elem()
//   - map[K]V: a struct is almost always on the value side, so try V first;
//     if V is a struct, return it; else if K is a struct, return it;
//     otherwise continue unwrapping V.
//   - default: if t.Kind() == Struct, return t; otherwise ErrReflectNotStruct.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t != nil && i < maxUnwrap; i++ {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()

		case reflect.Map:
			et := t.Elem()
			if et != nil && et.Kind() == reflect.Struct {
				return et, nil
			}
			kt := t.Key()
			if kt != nil && kt.Kind() == reflect.Struct {
				return kt, nil
			}
			// Neither side is a struct: keep unwrapping the value side.
			t = et

		default:
			// Struct, return; anything else -> error
			if t.Kind() == reflect.Struct {
				return t, nil
			}
			return nil, ErrReflectNotStruct
		}
	}
	return nil, ErrReflectNotStruct
}
