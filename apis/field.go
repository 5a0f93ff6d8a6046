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

// Field describes one directly declared struct field after resolution.
type Field struct {
	// Name is the resolved wire name produced by the naming strategies.
	// It may differ from GoName when a tag or registry override applies.
	Name string
	// GoName is the declared Go field name.
	GoName string
	// Index is the field's position among the declaring struct's fields.
	Index int
	// Offset is the field's byte offset within the declaring struct.
	Offset uintptr
	// Type is the field's Go type.
	Type reflect.Type
	// Tag is the field's raw struct tag.
	Tag reflect.StructTag
	// Anonymous reports whether the field is embedded.
	Anonymous bool
	// Declaring is the struct type that directly declares the field.
	Declaring reflect.Type
}

// Schema is the structural description of a struct type: its directly
// declared exported fields in declaration order. Field.Name is left empty
// in a Schema; wire names are resolved per lookup so that naming knobs and
// registry overrides never invalidate a cached Schema.
type Schema struct {
	// Type is the struct type the schema describes.
	Type reflect.Type
	// Fields lists the directly declared exported fields in declaration
	// order, embedded fields included.
	Fields []Field
}
