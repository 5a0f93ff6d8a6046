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

// Config carries read-only knobs that influence field naming and model
// normalization. It is passed by value and should be treated as immutable
// by implementations.
type Config struct {
	// TagName is the struct tag consulted for field name overrides
	// (e.g. "json"). Only the first comma-separated segment of the tag
	// value is used; an empty segment or "-" falls through to the next
	// naming strategy. If TagName is empty, tags are ignored entirely.
	TagName string

	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// when normalizing a model type to its underlying struct.
	// Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// IncludeEmbedded controls whether anonymous (embedded) fields appear
	// in full-schema enumeration. An embedded field is still a directly
	// declared field of its owner; when false it is simply skipped when
	// listing all fields. Promoted members of embedded types are never
	// enumerated either way.
	IncludeEmbedded bool
}
