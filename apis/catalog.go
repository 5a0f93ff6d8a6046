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

// Catalog caches structural schemas by struct type.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Catalog interface {
	// Schema returns the schema for the nearest struct type of t,
	// normalizing containers (ptr/slice/array/chan/map) first.
	// The returned Schema is shared and must not be mutated.
	Schema(t reflect.Type) (*Schema, error)
	// Count returns the number of cached schemas.
	Count() int
	// Reset clears all cached schemas.
	Reset()
}
