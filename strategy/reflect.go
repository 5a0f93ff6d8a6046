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

package strategy

import (
	"dirpx.dev/fsx/apis"
)

// NewReflectStrategy creates an apis.Strategy that falls back to the
// declared Go field name.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback: the wire name is the declared
// Go field name. Unlike a computed resolution this is a plain struct read,
// so no memoization is needed.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// TryName returns the declared Go field name. It handles every field with
// a non-empty GoName, which makes it a terminal chain element.
func (reflectStrategy) TryName(f apis.Field, _ apis.Config) (string, bool) {
	if f.GoName == "" {
		return "", false
	}
	return f.GoName, true
}
