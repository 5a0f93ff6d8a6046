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
	"strings"

	"dirpx.dev/fsx/apis"
)

// NewTagStrategy creates an apis.Strategy that names fields from the
// struct tag selected by Config.TagName.
func NewTagStrategy() apis.Strategy {
	return &tagStrategy{}
}

// tagStrategy is the declarative fast path: if the field carries the
// configured tag, use its first comma segment and stop the chain.
// "-" and empty segments fall through (the field keeps its next-best name
// rather than disappearing).
type tagStrategy struct{}

// Ensure tagStrategy implements apis.Strategy.
var _ apis.Strategy = (*tagStrategy)(nil)

// TryName returns the tag-derived name for f, if one is configured and set.
func (*tagStrategy) TryName(f apis.Field, cfg apis.Config) (string, bool) {
	if cfg.TagName == "" {
		return "", false
	}
	v, ok := f.Tag.Lookup(cfg.TagName)
	if !ok {
		return "", false
	}
	// Options after the first comma (",omitempty" and friends) are not names.
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	if v == "" || v == "-" {
		return "", false
	}
	return v, true
}
