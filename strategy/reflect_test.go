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

package strategy_test

import (
	"testing"

	"dirpx.dev/fsx/apis"
	"dirpx.dev/fsx/strategy"
)

func TestReflectStrategy_TerminalFallback(t *testing.T) {
	s := strategy.NewReflectStrategy()
	cfg := apis.Config{TagName: "json"}

	// The Go name is returned regardless of tags or config.
	got, handled := s.TryName(field("GenreId", `json:"genre_id"`, nil), cfg)
	if !handled || got != "GenreId" {
		t.Fatalf("TryName = (%q, %v), want (GenreId, true)", got, handled)
	}

	// A field without a name cannot be handled.
	if _, handled := s.TryName(apis.Field{}, cfg); handled {
		t.Fatalf("TryName handled a nameless field")
	}
}
