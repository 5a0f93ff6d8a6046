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

package catalog_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/fsx/catalog"
	"dirpx.dev/fsx/config"
)

// A few struct types to spread the cache over.
type C0 struct{ A int }
type C1 struct{ A int }
type C2 struct{ A int }
type C3 struct{ A int }
type C4 struct{ A int }
type C5 struct{ A int }
type C6 struct{ A int }
type C7 struct{ A int }

// TestConcurrentSchema verifies that Schema/Count are race-free and that
// every goroutine observes the same cached schema per type.
func TestConcurrentSchema(t *testing.T) {
	cat := catalog.New(config.DefaultConfig())

	types := []reflect.Type{
		reflect.TypeOf(C0{}), reflect.TypeOf(C1{}), reflect.TypeOf(C2{}),
		reflect.TypeOf(C3{}), reflect.TypeOf(C4{}), reflect.TypeOf(C5{}),
		reflect.TypeOf(C6{}), reflect.TypeOf(C7{}),
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				tt := types[(i+id)%len(types)]
				sch, err := cat.Schema(tt)
				if err != nil {
					t.Errorf("Schema(%v) failed: %v", tt, err)
					return
				}
				if sch.Type != tt || len(sch.Fields) != 1 {
					t.Errorf("Schema(%v) inconsistent: %+v", tt, sch)
					return
				}
				_ = cat.Count()
			}
		}(w)
	}
	wg.Wait()

	// Exactly one entry per struct type despite the races to build them.
	if c := cat.Count(); c != len(types) {
		t.Fatalf("count mismatch: got %d want %d", c, len(types))
	}

	// The cache must return pointer-identical schemas on repeat lookups.
	for _, tt := range types {
		a, _ := cat.Schema(tt)
		b, _ := cat.Schema(tt)
		if a != b {
			t.Fatalf("schema for %v rebuilt instead of cached", tt)
		}
	}
}
