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
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/fsx/apis"
	"dirpx.dev/fsx/catalog"
	"dirpx.dev/fsx/config"
	uref "dirpx.dev/fsx/utils/reflect"
)

// Embedded is embedded into model to verify the anonymous flag.
type Embedded struct{ Tag string }

// model is a representative struct with embedded, unexported, and tagged fields.
type model struct {
	Embedded
	Id     int    `json:"id"`
	Name   string `json:"name"`
	hidden bool   // unexported fields must not appear in schemas
}

func TestSchema_FieldsInDeclarationOrder(t *testing.T) {
	cat := catalog.New(config.DefaultConfig())

	sch, err := cat.Schema(reflect.TypeOf(model{}))
	if err != nil {
		t.Fatalf("Schema failed: %v", err)
	}

	want := []string{"Embedded", "Id", "Name"}
	if len(sch.Fields) != len(want) {
		t.Fatalf("field count: got %d want %d", len(sch.Fields), len(want))
	}
	for i, f := range sch.Fields {
		if f.GoName != want[i] {
			t.Fatalf("field %d: got %q want %q", i, f.GoName, want[i])
		}
		if f.Name != "" {
			t.Fatalf("field %d: wire name must be unset in a schema, got %q", i, f.Name)
		}
		if f.Declaring != reflect.TypeOf(model{}) {
			t.Fatalf("field %d: declaring type got %v", i, f.Declaring)
		}
	}
	if !sch.Fields[0].Anonymous {
		t.Fatalf("embedded field not marked anonymous")
	}
	if sch.Fields[1].Anonymous {
		t.Fatalf("plain field marked anonymous")
	}
	if got := sch.Fields[2].Tag.Get("json"); got != "name" {
		t.Fatalf("tag not captured: got %q", got)
	}
}

func TestSchema_NormalizesContainers(t *testing.T) {
	cat := catalog.New(config.DefaultConfig())

	direct, err := cat.Schema(reflect.TypeOf(model{}))
	if err != nil {
		t.Fatalf("Schema(model) failed: %v", err)
	}

	for _, typ := range []reflect.Type{
		reflect.TypeOf(&model{}),
		reflect.TypeOf([]model{}),
		reflect.TypeOf(map[string]*model{}),
	} {
		sch, err := cat.Schema(typ)
		if err != nil {
			t.Fatalf("Schema(%v) failed: %v", typ, err)
		}
		if sch != direct {
			t.Fatalf("Schema(%v) did not hit the cache for the normalized type", typ)
		}
	}

	// One struct type, one cache entry, no matter the container shapes.
	if c := cat.Count(); c != 1 {
		t.Fatalf("count: got %d want 1", c)
	}
}

func TestSchema_Errors(t *testing.T) {
	cat := catalog.New(config.DefaultConfig())

	if _, err := cat.Schema(nil); !errors.Is(err, catalog.ErrNilType) {
		t.Fatalf("nil type: got %v", err)
	}
	if _, err := cat.Schema(reflect.TypeOf(42)); !errors.Is(err, uref.ErrReflectNotStruct) {
		t.Fatalf("non-struct: got %v", err)
	}
}

func TestReset(t *testing.T) {
	cat := catalog.New(config.DefaultConfig())

	if _, err := cat.Schema(reflect.TypeOf(model{})); err != nil {
		t.Fatalf("Schema failed: %v", err)
	}
	if cat.Count() == 0 {
		t.Fatalf("expected cached schema before reset")
	}

	cat.Reset()
	if c := cat.Count(); c != 0 {
		t.Fatalf("count after reset: got %d want 0", c)
	}
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Catalog = catalog.New(config.DefaultConfig())
