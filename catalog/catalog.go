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

package catalog

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/fsx/apis"
	"dirpx.dev/fsx/config"
	uref "dirpx.dev/fsx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("fsx(catalog): nil reflect.Type provided")
)

// New constructs a Catalog that normalizes types according to cfg.
// Only MaxUnwrap is used here (naming knobs never touch the catalog).
func New(cfg apis.Config) apis.Catalog {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &catalog{cfg: cfg}
}

// catalog is a simple Catalog implementation backed by sync.Map.
type catalog struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to its cached schema.
	m sync.Map // map[reflect.Type]*apis.Schema
	// count tracks the number of cached schemas.
	count int
}

// Schema returns the schema for the nearest struct type of t, building and
// caching it on first use. The returned schema is shared; callers must not
// mutate it.
func (c *catalog) Schema(t reflect.Type) (*apis.Schema, error) {
	// Validate input early.
	if t == nil {
		return nil, ErrNilType
	}

	// Normalize to the nearest struct type according to c.cfg.
	st, err := uref.Normalize(t, c.cfg)
	if err != nil {
		return nil, err // ErrReflectNotStruct (or ErrReflectNilType if somehow nil sneaks in)
	}

	// Fast read path: cache hit without locking.
	if v, ok := c.m.Load(st); ok {
		return v.(*apis.Schema), nil
	}

	// Build outside the lock; introspection is pure.
	s := introspect(st)

	// Write path: guard with a mutex to keep the counter consistent.
	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if v, ok := c.m.Load(st); ok {
		return v.(*apis.Schema), nil
	}

	c.m.Store(st, s)
	c.count++
	return s, nil
}

// Count returns the number of cached schemas.
func (c *catalog) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Reset clears all cached schemas.
func (c *catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m.Range(func(k, _ any) bool {
		c.m.Delete(k)
		return true
	})
	c.count = 0
}

// introspect builds the structural schema for the struct type st:
// directly declared exported fields in declaration order, embedded fields
// included. Wire names are left empty; naming is a resolver concern.
func introspect(st reflect.Type) *apis.Schema {
	fields := make([]apis.Field, 0, st.NumField())
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}
		fields = append(fields, apis.Field{
			GoName:    f.Name,
			Index:     i,
			Offset:    f.Offset,
			Type:      f.Type,
			Tag:       f.Tag,
			Anonymous: f.Anonymous,
			Declaring: st,
		})
	}
	return &apis.Schema{Type: st, Fields: fields}
}
