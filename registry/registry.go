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

package registry

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
	ErrNilType = errors.New("fsx(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty field or wire name is provided.
	ErrEmptyName = errors.New("fsx(registry): empty name provided")
	// ErrUnknownField indicates that the named field is not declared
	// (exported) on the type being registered.
	ErrUnknownField = errors.New("fsx(registry): field not declared on type")
	// ErrPromotedField indicates that the named field is only reachable by
	// promotion from an embedded type, not declared directly.
	ErrPromotedField = errors.New("fsx(registry): field declared on embedded type")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a field with a different wire name.
	ErrConflictingRegistration = errors.New("fsx(registry): conflicting field registration")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap is used here (naming knobs are irrelevant).
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// key identifies one directly declared field of a struct type.
type key struct {
	t      reflect.Type
	goName string
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps key to the overriding wire name.
	m sync.Map // map[key]string
	// count tracks the number of registered overrides.
	count int
}

// Register associates the field goName of the nearest struct type of t with
// the given wire name. It is idempotent for the same (type,field,name) triple.
func (r *registry) Register(t reflect.Type, goName, name string) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if goName == "" || name == "" {
		return ErrEmptyName
	}

	// Normalize to the nearest struct type according to r.cfg.
	st, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err // ErrReflectNotStruct (or ErrReflectNilType if somehow nil sneaks in)
	}

	// The field must be declared directly on st, not promoted from an
	// embedded type; overrides for foreign declarations would never match.
	f, ok := st.FieldByName(goName)
	if !ok || !f.IsExported() {
		return ErrUnknownField
	}
	if len(f.Index) > 1 {
		return ErrPromotedField
	}

	k := key{t: st, goName: goName}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(k); ok {
		if old.(string) == name {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(k); ok {
		if old.(string) == name {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(k, name)
	r.count++
	return nil
}

// Lookup returns the override for a (type, field) pair if present.
// t is normalized the same way Register normalizes it.
func (r *registry) Lookup(t reflect.Type, goName string) (string, bool) {
	if t == nil || goName == "" {
		return "", false
	}
	st, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return "", false
	}
	if v, ok := r.m.Load(key{t: st, goName: goName}); ok {
		return v.(string), true
	}
	return "", false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(k, value any) bool {
		entries = append(entries, apis.Entry{
			Type:   k.(key).t,
			GoName: k.(key).goName,
			Name:   value.(string),
		})
		return true
	})
	return entries
}

// Count returns the number of registered overrides.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered overrides.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}
