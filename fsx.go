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

package fsx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/fsx/apis"
	"dirpx.dev/fsx/builder"
	"dirpx.dev/fsx/config"
	"dirpx.dev/fsx/selection"
)

// init initializes the global fsx state.
func init() {
	// Initialize state with default cfg, cat, reg, and res.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.cat = b.BuildCatalog(s.cfg, nil, nil)
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.cat, s.reg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilCatalog is returned when a builder returns a nil catalog.
	ErrNilCatalog = errors.New("fsx: builder returned nil catalog")
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("fsx: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("fsx: builder returned nil resolver")
)

// Select returns a new empty selection builder for the model type M, bound
// to the current global resolver and configuration.
// This is a convenience wrapper around selection.New.
func Select[M any]() *selection.Builder[M] {
	s := st.Load()
	return selection.New[M](s.res, s.cfg)
}

// FieldsOf returns every directly declared exported field name of M in
// declaration order, using the global resolver and configuration.
// This is a convenience wrapper around Select[M]().SelectAll().Fields().
func FieldsOf[M any]() []string {
	return Select[M]().SelectAll().Fields()
}

// NameOf resolves a single selector for M to its wire name using the global
// resolver and configuration, without building up a selection.
func NameOf[M any](sel selection.Selector[M]) (string, error) {
	return Select[M]().FieldName(sel)
}

// FieldNames returns every directly declared exported field name of the
// nearest struct type of t in declaration order, using the global resolver
// and configuration. Unlike FieldsOf it accepts container types
// (*Movie, []Movie, map[string]Movie all resolve to Movie's fields).
func FieldNames(t reflect.Type) ([]string, error) {
	s := st.Load()
	fields, err := s.res.ResolveAll(t, s.cfg)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names, nil
}

// RegisterFieldName adds a wire-name override for the field goName of the
// nearest struct type of t to the global fsx registry.
// This is a convenience wrapper around the global registry.
func RegisterFieldName(t reflect.Type, goName, name string) error {
	return st.Load().reg.Register(t, goName, name)
}

// SetAll explicitly sets all global fsx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, cat apis.Catalog, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Catalog
	ncat := cat
	npcat := false
	if ncat == nil {
		ncat = nbld.BuildCatalog(ncfg, old.cat, next)
	} else {
		npcat = true
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Resolver
	nres := res
	npres := false
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, ncat, nreg, old.res, next)
	} else {
		npres = true
	}

	// Ensure non-nil cat, reg, and res.
	if ncat == nil {
		panic(ErrNilCatalog)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			cat:  ncat,
			reg:  nreg,
			res:  nres,
			bld:  nbld,
			pcat: npcat,
			preg: npreg,
			pres: npres,
		},
	)
}

// Config returns the global fsx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global fsx configuration to cfg.
// It rebuilds the global cat, reg, and res using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new cat, reg, and res based on the new cfg and old state.
	ncat := old.cat
	if !old.pcat {
		ncat = b.BuildCatalog(cfg, old.cat, old.ext)
	}
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(cfg, ncat, nreg, old.res, old.ext)
	}

	// Ensure non-nil cat, reg, and res.
	if ncat == nil {
		panic(ErrNilCatalog)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			cat:  ncat,
			reg:  nreg,
			res:  nres,
			bld:  b,
			pcat: old.pcat,
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// Catalog returns the global fsx cat.
func Catalog() apis.Catalog {
	return st.Load().cat
}

// SetCatalog sets the global fsx cat to cat.
// It uses the global fsx configuration and registry to rebuild the global res.
// This is a convenience wrapper around the global state.
func SetCatalog(cat apis.Catalog) {
	if cat == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res based on the old cfg and new cat.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, cat, old.reg, old.res, old.ext)
	}

	// Ensure non-nil res.
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			cat:  cat,
			reg:  old.reg,
			res:  nres,
			bld:  b,
			pcat: true,
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// Registry returns the global fsx reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global fsx reg to reg.
// It uses the global fsx configuration and catalog to rebuild the global res.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res based on the old cfg and new reg.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, old.cat, reg, old.res, old.ext)
	}

	// Ensure non-nil res.
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			cat:  old.cat,
			reg:  reg,
			res:  nres,
			bld:  b,
			pcat: old.pcat,
			preg: true,
			pres: old.pres,
		},
	)
}

// Resolver returns the global fsx res.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global fsx res to res.
// It uses the global fsx configuration, catalog, and registry.
// This is a convenience wrapper around the global state.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			cat:  old.cat,
			reg:  old.reg,
			res:  res,
			bld:  old.bld,
			pcat: old.pcat,
			preg: old.preg,
			pres: true,
		},
	)
}

// Builder returns the global fsx bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global fsx bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new cat, reg, and res based on the new bld and old state.
	ncat := old.cat
	if !old.pcat {
		ncat = b.BuildCatalog(old.cfg, old.cat, old.ext)
	}
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, ncat, nreg, old.res, old.ext)
	}

	// Ensure non-nil cat, reg, and res.
	if ncat == nil {
		panic(ErrNilCatalog)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			cat:  ncat,
			reg:  nreg,
			res:  nres,
			bld:  b,
			pcat: old.pcat,
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new cat, reg, and res based on the new ext and old state.
	ncat := old.cat
	if !old.pcat {
		ncat = b.BuildCatalog(old.cfg, old.cat, ext)
	}
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, ncat, nreg, old.res, ext)
	}

	// Ensure non-nil cat, reg, and res.
	if ncat == nil {
		panic(ErrNilCatalog)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			cat:  ncat,
			reg:  nreg,
			res:  nres,
			bld:  b,
			pcat: old.pcat,
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// ExtAs returns the global fsx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsCatalogPinned returns whether the global fsx cat is pinned (immutable).
func IsCatalogPinned() bool {
	return st.Load().pcat
}

// PinCatalog makes the global fsx cat immutable.
func PinCatalog() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			cat:  old.cat,
			reg:  old.reg,
			res:  old.res,
			bld:  old.bld,
			pcat: true,
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// UnpinCatalog makes the global fsx cat mutable again.
func UnpinCatalog() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			cat:  old.cat,
			reg:  old.reg,
			res:  old.res,
			bld:  old.bld,
			pcat: false,
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// IsRegistryPinned returns whether the global fsx reg is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global fsx reg immutable.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			cat:  old.cat,
			reg:  old.reg,
			res:  old.res,
			bld:  old.bld,
			pcat: old.pcat,
			preg: true,
			pres: old.pres,
		},
	)
}

// UnpinRegistry makes the global fsx reg mutable again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			cat:  old.cat,
			reg:  old.reg,
			res:  old.res,
			bld:  old.bld,
			pcat: old.pcat,
			preg: false,
			pres: old.pres,
		},
	)
}

// IsResolverPinned returns whether the global fsx res is pinned (immutable).
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver makes the global fsx res immutable.
func PinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			cat:  old.cat,
			reg:  old.reg,
			res:  old.res,
			bld:  old.bld,
			pcat: old.pcat,
			preg: old.preg,
			pres: true,
		},
	)
}

// UnpinResolver makes the global fsx res mutable again.
func UnpinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			cat:  old.cat,
			reg:  old.reg,
			res:  old.res,
			bld:  old.bld,
			pcat: old.pcat,
			preg: old.preg,
			pres: false,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global fsx state.
var st atomic.Pointer[state]

// state is the global fsx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global fsx configuration.
	cfg apis.Config
	// ext is the global fsx extension configuration.
	ext any
	// cat is the global fsx cat.
	cat apis.Catalog
	// reg is the global fsx reg.
	reg apis.Registry
	// res is the global fsx res.
	res apis.Resolver
	// bld is the global fsx bld.
	bld apis.Builder
	// pcat indicates whether the cat is pinned (immutable).
	pcat bool
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pres indicates whether the res is pinned (immutable).
	pres bool
}
