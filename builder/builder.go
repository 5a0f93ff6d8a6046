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

package builder

import (
	"dirpx.dev/fsx/apis"
	"dirpx.dev/fsx/catalog"
	"dirpx.dev/fsx/registry"
	"dirpx.dev/fsx/resolver"
	"dirpx.dev/fsx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildCatalog builds and returns a new apis.Catalog based on the provided
// configuration. Catalogs are pure caches, so the previous instance is not
// migrated; schemas are re-derived on demand under the new configuration.
func (b *builder) BuildCatalog(cfg apis.Config, _ apis.Catalog, _ any) apis.Catalog {
	return catalog.New(cfg)
}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and pre-existing registry. If a pre-existing registry is
// provided, its overrides are copied into the new registry.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if preg != nil {
		for _, e := range preg.Entries() {
			_ = nreg.Register(e.Type, e.GoName, e.Name)
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver based on the provided
// configuration, catalog, and registry. The naming chain is
// Tag -> Registry -> Reflect.
func (b *builder) BuildResolver(cfg apis.Config, cat apis.Catalog, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	if cat == nil {
		cat = catalog.New(cfg)
	}
	return resolver.New(
		cat,
		strategy.NewTagStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}
