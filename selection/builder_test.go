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

package selection_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/fsx/apis"
	"dirpx.dev/fsx/builder"
	"dirpx.dev/fsx/config"
	"dirpx.dev/fsx/resolver"
	"dirpx.dev/fsx/selection"
)

// Movie is the canonical test model.
type Movie struct {
	Id              int
	Name            string
	Genre           string
	GenreId         int64
	DateAdded       time.Time
	ReleaseDate     time.Time
	NumberInStock   int
	NumberAvailable int
}

// Base is embedded into Derived; its fields are declared on Base, not on
// Derived, and must fail the exact declaring-type check.
type Base struct {
	Id   int
	Note string
}

// Derived embeds Base and declares its own fields.
type Derived struct {
	Base
	Name string
}

// Tagged exercises tag-based naming.
type Tagged struct {
	Id       int    `json:"id"`
	Name     string `json:"name,omitempty"`
	Internal string `json:"-"`
	Plain    string
}

// newResolver wires a default resolver the way the root package does.
func newResolver(cfg apis.Config) apis.Resolver {
	b := builder.New()
	cat := b.BuildCatalog(cfg, nil, nil)
	reg := b.BuildRegistry(cfg, nil, nil)
	return b.BuildResolver(cfg, cat, reg, nil, nil)
}

func newMovieBuilder(t *testing.T) *selection.Builder[Movie] {
	t.Helper()
	cfg := config.DefaultConfig()
	return selection.New[Movie](newResolver(cfg), cfg)
}

func TestSelectAll_DeclarationOrder(t *testing.T) {
	b := newMovieBuilder(t)

	got := b.SelectAll().Fields()
	want := []string{
		"Id", "Name", "Genre", "GenreId",
		"DateAdded", "ReleaseDate", "NumberInStock", "NumberAvailable",
	}
	require.Equal(t, want, got)
	require.Equal(t,
		"Id,Name,Genre,GenreId,DateAdded,ReleaseDate,NumberInStock,NumberAvailable",
		b.String())
}

func TestSelectAll_Idempotent(t *testing.T) {
	b := newMovieBuilder(t)

	first := b.SelectAll().Fields()
	second := b.SelectAll().Fields()
	require.Equal(t, first, second)
	require.Equal(t, len(first), b.Len())
}

func TestAdd_ChainedDuplicateCollapses(t *testing.T) {
	b := newMovieBuilder(t)

	b.Add(func(m *Movie) any { return &m.NumberAvailable }).
		Add(func(m *Movie) any { return &m.GenreId }).
		Add(func(m *Movie) any { return &m.Name }).
		Add(func(m *Movie) any { return &m.Id }).
		Add(func(m *Movie) any { return &m.NumberAvailable })

	require.Equal(t, "NumberAvailable,GenreId,Name,Id", b.String())
}

func TestAdd_ReAddDoesNotMove(t *testing.T) {
	b := newMovieBuilder(t)

	b.Add(func(m *Movie) any { return &m.Name }).
		Add(func(m *Movie) any { return &m.Id }).
		Add(func(m *Movie) any { return &m.Name })

	require.Equal(t, []string{"Name", "Id"}, b.Fields())
}

func TestFieldName_MatchesAdd(t *testing.T) {
	b := newMovieBuilder(t)
	sel := func(m *Movie) any { return &m.GenreId }

	b.Add(sel).Add(sel).Add(sel)

	name, err := b.FieldName(sel)
	require.NoError(t, err)
	require.Equal(t, "GenreId", name)

	// Exactly one occurrence no matter how many times it was added.
	count := 0
	for _, n := range b.Fields() {
		if n == name {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestFieldName_DoesNotMutate(t *testing.T) {
	b := newMovieBuilder(t)

	_, err := b.FieldName(func(m *Movie) any { return &m.Name })
	require.NoError(t, err)
	require.Zero(t, b.Len())
}

func TestRemove_PreservesRemainingOrder(t *testing.T) {
	b := newMovieBuilder(t)

	b.SelectAll().Remove(func(m *Movie) any { return &m.Name })

	require.Equal(t,
		"Id,Genre,GenreId,DateAdded,ReleaseDate,NumberInStock,NumberAvailable",
		b.String())
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	b := newMovieBuilder(t)

	require.NoError(t, b.TryRemove(func(m *Movie) any { return &m.Name }))
	require.Zero(t, b.Len())

	b.Add(func(m *Movie) any { return &m.Id })
	b.Remove(func(m *Movie) any { return &m.Name })
	require.Equal(t, []string{"Id"}, b.Fields())
}

func TestJoin_EmptyBuilder(t *testing.T) {
	b := newMovieBuilder(t)
	require.Equal(t, "", b.Join(","))
	require.Equal(t, "", b.String())
	require.Empty(t, b.Fields())
}

func TestJoin_CustomDelimiter(t *testing.T) {
	b := newMovieBuilder(t)
	b.Add(func(m *Movie) any { return &m.Id }).
		Add(func(m *Movie) any { return &m.Name })
	require.Equal(t, "Id|Name", b.Join("|"))
}

func TestFields_ReturnsCopy(t *testing.T) {
	b := newMovieBuilder(t)
	b.Add(func(m *Movie) any { return &m.Id })

	got := b.Fields()
	got[0] = "mutated"
	require.Equal(t, []string{"Id"}, b.Fields())
}

func TestForeignField_PromotedSelection(t *testing.T) {
	cfg := config.DefaultConfig()
	b := selection.New[Derived](newResolver(cfg), cfg)

	// &d.Id and &d.Base.Id are the same address: a field declared on Base,
	// not on Derived. Exact-type check, not assignability: legal Go access,
	// still rejected.
	err := b.TryAdd(func(d *Derived) any { return &d.Id })
	require.ErrorIs(t, err, resolver.ErrForeignField)

	var ferr *resolver.ForeignFieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, reflect.TypeOf(Derived{}), ferr.Model)
	assert.Equal(t, reflect.TypeOf(Base{}), ferr.Declaring)
	assert.Equal(t, "Id", ferr.Field)

	// Both type identifiers surface in the message.
	assert.Contains(t, err.Error(), "Derived")
	assert.Contains(t, err.Error(), "Base")

	// Explicit path spelling resolves identically.
	err = b.TryAdd(func(d *Derived) any { return &d.Base.Note })
	require.ErrorIs(t, err, resolver.ErrForeignField)

	// Nothing accumulated by the failed calls.
	require.Zero(t, b.Len())
}

func TestForeignField_EmbeddedFieldItselfIsDirect(t *testing.T) {
	cfg := config.DefaultConfig()
	b := selection.New[Derived](newResolver(cfg), cfg)

	// The embedded field is declared on Derived; selecting it as a whole
	// is fine even though its members are foreign.
	b.Add(func(d *Derived) any { return &d.Base })
	require.Equal(t, []string{"Base"}, b.Fields())
}

func TestForeignField_FluentPanics(t *testing.T) {
	cfg := config.DefaultConfig()
	b := selection.New[Derived](newResolver(cfg), cfg)

	require.Panics(t, func() {
		b.Add(func(d *Derived) any { return &d.Id })
	})
	require.Zero(t, b.Len())
}

func TestInvalidSelector_Shapes(t *testing.T) {
	b := newMovieBuilder(t)

	cases := []struct {
		name string
		sel  selection.Selector[Movie]
	}{
		{"nil selector", nil},
		{"non-pointer return", func(m *Movie) any { return m.Name }},
		{"nil return", func(m *Movie) any { return nil }},
		{"model pointer itself", func(m *Movie) any { return m }},
		{"pointer outside model", func(m *Movie) any { g := Base{}; return &g.Id }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := b.TryAdd(tc.sel)
			require.ErrorIs(t, err, resolver.ErrInvalidSelector)
			require.Zero(t, b.Len())
		})
	}
}

func TestInvalidSelector_NestedNamedStruct(t *testing.T) {
	type Inner struct{ X int }
	type Outer struct {
		Id    int
		Inner Inner
	}

	cfg := config.DefaultConfig()
	b := selection.New[Outer](newResolver(cfg), cfg)

	// No dotted paths: members of a named nested struct are not selectable.
	err := b.TryAdd(func(o *Outer) any { return &o.Inner.X })
	require.ErrorIs(t, err, resolver.ErrInvalidSelector)

	// The nested field itself is a direct field, so it is fine.
	b.Add(func(o *Outer) any { return &o.Inner })
	require.Equal(t, []string{"Inner"}, b.Fields())
}

func TestErrorLeavesStateUntouched(t *testing.T) {
	b := newMovieBuilder(t)
	b.Add(func(m *Movie) any { return &m.Name })

	err := b.TryAdd(func(m *Movie) any { return m.Id })
	require.Error(t, err)
	require.Equal(t, []string{"Name"}, b.Fields())
}

func TestPointerModelParameter(t *testing.T) {
	cfg := config.DefaultConfig()
	b := selection.New[*Movie](newResolver(cfg), cfg)

	b.Add(func(m **Movie) any { return &(*m).Name })
	require.Equal(t, []string{"Name"}, b.Fields())
	require.Equal(t, reflect.TypeOf(Movie{}), b.Model())
}

func TestAddNamed_And_RemoveNamed(t *testing.T) {
	b := newMovieBuilder(t)

	b.AddNamed("Name").AddNamed("GenreId").AddNamed("Name")
	require.Equal(t, "Name,GenreId", b.String())

	b.RemoveNamed("Name")
	require.Equal(t, "GenreId", b.String())

	require.Panics(t, func() { b.AddNamed("NoSuchField") })
	require.Equal(t, "GenreId", b.String())
}

func TestAddNamed_PromotedIsForeign(t *testing.T) {
	cfg := config.DefaultConfig()
	b := selection.New[Derived](newResolver(cfg), cfg)

	require.Panics(t, func() { b.AddNamed("Id") })
	require.Zero(t, b.Len())
}

func TestContains_And_Len(t *testing.T) {
	b := newMovieBuilder(t)
	b.Add(func(m *Movie) any { return &m.Id })

	assert.True(t, b.Contains("Id"))
	assert.False(t, b.Contains("Name"))
	assert.Equal(t, 1, b.Len())
}

func TestTagNaming(t *testing.T) {
	cfg := config.NewConfig(config.WithTagName("json"))
	b := selection.New[Tagged](newResolver(cfg), cfg)

	got := b.SelectAll().Fields()
	// "-" and missing tags fall back to the declared Go name.
	require.Equal(t, []string{"id", "name", "Internal", "Plain"}, got)

	name, err := b.FieldName(func(m *Tagged) any { return &m.Name })
	require.NoError(t, err)
	require.Equal(t, "name", name)
}

func TestNew_PanicsOnProgrammerErrors(t *testing.T) {
	cfg := config.DefaultConfig()

	require.Panics(t, func() { selection.New[Movie](nil, cfg) })
	require.Panics(t, func() { selection.New[int](newResolver(cfg), cfg) })
}
