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

package resolver

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNilCatalog is returned when a resolver is constructed without a catalog.
	ErrNilCatalog = errors.New("fsx(resolver): nil catalog provided")
	// ErrInvalidSelector indicates that a selector does not reduce to a
	// single directly declared field of the model type. All shape failures
	// wrap this sentinel, so callers can match with errors.Is.
	ErrInvalidSelector = errors.New("fsx(resolver): selector does not address a declared field")
	// ErrForeignField indicates that a selector resolved to a field whose
	// declaring type is not exactly the model type. The concrete error is
	// always a *ForeignFieldError carrying both types.
	ErrForeignField = errors.New("fsx(resolver): field declared on foreign type")
)

// ForeignFieldError reports a selector that resolved to a field declared on
// a type other than the model type, typically a field promoted from an
// embedded struct. It unwraps to ErrForeignField.
type ForeignFieldError struct {
	// Model is the model struct type the selector was checked against.
	Model reflect.Type
	// Declaring is the type that actually declares the field.
	Declaring reflect.Type
	// Field is the declared Go field name.
	Field string
}

// Error formats the mismatch with both type identifiers.
func (e *ForeignFieldError) Error() string {
	return fmt.Sprintf("fsx(resolver): field %q is declared on %v, not on %v",
		e.Field, e.Declaring, e.Model)
}

// Unwrap makes the error match ErrForeignField under errors.Is.
func (e *ForeignFieldError) Unwrap() error {
	return ErrForeignField
}
