/*
   Copyright 2025 The Cereal Authors.

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

package apis

import "reflect"

// Table is the closed class-name table: a bidirectional mapping between
// reflect.Type and wire-level type names. It replaces open-ended runtime
// class lookup: a discriminator name resolves only to a pre-registered type.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Table interface {
	// Register associates a (nearest named) reflect.Type with a fixed name.
	// Implementations should be idempotent; conflicting re-registrations
	// in either direction return an error.
	Register(t reflect.Type, name string) error
	// RegisterType registers t under its derived full-path name and returns
	// that name.
	RegisterType(t reflect.Type) (string, error)
	// TypeFor returns the type registered under name, if present.
	TypeFor(name string) (t reflect.Type, ok bool)
	// NameFor returns the name registered for a type, if present.
	NameFor(t reflect.Type) (name string, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, name) association in a Table snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Name is the associated wire name.
	Name string
}
