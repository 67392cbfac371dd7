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

// Package cereal resolves runtime types to converters ("cerealizers") that
// transform values to and from a generic, wire-neutral representation:
// a tree built only from scalars, []any sequences, and map[string]any.
// Encoding that representation to bytes (JSON text, etc.) is somebody
// else's job; cereal only decides which converter applies to which type and
// builds converters lazily.
//
// # Design
//
// The core is the Factory. It owns two caches:
//
//   - the type map: reflect.Type -> cerealizer instance. Seeded with a fixed
//     leaf set (builtin scalars, time.Time, the dynamic converter for any),
//     extended lazily as unseen types are resolved, and writable through
//     RegisterCerealizer for explicit overrides.
//
//   - the instance cache: cerealizer type -> cerealizer instance, for
//     converters that must be shared as configured singletons (the
//     byte-slice converter, the dynamic converter).
//
// A type is classified on first resolution by an ordered chain: declared
// cerealizer class, enumeration, byte slice, array, slice, map,
// self-convertible, interface, pointer, named scalar, and finally the
// reflective struct fallback. Structural converters are registered in the
// type map *before* their initialization completes. That ordering matters:
// initialization is exactly where nested and self-referencing types resolve
// recursively, and a tree node containing a sequence of its own type
// terminates only because the half-built converter is already visible.
//
// # Polymorphism
//
// Two independent extension mechanisms exist:
//
//   - A type may declare its own converter by implementing
//     apis.CerealClasser; the declared converter type is instantiated once
//     and shared through the instance cache.
//
//   - A map-shaped generic value may carry a reserved discriminator key
//     (default "--class") naming its concrete type. RuntimeType and
//     RuntimeCerealizer resolve that name against the class table, a closed
//     and explicitly populated registry (registry package), since Go has no
//     open-ended runtime class lookup. Unknown names fail closed with
//     apis.ErrClassNotFound.
//
// # Concurrency model
//
// Resolution is read-mostly: a resolved type costs one RLock map probe.
// First resolution of an unseen type takes the factory's write lock,
// double-checks, and constructs under that lock; recursive construction-time
// resolution stays inside the same lock via an internal resolver, so at most
// one converter instance is ever durably cached per type and no caller
// observes a partially initialized converter from another goroutine.
// Conversions themselves (ToCereal/FromCereal) run outside the engine lock.
//
// # Usage
//
//	f := cereal.New()
//	f.Classes().Register(reflect.TypeOf(Movie{}), "catalog.movie")
//
//	c, err := f.ToCereal(Movie{Title: "Heat"})   // map[string]any
//	v, err := f.FromCereal(c, reflect.TypeOf(Movie{}))
//
// Every engine operation is fallible and surfaces errors synchronously;
// there are no retries and no partial recovery.
package cereal
