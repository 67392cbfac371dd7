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

// Cerealizer converts between host values and the generic representation:
// a value tree built only from scalars, []any sequences, and map[string]any.
//
// The two operations are symmetric and meant to round-trip. Implementations
// are not required to be safe for concurrent use unless documented.
type Cerealizer interface {
	// ToCereal produces the generic representation of v.
	ToCereal(v any) (any, error)

	// FromCereal reconstructs a host value of type t from the generic value
	// cereal. Implementations that are bound to a single concrete type may
	// ignore t.
	FromCereal(cereal any, t reflect.Type) (any, error)
}

// FactoryAware is an optional capability: a Cerealizer that needs to resolve
// nested types at conversion time implements it to receive a back-reference
// to the owning Factory. The factory attaches itself whenever it constructs
// or caches such a cerealizer.
type FactoryAware interface {
	// SetFactory stores the back-reference. Called before first conversion.
	SetFactory(f Factory)
}

// Cerealizable marks a type that implements the conversion contract directly
// rather than relying on a structural or reflective cerealizer.
//
// FromCereal populates the receiver, so it is expected on a pointer receiver.
type Cerealizable interface {
	// ToCereal produces the generic representation of the receiver.
	ToCereal() (any, error)
	// FromCereal populates the receiver from the generic value cereal.
	FromCereal(cereal any) error
}

// CerealClasser lets a type declare the cerealizer type that must serve it,
// checked before any structural classification. The engine looks the declared
// type up in its instance cache and instantiates it (zero-argument) on a miss.
type CerealClasser interface {
	// CerealClass returns the reflect.Type of a Cerealizer implementation.
	CerealClass() reflect.Type
}
