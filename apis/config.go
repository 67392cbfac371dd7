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

// Config carries read-only knobs that influence resolution and conversion.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// TagName is the struct tag key consulted during reflective field
	// discovery (e.g. `cereal:"name,omitempty"`).
	TagName string

	// DiscriminatorKey is the reserved property name inside map-shaped
	// generic values that carries the wire name of the concrete type.
	DiscriminatorKey string

	// TimeLayout is the layout used to render and parse time values.
	TimeLayout string

	// MaxDepth bounds pointer unwrapping and classification recursion.
	// Acts as a safety guard against pathological nesting.
	MaxDepth int
}
