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

// Package convert provides the cerealizer implementations resolved by the
// engine: scalar, time, byte-slice, enumeration, array, collection, map,
// pointer, self-convertible, reflective struct, and dynamic converters.
//
// Converters that resolve nested types at conversion time implement
// apis.FactoryAware and receive their back-reference from the engine when
// constructed or cached. None of the converters are safe for concurrent
// mutation during initialization; once initialized they are read-only and
// safe for concurrent conversions.
package convert
