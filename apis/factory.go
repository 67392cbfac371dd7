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

// Factory is the resolution engine contract: it maps type descriptors to
// Cerealizer instances, constructing and memoizing them lazily, and resolves
// runtime-discovered classes named by a discriminator key inside generic
// values.
//
// A Factory is safe for concurrent use. Resolution either completes or fails
// synchronously; there are no retries and no partial results.
type Factory interface {
	// Resolve returns a cerealizer for t, constructing and caching one if
	// absent. Construction failures wrap ErrConstruction; types outside the
	// supported set wrap ErrUnsupportedType.
	Resolve(t reflect.Type) (Cerealizer, error)

	// RuntimeType inspects a generic value for the discriminator key and
	// resolves its textual value against the class table. It returns
	// (nil, nil) when cereal is not map-shaped, lacks the key, or carries a
	// non-textual value; it wraps ErrClassNotFound when the name is unknown.
	RuntimeType(cereal any) (reflect.Type, error)

	// RuntimeCerealizer resolves the runtime class of cereal and returns a
	// cerealizer for it, or def when no runtime class is declared.
	RuntimeCerealizer(cereal any, def Cerealizer) (Cerealizer, error)

	// RegisterCerealizer installs c as the permanent converter for t,
	// taking precedence over every classification branch.
	RegisterCerealizer(t reflect.Type, c Cerealizer)

	// CacheInstance stores c in the instance cache, keyed by its own type,
	// attaching the factory if c is FactoryAware.
	CacheInstance(c Cerealizer)

	// CachedInstance returns the instance cached under the cerealizer type
	// ct, or nil if none has been cached.
	CachedInstance(ct reflect.Type) Cerealizer

	// Classes returns the class table used for runtime name resolution.
	Classes() Table

	// Config returns the immutable configuration of this factory.
	Config() Config
}

// ResolveFunc resolves a cerealizer for a type. The engine hands an internal
// ResolveFunc to cerealizers whose initialization must recurse into nested
// types while their own construction is still in progress; the public
// Factory.Resolve must not be called from initialization code.
type ResolveFunc func(t reflect.Type) (Cerealizer, error)
