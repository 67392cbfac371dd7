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

import "errors"

var (
	// ErrConstruction indicates a declared cerealizer type could not be
	// instantiated. Non-retryable; surfaced to the caller of Resolve.
	ErrConstruction = errors.New("cereal: cerealizer construction failed")

	// ErrClassNotFound indicates a discriminator name did not resolve to a
	// registered type. Non-retryable; surfaced to the caller of runtime
	// resolution.
	ErrClassNotFound = errors.New("cereal: runtime class not found")

	// ErrConversion indicates a shape mismatch, a missing required field, or
	// a malformed scalar during ToCereal/FromCereal. Surfaced to the
	// immediate caller; never silently defaulted.
	ErrConversion = errors.New("cereal: conversion failed")

	// ErrUnsupportedType indicates a type outside the convertible universe
	// (func, chan, unsafe pointers).
	ErrUnsupportedType = errors.New("cereal: unsupported type")
)
