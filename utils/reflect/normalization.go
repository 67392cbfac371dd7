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

package reflect

import (
	"errors"
	"reflect"

	"github.com/kpears201/cereal/apis"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("cereal(reflect): nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after
	// unwrapping pointers) is not a named type (e.g. anonymous struct,
	// unnamed slice).
	ErrReflectTypeNotNamed = errors.New("cereal(reflect): type has no name")
)

// Normalize unwraps pointer chains up to cfg.MaxDepth and returns the nearest
// named type, or an error if none is found. Unlike classification, naming
// never unwraps slices/maps: a *Node and a **Node share the identity of Node,
// but a []Node does not.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 8
	}

	for i := 0; i < maxDepth && t.Kind() == reflect.Pointer; i++ {
		t = t.Elem()
	}
	if t.Kind() == reflect.Pointer || t.Name() == "" {
		return nil, ErrReflectTypeNotNamed
	}
	return t, nil
}

// DerivedName returns the stable full-path wire name for a named type:
// "full/pkg/path.TypeName", or just the type name for builtins.
func DerivedName(t reflect.Type) (string, error) {
	if t == nil {
		return "", ErrReflectNilType
	}
	if t.Name() == "" {
		return "", ErrReflectTypeNotNamed
	}
	if p := t.PkgPath(); p != "" {
		return p + "." + t.Name(), nil
	}
	return t.Name(), nil
}

// Instantiate builds a zero value of t. For pointer types the pointed-to
// value is allocated, so the result is usable immediately.
func Instantiate(t reflect.Type) (any, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface(), nil
	}
	return reflect.New(t).Elem().Interface(), nil
}
