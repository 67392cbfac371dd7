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

// Package registry implements the class table: a closed, bidirectional
// mapping between reflect.Type and wire-level type names. Polymorphic
// deserialization resolves discriminator names against this table only;
// there is no open-ended runtime class lookup.
package registry

import (
	"errors"
	"reflect"
	"sync"

	"github.com/kpears201/cereal/apis"
	"github.com/kpears201/cereal/config"
	uref "github.com/kpears201/cereal/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("cereal(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("cereal(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to re-register a type
	// with a different name, or a name with a different type.
	ErrConflictingRegistration = errors.New("cereal(registry): conflicting class registration")
)

// New constructs a Table that normalizes types according to cfg.
// Only MaxDepth is used here (tag and discriminator settings are irrelevant).
func New(cfg apis.Config) apis.Table {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	return &table{cfg: cfg}
}

// table is a simple Table implementation backed by a pair of sync.Maps.
type table struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and the counter.
	mu sync.Mutex
	// byType maps reflect.Type to registered name.
	byType sync.Map // map[reflect.Type]string
	// byName maps registered name to reflect.Type.
	byName sync.Map // map[string]reflect.Type
	// count tracks the number of registered entries.
	count int
}

// Register associates the nearest named type of t with the given name.
// It is idempotent for the same (type, name) pair and rejects conflicts in
// either direction.
func (r *table) Register(t reflect.Type, name string) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}

	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if done, err := r.check(b, name); done {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if done, err := r.check(b, name); done {
		return err
	}

	r.byType.Store(b, name)
	r.byName.Store(name, b)
	r.count++
	return nil
}

// check reports whether the (type, name) pair is already settled: done is
// true when no store is needed, with err nil for an idempotent repeat and
// non-nil for a conflict.
func (r *table) check(b reflect.Type, name string) (done bool, err error) {
	if old, ok := r.byType.Load(b); ok {
		if old.(string) == name {
			return true, nil
		}
		return true, ErrConflictingRegistration
	}
	if old, ok := r.byName.Load(name); ok && old.(reflect.Type) != b {
		return true, ErrConflictingRegistration
	}
	return false, nil
}

// RegisterType registers t under its derived full-path name.
func (r *table) RegisterType(t reflect.Type) (string, error) {
	if t == nil {
		return "", ErrNilType
	}
	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return "", err
	}
	name, err := uref.DerivedName(b)
	if err != nil {
		return "", err
	}
	return name, r.Register(b, name)
}

// TypeFor returns the type registered under name, if present.
func (r *table) TypeFor(name string) (reflect.Type, bool) {
	if name == "" {
		return nil, false
	}
	if v, ok := r.byName.Load(name); ok {
		return v.(reflect.Type), true
	}
	return nil, false
}

// NameFor returns a name for a type if present. Pointer chains resolve to
// their nearest named type.
func (r *table) NameFor(t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return "", false
	}
	if v, ok := r.byType.Load(nt); ok {
		return v.(string), true
	}
	return "", false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *table) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.byType.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type: key.(reflect.Type),
			Name: value.(string),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *table) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *table) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType = sync.Map{}
	r.byName = sync.Map{}
	r.count = 0
}
