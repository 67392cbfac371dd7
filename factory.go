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

package cereal

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/kpears201/cereal/apis"
	"github.com/kpears201/cereal/config"
	"github.com/kpears201/cereal/convert"
	"github.com/kpears201/cereal/registry"
)

// Factory is the resolution engine: it owns the type map and the instance
// cache, classifies types on first resolution, and memoizes the structural
// cerealizers it constructs. One Factory instance is intended for concurrent
// use by many callers; its caches live for the factory's lifetime (no
// eviction).
type Factory struct {
	cfg     apis.Config
	classes apis.Table

	// mu guards the two caches. Read path is an RLock probe; construction
	// takes the write lock and all construction-time recursion happens
	// under that single lock, so concurrent first resolutions of the same
	// type produce exactly one durable winner.
	mu sync.RWMutex
	// types is the type map: type descriptor -> cerealizer instance.
	types map[reflect.Type]apis.Cerealizer
	// cache is the instance cache: cerealizer type -> cerealizer instance.
	cache map[reflect.Type]apis.Cerealizer
	// pending journals the type-map keys added during the current top-level
	// resolution so a failed graph rolls back whole. Guarded by mu.
	pending []reflect.Type

	scalar  apis.Cerealizer
	dynamic *convert.DynamicCerealizer
}

var _ apis.Factory = (*Factory)(nil)

var (
	anyType  = reflect.TypeOf((*any)(nil)).Elem()
	timeType = reflect.TypeOf(time.Time{})

	byteSliceType           = reflect.TypeOf([]byte(nil))
	byteSliceCerealizerType = reflect.TypeOf(convert.NewByteSliceCerealizer())
)

// builtinScalarTypes is the fixed leaf set seeded into the type map at
// construction.
var builtinScalarTypes = []reflect.Type{
	reflect.TypeOf(""),
	reflect.TypeOf(false),
	reflect.TypeOf(int(0)),
	reflect.TypeOf(int8(0)),
	reflect.TypeOf(int16(0)),
	reflect.TypeOf(int32(0)),
	reflect.TypeOf(int64(0)),
	reflect.TypeOf(uint(0)),
	reflect.TypeOf(uint8(0)),
	reflect.TypeOf(uint16(0)),
	reflect.TypeOf(uint32(0)),
	reflect.TypeOf(uint64(0)),
	reflect.TypeOf(float32(0)),
	reflect.TypeOf(float64(0)),
}

// New constructs a Factory from the given options and seeds the fixed leaf
// cerealizers: builtin scalars, time.Time, the byte-slice instance, and the
// dynamic cerealizer for unconstrained (any) slots.
func New(opts ...config.Option) *Factory {
	return NewWithConfig(config.NewConfig(opts...))
}

// NewWithConfig constructs a Factory from an explicit configuration, e.g.
// one loaded via config.FromYAML.
func NewWithConfig(cfg apis.Config) *Factory {
	cfg = config.Sanitize(cfg)
	f := &Factory{
		cfg:     cfg,
		classes: registry.New(cfg),
		types:   make(map[reflect.Type]apis.Cerealizer),
		cache:   make(map[reflect.Type]apis.Cerealizer),
	}

	f.scalar = convert.NewScalarCerealizer()
	for _, t := range builtinScalarTypes {
		f.types[t] = f.scalar
	}

	f.dynamic = convert.NewDynamicCerealizer()
	f.types[anyType] = f.dynamic

	tc := convert.NewTimeCerealizer(cfg.TimeLayout)
	f.types[timeType] = tc

	f.CacheInstance(f.scalar)
	f.CacheInstance(tc)
	f.CacheInstance(f.dynamic)
	f.CacheInstance(convert.NewByteSliceCerealizer())
	return f
}

// Resolve returns a cerealizer capable of converting values of type t to and
// from the generic representation, constructing and caching one if absent.
func (f *Factory) Resolve(t reflect.Type) (apis.Cerealizer, error) {
	if t == nil {
		return nil, fmt.Errorf("cereal: nil type: %w", apis.ErrUnsupportedType)
	}

	f.mu.RLock()
	c, ok := f.types[t]
	f.mu.RUnlock()
	if ok {
		return c, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.pending = f.pending[:0]
	c, err := f.resolveLocked(t, 0)
	if err != nil {
		// Construction registers structural cerealizers before initializing
		// them; a failure anywhere in the graph must unwind every one of
		// those early registrations, not just the type that failed.
		for _, pt := range f.pending {
			delete(f.types, pt)
		}
	}
	f.pending = f.pending[:0]
	return c, err
}

// registerLocked adds a construction-time type-map entry and journals it for
// rollback should the enclosing resolution fail.
func (f *Factory) registerLocked(t reflect.Type, c apis.Cerealizer) {
	f.types[t] = c
	f.pending = append(f.pending, t)
}

// resolveLocked runs the classification chain. Callers must hold the write
// lock; construction-time recursion (array elements, pointer elements,
// struct fields) re-enters here rather than through Resolve.
func (f *Factory) resolveLocked(t reflect.Type, depth int) (apis.Cerealizer, error) {
	if c, ok := f.types[t]; ok {
		return c, nil
	}
	if depth > f.cfg.MaxDepth {
		return nil, fmt.Errorf("cereal: classification depth exceeded at %s: %w", t, apis.ErrUnsupportedType)
	}
	for _, classify := range classifiers {
		c, ok, err := classify(f, t, depth)
		if err != nil {
			return nil, err
		}
		if ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("cereal: no cerealizer for %s: %w", t, apis.ErrUnsupportedType)
}

// RegisterCerealizer installs c as the permanent cerealizer for t, taking
// precedence over every classification branch from now on.
func (f *Factory) RegisterCerealizer(t reflect.Type, c apis.Cerealizer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types[t] = c
}

// CacheInstance stores c in the instance cache under its own type, attaching
// the factory if c is FactoryAware. This is how cerealizers that need shared
// configured state are made retrievable independent of the data types they
// serve.
func (f *Factory) CacheInstance(c apis.Cerealizer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cacheLocked(c)
}

func (f *Factory) cacheLocked(c apis.Cerealizer) {
	if fa, ok := c.(apis.FactoryAware); ok {
		fa.SetFactory(f)
	}
	f.cache[reflect.TypeOf(c)] = c
}

// CachedInstance returns the instance cached under the cerealizer type ct,
// or nil if none has been cached.
func (f *Factory) CachedInstance(ct reflect.Type) apis.Cerealizer {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cache[ct]
}

// Classes returns the class table used for discriminator resolution.
func (f *Factory) Classes() apis.Table {
	return f.classes
}

// Config returns the factory's immutable configuration.
func (f *Factory) Config() apis.Config {
	return f.cfg
}

// ToCereal resolves a cerealizer for v's type and converts v to the generic
// representation.
func (f *Factory) ToCereal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	c, err := f.Resolve(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}
	return c.ToCereal(v)
}

// FromCereal resolves a cerealizer for t and reconstructs a value of t from
// the generic value cereal.
func (f *Factory) FromCereal(cereal any, t reflect.Type) (any, error) {
	c, err := f.Resolve(t)
	if err != nil {
		return nil, err
	}
	return c.FromCereal(cereal, t)
}
