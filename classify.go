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

	"github.com/kpears201/cereal/apis"
	"github.com/kpears201/cereal/convert"
	uref "github.com/kpears201/cereal/utils/reflect"
)

// classifier is one step of the classification chain. It returns
// (cerealizer, true, nil) when it handles t, (nil, false, nil) to fall
// through to the next step, or an error to abort the whole resolution.
type classifier func(f *Factory, t reflect.Type, depth int) (apis.Cerealizer, bool, error)

// classifiers is the ordered classification chain; the first step that
// handles a type wins. The structural steps (collection, map, cerealizable,
// struct) register their cerealizer in the type map before any further
// initialization; self-referencing type graphs terminate only because the
// in-progress cerealizer is already visible to the recursion.
//
// Assigned in init: several steps recurse through resolveLocked, which
// ranges over this slice, and a composite literal here would form an
// initialization cycle.
var classifiers []classifier

func init() {
	classifiers = []classifier{
		byCerealClass,
		byEnum,
		byByteSlice,
		byArray,
		byCollection,
		byMap,
		byCerealizable,
		byInterface,
		byPointer,
		byScalar,
		byStruct,
	}
}

var cerealClasserType = reflect.TypeOf((*apis.CerealClasser)(nil)).Elem()

// byCerealClass handles types that declare their own cerealizer type via
// the CerealClasser capability: the declared type is looked up in the
// instance cache and instantiated reflectively on a miss.
func byCerealClass(f *Factory, t reflect.Type, _ int) (apis.Cerealizer, bool, error) {
	ct, ok := cerealClassOf(t)
	if !ok {
		return nil, false, nil
	}
	if c, ok := f.cache[ct]; ok {
		return c, true, nil
	}
	v, err := uref.Instantiate(ct)
	if err != nil {
		return nil, false, fmt.Errorf("cereal: instantiate %s: %v: %w", ct, err, apis.ErrConstruction)
	}
	c, ok := v.(apis.Cerealizer)
	if !ok {
		return nil, false, fmt.Errorf("cereal: %s declared by %s is not a Cerealizer: %w", ct, t, apis.ErrConstruction)
	}
	f.cacheLocked(c)
	return c, true, nil
}

// cerealClassOf invokes the CerealClasser capability on a zero value of t.
func cerealClassOf(t reflect.Type) (reflect.Type, bool) {
	switch {
	case t.Implements(cerealClasserType):
		return reflect.Zero(t).Interface().(apis.CerealClasser).CerealClass(), true
	case t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(cerealClasserType):
		return reflect.New(t).Interface().(apis.CerealClasser).CerealClass(), true
	default:
		return nil, false
	}
}

// byEnum handles enumeration types. Enum cerealizers are constructed per
// resolution and deliberately not memoized in the type map.
func byEnum(_ *Factory, t reflect.Type, _ int) (apis.Cerealizer, bool, error) {
	if !convert.IsEnum(t) {
		return nil, false, nil
	}
	return convert.NewEnumCerealizer(t), true, nil
}

// byByteSlice returns the single shared byte-sequence cerealizer from the
// instance cache.
func byByteSlice(f *Factory, t reflect.Type, _ int) (apis.Cerealizer, bool, error) {
	if t != byteSliceType {
		return nil, false, nil
	}
	return f.cache[byteSliceCerealizerType], true, nil
}

// byArray handles fixed-size arrays: the element cerealizer is resolved
// eagerly and wrapped. Array cerealizers are not memoized.
func byArray(f *Factory, t reflect.Type, depth int) (apis.Cerealizer, bool, error) {
	if t.Kind() != reflect.Array {
		return nil, false, nil
	}
	elem, err := f.resolveLocked(t.Elem(), depth+1)
	if err != nil {
		return nil, false, err
	}
	return convert.NewArrayCerealizer(elem, t), true, nil
}

// byCollection handles slice types: registered before use, with element
// resolution deferred to conversion time through the factory back-reference.
func byCollection(f *Factory, t reflect.Type, _ int) (apis.Cerealizer, bool, error) {
	if t.Kind() != reflect.Slice {
		return nil, false, nil
	}
	c := convert.NewCollectionCerealizer(f.dynamic, t)
	f.registerLocked(t, c)
	c.SetFactory(f)
	return c, true, nil
}

// byMap handles map types: registered before use, values resolved at
// conversion time.
func byMap(f *Factory, t reflect.Type, _ int) (apis.Cerealizer, bool, error) {
	if t.Kind() != reflect.Map {
		return nil, false, nil
	}
	c := convert.NewMapCerealizer(f.dynamic, t)
	f.registerLocked(t, c)
	c.SetFactory(f)
	return c, true, nil
}

// byCerealizable handles self-convertible types. Registration precedes the
// factory attachment so recursive resolution triggered by the type's own
// conversion logic terminates.
func byCerealizable(f *Factory, t reflect.Type, _ int) (apis.Cerealizer, bool, error) {
	if t.Kind() == reflect.Pointer || !convert.IsCerealizable(t) {
		return nil, false, nil
	}
	c := convert.NewCerealizableCerealizer(t)
	f.registerLocked(t, c)
	c.SetFactory(f)
	return c, true, nil
}

// byInterface routes every interface type, including any, to the shared
// dynamic cerealizer: the concrete class travels inside the generic value.
func byInterface(f *Factory, t reflect.Type, _ int) (apis.Cerealizer, bool, error) {
	if t.Kind() != reflect.Interface {
		return nil, false, nil
	}
	f.registerLocked(t, f.dynamic)
	return f.dynamic, true, nil
}

// byPointer handles pointer types: the element is resolved first so that a
// *T inside T finds T already registered, then the wrapper is memoized. The
// map is re-checked after element resolution because that recursion may have
// already produced the wrapper.
func byPointer(f *Factory, t reflect.Type, depth int) (apis.Cerealizer, bool, error) {
	if t.Kind() != reflect.Pointer {
		return nil, false, nil
	}
	elem, err := f.resolveLocked(t.Elem(), depth+1)
	if err != nil {
		return nil, false, err
	}
	if c, ok := f.types[t]; ok {
		return c, true, nil
	}
	c := convert.NewPtrCerealizer(elem, t)
	f.registerLocked(t, c)
	return c, true, nil
}

// byScalar memoizes the shared scalar cerealizer for named scalar types
// (the builtins are seeded at construction).
func byScalar(f *Factory, t reflect.Type, _ int) (apis.Cerealizer, bool, error) {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		f.registerLocked(t, f.scalar)
		return f.scalar, true, nil
	default:
		return nil, false, nil
	}
}

// byStruct is the reflective fallback. The cerealizer must be in the type
// map before Initialize runs: field discovery recurses into field types and
// a self-referencing struct would otherwise never terminate. A failed
// initialization propagates its error and the engine rolls back every
// registration journaled during the resolution, including the pointer and
// slice wrappers built around the half-initialized cerealizer.
func byStruct(f *Factory, t reflect.Type, _ int) (apis.Cerealizer, bool, error) {
	if t.Kind() != reflect.Struct {
		return nil, false, nil
	}
	c := convert.NewStructCerealizer(t, f.cfg)
	f.registerLocked(t, c)
	c.SetFactory(f)
	if err := c.Initialize(func(ft reflect.Type) (apis.Cerealizer, error) {
		return f.resolveLocked(ft, 0)
	}); err != nil {
		return nil, false, err
	}
	return c, true, nil
}
