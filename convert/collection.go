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

package convert

import (
	"reflect"

	"github.com/kpears201/cereal/apis"
)

// NewCollectionCerealizer constructs a cerealizer bound to the concrete
// slice type typ. elem is the fallback element cerealizer (the dynamic
// cerealizer) used for interface elements or until a factory is attached.
//
// The engine registers collection cerealizers in its type map before
// attaching the factory; element resolution is deferred to conversion time,
// which is what keeps self-referencing slice types from recursing during
// construction.
func NewCollectionCerealizer(elem apis.Cerealizer, typ reflect.Type) *CollectionCerealizer {
	return &CollectionCerealizer{typ: typ, elem: elem}
}

// CollectionCerealizer converts one concrete slice type, delegating element
// conversion back into the factory.
type CollectionCerealizer struct {
	typ     reflect.Type
	elem    apis.Cerealizer
	factory apis.Factory
}

var (
	_ apis.Cerealizer   = (*CollectionCerealizer)(nil)
	_ apis.FactoryAware = (*CollectionCerealizer)(nil)
)

// SetFactory stores the back-reference used for element resolution.
func (c *CollectionCerealizer) SetFactory(f apis.Factory) {
	c.factory = f
}

// elemCerealizer picks the element delegate: interface elements always go
// through the fallback (runtime-typed) cerealizer, concrete elements resolve
// through the factory.
func (c *CollectionCerealizer) elemCerealizer() (apis.Cerealizer, reflect.Type, error) {
	et := c.typ.Elem()
	if et.Kind() == reflect.Interface || c.factory == nil {
		return c.elem, et, nil
	}
	cz, err := c.factory.Resolve(et)
	if err != nil {
		return nil, nil, err
	}
	return cz, et, nil
}

func (c *CollectionCerealizer) ToCereal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != c.typ {
		return nil, mismatchErr(v, c.typ)
	}
	if rv.IsNil() {
		return nil, nil
	}
	cz, _, err := c.elemCerealizer()
	if err != nil {
		return nil, err
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		cv, err := cz.ToCereal(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = cv
	}
	return out, nil
}

func (c *CollectionCerealizer) FromCereal(cereal any, _ reflect.Type) (any, error) {
	if cereal == nil {
		return reflect.Zero(c.typ).Interface(), nil
	}
	list, ok := cereal.([]any)
	if !ok {
		return nil, mismatchErr(cereal, c.typ)
	}
	cz, et, err := c.elemCerealizer()
	if err != nil {
		return nil, err
	}
	out := reflect.MakeSlice(c.typ, len(list), len(list))
	for i, item := range list {
		ev, err := cz.FromCereal(item, et)
		if err != nil {
			return nil, err
		}
		if err := setValue(out.Index(i), ev); err != nil {
			return nil, err
		}
	}
	return out.Interface(), nil
}
