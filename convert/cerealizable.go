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

// NewCerealizableCerealizer constructs a cerealizer for the self-convertible
// type typ, i.e. a type whose pointer implements apis.Cerealizable.
func NewCerealizableCerealizer(typ reflect.Type) *CerealizableCerealizer {
	return &CerealizableCerealizer{typ: typ}
}

// CerealizableCerealizer wraps a type that implements the conversion
// contract directly. The factory back-reference is forwarded to instances
// that are themselves FactoryAware, so self-convertible types can resolve
// nested types.
type CerealizableCerealizer struct {
	typ     reflect.Type
	factory apis.Factory
}

var (
	_ apis.Cerealizer   = (*CerealizableCerealizer)(nil)
	_ apis.FactoryAware = (*CerealizableCerealizer)(nil)
)

// IsCerealizable reports whether typ (or its pointer) implements
// apis.Cerealizable.
func IsCerealizable(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	cerealizableType := reflect.TypeOf((*apis.Cerealizable)(nil)).Elem()
	return typ.Implements(cerealizableType) ||
		reflect.PointerTo(typ).Implements(cerealizableType)
}

// SetFactory stores the back-reference.
func (c *CerealizableCerealizer) SetFactory(f apis.Factory) {
	c.factory = f
}

func (c *CerealizableCerealizer) ToCereal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != c.typ {
		return nil, mismatchErr(v, c.typ)
	}

	cz, ok := v.(apis.Cerealizable)
	if !ok {
		// Contract declared on the pointer receiver: work on an
		// addressable copy.
		nv := reflect.New(c.typ)
		nv.Elem().Set(rv)
		cz, ok = nv.Interface().(apis.Cerealizable)
		if !ok {
			return nil, mismatchErr(v, c.typ)
		}
	}
	c.forward(cz)
	return cz.ToCereal()
}

func (c *CerealizableCerealizer) FromCereal(cereal any, _ reflect.Type) (any, error) {
	if cereal == nil {
		return reflect.Zero(c.typ).Interface(), nil
	}
	nv := reflect.New(c.typ)
	cz, ok := nv.Interface().(apis.Cerealizable)
	if !ok {
		return nil, mismatchErr(cereal, c.typ)
	}
	c.forward(cz)
	if err := cz.FromCereal(cereal); err != nil {
		return nil, err
	}
	return nv.Elem().Interface(), nil
}

// forward hands the factory to instances that want it.
func (c *CerealizableCerealizer) forward(v any) {
	if c.factory == nil {
		return
	}
	if fa, ok := v.(apis.FactoryAware); ok {
		fa.SetFactory(c.factory)
	}
}
