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

// NewPtrCerealizer constructs a cerealizer for the pointer type typ,
// delegating to elem for the pointed-to value. Nil pointers convert to nil
// and back.
func NewPtrCerealizer(elem apis.Cerealizer, typ reflect.Type) apis.Cerealizer {
	return &PtrCerealizer{typ: typ, elem: elem}
}

// PtrCerealizer converts one pointer type.
type PtrCerealizer struct {
	typ  reflect.Type
	elem apis.Cerealizer
}

var _ apis.Cerealizer = (*PtrCerealizer)(nil)

func (c *PtrCerealizer) ToCereal(v any) (any, error) {
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
	return c.elem.ToCereal(rv.Elem().Interface())
}

func (c *PtrCerealizer) FromCereal(cereal any, _ reflect.Type) (any, error) {
	if cereal == nil {
		return reflect.Zero(c.typ).Interface(), nil
	}
	ev, err := c.elem.FromCereal(cereal, c.typ.Elem())
	if err != nil {
		return nil, err
	}
	np := reflect.New(c.typ.Elem())
	if err := setValue(np.Elem(), ev); err != nil {
		return nil, err
	}
	return np.Interface(), nil
}
