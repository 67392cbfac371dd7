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
	"fmt"
	"reflect"

	"github.com/kpears201/cereal/apis"
)

// NewArrayCerealizer constructs a cerealizer for the fixed-size array type
// typ, delegating element conversion to elem. The element type is kept so
// arrays can be reconstructed on the reverse path.
func NewArrayCerealizer(elem apis.Cerealizer, typ reflect.Type) apis.Cerealizer {
	return &ArrayCerealizer{typ: typ, elemType: typ.Elem(), elem: elem}
}

// ArrayCerealizer converts one fixed-size array type. Constructed per
// resolution call; the engine does not memoize it.
type ArrayCerealizer struct {
	typ      reflect.Type
	elemType reflect.Type
	elem     apis.Cerealizer
}

var _ apis.Cerealizer = (*ArrayCerealizer)(nil)

func (c *ArrayCerealizer) ToCereal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != c.typ {
		return nil, mismatchErr(v, c.typ)
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		cv, err := c.elem.ToCereal(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = cv
	}
	return out, nil
}

func (c *ArrayCerealizer) FromCereal(cereal any, _ reflect.Type) (any, error) {
	if cereal == nil {
		return reflect.Zero(c.typ).Interface(), nil
	}
	list, ok := cereal.([]any)
	if !ok {
		return nil, mismatchErr(cereal, c.typ)
	}
	if len(list) != c.typ.Len() {
		return nil, fmt.Errorf("cereal(convert): %d elements for %s: %w", len(list), c.typ, apis.ErrConversion)
	}
	out := reflect.New(c.typ).Elem()
	for i, item := range list {
		ev, err := c.elem.FromCereal(item, c.elemType)
		if err != nil {
			return nil, err
		}
		if err := setValue(out.Index(i), ev); err != nil {
			return nil, err
		}
	}
	return out.Interface(), nil
}
