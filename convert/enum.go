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
	"encoding"
	"fmt"
	"reflect"

	"github.com/kpears201/cereal/apis"
)

var (
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// IsEnum reports whether t is an enumeration type: a named scalar-kind type
// whose values marshal to text and whose pointer unmarshals from text, i.e.
// a named constant set with stringer-style text codecs.
func IsEnum(t reflect.Type) bool {
	if t == nil || t.Name() == "" {
		return false
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return false
	}
	ptr := reflect.PointerTo(t)
	if !t.Implements(textMarshalerType) && !ptr.Implements(textMarshalerType) {
		return false
	}
	return ptr.Implements(textUnmarshalerType)
}

// NewEnumCerealizer constructs an enumeration cerealizer bound to the exact
// type t. Enum cerealizers are deliberately not memoized by the engine;
// callers needing reuse must cache one explicitly.
func NewEnumCerealizer(t reflect.Type) apis.Cerealizer {
	return &EnumCerealizer{typ: t}
}

// EnumCerealizer converts one enumeration type to and from its text form.
type EnumCerealizer struct {
	typ reflect.Type
}

var _ apis.Cerealizer = (*EnumCerealizer)(nil)

// ToCereal renders v as its marshaled text.
func (c *EnumCerealizer) ToCereal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != c.typ {
		return nil, mismatchErr(v, c.typ)
	}

	m, ok := v.(encoding.TextMarshaler)
	if !ok {
		// Marshaler declared on the pointer receiver.
		nv := reflect.New(c.typ)
		nv.Elem().Set(rv)
		m, ok = nv.Interface().(encoding.TextMarshaler)
		if !ok {
			return nil, mismatchErr(v, c.typ)
		}
	}
	text, err := m.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("cereal(convert): marshal %s: %v: %w", c.typ, err, apis.ErrConversion)
	}
	return string(text), nil
}

// FromCereal parses the text form back into a value of the bound type.
func (c *EnumCerealizer) FromCereal(cereal any, _ reflect.Type) (any, error) {
	if cereal == nil {
		return reflect.Zero(c.typ).Interface(), nil
	}
	s, ok := cereal.(string)
	if !ok {
		return nil, mismatchErr(cereal, c.typ)
	}
	nv := reflect.New(c.typ)
	u, ok := nv.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return nil, mismatchErr(cereal, c.typ)
	}
	if err := u.UnmarshalText([]byte(s)); err != nil {
		return nil, fmt.Errorf("cereal(convert): unmarshal %q into %s: %v: %w", s, c.typ, err, apis.ErrConversion)
	}
	return nv.Elem().Interface(), nil
}
