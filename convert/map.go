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

// NewMapCerealizer constructs a cerealizer bound to the concrete map type
// typ. Keys must have string kind or marshal to text. elem is the fallback
// value cerealizer (the dynamic cerealizer) used for interface values or
// until a factory is attached.
func NewMapCerealizer(elem apis.Cerealizer, typ reflect.Type) *MapCerealizer {
	return &MapCerealizer{typ: typ, elem: elem}
}

// MapCerealizer converts one concrete map type to and from map[string]any.
//
// On the reverse path the reserved discriminator key is treated as routing
// metadata and stripped only for map types registered in the class table,
// the only map shapes the dynamic cerealizer ever stamps. For plain data
// maps the key is an ordinary entry and round-trips untouched.
type MapCerealizer struct {
	typ     reflect.Type
	elem    apis.Cerealizer
	factory apis.Factory
}

var (
	_ apis.Cerealizer   = (*MapCerealizer)(nil)
	_ apis.FactoryAware = (*MapCerealizer)(nil)
)

// SetFactory stores the back-reference used for value resolution.
func (c *MapCerealizer) SetFactory(f apis.Factory) {
	c.factory = f
}

func (c *MapCerealizer) valueCerealizer() (apis.Cerealizer, reflect.Type, error) {
	vt := c.typ.Elem()
	if vt.Kind() == reflect.Interface || c.factory == nil {
		return c.elem, vt, nil
	}
	cz, err := c.factory.Resolve(vt)
	if err != nil {
		return nil, nil, err
	}
	return cz, vt, nil
}

// discriminatorKey returns the reserved key to strip when rebuilding the
// map, or "" when every key is data. Only class-registered map types can
// carry the dynamic cerealizer's stamp.
func (c *MapCerealizer) discriminatorKey() string {
	if c.factory == nil {
		return ""
	}
	if _, ok := c.factory.Classes().NameFor(c.typ); !ok {
		return ""
	}
	return c.factory.Config().DiscriminatorKey
}

func (c *MapCerealizer) ToCereal(v any) (any, error) {
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
	cz, _, err := c.valueCerealizer()
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := keyToString(iter.Key())
		if err != nil {
			return nil, err
		}
		cv, err := cz.ToCereal(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out[key] = cv
	}
	return out, nil
}

func (c *MapCerealizer) FromCereal(cereal any, _ reflect.Type) (any, error) {
	if cereal == nil {
		return reflect.Zero(c.typ).Interface(), nil
	}
	m, ok := cereal.(map[string]any)
	if !ok {
		return nil, mismatchErr(cereal, c.typ)
	}
	cz, vt, err := c.valueCerealizer()
	if err != nil {
		return nil, err
	}
	skip := c.discriminatorKey()
	out := reflect.MakeMapWithSize(c.typ, len(m))
	for key, item := range m {
		if skip != "" && key == skip {
			continue
		}
		kv, err := stringToKey(key, c.typ.Key())
		if err != nil {
			return nil, err
		}
		ev, err := cz.FromCereal(item, vt)
		if err != nil {
			return nil, err
		}
		mv := reflect.New(vt).Elem()
		if err := setValue(mv, ev); err != nil {
			return nil, err
		}
		out.SetMapIndex(kv, mv)
	}
	return out.Interface(), nil
}

// keyToString renders a map key as a string, via its kind or TextMarshaler.
func keyToString(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if m, ok := k.Interface().(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return "", fmt.Errorf("cereal(convert): marshal map key: %v: %w", err, apis.ErrConversion)
		}
		return string(text), nil
	}
	return "", fmt.Errorf("cereal(convert): unsupported map key type %s: %w", k.Type(), apis.ErrConversion)
}

// stringToKey rebuilds a map key of type kt from its string form.
func stringToKey(s string, kt reflect.Type) (reflect.Value, error) {
	if kt.Kind() == reflect.String {
		return reflect.ValueOf(s).Convert(kt), nil
	}
	nv := reflect.New(kt)
	if u, ok := nv.Interface().(encoding.TextUnmarshaler); ok {
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, fmt.Errorf("cereal(convert): unmarshal map key %q: %v: %w", s, err, apis.ErrConversion)
		}
		return nv.Elem(), nil
	}
	return reflect.Value{}, fmt.Errorf("cereal(convert): unsupported map key type %s: %w", kt, apis.ErrConversion)
}
