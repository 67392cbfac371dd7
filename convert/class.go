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
	"strings"

	"github.com/kpears201/cereal/apis"
)

// NewStructCerealizer constructs the reflective fallback cerealizer for the
// struct type typ. The engine must register it in the type map before calling
// Initialize: field discovery recurses into nested types, including typ
// itself for self-referencing structures.
func NewStructCerealizer(typ reflect.Type, cfg apis.Config) *StructCerealizer {
	return &StructCerealizer{typ: typ, cfg: cfg}
}

// StructCerealizer introspects the declared fields of a plain struct type
// and converts it to and from map[string]any.
//
// Field discovery honors the configured struct tag:
//
//	Field T `cereal:"wirename,omitempty,required"`
//
// A tag of "-" skips the field; unexported fields are skipped; embedded
// fields convert under their type name unless renamed by a tag.
type StructCerealizer struct {
	typ     reflect.Type
	cfg     apis.Config
	fields  []structField
	factory apis.Factory
}

type structField struct {
	name      string
	index     []int
	typ       reflect.Type
	cz        apis.Cerealizer
	omitEmpty bool
	required  bool
}

var (
	_ apis.Cerealizer   = (*StructCerealizer)(nil)
	_ apis.FactoryAware = (*StructCerealizer)(nil)
)

// SetFactory stores the back-reference.
func (c *StructCerealizer) SetFactory(f apis.Factory) {
	c.factory = f
}

// Initialize discovers fields and resolves a cerealizer for each declared
// field type via resolve. Initialization failures leave the cerealizer
// unusable; the engine removes it from the type map in that case.
func (c *StructCerealizer) Initialize(resolve apis.ResolveFunc) error {
	t := c.typ
	fields := make([]structField, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			// Unexported, skip.
			continue
		}

		name := field.Name
		omitEmpty, required := false, false
		if tag, ok := field.Tag.Lookup(c.cfg.TagName); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				switch strings.TrimSpace(opt) {
				case "omitempty":
					omitEmpty = true
				case "required":
					required = true
				}
			}
		}

		cz, err := resolve(field.Type)
		if err != nil {
			return fmt.Errorf("cereal(convert): field %s.%s: %w", t, field.Name, err)
		}
		fields = append(fields, structField{
			name:      name,
			index:     field.Index,
			typ:       field.Type,
			cz:        cz,
			omitEmpty: omitEmpty,
			required:  required,
		})
	}

	c.fields = fields
	return nil
}

func (c *StructCerealizer) ToCereal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != c.typ {
		return nil, mismatchErr(v, c.typ)
	}
	out := make(map[string]any, len(c.fields))
	for _, f := range c.fields {
		fv := rv.FieldByIndex(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		cv, err := f.cz.ToCereal(fv.Interface())
		if err != nil {
			return nil, fmt.Errorf("cereal(convert): field %s.%s: %w", c.typ, f.name, err)
		}
		out[f.name] = cv
	}
	return out, nil
}

func (c *StructCerealizer) FromCereal(cereal any, _ reflect.Type) (any, error) {
	if cereal == nil {
		return reflect.Zero(c.typ).Interface(), nil
	}
	m, ok := cereal.(map[string]any)
	if !ok {
		return nil, mismatchErr(cereal, c.typ)
	}
	out := reflect.New(c.typ).Elem()
	for _, f := range c.fields {
		raw, ok := m[f.name]
		if !ok {
			if f.required {
				return nil, fmt.Errorf("cereal(convert): missing required field %q of %s: %w", f.name, c.typ, apis.ErrConversion)
			}
			continue
		}
		fv, err := f.cz.FromCereal(raw, f.typ)
		if err != nil {
			return nil, fmt.Errorf("cereal(convert): field %s.%s: %w", c.typ, f.name, err)
		}
		if err := setValue(out.FieldByIndex(f.index), fv); err != nil {
			return nil, err
		}
	}
	return out.Interface(), nil
}
