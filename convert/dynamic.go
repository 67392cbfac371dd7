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

// NewDynamicCerealizer constructs the dynamic cerealizer: the converter for
// polymorphic slots declared as an interface type. A single shared instance
// lives in the engine's instance cache and serves as the element fallback
// for collections and maps.
func NewDynamicCerealizer() *DynamicCerealizer {
	return &DynamicCerealizer{}
}

// DynamicCerealizer defers to runtime type information. On the way out it
// resolves a cerealizer for the concrete runtime type and stamps the
// discriminator key into map-shaped output when the class table knows the
// type. On the way in it consults the discriminator first and falls back to
// a structural passthrough.
type DynamicCerealizer struct {
	factory apis.Factory
}

var (
	_ apis.Cerealizer   = (*DynamicCerealizer)(nil)
	_ apis.FactoryAware = (*DynamicCerealizer)(nil)
)

// SetFactory stores the back-reference.
func (c *DynamicCerealizer) SetFactory(f apis.Factory) {
	c.factory = f
}

func (c *DynamicCerealizer) ToCereal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if c.factory == nil {
		return nil, fmt.Errorf("cereal(convert): dynamic cerealizer has no factory: %w", apis.ErrConversion)
	}
	rt := reflect.TypeOf(v)
	cz, err := c.factory.Resolve(rt)
	if err != nil {
		return nil, err
	}
	out, err := cz.ToCereal(v)
	if err != nil {
		return nil, err
	}
	if m, ok := out.(map[string]any); ok {
		if name, ok := c.factory.Classes().NameFor(rt); ok {
			m[c.factory.Config().DiscriminatorKey] = name
		}
	}
	return out, nil
}

func (c *DynamicCerealizer) FromCereal(cereal any, t reflect.Type) (any, error) {
	if cereal == nil {
		return nil, nil
	}
	if c.factory == nil {
		return nil, fmt.Errorf("cereal(convert): dynamic cerealizer has no factory: %w", apis.ErrConversion)
	}

	rt, err := c.factory.RuntimeType(cereal)
	if err != nil {
		return nil, err
	}
	if rt != nil {
		cz, err := c.factory.Resolve(rt)
		if err != nil {
			return nil, err
		}
		return cz.FromCereal(cereal, rt)
	}

	// No runtime class declared: rebuild the generic shape, converting
	// nested values dynamically so inner discriminators still apply.
	switch v := cereal.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			cv, err := c.FromCereal(item, t)
			if err != nil {
				return nil, err
			}
			out[key] = cv
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			cv, err := c.FromCereal(item, t)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	default:
		return cereal, nil
	}
}
