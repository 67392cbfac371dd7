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
	"time"

	"github.com/kpears201/cereal/apis"
)

// NewTimeCerealizer constructs the temporal cerealizer. Times render to
// strings in the given layout and parse back from them.
func NewTimeCerealizer(layout string) apis.Cerealizer {
	return &TimeCerealizer{layout: layout}
}

// TimeCerealizer converts time.Time values to and from layout strings.
type TimeCerealizer struct {
	layout string
}

var _ apis.Cerealizer = (*TimeCerealizer)(nil)

// ToCereal renders v, which must be a time.Time, in the configured layout.
func (c *TimeCerealizer) ToCereal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	t, ok := v.(time.Time)
	if !ok {
		return nil, mismatchErr(v, reflect.TypeOf(time.Time{}))
	}
	return t.Format(c.layout), nil
}

// FromCereal parses a layout string back into a time.Time.
func (c *TimeCerealizer) FromCereal(cereal any, _ reflect.Type) (any, error) {
	if cereal == nil {
		return time.Time{}, nil
	}
	s, ok := cereal.(string)
	if !ok {
		return nil, mismatchErr(cereal, reflect.TypeOf(time.Time{}))
	}
	t, err := time.Parse(c.layout, s)
	if err != nil {
		return nil, fmt.Errorf("cereal(convert): parse time %q: %w", s, apis.ErrConversion)
	}
	return t, nil
}
