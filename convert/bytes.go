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
	"encoding/base64"
	"fmt"
	"reflect"

	"github.com/kpears201/cereal/apis"
)

// NewByteSliceCerealizer constructs the byte-sequence cerealizer. A single
// shared instance lives in the engine's instance cache.
func NewByteSliceCerealizer() apis.Cerealizer {
	return byteSliceCerealizer{}
}

// byteSliceCerealizer converts []byte to and from base64 strings, keeping
// byte payloads representable inside text-based wire formats.
type byteSliceCerealizer struct{}

var _ apis.Cerealizer = byteSliceCerealizer{}

var byteSliceType = reflect.TypeOf([]byte(nil))

func (byteSliceCerealizer) ToCereal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, mismatchErr(v, byteSliceType)
	}
	if b == nil {
		return nil, nil
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (byteSliceCerealizer) FromCereal(cereal any, _ reflect.Type) (any, error) {
	if cereal == nil {
		return []byte(nil), nil
	}
	s, ok := cereal.(string)
	if !ok {
		return nil, mismatchErr(cereal, byteSliceType)
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("cereal(convert): decode base64: %w", apis.ErrConversion)
	}
	return b, nil
}
