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

// mismatchErr builds the standard shape-mismatch error.
func mismatchErr(got any, want reflect.Type) error {
	return fmt.Errorf("cereal(convert): cannot convert %T into %s: %w", got, want, apis.ErrConversion)
}

// setValue assigns v into dst, converting between assignable/convertible
// types (e.g. an int64 produced by a scalar cerealizer into a named int
// field). A nil v leaves dst at its zero value.
func setValue(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(dst.Type()):
		dst.Set(rv)
	case rv.Type().ConvertibleTo(dst.Type()):
		dst.Set(rv.Convert(dst.Type()))
	default:
		return mismatchErr(v, dst.Type())
	}
	return nil
}
