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
	"math"
	"reflect"

	"github.com/kpears201/cereal/apis"
)

// NewScalarCerealizer returns the scalar cerealizer. A single shared
// instance serves every scalar type: ToCereal flattens named scalar types to
// their underlying representation and FromCereal coerces generic scalars
// (including the float64 produced by JSON decoders) back into the target
// type, failing on overflow or fractional loss.
func NewScalarCerealizer() apis.Cerealizer {
	return scalarCerealizer{}
}

type scalarCerealizer struct{}

var _ apis.Cerealizer = scalarCerealizer{}

// ToCereal flattens v into a plain bool, string, int64, uint64 or float64.
func (scalarCerealizer) ToCereal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return nil, fmt.Errorf("cereal(convert): %T is not a scalar: %w", v, apis.ErrConversion)
	}
}

// FromCereal coerces cereal into a value of type t.
func (scalarCerealizer) FromCereal(cereal any, t reflect.Type) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("cereal(convert): scalar target type missing: %w", apis.ErrConversion)
	}
	if cereal == nil {
		return reflect.Zero(t).Interface(), nil
	}
	out := reflect.New(t).Elem()
	if err := assignScalar(out, cereal); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// assignScalar coerces v into dst, which must have a scalar kind.
func assignScalar(dst reflect.Value, v any) error {
	rv := reflect.ValueOf(v)

	switch dst.Kind() {
	case reflect.Bool:
		if rv.Kind() != reflect.Bool {
			return mismatchErr(v, dst.Type())
		}
		dst.SetBool(rv.Bool())

	case reflect.String:
		if rv.Kind() != reflect.String {
			return mismatchErr(v, dst.Type())
		}
		dst.SetString(rv.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := toInt64(rv, dst.Type())
		if err != nil {
			return err
		}
		if dst.OverflowInt(i) {
			return overflowErr(v, dst.Type())
		}
		dst.SetInt(i)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := toUint64(rv, dst.Type())
		if err != nil {
			return err
		}
		if dst.OverflowUint(u) {
			return overflowErr(v, dst.Type())
		}
		dst.SetUint(u)

	case reflect.Float32, reflect.Float64:
		f, err := toFloat64(rv, dst.Type())
		if err != nil {
			return err
		}
		if dst.OverflowFloat(f) {
			return overflowErr(v, dst.Type())
		}
		dst.SetFloat(f)

	default:
		return mismatchErr(v, dst.Type())
	}
	return nil
}

func overflowErr(v any, t reflect.Type) error {
	return fmt.Errorf("cereal(convert): %v overflows %s: %w", v, t, apis.ErrConversion)
}

func fractionErr(v any, t reflect.Type) error {
	return fmt.Errorf("cereal(convert): %v has a fractional part, cannot convert to %s: %w", v, t, apis.ErrConversion)
}

func toInt64(rv reflect.Value, want reflect.Type) (int64, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, overflowErr(rv.Interface(), want)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) {
			return 0, fractionErr(rv.Interface(), want)
		}
		return int64(f), nil
	default:
		return 0, mismatchErr(rv.Interface(), want)
	}
}

func toUint64(rv reflect.Value, want reflect.Type) (uint64, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return 0, overflowErr(rv.Interface(), want)
		}
		return uint64(i), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) {
			return 0, fractionErr(rv.Interface(), want)
		}
		if f < 0 {
			return 0, overflowErr(rv.Interface(), want)
		}
		return uint64(f), nil
	default:
		return 0, mismatchErr(rv.Interface(), want)
	}
}

func toFloat64(rv reflect.Value, want reflect.Type) (float64, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return 0, mismatchErr(rv.Interface(), want)
	}
}
