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

package reflect

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kpears201/cereal/apis"
)

type sample struct{ N int }

func testCfg() apis.Config {
	return apis.Config{MaxDepth: 8}
}

func TestNormalize(t *testing.T) {
	want := reflect.TypeOf(sample{})

	for _, typ := range []reflect.Type{
		want,
		reflect.TypeOf(&sample{}),
		reflect.PointerTo(reflect.PointerTo(want)),
	} {
		got, err := Normalize(typ, testCfg())
		if err != nil {
			t.Fatalf("Normalize(%s): %v", typ, err)
		}
		if got != want {
			t.Fatalf("Normalize(%s): got %s", typ, got)
		}
	}
}

func TestNormalize_DoesNotUnwrapContainers(t *testing.T) {
	typ := reflect.TypeOf([]sample{})
	if _, err := Normalize(typ, testCfg()); !errors.Is(err, ErrReflectTypeNotNamed) {
		t.Fatalf("slice type: got %v", err)
	}
}

func TestNormalize_DepthBound(t *testing.T) {
	typ := reflect.TypeOf(sample{})
	for i := 0; i < 10; i++ {
		typ = reflect.PointerTo(typ)
	}
	if _, err := Normalize(typ, apis.Config{MaxDepth: 4}); !errors.Is(err, ErrReflectTypeNotNamed) {
		t.Fatalf("deep pointer chain: got %v", err)
	}
}

func TestNormalize_NilType(t *testing.T) {
	if _, err := Normalize(nil, testCfg()); !errors.Is(err, ErrReflectNilType) {
		t.Fatalf("nil type: got %v", err)
	}
}

func TestDerivedName(t *testing.T) {
	name, err := DerivedName(reflect.TypeOf(sample{}))
	if err != nil {
		t.Fatalf("DerivedName: %v", err)
	}
	if name != "github.com/kpears201/cereal/utils/reflect.sample" {
		t.Fatalf("DerivedName: got %q", name)
	}

	name, err = DerivedName(reflect.TypeOf(0))
	if err != nil {
		t.Fatalf("DerivedName(int): %v", err)
	}
	if name != "int" {
		t.Fatalf("DerivedName(int): got %q", name)
	}

	if _, err := DerivedName(reflect.TypeOf([]int{})); !errors.Is(err, ErrReflectTypeNotNamed) {
		t.Fatalf("unnamed type: got %v", err)
	}
	if _, err := DerivedName(nil); !errors.Is(err, ErrReflectNilType) {
		t.Fatalf("nil type: got %v", err)
	}
}

func TestInstantiate(t *testing.T) {
	v, err := Instantiate(reflect.TypeOf(sample{}))
	if err != nil {
		t.Fatalf("Instantiate value: %v", err)
	}
	if _, ok := v.(sample); !ok {
		t.Fatalf("Instantiate value: got %T", v)
	}

	v, err = Instantiate(reflect.TypeOf(&sample{}))
	if err != nil {
		t.Fatalf("Instantiate pointer: %v", err)
	}
	p, ok := v.(*sample)
	if !ok || p == nil {
		t.Fatalf("Instantiate pointer: got %T (%v)", v, v)
	}

	if _, err := Instantiate(nil); !errors.Is(err, ErrReflectNilType) {
		t.Fatalf("nil type: got %v", err)
	}
}
