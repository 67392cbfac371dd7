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

package convert_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	cereal "github.com/kpears201/cereal"
	"github.com/kpears201/cereal/apis"
	"github.com/kpears201/cereal/convert"
)

// celsius converts itself, bypassing reflective field discovery.
type celsius struct {
	Deg float64
}

func (c celsius) ToCereal() (any, error) {
	return map[string]any{"deg": c.Deg}, nil
}

func (c *celsius) FromCereal(v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("celsius: want map, got %T", v)
	}
	deg, ok := m["deg"].(float64)
	if !ok {
		return fmt.Errorf("celsius: deg missing or not a number")
	}
	c.Deg = deg
	return nil
}

// wired proves the factory back-reference reaches self-convertible values.
type wired struct {
	factory apis.Factory
}

func (w *wired) SetFactory(f apis.Factory) { w.factory = f }

func (w wired) ToCereal() (any, error) {
	if w.factory == nil {
		return nil, fmt.Errorf("wired: no factory attached")
	}
	return "ok", nil
}

func (w *wired) FromCereal(any) error { return nil }

func TestIsCerealizable(t *testing.T) {
	require.True(t, convert.IsCerealizable(reflect.TypeOf(celsius{})))
	require.True(t, convert.IsCerealizable(reflect.TypeOf(&celsius{})))
	require.False(t, convert.IsCerealizable(reflect.TypeOf(struct{}{})))
	require.False(t, convert.IsCerealizable(nil))
}

func TestCerealizable_RoundTrip(t *testing.T) {
	f := cereal.New()
	typ := reflect.TypeOf(celsius{})

	c, err := f.Resolve(typ)
	require.NoError(t, err)
	// Self-conversion wins over the reflective struct fallback.
	_, isCerealizable := c.(*convert.CerealizableCerealizer)
	require.True(t, isCerealizable, "got %T", c)

	got, err := c.ToCereal(celsius{Deg: 21.5})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"deg": 21.5}, got)

	out, err := c.FromCereal(got, typ)
	require.NoError(t, err)
	require.Equal(t, celsius{Deg: 21.5}, out)

	out, err = c.FromCereal(nil, typ)
	require.NoError(t, err)
	require.Equal(t, celsius{}, out)
}

func TestCerealizable_FactoryForwarded(t *testing.T) {
	f := cereal.New()

	c, err := f.Resolve(reflect.TypeOf(wired{}))
	require.NoError(t, err)

	got, err := c.ToCereal(wired{})
	require.NoError(t, err)
	require.Equal(t, "ok", got)
}

func TestCerealizable_ConversionErrorsSurface(t *testing.T) {
	f := cereal.New()
	typ := reflect.TypeOf(celsius{})

	c, err := f.Resolve(typ)
	require.NoError(t, err)

	_, err = c.FromCereal(map[string]any{"wrong": true}, typ)
	require.Error(t, err)
}
