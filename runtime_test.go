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

package cereal_test

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	cereal "github.com/kpears201/cereal"
	"github.com/kpears201/cereal/apis"
	"github.com/kpears201/cereal/config"
)

type envelope struct {
	Kind    string `cereal:"kind"`
	Payload any    `cereal:"payload"`
}

func TestRuntimeType(t *testing.T) {
	f := cereal.New()
	require.NoError(t, f.Classes().Register(reflect.TypeOf(movie{}), "catalog.movie"))

	t.Run("registered class", func(t *testing.T) {
		rt, err := f.RuntimeType(map[string]any{"--class": "catalog.movie"})
		require.NoError(t, err)
		require.Equal(t, reflect.TypeOf(movie{}), rt)
	})

	t.Run("unknown class fails closed", func(t *testing.T) {
		_, err := f.RuntimeType(map[string]any{"--class": "catalog.ghost"})
		require.ErrorIs(t, err, apis.ErrClassNotFound)
	})

	t.Run("no declaration is not an error", func(t *testing.T) {
		for _, v := range []any{
			"just text",
			42,
			[]any{"a"},
			map[string]any{"title": "Heat"},
			map[string]any{"--class": 99},
			nil,
		} {
			rt, err := f.RuntimeType(v)
			require.NoError(t, err, "value %s", spew.Sdump(v))
			require.Nil(t, rt, "value %s", spew.Sdump(v))
		}
	})
}

func TestRuntimeCerealizer(t *testing.T) {
	f := cereal.New()
	require.NoError(t, f.Classes().Register(reflect.TypeOf(movie{}), "catalog.movie"))
	def := &stubCerealizer{tag: "default"}

	// A declared class resolves to that class's cerealizer.
	want, err := f.Resolve(reflect.TypeOf(movie{}))
	require.NoError(t, err)
	got, err := f.RuntimeCerealizer(map[string]any{"--class": "catalog.movie"}, def)
	require.NoError(t, err)
	require.Same(t, want, got)

	// Without a declaration the caller's default passes through.
	got, err = f.RuntimeCerealizer(map[string]any{"title": "Heat"}, def)
	require.NoError(t, err)
	require.Same(t, def, got)

	_, err = f.RuntimeCerealizer(map[string]any{"--class": "catalog.ghost"}, def)
	require.ErrorIs(t, err, apis.ErrClassNotFound)
}

func TestDynamic_DiscriminatorRoundTrip(t *testing.T) {
	f := cereal.New()
	require.NoError(t, f.Classes().Register(reflect.TypeOf(movie{}), "catalog.movie"))

	in := envelope{Kind: "release", Payload: movie{Title: "Heat", Year: 1995}}

	c, err := f.ToCereal(in)
	require.NoError(t, err)
	m := c.(map[string]any)
	payload, ok := m["payload"].(map[string]any)
	require.True(t, ok, "payload: %s", spew.Sdump(m["payload"]))
	// A registered concrete type crossing an unconstrained slot is stamped
	// with its class name so deserialization can find its way back.
	require.Equal(t, "catalog.movie", payload["--class"])

	out, err := f.FromCereal(c, reflect.TypeOf(envelope{}))
	require.NoError(t, err)
	env := out.(envelope)
	require.Equal(t, "release", env.Kind)
	require.Equal(t, movie{Title: "Heat", Year: 1995}, env.Payload)
}

func TestDynamic_UnregisteredPayloadPassesStructurally(t *testing.T) {
	f := cereal.New()

	in := envelope{Kind: "blob", Payload: map[string]any{"n": int64(1)}}
	c, err := f.ToCereal(in)
	require.NoError(t, err)

	out, err := f.FromCereal(c, reflect.TypeOf(envelope{}))
	require.NoError(t, err)
	env := out.(envelope)
	require.Equal(t, map[string]any{"n": int64(1)}, env.Payload)
}

func TestDynamic_UnknownClassFailsClosed(t *testing.T) {
	f := cereal.New()

	c := map[string]any{
		"kind":    "release",
		"payload": map[string]any{"--class": "catalog.ghost", "title": "Heat"},
	}
	_, err := f.FromCereal(c, reflect.TypeOf(envelope{}))
	require.ErrorIs(t, err, apis.ErrClassNotFound)
}

func TestCustomDiscriminatorKey(t *testing.T) {
	f := cereal.New(config.WithDiscriminatorKey("@type"))
	require.NoError(t, f.Classes().Register(reflect.TypeOf(movie{}), "catalog.movie"))

	rt, err := f.RuntimeType(map[string]any{"@type": "catalog.movie"})
	require.NoError(t, err)
	require.Equal(t, reflect.TypeOf(movie{}), rt)

	// The default key is inert under a custom configuration.
	rt, err = f.RuntimeType(map[string]any{"--class": "catalog.movie"})
	require.NoError(t, err)
	require.Nil(t, rt)
}
