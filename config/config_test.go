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

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kpears201/cereal/apis"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultTagName, cfg.TagName)
	assert.Equal(t, DefaultDiscriminatorKey, cfg.DiscriminatorKey)
	assert.Equal(t, DefaultTimeLayout, cfg.TimeLayout)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithTagName("wire"),
		WithDiscriminatorKey("@type"),
		WithTimeLayout(time.RFC1123),
		WithMaxDepth(3),
	)
	assert.Equal(t, "wire", cfg.TagName)
	assert.Equal(t, "@type", cfg.DiscriminatorKey)
	assert.Equal(t, time.RFC1123, cfg.TimeLayout)
	assert.Equal(t, 3, cfg.MaxDepth)
}

func TestWithMaxDepth_NonPositiveResets(t *testing.T) {
	cfg := NewConfig(WithMaxDepth(-5))
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
}

func TestSanitize(t *testing.T) {
	cfg := Sanitize(apis.Config{})
	assert.Equal(t, DefaultConfig(), cfg)

	cfg = Sanitize(apis.Config{TagName: "wire", MaxDepth: -1})
	assert.Equal(t, "wire", cfg.TagName)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, DefaultDiscriminatorKey, cfg.DiscriminatorKey)
}
