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
	"time"

	"github.com/kpears201/cereal/apis"
)

const (
	// DefaultTagName is the default struct tag key for field discovery.
	DefaultTagName = "cereal"
	// DefaultDiscriminatorKey is the reserved property name carrying the
	// wire name of a concrete type inside map-shaped generic values.
	DefaultDiscriminatorKey = "--class"
	// DefaultTimeLayout is the default layout for time values.
	DefaultTimeLayout = time.RFC3339Nano
	// DefaultMaxDepth bounds pointer unwrapping and classification
	// recursion. A value of 8 should be sufficient for all practical
	// purposes.
	DefaultMaxDepth = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		TagName:          DefaultTagName,
		DiscriminatorKey: DefaultDiscriminatorKey,
		TimeLayout:       DefaultTimeLayout,
		MaxDepth:         DefaultMaxDepth,
	}
}

// Sanitize replaces zero or invalid fields of cfg with their defaults.
func Sanitize(cfg apis.Config) apis.Config {
	if cfg.TagName == "" {
		cfg.TagName = DefaultTagName
	}
	if cfg.DiscriminatorKey == "" {
		cfg.DiscriminatorKey = DefaultDiscriminatorKey
	}
	if cfg.TimeLayout == "" {
		cfg.TimeLayout = DefaultTimeLayout
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during
// construction.
type Option func(*apis.Config)

// WithTagName sets the struct tag key for field discovery.
func WithTagName(name string) Option {
	return func(c *apis.Config) {
		c.TagName = name
	}
}

// WithDiscriminatorKey sets the reserved discriminator property name.
func WithDiscriminatorKey(key string) Option {
	return func(c *apis.Config) {
		c.DiscriminatorKey = key
	}
}

// WithTimeLayout sets the layout used for time values.
func WithTimeLayout(layout string) Option {
	return func(c *apis.Config) {
		c.TimeLayout = layout
	}
}

// WithMaxDepth sets the recursion guard.
// A non-positive value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}
