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
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kpears201/cereal/apis"
)

// fileConfig is the YAML shape of an engine configuration. Absent fields
// keep their defaults; unknown keys are ignored.
type fileConfig struct {
	TagName          string `yaml:"tag_name"`
	DiscriminatorKey string `yaml:"discriminator_key"`
	TimeLayout       string `yaml:"time_layout"`
	MaxDepth         int    `yaml:"max_depth"`
}

// namedLayouts maps symbolic layout names accepted in config files to their
// stdlib layouts. Any other non-empty string is used as a literal layout.
var namedLayouts = map[string]string{
	"RFC3339":     time.RFC3339,
	"RFC3339Nano": time.RFC3339Nano,
	"RFC1123":     time.RFC1123,
	"UnixDate":    time.UnixDate,
	"DateTime":    time.DateTime,
	"DateOnly":    time.DateOnly,
}

// FromYAML parses an apis.Config from YAML data, filling absent fields with
// defaults.
func FromYAML(data []byte) (apis.Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return apis.Config{}, fmt.Errorf("cereal(config): parse yaml: %w", err)
	}
	if fc.MaxDepth < 0 {
		return apis.Config{}, fmt.Errorf("cereal(config): max_depth must not be negative, got %d", fc.MaxDepth)
	}

	layout := fc.TimeLayout
	if named, ok := namedLayouts[layout]; ok {
		layout = named
	}

	return Sanitize(apis.Config{
		TagName:          fc.TagName,
		DiscriminatorKey: fc.DiscriminatorKey,
		TimeLayout:       layout,
		MaxDepth:         fc.MaxDepth,
	}), nil
}

// LoadFile reads and parses an apis.Config from a YAML file at path.
func LoadFile(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("cereal(config): read %s: %w", path, err)
	}
	return FromYAML(data)
}
