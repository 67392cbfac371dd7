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

package cereal

import (
	"fmt"
	"reflect"

	"github.com/kpears201/cereal/apis"
)

// RuntimeType inspects a generic value for the discriminator key and
// resolves its textual value against the class table.
//
// It returns (nil, nil), not an error, when cereal is not map-shaped,
// lacks the key, or carries a non-textual value. An unknown class name fails
// closed with ErrClassNotFound.
func (f *Factory) RuntimeType(cereal any) (reflect.Type, error) {
	m, ok := cereal.(map[string]any)
	if !ok {
		return nil, nil
	}
	raw, ok := m[f.cfg.DiscriminatorKey]
	if !ok {
		return nil, nil
	}
	name, ok := raw.(string)
	if !ok {
		return nil, nil
	}
	t, ok := f.classes.TypeFor(name)
	if !ok {
		return nil, fmt.Errorf("cereal: class %q is not registered: %w", name, apis.ErrClassNotFound)
	}
	return t, nil
}

// RuntimeCerealizer resolves the runtime class of cereal and returns a
// cerealizer for it; when no runtime class is declared the caller-supplied
// def is returned unchanged. This is how a value declared at an interface
// boundary deserializes to the correct concrete type: the type's identity
// travels inside the generic representation itself.
func (f *Factory) RuntimeCerealizer(cereal any, def apis.Cerealizer) (apis.Cerealizer, error) {
	t, err := f.RuntimeType(cereal)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return def, nil
	}
	return f.Resolve(t)
}
