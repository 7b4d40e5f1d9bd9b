/*
   Copyright 2025 The DIRPX Authors

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

package filter

import (
	"sort"
)

// HandlerFunc applies one field's condition to the builder and returns the
// builder to continue with.
type HandlerFunc[Q any] func(q Q, v Value) (Q, error)

// Handlers maps field names to handlers.
type Handlers[Q any] map[string]HandlerFunc[Q]

// Filter is an immutable handler table for builders of type Q. It is safe
// for concurrent use; all per-call state lives on the stack of Apply.
type Filter[Q any] struct {
	handlers map[string]HandlerFunc[Q]
}

// New builds a Filter from h. The map is copied; nil handlers are dropped.
func New[Q any](h Handlers[Q]) *Filter[Q] {
	f := &Filter[Q]{handlers: make(map[string]HandlerFunc[Q], len(h))}
	for name, fn := range h {
		if fn != nil {
			f.handlers[name] = fn
		}
	}
	return f
}

// Apply dispatches every non-empty parameter to its handler and returns the
// resulting builder. The first handler error is returned as-is together
// with the builder as it was before that handler ran.
func (f *Filter[Q]) Apply(q Q, params Params) (Q, error) {
	for _, p := range params {
		v := p.Value.normalize()
		if v.IsEmpty() {
			continue
		}
		fn, ok := f.resolve(p.Name)
		if !ok {
			continue
		}
		v.field = p.Name
		next, err := fn(q, v)
		if err != nil {
			return q, err
		}
		q = next
	}
	return q, nil
}

// Resolve returns the registered name a parameter dispatches to: the
// literal name first, then its camelCase form.
func (f *Filter[Q]) Resolve(name string) (string, bool) {
	for _, candidate := range candidates(name) {
		if _, ok := f.handlers[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

// Fields returns the registered field names, sorted.
func (f *Filter[Q]) Fields() []string {
	out := make([]string, 0, len(f.handlers))
	for name := range f.handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (f *Filter[Q]) resolve(name string) (HandlerFunc[Q], bool) {
	resolved, ok := f.Resolve(name)
	if !ok {
		return nil, false
	}
	return f.handlers[resolved], true
}

func candidates(name string) []string {
	camel := Camel(name)
	if camel == name {
		return []string{name}
	}
	return []string{name, camel}
}

// Preloader is a builder with an eager-loading hook, such as *gorm.DB.
type Preloader[Q any] interface {
	Preload(column string, conditions ...interface{}) Q
}

// With eager-loads each relation on q. Handlers use it to pull related
// records in, e.g. a "with" parameter listing relation names.
func With[Q Preloader[Q]](q Q, relations ...string) Q {
	for _, rel := range relations {
		q = q.Preload(rel)
	}
	return q
}
