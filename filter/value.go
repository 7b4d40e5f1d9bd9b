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
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/dweb"
)

type valueKind uint8

const (
	nullValue valueKind = iota
	scalarValue
	listValue
)

// Value is a request parameter value: a scalar, a list of strings, or null.
// The zero Value is null.
type Value struct {
	kind valueKind
	str  string
	list []string
	// field is the parameter name, set by Apply; used in error messages.
	field string
}

// Scalar returns a scalar value.
func Scalar(s string) Value { return Value{kind: scalarValue, str: s} }

// List returns a list value. An empty list is still a list.
func List(items ...string) Value {
	return Value{kind: listValue, list: append([]string{}, items...)}
}

// Null returns the null value.
func Null() Value { return Value{} }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == nullValue }

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.kind == listValue }

// IsEmpty reports whether v is null, the empty string, or an empty list.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case scalarValue:
		return v.str == ""
	case listValue:
		return len(v.list) == 0
	default:
		return true
	}
}

// Field returns the name of the parameter the value came from.
func (v Value) Field() string { return v.field }

// String returns the scalar, or the list items joined with ",".
func (v Value) String() string {
	switch v.kind {
	case scalarValue:
		return v.str
	case listValue:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// Strings returns the list items, or the scalar as a one-element slice.
// Null yields nil.
func (v Value) Strings() []string {
	switch v.kind {
	case scalarValue:
		return []string{v.str}
	case listValue:
		return append([]string(nil), v.list...)
	default:
		return nil
	}
}

// Int parses a scalar as a base-10 integer.
func (v Value) Int() (int, error) {
	if v.kind != scalarValue {
		return 0, v.invalid("must be an integer")
	}
	n, err := strconv.Atoi(v.str)
	if err != nil {
		return 0, v.invalid("must be an integer")
	}
	return n, nil
}

// Ints parses every item as a base-10 integer.
func (v Value) Ints() ([]int, error) {
	items := v.Strings()
	out := make([]int, 0, len(items))
	for _, s := range items {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, v.invalid("must contain only integers")
		}
		out = append(out, n)
	}
	return out, nil
}

// Bool parses a scalar. Accepted: 1/0, true/false, on/off, yes/no.
func (v Value) Bool() (bool, error) {
	if v.kind == scalarValue {
		switch strings.ToLower(v.str) {
		case "1", "true", "on", "yes":
			return true, nil
		case "0", "false", "off", "no":
			return false, nil
		}
	}
	return false, v.invalid("must be true or false")
}

// normalize trims scalars and leaves lists and null untouched.
func (v Value) normalize() Value {
	if v.kind == scalarValue {
		v.str = strings.TrimSpace(v.str)
	}
	return v
}

func (v Value) invalid(rule string) *dweb.Error {
	name := v.field
	if name == "" {
		name = "value"
	}
	return dweb.Validation(
		fmt.Sprintf("The %s field %s.", name, rule),
		map[string][]string{name: {rule}},
	)
}
