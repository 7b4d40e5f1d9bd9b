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
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Param is one request parameter.
type Param struct {
	Name  string
	Value Value
}

// Params is an ordered set of request parameters. Apply walks it in order.
type Params []Param

// Get returns the value of the first parameter called name.
func (p Params) Get(name string) (Value, bool) {
	for _, e := range p {
		if e.Name == name {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Names returns the parameter names in order.
func (p Params) Names() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Name
	}
	return out
}

// FromQuery converts URL query values into Params sorted by name.
//
// "name[]=a&name[]=b" and repeated keys ("name=a&name=b") both produce a
// list under "name"; a single plain value produces a scalar.
func FromQuery(q url.Values) Params {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	index := make(map[string]int, len(keys))
	out := make(Params, 0, len(keys))
	for _, k := range keys {
		vals := q[k]
		name, bracket := strings.CutSuffix(k, "[]")

		var v Value
		switch {
		case bracket || len(vals) > 1:
			v = List(vals...)
		case len(vals) == 1:
			v = Scalar(vals[0])
		default:
			v = Null()
		}

		// "name" sorts before "name[]"; fold the second into one list.
		if i, ok := index[name]; ok {
			prev := out[i].Value
			out[i].Value = List(append(prev.Strings(), v.Strings()...)...)
			continue
		}
		index[name] = len(out)
		out = append(out, Param{Name: name, Value: v})
	}
	return out
}

// FromMap converts a decoded JSON object into Params sorted by name.
//
// Strings, numbers and booleans become scalars, arrays become lists of their
// items' string forms, null stays null. Nested objects are not filterable
// and become null. true becomes "1" and false becomes "", so a false flag is
// skipped by Apply like any other empty value; Value.Bool reads "1".
func FromMap(m map[string]any) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Params, 0, len(keys))
	for _, k := range keys {
		out = append(out, Param{Name: k, Value: valueOf(m[k])})
	}
	return out
}

func valueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := scalarString(item); ok {
				items = append(items, s)
			}
		}
		return List(items...)
	case []string:
		return List(v...)
	default:
		if s, ok := scalarString(v); ok {
			return Scalar(s)
		}
		return Null()
	}
}

func scalarString(x any) (string, bool) {
	switch v := x.(type) {
	case string:
		return v, true
	case bool:
		if v {
			return "1", true
		}
		return "", true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int, int64, int32, uint, uint64, uint32:
		return fmt.Sprint(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
