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
	"strings"
	"unicode"
	"unicode/utf8"
)

// Camel converts snake_case or kebab-case to camelCase: "category_id"
// becomes "categoryId", "sort-by" becomes "sortBy". Words are split on
// '_', '-' and spaces; each word's first letter is upper-cased and the rest
// is kept; the result's first letter is lower-cased.
func Camel(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	b.Grow(len(s))
	for _, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	out := b.String()
	if out == "" {
		return out
	}
	r, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToLower(r)) + out[size:]
}
