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

package lang

import (
	"errors"
	"regexp"
	"strings"
)

// Key is the canonical, validated identifier of a message.
//
// Keys are dot-separated with one to four segments, each starting with a
// lowercase ASCII letter:
//
//   - "system.success"
//   - "resource.not_found"
type Key string

// Built-in keys used by the response and render packages.
const (
	KeySuccess     Key = "system.success"
	KeySystemError Key = "system.error"
	KeyNotFound    Key = "resource.not_found"
)

// MinLength and MaxLength define the allowed length range for a key.
const (
	MinLength = 3
	MaxLength = 128
)

// keyFmt accepts 1 to 4 segments matching [a-z][a-z0-9_]*.
const keyFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`

var keyRe = regexp.MustCompile(keyFmt)

var (
	// ErrKeyInvalidFormat is returned when a key does not match keyFmt.
	ErrKeyInvalidFormat = errors.New("dweb: invalid message key format")
	// ErrKeyInvalidLength is returned when a key is too short or too long.
	ErrKeyInvalidLength = errors.New("dweb: invalid message key length")
)

// Normalize brings s closer to the canonical key form:
//
//   - trim spaces
//   - lower-case
//   - convert "/" and "::" to "." (framework-style namespaced keys)
//   - replace "-" with "_"
//
// It does NOT guarantee validity.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "::", ".")
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Parse normalizes and validates s.
func Parse(s string) (Key, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return "", err
	}
	return Key(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Validate checks whether k is in canonical form.
func Validate(k Key) error {
	return validate(string(k))
}

// String returns the key as a string.
func (k Key) String() string {
	return string(k)
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrKeyInvalidLength
	}
	if !keyRe.MatchString(s) {
		return ErrKeyInvalidFormat
	}
	return nil
}
