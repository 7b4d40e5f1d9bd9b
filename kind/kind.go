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

package kind

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Kind is the canonical, validated representation of an error kind.
//
// It is a separate type (not just string) so that raw user input cannot be
// mixed with normalized values by accident.
//
// The empty kind ("") means "unclassified": the error did not come from
// dweb and the renderer treats it as an opaque system failure.
type Kind string

// MinLength and MaxLength define the allowed length range for a kind.
const (
	// MinLength is the minimum length for a valid kind.
	MinLength = 3

	// MaxLength is the maximum length for a valid kind.
	MaxLength = 32
)

// kindFmt is the canonical pattern for kinds. The quantifier {2,31} is tied
// to MinLength / MaxLength above.
const kindFmt = `^[a-z][a-z0-9_]{2,31}$`

var kindRe = regexp.MustCompile(kindFmt)

var (
	// ErrKindInvalid is returned when a value is not shaped like a kind.
	ErrKindInvalid = errors.New("dweb: invalid kind")

	// ErrKindUnknown is returned when a well-formed value is not one of All.
	ErrKindUnknown = errors.New("dweb: unknown kind")
)

var (
	_ encoding.TextMarshaler   = (*Kind)(nil)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// Unclassified is the zero-value kind.
var Unclassified Kind = ""

// Parse normalizes s and returns the matching known Kind.
func Parse(s string) (Kind, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Unclassified, err
	}
	return Kind(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Normalize brings s closer to the canonical kind form:
//
//   - trims surrounding spaces;
//   - lowercases the value;
//   - replaces '-' and ' ' with '_'.
//
// It does NOT guarantee that the result is a known kind.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Validate checks whether k is a known kind. Unclassified is invalid.
func Validate(k Kind) error {
	return validate(string(k))
}

// Known reports whether k is one of All.
func (k Kind) Known() bool {
	_, ok := known[k]
	return ok
}

// String returns the canonical string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func validate(s string) error {
	if !kindRe.MatchString(s) {
		return ErrKindInvalid
	}
	if _, ok := known[Kind(s)]; !ok {
		return ErrKindUnknown
	}
	return nil
}
