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

package apis

import "dirpx.dev/dweb/kind"

// KindedError is an error classified into one of the kinds in package kind.
//
// The renderer uses the kind to choose the response shape. Errors that do not
// implement this interface, or return kind.Unclassified, are treated as
// opaque system failures.
type KindedError interface {
	error

	// ErrorKind returns the classification of the error.
	ErrorKind() kind.Kind
}

// StatusError carries an explicit status. Zero means "not specified" and
// lets the status mapper choose the default for the kind.
//
// The value is usually an HTTP status, but application errors may use
// business codes outside the HTTP range; those are reported in the
// envelope body only.
type StatusError interface {
	error

	// StatusCode returns the explicit status, or 0.
	StatusCode() int
}

// DataError exposes a structured payload that is safe to return to
// clients in the envelope's data field.
type DataError interface {
	error

	// ErrorData returns the payload. May return nil.
	ErrorData() any
}

// FieldsError exposes per-field validation messages. Implementations
// should return a map the caller may read but not modify.
type FieldsError interface {
	error

	// FieldErrors returns field -> messages. May return nil.
	FieldErrors() map[string][]string
}
