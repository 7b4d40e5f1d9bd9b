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

package dweb

import (
	"errors"
	"fmt"
	"net/http"

	"dirpx.dev/dweb/kind"
)

// ErrRecordNotFound marks a lookup that matched no record. Storage adapters
// wrap their own "no rows" errors with it so the renderer can replace the
// raw message with a generic, localized one.
var ErrRecordNotFound = errors.New("dweb: record not found")

// DefaultFailStatus is the status used by Fail and FailExternal when the
// caller passes 0.
const DefaultFailStatus = http.StatusServiceUnavailable

// Error is the application error type.
//
// It carries:
//   - Kind: classification driving the response mapping (required);
//   - Status: explicit HTTP-like status or business code; 0 means "use the
//     mapper default for Kind";
//   - Message: human-oriented description shown to the client;
//   - Data: arbitrary payload returned in the envelope's data field;
//   - Fields: field -> messages map for validation errors;
//   - Cause: wrapped underlying error for errors.Is / errors.As.
//
// All mutation helpers (WithX) return a shallow copy.
type Error struct {
	Kind    kind.Kind
	Status  int
	Message string
	Data    any
	Fields  map[string][]string
	Cause   error
}

// E is the general constructor. It applies all provided options in order.
//
//	return dweb.E(kind.External, "payment gateway unavailable",
//	    dweb.WithStatusOption(http.StatusBadGateway),
//	    dweb.WithCauseOption(err),
//	)
func E(k kind.Kind, msg string, opts ...Option) *Error {
	e := &Error{Kind: k, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Internal returns an application-flagged error.
func Internal(msg string, opts ...Option) *Error { return E(kind.Internal, msg, opts...) }

// External returns an upstream/dependency failure.
func External(msg string, opts ...Option) *Error { return E(kind.External, msg, opts...) }

// Validation returns a validation failure carrying per-field messages.
func Validation(msg string, fields map[string][]string, opts ...Option) *Error {
	return E(kind.Validation, msg, opts...).WithFields(fields)
}

// Auth returns an authentication failure.
func Auth(msg string, opts ...Option) *Error { return E(kind.Auth, msg, opts...) }

// NotFound returns a not-found failure.
func NotFound(msg string, opts ...Option) *Error { return E(kind.NotFound, msg, opts...) }

// AccessDenied returns an authorization failure.
func AccessDenied(msg string, opts ...Option) *Error { return E(kind.AccessDenied, msg, opts...) }

// RateLimit returns a throttling failure.
func RateLimit(msg string, opts ...Option) *Error { return E(kind.RateLimit, msg, opts...) }

// Fail builds an Internal error the way service code usually raises one:
// positional status, payload and cause. A zero status becomes
// DefaultFailStatus. An empty msg is rendered as the localized generic
// system error.
func Fail(msg string, status int, data any, cause error) *Error {
	if status == 0 {
		status = DefaultFailStatus
	}
	return &Error{Kind: kind.Internal, Status: status, Message: msg, Data: data, Cause: cause}
}

// FailExternal is Fail for upstream failures.
func FailExternal(msg string, status int, data any, cause error) *Error {
	e := Fail(msg, status, data, cause)
	e.Kind = kind.External
	return e
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<kind>: <message>
//
// or, when an explicit status is set:
//
//	<kind>(<status>): <message>
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s(%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorKind implements apis.KindedError.
func (e *Error) ErrorKind() kind.Kind { return e.Kind }

// StatusCode implements apis.StatusError.
func (e *Error) StatusCode() int { return e.Status }

// ErrorData implements apis.DataError.
func (e *Error) ErrorData() any { return e.Data }

// FieldErrors implements apis.FieldsError.
func (e *Error) FieldErrors() map[string][]string { return e.Fields }

// WithStatus returns a copy of e with the given status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

// WithMessage returns a copy of e with a replaced human message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithData returns a copy of e with the given payload.
func (e *Error) WithData(data any) *Error {
	cp := *e
	cp.Data = data
	return &cp
}

// WithField returns a copy of e with msgs appended to the field's messages.
// The Fields map is always copied.
func (e *Error) WithField(field string, msgs ...string) *Error {
	cp := *e
	m := copyFields(cp.Fields, 1)
	m[field] = append(append([]string(nil), m[field]...), msgs...)
	cp.Fields = m
	return &cp
}

// WithFields returns a copy of e with fields merged into Fields; fields
// wins on key conflicts.
func (e *Error) WithFields(fields map[string][]string) *Error {
	if len(fields) == 0 {
		return e
	}
	cp := *e
	m := copyFields(cp.Fields, len(fields))
	for k, v := range fields {
		m[k] = append([]string(nil), v...)
	}
	cp.Fields = m
	return &cp
}

// WithCause returns a copy of e wrapping err. A nil err returns e unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain, or
// kind.Unclassified.
func KindOf(err error) kind.Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return kind.Unclassified
}

func copyFields(src map[string][]string, extra int) map[string][]string {
	m := make(map[string][]string, len(src)+extra)
	for k, v := range src {
		m[k] = v
	}
	return m
}
