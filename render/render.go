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

package render

import (
	"errors"
	"net/http"

	"dirpx.dev/dweb"
	"dirpx.dev/dweb/adapter"
	"dirpx.dev/dweb/apis"
	"dirpx.dev/dweb/kind"
	"dirpx.dev/dweb/lang"
	"dirpx.dev/dweb/mapper"
	"dirpx.dev/dweb/response"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
)

// DefaultUnclassifiedStatus is the status sent for errors dweb does not
// recognize when debug mode is off.
const DefaultUnclassifiedStatus = http.StatusServiceUnavailable

// Result is a rendered failure.
type Result struct {
	// Kind is the resolved kind, or kind.Unclassified.
	Kind kind.Kind
	// HTTP is the status to write on an HTTP response.
	HTTP int
	// GRPC is the status code to use on a gRPC response.
	GRPC codes.Code
	// Envelope is the body.
	Envelope response.Envelope
}

// Renderer maps errors to envelopes. It is immutable after New and safe
// for concurrent use.
type Renderer struct {
	mapper             apis.Mapper
	builder            response.Builder
	debug              bool
	log                zerolog.Logger
	metrics            *Metrics
	isRecordNotFound   func(error) bool
	unclassifiedStatus int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMapper sets the status mapper. Defaults to mapper.Default().
func WithMapper(m apis.Mapper) Option {
	return func(r *Renderer) { r.mapper = m }
}

// WithTranslator sets the message translator. Defaults to lang.Default().
func WithTranslator(t apis.Translator) Option {
	return func(r *Renderer) { r.builder = response.NewBuilder(t) }
}

// WithDebug toggles debug mode. In debug mode unclassified errors are not
// rendered so the caller can expose them.
func WithDebug(debug bool) Option {
	return func(r *Renderer) { r.debug = debug }
}

// WithLogger sets the logger used to record rendered failures.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// WithMetrics enables failure counters.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

// WithRecordNotFound replaces the predicate deciding whether the cause of a
// not_found error is a missing record. The default matches
// dweb.ErrRecordNotFound.
func WithRecordNotFound(fn func(error) bool) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.isRecordNotFound = fn
		}
	}
}

// WithUnclassifiedStatus replaces DefaultUnclassifiedStatus.
func WithUnclassifiedStatus(status int) Option {
	return func(r *Renderer) { r.unclassifiedStatus = status }
}

// New returns a Renderer with the given options applied over the defaults.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		log:                zerolog.Nop(),
		unclassifiedStatus: DefaultUnclassifiedStatus,
		isRecordNotFound: func(err error) bool {
			return errors.Is(err, dweb.ErrRecordNotFound)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.mapper == nil {
		r.mapper = mapper.Default()
	}
	if r.builder.Translator == nil {
		r.builder = response.NewBuilder(nil)
	}
	return r
}

// Builder returns the envelope builder the renderer uses, so success
// responses share its translator.
func (r *Renderer) Builder() response.Builder { return r.builder }

// Debug reports whether debug mode is on.
func (r *Renderer) Debug() bool { return r.debug }

// Render maps err to a response. The boolean is false when err is nil, or
// when err is unclassified and debug mode is on.
func (r *Renderer) Render(err error, meta response.Meta) (Result, bool) {
	if err == nil {
		return Result{}, false
	}

	var ke apis.KindedError
	k := kind.Unclassified
	if errors.As(err, &ke) {
		k = ke.ErrorKind()
	}

	var (
		res Result
		ok  = true
	)
	switch k {
	case kind.Validation:
		res = r.result(k, r.builder.Error(messageOf(ke), r.mapper.HTTPStatus(k), fieldsOf(ke), meta))
	case kind.RateLimit, kind.AccessDenied:
		res = r.result(k, r.builder.Error(messageOf(ke), r.statusOf(k, ke), nil, meta))
	case kind.Auth:
		res = r.result(k, r.builder.Error(messageOf(ke), r.mapper.HTTPStatus(k), nil, meta))
	case kind.Internal, kind.External:
		msg := messageOf(ke)
		if msg == "" {
			msg = r.builder.Message(meta, lang.KeySystemError)
		}
		res = r.result(k, r.builder.Error(msg, r.statusOf(k, ke), dataOf(ke), meta))
	case kind.NotFound:
		msg := messageOf(ke)
		if r.causedByMissingRecord(ke) {
			msg = r.builder.Message(meta, lang.KeyNotFound)
		}
		res = r.result(k, r.builder.Error(msg, r.statusOf(k, ke), nil, meta))
	default:
		// Unclassified, or a kind this renderer does not know.
		k = kind.Unclassified
		if r.debug {
			ok = false
			break
		}
		res = r.result(k, r.builder.Error(r.builder.Message(meta, lang.KeySystemError), r.unclassifiedStatus, nil, meta))
	}

	r.record(err, k, res, meta, ok)
	return res, ok
}

func (r *Renderer) result(k kind.Kind, env response.Envelope) Result {
	return Result{
		Kind:     k,
		HTTP:     response.HTTPStatus(env.Code),
		GRPC:     r.mapper.GRPCStatus(k),
		Envelope: env,
	}
}

// causedByMissingRecord reports whether any direct cause of err satisfies
// the record-not-found predicate. Both Unwrap() error and Unwrap() []error
// are followed.
func (r *Renderer) causedByMissingRecord(err error) bool {
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		cause := u.Unwrap()
		return cause != nil && r.isRecordNotFound(cause)
	case interface{ Unwrap() []error }:
		for _, cause := range u.Unwrap() {
			if cause != nil && r.isRecordNotFound(cause) {
				return true
			}
		}
	}
	return false
}

// statusOf returns the error's explicit status or the mapper default.
func (r *Renderer) statusOf(k kind.Kind, err error) int {
	var se apis.StatusError
	if errors.As(err, &se) {
		if s := se.StatusCode(); s != 0 {
			return s
		}
	}
	return r.mapper.HTTPStatus(k)
}

func (r *Renderer) record(err error, k kind.Kind, res Result, meta response.Meta, handled bool) {
	var ev *zerolog.Event
	switch k {
	case kind.Unclassified:
		ev = r.log.Error()
	case kind.External:
		ev = r.log.Warn()
	default:
		ev = r.log.Debug()
	}
	var st apis.Status
	if handled {
		st = apis.Status{HTTP: res.HTTP, GRPC: res.GRPC}
	}
	ev = ev.Err(err).EmbedObject(adapter.ToDescriptor(err, k, st))
	if meta.RequestID != "" {
		ev = ev.Str("request_id", meta.RequestID)
	}
	if handled {
		ev = ev.Int("status", res.Envelope.Code)
	}
	ev.Msg("request failed")

	if handled {
		label := string(k)
		if k == kind.Unclassified {
			label = "unclassified"
		}
		r.metrics.observe(label, res.Envelope.Code)
	}
}

// messageOf returns the message of a *dweb.Error, or err.Error() for other
// kinded errors.
func messageOf(err error) string {
	if de, ok := err.(*dweb.Error); ok {
		return de.Message
	}
	return err.Error()
}

func dataOf(err error) any {
	var de apis.DataError
	if errors.As(err, &de) {
		return de.ErrorData()
	}
	return nil
}

func fieldsOf(err error) map[string][]string {
	var fe apis.FieldsError
	if errors.As(err, &fe) {
		if f := fe.FieldErrors(); f != nil {
			return f
		}
	}
	return map[string][]string{}
}
