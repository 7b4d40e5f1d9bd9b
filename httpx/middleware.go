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

package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"dirpx.dev/dweb/lang"
)

// DefaultRequestIDHeader carries the request id in and out.
const DefaultRequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds inbound ids; longer ones are replaced.
const maxRequestIDLength = 128

type ctxKey int

const (
	requestIDKey ctxKey = iota
	languageKey
)

// Middleware wraps an http.Handler. It matches mux.MiddlewareFunc.
type Middleware = func(http.Handler) http.Handler

// WithRequestID returns ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the request id in ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithLanguage returns ctx carrying tag.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, languageKey, tag)
}

// LanguageFrom returns the negotiated language in ctx, or language.Und.
func LanguageFrom(ctx context.Context) language.Tag {
	tag, ok := ctx.Value(languageKey).(language.Tag)
	if !ok {
		return language.Und
	}
	return tag
}

// Logger attaches log to every request context, for zerolog.Ctx.
func Logger(log zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(rw, r.WithContext(log.WithContext(r.Context())))
		})
	}
}

// RequestID reuses the inbound id from header or generates a UUID, stores
// it in the context, adds it to the context logger and echoes it in the
// response header. An empty header means DefaultRequestIDHeader.
func RequestID(header string) Middleware {
	if header == "" {
		header = DefaultRequestIDHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(header))
			if id == "" || len(id) > maxRequestIDLength {
				id = uuid.NewString()
			}
			rw.Header().Set(header, id)

			ctx := WithRequestID(r.Context(), id)
			log := zerolog.Ctx(ctx).With().Str("request_id", id).Logger()
			next.ServeHTTP(rw, r.WithContext(log.WithContext(ctx)))
		})
	}
}

// Locale negotiates Accept-Language against c and stores the result.
// A "lang" query parameter takes precedence over the header.
func Locale(c *lang.Catalog) Middleware {
	if c == nil {
		c = lang.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			pref := r.Header.Get("Accept-Language")
			if q := r.URL.Query().Get("lang"); q != "" {
				pref = q
			}
			tag := c.Match(pref)
			rw.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(rw, r.WithContext(WithLanguage(r.Context(), tag)))
		})
	}
}

// Recover turns a panic into an unclassified error written by w.
// http.ErrAbortHandler is re-panicked.
func Recover(w Writer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				err = fmt.Errorf("panic: %w", err)
				zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("recovered")
				w.WriteError(rw, r, err)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// Chain applies mws so that the first one is outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
