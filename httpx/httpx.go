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

// Package httpx connects the renderer and the response envelope to
// net/http: an error writer, a handler adapter and request middleware.
package httpx

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"dirpx.dev/dweb/render"
	"dirpx.dev/dweb/response"
)

// Writer turns handler outcomes into envelope responses.
type Writer struct {
	Renderer *render.Renderer
	Options  response.WriteOptions
}

// NewWriter returns a Writer using r, or render.New() when r is nil.
func NewWriter(r *render.Renderer, opts response.WriteOptions) Writer {
	if r == nil {
		r = render.New()
	}
	return Writer{Renderer: r, Options: opts}
}

// Meta collects the request id and language set by the middleware.
func Meta(r *http.Request) response.Meta {
	ctx := r.Context()
	return response.Meta{
		RequestID: RequestIDFrom(ctx),
		Language:  LanguageFrom(ctx),
	}
}

// WriteSuccess writes data in a success envelope with status 200.
func (w Writer) WriteSuccess(rw http.ResponseWriter, r *http.Request, data any) {
	env := w.renderer().Builder().Success(data, Meta(r))
	w.write(rw, r, http.StatusOK, env)
}

// WriteError renders err and writes it.
//
// When the renderer declines (debug mode and an unclassified error) the
// raw error is exposed with status 500 so developers can see it.
func (w Writer) WriteError(rw http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	meta := Meta(r)
	res, ok := w.renderer().Render(err, meta)
	if !ok {
		env := response.Make(map[string]any{
			"error": err.Error(),
			"type":  fmt.Sprintf("%T", err),
		}, http.StatusInternalServerError, err.Error(), meta)
		w.write(rw, r, http.StatusInternalServerError, env)
		return
	}
	w.write(rw, r, res.HTTP, res.Envelope)
}

func (w Writer) write(rw http.ResponseWriter, r *http.Request, status int, env response.Envelope) {
	if err := response.WriteStatus(rw, status, env, w.Options); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("write response")
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (w Writer) renderer() *render.Renderer {
	if w.Renderer == nil {
		return render.New()
	}
	return w.Renderer
}

// HandlerFunc is an endpoint returning its payload or an error.
type HandlerFunc func(r *http.Request) (any, error)

// Handle adapts fn to http.Handler: a nil error writes a success envelope
// around the payload, anything else goes through WriteError.
func Handle(w Writer, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		data, err := fn(r)
		if err != nil {
			w.WriteError(rw, r, err)
			return
		}
		w.WriteSuccess(rw, r, data)
	})
}
