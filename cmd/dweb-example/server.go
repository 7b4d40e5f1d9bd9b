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

package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"dirpx.dev/dweb"
	"dirpx.dev/dweb/config"
	"dirpx.dev/dweb/filter"
	"dirpx.dev/dweb/httpx"
	"dirpx.dev/dweb/lang"
	"dirpx.dev/dweb/orm"
	"dirpx.dev/dweb/render"
	"dirpx.dev/dweb/response"
)

type postStore interface {
	List(params filter.Params) (PostPage, error)
	Get(id uint) (Post, error)
}

// newServer wires the router. Every route, including unknown ones, goes
// through the same middleware and answers with an envelope.
func newServer(cfg config.Config, log zerolog.Logger, store postStore, reg *prometheus.Registry) (http.Handler, error) {
	catalog, err := lang.DefaultWith(cfg.Locale)
	if err != nil {
		return nil, err
	}
	metrics, err := render.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	renderer := render.New(
		render.WithDebug(cfg.Debug),
		render.WithLogger(log),
		render.WithMetrics(metrics),
		render.WithTranslator(catalog),
		render.WithRecordNotFound(orm.IsRecordNotFound),
	)
	w := httpx.NewWriter(renderer, response.WriteOptions{})
	middleware := []httpx.Middleware{
		httpx.Logger(log),
		httpx.RequestID(cfg.RequestIDHeader),
		httpx.Locale(catalog),
		httpx.Recover(w),
	}

	r := mux.NewRouter()
	for _, mw := range middleware {
		r.Use(mw)
	}
	r.Handle("/posts", httpx.Handle(w, listPosts(store))).Methods(http.MethodGet)
	r.Handle("/posts/search", httpx.Handle(w, searchPosts(store))).Methods(http.MethodPost)
	r.Handle("/posts/{id}", httpx.Handle(w, showPost(store))).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Router-level fallbacks bypass r.Use.
	r.NotFoundHandler = httpx.Chain(httpx.Handle(w, func(*http.Request) (any, error) {
		return nil, dweb.NotFound("route not found")
	}), middleware...)
	r.MethodNotAllowedHandler = httpx.Chain(httpx.Handle(w, func(*http.Request) (any, error) {
		return nil, dweb.Fail("method not allowed", http.StatusMethodNotAllowed, nil, nil)
	}), middleware...)
	return r, nil
}

func listPosts(store postStore) httpx.HandlerFunc {
	return func(r *http.Request) (any, error) {
		return store.List(filter.FromQuery(r.URL.Query()))
	}
}

// searchPosts takes the filter as a JSON object, for clients that cannot
// express it in a query string.
func searchPosts(store postStore) httpx.HandlerFunc {
	return func(r *http.Request) (any, error) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, dweb.Validation("The request body must be a JSON object.",
				map[string][]string{"body": {"json"}}, dweb.WithCauseOption(err))
		}
		return store.List(filter.FromMap(body))
	}
}

func showPost(store postStore) httpx.HandlerFunc {
	return func(r *http.Request) (any, error) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
		if err != nil || id == 0 {
			return nil, dweb.Validation("The id must be a positive integer.",
				map[string][]string{"id": {"integer"}})
		}
		return store.Get(uint(id))
	}
}

func invalidDate(v filter.Value) error {
	return dweb.Validation("The "+v.Field()+" field must be a date like 2006-01-02 15:04:05.",
		map[string][]string{v.Field(): {"date"}})
}
