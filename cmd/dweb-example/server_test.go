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
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"dirpx.dev/dweb"
	"dirpx.dev/dweb/config"
	"dirpx.dev/dweb/filter"
	"dirpx.dev/dweb/kind"
	"dirpx.dev/dweb/orm"
)

type fakeStore struct {
	posts   map[uint]Post
	params  filter.Params
	listErr error
}

func (f *fakeStore) List(params filter.Params) (PostPage, error) {
	f.params = params
	if f.listErr != nil {
		return PostPage{}, f.listErr
	}
	items := make([]Post, 0, len(f.posts))
	for _, p := range f.posts {
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return PostPage{Items: items, Total: len(items), Page: 1, PerPage: 15}, nil
}

func (f *fakeStore) Get(id uint) (Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return Post{}, orm.Classify(gorm.ErrRecordNotFound)
	}
	return p, nil
}

type envelope struct {
	Code      int             `json:"code"`
	Msg       string          `json:"msg"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
}

func newTestServer(t *testing.T, store postStore) http.Handler {
	t.Helper()
	h, err := newServer(config.Default(), zerolog.Nop(), store, prometheus.NewRegistry())
	require.NoError(t, err)
	return h
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func samplePosts() map[uint]Post {
	created := orm.NewDateTime(time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local))
	return map[uint]Post{
		1: {ID: 1, Title: "Go generics", CategoryID: 2, Tags: orm.NewJSON([]string{"go"}), CreatedAt: created},
		2: {ID: 2, Title: "Postgres <tips>", CategoryID: 3, CreatedAt: created},
	}
}

func TestListPosts(t *testing.T) {
	store := &fakeStore{posts: samplePosts()}
	rec, env := do(t, newTestServer(t, store), httptest.NewRequest(http.MethodGet, "/posts?title=go&category_id[]=2&category_id[]=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 200, env.Code)
	require.Equal(t, "Success", env.Msg)
	require.NotEmpty(t, env.RequestID)

	var page PostPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 2)
	require.Equal(t, "Postgres <tips>", page.Items[1].Title)
	require.Contains(t, string(env.Data), `"created_at":"2024-05-01 09:30:00"`)
	require.Contains(t, string(env.Data), `"tags":["go"]`)

	v, ok := store.params.Get("category_id")
	require.True(t, ok)
	require.Equal(t, []string{"2", "3"}, v.Strings())
}

func TestSearchPosts(t *testing.T) {
	store := &fakeStore{posts: samplePosts()}
	h := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodPost, "/posts/search", strings.NewReader(`{"category_id":[2,3],"published":true}`))
	rec, _ := do(t, h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	v, _ := store.params.Get("category_id")
	require.Equal(t, []string{"2", "3"}, v.Strings())
	v, _ = store.params.Get("published")
	require.Equal(t, "1", v.String())

	rec, env := do(t, h, httptest.NewRequest(http.MethodPost, "/posts/search", strings.NewReader("[1,2")))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.JSONEq(t, `{"body":["json"]}`, string(env.Data))
}

func TestShowPost(t *testing.T) {
	h := newTestServer(t, &fakeStore{posts: samplePosts()})

	rec, env := do(t, h, httptest.NewRequest(http.MethodGet, "/posts/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, string(env.Data), `"title":"Go generics"`)

	rec, env = do(t, h, httptest.NewRequest(http.MethodGet, "/posts/abc", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "The id must be a positive integer.", env.Msg)

	rec, env = do(t, h, httptest.NewRequest(http.MethodGet, "/posts/99", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "The requested resource was not found", env.Msg)
	require.JSONEq(t, "null", string(env.Data))

	req := httptest.NewRequest(http.MethodGet, "/posts/99", nil)
	req.Header.Set("Accept-Language", "zh-CN")
	_, env = do(t, h, req)
	require.Equal(t, "请求的资源不存在", env.Msg)
}

func TestStoreFailureIsHidden(t *testing.T) {
	store := &fakeStore{listErr: orm.Classify(&pq.Error{Code: "08006", Message: "password authentication failed for user"})}
	rec, env := do(t, newTestServer(t, store), httptest.NewRequest(http.MethodGet, "/posts", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "System error, please try again later", env.Msg)
	require.NotContains(t, rec.Body.String(), "password")
}

func TestRouterFallbacks(t *testing.T) {
	h := newTestServer(t, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("X-Request-ID", "trace-1")
	rec, env := do(t, h, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "route not found", env.Msg)
	require.Equal(t, "trace-1", env.RequestID)
	require.Equal(t, "trace-1", rec.Header().Get("X-Request-ID"))

	rec, env = do(t, h, httptest.NewRequest(http.MethodDelete, "/posts", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, 405, env.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, &fakeStore{})
	do(t, h, httptest.NewRequest(http.MethodGet, "/posts/5", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `dweb_rendered_errors_total{code="404",kind="not_found"} 1`)
}

func openUnreachableDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, err := sql.Open("postgres", "host=/nonexistent dbname=dweb sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, _ := gorm.Open("postgres", sqlDB)
	require.NotNil(t, db)
	return db.LogMode(false)
}

func TestGormPosts_InvalidFilterStopsBeforeQuerying(t *testing.T) {
	s := newGormPosts(openUnreachableDB(t), 15, 100)

	tests := []struct {
		query url.Values
		field string
	}{
		{url.Values{"category_id": {"x"}}, "category_id"},
		{url.Values{"published": {"maybe"}}, "published"},
		{url.Values{"created_from": {"yesterday"}}, "created_from"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := s.List(filter.FromQuery(tt.query))
			de, ok := dweb.As(err)
			require.True(t, ok, "%v", err)
			require.Equal(t, kind.Validation, de.Kind)
			require.Contains(t, de.Fields, tt.field)
		})
	}
}

func TestPostFilter_Fields(t *testing.T) {
	require.Equal(t, []string{"categoryId", "createdFrom", "include", "published", "title"}, newPostFilter().Fields())
}

func TestNewServer_RegionalLocale(t *testing.T) {
	cfg := config.Default()
	cfg.Locale = language.MustParse("zh-CN")
	h, err := newServer(cfg, zerolog.Nop(), &fakeStore{}, prometheus.NewRegistry())
	require.NoError(t, err)

	_, env := do(t, h, httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.Equal(t, "操作成功", env.Msg)
}
