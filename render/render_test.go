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
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dirpx.dev/dweb"
	"dirpx.dev/dweb/kind"
	"dirpx.dev/dweb/mapper"
	"dirpx.dev/dweb/response"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"google.golang.org/grpc/codes"
)

var en = response.Meta{Language: language.English}

func TestRender_Table(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		wantData any
		wantGRPC codes.Code
	}{
		{
			name:     "validation",
			err:      dweb.Validation("The email field is required.", map[string][]string{"email": {"required"}}),
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "The email field is required.",
			wantData: map[string][]string{"email": {"required"}},
			wantGRPC: codes.InvalidArgument,
		},
		{
			name:     "validation ignores explicit status",
			err:      dweb.Validation("bad", nil).WithStatus(400),
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "bad",
			wantData: map[string][]string{},
			wantGRPC: codes.InvalidArgument,
		},
		{
			name:     "rate limit keeps own status",
			err:      dweb.RateLimit("Too Many Attempts.").WithStatus(http.StatusTooManyRequests),
			wantCode: http.StatusTooManyRequests,
			wantMsg:  "Too Many Attempts.",
			wantGRPC: codes.ResourceExhausted,
		},
		{
			name:     "access denied without status uses default",
			err:      dweb.AccessDenied("This action is unauthorized."),
			wantCode: http.StatusForbidden,
			wantMsg:  "This action is unauthorized.",
			wantGRPC: codes.PermissionDenied,
		},
		{
			name:     "auth is always 401",
			err:      dweb.Auth("Unauthenticated.").WithStatus(499),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Unauthenticated.",
			wantGRPC: codes.Unauthenticated,
		},
		{
			name:     "internal with code and data",
			err:      dweb.Fail("balance too low", 10001, map[string]int{"balance": 3}, nil),
			wantCode: 10001,
			wantMsg:  "balance too low",
			wantData: map[string]int{"balance": 3},
			wantGRPC: codes.Internal,
		},
		{
			name:     "internal without message",
			err:      dweb.Fail("", 0, nil, nil),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  "System error, please try again later",
			wantGRPC: codes.Internal,
		},
		{
			name:     "external",
			err:      dweb.External("payment gateway down"),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  "payment gateway down",
			wantGRPC: codes.Unavailable,
		},
		{
			name:     "not found wrapping a missing record",
			err:      dweb.NotFound("no rows in result set for posts#42").WithCause(fmt.Errorf("lookup: %w", dweb.ErrRecordNotFound)),
			wantCode: http.StatusNotFound,
			wantMsg:  "The requested resource was not found",
			wantGRPC: codes.NotFound,
		},
		{
			name:     "not found route",
			err:      dweb.NotFound("route /nope could not be found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "route /nope could not be found",
			wantGRPC: codes.NotFound,
		},
		{
			name:     "wrapped dweb error",
			err:      fmt.Errorf("service: %w", dweb.Auth("token expired")),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "token expired",
			wantGRPC: codes.Unauthenticated,
		},
		{
			name:     "unclassified",
			err:      errors.New("pq: relation \"users\" does not exist"),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  "System error, please try again later",
			wantGRPC: codes.Internal,
		},
		{
			name:     "unknown kind is unclassified",
			err:      dweb.E(kind.Kind("conflict"), "secret detail"),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  "System error, please try again later",
			wantGRPC: codes.Internal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := r.Render(tt.err, en)
			require.True(t, ok)
			require.Equal(t, tt.wantCode, res.Envelope.Code)
			require.Equal(t, tt.wantMsg, res.Envelope.Msg)
			require.Equal(t, tt.wantData, res.Envelope.Data)
			require.Equal(t, tt.wantGRPC, res.GRPC)
			require.Equal(t, response.HTTPStatus(tt.wantCode), res.HTTP)
		})
	}
}

func TestRender_EveryKnownKindIsHandled(t *testing.T) {
	r := New(WithDebug(true))
	for _, k := range kind.All {
		res, ok := r.Render(dweb.E(k, "x"), en)
		require.True(t, ok, "kind %q fell through to the unclassified branch", k)
		require.Equal(t, k, res.Kind)
	}
}

func TestRender_Unclassified_HidesMessageRegardlessOfText(t *testing.T) {
	r := New()
	for _, msg := range []string{"", "panic: runtime error", "password=hunter2", "用户不存在"} {
		res, ok := r.Render(errors.New(msg), en)
		require.True(t, ok)
		require.Equal(t, "System error, please try again later", res.Envelope.Msg)
		require.Nil(t, res.Envelope.Data)
		require.Equal(t, kind.Unclassified, res.Kind)
	}
}

func TestRender_Unclassified_DebugIsNotHandled(t *testing.T) {
	r := New(WithDebug(true))
	_, ok := r.Render(errors.New("boom"), en)
	require.False(t, ok)

	res, ok := r.Render(dweb.NotFound("missing"), en)
	require.True(t, ok, "classified errors are rendered in debug mode too")
	require.Equal(t, "missing", res.Envelope.Msg)
}

func TestRender_Nil(t *testing.T) {
	_, ok := New().Render(nil, en)
	require.False(t, ok)
}

func TestRender_LocalizedAndRequestID(t *testing.T) {
	r := New()
	meta := response.Meta{RequestID: "req-9", Language: language.SimplifiedChinese}

	res, ok := r.Render(errors.New("boom"), meta)
	require.True(t, ok)
	require.Equal(t, "系统错误，请稍后再试", res.Envelope.Msg)
	require.Equal(t, "req-9", res.Envelope.RequestID)

	res, _ = r.Render(dweb.NotFound("x").WithCause(dweb.ErrRecordNotFound), meta)
	require.Equal(t, "请求的资源不存在", res.Envelope.Msg)
}

func TestRender_Options(t *testing.T) {
	m, err := mapper.New(mapper.WithHTTPOverride(kind.Validation, http.StatusBadRequest))
	require.NoError(t, err)

	sentinel := errors.New("sql: no rows in result set")
	r := New(
		WithMapper(m),
		WithUnclassifiedStatus(http.StatusInternalServerError),
		WithRecordNotFound(func(err error) bool { return errors.Is(err, sentinel) }),
	)

	res, _ := r.Render(dweb.Validation("bad", nil), en)
	require.Equal(t, http.StatusBadRequest, res.Envelope.Code)

	res, _ = r.Render(errors.New("x"), en)
	require.Equal(t, http.StatusInternalServerError, res.Envelope.Code)

	res, _ = r.Render(dweb.NotFound("raw").WithCause(sentinel), en)
	require.Equal(t, "The requested resource was not found", res.Envelope.Msg)
}

// plainKinded is a kinded error that is not a *dweb.Error.
type plainKinded struct{ status int }

func (e plainKinded) Error() string        { return "quota exhausted" }
func (e plainKinded) ErrorKind() kind.Kind { return kind.RateLimit }
func (e plainKinded) StatusCode() int      { return e.status }

func TestRender_ForeignKindedError(t *testing.T) {
	res, ok := New().Render(plainKinded{status: 420}, en)
	require.True(t, ok)
	require.Equal(t, 420, res.Envelope.Code)
	require.Equal(t, "quota exhausted", res.Envelope.Msg)
}

// joinedNotFound is a not_found error with several causes.
type joinedNotFound struct{ causes []error }

func (e joinedNotFound) Error() string        { return "posts#42: no rows" }
func (e joinedNotFound) ErrorKind() kind.Kind { return kind.NotFound }
func (e joinedNotFound) Unwrap() []error      { return e.causes }

func TestRender_NotFound_MultiCause(t *testing.T) {
	res, ok := New().Render(joinedNotFound{causes: []error{
		errors.New("cache miss"),
		fmt.Errorf("db: %w", dweb.ErrRecordNotFound),
	}}, en)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, res.Envelope.Code)
	require.Equal(t, "The requested resource was not found", res.Envelope.Msg)

	res, _ = New().Render(joinedNotFound{causes: []error{errors.New("cache miss"), nil}}, en)
	require.Equal(t, "posts#42: no rows", res.Envelope.Msg)
}

func TestRender_LogsAndCounts(t *testing.T) {
	var buf bytes.Buffer
	metrics, err := NewMetrics(nil)
	require.NoError(t, err)

	r := New(WithLogger(zerolog.New(&buf)), WithMetrics(metrics))
	_, _ = r.Render(errors.New("boom"), response.Meta{RequestID: "abc"})
	_, _ = r.Render(dweb.NotFound("x"), en)
	_, _ = r.Render(dweb.NotFound("y"), en)

	require.Contains(t, buf.String(), `"kind":"unclassified"`)
	require.Contains(t, buf.String(), `"request_id":"abc"`)
	require.Contains(t, buf.String(), `"level":"error"`)
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Collector().WithLabelValues("unclassified", "503")))
	require.Equal(t, 2.0, testutil.ToFloat64(metrics.Collector().WithLabelValues("not_found", "404")))
}
