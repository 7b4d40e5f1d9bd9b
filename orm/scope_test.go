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

package orm

import (
	"database/sql"
	"errors"
	"net/url"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dweb/filter"
)

// openDB returns a *gorm.DB bound to an unreachable server. Scopes only
// build statements, so nothing is ever sent.
func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, err := sql.Open("postgres", "host=/nonexistent dbname=dweb sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, _ := gorm.Open("postgres", sqlDB)
	require.NotNil(t, db)
	return db.LogMode(false)
}

func TestFilter_AppliesHandlers(t *testing.T) {
	var got []string
	f := filter.New(filter.Handlers[*gorm.DB]{
		"title": func(db *gorm.DB, v filter.Value) (*gorm.DB, error) {
			got = append(got, v.String())
			return db.Where("title LIKE ?", "%"+v.String()+"%"), nil
		},
	})

	root := openDB(t)
	out := root.Scopes(Filter(f, filter.FromQuery(url.Values{"title": {" go "}, "other": {"x"}})))

	require.NoError(t, out.Error)
	require.Equal(t, []string{"go"}, got)
	require.NotSame(t, root, out)
}

func TestFilter_HandlerErrorSurfacesOnDB(t *testing.T) {
	boom := errors.New("boom")
	f := filter.New(filter.Handlers[*gorm.DB]{
		"title": func(db *gorm.DB, v filter.Value) (*gorm.DB, error) { return db, boom },
	})

	root := openDB(t)
	out := root.Scopes(Filter(f, filter.Params{{Name: "title", Value: filter.Scalar("x")}}))

	require.ErrorIs(t, out.Error, boom)
	require.NoError(t, root.Error, "the caller's handle must stay clean")
}

func TestPage(t *testing.T) {
	tests := []struct {
		name          string
		query         url.Values
		def, max      int
		page, perPage int
	}{
		{"defaults", url.Values{}, 15, 100, 1, 15},
		{"explicit", url.Values{"page": {"3"}, "per_page": {"20"}}, 15, 100, 3, 20},
		{"capped", url.Values{"per_page": {"500"}}, 15, 100, 1, 100},
		{"no cap", url.Values{"per_page": {"500"}}, 15, 0, 1, 500},
		{"garbage", url.Values{"page": {"x"}, "per_page": {"-4"}}, 10, 100, 1, 10},
		{"zero page", url.Values{"page": {"0"}}, 10, 100, 1, 10},
		{"non-positive default", url.Values{}, 0, 0, 1, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := Page(filter.FromQuery(tt.query), tt.def, tt.max)
			require.Equal(t, tt.page, page)
			require.Equal(t, tt.perPage, perPage)
		})
	}
}

func TestPaginate_BuildsScope(t *testing.T) {
	root := openDB(t)
	out := root.Scopes(Paginate(filter.FromQuery(url.Values{"page": {"2"}}), 10, 50))
	require.NoError(t, out.Error)
	require.NotSame(t, root, out)
}

func TestFilter_ScopeAppliedTwice(t *testing.T) {
	calls := 0
	f := filter.New(filter.Handlers[*gorm.DB]{
		"title": func(db *gorm.DB, v filter.Value) (*gorm.DB, error) {
			calls++
			return db.Where("title LIKE ?", "%"+v.String()+"%"), nil
		},
	})
	params := filter.FromQuery(url.Values{"title": {"go"}})

	root := openDB(t)
	once := root.Scopes(Filter(f, params))
	twice := once.Scopes(Filter(f, params))

	require.NoError(t, once.Error)
	require.NoError(t, twice.Error)
	require.Equal(t, 2, calls)
	require.NoError(t, root.Error)
}
