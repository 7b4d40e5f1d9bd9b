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
	"github.com/jinzhu/gorm"

	"dirpx.dev/dweb/filter"
)

const (
	// PageParam is the parameter holding the 1-based page number.
	PageParam = "page"
	// PerPageParam is the parameter holding the page size.
	PerPageParam = "per_page"
)

// Filter returns a scope applying f to params. A handler error is attached
// to the returned *gorm.DB with AddError, so it surfaces from the terminal
// call (Find, Count, ...) unchanged.
func Filter(f *filter.Filter[*gorm.DB], params filter.Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		// AddError mutates its receiver; keep the caller's handle clean.
		db = db.Set("dweb:filter", true)
		out, err := f.Apply(db, params)
		if err != nil {
			_ = db.AddError(err)
			return db
		}
		return out
	}
}

// Paginate returns a scope applying Offset and Limit computed by Page.
func Paginate(params filter.Params, defaultPerPage, maxPerPage int) func(*gorm.DB) *gorm.DB {
	page, perPage := Page(params, defaultPerPage, maxPerPage)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * perPage).Limit(perPage)
	}
}

// Page reads the page number and page size from params.
//
// A missing or malformed page is 1. A missing or malformed per_page is
// defaultPerPage; per_page is capped at maxPerPage when maxPerPage > 0.
// A non-positive defaultPerPage is treated as 15.
func Page(params filter.Params, defaultPerPage, maxPerPage int) (page, perPage int) {
	if defaultPerPage <= 0 {
		defaultPerPage = 15
	}
	page = positive(params, PageParam, 1)
	perPage = positive(params, PerPageParam, defaultPerPage)
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func positive(params filter.Params, name string, def int) int {
	v, ok := params.Get(name)
	if !ok {
		return def
	}
	n, err := v.Int()
	if err != nil || n < 1 {
		return def
	}
	return n
}
