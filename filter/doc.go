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

// Package filter maps request parameters onto query-builder calls.
//
// A Filter is a table of handlers keyed by field name, built once:
//
//	var Posts = filter.New(filter.Handlers[*gorm.DB]{
//	    "title": func(db *gorm.DB, v filter.Value) (*gorm.DB, error) {
//	        return db.Where("title LIKE ?", "%"+v.String()+"%"), nil
//	    },
//	    "categoryId": func(db *gorm.DB, v filter.Value) (*gorm.DB, error) {
//	        return db.Where("category_id IN (?)", v.Strings()), nil
//	    },
//	})
//
//	db, err = Posts.Apply(db, filter.FromQuery(r.URL.Query()))
//
// Apply walks the parameters in order and, for every non-empty value, calls
// the handler registered under the parameter name, or under its camelCase
// form ("category_id" -> "categoryId"). Parameters without a handler are
// ignored, so a filter can be applied to untrusted input without an
// allow-list.
//
// Empty strings, nulls and empty lists are never dispatched. Scalars are
// whitespace-trimmed first.
//
// Handlers receive the current builder and return the next one, which suits
// chaining builders such as gorm. A handler error stops the pass and is
// returned unchanged.
package filter
