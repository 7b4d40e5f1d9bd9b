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

// Package orm binds dweb to github.com/jinzhu/gorm.
//
// It provides:
//   - Filter, a scope running a filter.Filter over a *gorm.DB;
//   - Paginate, a scope reading "page" and "per_page" parameters;
//   - DateTime and JSON column types with the JSON shapes API clients
//     expect ("2006-01-02 15:04:05" dates, unescaped JSON);
//   - Classify, which turns storage errors into dweb errors.
//
// Typical use:
//
//	var posts []Post
//	err := db.Model(&Post{}).
//	    Scopes(orm.Filter(postFilter, params), orm.Paginate(params, 15, 100)).
//	    Find(&posts).Error
//	if err != nil {
//	    return orm.Classify(err)
//	}
package orm
