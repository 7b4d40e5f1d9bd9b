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
	"strings"

	"github.com/jinzhu/gorm"

	"dirpx.dev/dweb/filter"
	"dirpx.dev/dweb/orm"
)

// Category groups posts.
type Category struct {
	ID   uint   `gorm:"primary_key" json:"id"`
	Name string `json:"name"`
}

// Post is a blog post.
type Post struct {
	ID         uint               `gorm:"primary_key" json:"id"`
	Title      string             `json:"title"`
	Body       string             `json:"body"`
	Published  bool               `json:"published"`
	CategoryID uint               `json:"category_id"`
	Category   *Category          `json:"category,omitempty"`
	Tags       orm.JSON[[]string] `gorm:"type:jsonb" json:"tags"`
	CreatedAt  orm.DateTime       `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt  orm.DateTime       `gorm:"type:timestamp" json:"updated_at"`
}

// PostPage is one page of a listing.
type PostPage struct {
	Items   []Post `json:"items"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// relations lists what "include" may eager-load.
var relations = map[string]string{
	"category": "Category",
}

// newPostFilter declares the parameters a post listing understands:
//
//	title=go            title contains "go"
//	category_id[]=1&... category in the list
//	published=1         published flag
//	created_from=...    created at or after ("2006-01-02 15:04:05")
//	include=category    eager-load relations
func newPostFilter() *filter.Filter[*gorm.DB] {
	return filter.New(filter.Handlers[*gorm.DB]{
		"title": func(db *gorm.DB, v filter.Value) (*gorm.DB, error) {
			return db.Where("title ILIKE ?", "%"+v.String()+"%"), nil
		},
		"categoryId": func(db *gorm.DB, v filter.Value) (*gorm.DB, error) {
			ids, err := v.Ints()
			if err != nil {
				return db, err
			}
			return db.Where("category_id IN (?)", ids), nil
		},
		"published": func(db *gorm.DB, v filter.Value) (*gorm.DB, error) {
			b, err := v.Bool()
			if err != nil {
				return db, err
			}
			return db.Where("published = ?", b), nil
		},
		"createdFrom": func(db *gorm.DB, v filter.Value) (*gorm.DB, error) {
			var from orm.DateTime
			if err := from.Scan(v.String()); err != nil {
				return db, invalidDate(v)
			}
			return db.Where("created_at >= ?", from.Time), nil
		},
		"include": func(db *gorm.DB, v filter.Value) (*gorm.DB, error) {
			var names []string
			for _, item := range v.Strings() {
				for _, name := range strings.Split(item, ",") {
					if rel, ok := relations[strings.TrimSpace(name)]; ok {
						names = append(names, rel)
					}
				}
			}
			return filter.With(db, names...), nil
		},
	})
}

// gormPosts is the postgres-backed postStore.
type gormPosts struct {
	db         *gorm.DB
	filter     *filter.Filter[*gorm.DB]
	perPage    int
	maxPerPage int
}

func newGormPosts(db *gorm.DB, perPage, maxPerPage int) *gormPosts {
	return &gormPosts{db: db, filter: newPostFilter(), perPage: perPage, maxPerPage: maxPerPage}
}

func (s *gormPosts) List(params filter.Params) (PostPage, error) {
	q := s.db.Model(&Post{}).Scopes(orm.Filter(s.filter, params))
	if q.Error != nil {
		return PostPage{}, orm.Classify(q.Error)
	}

	var total int
	if err := q.Count(&total).Error; err != nil {
		return PostPage{}, orm.Classify(err)
	}

	page, perPage := orm.Page(params, s.perPage, s.maxPerPage)
	posts := make([]Post, 0, perPage)
	err := q.Scopes(orm.Paginate(params, s.perPage, s.maxPerPage)).
		Order("id desc").
		Find(&posts).Error
	if err != nil {
		return PostPage{}, orm.Classify(err)
	}
	return PostPage{Items: posts, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *gormPosts) Get(id uint) (Post, error) {
	var p Post
	if err := s.db.Preload("Category").First(&p, id).Error; err != nil {
		return Post{}, orm.Classify(err)
	}
	return p, nil
}
