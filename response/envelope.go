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

// Package response builds the uniform JSON envelope every endpoint returns:
//
//	{"code": 200, "msg": "Success", "data": {...}, "request_id": "..."}
//
// request_id is present only when the caller passes one in Meta.
package response

import (
	"net/http"

	"dirpx.dev/dweb/apis"
	"dirpx.dev/dweb/lang"
	"golang.org/x/text/language"
)

// DefaultErrorCode is the code Builder.Error uses when given 0.
const DefaultErrorCode = http.StatusServiceUnavailable

// Envelope is the outbound response body. It is built fresh per response.
type Envelope struct {
	Code      int    `json:"code"`
	Msg       string `json:"msg"`
	Data      any    `json:"data"`
	RequestID string `json:"request_id,omitempty"`
}

// Meta carries the request-scoped values an envelope depends on. It is
// passed explicitly by the caller; nothing is read from ambient state.
type Meta struct {
	// RequestID is the correlation id echoed as request_id. Empty omits it.
	RequestID string
	// Language selects the translation of built-in messages.
	Language language.Tag
}

// Make is the single envelope constructor. data is passed through untouched.
func Make(data any, code int, message string, meta Meta) Envelope {
	return Envelope{
		Code:      code,
		Msg:       message,
		Data:      data,
		RequestID: meta.RequestID,
	}
}

// Builder adds the localized success message and the default error code on
// top of Make.
type Builder struct {
	Translator apis.Translator
}

// NewBuilder returns a Builder using t, or the embedded catalog when t is nil.
func NewBuilder(t apis.Translator) Builder {
	if t == nil {
		t = lang.Default()
	}
	return Builder{Translator: t}
}

// Success wraps data with code 200 and the localized success message.
func (b Builder) Success(data any, meta Meta) Envelope {
	return Make(data, http.StatusOK, b.Message(meta, lang.KeySuccess), meta)
}

// Error wraps an error message. A zero code becomes DefaultErrorCode.
func (b Builder) Error(message string, code int, data any, meta Meta) Envelope {
	if code == 0 {
		code = DefaultErrorCode
	}
	return Make(data, code, message, meta)
}

// Message translates key for meta's language.
func (b Builder) Message(meta Meta, key lang.Key) string {
	if b.Translator == nil {
		return string(key)
	}
	return b.Translator.Translate(meta.Language, string(key))
}
