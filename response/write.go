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

package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteOptions controls serialization of an envelope.
type WriteOptions struct {
	// EscapeHTML escapes <, > and & in strings. Off by default so that
	// messages and payloads reach clients verbatim.
	EscapeHTML bool
	// Headers are copied onto the response before the status is written.
	Headers http.Header
}

// HTTPStatus returns the HTTP status used for an envelope code. Codes in
// the HTTP range are used as-is; business codes outside it are reported in
// the body and sent with 200.
func HTTPStatus(code int) int {
	if code >= 100 && code <= 599 {
		return code
	}
	return http.StatusOK
}

// Marshal encodes env as JSON without a trailing newline.
func Marshal(env Envelope, opts WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(opts.EscapeHTML)
	if err := enc.Encode(env); err != nil {
		return nil, fmt.Errorf("response: encode envelope: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write serializes env and writes it with HTTPStatus(env.Code).
//
// The body is encoded before anything is written, so an encoding failure
// leaves the ResponseWriter untouched and the caller can still answer.
func Write(w http.ResponseWriter, env Envelope, opts WriteOptions) error {
	return WriteStatus(w, HTTPStatus(env.Code), env, opts)
}

// WriteStatus is Write with an explicit HTTP status.
func WriteStatus(w http.ResponseWriter, status int, env Envelope, opts WriteOptions) error {
	b, err := Marshal(env, opts)
	if err != nil {
		return err
	}
	h := w.Header()
	for k, vs := range opts.Headers {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	h.Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
