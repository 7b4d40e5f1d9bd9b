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

package kind

// Application-flagged kinds
//
// These are raised by application code through the dweb constructors and
// carry an explicit status, message and data payload.
const (
	// Internal is an application failure with an explicit code, message and
	// optional data payload. The message is shown to the client as-is.
	//
	// Can be mapped to an HTTP 500.
	Internal Kind = "internal"

	// External is a failure of an upstream dependency (database, remote
	// API, message broker). Rendered like Internal but logged louder.
	//
	// Can be mapped to an HTTP 503.
	External Kind = "external"
)

// Request / access kinds
//
// These mirror the failures a web framework itself produces while handling
// a request. They are mapped rather than raised by business logic.
const (
	// Validation indicates that request input failed validation. The error
	// carries a field -> messages map that is returned as the payload.
	//
	// Can be mapped to an HTTP 422.
	Validation Kind = "validation"

	// Auth indicates the caller is not authenticated.
	//
	// Can be mapped to an HTTP 401.
	Auth Kind = "auth"

	// NotFound indicates the route or the addressed record does not exist.
	//
	// Can be mapped to an HTTP 404.
	NotFound Kind = "not_found"

	// AccessDenied indicates the caller is authenticated but not allowed.
	//
	// Can be mapped to an HTTP 403.
	AccessDenied Kind = "access_denied"

	// RateLimit indicates the caller hit a throttle.
	//
	// Can be mapped to an HTTP 429.
	RateLimit Kind = "rate_limit"
)

// All lists every known kind in declaration order.
var All = []Kind{
	Internal,
	External,
	Validation,
	Auth,
	NotFound,
	AccessDenied,
	RateLimit,
}

var known = func() map[Kind]struct{} {
	m := make(map[Kind]struct{}, len(All))
	for _, k := range All {
		m[k] = struct{}{}
	}
	return m
}()
