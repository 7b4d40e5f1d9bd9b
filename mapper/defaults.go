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

package mapper

import (
	"net/http"

	"dirpx.dev/dweb/kind"
	"google.golang.org/grpc/codes"
)

// defaultHTTP defines the built-in HTTP mappings for every known kind.
var defaultHTTP = map[kind.Kind]int{
	kind.Internal:     http.StatusInternalServerError, // Application failure; message is chosen by the application.
	kind.External:     http.StatusServiceUnavailable,  // A dependency is unreachable or failed.
	kind.Validation:   http.StatusUnprocessableEntity, // Request input failed validation.
	kind.Auth:         http.StatusUnauthorized,        // Caller must authenticate.
	kind.NotFound:     http.StatusNotFound,            // Route or record does not exist.
	kind.AccessDenied: http.StatusForbidden,           // Caller is authenticated but not allowed.
	kind.RateLimit:    http.StatusTooManyRequests,     // Caller hit a throttle.
}

// defaultGRPC defines the built-in gRPC mappings for every known kind.
var defaultGRPC = map[kind.Kind]codes.Code{
	kind.Internal:     codes.Internal,
	kind.External:     codes.Unavailable,
	kind.Validation:   codes.InvalidArgument,
	kind.Auth:         codes.Unauthenticated,
	kind.NotFound:     codes.NotFound,
	kind.AccessDenied: codes.PermissionDenied,
	kind.RateLimit:    codes.ResourceExhausted,
}
