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

type builder struct {
	// httpDefaults holds per-kind HTTP defaults seeded from the library
	// defaults and adjusted by WithHTTPDefault.
	httpDefaults map[kind.Kind]int
	// grpcDefaults holds per-kind gRPC defaults.
	grpcDefaults map[kind.Kind]codes.Code

	// httpOverride holds exact per-kind HTTP overrides (higher than defaults).
	httpOverride map[kind.Kind]int
	// grpcOverride holds exact per-kind gRPC overrides.
	grpcOverride map[kind.Kind]codes.Code

	// global fallbacks used when a kind has no rule at all.
	fallbackHTTP int
	fallbackGRPC codes.Code

	// errs collects option misuse reported by New.
	errs []error
}

func newBuilder() *builder {
	return &builder{
		httpDefaults: make(map[kind.Kind]int, len(defaultHTTP)),
		grpcDefaults: make(map[kind.Kind]codes.Code, len(defaultGRPC)),

		httpOverride: make(map[kind.Kind]int),
		grpcOverride: make(map[kind.Kind]codes.Code),

		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}
