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

// Package mapper provides deterministic, immutable mappings from dweb error
// kinds (dirpx.dev/dweb/kind) to transport-level statuses for HTTP and gRPC.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the Kind;
//  2. per-Kind default (library or user-adjusted);
//  3. global fallback (500 / codes.Internal), also used for
//     kind.Unclassified.
//
// # Library defaults
//
// The package ships with defaults matching common REST conventions:
//
//	internal      -> 500 / Internal
//	external      -> 503 / Unavailable
//	validation    -> 422 / InvalidArgument
//	auth          -> 401 / Unauthenticated
//	not_found     -> 404 / NotFound
//	access_denied -> 403 / PermissionDenied
//	rate_limit    -> 429 / ResourceExhausted
//
// # Building a mapper
//
// A Mapper is created once and reused:
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride(kind.Validation, http.StatusBadRequest),
//	)
//	if err != nil {
//	    // unknown kind or out-of-range status
//	}
//
//	st := m.Status(kind.Validation)
//	// st.HTTP == 400, st.GRPC == codes.InvalidArgument
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of how a kind was resolved.
// It is meant for inspection and logging, not for machine parsing.
//
// # Immutability
//
// All user-provided inputs are copied during New. A Mapper is safe to share
// across handlers, goroutines and requests.
package mapper
