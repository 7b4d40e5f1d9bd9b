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

// Package dweb is a small toolkit for JSON web services.
//
// The root package holds the application error type. The rest of the
// toolkit lives in subpackages:
//
//   - filter:   maps request parameters onto query-builder calls by field name;
//   - response: the uniform {code, msg, data, request_id} envelope;
//   - render:   turns any error into a client-safe envelope and status;
//   - mapper:   resolves error kinds to HTTP and gRPC statuses;
//   - httpx, grpcx: transport glue;
//   - orm:      gorm scopes and column types;
//   - lang:     embedded message catalogs.
//
// A typical handler returns either a value or an *Error built with one of
// the kind constructors:
//
//	if post == nil {
//	    return nil, dweb.NotFound("post not found")
//	}
//	if len(problems) > 0 {
//	    return nil, dweb.Validation("invalid input", problems)
//	}
package dweb
