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

// Package render is the single place where a failure becomes a client-safe
// response.
//
// Renderer.Render inspects the kind of an error (see package kind) and
// produces the HTTP status and envelope to send:
//
//	validation                   -> 422, error message, field error map
//	rate_limit, access_denied    -> error's own status, error message
//	auth                         -> 401, error message
//	internal, external           -> error's own status, message and data
//	not_found (record missing)   -> error's status, localized "not found"
//	not_found (other)            -> error's status, error message
//	anything else, debug off     -> 503, localized "system error"
//	anything else, debug on      -> not handled; the caller decides
//
// Fixed statuses come from an apis.Mapper, so they can be adjusted with
// mapper options. Errors without an explicit status use the mapper default
// for their kind.
package render
