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

// Package kind defines the closed set of error kinds understood by dweb.
//
// A kind is the top-level classification of an application error, such as
// "validation", "not_found" or "rate_limit". The response renderer switches
// on it to decide which HTTP status, message and payload a client sees.
//
// Unlike free-form error codes, the set is closed: Parse rejects any value
// that is not listed in All. Adding a kind means adding it to All, to the
// mapper defaults and to the renderer switch; the tests in those packages
// iterate All and fail when one of them is missed.
package kind
