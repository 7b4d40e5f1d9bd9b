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

// Package lang holds the localized messages dweb puts into envelopes.
//
// Messages are addressed by Key, a dot-separated identifier such as
// "system.error" or "resource.not_found". A Catalog is loaded from YAML
// files named after BCP 47 tags (en.yaml, zh-Hans.yaml); nested mappings are
// flattened into dotted keys. Default returns the catalog embedded in this
// package. Applications override or extend it by passing their own fs.FS to
// Load after the embedded one.
//
// Language negotiation uses golang.org/x/text/language, so "zh-CN" or
// "zh-TW;q=0.8, en" resolve to the closest supported language.
package lang
