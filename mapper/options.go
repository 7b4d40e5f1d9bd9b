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
	"fmt"

	"dirpx.dev/dweb/kind"
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time.
type Option func(*builder)

// WithHTTPDefault replaces the library default HTTP status for k.
func WithHTTPDefault(k kind.Kind, status int) Option {
	return func(b *builder) {
		if b.checkHTTP("WithHTTPDefault", k, status) {
			b.httpDefaults[k] = status
		}
	}
}

// WithGRPCDefault replaces the library default gRPC status for k.
func WithGRPCDefault(k kind.Kind, c codes.Code) Option {
	return func(b *builder) {
		if b.checkKind("WithGRPCDefault", k) {
			b.grpcDefaults[k] = c
		}
	}
}

// WithHTTPOverride registers an exact HTTP override for k.
func WithHTTPOverride(k kind.Kind, status int) Option {
	return func(b *builder) {
		if b.checkHTTP("WithHTTPOverride", k, status) {
			b.httpOverride[k] = status
		}
	}
}

// WithGRPCOverride registers an exact gRPC override for k.
func WithGRPCOverride(k kind.Kind, c codes.Code) Option {
	return func(b *builder) {
		if b.checkKind("WithGRPCOverride", k) {
			b.grpcOverride[k] = c
		}
	}
}

// WithFallback replaces the statuses used for kinds without any rule,
// including kind.Unclassified.
func WithFallback(status int, c codes.Code) Option {
	return func(b *builder) {
		if !validHTTP(status) {
			b.errs = append(b.errs, fmt.Errorf("WithFallback: HTTP status %d out of range", status))
			return
		}
		b.fallbackHTTP = status
		b.fallbackGRPC = c
	}
}

func (b *builder) checkKind(op string, k kind.Kind) bool {
	if err := kind.Validate(k); err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s(%q): %w", op, k, err))
		return false
	}
	return true
}

func (b *builder) checkHTTP(op string, k kind.Kind, status int) bool {
	if !b.checkKind(op, k) {
		return false
	}
	if !validHTTP(status) {
		b.errs = append(b.errs, fmt.Errorf("%s(%q): HTTP status %d out of range", op, k, status))
		return false
	}
	return true
}

func validHTTP(status int) bool {
	return status >= 100 && status <= 599
}
