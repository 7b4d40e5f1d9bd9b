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
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/dweb/apis"
	"dirpx.dev/dweb/kind"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process overview:
//
//  1. Seed the builder with library defaults (HTTP & gRPC).
//  2. Apply user-provided options (defaults, overrides, fallback).
//  3. Report every invalid option (unknown kind, out-of-range status).
//  4. Freeze all maps into fresh copies.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()

	// (1) Copy the package-level defaults into builder-owned maps.
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = v
	}

	// (2) Apply user-supplied options.
	for _, opt := range opts {
		opt(b)
	}

	// (3) Option misuse is collected rather than panicking mid-build.
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("mapper: %w", errors.Join(b.errs...))
	}

	// (4) Freeze everything into a read-only snapshot.
	return &mapper{
		httpDefault:  freeze(b.httpDefaults),
		grpcDefault:  freeze(b.grpcDefaults),
		httpOverride: freeze(b.httpOverride),
		grpcOverride: freeze(b.grpcOverride),
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

// Default returns a mapper with the library defaults only.
func Default() apis.Mapper {
	m, err := New()
	if err != nil {
		// The library defaults are static; failing here is a programming error.
		panic(err)
	}
	return m
}

// mapper combines per-kind defaults and per-kind exact overrides. Lookups
// are O(1) and safe for concurrent use once constructed.
type mapper struct {
	// httpDefault holds the base HTTP status for a given kind.
	httpDefault map[kind.Kind]int

	// grpcDefault holds the base gRPC status for a given kind.
	grpcDefault map[kind.Kind]codes.Code

	// httpOverride holds explicit HTTP statuses for specific kinds.
	httpOverride map[kind.Kind]int

	// grpcOverride holds explicit gRPC statuses for specific kinds.
	grpcOverride map[kind.Kind]codes.Code

	// fallbackHTTP is used when there is no rule at all for a kind.
	fallbackHTTP int

	// fallbackGRPC is used when there is no rule at all for a kind.
	fallbackGRPC codes.Code
}

// HTTPStatus resolves an HTTP status for the given kind.
//
// Resolution order (highest to lowest):
//  1. exact per-kind override;
//  2. per-kind default (library or user overridden);
//  3. fallback.
func (m *mapper) HTTPStatus(k kind.Kind) int {
	if v, ok := m.httpOverride[k]; ok {
		return v
	}
	if v, ok := m.httpDefault[k]; ok {
		return v
	}
	return m.fallbackHTTP
}

// GRPCStatus resolves a gRPC status for the given kind.
// Uses the same precedence as HTTPStatus.
func (m *mapper) GRPCStatus(k kind.Kind) codes.Code {
	if v, ok := m.grpcOverride[k]; ok {
		return v
	}
	if v, ok := m.grpcDefault[k]; ok {
		return v
	}
	return m.fallbackGRPC
}

// Status resolves both HTTP and gRPC for the same kind.
func (m *mapper) Status(k kind.Kind) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(k),
		GRPC: m.GRPCStatus(k),
	}
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a kind.
//
// Example output:
//
//	kind="validation"
//	http: source=override -> 400
//	grpc: source=default -> INVALIDARGUMENT(3)
//
// source is one of override, default or fallback.
func (m *mapper) Explain(k kind.Kind) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "kind=%q\n", k)
	_, _ = fmt.Fprintln(&b, m.explainHTTP(k))
	_, _ = fmt.Fprint(&b, m.explainGRPC(k))
	return b.String()
}

func (m *mapper) explainHTTP(k kind.Kind) string {
	if v, ok := m.httpOverride[k]; ok {
		return fmt.Sprintf("http: source=override -> %d", v)
	}
	if v, ok := m.httpDefault[k]; ok {
		return fmt.Sprintf("http: source=default -> %d", v)
	}
	return fmt.Sprintf("http: source=fallback -> %d", m.fallbackHTTP)
}

func (m *mapper) explainGRPC(k kind.Kind) string {
	if v, ok := m.grpcOverride[k]; ok {
		return fmt.Sprintf("grpc: source=override -> %s", grpcLabel(v))
	}
	if v, ok := m.grpcDefault[k]; ok {
		return fmt.Sprintf("grpc: source=default -> %s", grpcLabel(v))
	}
	return fmt.Sprintf("grpc: source=fallback -> %s", grpcLabel(m.fallbackGRPC))
}

func grpcLabel(c codes.Code) string {
	return fmt.Sprintf("%s(%d)", strings.ToUpper(c.String()), int(c))
}

// freeze makes an immutable copy of src so later mutations to the builder
// cannot affect the mapper. Empty maps become nil.
func freeze[K comparable, V any](src map[K]V) map[K]V {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
