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

package dweb

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"dirpx.dev/dweb/apis"
	"dirpx.dev/dweb/kind"
)

var (
	_ apis.KindedError = (*Error)(nil)
	_ apis.StatusError = (*Error)(nil)
	_ apis.DataError   = (*Error)(nil)
	_ apis.FieldsError = (*Error)(nil)
)

func TestError_Basics(t *testing.T) {
	e := E(kind.External, "db is down",
		WithStatusOption(http.StatusBadGateway),
		WithDataOption(map[string]any{"node": "pg-2"}),
	)

	if e.Kind != kind.External {
		t.Fatal("kind mismatch")
	}
	if e.Status != http.StatusBadGateway {
		t.Fatal("status must be set")
	}

	s := e.Error()
	for _, sub := range []string{"external", "502", "db is down"} {
		if !strings.Contains(s, sub) {
			t.Fatalf("Error() missing %q in %q", sub, s)
		}
	}
	if got := NotFound("x").Error(); got != "not_found: x" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestError_Constructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want kind.Kind
	}{
		{"internal", Internal("x"), kind.Internal},
		{"external", External("x"), kind.External},
		{"validation", Validation("x", nil), kind.Validation},
		{"auth", Auth("x"), kind.Auth},
		{"not found", NotFound("x"), kind.NotFound},
		{"access denied", AccessDenied("x"), kind.AccessDenied},
		{"rate limit", RateLimit("x"), kind.RateLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.want {
				t.Fatalf("kind = %q, want %q", tt.err.Kind, tt.want)
			}
			if tt.err.Status != 0 {
				t.Fatalf("constructors must leave status to the mapper, got %d", tt.err.Status)
			}
		})
	}
}

func TestFail_DefaultsStatus(t *testing.T) {
	root := errors.New("root")
	e := Fail("", 0, []int{1}, root)
	if e.Kind != kind.Internal || e.Status != DefaultFailStatus {
		t.Fatalf("Fail = %+v", e)
	}
	if !errors.Is(e, root) {
		t.Fatal("cause must be wrapped")
	}

	x := FailExternal("upstream", 504, nil, nil)
	if x.Kind != kind.External || x.Status != 504 {
		t.Fatalf("FailExternal = %+v", x)
	}
}

func TestError_Fields_CopyOnWrite(t *testing.T) {
	e1 := Validation("bad", map[string][]string{"email": {"required"}})
	e2 := e1.WithField("email", "invalid")
	e3 := e2.WithFields(map[string][]string{"name": {"too long"}})

	if len(e1.Fields["email"]) != 1 {
		t.Fatal("original mutated")
	}
	if got := e2.Fields["email"]; len(got) != 2 || got[1] != "invalid" {
		t.Fatalf("WithField = %v", got)
	}
	if _, ok := e2.Fields["name"]; ok {
		t.Fatal("WithFields mutated its receiver")
	}
	if len(e3.Fields) != 2 {
		t.Fatalf("merge failed: %v", e3.Fields)
	}
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := NotFound("x").WithCause(root)
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if errors.Unwrap(e) != root {
		t.Fatal("Unwrap failed")
	}
	if e.WithCause(nil) != e {
		t.Fatal("nil cause must be a no-op")
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", RateLimit("slow down"))
	if got := KindOf(wrapped); got != kind.RateLimit {
		t.Fatalf("KindOf(wrapped) = %q", got)
	}
	if got := KindOf(errors.New("plain")); got != kind.Unclassified {
		t.Fatalf("KindOf(plain) = %q", got)
	}
	if _, ok := As(nil); ok {
		t.Fatal("As(nil) must fail")
	}
}
