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

// Package adapter projects errors into flat descriptors for structured
// logging.
package adapter

import (
	"errors"
	"sort"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"

	"dirpx.dev/dweb"
	"dirpx.dev/dweb/apis"
	"dirpx.dev/dweb/kind"
)

// Descriptor is a portable, log-friendly view of a failure together with
// the transport statuses it resolved to.
type Descriptor struct {
	Kind       kind.Kind
	Status     int // explicit status on the error, 0 if none
	HTTPStatus int
	GRPCCode   codes.Code
	Message    string
	Fields     []string // failing field names, sorted
	Cause      string
}

// ToDescriptor describes err, classified as k and resolved to st. A zero
// st (nothing was written) leaves the transport fields empty.
//
// No redaction is performed: the descriptor exposes exactly what the error
// carries and is meant for server-side logs, not clients.
func ToDescriptor(err error, k kind.Kind, st apis.Status) Descriptor {
	d := Descriptor{Kind: k, HTTPStatus: st.HTTP, GRPCCode: st.GRPC}
	if err == nil {
		return d
	}

	var se apis.StatusError
	if errors.As(err, &se) {
		d.Status = se.StatusCode()
	}
	var fe apis.FieldsError
	if errors.As(err, &fe) {
		for name := range fe.FieldErrors() {
			d.Fields = append(d.Fields, name)
		}
		sort.Strings(d.Fields)
	}
	if de, ok := dweb.As(err); ok {
		d.Message = de.Message
		if de.Cause != nil {
			d.Cause = de.Cause.Error()
		}
	} else {
		d.Message = err.Error()
	}
	return d
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler. Empty
// values are omitted.
func (d Descriptor) MarshalZerologObject(e *zerolog.Event) {
	label := string(d.Kind)
	if d.Kind == kind.Unclassified {
		label = "unclassified"
	}
	e.Str("kind", label)
	if d.Status != 0 {
		e.Int("error_status", d.Status)
	}
	if d.HTTPStatus != 0 {
		e.Int("http", d.HTTPStatus).Str("grpc", d.GRPCCode.String())
	}
	if len(d.Fields) > 0 {
		e.Strs("fields", d.Fields)
	}
	if d.Cause != "" {
		e.Str("cause", d.Cause)
	}
}
