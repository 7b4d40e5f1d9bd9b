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

package adapter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"dirpx.dev/dweb"
	"dirpx.dev/dweb/apis"
	"dirpx.dev/dweb/kind"
)

func TestToDescriptor(t *testing.T) {
	err := dweb.Validation("invalid", map[string][]string{"title": {"required"}, "body": {"max"}},
		dweb.WithStatusOption(400), dweb.WithCauseOption(errors.New("form")))

	d := ToDescriptor(err, kind.Validation, apis.Status{HTTP: 400, GRPC: codes.InvalidArgument})

	require.Equal(t, Descriptor{
		Kind:       kind.Validation,
		Status:     400,
		HTTPStatus: 400,
		GRPCCode:   codes.InvalidArgument,
		Message:    "invalid",
		Fields:     []string{"body", "title"},
		Cause:      "form",
	}, d)
}

func TestToDescriptor_ForeignAndNil(t *testing.T) {
	d := ToDescriptor(errors.New("boom"), kind.Unclassified, apis.Status{})
	require.Equal(t, "boom", d.Message)
	require.Zero(t, d.HTTPStatus)

	require.Equal(t, Descriptor{Kind: kind.Auth}, ToDescriptor(nil, kind.Auth, apis.Status{}))
}

func TestDescriptor_Zerolog(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	log.Info().EmbedObject(ToDescriptor(errors.New("boom"), kind.Unclassified, apis.Status{HTTP: 503, GRPC: codes.Internal})).Msg("x")

	require.Contains(t, buf.String(), `"kind":"unclassified"`)
	require.Contains(t, buf.String(), `"http":503`)
	require.Contains(t, buf.String(), `"grpc":"Internal"`)
	require.NotContains(t, buf.String(), "fields")
	require.NotContains(t, buf.String(), "cause")
}
