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

// Package grpcx applies the dweb error mapping to gRPC: a unary server
// interceptor converts handler errors into statuses carrying the response
// envelope as a google.protobuf.Struct detail.
package grpcx

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/dweb/render"
	"dirpx.dev/dweb/response"
)

// RequestIDKey is the metadata key MetadataMeta reads the request id from.
const RequestIDKey = "x-request-id"

// MetaFn extracts the envelope meta for a call. It may return a zero Meta.
type MetaFn func(ctx context.Context) response.Meta

// MetadataMeta reads the request id from incoming metadata under
// RequestIDKey.
func MetadataMeta(ctx context.Context) response.Meta {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return response.Meta{}
	}
	if vs := md.Get(RequestIDKey); len(vs) > 0 {
		return response.Meta{RequestID: strings.TrimSpace(vs[0])}
	}
	return response.Meta{}
}

// UnaryServerInterceptor returns an interceptor rendering handler errors
// with r. The status code comes from the renderer's mapper, the status
// message is the envelope msg and the envelope itself is attached as a
// structpb.Struct detail.
//
// Errors that already carry a gRPC status are returned untouched. When the
// renderer declines (debug mode, unclassified error) the raw error text is
// sent with codes.Unknown. A nil metaFn means MetadataMeta.
func UnaryServerInterceptor(r *render.Renderer, metaFn MetaFn) grpc.UnaryServerInterceptor {
	if r == nil {
		r = render.New()
	}
	if metaFn == nil {
		metaFn = MetadataMeta
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if _, ok := err.(interface{ GRPCStatus() *gstatus.Status }); ok {
			return nil, err
		}

		res, ok := r.Render(err, metaFn(ctx))
		if !ok {
			return nil, gstatus.Error(gcodes.Unknown, err.Error())
		}

		base := gstatus.New(res.GRPC, res.Envelope.Msg)
		detail, derr := ToStruct(res.Envelope)
		if derr != nil {
			return nil, base.Err()
		}
		with, werr := base.WithDetails(detail)
		if werr != nil {
			return nil, base.Err()
		}
		return nil, with.Err()
	}
}

// ToStruct converts env to a structpb.Struct through its JSON form, so the
// detail matches the HTTP body field for field.
func ToStruct(env response.Envelope) (*structpb.Struct, error) {
	b, err := response.Marshal(env, response.WriteOptions{})
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("grpcx: envelope to struct: %w", err)
	}
	return s, nil
}

// ExtractEnvelope pulls the envelope out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractEnvelope(err error) (response.Envelope, bool) {
	if err == nil {
		return response.Envelope{}, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return response.Envelope{}, false
	}
	for _, d := range st.Details() {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		b, err := protojson.Marshal(s)
		if err != nil {
			return response.Envelope{}, false
		}
		var env response.Envelope
		if err := json.Unmarshal(b, &env); err != nil {
			return response.Envelope{}, false
		}
		return env, true
	}
	return response.Envelope{}, false
}
