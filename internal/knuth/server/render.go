package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/internal/knuth/api"
	"github.com/msto63/knuth/internal/knuth/service"
)

// RenderServiceServer is the server API of knuth.v1.RenderService
type RenderServiceServer interface {
	Render(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Parse(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RenderServiceDesc describes knuth.v1.RenderService for grpc.Server
var RenderServiceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*RenderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Render", Handler: renderHandler},
		{MethodName: "Parse", Handler: parseHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "knuth/v1/render.proto",
}

// RegisterRenderServiceServer registers srv on s
func RegisterRenderServiceServer(s grpc.ServiceRegistrar, srv RenderServiceServer) {
	s.RegisterService(&RenderServiceDesc, srv)
}

func renderHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RenderServiceServer).Render(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: api.RenderMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RenderServiceServer).Render(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func parseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RenderServiceServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: api.ParseMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RenderServiceServer).Parse(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Ensure Server implements RenderServiceServer
var _ RenderServiceServer = (*Server)(nil)

// Render implements RenderServiceServer.Render. Errors are converted to
// status errors by the error interceptor.
func (s *Server) Render(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req api.RenderRequest
	if err := api.FromStruct(in, &req); err != nil {
		return nil, err
	}

	result, err := s.service.Render(ctx, service.RenderRequest{Input: req.Input, Style: req.Style})
	if err != nil {
		if !mdwerror.GetCode(err).IsUserError() {
			s.logger.Error("Render failed", "error", err)
		}
		return nil, err
	}

	return api.ToStruct(api.NewRenderResponse(result))
}

// Parse implements RenderServiceServer.Parse
func (s *Server) Parse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req api.ParseRequest
	if err := api.FromStruct(in, &req); err != nil {
		return nil, err
	}

	result, err := s.service.Parse(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	resp, err := api.NewParseResponse(result)
	if err != nil {
		return nil, err
	}
	return api.ToStruct(resp)
}
