// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     grpc
// Description: Mapping between structured error codes and gRPC status
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package grpc

import (
	"context"
	"errors"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain is the domain reported in ErrorInfo details
const ErrorDomain = "knuth"

// MetadataProvider is implemented by errors that carry wire metadata,
// such as the position of a parse error
type MetadataProvider interface {
	Metadata() map[string]string
}

// StatusCode maps an error code to a gRPC status code
func StatusCode(code mdwerror.Code) codes.Code {
	switch {
	case code == mdwerror.CodeNotFound:
		return codes.NotFound
	case code == mdwerror.CodeInputTooLong:
		return codes.ResourceExhausted
	case code.IsUserError(), code == mdwerror.CodeInvalidConfig:
		return codes.InvalidArgument
	case code == mdwerror.CodeTimeout:
		return codes.DeadlineExceeded
	case code == mdwerror.CodeServiceUnavailable, code == mdwerror.CodeConnectionFailed:
		return codes.Unavailable
	case code == mdwerror.CodeUnknown:
		return codes.Unknown
	default:
		return codes.Internal
	}
}

// ToStatus converts err into a gRPC status error carrying an ErrorInfo with
// the error code as reason. Errors that already are status errors pass
// through.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	code := mdwerror.GetCode(err)
	st := status.New(StatusCode(code), err.Error())

	info := &errdetails.ErrorInfo{Reason: string(code), Domain: ErrorDomain}
	var mp MetadataProvider
	if errors.As(err, &mp) {
		info.Metadata = mp.Metadata()
	}
	if withDetails, detailErr := st.WithDetails(info); detailErr == nil {
		st = withDetails
	}
	return st.Err()
}

// FromStatus converts a gRPC status error back into a structured error.
// The code comes from the ErrorInfo reason; the metadata become details.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok || err == nil {
		return err
	}

	e := mdwerror.New(st.Message()).WithOperation("grpc.FromStatus")
	code := mdwerror.CodeUnknown
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ErrorDomain {
			continue
		}
		code = mdwerror.Code(info.GetReason())
		for k, v := range info.GetMetadata() {
			e = e.WithDetail(k, v)
		}
	}
	if code == mdwerror.CodeUnknown {
		switch st.Code() {
		case codes.Unavailable:
			code = mdwerror.CodeServiceUnavailable
		case codes.DeadlineExceeded:
			code = mdwerror.CodeTimeout
		case codes.InvalidArgument:
			code = mdwerror.CodeInvalidInput
		case codes.NotFound:
			code = mdwerror.CodeNotFound
		}
	}
	return e.WithCode(code).WithDetail("grpc_code", st.Code().String())
}

// ErrorInterceptor converts handler errors into gRPC status errors
func ErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			return resp, ToStatus(err)
		}
		return resp, nil
	}
}
