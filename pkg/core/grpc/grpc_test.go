package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type metaErr struct{}

func (metaErr) Error() string               { return "bad token" }
func (metaErr) Code() mdwerror.Code         { return mdwerror.CodeMissingArgument }
func (metaErr) Metadata() map[string]string { return map[string]string{"position": "5"} }

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code     mdwerror.Code
		expected codes.Code
	}{
		{mdwerror.CodeTypeMismatch, codes.InvalidArgument},
		{mdwerror.CodeRecursionLimit, codes.InvalidArgument},
		{mdwerror.CodeUnsupportedConstruct, codes.InvalidArgument},
		{mdwerror.CodeInputTooLong, codes.ResourceExhausted},
		{mdwerror.CodeNotFound, codes.NotFound},
		{mdwerror.CodeTimeout, codes.DeadlineExceeded},
		{mdwerror.CodeServiceUnavailable, codes.Unavailable},
		{mdwerror.CodeUnknownGroupKind, codes.Internal},
		{mdwerror.CodeDatabaseError, codes.Internal},
		{mdwerror.CodeUnknown, codes.Unknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := StatusCode(tt.code); got != tt.expected {
				t.Errorf("StatusCode(%s) = %v, want %v", tt.code, got, tt.expected)
			}
		})
	}
}

func TestToStatus_RoundTrip(t *testing.T) {
	err := ToStatus(fmt.Errorf("render: %w", metaErr{}))

	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("ToStatus() did not return a status error: %v", err)
	}
	if st.Code() != codes.InvalidArgument {
		t.Errorf("status code = %v, want InvalidArgument", st.Code())
	}

	back := FromStatus(err)
	if got := mdwerror.GetCode(back); got != mdwerror.CodeMissingArgument {
		t.Errorf("code after round trip = %v, want MISSING_ARGUMENT", got)
	}
	var e *mdwerror.Error
	if !errors.As(back, &e) {
		t.Fatalf("FromStatus() = %T, want *mdwerror.Error", back)
	}
	if e.Details()["position"] != "5" {
		t.Errorf("position detail = %v, want 5", e.Details()["position"])
	}
	if e.Message() != "render: bad token" {
		t.Errorf("message = %q", e.Message())
	}
}

func TestToStatus_Passthrough(t *testing.T) {
	if ToStatus(nil) != nil {
		t.Error("ToStatus(nil) should be nil")
	}

	orig := status.Error(codes.PermissionDenied, "no")
	if got := ToStatus(orig); status.Code(got) != codes.PermissionDenied {
		t.Errorf("status errors should pass through, got %v", got)
	}
	if got := ToStatus(context.DeadlineExceeded); status.Code(got) != codes.DeadlineExceeded {
		t.Errorf("deadline should map to DeadlineExceeded, got %v", status.Code(got))
	}
}

func TestFromStatus_WithoutDetails(t *testing.T) {
	err := FromStatus(status.Error(codes.Unavailable, "down"))
	if got := mdwerror.GetCode(err); got != mdwerror.CodeServiceUnavailable {
		t.Errorf("code = %v, want SERVICE_UNAVAILABLE", got)
	}

	plain := errors.New("plain")
	if FromStatus(plain) == nil {
		t.Error("FromStatus() must not drop non-status errors")
	}
}

// startBufconn serves srv on an in-memory listener and returns a client
func startBufconn(t *testing.T, srv *Server) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	cfg := DefaultClientConfig("passthrough:///bufnet")
	conn, err := Dial(cfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServer_HealthAndRequestID(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.EnableReflection = false
	srv := NewServer(cfg)

	hs := health.NewServer()
	healthgrpc.RegisterHealthServer(srv.GRPCServer(), hs)

	conn := startBufconn(t, srv)
	client := healthgrpc.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ctx = WithRequestID(ctx, "req-123")

	var header metadata.MD
	resp, err := client.Check(ctx, &healthgrpc.HealthCheckRequest{}, grpc.Header(&header))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.GetStatus() != healthgrpc.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}
	if got := header.Get(RequestIDHeader); len(got) != 1 || got[0] != "req-123" {
		t.Errorf("request id header = %v, want [req-123]", got)
	}

	// Unknown services surface as NotFound through the interceptor chain
	_, err = client.Check(ctx, &healthgrpc.HealthCheckRequest{Service: "missing"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("Check(missing) code = %v, want NotFound", status.Code(err))
	}
}

func TestServer_Address(t *testing.T) {
	srv := NewServer(ServerConfig{Host: "127.0.0.1", Port: 1234})
	if got := srv.Address(); got != "127.0.0.1:1234" {
		t.Errorf("Address() = %v, want 127.0.0.1:1234", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	srv.StopWithTimeout(ctx)
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor()
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/t/Panic"},
		func(ctx context.Context, req interface{}) (interface{}, error) {
			panic("boom")
		})
	if status.Code(err) != codes.Internal {
		t.Errorf("code = %v, want Internal", status.Code(err))
	}
}

func TestErrorInterceptor(t *testing.T) {
	interceptor := ErrorInterceptor()
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/t/Fail"},
		func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, mdwerror.New("too long").WithCode(mdwerror.CodeInputTooLong)
		})
	if status.Code(err) != codes.ResourceExhausted {
		t.Errorf("code = %v, want ResourceExhausted", status.Code(err))
	}
}

func TestGetRequestID(t *testing.T) {
	if GetRequestID(context.Background()) != "" {
		t.Error("empty context should have no request ID")
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "abc"))
	if got := GetRequestID(ctx); got != "abc" {
		t.Errorf("GetRequestID(incoming) = %q, want abc", got)
	}
	if got := GetRequestID(WithRequestID(ctx, "override")); got != "override" {
		t.Errorf("GetRequestID(value) = %q, want override", got)
	}
}
