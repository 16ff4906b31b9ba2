package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	mdwlog "github.com/msto63/knuth/foundation/core/log"
	"github.com/msto63/knuth/internal/knuth/api"
	"github.com/msto63/knuth/internal/knuth/client"
	"github.com/msto63/knuth/internal/knuth/service"
	coreGrpc "github.com/msto63/knuth/pkg/core/grpc"
	"github.com/msto63/knuth/pkg/core/logging"
)

type testEnv struct {
	server *Server
	client *client.Client
	conn   *grpc.ClientConn
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := service.DefaultConfig()
	cfg.Logger = logging.Wrap(mdwlog.Discard())
	svc, err := service.NewService(cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(svc.Close)

	srvCfg := DefaultConfig()
	srvCfg.HealthInterval = 0
	srv := New(srvCfg, svc)

	lis := bufconn.Listen(1024 * 1024)
	go srv.Serve(lis)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Stop(ctx)
	})

	dialer := grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})

	c, err := client.New(client.Config{Target: "passthrough:///bufnet", Timeout: 5 * time.Second}, dialer)
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })

	conn, err := coreGrpc.Dial(coreGrpc.DefaultClientConfig("passthrough:///bufnet"), dialer)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return &testEnv{server: srv, client: c, conn: conn}
}

func TestServer_Render(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.client.Render(ctx, `\frac{a}{b}`, "display")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if resp.Style != "display" {
		t.Errorf("Style = %q, want display", resp.Style)
	}
	if resp.Cached || resp.Source != service.SourceEngine {
		t.Errorf("first render cached=%v source=%s", resp.Cached, resp.Source)
	}
	if !strings.HasPrefix(resp.HTML, `<span class="katex">`) {
		t.Errorf("HTML = %s", resp.HTML)
	}
	if resp.Text != "ab" {
		t.Errorf("Text = %q, want ab", resp.Text)
	}

	tree, err := client.Tree(resp)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if !tree.HasClass("katex") || tree.Len() != 1 {
		t.Errorf("root classes = %v, children = %d", tree.Classes(), tree.Len())
	}

	again, err := env.client.Render(ctx, `\frac{a}{b}`, "display")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !again.Cached || again.Key != resp.Key {
		t.Errorf("second render cached=%v key=%s", again.Cached, again.Key)
	}
}

func TestServer_RenderErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		input    string
		style    string
		code     mdwerror.Code
		grpcCode string
	}{
		{"parse error", "x^^2", "", mdwerror.CodeDoubleSuperscript, "InvalidArgument"},
		{"bad style", "x", "huge", mdwerror.CodeInvalidInput, "InvalidArgument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.Render(context.Background(), tt.input, tt.style)
			if !mdwerror.HasCode(err, tt.code) {
				t.Fatalf("Render() error = %v, want %s", err, tt.code)
			}
			var e *mdwerror.Error
			if !errors.As(err, &e) {
				t.Fatalf("error is %T", err)
			}
			if got := e.Details()["grpc_code"]; got != tt.grpcCode {
				t.Errorf("grpc_code = %v, want %s", got, tt.grpcCode)
			}
		})
	}
}

func TestServer_RenderErrorPosition(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.Render(context.Background(), "x^^2", "")
	var e *mdwerror.Error
	if !errors.As(err, &e) {
		t.Fatalf("error is %T", err)
	}
	if _, ok := e.Details()["position"]; !ok {
		t.Errorf("details = %v, want a position", e.Details())
	}
}

func TestServer_Parse(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.Parse(context.Background(), "x^2")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !strings.Contains(resp.Formatted, "supsub") {
		t.Errorf("Formatted = %q", resp.Formatted)
	}
	if resp.Depth < 1 {
		t.Errorf("Depth = %d", resp.Depth)
	}
	var nodes []map[string]interface{}
	if err := json.Unmarshal(resp.AST, &nodes); err != nil {
		t.Fatalf("AST is not a JSON list: %v", err)
	}
	if len(nodes) != 1 {
		t.Errorf("AST has %d nodes, want 1", len(nodes))
	}
}

func TestServer_Health(t *testing.T) {
	env := newTestEnv(t)
	hc := healthgrpc.NewHealthClient(env.conn)

	for _, name := range []string{"", api.ServiceName} {
		resp, err := hc.Check(context.Background(), &healthgrpc.HealthCheckRequest{Service: name})
		if err != nil {
			t.Fatalf("Check(%q) error = %v", name, err)
		}
		if resp.GetStatus() != healthgrpc.HealthCheckResponse_SERVING {
			t.Errorf("Check(%q) = %v, want SERVING", name, resp.GetStatus())
		}
	}

	report := env.server.HealthRegistry().Check(context.Background())
	if len(report.Checks) != 1 || report.Checks[0].Name != "engine" {
		t.Errorf("checks = %+v", report.Checks)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 9310 || !cfg.EnableReflection {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}
