package gateway

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	config "github.com/commercelab/microshop/configs"
	"github.com/sirupsen/logrus"
)

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

func recordingUpstream(t *testing.T, captured *recordedRequest) config.ServiceConfig {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*captured = recordedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: body}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(upstream.Close)

	u, err := url.Parse(upstream.URL)
	if err != nil {
		t.Fatalf("parse upstream url: %v", err)
	}
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("split upstream host: %v", err)
	}
	return config.ServiceConfig{Host: host, Port: port}
}

func newTestGateway(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	s, err := NewServer(cfg, logger)
	if err != nil {
		t.Fatalf("build gateway: %v", err)
	}
	return s
}

func TestProxyRewritesPrefixAndPreservesRequest(t *testing.T) {
	var captured recordedRequest
	cfg := &config.Config{
		Product: recordingUpstream(t, &captured),
		Order:   config.ServiceConfig{Host: "localhost", Port: "1"},
		User:    config.ServiceConfig{Host: "localhost", Port: "1"},
	}
	s := newTestGateway(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/products/2", nil)
	req.Header.Set("X-Trace", "abc123")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if captured.Method != http.MethodGet {
		t.Fatalf("upstream method = %s", captured.Method)
	}
	if captured.Path != "/products/2" {
		t.Fatalf("upstream path = %s, want /products/2", captured.Path)
	}
	if captured.Header.Get("X-Trace") != "abc123" {
		t.Fatal("original headers not preserved")
	}
	if len(captured.Body) != 0 {
		t.Fatalf("expected empty body upstream, got %q", captured.Body)
	}
}

func TestProxyRewritesBarePrefix(t *testing.T) {
	var captured recordedRequest
	cfg := &config.Config{
		Product: recordingUpstream(t, &captured),
		Order:   config.ServiceConfig{Host: "localhost", Port: "1"},
		User:    config.ServiceConfig{Host: "localhost", Port: "1"},
	}
	s := newTestGateway(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if captured.Path != "/products" {
		t.Fatalf("upstream path = %s, want /products", captured.Path)
	}
}

func TestProxyForwardsBodyOnPost(t *testing.T) {
	var captured recordedRequest
	cfg := &config.Config{
		Product: config.ServiceConfig{Host: "localhost", Port: "1"},
		Order:   recordingUpstream(t, &captured),
		User:    config.ServiceConfig{Host: "localhost", Port: "1"},
	}
	s := newTestGateway(t, cfg)

	body := `{"userID":"u1","products":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if captured.Path != "/orders" {
		t.Fatalf("upstream path = %s, want /orders", captured.Path)
	}
	if string(captured.Body) != body {
		t.Fatalf("upstream body = %q", captured.Body)
	}
}

func TestUnmatchedPathIs404(t *testing.T) {
	cfg := &config.Config{
		Product: config.ServiceConfig{Host: "localhost", Port: "1"},
		Order:   config.ServiceConfig{Host: "localhost", Port: "1"},
		User:    config.ServiceConfig{Host: "localhost", Port: "1"},
	}
	s := newTestGateway(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/1", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHealthIsLocal(t *testing.T) {
	// no upstreams are reachable; /health must still answer
	cfg := &config.Config{
		Product: config.ServiceConfig{Host: "localhost", Port: "1"},
		Order:   config.ServiceConfig{Host: "localhost", Port: "1"},
		User:    config.ServiceConfig{Host: "localhost", Port: "1"},
	}
	s := newTestGateway(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode health payload: %v", err)
	}
	if payload["status"] != "healthy" || payload["timestamp"] == "" {
		t.Fatalf("unexpected health payload: %+v", payload)
	}
}
