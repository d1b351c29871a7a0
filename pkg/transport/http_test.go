package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"unicode/utf8"
)

const okEnvelope = `<response><control><status>success</status></control></response>`

func TestDefaultHTTPConfig(t *testing.T) {
	config := DefaultHTTPConfig()

	if config.MinTLSVersion != TLS12 {
		t.Errorf("expected MinTLSVersion TLS12, got %d", config.MinTLSVersion)
	}
	if config.MaxTLSVersion != TLS13 {
		t.Errorf("expected MaxTLSVersion TLS13, got %d", config.MaxTLSVersion)
	}
	if config.Timeout != 30*time.Second {
		t.Errorf("expected Timeout 30s, got %v", config.Timeout)
	}
	if config.UserAgent != DefaultUserAgent {
		t.Errorf("expected default user agent, got %q", config.UserAgent)
	}
}

func TestNewHTTPClient_NilConfig(t *testing.T) {
	client := NewHTTPClient(nil)

	if client.client == nil {
		t.Error("expected http.Client to be initialized")
	}
	if client.config == nil {
		t.Error("expected config to be set to default")
	}
	if client.logger == nil {
		t.Error("expected logger to default")
	}
}

func TestNewHTTPClient_ClientOverride(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	client := NewHTTPClient(&HTTPConfig{Client: custom})

	if client.client != custom {
		t.Error("expected custom http.Client to be used")
	}
	if client.config.UserAgent != DefaultUserAgent {
		t.Error("expected empty user agent to default")
	}
}

func TestNewHTTPClient_DoesNotModifyConfig(t *testing.T) {
	config := &HTTPConfig{Timeout: time.Second}
	client := NewHTTPClient(config)

	if config.UserAgent != "" {
		t.Errorf("caller config was modified: UserAgent = %q", config.UserAgent)
	}
	if client.config == config {
		t.Error("expected client to hold its own copy of the config")
	}
	if client.config.UserAgent != DefaultUserAgent {
		t.Errorf("expected default user agent on the copy, got %q", client.config.UserAgent)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc..."},
		// "é" is two bytes; cutting inside it backs up to the rune start
		{"aé", 2, "a..."},
		{"日本語", 4, "日..."},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.n)
		}
	}
}

func TestHTTPClient_Send(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != ContentTypeXML {
			t.Errorf("expected content-type %q, got %q", ContentTypeXML, ct)
		}
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("expected User-Agent %q", DefaultUserAgent)
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		w.Header().Set("Content-Type", "text/xml; encoding=\"UTF-8\"")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(okEnvelope))
	}))
	defer server.Close()

	client := NewHTTPClient(nil)

	status, response, err := client.Send(context.Background(), server.URL, []byte("<request/>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	if string(response) != okEnvelope {
		t.Errorf("unexpected response: %s", string(response))
	}
	if gotBody != "<request/>" {
		t.Errorf("unexpected request body: %s", gotBody)
	}
}

func TestHTTPClient_Send_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Bad Gateway"))
	}))
	defer server.Close()

	client := NewHTTPClient(nil)

	status, _, err := client.Send(context.Background(), server.URL, []byte("<request/>"))
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatal("expected *Error")
	}
	if terr.StatusCode != http.StatusBadGateway || status != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", terr.StatusCode)
	}
}

func TestHTTPClient_Send_ErrorStatusWithEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(okEnvelope))
	}))
	defer server.Close()

	client := NewHTTPClient(nil)

	status, body, err := client.Send(context.Background(), server.URL, []byte("<request/>"))
	if err != nil {
		t.Fatalf("envelope-bearing error status should not fail: %v", err)
	}
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if string(body) != okEnvelope {
		t.Errorf("unexpected body %s", body)
	}
}

func TestHTTPClient_Send_InvalidURL(t *testing.T) {
	client := NewHTTPClient(nil)

	_, _, err := client.Send(context.Background(), "http://invalid.invalid.invalid:99999", []byte("<request/>"))
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected transport error for invalid URL, got %v", err)
	}
}

func TestHTTPClient_Send_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient(&HTTPConfig{Timeout: 10 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := client.Send(ctx, server.URL, []byte("<request/>"))
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled, got %v", err)
	}
}

func TestLooksLikeEnvelope(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{okEnvelope, true},
		{`<?xml version="1.0"?><response/>`, true},
		{"<html><body>oops</body></html>", false},
		{"Internal Server Error", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksLikeEnvelope([]byte(tt.body)); got != tt.want {
			t.Errorf("LooksLikeEnvelope(%q) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestMockSender(t *testing.T) {
	mock := NewMockSender(
		MockResponse{Body: []byte(okEnvelope)},
		MockResponse{StatusCode: http.StatusServiceUnavailable, Body: []byte("down")},
	)

	status, body, err := mock.Send(context.Background(), "https://a.example/gw", []byte("<one/>"))
	if err != nil || status != 200 || string(body) != okEnvelope {
		t.Fatalf("unexpected first reply: %d %s %v", status, body, err)
	}

	_, _, err = mock.Send(context.Background(), "https://a.example/gw", []byte("<two/>"))
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected transport error for 503, got %v", err)
	}

	_, _, err = mock.Send(context.Background(), "https://a.example/gw", []byte("<three/>"))
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected transport error for empty queue, got %v", err)
	}

	reqs := mock.Requests()
	if len(reqs) != 3 {
		t.Fatalf("expected 3 recorded requests, got %d", len(reqs))
	}
	last, ok := mock.LastRequest()
	if !ok || string(last.Body) != "<three/>" {
		t.Errorf("unexpected last request %+v", last)
	}
	if mock.Pending() != 0 {
		t.Errorf("expected empty queue, got %d", mock.Pending())
	}
}
