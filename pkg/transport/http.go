package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/beevik/etree"
)

// TLS version constants
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

// ContentTypeXML is the content type of gateway requests
const ContentTypeXML = "application/xml; charset=utf-8"

// DefaultUserAgent identifies the library to the gateway
const DefaultUserAgent = "go-intacct/1.0"

// ErrTransport is the sentinel matched by every transport Error
var ErrTransport = errors.New("transport: request failed")

// Error reports a network or HTTP level failure.
type Error struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("transport: %s: %s: %v", e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("transport: %s: %s", e.Endpoint, e.Message)
}

// Is lets errors.Is match ErrTransport.
func (e *Error) Is(target error) bool {
	return target == ErrTransport
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Sender posts an envelope to an endpoint and returns the raw response.
type Sender interface {
	Send(ctx context.Context, endpoint string, body []byte) (int, []byte, error)
}

// HTTPConfig contains HTTP client configuration
type HTTPConfig struct {
	MinTLSVersion   uint16
	MaxTLSVersion   uint16
	Certificates    []tls.Certificate
	RootCAs         *x509.CertPool
	Timeout         time.Duration
	IdleConnTimeout time.Duration
	UserAgent       string

	// Client overrides the constructed *http.Client; TLS settings are
	// ignored when it is set.
	Client *http.Client
	Logger *slog.Logger
}

// DefaultHTTPConfig returns a default HTTP configuration
func DefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		MinTLSVersion:   TLS12,
		MaxTLSVersion:   TLS13,
		Timeout:         30 * time.Second,
		IdleConnTimeout: 90 * time.Second,
		UserAgent:       DefaultUserAgent,
	}
}

// HTTPClient delivers envelopes over HTTPS
type HTTPClient struct {
	client *http.Client
	config *HTTPConfig
	logger *slog.Logger
}

// NewHTTPClient creates a new HTTP client
func NewHTTPClient(config *HTTPConfig) *HTTPClient {
	if config == nil {
		config = DefaultHTTPConfig()
	} else {
		cfg := *config
		config = &cfg
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := config.Client
	if client == nil {
		tlsConfig := &tls.Config{
			MinVersion:   config.MinTLSVersion,
			MaxVersion:   config.MaxTLSVersion,
			Certificates: config.Certificates,
			RootCAs:      config.RootCAs,
		}
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				TLSClientConfig:     tlsConfig,
				IdleConnTimeout:     config.IdleConnTimeout,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
			},
			Timeout: config.Timeout,
		}
	}

	return &HTTPClient{
		client: client,
		config: config,
		logger: logger,
	}
}

// Send posts body to endpoint
func (c *HTTPClient) Send(ctx context.Context, endpoint string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, &Error{Endpoint: endpoint, Message: "failed to create request", Err: err}
	}

	req.Header.Set("Content-Type", ContentTypeXML)
	req.Header.Set("User-Agent", c.config.UserAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, &Error{Endpoint: endpoint, Message: "failed to send request", Err: err}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &Error{Endpoint: endpoint, Message: "failed to read response", Err: err}
	}

	c.logger.Debug("gateway response",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(responseBody)),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if !LooksLikeEnvelope(responseBody) {
			return resp.StatusCode, responseBody, &Error{
				Endpoint:   endpoint,
				StatusCode: resp.StatusCode,
				Message:    truncate(string(responseBody), 256),
			}
		}
	}

	return resp.StatusCode, responseBody, nil
}

// LooksLikeEnvelope reports whether body parses as XML with a <response> root.
func LooksLikeEnvelope(body []byte) bool {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return false
	}
	root := doc.Root()
	return root != nil && root.Tag == "response"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
