package intacct

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sirosfoundation/go-intacct/pkg/history"
	"github.com/sirosfoundation/go-intacct/pkg/message"
	"github.com/sirosfoundation/go-intacct/pkg/session"
	"github.com/sirosfoundation/go-intacct/pkg/transport"
)

// ErrConfigRequired is returned by NewClient for a nil config
var ErrConfigRequired = errors.New("intacct: config is required")

// Client is the gateway client
type Client struct {
	mu       sync.Mutex
	sender   transport.Sender
	sessions *session.Manager
	history  *history.Log
	logger   *slog.Logger

	uniqueID bool
	policyID string
}

// ClientConfig holds client configuration
type ClientConfig struct {
	SenderID       string
	SenderPassword string

	// Login credentials
	CompanyID    string
	UserID       string
	UserPassword string

	// Existing session, mutually exclusive with the login credentials
	SessionID string

	// EndpointURL receives the bootstrap request
	EndpointURL string

	UniqueID bool
	PolicyID string

	HTTPConfig *transport.HTTPConfig
	// Sender overrides the HTTP transport, mainly for tests
	Sender transport.Sender
	Logger *slog.Logger
}

// NewClient creates a client and bootstraps its session
func NewClient(ctx context.Context, config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sessions, err := session.NewManager(session.ManagerConfig{
		Credentials: session.Credentials{
			SenderID:       config.SenderID,
			SenderPassword: config.SenderPassword,
			CompanyID:      config.CompanyID,
			UserID:         config.UserID,
			UserPassword:   config.UserPassword,
			SessionID:      config.SessionID,
		},
		EndpointURL: config.EndpointURL,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrSessionBootstrap, err)
	}

	sender := config.Sender
	if sender == nil {
		httpConfig := transport.DefaultHTTPConfig()
		if config.HTTPConfig != nil {
			cfg := *config.HTTPConfig
			httpConfig = &cfg
		}
		if httpConfig.Logger == nil {
			httpConfig.Logger = logger
		}
		sender = transport.NewHTTPClient(httpConfig)
	}

	c := &Client{
		sender:   sender,
		sessions: sessions,
		history:  history.NewLog(),
		logger:   logger,
		uniqueID: config.UniqueID,
		policyID: config.PolicyID,
	}

	if _, err := sessions.Bootstrap(ctx, session.ExchangerFunc(c.exchange)); err != nil {
		return nil, err
	}

	return c, nil
}

// SessionConfig returns the cached session id and endpoint. The zero Config
// is returned after the session has been invalidated.
func (c *Client) SessionConfig() session.Config {
	cfg, _ := c.sessions.Current()
	return cfg
}

// LastExecution returns the most recent history entry
func (c *Client) LastExecution() (history.Entry, bool) {
	return c.history.Last()
}

// History returns every exchange made by the client, oldest first
func (c *Client) History() []history.Entry {
	return c.history.All()
}

// Execute sends the operations in a single envelope and returns one result
// per operation in the same order.
func (c *Client) Execute(ctx context.Context, ops ...message.Operation) ([]message.Result, error) {
	return c.execute(ctx, false, ops)
}

// ExecuteTransaction is Execute with all-or-nothing semantics on the gateway.
// When one operation fails the others report status "aborted".
func (c *Client) ExecuteTransaction(ctx context.Context, ops ...message.Operation) ([]message.Result, error) {
	return c.execute(ctx, true, ops)
}

func (c *Client) execute(ctx context.Context, transaction bool, ops []message.Operation) ([]message.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, ok := c.sessions.Current()
	if !ok {
		return nil, session.ErrNotAuthenticated
	}

	req, err := message.NewRequest(
		message.WithSender(c.sessions.SenderID(), c.sessions.SenderPassword()),
		message.WithSession(cfg.SessionID),
		message.WithUniqueID(c.uniqueID),
		message.WithPolicyID(c.policyID),
		message.WithTransaction(transaction),
		message.WithOperation(ops...),
	).Build()
	if err != nil {
		return nil, err
	}

	resp, err := c.exchange(ctx, req, cfg.EndpointURL)
	if err != nil {
		var authErr *message.AuthenticationFailure
		if errors.As(err, &authErr) {
			c.sessions.Invalidate()
		}
		return nil, err
	}

	for _, r := range resp.Results {
		if !r.Succeeded() {
			c.logger.Info("operation failed",
				slog.String("function", r.Function),
				slog.String("control_id", r.ControlID),
				slog.String("status", r.Status),
			)
		}
	}
	return resp.Results, nil
}

// exchange serializes, sends, parses and correlates one request, recording
// the outcome in history. Serialization errors return before anything is
// sent or recorded.
func (c *Client) exchange(ctx context.Context, req *message.Request, endpoint string) (*message.Response, error) {
	body, err := req.Bytes()
	if err != nil {
		return nil, err
	}

	log := c.logger.With(slog.String("control_id", req.Control.ControlID))
	log.Debug("sending request", slog.String("endpoint", endpoint), slog.Any("functions", req.Functions()))

	entry := history.Entry{
		ControlID: req.Control.ControlID,
		Functions: req.Functions(),
		Endpoint:  endpoint,
		StartedAt: time.Now(),
	}
	record := func(resp *message.Response, err error) (*message.Response, error) {
		entry.Duration = time.Since(entry.StartedAt)
		entry.Response = resp
		entry.Err = err
		c.history.Append(entry)
		return resp, err
	}

	status, raw, err := c.sender.Send(ctx, endpoint, body)
	entry.StatusCode = status
	if err != nil {
		log.Warn("request failed", slog.Any("error", err))
		return record(nil, err)
	}

	resp, err := message.ParseResponse(raw)
	if err != nil {
		log.Warn("gateway rejected request", slog.Any("error", err))
		return record(nil, err)
	}

	if err := resp.Correlate(req); err != nil {
		log.Warn("response does not match request", slog.Any("error", err))
		return record(resp, err)
	}

	return record(resp, nil)
}
