package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sirosfoundation/go-intacct/pkg/message"
)

// DefaultEndpointURL is the gateway used for bootstrap unless overridden
const DefaultEndpointURL = "https://api.intacct.com/ia/xml/xmlgw.phtml"

// Bootstrap protocol identifiers
const (
	BootstrapFunction  = "getAPISession"
	BootstrapControlID = "getSession"
)

var (
	// ErrSessionBootstrap is returned when the bootstrap exchange fails
	ErrSessionBootstrap = errors.New("session: bootstrap failed")
	// ErrNotAuthenticated is returned when no session is cached
	ErrNotAuthenticated = errors.New("session: not authenticated")
)

// State is the manager's authentication state
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Config is a resolved session: the token and the endpoint that accepts it.
type Config struct {
	SessionID   string
	EndpointURL string
}

// Exchanger performs one request/response round trip.
type Exchanger interface {
	Exchange(ctx context.Context, req *message.Request, endpoint string) (*message.Response, error)
}

// ExchangerFunc adapts a function to the Exchanger interface.
type ExchangerFunc func(ctx context.Context, req *message.Request, endpoint string) (*message.Response, error)

// Exchange calls f.
func (f ExchangerFunc) Exchange(ctx context.Context, req *message.Request, endpoint string) (*message.Response, error) {
	return f(ctx, req, endpoint)
}

// ManagerConfig holds manager configuration
type ManagerConfig struct {
	Credentials Credentials
	// EndpointURL receives the bootstrap request. Defaults to DefaultEndpointURL.
	EndpointURL string
	Logger      *slog.Logger
}

// Manager owns the cached session config
type Manager struct {
	mu     sync.RWMutex
	state  State
	config Config

	creds    Credentials
	method   Method
	endpoint string
	logger   *slog.Logger
}

// NewManager validates the credentials and returns an unauthenticated manager
func NewManager(cfg ManagerConfig) (*Manager, error) {
	method, err := cfg.Credentials.Method()
	if err != nil {
		return nil, err
	}
	endpoint := cfg.EndpointURL
	if endpoint == "" {
		endpoint = DefaultEndpointURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		state:    StateUnauthenticated,
		creds:    cfg.Credentials,
		method:   method,
		endpoint: endpoint,
		logger:   logger,
	}, nil
}

// Method returns the credential form used for bootstrap.
func (m *Manager) Method() Method {
	return m.method
}

// SenderID returns the web services sender id.
func (m *Manager) SenderID() string {
	return m.creds.SenderID
}

// SenderPassword returns the web services sender password.
func (m *Manager) SenderPassword() string {
	return m.creds.SenderPassword
}

// BootstrapRequest builds the getAPISession request for the configured
// credentials.
func (m *Manager) BootstrapRequest() (*message.Request, error) {
	opts := []message.Option{
		message.WithSender(m.creds.SenderID, m.creds.SenderPassword),
		message.WithControlID(message.SessionProviderControlID),
		message.WithOperation(message.NewOperation(BootstrapFunction).WithControlID(BootstrapControlID)),
	}
	if m.method == MethodSession {
		opts = append(opts, message.WithSession(m.creds.SessionID))
	} else {
		opts = append(opts, message.WithLogin(m.creds.UserID, m.creds.CompanyID, m.creds.UserPassword))
	}
	return message.NewRequest(opts...).Build()
}

// Bootstrap resolves the session through one exchange and caches the result.
// It is a no-op when a session is already cached.
func (m *Manager) Bootstrap(ctx context.Context, ex Exchanger) (Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateAuthenticated {
		return m.config, nil
	}

	req, err := m.BootstrapRequest()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrSessionBootstrap, err)
	}

	log := m.logger.With(slog.String("method", m.method.String()), slog.String("endpoint", m.endpoint))
	log.Debug("bootstrapping session")

	resp, err := ex.Exchange(ctx, req, m.endpoint)
	if err != nil {
		log.Warn("session bootstrap failed", slog.Any("error", err))
		return Config{}, fmt.Errorf("%w: %w", ErrSessionBootstrap, err)
	}

	cfg, err := configFromResponse(resp)
	if err != nil {
		log.Warn("session bootstrap failed", slog.Any("error", err))
		return Config{}, fmt.Errorf("%w: %w", ErrSessionBootstrap, err)
	}

	m.config = cfg
	m.state = StateAuthenticated
	log.Info("session established", slog.String("session_endpoint", cfg.EndpointURL))
	return cfg, nil
}

func configFromResponse(resp *message.Response) (Config, error) {
	if len(resp.Results) != 1 {
		return Config{}, fmt.Errorf("expected 1 result, got %d", len(resp.Results))
	}
	result := resp.Results[0]
	if err := result.Err(); err != nil {
		return Config{}, err
	}
	if result.Data == nil || len(result.Data.Items) == 0 {
		return Config{}, errors.New("getAPISession returned no data")
	}

	api := result.Data.Items[0]
	cfg := Config{
		SessionID:   api.Fields.Value("sessionid"),
		EndpointURL: api.Fields.Value("endpoint"),
	}
	if cfg.SessionID == "" || cfg.EndpointURL == "" {
		return Config{}, errors.New("getAPISession response lacks sessionid or endpoint")
	}
	return cfg, nil
}

// Current returns the cached session config.
func (m *Manager) Current() (Config, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config, m.state == StateAuthenticated
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Invalidate purges the cached session.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticated {
		m.logger.Warn("session invalidated", slog.String("endpoint", m.config.EndpointURL))
	}
	m.state = StateUnauthenticated
	m.config = Config{}
}
