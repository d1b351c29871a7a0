package session

import (
	"fmt"

	"github.com/sirosfoundation/go-intacct/pkg/message"
)

// ErrInvalidCredentials is returned when neither or both credential forms are
// given. It matches message.ErrEnvelopeBuild since no authentication block
// can be built from such credentials.
var ErrInvalidCredentials = fmt.Errorf("session: invalid credentials: %w", message.ErrEnvelopeBuild)

// Method identifies how a client authenticates the bootstrap request.
type Method int

const (
	// MethodLogin authenticates with company user credentials
	MethodLogin Method = iota + 1
	// MethodSession authenticates with an existing session id
	MethodSession
)

func (m Method) String() string {
	switch m {
	case MethodLogin:
		return "login"
	case MethodSession:
		return "session"
	}
	return "unknown"
}

// Credentials holds the sender credentials plus exactly one of a user login
// or an existing session id.
type Credentials struct {
	SenderID       string
	SenderPassword string

	CompanyID    string
	UserID       string
	UserPassword string

	SessionID string
}

// Method validates the credentials and reports which form they take.
func (c Credentials) Method() (Method, error) {
	if c.SenderID == "" || c.SenderPassword == "" {
		return 0, fmt.Errorf("%w: sender id and sender password are required", ErrInvalidCredentials)
	}

	hasLogin := c.CompanyID != "" || c.UserID != "" || c.UserPassword != ""
	hasSession := c.SessionID != ""

	switch {
	case hasLogin && hasSession:
		return 0, fmt.Errorf("%w: provide either login fields or a session id, not both", ErrInvalidCredentials)
	case hasSession:
		return MethodSession, nil
	case hasLogin:
		if c.CompanyID == "" || c.UserID == "" || c.UserPassword == "" {
			return 0, fmt.Errorf("%w: company id, user id and user password are all required", ErrInvalidCredentials)
		}
		return MethodLogin, nil
	}
	return 0, fmt.Errorf("%w: no login fields or session id", ErrInvalidCredentials)
}
