package message

import (
	"fmt"

	"github.com/google/uuid"
)

// RequestBuilder helps construct gateway requests
type RequestBuilder struct {
	req    *Request
	errors []error
}

// Option represents a functional option for RequestBuilder
type Option func(*RequestBuilder)

// NewRequest creates a new request builder with the given options
func NewRequest(opts ...Option) *RequestBuilder {
	builder := &RequestBuilder{
		req: &Request{
			Control: Control{
				DTDVersion: DTDVersion,
			},
		},
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder
}

// WithSender sets the web services sender credentials
func WithSender(senderID, password string) Option {
	return func(b *RequestBuilder) {
		b.req.Control.SenderID = senderID
		b.req.Control.SenderPassword = password
	}
}

// WithControlID sets the request control id
func WithControlID(id string) Option {
	return func(b *RequestBuilder) {
		b.req.Control.ControlID = id
	}
}

// WithUniqueID asks the gateway to reject a repeated control id
func WithUniqueID(unique bool) Option {
	return func(b *RequestBuilder) {
		b.req.Control.UniqueID = unique
	}
}

// WithPolicyID sets the asynchronous policy id
func WithPolicyID(policyID string) Option {
	return func(b *RequestBuilder) {
		b.req.Control.PolicyID = policyID
	}
}

// WithIncludeWhitespace asks the gateway to keep whitespace in responses
func WithIncludeWhitespace(include bool) Option {
	return func(b *RequestBuilder) {
		b.req.Control.IncludeWhitespace = include
	}
}

// WithTransaction makes the operations all-or-nothing
func WithTransaction(transaction bool) Option {
	return func(b *RequestBuilder) {
		b.req.Transaction = transaction
	}
}

// WithSession authenticates with an existing session id
func WithSession(sessionID string) Option {
	return func(b *RequestBuilder) {
		if b.req.Authentication.Login != nil {
			b.errors = append(b.errors, fmt.Errorf("%w: session and login are mutually exclusive", ErrEnvelopeBuild))
			return
		}
		b.req.Authentication.SessionID = sessionID
	}
}

// WithLogin authenticates with company user credentials
func WithLogin(userID, companyID, password string) Option {
	return func(b *RequestBuilder) {
		if b.req.Authentication.SessionID != "" {
			b.errors = append(b.errors, fmt.Errorf("%w: session and login are mutually exclusive", ErrEnvelopeBuild))
			return
		}
		b.req.Authentication.Login = &Login{
			UserID:    userID,
			CompanyID: companyID,
			Password:  password,
		}
	}
}

// WithOperation appends operations in order
func WithOperation(ops ...Operation) Option {
	return func(b *RequestBuilder) {
		b.req.Operations = append(b.req.Operations, ops...)
	}
}

// Build validates and returns the request
func (b *RequestBuilder) Build() (*Request, error) {
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	req := b.req
	if req.Control.SenderID == "" {
		return nil, fmt.Errorf("%w: sender id is required", ErrEnvelopeBuild)
	}
	if err := req.Authentication.validate(); err != nil {
		return nil, err
	}
	if len(req.Operations) == 0 {
		return nil, fmt.Errorf("%w: at least one operation is required", ErrEnvelopeBuild)
	}
	if req.Control.ControlID == "" {
		req.Control.ControlID = uuid.NewString()
	}

	seen := make(map[string]int, len(req.Operations))
	for i := range req.Operations {
		op := &req.Operations[i]
		if op.Function == "" {
			return nil, fmt.Errorf("%w: operation %d has no function", ErrEnvelopeBuild, i)
		}
		if op.ControlID == "" {
			op.ControlID = uuid.NewString()
		}
		if prev, dup := seen[op.ControlID]; dup {
			return nil, fmt.Errorf("%w: operations %d and %d share control id %q", ErrEnvelopeBuild, prev, i, op.ControlID)
		}
		seen[op.ControlID] = i
	}

	return req, nil
}

func (a Authentication) validate() error {
	switch {
	case a.SessionID != "" && a.Login != nil:
		return fmt.Errorf("%w: session and login are mutually exclusive", ErrEnvelopeBuild)
	case a.SessionID != "":
		return nil
	case a.Login != nil:
		if a.Login.UserID == "" || a.Login.CompanyID == "" || a.Login.Password == "" {
			return fmt.Errorf("%w: login requires user id, company id and password", ErrEnvelopeBuild)
		}
		return nil
	}
	return fmt.Errorf("%w: no authentication method", ErrEnvelopeBuild)
}
