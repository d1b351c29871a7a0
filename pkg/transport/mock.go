package transport

import (
	"context"
	"sync"
)

// MockResponse is a canned reply for MockSender.
type MockResponse struct {
	StatusCode int
	Body       []byte
	Err        error
}

// RecordedRequest is a request captured by MockSender.
type RecordedRequest struct {
	Endpoint string
	Body     []byte
}

// MockSender replays queued responses in FIFO order and records requests.
type MockSender struct {
	mu        sync.Mutex
	responses []MockResponse
	requests  []RecordedRequest
}

// NewMockSender creates a mock preloaded with responses.
func NewMockSender(responses ...MockResponse) *MockSender {
	return &MockSender{responses: responses}
}

// Enqueue appends responses to the queue.
func (m *MockSender) Enqueue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
}

// Send implements Sender.
func (m *MockSender) Send(ctx context.Context, endpoint string, body []byte) (int, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, RecordedRequest{
		Endpoint: endpoint,
		Body:     append([]byte(nil), body...),
	})

	if err := ctx.Err(); err != nil {
		return 0, nil, &Error{Endpoint: endpoint, Message: "request cancelled", Err: err}
	}
	if len(m.responses) == 0 {
		return 0, nil, &Error{Endpoint: endpoint, Message: "mock response queue is empty"}
	}

	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return 0, nil, next.Err
	}
	status := next.StatusCode
	if status == 0 {
		status = 200
	}
	if (status < 200 || status > 299) && !LooksLikeEnvelope(next.Body) {
		return status, next.Body, &Error{Endpoint: endpoint, StatusCode: status, Message: string(next.Body)}
	}
	return status, next.Body, nil
}

// Requests returns every recorded request in order.
func (m *MockSender) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// LastRequest returns the most recent request.
func (m *MockSender) LastRequest() (RecordedRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return RecordedRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// Pending returns the number of queued responses not yet consumed.
func (m *MockSender) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}
