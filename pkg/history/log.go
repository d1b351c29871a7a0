package history

import (
	"sync"
	"time"

	"github.com/sirosfoundation/go-intacct/pkg/message"
)

// Entry describes one request/response exchange
type Entry struct {
	ControlID string
	Functions []string
	Endpoint  string
	StartedAt time.Time
	Duration  time.Duration

	// StatusCode is the HTTP status, zero when the request never completed
	StatusCode int
	// Response is nil when the exchange failed before a response was parsed
	Response *message.Response
	Err      error
}

// Succeeded reports whether the exchange produced a usable response
func (e Entry) Succeeded() bool {
	return e.Err == nil && e.Response != nil
}

// Log is an append-only execution history
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLog creates an empty log
func NewLog() *Log {
	return &Log{}
}

// Append records an entry
func (l *Log) Append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// Len returns the number of recorded entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Last returns the most recent entry
func (l *Log) Last() (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// All returns a copy of every entry, oldest first
func (l *Log) All() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
