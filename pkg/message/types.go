package message

import (
	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-intacct/pkg/content"
)

// Protocol constants
const (
	DTDVersion = "3.0"

	// SessionProviderControlID is reserved for session bootstrap requests.
	SessionProviderControlID = "sessionProvider"
)

// Result status values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusAborted = "aborted"
)

// Operation is one function invocation batched inside a request.
type Operation struct {
	Function  string
	ControlID string
	Content   []content.Writer
}

// NewOperation creates an operation with an auto-generated control id.
func NewOperation(function string, items ...content.Writer) Operation {
	return Operation{Function: function, Content: items}
}

// WithControlID returns a copy of the operation with the given control id.
func (o Operation) WithControlID(id string) Operation {
	o.ControlID = id
	return o
}

// Control is the envelope-level control block.
type Control struct {
	SenderID          string
	SenderPassword    string
	ControlID         string
	UniqueID          bool
	DTDVersion        string
	PolicyID          string
	IncludeWhitespace bool
}

// Login holds company user credentials.
type Login struct {
	UserID    string
	CompanyID string
	Password  string
}

// Authentication holds either a session id or a login, never both.
type Authentication struct {
	SessionID string
	Login     *Login
}

// Request is a complete gateway request envelope.
type Request struct {
	Control        Control
	Authentication Authentication
	Transaction    bool
	Operations     []Operation
}

// Functions returns the function names in envelope order.
func (r *Request) Functions() []string {
	names := make([]string, len(r.Operations))
	for i, op := range r.Operations {
		names[i] = op.Function
	}
	return names
}

// ControlInfo is the control block echoed by the gateway.
type ControlInfo struct {
	Status     string
	SenderID   string
	ControlID  string
	UniqueID   string
	DTDVersion string
}

// AuthInfo is the authentication block of a response.
type AuthInfo struct {
	Status           string
	UserID           string
	CompanyID        string
	SessionTimestamp string
}

// ErrorDetail is a single entry of an errormessage list.
type ErrorDetail struct {
	ErrorNo      string
	Description  string
	Description2 string
	Correction   string
}

// Data is the payload of a successful result.
type Data struct {
	ListType     string
	Count        int
	TotalCount   int
	NumRemaining int
	ResultID     string
	Items        []Item
}

// Item is one element of a data payload. Fields holds one entry per child
// element in document order, repeated tags included; a nested child's value
// is its descendant text joined by spaces. Text is set for leaf items such
// as <key>101</key>. Element keeps the full subtree for nested blocks.
type Item struct {
	content.Record
	Text    string
	Element *etree.Element
}

// Result is the outcome of a single operation.
type Result struct {
	Status    string
	Function  string
	ControlID string
	Data      *Data
	Errors    []ErrorDetail
}

// Succeeded reports whether the operation succeeded.
func (r *Result) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Err returns the operation failure as an error value, or nil on success.
func (r *Result) Err() error {
	if r.Succeeded() {
		return nil
	}
	return &OperationFailure{
		Status:    r.Status,
		Function:  r.Function,
		ControlID: r.ControlID,
		Errors:    r.Errors,
	}
}

// Response is a parsed gateway response.
type Response struct {
	Control        ControlInfo
	Authentication AuthInfo
	Results        []Result
	// Errors holds an operation-level errormessage, if any
	Errors []ErrorDetail
}
