package intacct

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirosfoundation/go-intacct/pkg/content"
	"github.com/sirosfoundation/go-intacct/pkg/message"
)

// Function names used by the convenience methods. Each also serves as the
// operation's control id.
const (
	FunctionCreate      = "create"
	FunctionUpdate      = "update"
	FunctionDelete      = "delete"
	FunctionRead        = "read"
	FunctionReadByQuery = "readByQuery"
	FunctionReadMore    = "readMore"
)

// Create creates one or more records in a single operation.
func (c *Client) Create(ctx context.Context, records ...content.Writer) (*message.Result, error) {
	return c.single(ctx, message.NewOperation(FunctionCreate, records...).WithControlID(FunctionCreate))
}

// Update updates one or more records in a single operation.
func (c *Client) Update(ctx context.Context, records ...content.Writer) (*message.Result, error) {
	return c.single(ctx, message.NewOperation(FunctionUpdate, records...).WithControlID(FunctionUpdate))
}

// Delete deletes records of object by record number.
func (c *Client) Delete(ctx context.Context, object string, keys ...string) (*message.Result, error) {
	params := content.Params(content.NewFields(
		"object", object,
		"keys", strings.Join(keys, ","),
	))
	return c.single(ctx, message.NewOperation(FunctionDelete, params).WithControlID(FunctionDelete))
}

// Read returns records of object by record number. An empty fields list
// selects all fields.
func (c *Client) Read(ctx context.Context, object string, fields []string, keys ...string) (*message.Result, error) {
	params := content.Params(content.NewFields(
		"object", object,
		"keys", strings.Join(keys, ","),
		"fields", joinFields(fields),
	))
	return c.single(ctx, message.NewOperation(FunctionRead, params).WithControlID(FunctionRead))
}

// Query describes a readByQuery call.
type Query struct {
	Object string
	// Fields lists the fields to return; empty selects all
	Fields []string
	// Filter is the query expression, e.g. "STATUS = 'T'"
	Filter   string
	PageSize int
}

// ReadByQuery returns the first page of records matching q. Use ReadMore
// with the result's Data.ResultID for further pages.
func (c *Client) ReadByQuery(ctx context.Context, q Query) (*message.Result, error) {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	params := content.Params(content.NewFields(
		"object", q.Object,
		"fields", joinFields(q.Fields),
		"query", q.Filter,
		"pagesize", strconv.Itoa(pageSize),
	))
	return c.single(ctx, message.NewOperation(FunctionReadByQuery, params).WithControlID(FunctionReadByQuery))
}

// ReadMore returns the next page of a previous readByQuery.
func (c *Client) ReadMore(ctx context.Context, resultID string) (*message.Result, error) {
	params := content.Params(content.NewFields("resultId", resultID))
	return c.single(ctx, message.NewOperation(FunctionReadMore, params).WithControlID(FunctionReadMore))
}

func (c *Client) single(ctx context.Context, op message.Operation) (*message.Result, error) {
	results, err := c.Execute(ctx, op)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

func joinFields(fields []string) string {
	if len(fields) == 0 {
		return "*"
	}
	return strings.Join(fields, ",")
}
