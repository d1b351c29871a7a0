package message

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-intacct/pkg/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classRecords() []content.Writer {
	return []content.Writer{
		content.NewRecord("CLASS", "CLASSID", "UT01", "NAME", "Unit Test 01"),
		content.NewRecord("CLASS", "CLASSID", "UT02", "NAME", "Unit Test 02"),
	}
}

func buildDoc(t *testing.T, opts ...Option) *etree.Document {
	t.Helper()
	req, err := NewRequest(opts...).Build()
	require.NoError(t, err)
	body, err := req.Bytes()
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))
	return doc
}

// concatText mirrors XPath string(): all descendant text in document order.
func concatText(el *etree.Element) string {
	var s string
	for _, tok := range el.Child {
		switch v := tok.(type) {
		case *etree.CharData:
			s += v.Data
		case *etree.Element:
			s += concatText(v)
		}
	}
	return s
}

func TestRequestBuilder_CreateEnvelope(t *testing.T) {
	doc := buildDoc(t,
		WithSender("testsenderid", "pass123!"),
		WithControlID("requestControlId"),
		WithSession("testSeSsionID.."),
		WithOperation(NewOperation("create", classRecords()...).WithControlID("create")),
	)

	fns := doc.FindElements("/request/operation/content/function/*")
	require.Len(t, fns, 1)
	assert.Equal(t, "create", fns[0].Tag)

	objects := doc.FindElements("/request/operation/content/function/create/*")
	require.Len(t, objects, 2)
	assert.Equal(t, "CLASS", objects[0].Tag)
	assert.Equal(t, "CLASS", objects[1].Tag)
	assert.Equal(t, "UT01Unit Test 01", concatText(objects[0]))
	assert.Equal(t, "UT02Unit Test 02", concatText(objects[1]))

	fn := doc.FindElement("/request/operation/content/function")
	assert.Equal(t, "create", fn.SelectAttrValue("controlid", ""))
}

func TestRequestBuilder_ControlBlock(t *testing.T) {
	doc := buildDoc(t,
		WithSender("testsenderid", "pass123!"),
		WithControlID("ctl-1"),
		WithUniqueID(true),
		WithPolicyID("policy-7"),
		WithSession("abc"),
		WithTransaction(true),
		WithOperation(NewOperation("getAPISession")),
	)

	assert.Equal(t, "testsenderid", doc.FindElement("/request/control/senderid").Text())
	assert.Equal(t, "pass123!", doc.FindElement("/request/control/password").Text())
	assert.Equal(t, "ctl-1", doc.FindElement("/request/control/controlid").Text())
	assert.Equal(t, "true", doc.FindElement("/request/control/uniqueid").Text())
	assert.Equal(t, "3.0", doc.FindElement("/request/control/dtdversion").Text())
	assert.Equal(t, "policy-7", doc.FindElement("/request/control/policyid").Text())
	assert.Equal(t, "false", doc.FindElement("/request/control/includewhitespace").Text())
	assert.Equal(t, "true", doc.FindElement("/request/operation").SelectAttrValue("transaction", ""))
	assert.Equal(t, "abc", doc.FindElement("/request/operation/authentication/sessionid").Text())
	assert.Nil(t, doc.FindElement("/request/operation/authentication/login"))
}

func TestRequestBuilder_LoginAuthentication(t *testing.T) {
	doc := buildDoc(t,
		WithSender("testsenderid", "pass123!"),
		WithLogin("testuser", "testcompany", "testpass"),
		WithOperation(NewOperation("getAPISession")),
	)

	login := doc.FindElement("/request/operation/authentication/login")
	require.NotNil(t, login)
	assert.Equal(t, "testuser", login.SelectElement("userid").Text())
	assert.Equal(t, "testcompany", login.SelectElement("companyid").Text())
	assert.Equal(t, "testpass", login.SelectElement("password").Text())
	assert.Nil(t, doc.FindElement("/request/operation/authentication/sessionid"))
}

func TestRequestBuilder_PreservesOperationOrder(t *testing.T) {
	req, err := NewRequest(
		WithSender("s", "p"),
		WithSession("sess"),
		WithOperation(
			NewOperation("create", content.NewRecord("CLASS", "CLASSID", "A")),
			NewOperation("update", content.NewRecord("CLASS", "CLASSID", "B")),
			NewOperation("delete", content.Params(content.NewFields("object", "CLASS", "keys", "7"))),
		),
	).Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"create", "update", "delete"}, req.Functions())

	doc, err := req.Document()
	require.NoError(t, err)
	fns := doc.FindElements("/request/operation/content/function")
	require.Len(t, fns, 3)
	for i, fn := range fns {
		assert.Equal(t, req.Operations[i].ControlID, fn.SelectAttrValue("controlid", ""))
		assert.NotEmpty(t, req.Operations[i].ControlID, "empty control ids are generated")
	}
	assert.NotEmpty(t, req.Control.ControlID)
}

func TestRequestBuilder_Validation(t *testing.T) {
	op := WithOperation(NewOperation("create"))
	tests := []struct {
		name string
		opts []Option
	}{
		{"no sender", []Option{WithSession("s"), op}},
		{"no authentication", []Option{WithSender("s", "p"), op}},
		{"session then login", []Option{WithSender("s", "p"), WithSession("s"), WithLogin("u", "c", "p"), op}},
		{"login then session", []Option{WithSender("s", "p"), WithLogin("u", "c", "p"), WithSession("s"), op}},
		{"incomplete login", []Option{WithSender("s", "p"), WithLogin("u", "", "p"), op}},
		{"no operations", []Option{WithSender("s", "p"), WithSession("s")}},
		{"empty function", []Option{WithSender("s", "p"), WithSession("s"), WithOperation(Operation{})}},
		{"duplicate control ids", []Option{WithSender("s", "p"), WithSession("s"),
			WithOperation(NewOperation("create").WithControlID("x"), NewOperation("update").WithControlID("x"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.opts...).Build()
			assert.Nil(t, req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrEnvelopeBuild), "got %v", err)
		})
	}
}

func TestRequest_SerializationError(t *testing.T) {
	req, err := NewRequest(
		WithSender("s", "p"),
		WithSession("s"),
		WithOperation(NewOperation("create", content.NewRecord("BAD NAME", "A", "1"))),
	).Build()
	require.NoError(t, err)

	_, err = req.Bytes()
	require.Error(t, err)
	assert.True(t, errors.Is(err, content.ErrSerialization))
}

func TestRequest_InvalidFunctionName(t *testing.T) {
	req, err := NewRequest(
		WithSender("s", "p"),
		WithSession("s"),
		WithOperation(NewOperation("read by query")),
	).Build()
	require.NoError(t, err)

	_, err = req.Bytes()
	assert.True(t, errors.Is(err, content.ErrSerialization))
}
