package message

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-intacct/pkg/content"
)

// Document renders the request as an XML document. Content serialization
// errors are returned unchanged so callers can match content.ErrSerialization.
func (r *Request) Document() (*etree.Document, error) {
	if err := r.Authentication.validate(); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("request")

	control := root.CreateElement("control")
	control.CreateElement("senderid").SetText(r.Control.SenderID)
	control.CreateElement("password").SetText(r.Control.SenderPassword)
	control.CreateElement("controlid").SetText(r.Control.ControlID)
	control.CreateElement("uniqueid").SetText(strconv.FormatBool(r.Control.UniqueID))
	dtd := r.Control.DTDVersion
	if dtd == "" {
		dtd = DTDVersion
	}
	control.CreateElement("dtdversion").SetText(dtd)
	if r.Control.PolicyID != "" {
		control.CreateElement("policyid").SetText(r.Control.PolicyID)
	}
	control.CreateElement("includewhitespace").SetText(strconv.FormatBool(r.Control.IncludeWhitespace))

	operation := root.CreateElement("operation")
	operation.CreateAttr("transaction", strconv.FormatBool(r.Transaction))

	auth := operation.CreateElement("authentication")
	if r.Authentication.Login != nil {
		login := auth.CreateElement("login")
		login.CreateElement("userid").SetText(r.Authentication.Login.UserID)
		login.CreateElement("companyid").SetText(r.Authentication.Login.CompanyID)
		login.CreateElement("password").SetText(r.Authentication.Login.Password)
	} else {
		auth.CreateElement("sessionid").SetText(r.Authentication.SessionID)
	}

	body := operation.CreateElement("content")
	for _, op := range r.Operations {
		if !content.ValidName(op.Function) {
			return nil, &content.SerializationError{Name: op.Function, Reason: "invalid function name"}
		}
		fn := body.CreateElement("function")
		fn.CreateAttr("controlid", op.ControlID)
		call := fn.CreateElement(op.Function)
		for i, item := range op.Content {
			if item == nil {
				return nil, fmt.Errorf("%w: %s content item %d is nil", ErrEnvelopeBuild, op.Function, i)
			}
			if err := item.WriteXML(call); err != nil {
				return nil, err
			}
		}
	}

	return doc, nil
}

// Bytes serializes the request without indentation.
func (r *Request) Bytes() ([]byte, error) {
	doc, err := r.Document()
	if err != nil {
		return nil, err
	}
	return doc.WriteToBytes()
}
