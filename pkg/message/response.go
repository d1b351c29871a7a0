package message

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/sirosfoundation/go-intacct/pkg/content"
)

// ParseResponse decodes a gateway response envelope.
func ParseResponse(data []byte) (*Response, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "response" {
		return nil, fmt.Errorf("%w: root element is not <response>", ErrMalformedResponse)
	}

	resp := &Response{}

	control := root.SelectElement("control")
	if control == nil {
		return nil, fmt.Errorf("%w: missing control block", ErrMalformedResponse)
	}
	resp.Control = ControlInfo{
		Status:     childText(control, "status"),
		SenderID:   childText(control, "senderid"),
		ControlID:  childText(control, "controlid"),
		UniqueID:   childText(control, "uniqueid"),
		DTDVersion: childText(control, "dtdversion"),
	}
	if resp.Control.Status != StatusSuccess {
		return nil, &ControlFailure{
			Status:    resp.Control.Status,
			ControlID: resp.Control.ControlID,
			Errors:    parseErrors(root.SelectElement("errormessage")),
		}
	}

	operation := root.SelectElement("operation")
	if operation == nil {
		// a successful control block without an operation means the
		// gateway never reached authentication
		return nil, &AuthenticationFailure{Errors: parseErrors(root.SelectElement("errormessage"))}
	}

	auth := operation.SelectElement("authentication")
	if auth == nil {
		return nil, &AuthenticationFailure{Errors: parseErrors(operation.SelectElement("errormessage"))}
	}
	resp.Authentication = AuthInfo{
		Status:           childText(auth, "status"),
		UserID:           childText(auth, "userid"),
		CompanyID:        childText(auth, "companyid"),
		SessionTimestamp: childText(auth, "sessiontimestamp"),
	}
	if resp.Authentication.Status != StatusSuccess {
		errs := parseErrors(auth.SelectElement("errormessage"))
		if len(errs) == 0 {
			errs = parseErrors(operation.SelectElement("errormessage"))
		}
		return nil, &AuthenticationFailure{Status: resp.Authentication.Status, Errors: errs}
	}

	// operation-level errors replace the results when the gateway could
	// not dispatch the functions at all
	resp.Errors = parseErrors(operation.SelectElement("errormessage"))

	for _, el := range operation.SelectElements("result") {
		result, err := parseResult(el)
		if err != nil {
			return nil, err
		}
		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

func parseResult(el *etree.Element) (Result, error) {
	result := Result{
		Status:    childText(el, "status"),
		Function:  childText(el, "function"),
		ControlID: childText(el, "controlid"),
	}
	if result.Status == "" {
		return Result{}, fmt.Errorf("%w: result without status", ErrMalformedResponse)
	}

	if !result.Succeeded() {
		result.Errors = parseErrors(el.SelectElement("errormessage"))
		return result, nil
	}

	if data := el.SelectElement("data"); data != nil {
		d, err := parseData(data)
		if err != nil {
			return Result{}, err
		}
		result.Data = d
	}
	return result, nil
}

func parseData(el *etree.Element) (*Data, error) {
	d := &Data{
		ListType: el.SelectAttrValue("listtype", ""),
		ResultID: el.SelectAttrValue("resultId", ""),
	}

	var err error
	if d.Count, err = intAttr(el, "count"); err != nil {
		return nil, err
	}
	if d.TotalCount, err = intAttr(el, "totalcount"); err != nil {
		return nil, err
	}
	if d.NumRemaining, err = intAttr(el, "numremaining"); err != nil {
		return nil, err
	}

	for _, child := range el.ChildElements() {
		item := Item{
			Record:  content.Record{Object: child.Tag},
			Element: child.Copy(),
		}
		fields := child.ChildElements()
		if len(fields) == 0 {
			item.Text = strings.TrimSpace(child.Text())
		}
		for _, field := range fields {
			item.Fields = append(item.Fields, content.Field{Name: field.Tag, Value: textOf(field)})
		}
		d.Items = append(d.Items, item)
	}
	return d, nil
}

func intAttr(el *etree.Element, name string) (int, error) {
	v := el.SelectAttrValue(name, "")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: data attribute %s=%q is not a number", ErrMalformedResponse, name, v)
	}
	return n, nil
}

func parseErrors(el *etree.Element) []ErrorDetail {
	if el == nil {
		return nil
	}
	var details []ErrorDetail
	for _, e := range el.SelectElements("error") {
		details = append(details, ErrorDetail{
			ErrorNo:      childText(e, "errorno"),
			Description:  childText(e, "description"),
			Description2: childText(e, "description2"),
			Correction:   childText(e, "correction"),
		})
	}
	return details
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return textOf(child)
}

// textOf returns the text of a leaf element, or the trimmed text of all
// descendants joined in document order for nested elements.
func textOf(el *etree.Element) string {
	if len(el.ChildElements()) == 0 {
		return strings.TrimSpace(el.Text())
	}
	var parts []string
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				if s := strings.TrimSpace(t.Data); s != "" {
					parts = append(parts, s)
				}
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return strings.Join(parts, " ")
}

// Correlate matches results to the request's operations by position. A
// result's function and control id, when echoed, must equal the operation's.
func (resp *Response) Correlate(req *Request) error {
	if len(resp.Results) != len(req.Operations) {
		return fmt.Errorf("%w: %d operations sent, %d results received%s",
			ErrCorrelation, len(req.Operations), len(resp.Results), describe(resp.Errors))
	}
	for i, op := range req.Operations {
		r := resp.Results[i]
		if r.Function != "" && r.Function != op.Function {
			return fmt.Errorf("%w: result %d is for function %q, expected %q",
				ErrCorrelation, i, r.Function, op.Function)
		}
		if r.ControlID != "" && r.ControlID != op.ControlID {
			return fmt.Errorf("%w: result %d has control id %q, expected %q",
				ErrCorrelation, i, r.ControlID, op.ControlID)
		}
	}
	return nil
}
