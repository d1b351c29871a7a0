package content

import (
	"github.com/beevik/etree"
)

// Writer is a content item that appends itself to a function element.
type Writer interface {
	WriteXML(parent *etree.Element) error
}

// Record is an object name with an ordered field mapping.
type Record struct {
	Object string
	Fields Fields
}

// NewRecord creates a record from alternating field name/value pairs.
func NewRecord(object string, kv ...string) *Record {
	return &Record{Object: object, Fields: NewFields(kv...)}
}

// WriteXML appends <Object><field>value</field>...</Object> to parent.
func (r *Record) WriteXML(parent *etree.Element) error {
	if !ValidName(r.Object) {
		return &SerializationError{Name: r.Object, Reason: "invalid object name"}
	}
	// validate before mutating parent so a failure leaves no partial element
	if err := validateFields(r.Fields); err != nil {
		return err
	}
	el := parent.CreateElement(r.Object)
	writeFields(el, r.Fields)
	return nil
}

// Params writes its fields directly under the parent element.
type Params Fields

// WriteXML appends one child per parameter to parent.
func (p Params) WriteXML(parent *etree.Element) error {
	if err := validateFields(Fields(p)); err != nil {
		return err
	}
	writeFields(parent, Fields(p))
	return nil
}

// Serialize renders a single content item without a surrounding function.
func Serialize(w Writer) ([]byte, error) {
	doc := etree.NewDocument()
	holder := doc.CreateElement("content")
	if err := w.WriteXML(holder); err != nil {
		return nil, err
	}
	out := etree.NewDocument()
	for _, child := range holder.ChildElements() {
		out.AddChild(child.Copy())
	}
	return out.WriteToBytes()
}

func validateFields(fields Fields) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !ValidName(f.Name) {
			return &SerializationError{Name: f.Name, Reason: "invalid field name"}
		}
		if !ValidText(f.Value) {
			return &SerializationError{Name: f.Name, Reason: "value contains characters not allowed in XML"}
		}
		if _, dup := seen[f.Name]; dup {
			return &SerializationError{Name: f.Name, Reason: "duplicate field name"}
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

func writeFields(el *etree.Element, fields Fields) {
	for _, f := range fields {
		el.CreateElement(f.Name).SetText(f.Value)
	}
}
