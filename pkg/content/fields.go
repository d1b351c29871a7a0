package content

// Field is a single named scalar value.
type Field struct {
	Name  string
	Value string
}

// Fields is an ordered field mapping. Names are unique; insertion order is
// the serialization order.
type Fields []Field

// NewFields builds Fields from alternating name/value pairs. A trailing name
// without a value is given an empty value.
func NewFields(kv ...string) Fields {
	f := make(Fields, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		value := ""
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		f.Set(kv[i], value)
	}
	return f
}

// Set assigns value to name. An existing name keeps its position.
func (f *Fields) Set(name, value string) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

// Get returns the value stored under name.
func (f Fields) Get(name string) (string, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// Value returns the value stored under name or the empty string.
func (f Fields) Value(name string) string {
	v, _ := f.Get(name)
	return v
}

// Values returns every value stored under name, in order. Decoded payloads
// may repeat a name.
func (f Fields) Values(name string) []string {
	var values []string
	for _, field := range f {
		if field.Name == name {
			values = append(values, field.Value)
		}
	}
	return values
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// Len returns the number of fields.
func (f Fields) Len() int {
	return len(f)
}
