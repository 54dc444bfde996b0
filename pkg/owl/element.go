package owl

import "slices"

// Element is a node of a decoded document.
//
// The zero value is an empty element with no name. Elements built by hand
// (usually in tests) use [NewElement] and [Element.Add].
type Element struct {
	Name string // Local element name, e.g. "SubClassOf"
	Text string // Trimmed character data directly under the element

	attrs map[string]string
	names []string              // child names in first-appearance order
	kids  map[string][]*Element // child name -> elements in document order
}

// NewElement creates an element with the given attributes. attrs is read as
// alternating name/value pairs; a trailing name without value is ignored.
func NewElement(name string, attrs ...string) *Element {
	e := &Element{Name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		e.SetAttr(attrs[i], attrs[i+1])
	}
	return e
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	return e.attrs[name]
}

// HasAttr reports whether the attribute is present, even if empty.
func (e *Element) HasAttr(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.attrs[name]
	return ok
}

// Add appends children and returns e, so trees can be built inline.
func (e *Element) Add(children ...*Element) *Element {
	for _, c := range children {
		if c == nil {
			continue
		}
		if e.kids == nil {
			e.kids = make(map[string][]*Element)
		}
		if _, ok := e.kids[c.Name]; !ok {
			e.names = append(e.names, c.Name)
		}
		e.kids[c.Name] = append(e.kids[c.Name], c)
	}
	return e
}

// WithText sets the element text and returns e.
func (e *Element) WithText(text string) *Element {
	e.Text = text
	return e
}

// Children returns the child elements with the given name in document order.
// A single child and a repeated child are both returned as a slice. The
// returned slice must not be modified.
func (e *Element) Children(name string) []*Element {
	if e == nil {
		return nil
	}
	return e.kids[name]
}

// First returns the first child with the given name, or nil.
func (e *Element) First(name string) *Element {
	kids := e.Children(name)
	if len(kids) == 0 {
		return nil
	}
	return kids[0]
}

// ChildNames returns the distinct child element names in the order each name
// first appeared.
func (e *Element) ChildNames() []string {
	if e == nil {
		return nil
	}
	return slices.Clone(e.names)
}

// Len returns the total number of direct children.
func (e *Element) Len() int {
	if e == nil {
		return 0
	}
	n := 0
	for _, kids := range e.kids {
		n += len(kids)
	}
	return n
}
