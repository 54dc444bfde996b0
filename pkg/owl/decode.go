package owl

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/owlnet/pkg/errors"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// Decode reads an XML document from r and returns its document element: a
// nameless element whose only child is the XML root.
//
// Decode does not validate the document against any OWL profile. Malformed
// XML fails with an [errors.ErrCodeMalformedInput] error.
func Decode(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	doc := &Element{}
	stack := []*Element{doc}
	texts := []*strings.Builder{{}}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode XML")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			e := &Element{Name: t.Name.Local}
			for _, a := range t.Attr {
				if name, ok := attrName(a.Name); ok {
					e.SetAttr(name, a.Value)
				}
			}
			stack[len(stack)-1].Add(e)
			stack = append(stack, e)
			texts = append(texts, &strings.Builder{})
		case xml.CharData:
			texts[len(texts)-1].Write(t)
		case xml.EndElement:
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(texts[len(texts)-1].String())
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
		}
	}

	if len(stack) != 1 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "decode XML: unexpected end of document")
	}
	if doc.Len() == 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "decode XML: document has no root element")
	}
	return doc, nil
}

// DecodeBytes is [Decode] over an in-memory document.
func DecodeBytes(data []byte) (*Element, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeFile opens path and decodes it with [Decode].
func DecodeFile(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// attrName maps a decoded attribute name to the key it is stored under.
// Namespace declarations are dropped.
func attrName(n xml.Name) (string, bool) {
	switch {
	case n.Space == "xmlns", n.Space == "" && n.Local == "xmlns":
		return "", false
	case n.Space == "xml", n.Space == xmlNamespace:
		return "xml:" + n.Local, true
	}
	return n.Local, true
}
