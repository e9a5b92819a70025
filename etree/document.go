// Package etree implements patent extraction on top of the beevik/etree
// XML tree: document loading, namespace-aware path queries, paragraph
// assembly and the patview.Extractor implementation.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/patview"
	"golang.org/x/net/html/charset"
)

// Document is a parsed XML document. Extraction only reads it.
type Document struct {
	doc *etree.Document
}

// Parse parses data as XML.
// Returns EMALFORMED if data is not well-formed XML.
func Parse(data []byte) (*Document, error) {
	doc := newDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, patview.Errorf(patview.EMALFORMED, "input is not well-formed XML: %v", err)
	}
	return wrap(doc)
}

// ParseString parses s as XML.
// Returns EMALFORMED if s is not well-formed XML.
func ParseString(s string) (*Document, error) {
	doc := newDocument()
	if err := doc.ReadFromString(s); err != nil {
		return nil, patview.Errorf(patview.EMALFORMED, "input is not well-formed XML: %v", err)
	}
	return wrap(doc)
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	// Documents declaring Shift_JIS or EUC-JP are transcoded to UTF-8.
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	// Keep repeated attributes so checkWellFormed can reject them.
	doc.ReadSettings.PreserveDuplicateAttrs = true
	return doc
}

func wrap(doc *etree.Document) (*Document, error) {
	if err := checkWellFormed(doc); err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// checkWellFormed rejects documents the decoder accepts but XML does not:
// zero or several root elements, text outside the root, repeated attributes
// and undeclared namespace prefixes.
func checkWellFormed(doc *etree.Document) error {
	var roots int
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return malformed("text outside the root element")
			}
		}
	}
	switch {
	case roots == 0:
		return malformed("no root element")
	case roots > 1:
		return malformed("more than one root element")
	}

	root := doc.Root()
	if err := checkElement(root); err != nil {
		return err
	}
	var err error
	walk(root, func(el *etree.Element) {
		if err == nil {
			err = checkElement(el)
		}
	})
	return err
}

func checkElement(el *etree.Element) error {
	if el.Space != "" && lookupNamespace(el, el.Space) == "" {
		return malformed("undeclared prefix %q on <%s:%s>", el.Space, el.Space, el.Tag)
	}

	type name struct{ space, key string }
	seen := make(map[name]bool, len(el.Attr))
	for i := range el.Attr {
		a := &el.Attr[i]
		n := name{a.Space, a.Key}
		if seen[n] {
			return malformed("duplicate attribute %q on <%s>", a.FullKey(), el.FullTag())
		}
		seen[n] = true

		if a.Space != "" && a.Space != "xmlns" && lookupNamespace(el, a.Space) == "" {
			return malformed("undeclared prefix %q on attribute %q", a.Space, a.FullKey())
		}
	}
	return nil
}

func malformed(format string, args ...any) error {
	return patview.Errorf(patview.EMALFORMED, "input is not well-formed XML: "+format, args...)
}

// Root returns the document element.
// A nil Document yields the zero Node.
func (d *Document) Root() Node {
	if d == nil || d.doc == nil {
		return Node{}
	}
	return Node{el: d.doc.Root()}
}
