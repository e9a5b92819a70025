package etree

import (
	"strings"

	"github.com/beevik/etree"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// Node is an element of a parsed document. The zero Node means "absent":
// every query against it returns an empty result.
type Node struct {
	el *etree.Element
}

// IsZero reports whether the node is absent.
func (n Node) IsZero() bool {
	return n.el == nil
}

// Tag returns the local name of the element.
func (n Node) Tag() string {
	if n.el == nil {
		return ""
	}
	return n.el.Tag
}

// NamespaceURI returns the namespace URI of the element, resolved from the
// xmlns declarations in scope. Elements without a namespace return "".
func (n Node) NamespaceURI() string {
	if n.el == nil {
		return ""
	}
	return elementNamespace(n.el)
}

// Attr returns the value of the attribute with the given namespace URI and
// local name, or "" if the element has no such attribute.
func (n Node) Attr(uri, local string) string {
	if n.el == nil {
		return ""
	}
	for i := range n.el.Attr {
		a := &n.el.Attr[i]
		if a.Key == local && !isNamespaceDecl(a) && attrNamespace(n.el, a) == uri {
			return a.Value
		}
	}
	return ""
}

// Text returns the trimmed text content of the element and its descendants.
func (n Node) Text() string {
	if n.el == nil {
		return ""
	}
	return strings.TrimSpace(textContent(n.el, nil))
}

// textContent concatenates the character data below el in document order.
// When inline is non-nil it is consulted for every descendant element; if it
// returns ok the returned string replaces that element's content.
func textContent(el *etree.Element, inline func(*etree.Element) (string, bool)) string {
	var b strings.Builder
	writeText(&b, el, inline)
	return b.String()
}

func writeText(b *strings.Builder, el *etree.Element, inline func(*etree.Element) (string, bool)) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			if inline != nil {
				if s, ok := inline(t); ok {
					b.WriteString(s)
					continue
				}
			}
			writeText(b, t, inline)
		}
	}
}

// lookupNamespace resolves prefix in the scope of el. The empty prefix
// resolves the default namespace. Undeclared prefixes resolve to "".
func lookupNamespace(el *etree.Element, prefix string) string {
	if prefix == "xml" {
		return xmlNamespace
	}
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if prefix == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if prefix != "" && a.Space == "xmlns" && a.Key == prefix {
				return a.Value
			}
		}
	}
	return ""
}

func elementNamespace(el *etree.Element) string {
	return lookupNamespace(el, el.Space)
}

// attrNamespace returns the namespace of a. Unprefixed attributes are in
// no namespace.
func attrNamespace(el *etree.Element, a *etree.Attr) string {
	if a.Space == "" {
		return ""
	}
	return lookupNamespace(el, a.Space)
}

func isNamespaceDecl(a *etree.Attr) bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}
