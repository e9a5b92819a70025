package etree

import (
	"strings"

	"github.com/fwojciec/patview"
)

var paragraphPath = MustCompile(".//com:P | .//pat:P")

// Paragraphs returns the paragraphs below container in document order.
// Both com:P and pat:P elements count as paragraphs. An absent container
// yields an empty slice.
func Paragraphs(container Node) []patview.Paragraph {
	nodes := paragraphPath.Nodes(container)
	paras := make([]patview.Paragraph, 0, len(nodes))
	for _, n := range nodes {
		paras = append(paras, patview.Paragraph{
			Number: n.Attr(patview.NSCommon, "pNumber"),
			Text:   normalizeSpace(textContent(n.el, nil)),
		})
	}
	return paras
}

// normalizeSpace trims s and collapses internal runs of ASCII whitespace
// into single spaces. Other space characters, such as the ideographic
// space that opens Japanese paragraphs, are kept.
func normalizeSpace(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ', '\t', '\n', '\r':
			space = true
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}
