package etree_test

import (
	"testing"

	"github.com/fwojciec/patview"
	"github.com/fwojciec/patview/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parses well-formed XML", func(t *testing.T) {
		t.Parallel()

		doc, err := etree.Parse([]byte(publication(`<pat:Claims/>`)))

		require.NoError(t, err)
		assert.Equal(t, "PatentPublication", doc.Root().Tag())
		assert.Equal(t, patview.NSJPPatent, doc.Root().NamespaceURI())
	})

	t.Run("accepts prolog, comments and predeclared xml prefix", func(t *testing.T) {
		t.Parallel()

		doc, err := etree.ParseString(`<?xml version="1.0"?>
<!-- header -->
<a xmlns:p="urn:p" xml:lang="ja"><p:b p:x="1" x="2"/></a>
<!-- trailer -->
`)

		require.NoError(t, err)
		assert.Equal(t, "a", doc.Root().Tag())
	})

	t.Run("transcodes Shift_JIS documents", func(t *testing.T) {
		t.Parallel()

		src := `<?xml version="1.0" encoding="Shift_JIS"?>
<jppat:PatentPublication ` + nsDecl + `>
<jppat:UnexaminedPatentPublicationBibliographicData>
	<pat:InventionTitle>発光装置</pat:InventionTitle>
</jppat:UnexaminedPatentPublicationBibliographicData>
</jppat:PatentPublication>`
		encoded, err := japanese.ShiftJIS.NewEncoder().String(src)
		require.NoError(t, err)

		doc, err := etree.Parse([]byte(encoded))
		require.NoError(t, err)

		assert.Equal(t, "発光装置", etree.ExtractDocument(doc).InventionTitle)
	})
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated tag", input: `<root><unclosed>`},
		{name: "mismatched end tag", input: `<root><a></b></root>`},
		{name: "broken start tag", input: `<root <a>`},
		{name: "empty input", input: ``},
		{name: "plain text", input: `not xml at all`},
		{name: "undeclared entity", input: `<root>&nbsp;</root>`},
		{name: "two root elements", input: `<a/><b/>`},
		{name: "text after root", input: `<a/>junk`},
		{name: "text before root", input: `junk<a/>`},
		{name: "duplicate attribute", input: `<a x="1" x="2"/>`},
		{name: "duplicate namespaced attribute", input: `<a xmlns:p="urn:p" p:x="1" p:x="2"/>`},
		{name: "undeclared element prefix", input: `<p:a/>`},
		{name: "undeclared nested prefix", input: `<a xmlns:p="urn:p"><q:b/></a>`},
		{name: "undeclared attribute prefix", input: `<a q:x="1"/>`},
		{name: "prefix declared on sibling only", input: `<a><b xmlns:p="urn:p"/><p:c/></a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := etree.ParseString(tt.input)

			require.Error(t, err)
			assert.Nil(t, doc)
			assert.Equal(t, patview.EMALFORMED, patview.ErrorCode(err))
			assert.Contains(t, patview.ErrorMessage(err), "not well-formed XML")
		})
	}
}

func TestDocument_Root_Nil(t *testing.T) {
	t.Parallel()

	var doc *etree.Document

	assert.True(t, doc.Root().IsZero())
}
