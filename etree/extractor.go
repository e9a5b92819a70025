package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/patview"
)

// Ensure Extractor implements patview.Extractor at compile time.
var _ patview.Extractor = (*Extractor)(nil)

var (
	biblioPath = MustCompile("//jppat:InternationalPatentPublicationBibliographicData | //jppat:UnexaminedPatentPublicationBibliographicData")

	descriptionPath = MustCompile("//jppat:Description")
	claimsPath      = MustCompile("//pat:Claims")
	abstractPath    = MustCompile("//pat:Abstract")
	drawingsPath    = MustCompile("//pat:Drawings")

	inventionTitlePath    = MustCompile(".//pat:InventionTitle")
	publicationNumberPath = MustCompile(".//pat:PublicationNumber")
	publicationDatePath   = MustCompile(".//com:PublicationDate")
	applicationNumberPath = MustCompile(".//com:ApplicationNumberText")
	filingDatePath        = MustCompile(".//pat:FilingDate")

	applicantPath  = MustCompile(".//jppat:Applicant")
	inventorPath   = MustCompile(".//jppat:Inventor")
	entityNamePath = MustCompile(".//com:EntityName")

	claimPath       = MustCompile(".//pat:Claim")
	claimNumberPath = MustCompile(".//pat:ClaimNumber")
	claimTextPath   = MustCompile(".//pat:ClaimText")

	technicalFieldPath     = MustCompile(".//pat:TechnicalField")
	backgroundArtPath      = MustCompile(".//pat:BackgroundArt")
	inventionSummaryPath   = MustCompile(".//pat:InventionSummary")
	drawingDescriptionPath = MustCompile(".//pat:DrawingDescription")
	embodimentPath         = MustCompile(".//pat:EmbodimentDescription | .//pat:EmbodimentExample")

	figurePath       = MustCompile(".//pat:Figure")
	figureNumberPath = MustCompile(".//pat:FigureNumber")
	fileNamePath     = MustCompile(".//com:FileName")
)

// Extractor extracts patents from ST96 XML using etree.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses xml and maps it into a Patent.
func (e *Extractor) Extract(xml string) (*patview.Patent, error) {
	doc, err := ParseString(xml)
	if err != nil {
		return nil, err
	}
	return ExtractDocument(doc), nil
}

// ExtractDocument maps a parsed document into a Patent. Sections missing
// from the document produce empty fields; it never fails.
func ExtractDocument(doc *Document) *patview.Patent {
	root := doc.Root()
	biblio := biblioPath.First(root)
	abstract := abstractPath.First(root)

	p := patview.NewPatent()
	p.InventionTitle = inventionTitlePath.Text(biblio)
	p.PublicationNumber = publicationNumberPath.Text(biblio)
	p.PublicationDate = publicationDatePath.Text(biblio)
	p.ApplicationNumber = applicationNumberPath.Text(biblio)
	p.FilingDate = filingDatePath.Text(biblio)
	p.Applicants = entityNames(applicantPath.Nodes(biblio))
	p.Inventors = entityNames(inventorPath.Nodes(biblio))
	p.Abstract = joinParagraphs(Paragraphs(abstract))
	p.Claims = claims(claimsPath.First(root))
	p.Description = description(descriptionPath.First(root))
	p.Drawings = drawings(drawingsPath.First(root))
	return p
}

func entityNames(parties []Node) []string {
	names := make([]string, 0, len(parties))
	for _, n := range parties {
		names = append(names, entityNamePath.Text(n))
	}
	return names
}

func joinParagraphs(paras []patview.Paragraph) string {
	texts := make([]string, 0, len(paras))
	for _, p := range paras {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}

func claims(container Node) []patview.Claim {
	nodes := claimPath.Nodes(container)
	out := make([]patview.Claim, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, patview.Claim{
			Number: claimNumberPath.Text(n),
			Text:   claimText(claimTextPath.First(n)),
		})
	}
	return out
}

// claimText returns the text content of n with every com:Br element written
// as patview.LineBreakMarker.
func claimText(n Node) string {
	if n.IsZero() {
		return ""
	}
	return strings.TrimSpace(textContent(n.el, func(el *etree.Element) (string, bool) {
		if el.Tag == "Br" && elementNamespace(el) == patview.NSCommon {
			return patview.LineBreakMarker, true
		}
		return "", false
	}))
}

func description(container Node) patview.Description {
	d := patview.NewDescription()
	d.TechnicalField = Paragraphs(technicalFieldPath.First(container))
	d.BackgroundArt = Paragraphs(backgroundArtPath.First(container))
	d.InventionSummary = Paragraphs(inventionSummaryPath.First(container))
	d.DrawingDescription = Paragraphs(drawingDescriptionPath.First(container))
	for _, n := range embodimentPath.Nodes(container) {
		d.EmbodimentDescription = append(d.EmbodimentDescription, Paragraphs(n)...)
	}
	return d
}

func drawings(container Node) []patview.Drawing {
	nodes := figurePath.Nodes(container)
	out := make([]patview.Drawing, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, patview.Drawing{
			Number:   figureNumberPath.Text(n),
			FileName: fileNamePath.Text(n),
		})
	}
	return out
}
