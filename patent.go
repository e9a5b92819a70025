package patview

import "strings"

// LineBreakMarker is the inline tag that marks a line break inside claim
// text. Extraction keeps it verbatim; see Claim.DisplayText.
const LineBreakMarker = "<com:Br/>"

// Patent is the normalized model of a patent publication.
// Absent source data is represented by empty strings and empty slices.
type Patent struct {
	InventionTitle    string      `json:"inventionTitle"`
	PublicationNumber string      `json:"publicationNumber"`
	PublicationDate   string      `json:"publicationDate"`
	ApplicationNumber string      `json:"applicationNumber"`
	FilingDate        string      `json:"filingDate"`
	Applicants        []string    `json:"applicants"`
	Inventors         []string    `json:"inventors"`
	Abstract          string      `json:"abstract"`
	Claims            []Claim     `json:"claims"`
	Description       Description `json:"description"`
	Drawings          []Drawing   `json:"drawings"`
}

// NewPatent returns a Patent with every sequence initialized to an empty slice.
func NewPatent() *Patent {
	return &Patent{
		Applicants:  []string{},
		Inventors:   []string{},
		Claims:      []Claim{},
		Description: NewDescription(),
		Drawings:    []Drawing{},
	}
}

// Description holds the named sections of the patent description.
type Description struct {
	TechnicalField        []Paragraph `json:"technicalField"`
	BackgroundArt         []Paragraph `json:"backgroundArt"`
	InventionSummary      []Paragraph `json:"inventionSummary"`
	DrawingDescription    []Paragraph `json:"drawingDescription"`
	EmbodimentDescription []Paragraph `json:"embodimentDescription"`
}

// NewDescription returns a Description with all sections empty.
func NewDescription() Description {
	return Description{
		TechnicalField:        []Paragraph{},
		BackgroundArt:         []Paragraph{},
		InventionSummary:      []Paragraph{},
		DrawingDescription:    []Paragraph{},
		EmbodimentDescription: []Paragraph{},
	}
}

// Paragraph is a unit of descriptive text.
// Number is the paragraph label as authored and may be empty.
type Paragraph struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Claim is a numbered claim.
type Claim struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// DisplayText returns the claim text with every LineBreakMarker replaced by
// a newline. It is meant for presentation; the stored Text is unchanged.
func (c Claim) DisplayText() string {
	return strings.ReplaceAll(c.Text, LineBreakMarker, "\n")
}

// Drawing references an external image by file name.
type Drawing struct {
	Number   string `json:"number"`
	FileName string `json:"fileName"`
}
