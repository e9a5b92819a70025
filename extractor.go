package patview

// Extractor converts a patent publication XML document into a Patent.
type Extractor interface {
	// Extract parses xml and returns the normalized patent.
	// Returns EMALFORMED if xml is not well-formed. Missing sections are
	// never an error; they produce empty fields.
	Extract(xml string) (*Patent, error)
}
