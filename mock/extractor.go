package mock

import "github.com/fwojciec/patview"

var _ patview.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of patview.Extractor.
type Extractor struct {
	ExtractFn func(xml string) (*patview.Patent, error)
}

func (e *Extractor) Extract(xml string) (*patview.Patent, error) {
	return e.ExtractFn(xml)
}
