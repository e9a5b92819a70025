package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/patview"
	"github.com/fwojciec/patview/fs"
)

// extraction is a publication read from disk and extracted.
type extraction struct {
	bundle *fs.Bundle
	xml    string
	patent *patview.Patent
}

// extractBundle opens the bundle at path and extracts its publication.
func extractBundle(deps *Dependencies, path string) (*extraction, error) {
	bundle, err := fs.OpenBundle(path)
	if err != nil {
		return nil, err
	}

	xml, err := bundle.ReadXML()
	if err != nil {
		return nil, err
	}

	p, err := deps.Extractor.Extract(xml)
	if err != nil {
		return nil, err
	}
	return &extraction{bundle: bundle, xml: xml, patent: p}, nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	ex, err := extractBundle(deps, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", patview.ErrorMessage(err))
		return err
	}
	p := ex.patent

	if c.Format == "markdown" {
		fmt.Fprintln(deps.Stdout, patview.FormatMarkdown(p))
		return nil
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	if !c.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(p)
}

// Run executes the claims command.
func (c *ClaimsCmd) Run(deps *Dependencies) error {
	ex, err := extractBundle(deps, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", patview.ErrorMessage(err))
		return err
	}
	p := ex.patent

	if len(p.Claims) == 0 {
		fmt.Fprintln(deps.Stdout, "No claims found.")
		return nil
	}

	for i, claim := range p.Claims {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		text := claim.DisplayText()
		if c.Raw {
			text = claim.Text
		}
		fmt.Fprintf(deps.Stdout, "[Claim %s]\n%s\n", claim.Number, text)
	}
	return nil
}

// Run executes the figures command.
func (c *FiguresCmd) Run(deps *Dependencies) error {
	ex, err := extractBundle(deps, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", patview.ErrorMessage(err))
		return err
	}
	bundle, p := ex.bundle, ex.patent

	if len(p.Drawings) == 0 {
		fmt.Fprintln(deps.Stdout, "No drawings found.")
		return nil
	}

	var missing int
	for _, f := range patview.ResolveDrawings(p.Drawings, bundle.Images) {
		path := f.Path
		if f.Missing() {
			path = "(not found)"
			missing++
		}
		fmt.Fprintf(deps.Stdout, "Figure %s  %s  %s\n", f.Number, f.FileName, path)
	}

	if missing > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d of %d images not found next to %s\n", missing, len(p.Drawings), bundle.XMLPath)
	}
	return nil
}
