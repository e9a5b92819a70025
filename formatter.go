package patview

import "strings"

// FormatMarkdown renders a patent as a Markdown reading view: title,
// bibliographic data, abstract, claims, description sections and drawings.
// Sections without content are omitted. Parts are separated by blank lines.
func FormatMarkdown(p *Patent) string {
	if p == nil {
		return ""
	}

	header := p.InventionTitle
	if header == "" {
		header = p.PublicationNumber
	}
	if header == "" {
		header = "Untitled publication"
	}
	parts := []string{"# " + header}

	var biblio []string
	for _, f := range []struct{ label, value string }{
		{"Publication number", p.PublicationNumber},
		{"Publication date", p.PublicationDate},
		{"Application number", p.ApplicationNumber},
		{"Filing date", p.FilingDate},
		{"Applicants", strings.Join(p.Applicants, ", ")},
		{"Inventors", strings.Join(p.Inventors, ", ")},
	} {
		if f.value != "" {
			biblio = append(biblio, "- "+f.label+": "+f.value)
		}
	}
	if len(biblio) > 0 {
		parts = append(parts, strings.Join(biblio, "\n"))
	}

	if p.Abstract != "" {
		parts = append(parts, "## Abstract\n"+p.Abstract)
	}

	if len(p.Claims) > 0 {
		parts = append(parts, "## Claims")
		for _, c := range p.Claims {
			parts = append(parts, "### Claim "+c.Number+"\n"+c.DisplayText())
		}
	}

	sections := []struct {
		title string
		paras []Paragraph
	}{
		{"Technical Field", p.Description.TechnicalField},
		{"Background Art", p.Description.BackgroundArt},
		{"Summary of Invention", p.Description.InventionSummary},
		{"Brief Description of Drawings", p.Description.DrawingDescription},
		{"Description of Embodiments", p.Description.EmbodimentDescription},
	}
	var description []string
	for _, s := range sections {
		if len(s.paras) == 0 {
			continue
		}
		texts := make([]string, 0, len(s.paras))
		for _, para := range s.paras {
			texts = append(texts, formatParagraph(para))
		}
		description = append(description, "### "+s.title+"\n"+strings.Join(texts, "\n\n"))
	}
	if len(description) > 0 {
		parts = append(parts, "## Description")
		parts = append(parts, description...)
	}

	if len(p.Drawings) > 0 {
		lines := make([]string, 0, len(p.Drawings))
		for _, d := range p.Drawings {
			lines = append(lines, "- Figure "+d.Number+": "+d.FileName)
		}
		parts = append(parts, "## Drawings\n"+strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n")
}

// formatParagraph prefixes numbered paragraphs with the bracketed label used
// in Japanese publications, e.g. 【0001】.
func formatParagraph(para Paragraph) string {
	if para.Number == "" {
		return para.Text
	}
	return "【" + para.Number + "】" + para.Text
}
