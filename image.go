package patview

import (
	"path/filepath"
	"strings"
)

// ImageExtensions lists the file extensions accepted as drawing images.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff"}

// IsImageFile reports whether name has one of ImageExtensions,
// ignoring case.
func IsImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Figure pairs a drawing with the location of its image.
// Path is empty when the image was not supplied.
type Figure struct {
	Drawing
	Path string `json:"path"`
}

// Missing reports whether no image was found for the figure.
func (f Figure) Missing() bool {
	return f.Path == ""
}

// ResolveDrawings looks up every drawing's file name in images, which maps
// file names to image locations. Lookups are exact on the file name.
func ResolveDrawings(drawings []Drawing, images map[string]string) []Figure {
	figures := make([]Figure, 0, len(drawings))
	for _, d := range drawings {
		figures = append(figures, Figure{Drawing: d, Path: images[d.FileName]})
	}
	return figures
}
