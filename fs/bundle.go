// Package fs locates patent publications and their drawing images on disk.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/patview"
)

// Bundle is a publication XML file together with the drawing images stored
// next to it.
type Bundle struct {
	XMLPath string

	// Images maps image file names to their paths.
	Images map[string]string
}

// OpenBundle resolves path into a Bundle. If path is a directory, the first
// file with an .xml extension (by name, ignoring case) is used. Images are
// collected from the directory that holds the XML file.
// Returns ENOTFOUND if path does not exist or holds no XML file.
func OpenBundle(path string) (*Bundle, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, patview.Errorf(patview.ENOTFOUND, "%s does not exist", path)
	} else if err != nil {
		return nil, err
	}

	dir, xmlPath := path, ""
	if !info.IsDir() {
		dir, xmlPath = filepath.Dir(path), path
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	b := &Bundle{XMLPath: xmlPath, Images: make(map[string]string)}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case b.XMLPath == "" && strings.EqualFold(filepath.Ext(name), ".xml"):
			b.XMLPath = filepath.Join(dir, name)
		case patview.IsImageFile(name):
			b.Images[name] = filepath.Join(dir, name)
		}
	}

	if b.XMLPath == "" {
		return nil, patview.Errorf(patview.ENOTFOUND, "no XML file in %s", dir)
	}
	return b, nil
}

// ReadXML returns the contents of the bundle's XML file.
func (b *Bundle) ReadXML() (string, error) {
	data, err := os.ReadFile(b.XMLPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
