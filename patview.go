// Package patview extracts JP patent publications written in the WIPO ST96
// XML family into a normalized, render-ready document model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., etree/, sqlite/, http/).
package patview
