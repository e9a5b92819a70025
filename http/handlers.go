package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/patview"
	"github.com/go-chi/chi/v5"
)

// recordSummary is the list representation of an archived patent.
type recordSummary struct {
	ID                string    `json:"id"`
	PublicationNumber string    `json:"publicationNumber"`
	InventionTitle    string    `json:"inventionTitle"`
	SourcePath        string    `json:"sourcePath"`
	ImportedAt        time.Time `json:"importedAt"`
}

// readXML reads the request body, enforcing the upload limit.
func (s *Server) readXML(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return "", false
		}
		jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	return string(body), true
}

// handleExtract extracts the XML request body and returns the patent.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	xml, ok := s.readXML(w, r)
	if !ok {
		return
	}

	p, err := s.extractor.Extract(xml)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// handleCreateRecord extracts the XML request body and archives the result.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	xml, ok := s.readXML(w, r)
	if !ok {
		return
	}

	p, err := s.extractor.Extract(xml)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := &patview.Record{
		SourcePath: r.URL.Query().Get("source"),
		Patent:     p,
		Source:     xml,
	}
	if err := s.records.CreateRecord(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// handleListRecords lists archived patents, newest first.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	var filter patview.RecordFilter
	q := r.URL.Query()
	if v := q.Get("publication"); v != "" {
		filter.PublicationNumber = &v
	}

	var err error
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		jsonError(w, "invalid limit", http.StatusBadRequest)
		return
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		jsonError(w, "invalid offset", http.StatusBadRequest)
		return
	}

	recs, err := s.records.FindRecords(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	summaries := make([]recordSummary, 0, len(recs))
	for _, rec := range recs {
		summaries = append(summaries, recordSummary{
			ID:                rec.ID,
			PublicationNumber: rec.Patent.PublicationNumber,
			InventionTitle:    rec.Patent.InventionTitle,
			SourcePath:        rec.SourcePath,
			ImportedAt:        rec.ImportedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": summaries})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.records.FindRecordByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// intParam parses a non-negative integer query parameter. Empty means zero.
func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, patview.Errorf(patview.EINVALID, "invalid integer %q", v)
	}
	return n, nil
}
