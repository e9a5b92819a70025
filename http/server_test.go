package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/patview"
	"github.com/fwojciec/patview/etree"
	pathttp "github.com/fwojciec/patview/http"
	"github.com/fwojciec/patview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<jppat:PatentPublication
	xmlns:jppat="http://www.jpo.go.jp/standards/XMLSchema/ST96/JPPatent"
	xmlns:pat="http://www.wipo.int/standards/XMLSchema/ST96/Patent"
	xmlns:com="http://www.wipo.int/standards/XMLSchema/ST96/Common">
	<jppat:UnexaminedPatentPublicationBibliographicData>
		<pat:PublicationNumber>2020-123456</pat:PublicationNumber>
		<pat:InventionTitle>Widget</pat:InventionTitle>
	</jppat:UnexaminedPatentPublicationBibliographicData>
	<pat:Claims>
		<pat:Claim><pat:ClaimNumber>1</pat:ClaimNumber><pat:ClaimText>A widget.<com:Br/>With a lid.</pat:ClaimText></pat:Claim>
	</pat:Claims>
</jppat:PatentPublication>`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	srv := pathttp.NewServer(etree.NewExtractor(), discardLogger())

	rec := do(t, srv, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns extracted patent", func(t *testing.T) {
		t.Parallel()

		srv := pathttp.NewServer(etree.NewExtractor(), discardLogger())

		rec := do(t, srv, http.MethodPost, "/api/extract", sampleXML)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var p patview.Patent
		decode(t, rec, &p)
		assert.Equal(t, "Widget", p.InventionTitle)
		assert.Equal(t, "2020-123456", p.PublicationNumber)
		require.Len(t, p.Claims, 1)
		assert.Equal(t, "A widget.<com:Br/>With a lid.", p.Claims[0].Text)
	})

	t.Run("encodes missing sections as empty arrays", func(t *testing.T) {
		t.Parallel()

		srv := pathttp.NewServer(etree.NewExtractor(), discardLogger())

		rec := do(t, srv, http.MethodPost, "/api/extract", `<root/>`)

		require.Equal(t, http.StatusOK, rec.Code)
		var got map[string]any
		decode(t, rec, &got)
		assert.Equal(t, []any{}, got["claims"])
		assert.Equal(t, []any{}, got["applicants"])
	})

	t.Run("returns 422 for malformed XML", func(t *testing.T) {
		t.Parallel()

		srv := pathttp.NewServer(etree.NewExtractor(), discardLogger())

		rec := do(t, srv, http.MethodPost, "/api/extract", `<root><unclosed>`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var got map[string]string
		decode(t, rec, &got)
		assert.Contains(t, got["error"], "not well-formed")
	})

	t.Run("returns 413 for oversized body", func(t *testing.T) {
		t.Parallel()

		srv := pathttp.NewServer(etree.NewExtractor(), discardLogger(), pathttp.WithMaxBodyBytes(16))

		rec := do(t, srv, http.MethodPost, "/api/extract", sampleXML)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("returns 500 for unexpected errors", func(t *testing.T) {
		t.Parallel()

		ext := &mock.Extractor{
			ExtractFn: func(xml string) (*patview.Patent, error) {
				return nil, errors.New("boom")
			},
		}
		srv := pathttp.NewServer(ext, discardLogger())

		rec := do(t, srv, http.MethodPost, "/api/extract", sampleXML)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("logs requests", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		srv := pathttp.NewServer(etree.NewExtractor(), slog.New(slog.NewTextHandler(&buf, nil)))

		do(t, srv, http.MethodPost, "/api/extract", sampleXML)

		assert.Contains(t, buf.String(), "method=POST")
		assert.Contains(t, buf.String(), "path=/api/extract")
		assert.Contains(t, buf.String(), "status=200")
	})
}

func TestServer_ArchiveDisabled(t *testing.T) {
	t.Parallel()

	srv := pathttp.NewServer(etree.NewExtractor(), discardLogger())

	rec := do(t, srv, http.MethodGet, "/api/patents", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CreateRecord(t *testing.T) {
	t.Parallel()

	t.Run("archives extracted patent", func(t *testing.T) {
		t.Parallel()

		var created *patview.Record
		records := &mock.RecordService{
			CreateRecordFn: func(_ context.Context, rec *patview.Record) error {
				rec.ID = "rec-1"
				created = rec
				return nil
			},
		}
		srv := pathttp.NewServer(etree.NewExtractor(), discardLogger(), pathttp.WithRecords(records))

		rec := do(t, srv, http.MethodPost, "/api/patents?source=upload.xml", sampleXML)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, created)
		assert.Equal(t, "upload.xml", created.SourcePath)
		assert.Equal(t, sampleXML, created.Source)
		assert.Equal(t, "Widget", created.Patent.InventionTitle)
		var got patview.Record
		decode(t, rec, &got)
		assert.Equal(t, "rec-1", got.ID)
	})

	t.Run("returns 409 for duplicates", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			CreateRecordFn: func(_ context.Context, _ *patview.Record) error {
				return patview.Errorf(patview.ECONFLICT, "patent already archived as rec-1")
			},
		}
		srv := pathttp.NewServer(etree.NewExtractor(), discardLogger(), pathttp.WithRecords(records))

		rec := do(t, srv, http.MethodPost, "/api/patents", sampleXML)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("does not archive malformed XML", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			CreateRecordFn: func(_ context.Context, _ *patview.Record) error {
				t.Fatal("CreateRecord should not be called")
				return nil
			},
		}
		srv := pathttp.NewServer(etree.NewExtractor(), discardLogger(), pathttp.WithRecords(records))

		rec := do(t, srv, http.MethodPost, "/api/patents", `<root>`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestServer_ListRecords(t *testing.T) {
	t.Parallel()

	t.Run("lists summaries with filter", func(t *testing.T) {
		t.Parallel()

		var gotFilter patview.RecordFilter
		p := patview.NewPatent()
		p.PublicationNumber = "2020-123456"
		p.InventionTitle = "Widget"
		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, filter patview.RecordFilter) ([]*patview.Record, error) {
				gotFilter = filter
				return []*patview.Record{{
					ID:         "rec-1",
					SourcePath: "a.xml",
					ImportedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
					Patent:     p,
				}}, nil
			},
		}
		srv := pathttp.NewServer(etree.NewExtractor(), discardLogger(), pathttp.WithRecords(records))

		rec := do(t, srv, http.MethodGet, "/api/patents?publication=2020-123456&limit=5&offset=2", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotFilter.PublicationNumber)
		assert.Equal(t, "2020-123456", *gotFilter.PublicationNumber)
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Equal(t, 2, gotFilter.Offset)
		assert.JSONEq(t, `{"records":[{
			"id":"rec-1",
			"publicationNumber":"2020-123456",
			"inventionTitle":"Widget",
			"sourcePath":"a.xml",
			"importedAt":"2025-01-15T10:00:00Z"
		}]}`, rec.Body.String())
	})

	t.Run("rejects invalid paging", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{}
		srv := pathttp.NewServer(etree.NewExtractor(), discardLogger(), pathttp.WithRecords(records))

		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/patents?limit=abc", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/patents?offset=-1", "").Code)
	})
}

func TestServer_GetRecord(t *testing.T) {
	t.Parallel()

	records := &mock.RecordService{
		FindRecordByIDFn: func(_ context.Context, id string) (*patview.Record, error) {
			if id != "rec-1" {
				return nil, patview.Errorf(patview.ENOTFOUND, "record not found")
			}
			return &patview.Record{ID: "rec-1", Patent: patview.NewPatent()}, nil
		},
	}
	srv := pathttp.NewServer(etree.NewExtractor(), discardLogger(), pathttp.WithRecords(records))

	t.Run("returns record", func(t *testing.T) {
		t.Parallel()

		rec := do(t, srv, http.MethodGet, "/api/patents/rec-1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got patview.Record
		decode(t, rec, &got)
		assert.Equal(t, "rec-1", got.ID)
	})

	t.Run("returns 404 for unknown record", func(t *testing.T) {
		t.Parallel()

		rec := do(t, srv, http.MethodGet, "/api/patents/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_DeleteRecord(t *testing.T) {
	t.Parallel()

	var deleted string
	records := &mock.RecordService{
		DeleteRecordFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	srv := pathttp.NewServer(etree.NewExtractor(), discardLogger(), pathttp.WithRecords(records))

	rec := do(t, srv, http.MethodDelete, "/api/patents/rec-1", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "rec-1", deleted)
}
