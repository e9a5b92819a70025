package patview

import (
	"context"
	"time"
)

// Record is an extracted patent kept in the archive.
type Record struct {
	ID          string    `json:"id"`
	SourcePath  string    `json:"sourcePath"`
	ContentHash string    `json:"contentHash"`
	ImportedAt  time.Time `json:"importedAt"`
	Patent      *Patent   `json:"patent"`

	// Source is the XML the patent was extracted from. It is hashed for
	// duplicate detection when set and is not stored.
	Source string `json:"-"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Patent == nil {
		return Errorf(EINVALID, "record patent required")
	}
	return nil
}

// RecordService represents a service for managing archived patents.
type RecordService interface {
	// CreateRecord stores a new record. Duplicates are detected by the hash
	// of rec.Source, or of the extracted patent when Source is empty.
	// Returns ECONFLICT if a record with identical content already exists.
	CreateRecord(ctx context.Context, rec *Record) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecords retrieves records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// DeleteRecord permanently removes a record.
	// Returns ENOTFOUND if record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID                *string `json:"id"`
	PublicationNumber *string `json:"publicationNumber"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
