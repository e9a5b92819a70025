package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/patview"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ patview.RecordService = (*RecordService)(nil)

const recordColumns = "id, source_path, content_hash, body, imported_at"

// timeFormat is fixed width so that imported_at sorts as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// RecordService implements patview.RecordService using SQLite.
// Patents are stored as JSON; publication number and title are copied into
// columns for filtering.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashContent computes the xxHash of content and returns it as hex.
func hashContent(content []byte) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64(content))
	return hex.EncodeToString(b)
}

// CreateRecord stores a new record.
func (s *RecordService) CreateRecord(ctx context.Context, rec *patview.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(rec.Patent)
	if err != nil {
		return fmt.Errorf("encoding patent: %w", err)
	}
	hash := hashContent(body)
	if rec.Source != "" {
		hash = hashContent([]byte(rec.Source))
	}

	id := uuid.New().String()
	importedAt := time.Now().UTC()

	// ON CONFLICT makes the duplicate check and the insert one statement.
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, publication_number, invention_title, source_path, content_hash, body, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO NOTHING
	`, id, rec.Patent.PublicationNumber, rec.Patent.InventionTitle, rec.SourcePath, hash,
		string(body), importedAt.Format(timeFormat))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var existing string
		if err := s.db.QueryRowContext(ctx, "SELECT id FROM records WHERE content_hash = ?", hash).Scan(&existing); err != nil {
			return patview.Errorf(patview.ECONFLICT, "patent already archived")
		}
		return patview.Errorf(patview.ECONFLICT, "patent already archived as %s", existing)
	}

	rec.ID = id
	rec.ContentHash = hash
	rec.ImportedAt = importedAt
	return nil
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*patview.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, patview.Errorf(patview.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves records matching the filter, newest first.
func (s *RecordService) FindRecords(ctx context.Context, filter patview.RecordFilter) ([]*patview.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM records WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.PublicationNumber != nil {
		query.WriteString(" AND publication_number = ?")
		args = append(args, *filter.PublicationNumber)
	}

	query.WriteString(" ORDER BY imported_at DESC, rowid DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite requires LIMIT before OFFSET.
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []*patview.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteRecord permanently removes a record.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return patview.Errorf(patview.ENOTFOUND, "record not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*patview.Record, error) {
	var rec patview.Record
	var body, importedAt string

	if err := row.Scan(&rec.ID, &rec.SourcePath, &rec.ContentHash, &body, &importedAt); err != nil {
		return nil, err
	}

	rec.Patent = patview.NewPatent()
	if err := json.Unmarshal([]byte(body), rec.Patent); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", rec.ID, err)
	}

	var err error
	rec.ImportedAt, err = time.Parse(timeFormat, importedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse imported_at: %w", err)
	}

	return &rec, nil
}
