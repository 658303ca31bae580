package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/fast10k/fast10k-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driven"
)

// Store is the SQLite-backed catalog: filing metadata plus the EDINET
// issuer directory. Readers proceed in parallel under WAL; writers
// serialize through transactions.
type Store struct {
	db   *sql.DB
	path string
}

// Interface guards.
var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.IssuerStore   = (*Store)(nil)
)

// NewStore opens (or creates) the catalog at dbPath and applies
// pending migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// storeErr wraps a persistence failure so callers can classify it with
// errors.Is(err, domain.ErrStore).
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrStore, err))
}

// ==================== Documents ====================

// UpsertDocument inserts the document or merges it into the existing
// (source, id) row. Merge rules: metadata is unioned key-wise with the
// incoming record winning; content_path and content_preview are never
// overwritten with an empty value.
func (s *Store) UpsertDocument(ctx context.Context, doc *domain.Document) error {
	if doc.ID == "" || doc.Source == "" {
		return fmt.Errorf("%w: document requires source and id", domain.ErrInvalidInput)
	}
	if doc.FilingDate.After(time.Now().AddDate(0, 0, 1)) {
		return fmt.Errorf("%w: filing date %s is in the future", domain.ErrInvalidInput, doc.DateString())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("beginning transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	merged := *doc
	var existingMeta, existingPath, existingPreview sql.NullString
	err = tx.QueryRowContext(ctx, `
		SELECT metadata, content_path, content_preview
		FROM documents WHERE source = ? AND id = ?
	`, doc.Source.String(), doc.ID).Scan(&existingMeta, &existingPath, &existingPreview)
	switch {
	case err == sql.ErrNoRows:
		// Plain insert.
	case err != nil:
		return storeErr("reading existing document", err)
	default:
		merged.Metadata = mergeMetadata(existingMeta.String, doc.Metadata)
		if merged.ContentPath == "" && existingPath.Valid {
			merged.ContentPath = existingPath.String
		}
		if merged.ContentPreview == "" && existingPreview.Valid {
			merged.ContentPreview = existingPreview.String
		}
	}

	metadataJSON, err := json.Marshal(metadataForStorage(&merged))
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents
			(id, ticker, company_name, filing_type, source, filing_date,
			 content_path, metadata, content_preview, format)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source, id) DO UPDATE SET
			ticker = excluded.ticker,
			company_name = excluded.company_name,
			filing_type = excluded.filing_type,
			filing_date = excluded.filing_date,
			content_path = excluded.content_path,
			metadata = excluded.metadata,
			content_preview = excluded.content_preview,
			format = excluded.format
	`, merged.ID, merged.Ticker, merged.CompanyName, merged.FilingType.String(),
		merged.Source.String(), merged.DateString(),
		nullString(merged.ContentPath), string(metadataJSON),
		nullString(merged.ContentPreview), merged.Format.String())
	if err != nil {
		return storeErr("saving document", err)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("committing transaction", err)
	}
	return nil
}

// mergeMetadata unions the stored metadata with the incoming record.
// Remote (incoming) keys win; nothing is ever deleted.
func mergeMetadata(existingJSON string, incoming map[string]string) map[string]string {
	merged := make(map[string]string)
	if existingJSON != "" {
		_ = json.Unmarshal([]byte(existingJSON), &merged) // tolerate legacy rows
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}

// metadataForStorage folds the English company name into the metadata
// blob; the wire schema has no dedicated column for it.
func metadataForStorage(doc *domain.Document) map[string]string {
	if doc.CompanyNameEN == "" {
		return doc.Metadata
	}
	m := make(map[string]string, len(doc.Metadata)+1)
	for k, v := range doc.Metadata {
		m[k] = v
	}
	m["company_name_en"] = doc.CompanyNameEN
	return m
}

// GetDocument fetches one row by primary key.
func (s *Store) GetDocument(ctx context.Context, source domain.Source, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, ticker, company_name, filing_type, source, filing_date,
		       content_path, metadata, content_preview, format
		FROM documents WHERE source = ? AND id = ?
	`, source.String(), id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("scanning document", err)
	}
	return doc, nil
}

// FindDocuments returns rows matching the query, newest first.
func (s *Store) FindDocuments(ctx context.Context, q domain.Query, limit int) ([]domain.Document, error) {
	var conditions []string
	var params []any

	if q.Ticker != "" {
		conditions = append(conditions, "ticker = ?")
		params = append(params, q.Ticker)
	}
	if q.CompanyName != "" {
		conditions = append(conditions, "company_name LIKE ?")
		params = append(params, "%"+q.CompanyName+"%")
	}
	if !q.FilingType.IsZero() {
		conditions = append(conditions, "filing_type = ?")
		params = append(params, q.FilingType.String())
	}
	if q.Source != "" {
		conditions = append(conditions, "source = ?")
		params = append(params, q.Source.String())
	}
	if !q.DateFrom.IsZero() {
		conditions = append(conditions, "filing_date >= ?")
		params = append(params, q.DateFrom.Format(domain.DateLayout))
	}
	if !q.DateTo.IsZero() {
		conditions = append(conditions, "filing_date <= ?")
		params = append(params, q.DateTo.Format(domain.DateLayout))
	}
	if q.TextQuery != "" {
		conditions = append(conditions, "(company_name LIKE ? OR content_preview LIKE ?)")
		params = append(params, "%"+q.TextQuery+"%", "%"+q.TextQuery+"%")
	}

	query := `
		SELECT id, ticker, company_name, filing_type, source, filing_date,
		       content_path, metadata, content_preview, format
		FROM documents`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY filing_date DESC LIMIT ?"
	params = append(params, limit)

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, storeErr("querying documents", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, storeErr("scanning document", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterating documents", err)
	}
	return docs, nil
}

// Stats returns row count and filing_date bounds for a source.
func (s *Store) Stats(ctx context.Context, source domain.Source) (*domain.CatalogStats, error) {
	var count int64
	var minDate, maxDate sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), MIN(filing_date), MAX(filing_date)
		FROM documents WHERE source = ?
	`, source.String()).Scan(&count, &minDate, &maxDate)
	if err != nil {
		return nil, storeErr("reading catalog stats", err)
	}

	stats := &domain.CatalogStats{Documents: count}
	if minDate.Valid {
		if d, err := time.Parse(domain.DateLayout, minDate.String); err == nil {
			stats.MinDate = d
		}
	}
	if maxDate.Valid {
		if d, err := time.Parse(domain.DateLayout, maxDate.String); err == nil {
			stats.MaxDate = d
		}
	}
	return stats, nil
}

// Clear purges the documents table for a source.
func (s *Store) Clear(ctx context.Context, source domain.Source) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE source = ?", source.String()); err != nil {
		return storeErr("clearing documents", err)
	}
	return nil
}

// scanDocument reads one documents row through the given scan func,
// which lets it serve both *sql.Row and *sql.Rows.
func scanDocument(scan func(...any) error) (*domain.Document, error) {
	var doc domain.Document
	var filingType, source, filingDate, metadataJSON string
	var contentPath, contentPreview sql.NullString
	var format sql.NullString

	if err := scan(&doc.ID, &doc.Ticker, &doc.CompanyName, &filingType, &source,
		&filingDate, &contentPath, &metadataJSON, &contentPreview, &format); err != nil {
		return nil, err
	}

	doc.FilingType = domain.OtherFilingType(filingType)
	doc.Source = domain.Source(source)
	if d, err := time.Parse(domain.DateLayout, filingDate); err == nil {
		doc.FilingDate = d
	}
	doc.ContentPath = contentPath.String
	doc.ContentPreview = contentPreview.String
	if format.Valid {
		doc.Format = domain.Format(format.String)
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}
	doc.CompanyNameEN = doc.Metadata["company_name_en"]
	return &doc, nil
}

// nullString converts an empty string to a NULL value.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
