package sqlite

import (
	"context"
	"database/sql"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

// ==================== Issuer directory ====================

// LoadIssuers replaces the issuer directory in a single transaction.
// A reader never observes a partial load.
func (s *Store) LoadIssuers(ctx context.Context, issuers []domain.Issuer) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeErr("beginning transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM edinet_static"); err != nil {
		return 0, storeErr("truncating issuer directory", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO edinet_static
			(edinet_code, securities_code, submitter_name, submitter_name_en,
			 industry, fiscal_year_end, province)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(edinet_code) DO UPDATE SET
			securities_code = excluded.securities_code,
			submitter_name = excluded.submitter_name,
			submitter_name_en = excluded.submitter_name_en,
			industry = excluded.industry,
			fiscal_year_end = excluded.fiscal_year_end,
			province = excluded.province
	`)
	if err != nil {
		return 0, storeErr("preparing statement", err)
	}
	defer stmt.Close()

	count := 0
	for _, issuer := range issuers {
		if issuer.EdinetCode == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, issuer.EdinetCode,
			nullString(issuer.SecuritiesCode), issuer.Name, issuer.NameEN,
			issuer.Industry, issuer.FiscalYearEnd, issuer.Address); err != nil {
			return 0, storeErr("inserting issuer", err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr("committing transaction", err)
	}
	return count, nil
}

// LookupIssuer resolves a ticker to at most one issuer. The Japanese
// market quotes 4-digit codes while the directory stores 5-digit
// strings with a trailing "0"; both spellings resolve (first hit wins).
func (s *Store) LookupIssuer(ctx context.Context, ticker string) (*domain.Issuer, error) {
	for _, candidate := range domain.TickerCandidates(ticker) {
		issuer, err := s.issuerBySecuritiesCode(ctx, candidate)
		if err == nil {
			return issuer, nil
		}
		if err != sql.ErrNoRows {
			return nil, storeErr("looking up issuer", err)
		}
	}
	return nil, domain.ErrUnknownIssuer
}

// GetIssuer fetches one directory row by EDINET code.
func (s *Store) GetIssuer(ctx context.Context, edinetCode string) (*domain.Issuer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT edinet_code, securities_code, submitter_name, submitter_name_en,
		       industry, fiscal_year_end, province
		FROM edinet_static WHERE edinet_code = ?
	`, edinetCode)

	issuer, err := scanIssuer(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("reading issuer", err)
	}
	return issuer, nil
}

func (s *Store) issuerBySecuritiesCode(ctx context.Context, code string) (*domain.Issuer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT edinet_code, securities_code, submitter_name, submitter_name_en,
		       industry, fiscal_year_end, province
		FROM edinet_static WHERE securities_code = ?
	`, code)
	return scanIssuer(row.Scan)
}

// SearchIssuers matches a free-form query against codes and names.
func (s *Store) SearchIssuers(ctx context.Context, query string, limit int) ([]domain.Issuer, error) {
	like := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT edinet_code, securities_code, submitter_name, submitter_name_en,
		       industry, fiscal_year_end, province
		FROM edinet_static
		WHERE edinet_code = ? OR securities_code IN (?, ?)
		   OR submitter_name LIKE ? OR submitter_name_en LIKE ?
		ORDER BY edinet_code
		LIMIT ?
	`, query, query, query+"0", like, like, limit)
	if err != nil {
		return nil, storeErr("searching issuers", err)
	}
	defer rows.Close()

	var issuers []domain.Issuer //nolint:prealloc // size unknown from query
	for rows.Next() {
		issuer, err := scanIssuer(rows.Scan)
		if err != nil {
			return nil, storeErr("scanning issuer", err)
		}
		issuers = append(issuers, *issuer)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterating issuers", err)
	}
	return issuers, nil
}

// CountIssuers returns the directory size.
func (s *Store) CountIssuers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM edinet_static").Scan(&count); err != nil {
		return 0, storeErr("counting issuers", err)
	}
	return count, nil
}

func scanIssuer(scan func(...any) error) (*domain.Issuer, error) {
	var issuer domain.Issuer
	var securitiesCode sql.NullString
	if err := scan(&issuer.EdinetCode, &securitiesCode, &issuer.Name,
		&issuer.NameEN, &issuer.Industry, &issuer.FiscalYearEnd, &issuer.Address); err != nil {
		return nil, err
	}
	issuer.SecuritiesCode = securitiesCode.String
	return &issuer, nil
}
