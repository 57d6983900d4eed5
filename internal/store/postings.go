package store

import (
	"context"
	"database/sql"
	"time"

	"jobmatch-engine/internal/domain"
)

// Postings is the dedupe index and posting repository. Track stages rows
// in memory; Commit writes the whole batch in one transaction at the end
// of a crawl pass. First-seen wins permanently: a hash collision on
// insert is ignored, never merged.
type Postings struct {
	db     *sql.DB
	staged []domain.Posting
}

func NewPostings(db *sql.DB) *Postings {
	return &Postings{db: db}
}

func (p *Postings) Exists(ctx context.Context, stableIDHash string) (bool, error) {
	var one int
	err := p.db.QueryRowContext(ctx,
		`SELECT 1 FROM postings WHERE stable_id_hash = ? LIMIT 1;`, stableIDHash).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *Postings) Track(posting domain.Posting) {
	p.staged = append(p.staged, posting)
}

func (p *Postings) Commit(ctx context.Context) error {
	if len(p.staged) == 0 {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO postings(
  id, stable_id_hash, title, company, location, employment_type,
  description_html, description_text, posted_at, url, source, fetched_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, posting := range p.staged {
		var postedAt any
		if posting.PostedAt != nil {
			postedAt = posting.PostedAt.UTC().Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx,
			posting.ID,
			posting.StableIDHash,
			posting.Title,
			posting.Company,
			posting.Location,
			posting.EmploymentType,
			posting.DescriptionHTML,
			posting.DescriptionText,
			postedAt,
			posting.URL,
			posting.Source,
			posting.FetchedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	p.staged = nil
	return nil
}

// List returns a read-only snapshot of every stored posting.
func (p *Postings) List(ctx context.Context) ([]domain.Posting, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT id, stable_id_hash, title, company, location, employment_type,
       description_html, description_text, posted_at, url, source, fetched_at
FROM postings;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Posting
	for rows.Next() {
		var posting domain.Posting
		var postedAt sql.NullString
		var fetchedAt string
		if err := rows.Scan(
			&posting.ID,
			&posting.StableIDHash,
			&posting.Title,
			&posting.Company,
			&posting.Location,
			&posting.EmploymentType,
			&posting.DescriptionHTML,
			&posting.DescriptionText,
			&postedAt,
			&posting.URL,
			&posting.Source,
			&fetchedAt,
		); err != nil {
			return nil, err
		}
		if postedAt.Valid {
			if t, err := time.Parse(time.RFC3339, postedAt.String); err == nil {
				posting.PostedAt = &t
			}
		}
		if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
			posting.FetchedAt = t
		}
		out = append(out, posting)
	}
	return out, rows.Err()
}
