package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobmatch-engine/internal/domain"
)

var ErrResumeNotFound = errors.New("resume not found")

type Resumes struct {
	db *sql.DB
}

func NewResumes(db *sql.DB) *Resumes {
	return &Resumes{db: db}
}

func (r *Resumes) Save(ctx context.Context, resume domain.Resume) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO resumes(id, file_name, text, created_at) VALUES(?,?,?,?);`,
		resume.ID,
		resume.FileName,
		resume.Text,
		resume.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (r *Resumes) Get(ctx context.Context, id string) (domain.Resume, error) {
	var resume domain.Resume
	var createdAt string
	err := r.db.QueryRowContext(ctx, `
SELECT id, file_name, text, created_at FROM resumes WHERE id = ?;`, id).
		Scan(&resume.ID, &resume.FileName, &resume.Text, &createdAt)
	if err == sql.ErrNoRows {
		return domain.Resume{}, ErrResumeNotFound
	}
	if err != nil {
		return domain.Resume{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		resume.CreatedAt = t
	}
	return resume, nil
}
