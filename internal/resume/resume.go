// Package resume ingests uploaded resume files. Text extraction for rich
// formats lives behind the TextExtractor seam; this package only consumes
// the resulting plain text.
package resume

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmatch-engine/internal/domain"
)

var (
	// ErrEmptyUpload means the file had no content at all.
	ErrEmptyUpload = errors.New("resume file is empty")
	// ErrNoText means extraction produced nothing usable.
	ErrNoText = errors.New("unable to extract text from resume")
)

// TextExtractor turns raw file bytes into plain text. PDF/DOCX readers
// plug in here; the default handles UTF-8 text.
type TextExtractor func(name string, data []byte) (string, error)

// Store persists immutable resumes.
type Store interface {
	Save(ctx context.Context, resume domain.Resume) error
}

type Service struct {
	store   Store
	extract TextExtractor
}

func NewService(store Store, extract TextExtractor) *Service {
	if extract == nil {
		extract = PlainText
	}
	return &Service{store: store, extract: extract}
}

// PlainText is the default extractor: the bytes are the text.
func PlainText(_ string, data []byte) (string, error) {
	return string(data), nil
}

// IngestFile reads, extracts, normalizes, and stores a resume, returning
// its generated id.
func (s *Service) IngestFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return s.Ingest(ctx, filepath.Base(path), data)
}

func (s *Service) Ingest(ctx context.Context, fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}

	text, err := s.extract(fileName, data)
	if err != nil {
		return "", err
	}
	text = normalizeWhitespace(text)
	if text == "" {
		return "", ErrNoText
	}

	r := domain.Resume{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, r); err != nil {
		return "", err
	}
	return r.ID, nil
}

// normalizeWhitespace trims each line and drops empty ones.
func normalizeWhitespace(input string) string {
	var lines []string
	for _, line := range strings.FieldsFunc(input, func(r rune) bool { return r == '\r' || r == '\n' }) {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
