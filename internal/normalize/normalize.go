// Package normalize maps adapter output onto the canonical posting schema
// and computes the content-derived identity used for deduplication.
package normalize

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"jobmatch-engine/internal/domain"
)

// StableHash is the sole identity key: identical (company, title, url)
// triples hash identically no matter what the descriptions say.
func StableHash(company, title, url string) string {
	normalized := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(company)),
		strings.ToLower(strings.TrimSpace(title)),
		strings.ToLower(strings.TrimSpace(url)),
	}, "|")
	sum := sha1.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Normalize produces the canonical posting: fresh id, current fetch time,
// text derived from HTML when the adapter found none.
func Normalize(company string, raw domain.RawPosting) domain.Posting {
	text := raw.DescriptionText
	if strings.TrimSpace(text) == "" && strings.TrimSpace(raw.DescriptionHTML) != "" {
		text = htmlText(raw.DescriptionHTML)
	}

	return domain.Posting{
		ID:              uuid.NewString(),
		StableIDHash:    StableHash(company, raw.Title, raw.URL),
		Title:           strings.TrimSpace(raw.Title),
		Company:         company,
		Location:        strings.TrimSpace(raw.Location),
		EmploymentType:  strings.TrimSpace(raw.EmploymentType),
		DescriptionHTML: raw.DescriptionHTML,
		DescriptionText: strings.TrimSpace(text),
		PostedAt:        raw.PostedAt,
		URL:             raw.URL,
		Source:          raw.Source,
		FetchedAt:       time.Now().UTC(),
	}
}

func htmlText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("body").Text())
}
