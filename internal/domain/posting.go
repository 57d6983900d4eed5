package domain

import "time"

// CompanyWorkItem is one parsed worklist row. It never outlives a crawl run.
type CompanyWorkItem struct {
	Company    string
	CareersURL string
	Notes      string
}

// RawPosting is what an adapter hands back before normalization.
type RawPosting struct {
	Title           string
	Location        string
	EmploymentType  string
	DescriptionHTML string
	DescriptionText string
	PostedAt        *time.Time
	URL             string
	Source          string // adapter name
}

// Posting is the canonical, persisted form. A posting is written once per
// unique StableIDHash and never updated; later harvests with a matching
// hash are skipped, not merged.
type Posting struct {
	ID              string
	StableIDHash    string
	Title           string
	Company         string
	Location        string
	EmploymentType  string
	DescriptionHTML string
	DescriptionText string
	PostedAt        *time.Time
	URL             string
	Source          string
	FetchedAt       time.Time
}
