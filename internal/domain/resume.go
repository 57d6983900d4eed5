package domain

import "time"

// Resume holds the extracted plain text of an uploaded resume. Immutable
// once stored.
type Resume struct {
	ID        string
	FileName  string
	Text      string
	CreatedAt time.Time
}

// MatchResult is one scored posting for one resume. Ephemeral; computed
// per query and never cached.
type MatchResult struct {
	Posting         Posting
	Score           float64
	BaseScore       float64
	TitleBoost      float64
	KeywordBoost    float64
	LocationBoost   float64
	ExperienceBoost float64
	KeywordHits     []string
	KeywordMisses   []string
}
