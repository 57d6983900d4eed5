package match

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"golang.org/x/sync/errgroup"

	"jobmatch-engine/internal/domain"
)

const defaultTopMatches = 10

var (
	yearsRe = regexp.MustCompile(`(?i)(\d+)\+?\s*years`)
	titleRe = regexp.MustCompile(`(?i)(product\s*manager|senior\s*product\s*manager|group\s*pm|principal\s*pm|director\s*of\s*product|product\s*lead|technical\s*product\s*manager|platform\s*pm|growth\s*product\s*manager|ai\s*product\s*manager|ml\s*product\s*manager|data\s*product\s*manager)`)
)

// keywordWeights is the fixed domain vocabulary; boosts are heuristics,
// not a learned model.
var keywordWeights = map[string]float64{
	"product":         1.0,
	"roadmap":         1.0,
	"backlog":         0.8,
	"stakeholders":    0.8,
	"a/b testing":     1.2,
	"experimentation": 1.0,
	"analytics":       0.9,
	"sql":             1.0,
	"tableau":         0.8,
	"python":          0.9,
	"api":             0.7,
	"platform":        0.7,
	"saas":            1.1,
	"b2b":             0.9,
	"fintech":         1.0,
	"ecommerce":       0.9,
	"ai":              1.2,
	"ml":              1.2,
	"llm":             1.2,
	"nlp":             1.0,
	"computer vision": 0.8,
	"payments":        0.9,
	"growth":          1.0,
	"plg":             0.8,
	"okr":             0.6,
	"kpi":             0.6,
	"jira":            0.6,
	"agile":           0.7,
	"scrum":           0.7,
}

// PostingSource is the read-only snapshot the ranking engine scores over.
type PostingSource interface {
	List(ctx context.Context) ([]domain.Posting, error)
}

// ResumeSource resolves a stored resume by id.
type ResumeSource interface {
	Get(ctx context.Context, id string) (domain.Resume, error)
}

type Scorer struct {
	postings           PostingSource
	resumes            ResumeSource
	preferredLocations []string
}

func NewScorer(postings PostingSource, resumes ResumeSource, preferredLocations []string) *Scorer {
	return &Scorer{postings: postings, resumes: resumes, preferredLocations: preferredLocations}
}

// ScoreTop ranks every stored posting against the resume and returns the
// top results: descending score, ties broken by ascending title. The IDF
// table is rebuilt from the full corpus on every call; nothing is cached
// across requests.
func (s *Scorer) ScoreTop(ctx context.Context, resumeID string, top int) ([]domain.MatchResult, error) {
	if top <= 0 {
		top = defaultTopMatches
	}

	resume, err := s.resumes.Get(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	postings, err := s.postings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load postings: %w", err)
	}
	if len(postings) == 0 {
		return nil, nil
	}

	resumeTokens := Tokenize(resume.Text)
	documents := make([][]string, 0, len(postings)+1)
	jobTokens := make([][]string, len(postings))
	for i, posting := range postings {
		jobTokens[i] = Tokenize(posting.DescriptionText)
		documents = append(documents, jobTokens[i])
	}
	documents = append(documents, resumeTokens)

	idf := InverseDocFrequencies(documents)
	resumeVec := Vector(resumeTokens, idf)

	// Scoring is a pure function of the snapshot, so postings can be
	// scored in parallel.
	results := make([]domain.MatchResult, len(postings))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range postings {
		i := i
		g.Go(func() error {
			results[i] = s.scoreOne(postings[i], jobTokens[i], resumeVec, idf, resume.Text)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Posting.Title < results[j].Posting.Title
	})

	if len(results) > top {
		results = results[:top]
	}
	return results, nil
}

func (s *Scorer) scoreOne(posting domain.Posting, tokens []string, resumeVec, idf map[string]float64, resumeText string) domain.MatchResult {
	jobVec := Vector(tokens, idf)
	base := clamp(Cosine(resumeVec, jobVec)*100, 0, 100)

	titleBoost := titleBoost(posting.Title, resumeText)
	keywordBoost, hits, misses := keywordBoost(resumeText, posting.DescriptionText)
	locationBoost := s.locationBoost(posting.Location)
	experienceBoost := experienceBoost(resumeText, posting.DescriptionText)

	total := clamp(base+titleBoost+keywordBoost+locationBoost+experienceBoost, 0, 100)

	return domain.MatchResult{
		Posting:         posting,
		Score:           total,
		BaseScore:       base,
		TitleBoost:      titleBoost,
		KeywordBoost:    keywordBoost,
		LocationBoost:   locationBoost,
		ExperienceBoost: experienceBoost,
		KeywordHits:     hits,
		KeywordMisses:   misses,
	}
}

// titleBoost rewards titles in the target role family by fuzzy token-set
// similarity against the resume, a tenth of the 0-100 ratio capped at 10.
func titleBoost(title, resumeText string) float64 {
	if !titleRe.MatchString(title) {
		return 0
	}
	ratio := fuzzy.TokenSetRatio(strings.ToLower(title), strings.ToLower(resumeText))
	return math.Min(10, float64(ratio)/10)
}

func keywordBoost(resumeText, jobText string) (float64, []string, []string) {
	normalizedJob := NormalizeText(jobText)
	normalizedResume := NormalizeText(resumeText)

	// Deterministic order for hit/miss lists.
	terms := make([]string, 0, len(keywordWeights))
	for term := range keywordWeights {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	var boost float64
	var hits, misses []string
	for _, term := range terms {
		needle := NormalizeText(term)
		if strings.Contains(normalizedJob, needle) || strings.Contains(normalizedResume, needle) {
			hits = append(hits, term)
			boost += keywordWeights[term]
		} else {
			misses = append(misses, term)
		}
	}
	return math.Min(10, boost), hits, misses
}

func (s *Scorer) locationBoost(location string) float64 {
	if strings.TrimSpace(location) == "" {
		return 0
	}
	lower := strings.ToLower(location)
	if strings.Contains(lower, "remote") || strings.Contains(lower, "hybrid") {
		return 5
	}
	for _, preferred := range s.preferredLocations {
		preferred = strings.ToLower(strings.TrimSpace(preferred))
		if preferred != "" && strings.Contains(lower, preferred) {
			return 4
		}
	}
	return 0
}

// experienceBoost compares the first "<N> years" mention on each side; a
// gap of two years or less is a match.
func experienceBoost(resumeText, jobText string) float64 {
	resumeYears, ok := firstYears(resumeText)
	if !ok {
		return 0
	}
	jobYears, ok := firstYears(jobText)
	if !ok {
		return 0
	}
	if math.Abs(float64(resumeYears-jobYears)) <= 2 {
		return 5
	}
	return 0
}

func firstYears(text string) (int, bool) {
	m := yearsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
