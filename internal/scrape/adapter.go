// Package scrape holds the per-vendor harvesting strategies. Every adapter
// follows the same contract: partial results, never an error. A fetch or
// parse failure on one candidate drops that candidate and nothing else.
package scrape

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/httpx"
)

// Adapter harvests raw postings from one company's career site.
type Adapter interface {
	Name() string
	Crawl(ctx context.Context, company string, careersURL *url.URL) []domain.RawPosting
}

// TitleFilter keeps only postings in the configured role family.
type TitleFilter struct {
	re *regexp.Regexp
}

func NewTitleFilter(pattern string) (*TitleFilter, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	return &TitleFilter{re: re}, nil
}

func (f *TitleFilter) Match(title string) bool {
	return f.re.MatchString(title)
}

// Deps is everything an adapter needs, passed at construction. No ambient
// state.
type Deps struct {
	Client    *httpx.Client
	Filter    *TitleFilter
	MaxPages  int
	SRAPIBase string // SmartRecruiters API base, overridable in tests
	Log       zerolog.Logger
}

// Registry maps a detected ATS type to its adapter, with the generic
// crawler as the fallback for Unknown or unmapped types.
type Registry struct {
	byType  map[domain.AtsType]Adapter
	generic Adapter
}

func NewRegistry(deps Deps) *Registry {
	generic := newGeneric(deps)
	r := &Registry{
		byType: map[domain.AtsType]Adapter{
			domain.AtsWorkday:         newWorkday(deps),
			domain.AtsGreenhouse:      newSelectorAdapter(deps, greenhouseSpec),
			domain.AtsLever:           newSelectorAdapter(deps, leverSpec),
			domain.AtsSmartRecruiters: newSmartRecruiters(deps),
			domain.AtsSuccessFactors:  newSelectorAdapter(deps, successFactorsSpec),
			domain.AtsTaleo:           newSelectorAdapter(deps, taleoSpec),
			domain.AtsIcims:           newSelectorAdapter(deps, icimsSpec),
		},
		generic: generic,
	}
	return r
}

func (r *Registry) ForType(t domain.AtsType) Adapter {
	if a, ok := r.byType[t]; ok {
		return a
	}
	return r.generic
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

func resolveURL(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	return base.ResolveReference(ref), true
}
