package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobmatch-engine/internal/domain"
)

// Workday is the selector strategy plus one extra trick: many tenants ship
// the listing as a JSON array embedded in a script blob. When both
// structured data and selectors come up empty we locate that array by its
// marker token and bracket-match it out.
type workdayAdapter struct {
	*selectorAdapter
}

var workdaySpec = selectorSpec{
	name:  "Workday",
	items: `div[data-automation="job"]`,
	link:  `a[data-automation="jobTitle"]`,
	listLocation: func(item *goquery.Selection) string {
		return cleanText(item.Find(`span[data-automation="jobLocation"]`).First().Text())
	},
	description: `div[data-automation="jobDescription"]`,
}

func newWorkday(deps Deps) *workdayAdapter {
	return &workdayAdapter{selectorAdapter: newSelectorAdapter(deps, workdaySpec)}
}

func (a *workdayAdapter) Crawl(ctx context.Context, company string, careersURL *url.URL) []domain.RawPosting {
	body, err := a.client.Fetch(ctx, careersURL.String())
	if err != nil {
		a.log.Warn().Str("adapter", a.spec.name).Str("company", company).Str("url", careersURL.String()).Err(err).Msg("listing fetch failed")
		return nil
	}
	html := string(body)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		a.log.Warn().Str("adapter", a.spec.name).Str("company", company).Err(err).Msg("listing parse failed")
		return a.parseEmbedded(html, careersURL)
	}

	if postings := extractStructured(doc, careersURL, a.filter, a.spec.name); len(postings) > 0 {
		return postings
	}
	if postings := a.crawlSelectors(ctx, company, careersURL, doc); len(postings) > 0 {
		return postings
	}
	return a.parseEmbedded(html, careersURL)
}

const embeddedMarker = "jobPostings"

type embeddedPosting struct {
	Title         string `json:"title"`
	SecondaryText string `json:"secondaryText"`
	ExternalPath  string `json:"externalPath"`
}

func (a *workdayAdapter) parseEmbedded(html string, base *url.URL) []domain.RawPosting {
	idx := strings.Index(strings.ToLower(html), strings.ToLower(embeddedMarker))
	if idx < 0 {
		return nil
	}
	start := strings.IndexByte(html[idx:], '[')
	if start < 0 {
		return nil
	}
	start += idx

	depth := 0
	end := -1
	for i := start; i < len(html); i++ {
		switch html[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil
	}

	var items []embeddedPosting
	if err := json.Unmarshal([]byte(html[start:end+1]), &items); err != nil {
		a.log.Debug().Str("adapter", a.spec.name).Err(err).Msg("embedded listing parse failed")
		return nil
	}

	var out []domain.RawPosting
	for _, item := range items {
		if item.Title == "" || !a.filter.Match(item.Title) {
			continue
		}
		jobURL := base.String()
		if item.ExternalPath != "" {
			if u, ok := resolveURL(base, item.ExternalPath); ok {
				jobURL = u.String()
			}
		}
		out = append(out, domain.RawPosting{
			Title:    cleanText(item.Title),
			Location: cleanText(item.SecondaryText),
			URL:      jobURL,
			Source:   a.spec.name,
		})
	}
	return out
}
