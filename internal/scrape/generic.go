package scrape

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/httpx"
)

// resultCap bounds what one company can contribute in a single run.
const resultCap = 50

var jobLinkHint = regexp.MustCompile(`(?i)(job|careers|opening|position)`)

// genericAdapter is the fallback for unrecognized sites: a bounded
// breadth-first crawl from the careers page. Only same-host links that
// look job-related are followed, and an anchor's text must pass the title
// filter before its target is fetched as a candidate posting.
type genericAdapter struct {
	client   *httpx.Client
	filter   *TitleFilter
	maxPages int
	log      zerolog.Logger
}

func newGeneric(deps Deps) *genericAdapter {
	return &genericAdapter{client: deps.Client, filter: deps.Filter, maxPages: deps.MaxPages, log: deps.Log}
}

func (a *genericAdapter) Name() string { return "Generic" }

func (a *genericAdapter) Crawl(ctx context.Context, company string, careersURL *url.URL) []domain.RawPosting {
	queue := []*url.URL{careersURL}
	visited := make(map[string]bool)
	var out []domain.RawPosting
	first := true

	for len(queue) > 0 && len(visited) < a.maxPages {
		page := queue[0]
		queue = queue[1:]
		if visited[page.String()] {
			continue
		}
		visited[page.String()] = true

		doc, err := a.client.FetchDocument(ctx, page.String())
		if err != nil {
			a.log.Debug().Str("adapter", "Generic").Str("company", company).Str("url", page.String()).Err(err).Msg("page skipped")
			first = false
			continue
		}

		if first {
			first = false
			if postings := extractStructured(doc, careersURL, a.filter, a.Name()); len(postings) > 0 {
				return postings
			}
		}

		for _, link := range a.jobLinks(doc, page) {
			if len(out) >= resultCap {
				break
			}
			if p, ok := a.fetchCandidate(ctx, link); ok && a.filter.Match(p.Title) {
				out = append(out, p)
			}
		}

		doc.Find("a").Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok || strings.TrimSpace(href) == "" {
				return
			}
			child, ok := resolveURL(page, href)
			if !ok {
				return
			}
			if !strings.EqualFold(child.Host, careersURL.Host) {
				return
			}
			if visited[child.String()] || len(queue)+len(visited) >= a.maxPages {
				return
			}
			if jobLinkHint.MatchString(href) {
				queue = append(queue, child)
			}
		})
	}

	return out
}

// jobLinks returns anchors whose visible text already passes the title
// filter; only those are worth a candidate fetch.
func (a *genericAdapter) jobLinks(doc *goquery.Document, base *url.URL) []*url.URL {
	var links []*url.URL
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		text := cleanText(s.Text())
		href, ok := s.Attr("href")
		if !ok || text == "" || strings.TrimSpace(href) == "" {
			return
		}
		if !a.filter.Match(text) {
			return
		}
		if u, ok := resolveURL(base, href); ok {
			links = append(links, u)
		}
	})
	return links
}

func (a *genericAdapter) fetchCandidate(ctx context.Context, jobURL *url.URL) (domain.RawPosting, bool) {
	doc, err := a.client.FetchDocument(ctx, jobURL.String())
	if err != nil {
		return domain.RawPosting{}, false
	}

	title := cleanText(doc.Find("h1, h2").First().Text())
	if title == "" {
		title = cleanText(doc.Find("title").First().Text())
	}
	if title == "" {
		title = jobURL.String()
	}

	location := cleanText(doc.Find("[class*=location], [data-location], .job-location").First().Text())

	node := doc.Find("article, .job-description, #job-description").First()
	if node.Length() == 0 {
		node = doc.Find("body").First()
	}
	descHTML, _ := node.Html()

	return domain.RawPosting{
		Title:           title,
		Location:        location,
		EmploymentType:  cleanText(doc.Find("[class*=type], .employment-type").First().Text()),
		DescriptionHTML: descHTML,
		DescriptionText: cleanText(node.Text()),
		URL:             jobURL.String(),
		Source:          a.Name(),
	}, true
}
