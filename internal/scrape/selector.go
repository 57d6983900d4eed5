package scrape

import (
	"bytes"
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/httpx"
)

// selectorSpec describes one vendor's DOM strategy: where the listing
// entries live, where the anchor and location sit relative to each entry,
// and which detail-page node carries the description (body fallback).
type selectorSpec struct {
	name           string
	items          string
	link           string // anchor within an item; empty when the item is the anchor
	listLocation   func(item *goquery.Selection) string
	detailLocation string // evaluated on the detail page when listLocation yields nothing
	description    string
}

var greenhouseSpec = selectorSpec{
	name:           "Greenhouse",
	items:          "a.opening",
	detailLocation: ".location",
	description:    ".opening, .description, #content",
}

var leverSpec = selectorSpec{
	name:  "Lever",
	items: "a.posting-title",
	listLocation: func(item *goquery.Selection) string {
		return cleanText(item.Parent().Find("span.posting-location").First().Text())
	},
	description: ".section-wrapper, .content, #content",
}

var successFactorsSpec = selectorSpec{
	name:  "SuccessFactors",
	items: "tr.data-row",
	link:  "a.jobTitle-link",
	listLocation: func(item *goquery.Selection) string {
		return cleanText(item.Find(`td[data-th="Location"]`).First().Text())
	},
	description: "div.job-description, #job-summary",
}

var taleoSpec = selectorSpec{
	name:  "Taleo",
	items: "a.taleosearchlink, a.titlelink",
	listLocation: func(item *goquery.Selection) string {
		return cleanText(item.Closest("tr").Find("td:nth-of-type(3)").First().Text())
	},
	description: "div.taleo-description, #requisitionDescriptionInterface",
}

var icimsSpec = selectorSpec{
	name:  "iCIMS",
	items: "div.iCIMS_Opportunity",
	link:  "a",
	listLocation: func(item *goquery.Selection) string {
		return cleanText(item.Find("div.iCIMS_JobLocation").First().Text())
	},
	description: "div.iCIMS_JobContent, #job-content",
}

type selectorAdapter struct {
	spec   selectorSpec
	client *httpx.Client
	filter *TitleFilter
	log    zerolog.Logger
}

func newSelectorAdapter(deps Deps, spec selectorSpec) *selectorAdapter {
	return &selectorAdapter{spec: spec, client: deps.Client, filter: deps.Filter, log: deps.Log}
}

func (a *selectorAdapter) Name() string { return a.spec.name }

func (a *selectorAdapter) Crawl(ctx context.Context, company string, careersURL *url.URL) []domain.RawPosting {
	body, err := a.client.Fetch(ctx, careersURL.String())
	if err != nil {
		a.log.Warn().Str("adapter", a.spec.name).Str("company", company).Str("url", careersURL.String()).Err(err).Msg("listing fetch failed")
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		a.log.Warn().Str("adapter", a.spec.name).Str("company", company).Err(err).Msg("listing parse failed")
		return nil
	}

	if postings := extractStructured(doc, careersURL, a.filter, a.spec.name); len(postings) > 0 {
		return postings
	}
	return a.crawlSelectors(ctx, company, careersURL, doc)
}

func (a *selectorAdapter) crawlSelectors(ctx context.Context, company string, careersURL *url.URL, doc *goquery.Document) []domain.RawPosting {
	var out []domain.RawPosting

	doc.Find(a.spec.items).Each(func(_ int, item *goquery.Selection) {
		link := item
		if a.spec.link != "" {
			link = item.Find(a.spec.link).First()
			if link.Length() == 0 {
				return
			}
		}

		title := cleanText(link.Text())
		if title == "" || !a.filter.Match(title) {
			return
		}
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		jobURL, ok := resolveURL(careersURL, href)
		if !ok {
			return
		}

		location := ""
		if a.spec.listLocation != nil {
			location = a.spec.listLocation(item)
		}

		p, ok := a.fetchDetail(ctx, jobURL, title, location)
		if !ok {
			a.log.Debug().Str("adapter", a.spec.name).Str("company", company).Str("url", jobURL.String()).Msg("candidate skipped")
			return
		}
		out = append(out, p)
	})

	return out
}

func (a *selectorAdapter) fetchDetail(ctx context.Context, jobURL *url.URL, title, location string) (domain.RawPosting, bool) {
	detail, err := a.client.FetchDocument(ctx, jobURL.String())
	if err != nil {
		return domain.RawPosting{}, false
	}

	if location == "" && a.spec.detailLocation != "" {
		location = cleanText(detail.Find(a.spec.detailLocation).First().Text())
	}

	node := detail.Find(a.spec.description).First()
	if node.Length() == 0 {
		node = detail.Find("body").First()
	}
	descHTML, _ := node.Html()

	return domain.RawPosting{
		Title:           title,
		Location:        location,
		DescriptionHTML: descHTML,
		DescriptionText: cleanText(node.Text()),
		URL:             jobURL.String(),
		Source:          a.spec.name,
	}, true
}
