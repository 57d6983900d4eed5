package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/httpx"
)

// DefaultSRAPIBase is the public SmartRecruiters posting API.
const DefaultSRAPIBase = "https://api.smartrecruiters.com/v1"

// smartRecruitersAdapter talks to the vendor's JSON API instead of
// scraping: the company slug comes from the careers URL path, the listing
// endpoint enumerates postings, and a per-posting detail call fills in the
// job-ad sections.
type smartRecruitersAdapter struct {
	client  *httpx.Client
	filter  *TitleFilter
	apiBase string
	log     zerolog.Logger
}

func newSmartRecruiters(deps Deps) *smartRecruitersAdapter {
	base := deps.SRAPIBase
	if base == "" {
		base = DefaultSRAPIBase
	}
	return &smartRecruitersAdapter{client: deps.Client, filter: deps.Filter, apiBase: base, log: deps.Log}
}

func (a *smartRecruitersAdapter) Name() string { return "SmartRecruiters" }

type srListing struct {
	Content []srPosting `json:"content"`
}

type srPosting struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ReleasedDate string `json:"releasedDate"`
	Location     struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
}

type srSection struct {
	Text string `json:"text"`
}

type srDetail struct {
	JobAd struct {
		Sections struct {
			CompanyDescription    srSection `json:"companyDescription"`
			JobDescription        srSection `json:"jobDescription"`
			Qualifications        srSection `json:"qualifications"`
			AdditionalInformation srSection `json:"additionalInformation"`
		} `json:"sections"`
	} `json:"jobAd"`
}

func (a *smartRecruitersAdapter) Crawl(ctx context.Context, company string, careersURL *url.URL) []domain.RawPosting {
	slug := companySlug(careersURL)
	if slug == "" {
		a.log.Warn().Str("adapter", a.Name()).Str("company", company).Str("url", careersURL.String()).Msg("no company slug in careers url")
		return nil
	}

	var listing srListing
	listURL := fmt.Sprintf("%s/companies/%s/postings", a.apiBase, slug)
	if err := a.client.FetchJSON(ctx, listURL, &listing); err != nil {
		a.log.Warn().Str("adapter", a.Name()).Str("company", company).Str("url", listURL).Err(err).Msg("listing fetch failed")
		return nil
	}

	var out []domain.RawPosting
	for _, posting := range listing.Content {
		if posting.Name == "" || !a.filter.Match(posting.Name) {
			continue
		}

		p := domain.RawPosting{
			Title:    cleanText(posting.Name),
			Location: srLocation(posting),
			URL:      careersURL.String(),
			Source:   a.Name(),
		}
		if posting.ID != "" {
			if u, ok := resolveURL(careersURL, posting.ID); ok {
				p.URL = u.String()
			}
		}
		if posting.ReleasedDate != "" {
			if t, err := parseDate(posting.ReleasedDate); err == nil {
				p.PostedAt = &t
			}
		}

		if posting.ID != "" {
			var detail srDetail
			detailURL := fmt.Sprintf("%s/companies/%s/postings/%s", a.apiBase, slug, posting.ID)
			if err := a.client.FetchJSON(ctx, detailURL, &detail); err != nil {
				a.log.Debug().Str("adapter", a.Name()).Str("company", company).Str("url", detailURL).Err(err).Msg("detail fetch failed")
			} else {
				desc := joinSections(detail)
				p.DescriptionHTML = desc
				p.DescriptionText = desc
			}
		}

		out = append(out, p)
	}
	return out
}

func companySlug(careersURL *url.URL) string {
	segments := strings.Split(strings.Trim(careersURL.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}

func srLocation(p srPosting) string {
	var parts []string
	for _, s := range []string{p.Location.City, p.Location.Region, p.Location.Country} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func joinSections(d srDetail) string {
	sections := []srSection{
		d.JobAd.Sections.CompanyDescription,
		d.JobAd.Sections.JobDescription,
		d.JobAd.Sections.Qualifications,
		d.JobAd.Sections.AdditionalInformation,
	}
	var parts []string
	for _, s := range sections {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
