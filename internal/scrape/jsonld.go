package scrape

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobmatch-engine/internal/domain"
)

// extractStructured pulls schema.org JobPosting objects out of the page's
// JSON-LD blocks, including @graph-wrapped arrays. This is the shared
// first step for every adapter: structured data beats scraping when a
// vendor embeds it.
func extractStructured(doc *goquery.Document, base *url.URL, filter *TitleFilter, source string) []domain.RawPosting {
	var out []domain.RawPosting

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		var root map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &root); err != nil {
			return
		}

		if typeOf(root["@type"]) == "jobposting" {
			if p, ok := mapJobPosting(root, base, filter, source); ok {
				out = append(out, p)
			}
			return
		}

		if graphRaw, ok := root["@graph"]; ok {
			var graph []map[string]json.RawMessage
			if err := json.Unmarshal(graphRaw, &graph); err != nil {
				return
			}
			for _, node := range graph {
				if typeOf(node["@type"]) != "jobposting" {
					continue
				}
				if p, ok := mapJobPosting(node, base, filter, source); ok {
					out = append(out, p)
				}
			}
		}
	})

	return out
}

func typeOf(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.ToLower(s)
}

func mapJobPosting(node map[string]json.RawMessage, base *url.URL, filter *TitleFilter, source string) (domain.RawPosting, bool) {
	title := stringField(node, "title")
	if title == "" || !filter.Match(title) {
		return domain.RawPosting{}, false
	}

	p := domain.RawPosting{
		Title:           cleanText(title),
		Location:        jobLocation(node["jobLocation"]),
		EmploymentType:  stringField(node, "employmentType"),
		DescriptionHTML: stringField(node, "description"),
		DescriptionText: stringField(node, "description"),
		Source:          source,
	}

	if posted := stringField(node, "datePosted"); posted != "" {
		if t, err := parseDate(posted); err == nil {
			p.PostedAt = &t
		}
	}

	p.URL = base.String()
	if href := stringField(node, "url"); href != "" {
		if u, ok := resolveURL(base, href); ok {
			p.URL = u.String()
		}
	}

	return p, true
}

func stringField(node map[string]json.RawMessage, key string) string {
	raw, ok := node[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// jobLocation tolerates the three shapes sites use: a plain string, a
// Place object (address nested), or an array of either.
func jobLocation(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if addr, ok := obj["address"]; ok {
			return flattenJSON(addr)
		}
		return flattenJSON(raw)
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		parts := make([]string, 0, len(arr))
		for _, el := range arr {
			if loc := jobLocation(el); loc != "" {
				parts = append(parts, loc)
			}
		}
		return strings.Join(parts, ", ")
	}

	return ""
}

// flattenJSON renders an address-ish JSON value as readable text: string
// leaf values joined in key order, @-keys skipped.
func flattenJSON(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	keys := []string{"streetAddress", "addressLocality", "addressRegion", "postalCode", "addressCountry", "name"}
	var parts []string
	for _, k := range keys {
		if v, ok := obj[k].(string); ok && v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Parse(time.RFC3339, s)
}
