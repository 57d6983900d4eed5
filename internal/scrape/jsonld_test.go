package scrape

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFilter(t *testing.T) *TitleFilter {
	t.Helper()
	f, err := NewTitleFilter("product")
	require.NoError(t, err)
	return f
}

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func baseURL(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse("https://careers.example.com/jobs")
	require.NoError(t, err)
	return u
}

func TestExtractStructured_SingleJobPosting(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
	{
	  "@context": "https://schema.org",
	  "@type": "JobPosting",
	  "title": "Senior Product Manager",
	  "description": "<p>Own the roadmap.</p>",
	  "employmentType": "FULL_TIME",
	  "datePosted": "2026-05-01",
	  "jobLocation": {
	    "@type": "Place",
	    "address": {"addressLocality": "Austin", "addressRegion": "TX"}
	  },
	  "url": "/jobs/123"
	}
	</script></head><body></body></html>`

	postings := extractStructured(docFromHTML(t, html), baseURL(t), testFilter(t), "Generic")
	require.Len(t, postings, 1)

	p := postings[0]
	assert.Equal(t, "Senior Product Manager", p.Title)
	assert.Equal(t, "Austin, TX", p.Location)
	assert.Equal(t, "FULL_TIME", p.EmploymentType)
	assert.Equal(t, "<p>Own the roadmap.</p>", p.DescriptionHTML)
	assert.Equal(t, "https://careers.example.com/jobs/123", p.URL)
	assert.Equal(t, "Generic", p.Source)
	require.NotNil(t, p.PostedAt)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), *p.PostedAt)
}

func TestExtractStructured_GraphArray(t *testing.T) {
	html := `<script type="application/ld+json">
	{
	  "@context": "https://schema.org",
	  "@graph": [
	    {"@type": "Organization", "name": "Acme"},
	    {"@type": "JobPosting", "title": "Product Manager", "jobLocation": "Remote"},
	    {"@type": "JobPosting", "title": "Staff Engineer", "jobLocation": "NYC"}
	  ]
	}
	</script>`

	postings := extractStructured(docFromHTML(t, html), baseURL(t), testFilter(t), "Workday")
	require.Len(t, postings, 1)
	assert.Equal(t, "Product Manager", postings[0].Title)
	assert.Equal(t, "Remote", postings[0].Location)
}

func TestExtractStructured_TitleFilterDropsNonMatches(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type": "JobPosting", "title": "Staff Accountant"}
	</script>`

	postings := extractStructured(docFromHTML(t, html), baseURL(t), testFilter(t), "Generic")
	assert.Empty(t, postings)
}

func TestExtractStructured_LocationArray(t *testing.T) {
	html := `<script type="application/ld+json">
	{
	  "@type": "JobPosting",
	  "title": "Product Lead",
	  "jobLocation": [
	    {"address": {"addressLocality": "Boston"}},
	    "Remote"
	  ]
	}
	</script>`

	postings := extractStructured(docFromHTML(t, html), baseURL(t), testFilter(t), "Generic")
	require.Len(t, postings, 1)
	assert.Equal(t, "Boston, Remote", postings[0].Location)
}

func TestExtractStructured_MissingURLFallsBackToBase(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type": "JobPosting", "title": "Product Manager"}
	</script>`

	postings := extractStructured(docFromHTML(t, html), baseURL(t), testFilter(t), "Generic")
	require.Len(t, postings, 1)
	assert.Equal(t, "https://careers.example.com/jobs", postings[0].URL)
}

func TestExtractStructured_InvalidJSONIgnored(t *testing.T) {
	html := `<script type="application/ld+json">{not json}</script>
	<script type="application/ld+json">{"@type": "JobPosting", "title": "Product Manager"}</script>`

	postings := extractStructured(docFromHTML(t, html), baseURL(t), testFilter(t), "Generic")
	require.Len(t, postings, 1)
}

func TestParseDate_AcceptedLayouts(t *testing.T) {
	for _, s := range []string{"2026-05-01", "2026-05-01T10:30:00", "2026-05-01T10:30:00Z"} {
		_, err := parseDate(s)
		assert.NoError(t, err, s)
	}
	_, err := parseDate("May 1st")
	assert.Error(t, err)
}
