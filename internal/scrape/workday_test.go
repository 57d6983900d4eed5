package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkdayAdapter_EmbeddedListingFallback(t *testing.T) {
	page := `<html><body>
<script>
window.__jobData = {"jobPostings": [
  {"title": "Principal PM, Platform", "secondaryText": "Remote - Germany", "externalPath": "/job/REQ-1001"},
  {"title": "Accountant", "secondaryText": "Munich", "externalPath": "/job/REQ-1002"}
]};
</script>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	deps := testDeps(t)
	filter, err := NewTitleFilter("pm|product")
	require.NoError(t, err)
	deps.Filter = filter

	adapter := newWorkday(deps)
	postings := adapter.Crawl(context.Background(), "Acme", serverURL(t, srv, "/careers"))

	require.Len(t, postings, 1)
	p := postings[0]
	assert.Equal(t, "Principal PM, Platform", p.Title)
	assert.Equal(t, "Remote - Germany", p.Location)
	assert.Equal(t, srv.URL+"/job/REQ-1001", p.URL)
	assert.Equal(t, "Workday", p.Source)
}

func TestWorkdayAdapter_SelectorsBeforeEmbedded(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/careers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`
<div data-automation="job">
  <a data-automation="jobTitle" href="/job/1">Product Manager</a>
  <span data-automation="jobLocation">Austin</span>
</div>
<script>{"jobPostings": [{"title": "Product Manager (embedded)", "externalPath": "/job/2"}]}</script>`))
	})
	mux.HandleFunc("/job/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<div data-automation="jobDescription">Own outcomes.</div>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	adapter := newWorkday(testDeps(t))
	postings := adapter.Crawl(context.Background(), "Acme", serverURL(t, srv, "/careers"))

	require.Len(t, postings, 1)
	assert.Equal(t, "Product Manager", postings[0].Title)
	assert.Equal(t, "Austin", postings[0].Location)
}

func TestWorkdayParseEmbedded_NoMarker(t *testing.T) {
	adapter := newWorkday(testDeps(t))
	assert.Empty(t, adapter.parseEmbedded("<html><body>nothing here</body></html>", serverURLRaw(t, "https://acme.example/careers")))
}

func TestWorkdayParseEmbedded_UnbalancedBrackets(t *testing.T) {
	adapter := newWorkday(testDeps(t))
	html := `{"jobPostings": [ {"title": "Product Manager"`
	assert.Empty(t, adapter.parseEmbedded(html, serverURLRaw(t, "https://acme.example/careers")))
}
