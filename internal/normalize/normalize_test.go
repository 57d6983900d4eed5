package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch-engine/internal/domain"
)

func TestStableHash_Deterministic(t *testing.T) {
	a := StableHash("Acme", "Product Manager", "https://acme.example/jobs/1")
	b := StableHash("Acme", "Product Manager", "https://acme.example/jobs/1")
	assert.Equal(t, a, b)
	assert.Len(t, a, 40) // hex-encoded sha1
}

func TestStableHash_CaseAndWhitespaceInsensitive(t *testing.T) {
	a := StableHash("Acme", "Product Manager", "https://acme.example/jobs/1")
	b := StableHash("  ACME ", " product manager ", " HTTPS://ACME.EXAMPLE/JOBS/1 ")
	assert.Equal(t, a, b)
}

func TestStableHash_DistinctInputsDiffer(t *testing.T) {
	base := StableHash("Acme", "Product Manager", "https://acme.example/jobs/1")
	assert.NotEqual(t, base, StableHash("Globex", "Product Manager", "https://acme.example/jobs/1"))
	assert.NotEqual(t, base, StableHash("Acme", "Product Lead", "https://acme.example/jobs/1"))
	assert.NotEqual(t, base, StableHash("Acme", "Product Manager", "https://acme.example/jobs/2"))
}

func TestNormalize_FillsCanonicalFields(t *testing.T) {
	posted := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	raw := domain.RawPosting{
		Title:           "  Product Manager ",
		Location:        " Remote ",
		DescriptionHTML: "<p>Build the roadmap.</p>",
		DescriptionText: "Build the roadmap.",
		PostedAt:        &posted,
		URL:             "https://acme.example/jobs/1",
		Source:          "Greenhouse",
	}

	p := Normalize("Acme", raw)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, StableHash("Acme", raw.Title, raw.URL), p.StableIDHash)
	assert.Equal(t, "Product Manager", p.Title)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "Remote", p.Location)
	assert.Equal(t, "Build the roadmap.", p.DescriptionText)
	require.NotNil(t, p.PostedAt)
	assert.Equal(t, posted, *p.PostedAt)
	assert.False(t, p.FetchedAt.IsZero())
}

func TestNormalize_DerivesTextFromHTML(t *testing.T) {
	raw := domain.RawPosting{
		Title:           "Product Manager",
		DescriptionHTML: "<div><p>Ship</p><p>things.</p></div>",
		URL:             "https://acme.example/jobs/1",
	}

	p := Normalize("Acme", raw)
	assert.Contains(t, p.DescriptionText, "Ship")
	assert.Contains(t, p.DescriptionText, "things.")
}

func TestNormalize_FreshIDPerCall(t *testing.T) {
	raw := domain.RawPosting{Title: "Product Manager", URL: "https://acme.example/jobs/1"}

	a := Normalize("Acme", raw)
	b := Normalize("Acme", raw)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.StableIDHash, b.StableIDHash)
}
