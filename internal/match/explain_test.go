package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch-engine/internal/domain"
)

func TestExplain_FullSignals(t *testing.T) {
	result := domain.MatchResult{
		Posting: domain.Posting{
			Title:    "Senior Product Manager",
			Location: "Remote - US",
		},
		BaseScore:       42.5,
		TitleBoost:      8,
		LocationBoost:   5,
		ExperienceBoost: 5,
		KeywordHits:     []string{"roadmap", "SQL", "analytics", "payments", "growth", "agile", "jira"},
	}

	bullets := Explain(result)

	require.NotEmpty(t, bullets)
	assert.LessOrEqual(t, len(bullets), 8)
	assert.Equal(t, "Shared focus on roadmap, sql, analytics, payments, growth.", bullets[0])
	assert.Contains(t, bullets, "Title closely matches resume focus (Senior Product Manager).")
	assert.Contains(t, bullets, "Location preference aligned (Remote - US).")
	assert.Contains(t, bullets, "Experience level aligns within ±2 years.")
}

func TestExplain_PadsThinExplanations(t *testing.T) {
	bullets := Explain(domain.MatchResult{BaseScore: 17.3})

	require.Len(t, bullets, 1)
	assert.Equal(t, "High content similarity (TF-IDF base 17.3).", bullets[0])
}

func TestExplain_SimilarityBulletOnlyWhenThin(t *testing.T) {
	result := domain.MatchResult{
		Posting:         domain.Posting{Title: "Product Lead", Location: "Hybrid"},
		TitleBoost:      5,
		LocationBoost:   5,
		ExperienceBoost: 5,
		KeywordHits:     []string{"roadmap"},
	}

	bullets := Explain(result)

	assert.Len(t, bullets, 4)
	for _, b := range bullets {
		assert.NotContains(t, b, "High content similarity")
	}
}

func TestExplain_BlankLocationReadsAsFlexibility(t *testing.T) {
	result := domain.MatchResult{
		Posting:       domain.Posting{Title: "Product Lead"},
		LocationBoost: 5,
	}

	bullets := Explain(result)
	assert.Contains(t, bullets, "Location preference aligned (Location flexibility).")
}
