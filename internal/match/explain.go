package match

import (
	"fmt"
	"strings"

	"jobmatch-engine/internal/domain"
)

const maxBullets = 8

// Explain renders a score's boost signals as human-readable bullets: up
// to eight, with a generic similarity bullet padding thin explanations up
// to three.
func Explain(result domain.MatchResult) []string {
	var bullets []string

	var hits []string
	for _, hit := range result.KeywordHits {
		if strings.TrimSpace(hit) == "" {
			continue
		}
		hits = append(hits, strings.ToLower(hit))
		if len(hits) == 5 {
			break
		}
	}
	if len(hits) > 0 {
		bullets = append(bullets, fmt.Sprintf("Shared focus on %s.", strings.Join(hits, ", ")))
	}

	if result.TitleBoost > 0 {
		bullets = append(bullets, fmt.Sprintf("Title closely matches resume focus (%s).", result.Posting.Title))
	}

	if result.LocationBoost > 0 {
		location := result.Posting.Location
		if strings.TrimSpace(location) == "" {
			location = "Location flexibility"
		}
		bullets = append(bullets, fmt.Sprintf("Location preference aligned (%s).", location))
	}

	if result.ExperienceBoost > 0 {
		bullets = append(bullets, "Experience level aligns within ±2 years.")
	}

	if len(bullets) < 3 {
		bullets = append(bullets, fmt.Sprintf("High content similarity (TF-IDF base %.1f).", result.BaseScore))
	}

	if len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}
	return bullets
}
