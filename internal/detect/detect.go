// Package detect fingerprints a careers landing page to classify the ATS
// vendor behind it.
package detect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobmatch-engine/internal/domain"
)

// signatures is ordered: the first token found in the markup wins.
var signatures = []struct {
	token string
	ats   domain.AtsType
}{
	{"workday", domain.AtsWorkday},
	{"greenhouse", domain.AtsGreenhouse},
	{"lever.co", domain.AtsLever},
	{"smartrecruiters", domain.AtsSmartRecruiters},
	{"successfactors", domain.AtsSuccessFactors},
	{"taleo", domain.AtsTaleo},
	{"icims", domain.AtsIcims},
}

// Detect classifies the page markup. It never fails: a page that parses
// badly is matched as raw text, and no signature hit means Unknown.
func Detect(html string) domain.AtsType {
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		if h, err := doc.Html(); err == nil && h != "" {
			text = h
		}
	}

	lower := strings.ToLower(text)
	for _, sig := range signatures {
		if strings.Contains(lower, sig.token) {
			return sig.ats
		}
	}
	return domain.AtsUnknown
}
