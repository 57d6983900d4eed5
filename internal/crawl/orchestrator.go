// Package crawl drives the per-company harvesting pipeline over a
// worklist: robots check, ATS detection, adapter selection, normalization
// and dedupe, with one batched store commit after the full pass.
package crawl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/httpx"
	"jobmatch-engine/internal/normalize"
	"jobmatch-engine/internal/scrape"
)

// ErrWorklistNotFound is the only fatal failure in a crawl run; everything
// downstream degrades to a skip or a note.
var ErrWorklistNotFound = errors.New("worklist file not found")

const defaultCompanyLimit = 50

// Summary is the per-company outcome of one run.
type Summary struct {
	Domain  string `json:"domain"`
	Company string `json:"company"`
	Scanned int    `json:"scanned"`
	Fetched int    `json:"fetched"`
	Stored  int    `json:"stored"`
	Skipped int    `json:"skipped"`
	Notes   string `json:"notes"`
}

// Gate answers robots.txt permission for a target URL.
type Gate interface {
	IsAllowed(ctx context.Context, target *url.URL) bool
}

// DedupeIndex tracks posting identity across runs. Track stages; Commit
// persists the whole batch at once.
type DedupeIndex interface {
	Exists(ctx context.Context, stableIDHash string) (bool, error)
	Track(posting domain.Posting)
	Commit(ctx context.Context) error
}

// AdapterSource maps a detected ATS type to a harvesting strategy.
type AdapterSource interface {
	ForType(t domain.AtsType) scrape.Adapter
}

// Detector classifies landing-page markup.
type Detector func(html string) domain.AtsType

type Orchestrator struct {
	client   *httpx.Client
	gate     Gate
	adapters AdapterSource
	dedupe   DedupeIndex
	detect   Detector
	log      zerolog.Logger
}

func NewOrchestrator(client *httpx.Client, gate Gate, adapters AdapterSource, dedupe DedupeIndex, detect Detector, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		client:   client,
		gate:     gate,
		adapters: adapters,
		dedupe:   dedupe,
		detect:   detect,
		log:      log,
	}
}

// Run processes valid worklist rows in file order up to limit. Rows that
// cannot be parsed are skipped and do not count toward the limit. Staged
// postings are committed in a single batch after the whole pass.
func (o *Orchestrator) Run(ctx context.Context, worklistPath string, limit int, freshOnly bool) ([]Summary, error) {
	if limit <= 0 {
		limit = defaultCompanyLimit
	}

	f, err := os.Open(worklistPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrWorklistNotFound, worklistPath)
		}
		return nil, err
	}
	defer f.Close()

	var summaries []Summary
	processed := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if processed >= limit {
			break
		}
		item, ok := parseWorkItem(scanner.Text())
		if !ok {
			continue
		}

		careersURL, err := url.Parse(item.CareersURL)
		if err != nil || careersURL.Scheme == "" || careersURL.Host == "" {
			o.log.Warn().Str("company", item.Company).Str("url", item.CareersURL).Msg("invalid careers url; row skipped")
			continue
		}

		processed++
		summaries = append(summaries, o.processCompany(ctx, item, careersURL, freshOnly))
	}
	if err := scanner.Err(); err != nil {
		return summaries, err
	}

	if err := o.dedupe.Commit(ctx); err != nil {
		return summaries, fmt.Errorf("commit staged postings: %w", err)
	}
	return summaries, nil
}

// parseWorkItem reads one worklist row: Company,URL[,Notes]. Blank lines
// and '#' comments are not rows.
func parseWorkItem(line string) (domain.CompanyWorkItem, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return domain.CompanyWorkItem{}, false
	}
	columns := strings.SplitN(line, ",", 3)
	if len(columns) < 2 {
		return domain.CompanyWorkItem{}, false
	}
	item := domain.CompanyWorkItem{
		Company:    strings.TrimSpace(columns[0]),
		CareersURL: strings.TrimSpace(columns[1]),
	}
	if len(columns) > 2 {
		item.Notes = strings.TrimSpace(columns[2])
	}
	return item, true
}

func (o *Orchestrator) processCompany(ctx context.Context, item domain.CompanyWorkItem, careersURL *url.URL, freshOnly bool) Summary {
	summary := Summary{
		Domain:  careersURL.Host,
		Company: item.Company,
		Notes:   item.Notes,
	}

	if !o.gate.IsAllowed(ctx, careersURL) {
		summary.Notes = appendNote(summary.Notes, "Blocked by robots.txt")
		return summary
	}

	atsType := o.detectATS(ctx, careersURL)
	adapter := o.adapters.ForType(atsType)

	raw := adapter.Crawl(ctx, item.Company, careersURL)
	summary.Scanned = len(raw)

	for _, rp := range raw {
		summary.Fetched++

		posting := normalize.Normalize(item.Company, rp)
		if posting.DescriptionText == "" {
			summary.Skipped++
			continue
		}

		if freshOnly {
			exists, err := o.dedupe.Exists(ctx, posting.StableIDHash)
			if err != nil {
				o.log.Warn().Str("company", item.Company).Str("url", posting.URL).Err(err).Msg("dedupe lookup failed; skipping")
				summary.Skipped++
				continue
			}
			if exists {
				summary.Skipped++
				continue
			}
		}

		o.dedupe.Track(posting)
		summary.Stored++
	}

	atsNote := atsType.String()
	if atsType == domain.AtsUnknown {
		atsNote = "Generic"
	}
	summary.Notes = appendNote(summary.Notes, atsNote)

	o.log.Info().
		Str("company", item.Company).
		Str("domain", summary.Domain).
		Str("adapter", adapter.Name()).
		Int("scanned", summary.Scanned).
		Int("stored", summary.Stored).
		Int("skipped", summary.Skipped).
		Msg("company processed")

	return summary
}

// detectATS never aborts a company: any fetch problem classifies Unknown.
func (o *Orchestrator) detectATS(ctx context.Context, careersURL *url.URL) domain.AtsType {
	res, err := o.client.Get(ctx, careersURL.String())
	if err != nil {
		o.log.Warn().Str("url", careersURL.String()).Err(err).Msg("ats detection fetch failed")
		return domain.AtsUnknown
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return domain.AtsUnknown
	}
	return o.detect(string(res.Body))
}

func appendNote(existing, note string) string {
	if strings.TrimSpace(existing) == "" {
		return note
	}
	if strings.TrimSpace(note) == "" {
		return existing
	}
	return existing + "; " + note
}
