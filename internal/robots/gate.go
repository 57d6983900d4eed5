package robots

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"jobmatch-engine/internal/httpx"
)

// Gate answers "may we crawl this URL" per the target host's robots.txt.
type Gate struct {
	client    *httpx.Client
	userAgent string
	override  bool
	log       zerolog.Logger
}

func NewGate(client *httpx.Client, userAgent string, override bool, log zerolog.Logger) *Gate {
	return &Gate{client: client, userAgent: userAgent, override: override, log: log}
}

// IsAllowed fetches {scheme}://{host}/robots.txt and evaluates the target
// path. A host that responds but without a usable robots.txt consents
// implicitly, so a non-success status defaults to allow. A host we cannot
// reach at all cannot be checked, so a transport failure defaults to deny.
func (g *Gate) IsAllowed(ctx context.Context, target *url.URL) bool {
	if g.override {
		return true
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", target.Scheme, target.Host)
	res, err := g.client.Get(ctx, robotsURL)
	if err != nil {
		g.log.Warn().Str("url", robotsURL).Err(err).Msg("robots.txt unreachable; denying")
		return false
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return true
	}

	rules := Parse(string(res.Body))
	return rules.IsPathAllowed(g.userAgent, target.Path)
}
