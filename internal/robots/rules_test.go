package robots

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_DisallowBlocksPrefixOnly(t *testing.T) {
	rules := Parse("User-agent: *\nDisallow: /private")

	assert.False(t, rules.IsPathAllowed("jobmatch-bot", "/private/page"))
	assert.False(t, rules.IsPathAllowed("jobmatch-bot", "/private"))
	assert.True(t, rules.IsPathAllowed("jobmatch-bot", "/public"))
}

func TestParse_LongestMatchWins(t *testing.T) {
	content := `
User-agent: *
Disallow: /jobs
Allow: /jobs/open
`
	rules := Parse(content)

	assert.False(t, rules.IsPathAllowed("bot", "/jobs/internal"))
	assert.True(t, rules.IsPathAllowed("bot", "/jobs/open/123"))
}

func TestParse_LongestMatchWins_RuleOrderIrrelevant(t *testing.T) {
	content := `
User-agent: *
Allow: /jobs/open
Disallow: /jobs
`
	rules := Parse(content)

	assert.False(t, rules.IsPathAllowed("bot", "/jobs/internal"))
	assert.True(t, rules.IsPathAllowed("bot", "/jobs/open/123"))
}

func TestParse_NamedGroupOverridesWildcard(t *testing.T) {
	content := `
User-agent: *
Disallow: /

User-agent: jobmatch-bot
Allow: /careers
`
	rules := Parse(content)

	assert.True(t, rules.IsPathAllowed("jobmatch-bot", "/careers/page"))
	assert.False(t, rules.IsPathAllowed("jobmatch-bot", "/admin"))
	assert.False(t, rules.IsPathAllowed("other-bot", "/careers/page"))
}

func TestParse_ConsecutiveAgentsShareDirectives(t *testing.T) {
	content := `
User-agent: alpha
User-agent: beta
Disallow: /x
`
	rules := Parse(content)

	assert.False(t, rules.IsPathAllowed("alpha", "/x/page"))
	assert.False(t, rules.IsPathAllowed("beta", "/x/page"))
	assert.True(t, rules.IsPathAllowed("gamma", "/x/page"))
}

func TestParse_NewAgentLineResetsGroup(t *testing.T) {
	content := `
User-agent: alpha
Disallow: /x
User-agent: beta
Disallow: /y
`
	rules := Parse(content)

	assert.False(t, rules.IsPathAllowed("alpha", "/x"))
	assert.True(t, rules.IsPathAllowed("alpha", "/y"))
	assert.False(t, rules.IsPathAllowed("beta", "/y"))
	assert.True(t, rules.IsPathAllowed("beta", "/x"))
}

func TestParse_EmptyDisallowMeansAllowAll(t *testing.T) {
	rules := Parse("User-agent: *\nDisallow:")

	assert.True(t, rules.IsPathAllowed("bot", "/anything"))
}

func TestParse_CommentsAndBlankLines(t *testing.T) {
	content := `
# harvest policy
User-agent: * # everyone
Disallow: /private # keep out

`
	rules := Parse(content)

	assert.False(t, rules.IsPathAllowed("bot", "/private/x"))
	assert.True(t, rules.IsPathAllowed("bot", "/jobs"))
}

func TestParse_CaseInsensitive(t *testing.T) {
	rules := Parse("USER-AGENT: JobMatch-Bot\nDISALLOW: /secret")

	assert.False(t, rules.IsPathAllowed("jobmatch-bot", "/secret/page"))
}

func TestParse_EmptyContentAllowsEverything(t *testing.T) {
	rules := Parse("")

	assert.True(t, rules.IsPathAllowed("bot", "/"))
	assert.True(t, rules.IsPathAllowed("", "/jobs"))
}

func TestIsPathAllowed_NoMatchDefaultsToAllow(t *testing.T) {
	rules := Parse("User-agent: *\nDisallow: /private")

	assert.True(t, rules.IsPathAllowed("bot", ""))
	assert.True(t, rules.IsPathAllowed("bot", "/jobs"))
}
