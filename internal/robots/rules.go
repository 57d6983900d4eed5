// Package robots evaluates robots.txt permission before any host is crawled.
package robots

import "strings"

type rule struct {
	allow bool
	path  string
}

// Rules is a parsed robots.txt file.
type Rules struct {
	groups map[string][]rule
}

// Parse reads robots.txt content. Groups are runs of consecutive
// User-agent lines followed by Allow/Disallow directives; a User-agent
// line resets the current group only when the previous directive was not
// itself a User-agent line. An empty Disallow value means allow-all.
// '#' starts a comment. Matching is case-insensitive throughout.
func Parse(content string) *Rules {
	groups := make(map[string][]rule)
	var currentAgents []string
	lastWasAgent := false

	ensure := func(agent string) {
		if _, ok := groups[agent]; !ok {
			groups[agent] = nil
		}
	}

	for _, rawLine := range strings.Split(content, "\n") {
		line := rawLine
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sep := strings.IndexByte(line, ':')
		if sep <= 0 {
			continue
		}
		directive := strings.ToLower(strings.TrimSpace(line[:sep]))
		value := strings.TrimSpace(line[sep+1:])

		switch directive {
		case "user-agent":
			if !lastWasAgent {
				currentAgents = currentAgents[:0]
			}
			lastWasAgent = true
			if value == "" {
				continue
			}
			agent := strings.ToLower(value)
			currentAgents = append(currentAgents, agent)
			ensure(agent)

		case "allow", "disallow":
			lastWasAgent = false
			if len(currentAgents) == 0 {
				currentAgents = append(currentAgents, "*")
				ensure("*")
			}
			isAllow := directive == "allow"
			if !isAllow && value == "" {
				// "Disallow:" with no path allows everything.
				continue
			}
			for _, agent := range currentAgents {
				groups[agent] = append(groups[agent], rule{allow: isAllow, path: value})
			}
		}
	}

	if len(groups) == 0 {
		groups["*"] = nil
	}
	return &Rules{groups: groups}
}

// IsPathAllowed resolves path against the named group plus the wildcard
// group. Among applicable rules the longest matching path prefix wins; no
// match means allow.
func (r *Rules) IsPathAllowed(userAgent, path string) bool {
	agent := strings.ToLower(strings.TrimSpace(userAgent))
	if agent == "" {
		agent = "*"
	}

	var best *rule
	bestLen := -1
	consider := func(rules []rule) {
		for i := range rules {
			ru := &rules[i]
			if !ru.appliesTo(path) {
				continue
			}
			if len(ru.path) > bestLen {
				best = ru
				bestLen = len(ru.path)
			}
		}
	}

	consider(r.groups[agent])
	if agent != "*" {
		consider(r.groups["*"])
	}

	if best == nil {
		return true
	}
	return best.allow
}

func (ru *rule) appliesTo(candidate string) bool {
	if ru.path == "" {
		return true
	}
	if !strings.HasPrefix(candidate, "/") {
		candidate = "/" + strings.TrimLeft(candidate, "/")
	}
	rulePath := ru.path
	if !strings.HasPrefix(rulePath, "/") {
		rulePath = "/" + strings.TrimLeft(rulePath, "/")
	}
	return strings.HasPrefix(candidate, rulePath)
}
