package sitescribe

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/avelis/sitescribe/urlutil"
)

// LinkPolicy decides whether a discovered link may join the crawl
// frontier. Policies gate link following only; sitemap entries and
// explicit single-page requests bypass them.
type LinkPolicy interface {
	ShouldFollow(seedURL, linkURL string) bool
}

type allowAllPolicy struct{}

func (allowAllPolicy) ShouldFollow(seedURL, linkURL string) bool {
	return true
}

type sameHostPolicy struct{}

func (sameHostPolicy) ShouldFollow(seedURL, linkURL string) bool {
	return urlutil.IsInternal(seedURL, linkURL)
}

var (
	// PolicyAllowAll follows every discovered link.
	PolicyAllowAll LinkPolicy = allowAllPolicy{}
	// PolicySameHost follows only links internal to the seed URL.
	PolicySameHost LinkPolicy = sameHostPolicy{}
)

type globPolicy struct {
	patterns []string
}

// NewGlobPolicy builds a policy from host glob patterns. A link is
// followed when its host matches any pattern; patterns prefixed with "!"
// veto a match.
func NewGlobPolicy(patterns ...string) LinkPolicy {
	return &globPolicy{patterns: patterns}
}

func (p *globPolicy) ShouldFollow(seedURL, linkURL string) bool {
	parsed, err := url.Parse(linkURL)
	if err != nil {
		return false
	}

	host := parsed.Host
	allowed := false
	for _, pattern := range p.patterns {
		if neg, found := strings.CutPrefix(pattern, "!"); found {
			if matchHost(host, neg) {
				return false
			}
		} else if matchHost(host, pattern) {
			allowed = true
		}
	}
	return allowed
}

func matchHost(host, pattern string) bool {
	matched, err := filepath.Match(pattern, host)
	if err != nil {
		return false
	}
	return matched
}
