// Package urlutil holds the URL classification and normalization helpers
// shared by the scraper and its collaborators.
package urlutil

import (
	"net/url"
	"strings"
)

// Normalize strips the fragment component from a URL. Malformed input is
// returned unchanged; normalization is best-effort and never fails.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// IsInternal reports whether candidate shares its network location
// (host[:port]) with base.
func IsInternal(baseURL, candidateURL string) bool {
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	candidate, err := url.Parse(candidateURL)
	if err != nil {
		return false
	}
	return base.Host != "" && strings.EqualFold(base.Host, candidate.Host)
}

// IsSitemapURL reports whether the URL looks like a sitemap: the path ends
// with sitemap.xml or contains "sitemap" anywhere.
func IsSitemapURL(rawURL string) bool {
	path := pathOf(rawURL)
	return strings.HasSuffix(path, "sitemap.xml") || strings.Contains(path, "sitemap")
}

// IsTextURL reports whether the URL points at a plain-text document, such
// as llms.txt or llms-full.txt.
func IsTextURL(rawURL string) bool {
	path := pathOf(rawURL)
	return strings.HasSuffix(path, ".txt") ||
		strings.HasSuffix(path, "llms.txt") ||
		strings.HasSuffix(path, "llms-full.txt")
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}
