package models

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL for record keying: lowercase hostname
// with any leading "www." stripped, plus the path without a trailing slash.
// Scheme, query, and fragment are dropped. Invalid input falls back to a
// lowercased trim of the raw string so keys stay deterministic.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	path := strings.TrimSuffix(u.Path, "/")
	return host + path
}

// DomainOf returns the lowercase registrable host of a URL, without a
// leading "www.". Used as the belief-state key.
func DomainOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		normalized := NormalizeURL(rawURL)
		if i := strings.IndexByte(normalized, '/'); i >= 0 {
			return normalized[:i]
		}
		return normalized
	}

	host := strings.ToLower(u.Host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return strings.TrimPrefix(host, "www.")
}
