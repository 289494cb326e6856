package dedup

import "strings"

// NormalizeURL strips volatile tracking parameters by truncating at the
// first parameter separator. Job post URLs carry per-session tracking
// query strings that would otherwise defeat exact-string de-duplication.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if i := strings.IndexByte(url, '&'); i >= 0 {
		url = url[:i]
	}
	return url
}
