package services

import (
	"net/url"
	"strings"
)

// DocURL resolves an integration's doc path against the Docusaurus base URL.
// It returns "" when either part is missing so views can omit the link.
func DocURL(base, docPath string) string {
	docPath = strings.TrimSpace(docPath)
	base = strings.TrimSpace(base)
	if docPath == "" || base == "" {
		return ""
	}

	baseURL, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimLeft(docPath, "/"))
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}
