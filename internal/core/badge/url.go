// Package badge builds links into the external badge generator.
package badge

import (
	"fmt"
	"net/url"
	"strings"
)

// IsDirectURL reports whether an image reference can be used without signing.
func IsDirectURL(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// BuildURL returns {base}/?photo=...&name=...&role=... with every value
// percent-encoded. Empty name and role are omitted.
func BuildURL(baseURL, photoURL, name, role string) (string, error) {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		return "", fmt.Errorf("badge base URL is not configured")
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid badge base URL %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid badge base URL %q: must be absolute", base)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""

	params := []string{"photo=" + encode(photoURL)}
	if name = strings.TrimSpace(name); name != "" {
		params = append(params, "name="+encode(name))
	}
	if role = strings.TrimSpace(role); role != "" {
		params = append(params, "role="+encode(role))
	}

	return u.String() + "?" + strings.Join(params, "&"), nil
}

// encode matches encodeURIComponent: spaces become %20, not '+'.
func encode(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
