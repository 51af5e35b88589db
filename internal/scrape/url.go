package scrape

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Domain extracts the lowercase hostname of an absolute http(s) URL. It is
// the namespace under which a job's results are grouped.
func Domain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}
	return strings.ToLower(u.Hostname()), nil
}

// ResultFilename derives a stable result filename from a source URL: scheme
// stripped, path separators flattened to "__", remaining unsafe characters
// collapsed to "_", with a ".txt" suffix since stored content is always
// extracted text.
func ResultFilename(rawURL string) string {
	name := rawURL
	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.TrimSuffix(name, "/")
	name = strings.ReplaceAll(name, "/", "__")
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" {
		name = "root"
	}
	if strings.HasSuffix(name, ".txt") {
		return name
	}
	return name + ".txt"
}
