package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned for malformed URLs or unsupported schemes.
var ErrInvalidURL = errors.New("invalid website URL")

// NormalizeURL reduces a raw URL to its cache identity form:
// lowercase scheme and host, path kept, query and fragment dropped,
// trailing slash trimmed.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	normalized := url.URL{
		Scheme: scheme,
		Host:   strings.ToLower(parsed.Host),
		Path:   strings.TrimSuffix(parsed.Path, "/"),
	}
	return normalized.String(), nil
}
