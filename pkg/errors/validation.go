package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateURL validates an API base URL.
// It must parse, use the http or https scheme and name a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "cannot parse URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme: %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL has no host: %q", rawURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return New(ErrCodeInvalidURL, "base URL cannot carry a query or fragment: %q", rawURL)
	}
	return nil
}

// ValidateID rejects expense ids that cannot be meant seriously:
// empty, whitespace-only, over 256 characters or containing control
// characters. Anything else is left for the server to judge.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "expense id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "expense id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "expense id contains invalid control characters")
		}
	}
	return nil
}
