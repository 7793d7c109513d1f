// Package validation handles validation of user input.
package validation

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/models"

	"golang.org/x/net/publicsuffix"
)

// supportedPlatforms is the fixed allow-list of sites a URL may point at.
var supportedPlatforms = []models.Platform{
	{Name: "YouTube", Domains: []string{"youtube.com", "youtu.be"}},
	{Name: "Instagram", Domains: []string{"instagram.com"}},
	{Name: "Facebook", Domains: []string{"facebook.com", "fb.com"}},
	{Name: "TikTok", Domains: []string{"tiktok.com"}},
	{Name: "Twitter", Domains: []string{"twitter.com", "x.com"}},
	{Name: "Vimeo", Domains: []string{"vimeo.com"}},
	{Name: "Dailymotion", Domains: []string{"dailymotion.com"}},
}

// SupportedPlatforms returns a copy of the supported platform list.
func SupportedPlatforms() []models.Platform {
	out := make([]models.Platform, len(supportedPlatforms))
	for i, p := range supportedPlatforms {
		out[i] = models.Platform{Name: p.Name, Domains: slices.Clone(p.Domains)}
	}
	return out
}

// ValidateURL checks that raw is an absolute http(s) URL on a supported platform.
//
// All failures wrap errconsts.ErrInvalidInput.
func ValidateURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: URL is required", errconsts.ErrInvalidInput)
	}

	u, ok := parseHTTPURL(raw)
	if !ok {
		return nil, fmt.Errorf("%w: invalid URL format %q", errconsts.ErrInvalidInput, raw)
	}

	if platformFor(u.Hostname()) == nil {
		logger.Pl.D(1, "Rejected URL %q on unsupported host %q", raw, u.Hostname())
		return nil, fmt.Errorf("%w: this platform is not supported yet (%s)", errconsts.ErrInvalidInput, DomainFromURL(raw))
	}
	return u, nil
}

// IsValidURL reports whether raw parses as an absolute http(s) URL.
func IsValidURL(raw string) bool {
	_, ok := parseHTTPURL(strings.TrimSpace(raw))
	return ok
}

// IsSupportedPlatform reports whether raw is a valid URL on the allow-list.
func IsSupportedPlatform(raw string) bool {
	u, ok := parseHTTPURL(strings.TrimSpace(raw))
	return ok && platformFor(u.Hostname()) != nil
}

// PlatformName returns the display name of the platform raw points at.
func PlatformName(raw string) string {
	u, ok := parseHTTPURL(strings.TrimSpace(raw))
	if !ok {
		return consts.UnknownPlatform
	}
	if p := platformFor(u.Hostname()); p != nil {
		return p.Name
	}
	return consts.UnknownPlatform
}

// DomainFromURL returns the URL's host without a leading "www.", or "Unknown".
func DomainFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Hostname() == "" {
		return consts.Unknown
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// parseHTTPURL parses raw and requires an http(s) scheme and a host.
func parseHTTPURL(raw string) (*url.URL, bool) {
	if raw == "" || strings.ContainsAny(raw, " \t\r\n") {
		return nil, false
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, false
	}
	if u.Hostname() == "" {
		return nil, false
	}
	return u, true
}

// platformFor matches a host's registrable domain against the allow-list.
func platformFor(host string) *models.Platform {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return nil
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		logger.Pl.D(3, "No registrable domain for host %q: %v", host, err)
		return nil
	}

	for i := range supportedPlatforms {
		if slices.Contains(supportedPlatforms[i].Domains, domain) {
			return &supportedPlatforms[i]
		}
	}
	return nil
}
