package apiversion

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Version is an API version tag.
type Version string

const (
	V1 Version = "v1"
	V2 Version = "v2"

	// Current is the version served when the client does not ask for one.
	Current = V2
)

const (
	VersionHeader       = "X-API-Version"
	AcceptVersionHeader = "Accept-Version"
	CurrentHeader       = "X-API-Current-Version"
	SupportedHeader     = "X-API-Supported-Versions"
	versionQueryParam   = "version"
)

// Supported returns the closed set of versions this API serves.
func Supported() []Version {
	return []Version{V1, V2}
}

// SupportedStrings is Supported rendered for headers and error payloads.
func SupportedStrings() []string {
	versions := Supported()
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = string(v)
	}
	return out
}

// UnsupportedVersionError reports a version the API does not serve at all.
type UnsupportedVersionError struct {
	Requested string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported API version %q, supported: %s",
		e.Requested, strings.Join(SupportedStrings(), ", "))
}

// Parse normalizes a client-supplied version string ("v1", "1", "V1").
func Parse(s string) (Version, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return "", false
	}
	if !strings.HasPrefix(normalized, "v") {
		normalized = "v" + normalized
	}
	for _, v := range Supported() {
		if normalized == string(v) {
			return v, true
		}
	}
	return "", false
}

var pathVersionPattern = regexp.MustCompile(`/v(\d+)(?:/|$)`)

// Resolve determines the request's version with precedence:
// X-API-Version header > Accept-Version header > "version" query parameter >
// /v{n}/ path segment > Current. An explicitly requested version outside the
// supported set yields an UnsupportedVersionError; an absent version never
// errors.
func Resolve(c *fiber.Ctx) (Version, error) {
	sources := []string{
		c.Get(VersionHeader),
		c.Get(AcceptVersionHeader),
		c.Query(versionQueryParam),
	}
	if m := pathVersionPattern.FindStringSubmatch(c.Path()); m != nil {
		sources = append(sources, "v"+m[1])
	}

	for _, raw := range sources {
		if raw == "" {
			continue
		}
		v, ok := Parse(raw)
		if !ok {
			return "", &UnsupportedVersionError{Requested: raw}
		}
		return v, nil
	}
	return Current, nil
}

// Annotate stamps the version negotiation headers on the response.
func Annotate(c *fiber.Ctx, v Version) {
	c.Set(VersionHeader, string(v))
	c.Set(CurrentHeader, string(Current))
	c.Set(SupportedHeader, strings.Join(SupportedStrings(), ", "))
}

// Deprecation describes the sunset plan for one version of an endpoint.
type Deprecation struct {
	Since         time.Time
	Sunset        time.Time
	MigrationNote string
}

// RemainingDays until sunset, never negative.
func (d Deprecation) RemainingDays(now time.Time) int {
	days := int(d.Sunset.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
