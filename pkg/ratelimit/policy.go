package ratelimit

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Policy is a fixed-window limit: at most Limit requests per Window per
// client identity.
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

type rawPolicy struct {
	Limit  int    `mapstructure:"limit"`
	Window string `mapstructure:"window"`
}

// DefaultPolicies are the limits applied when the config file carries none.
// Auth endpoints get a small count over a long window, general API traffic a
// larger count over a short window, search a medium count over a very short
// window.
func DefaultPolicies() map[string]Policy {
	return map[string]Policy{
		"auth":   {Name: "auth", Limit: 5, Window: 15 * time.Minute},
		"api":    {Name: "api", Limit: 100, Window: time.Minute},
		"search": {Name: "search", Limit: 30, Window: 10 * time.Second},
	}
}

// ParsePolicies decodes policies from the config's loose map form, e.g.
//
//	rate_limits:
//	  auth: {limit: 5, window: 15m}
//
// Unknown keys extend the defaults; known keys override them.
func ParsePolicies(settings map[string]map[string]any) (map[string]Policy, error) {
	policies := DefaultPolicies()
	for name, raw := range settings {
		var rp rawPolicy
		if err := mapstructure.Decode(raw, &rp); err != nil {
			return nil, fmt.Errorf("invalid rate limit policy %q: %w", name, err)
		}
		if rp.Limit <= 0 {
			return nil, fmt.Errorf("rate limit policy %q requires a positive limit", name)
		}
		window, err := time.ParseDuration(rp.Window)
		if err != nil {
			return nil, fmt.Errorf("invalid window for rate limit policy %q: %w", name, err)
		}
		policies[name] = Policy{Name: name, Limit: rp.Limit, Window: window}
	}
	return policies, nil
}
