package config

import (
	"os"
	"strings"
	"time"
)

// CacheConfig controls the Redis response cache applied to the user
// listing endpoint.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCache reads cache settings from CACHE_ENABLED, CACHE_TTL and
// CACHE_PREFIX. Caching defaults to on with a short TTL; an invalid
// TTL falls back to the default.
func LoadCache() CacheConfig {
	enabled := true
	if v := os.Getenv("CACHE_ENABLED"); strings.EqualFold(v, "false") || v == "0" {
		enabled = false
	}
	ttl := 30 * time.Second
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}
	return CacheConfig{
		Enabled: enabled,
		TTL:     ttl,
		Prefix:  getenv("CACHE_PREFIX", "medix:cache"),
	}
}
