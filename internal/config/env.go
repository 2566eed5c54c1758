package config

import (
	"fmt"

	"mash/internal/logging"
	"mash/internal/models"

	"github.com/caarlos0/env/v11"
)

// envOverrides is the fixed set of recognized MASH_* environment
// variables. Pointer fields distinguish unset from empty.
type envOverrides struct {
	Destination    *string `env:"MASH_DESTINATION"`
	Sleep          *string `env:"MASH_SLEEP"`
	RateLimit      *string `env:"MASH_RATE_LIMIT"`
	Retries        *int    `env:"MASH_RETRIES"`
	CookiesBrowser *string `env:"MASH_COOKIES_BROWSER"`
	ArchiveFile    *string `env:"MASH_ARCHIVE"`
	Proxy          *string `env:"MASH_PROXY"`
}

// ApplyEnvOverrides overlays environment variables on top of otherwise
// resolved options. This is the highest-priority layer and assigns
// directly rather than merging, a variable set to a default-looking value
// still wins.
func ApplyEnvOverrides(opts models.DownloadOptions) (models.DownloadOptions, error) {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return opts, fmt.Errorf("bad environment override: %w", err)
	}

	setStr := func(dst *string, src *string, name string) {
		if src != nil && *src != "" {
			logging.D(2, "Environment override %s=%q", name, *src)
			*dst = *src
		}
	}

	setStr(&opts.Destination, overrides.Destination, "MASH_DESTINATION")
	setStr(&opts.Sleep, overrides.Sleep, "MASH_SLEEP")
	setStr(&opts.RateLimit, overrides.RateLimit, "MASH_RATE_LIMIT")
	if overrides.Retries != nil {
		logging.D(2, "Environment override MASH_RETRIES=%d", *overrides.Retries)
		opts.Retries = *overrides.Retries
	}
	setStr(&opts.CookiesBrowser, overrides.CookiesBrowser, "MASH_COOKIES_BROWSER")
	setStr(&opts.ArchiveFile, overrides.ArchiveFile, "MASH_ARCHIVE")
	setStr(&opts.Proxy, overrides.Proxy, "MASH_PROXY")

	return opts, nil
}
