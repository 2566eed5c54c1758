// Package presets holds the built-in option templates.
package presets

import (
	"sort"
	"strings"

	"mash/internal/domain/paths"
	"mash/internal/models"
)

// Preset is a built-in, immutable option template. Target presets carry a
// URL template with a {target} placeholder, modifier presets carry empty
// templates and only contribute option fields.
type Preset struct {
	Name                string
	Description         string
	URLTemplate         string
	DestinationTemplate string
	Options             models.DownloadOptions
}

// Apply renders the preset for a target, returning the concrete URL and
// the preset's option set. With an empty target the URL stays empty and
// the destination is left as embedded (empty for every built-in modifier,
// so merging never tramples a customized destination).
func (p Preset) Apply(target string) (url string, opts models.DownloadOptions) {
	opts = p.Options
	if target != "" {
		if p.URLTemplate != "" {
			url = strings.ReplaceAll(p.URLTemplate, "{target}", target)
		}
		if p.DestinationTemplate != "" {
			opts.Destination = strings.ReplaceAll(p.DestinationTemplate, "{target}", target)
		}
	}
	return url, opts
}

// IsTarget reports whether the preset needs a target string to produce a URL.
func (p Preset) IsTarget() bool {
	return p.URLTemplate != ""
}

// registry is fixed at startup, keyed by preset name.
var registry = buildRegistry()

// options builds a preset option set: documented defaults with an empty
// destination, then preset-specific fields. The empty destination matters
// for merge behavior, the defaulted numerics matter for the non-default-wins
// rule.
func options(mutate func(*models.DownloadOptions)) models.DownloadOptions {
	o := models.DefaultOptions()
	o.Destination = ""
	mutate(&o)
	return o
}

func buildRegistry() map[string]Preset {
	all := []Preset{
		{
			Name:                "instagram",
			Description:         "Instagram profile - public posts with polite delays",
			URLTemplate:         "https://instagram.com/{target}",
			DestinationTemplate: "./{target}_instagram",
			Options: options(func(o *models.DownloadOptions) {
				o.Sleep = "1.0-2.0"
				o.FilenameFormat = "{date:%Y-%m-%d}_{filename}"
			}),
		},
		{
			Name:                "instagram-stories",
			Description:         "Instagram stories (requires auth)",
			URLTemplate:         "https://instagram.com/{target}/stories",
			DestinationTemplate: "./{target}_instagram_stories",
			Options: options(func(o *models.DownloadOptions) {
				o.Sleep = "1.0-2.0"
			}),
		},
		{
			Name:                "instagram-reels",
			Description:         "Instagram reels",
			URLTemplate:         "https://instagram.com/{target}/reels",
			DestinationTemplate: "./{target}_instagram_reels",
			Options: options(func(o *models.DownloadOptions) {
				o.Sleep = "1.5-3.0"
			}),
		},
		{
			Name:                "twitter",
			Description:         "Twitter/X media timeline",
			URLTemplate:         "https://twitter.com/{target}/media",
			DestinationTemplate: "./{target}_twitter",
			Options: options(func(o *models.DownloadOptions) {
				o.FilenameFormat = "/O"
			}),
		},
		{
			Name:                "reddit",
			Description:         "Reddit subreddit or user",
			URLTemplate:         "https://reddit.com/{target}",
			DestinationTemplate: "./{target}_reddit",
			Options: options(func(o *models.DownloadOptions) {
				o.Sleep = "0.5-1.0"
			}),
		},
		{
			Name:                "tumblr",
			Description:         "Tumblr blog archive",
			URLTemplate:         "https://{target}.tumblr.com",
			DestinationTemplate: "./{target}_tumblr",
			Options: options(func(o *models.DownloadOptions) {
				o.WriteMetadata = true
			}),
		},
		{
			Name:        "polite",
			Description: "Rate-limited, polite scraping",
			Options: options(func(o *models.DownloadOptions) {
				o.Sleep = "2.0-4.0"
				o.SleepRequest = "1.0"
				o.RateLimit = "500k"
				o.Retries = 2
			}),
		},
		{
			Name:        "archive",
			Description: "Track downloads to skip duplicates",
			Options: options(func(o *models.DownloadOptions) {
				o.ArchiveFile = paths.DefaultArchivePath()
				o.WriteMetadata = true
			}),
		},
		{
			Name:        "fast",
			Description: "No delays, minimal retries",
			Options: options(func(o *models.DownloadOptions) {
				o.Retries = 2
			}),
		},
	}

	m := make(map[string]Preset, len(all))
	for _, p := range all {
		m[p.Name] = p
	}
	return m
}

// Get looks up a preset by name.
func Get(name string) (Preset, bool) {
	p, ok := registry[name]
	return p, ok
}

// Exists reports whether a preset name is registered.
func Exists(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns all registered preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered preset, sorted by name.
func All() []Preset {
	all := make([]Preset, 0, len(registry))
	for _, name := range Names() {
		all = append(all, registry[name])
	}
	return all
}
