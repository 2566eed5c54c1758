// Package batch parses job-list files and drives their sequential execution.
package batch

import (
	"strings"

	"mash/internal/config"
	"mash/internal/models"
)

// BatchEntry is one parsed job line: the URL plus optional preset/profile
// references.
type BatchEntry struct {
	LineNumber int
	URL        string
	Preset     string
	Profile    string
}

// ParseLine parses one batch-file line into an entry. Blank lines and
// #-comments yield nil. The first token is taken as the URL without any
// syntax checking, remaining key:value tokens fill the recognized keys,
// unrecognized keys are ignored, last occurrence wins.
func ParseLine(line string, lineNumber int) *BatchEntry {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	tokens := strings.Fields(line)
	entry := &BatchEntry{
		LineNumber: lineNumber,
		URL:        tokens[0],
	}

	for _, token := range tokens[1:] {
		key, value, found := strings.Cut(token, ":")
		if !found {
			continue
		}
		switch key {
		case "preset":
			entry.Preset = value
		case "profile":
			entry.Profile = value
		}
	}

	return entry
}

// ResolveOptions computes the entry's final options: config defaults, then
// batch-global options, then the entry's profile, then its preset.
func (e *BatchEntry) ResolveOptions(cfg *config.Config, global *models.DownloadOptions) (models.DownloadOptions, error) {
	return cfg.ResolveBatch(global, e.Profile, e.Preset)
}
