package config

import (
	"mash/internal/logging"
	"mash/internal/models"
	"mash/internal/presets"
)

// Resolve computes the final options for a CLI invocation. Priority, lowest
// to highest: documented defaults, config defaults, profile, preset, CLI
// overrides. The returned URL comes only from the preset layer; profiles
// and defaults never carry one.
func (c *Config) Resolve(profileName, presetName string, cliOpts *models.DownloadOptions, target string) (string, models.DownloadOptions, error) {
	layers := make([]models.DownloadOptions, 0, 4)
	layers = append(layers, c.Defaults)

	if profileName != "" {
		profile, err := c.GetProfile(profileName)
		if err != nil {
			return "", models.DownloadOptions{}, err
		}
		if profile != nil {
			layers = append(layers, profile.Options)
		} else {
			logging.D(1, "Profile %q not found, skipping layer", profileName)
		}
	}

	var url string
	if preset, ok := presets.Get(presetName); ok {
		presetURL, presetOpts := preset.Apply(target)
		url = presetURL
		layers = append(layers, presetOpts)
	}

	if cliOpts != nil {
		layers = append(layers, *cliOpts)
	}

	return url, resolveLayers(layers...), nil
}

// ResolveBatch computes the final options for one batch entry. Priority,
// lowest to highest: documented defaults, config defaults, batch-global
// options, profile, preset. Presets contribute options only here, never a
// URL, the entry already carries its own.
func (c *Config) ResolveBatch(global *models.DownloadOptions, profileName, presetName string) (models.DownloadOptions, error) {
	layers := make([]models.DownloadOptions, 0, 4)
	layers = append(layers, c.Defaults)

	if global != nil {
		layers = append(layers, *global)
	}

	if profileName != "" {
		profile, err := c.GetProfile(profileName)
		if err != nil {
			return models.DownloadOptions{}, err
		}
		if profile != nil {
			layers = append(layers, profile.Options)
		}
	}

	if preset, ok := presets.Get(presetName); ok {
		_, presetOpts := preset.Apply("")
		layers = append(layers, presetOpts)
	}

	return resolveLayers(layers...), nil
}
