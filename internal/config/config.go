// Package config loads, persists and resolves the layered option model.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"mash/internal/domain/paths"
	"mash/internal/logging"
	"mash/internal/models"

	"github.com/BurntSushi/toml"
)

// Config aggregates the persisted defaults and the user's named profiles.
// Loaded once per process, mutated through explicit setters, written back
// on Save.
type Config struct {
	Defaults models.DownloadOptions
	Profiles map[string]*models.Profile

	path  string
	dirty bool
}

// New returns an empty config bound to the standard config path.
func New() *Config {
	return &Config{
		Defaults: models.DefaultOptions(),
		Profiles: make(map[string]*models.Profile),
		path:     paths.ConfigPath(),
	}
}

// fileSchema mirrors the on-disk TOML layout: a sparse defaults table and
// per-profile tables with description/extends alongside sparse option
// fields.
type fileSchema struct {
	Defaults map[string]any            `toml:"defaults"`
	Profiles map[string]map[string]any `toml:"profiles"`
}

// Load reads a config file. An empty path means the standard location. A
// missing file is not an error, it yields a fresh config bound to the path.
func Load(path string) (*Config, error) {
	if path == "" {
		path = paths.ConfigPath()
	}

	c := New()
	c.path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.D(2, "No config file at %q, using built-in defaults", path)
		return c, nil
	}

	var schema fileSchema
	if _, err := toml.DecodeFile(path, &schema); err != nil {
		return nil, fmt.Errorf("failed to decode config file %q: %w", path, err)
	}

	defaults, err := optionsFromMap(schema.Defaults)
	if err != nil {
		return nil, fmt.Errorf("bad defaults in %q: %w", path, err)
	}
	c.Defaults = defaults

	for name, table := range schema.Profiles {
		opts, err := optionsFromMap(table)
		if err != nil {
			return nil, fmt.Errorf("bad profile %q in %q: %w", name, path, err)
		}
		c.Profiles[name] = &models.Profile{
			Name:        name,
			Description: asString(table["description"]),
			Extends:     asString(table["extends"]),
			Options:     opts,
		}
	}

	logging.D(1, "Loaded config from %q (%d profiles)", path, len(c.Profiles))
	return c, nil
}

// Path returns the file the config is bound to.
func (c *Config) Path() string {
	return c.path
}

// Dirty reports whether the config has unsaved mutations. Advisory only.
func (c *Config) Dirty() bool {
	return c.dirty
}

// Save writes the config back to its bound path, sparse, creating parent
// directories as needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data := make(map[string]any, 2)
	if defaults := c.Defaults.ToSparseMap(); len(defaults) != 0 {
		data["defaults"] = defaults
	}
	if len(c.Profiles) != 0 {
		profileTables := make(map[string]any, len(c.Profiles))
		for name, p := range c.Profiles {
			table := p.Options.ToSparseMap()
			if p.Description != "" {
				table["description"] = p.Description
			}
			if p.Extends != "" {
				table["extends"] = p.Extends
			}
			profileTables[name] = table
		}
		data["profiles"] = profileTables
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("failed to create config file %q: %w", c.path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(data); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	c.dirty = false
	logging.D(1, "Saved config to %q", c.path)
	return nil
}

// GetProfile returns the named profile with inheritance resolved, child
// fields winning over parent fields per the merge rules. A missing name
// returns nil without error, a missing parent is treated as no parent. An
// extends cycle is a configuration error.
func (c *Config) GetProfile(name string) (*models.Profile, error) {
	return c.getProfile(name, make(map[string]bool))
}

func (c *Config) getProfile(name string, seen map[string]bool) (*models.Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, nil
	}
	if p.Extends == "" {
		return p, nil
	}
	if seen[name] {
		return nil, fmt.Errorf("profile inheritance cycle at %q", name)
	}
	seen[name] = true

	parent, err := c.getProfile(p.Extends, seen)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return p, nil
	}

	return &models.Profile{
		Name:        p.Name,
		Description: p.Description,
		Options:     parent.Options.Merge(p.Options),
	}, nil
}

// AddProfile adds or replaces a profile. Last write wins.
func (c *Config) AddProfile(name string, opts models.DownloadOptions, description string) {
	c.Profiles[name] = &models.Profile{
		Name:        name,
		Description: description,
		Options:     opts,
	}
	c.dirty = true
}

// DeleteProfile removes a profile, reporting whether it existed.
func (c *Config) DeleteProfile(name string) bool {
	if _, ok := c.Profiles[name]; !ok {
		return false
	}
	delete(c.Profiles, name)
	c.dirty = true
	return true
}

// ProfileNames returns the stored profile names, sorted.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetDefault sets one default option field from its string form.
func (c *Config) SetDefault(key, value string) error {
	if err := c.Defaults.SetField(key, value); err != nil {
		return err
	}
	c.dirty = true
	return nil
}

// UnsetDefault resets one default option field to its documented default.
func (c *Config) UnsetDefault(key string) error {
	if err := c.Defaults.UnsetField(key); err != nil {
		return err
	}
	c.dirty = true
	return nil
}

// resolveLayers merges the given overlays onto the documented defaults in
// order. Every resolution path goes through here so the priority encoding
// cannot drift between callers.
func resolveLayers(layers ...models.DownloadOptions) models.DownloadOptions {
	opts := models.DefaultOptions()
	for _, layer := range layers {
		opts = opts.Merge(layer)
	}
	return opts
}

// optionsFromMap builds an option set from a sparse TOML table, ignoring
// non-option keys like description and extends.
func optionsFromMap(table map[string]any) (models.DownloadOptions, error) {
	opts := models.DefaultOptions()
	if table == nil {
		return opts, nil
	}

	for key, raw := range table {
		switch key {
		case models.FieldDestination:
			opts.Destination = asString(raw)
		case models.FieldFilenameFormat:
			opts.FilenameFormat = asString(raw)
		case models.FieldRateLimit:
			opts.RateLimit = asString(raw)
		case models.FieldSleep:
			opts.Sleep = asString(raw)
		case models.FieldSleepRequest:
			opts.SleepRequest = asString(raw)
		case models.FieldRetries:
			n, err := asInt(raw)
			if err != nil {
				return opts, fmt.Errorf("retries: %w", err)
			}
			opts.Retries = n
		case models.FieldTimeout:
			f, err := asFloat(raw)
			if err != nil {
				return opts, fmt.Errorf("timeout: %w", err)
			}
			opts.Timeout = f
		case models.FieldCookiesBrowser:
			opts.CookiesBrowser = asString(raw)
		case models.FieldCookiesFile:
			opts.CookiesFile = asString(raw)
		case models.FieldArchiveFile:
			opts.ArchiveFile = asString(raw)
		case models.FieldRangeFilter:
			opts.RangeFilter = asString(raw)
		case models.FieldFilesizeMin:
			opts.FilesizeMin = asString(raw)
		case models.FieldFilesizeMax:
			opts.FilesizeMax = asString(raw)
		case models.FieldWriteMetadata:
			opts.WriteMetadata = asBool(raw)
		case models.FieldZipOutput:
			opts.ZipOutput = asBool(raw)
		case models.FieldNoSkip:
			opts.NoSkip = asBool(raw)
		case models.FieldNoMtime:
			opts.NoMtime = asBool(raw)
		case models.FieldUserAgent:
			opts.UserAgent = asString(raw)
		case models.FieldProxy:
			opts.Proxy = asString(raw)
		case models.FieldExtraOptions:
			opts.ExtraOptions = asStringSlice(raw)
		}
	}

	return opts, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func asStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return append([]string(nil), ss...)
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
