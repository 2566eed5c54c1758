package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"mash/internal/config"
	"mash/internal/models"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Defaults, models.DefaultOptions()) {
		t.Fatalf("expected built-in defaults, got %+v", cfg.Defaults)
	}
	if len(cfg.Profiles) != 0 {
		t.Fatalf("expected no profiles, got %d", len(cfg.Profiles))
	}
	if cfg.Path() != path {
		t.Fatalf("expected config bound to %q, got %q", path, cfg.Path())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Defaults.Sleep = "2.0"
	cfg.Defaults.Retries = 0
	cfg.Defaults.WriteMetadata = true
	cfg.Defaults.ExtraOptions = []string{"browser=firefox"}

	workOpts := models.DefaultOptions()
	workOpts.RateLimit = "500k"
	cfg.AddProfile("work", workOpts, "slow and careful")

	if !cfg.Dirty() {
		t.Fatalf("expected dirty flag after mutation")
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if cfg.Dirty() {
		t.Fatalf("expected dirty flag cleared after save")
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if !reflect.DeepEqual(loaded.Defaults, cfg.Defaults) {
		t.Fatalf("defaults did not round-trip:\n got %+v\nwant %+v", loaded.Defaults, cfg.Defaults)
	}

	work, err := loaded.GetProfile("work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if work == nil {
		t.Fatalf("profile did not round-trip")
	}
	if work.Description != "slow and careful" {
		t.Fatalf("unexpected description %q", work.Description)
	}
	if work.Options.RateLimit != "500k" {
		t.Fatalf("unexpected profile rate limit %q", work.Options.RateLimit)
	}
}

func TestSavedFileIsSparse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, _ := config.Load(path)
	cfg.Defaults.Sleep = "2.0"
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	content := string(data)

	for _, unwanted := range []string{"destination", "retries", "timeout", "proxy"} {
		if strings.Contains(content, unwanted) {
			t.Fatalf("default-valued field %q leaked into saved config:\n%s", unwanted, content)
		}
	}
	if !strings.Contains(content, "sleep") {
		t.Fatalf("customized field missing from saved config:\n%s", content)
	}
}

func TestGetProfileInheritance(t *testing.T) {
	cfg := config.New()

	baseOpts := models.DefaultOptions()
	baseOpts.Sleep = "2.0"
	baseOpts.Retries = 2
	cfg.Profiles["base"] = &models.Profile{Name: "base", Options: baseOpts}

	childOpts := models.DefaultOptions()
	childOpts.Sleep = "0.5"
	cfg.Profiles["child"] = &models.Profile{Name: "child", Extends: "base", Options: childOpts}

	child, err := cfg.GetProfile("child")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := baseOpts.Merge(childOpts)
	if !reflect.DeepEqual(child.Options, want) {
		t.Fatalf("inheritance mismatch:\n got %+v\nwant %+v", child.Options, want)
	}
	if child.Options.Sleep != "0.5" {
		t.Fatalf("child field should win, got %q", child.Options.Sleep)
	}
	if child.Options.Retries != 2 {
		t.Fatalf("parent field should survive, got %d", child.Options.Retries)
	}
}

func TestGetProfileMissingParentIgnored(t *testing.T) {
	cfg := config.New()

	opts := models.DefaultOptions()
	opts.Sleep = "1.0"
	cfg.Profiles["orphan"] = &models.Profile{Name: "orphan", Extends: "gone", Options: opts}

	p, err := cfg.GetProfile("orphan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.Options.Sleep != "1.0" {
		t.Fatalf("expected orphan profile as-is, got %+v", p)
	}
}

func TestGetProfileUnknownName(t *testing.T) {
	cfg := config.New()
	p, err := cfg.GetProfile("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil for unknown profile, got %+v", p)
	}
}

func TestGetProfileCycleDetected(t *testing.T) {
	cfg := config.New()
	cfg.Profiles["a"] = &models.Profile{Name: "a", Extends: "b", Options: models.DefaultOptions()}
	cfg.Profiles["b"] = &models.Profile{Name: "b", Extends: "a", Options: models.DefaultOptions()}

	if _, err := cfg.GetProfile("a"); err == nil {
		t.Fatalf("expected cycle error, got nil")
	}

	cfg.Profiles["self"] = &models.Profile{Name: "self", Extends: "self", Options: models.DefaultOptions()}
	if _, err := cfg.GetProfile("self"); err == nil {
		t.Fatalf("expected self-cycle error, got nil")
	}
}

func TestResolvePriorityOrder(t *testing.T) {
	cfg := config.New()
	cfg.Defaults.Sleep = "9.0"
	cfg.Defaults.Proxy = "http://defaults:1"

	profOpts := models.DefaultOptions()
	profOpts.Sleep = "5.0"
	profOpts.UserAgent = "profile-agent"
	cfg.Profiles["p"] = &models.Profile{Name: "p", Options: profOpts}

	cliOpts := models.DefaultOptions()
	cliOpts.Destination = ""
	cliOpts.UserAgent = "cli-agent"

	// polite preset sets sleep 2.0-4.0, overriding the profile.
	url, opts, err := cfg.Resolve("p", "polite", &cliOpts, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "" {
		t.Fatalf("modifier preset produced url %q", url)
	}
	if opts.Sleep != "2.0-4.0" {
		t.Fatalf("preset should beat profile: got sleep %q", opts.Sleep)
	}
	if opts.UserAgent != "cli-agent" {
		t.Fatalf("cli should beat profile: got user agent %q", opts.UserAgent)
	}
	if opts.Proxy != "http://defaults:1" {
		t.Fatalf("config defaults should survive: got proxy %q", opts.Proxy)
	}
}

func TestResolveURLOnlyFromPreset(t *testing.T) {
	cfg := config.New()

	url, opts, err := cfg.Resolve("", "instagram", nil, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://instagram.com/alice" {
		t.Fatalf("unexpected url %q", url)
	}
	if opts.Destination != "./alice_instagram" {
		t.Fatalf("unexpected destination %q", opts.Destination)
	}
}

func TestResolveUnknownReferencesSkipped(t *testing.T) {
	cfg := config.New()
	cfg.Defaults.Sleep = "3.0"

	url, opts, err := cfg.Resolve("ghost", "ghost", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "" {
		t.Fatalf("unexpected url %q", url)
	}
	if opts.Sleep != "3.0" {
		t.Fatalf("expected defaults to pass through, got %q", opts.Sleep)
	}
}

func TestResolveBatchPriorityOrder(t *testing.T) {
	cfg := config.New()
	cfg.Defaults.Sleep = "9.0"

	global := models.DefaultOptions()
	global.Sleep = "7.0"
	global.Proxy = "http://global:1"

	profOpts := models.DefaultOptions()
	profOpts.Sleep = "5.0"
	cfg.Profiles["p"] = &models.Profile{Name: "p", Options: profOpts}

	// Preset last: polite's sleep 2.0-4.0 wins over everything below it.
	opts, err := cfg.ResolveBatch(&global, "p", "polite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Sleep != "2.0-4.0" {
		t.Fatalf("preset should be highest priority: got %q", opts.Sleep)
	}
	if opts.Proxy != "http://global:1" {
		t.Fatalf("global layer lost: got proxy %q", opts.Proxy)
	}

	// Without preset, profile beats global.
	opts, err = cfg.ResolveBatch(&global, "p", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Sleep != "5.0" {
		t.Fatalf("profile should beat global: got %q", opts.Sleep)
	}
}

func TestResolveBatchDefaultsOnly(t *testing.T) {
	cfg := config.New()
	cfg.Defaults.RateLimit = "1M"

	opts, err := cfg.ResolveBatch(nil, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.DefaultOptions().Merge(cfg.Defaults)
	if !reflect.DeepEqual(opts, want) {
		t.Fatalf("expected defaults merge:\n got %+v\nwant %+v", opts, want)
	}
}

func TestSetUnsetDefault(t *testing.T) {
	cfg := config.New()

	if err := cfg.SetDefault("sleep", "2.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Sleep != "2.0" {
		t.Fatalf("set did not apply")
	}
	if !cfg.Dirty() {
		t.Fatalf("expected dirty after set")
	}

	if err := cfg.SetDefault("bogus", "x"); err == nil {
		t.Fatalf("expected error for unknown key")
	}

	if err := cfg.UnsetDefault("sleep"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Sleep != "" {
		t.Fatalf("unset did not restore default")
	}
}

func TestDeleteProfile(t *testing.T) {
	cfg := config.New()
	cfg.AddProfile("x", models.DefaultOptions(), "")

	if !cfg.DeleteProfile("x") {
		t.Fatalf("expected delete to report true")
	}
	if cfg.DeleteProfile("x") {
		t.Fatalf("expected second delete to report false")
	}
}
