package models_test

import (
	"reflect"
	"testing"

	"mash/internal/models"
)

func TestMergeStringsNonEmptyOverlayWins(t *testing.T) {
	base := models.DefaultOptions()
	base.Sleep = "2.0"
	base.Proxy = "http://base:8080"

	overlay := models.DefaultOptions()
	overlay.Sleep = "1.0-3.0"

	got := base.Merge(overlay)
	if got.Sleep != "1.0-3.0" {
		t.Fatalf("expected overlay sleep to win, got %q", got.Sleep)
	}
	if got.Proxy != "http://base:8080" {
		t.Fatalf("expected base proxy to survive empty overlay, got %q", got.Proxy)
	}
}

func TestMergeBooleansTrueWins(t *testing.T) {
	base := models.DefaultOptions()
	base.WriteMetadata = true

	overlay := models.DefaultOptions()
	overlay.ZipOutput = true

	got := base.Merge(overlay)
	if !got.WriteMetadata {
		t.Fatalf("false overlay should not clear a true base boolean")
	}
	if !got.ZipOutput {
		t.Fatalf("true overlay boolean should win")
	}
}

func TestMergeNumericDefaultCannotOverride(t *testing.T) {
	// The documented policy: an overlay merged back to the default cannot
	// override a customized base value.
	base := models.DefaultOptions()
	base.Sleep = "2.0"
	base.Retries = 5

	overlay := models.DefaultOptions() // retries 4, the documented default

	got := base.Merge(overlay)
	if got.Sleep != "2.0" {
		t.Fatalf("expected sleep %q, got %q", "2.0", got.Sleep)
	}
	if got.Retries != 5 {
		t.Fatalf("default-valued overlay retries overrode base: got %d, want 5", got.Retries)
	}
}

func TestMergeNumericNonDefaultWins(t *testing.T) {
	base := models.DefaultOptions()
	base.Retries = 5
	base.Timeout = 60.0

	overlay := models.DefaultOptions()
	overlay.Retries = -1
	overlay.Timeout = 10.0

	got := base.Merge(overlay)
	if got.Retries != -1 {
		t.Fatalf("expected overlay retries -1, got %d", got.Retries)
	}
	if got.Timeout != 10.0 {
		t.Fatalf("expected overlay timeout 10.0, got %v", got.Timeout)
	}
}

func TestMergeListsConcatenate(t *testing.T) {
	base := models.DefaultOptions()
	base.ExtraOptions = []string{"a=1"}

	overlay := models.DefaultOptions()
	overlay.ExtraOptions = []string{"b=2", "a=1"}

	got := base.Merge(overlay)
	want := []string{"a=1", "b=2", "a=1"}
	if !reflect.DeepEqual(got.ExtraOptions, want) {
		t.Fatalf("expected %v, got %v", want, got.ExtraOptions)
	}

	// Operands must be untouched.
	if len(base.ExtraOptions) != 1 || len(overlay.ExtraOptions) != 2 {
		t.Fatalf("merge mutated an operand")
	}
}

func TestMergeIdempotentWithoutLists(t *testing.T) {
	x := models.DefaultOptions()
	x.Sleep = "1.5"
	x.Retries = 2
	x.WriteMetadata = true
	x.Destination = "./pics"

	if got := x.Merge(x); !reflect.DeepEqual(got, x) {
		t.Fatalf("x.Merge(x) != x: got %+v", got)
	}
}

func TestSparseMapEmptyOnDefaults(t *testing.T) {
	if m := models.DefaultOptions().ToSparseMap(); len(m) != 0 {
		t.Fatalf("expected empty sparse map for defaults, got %v", m)
	}
}

func TestSparseMapIncludesFalsyNonDefaults(t *testing.T) {
	opts := models.DefaultOptions()
	opts.Retries = 0 // not the default 4

	m := opts.ToSparseMap()
	if v, ok := m[models.FieldRetries]; !ok || v != 0 {
		t.Fatalf("expected retries=0 in sparse map, got %v", m)
	}
}

func TestSparseMapOnlyCustomizedFields(t *testing.T) {
	opts := models.DefaultOptions()
	opts.Sleep = "2.0"
	opts.ZipOutput = true

	m := opts.ToSparseMap()
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %v", m)
	}
	if m[models.FieldSleep] != "2.0" || m[models.FieldZipOutput] != true {
		t.Fatalf("unexpected sparse map: %v", m)
	}
}

func TestToArgsDefaults(t *testing.T) {
	got := models.DefaultOptions().ToArgs()
	want := []string{"-D", "./downloads"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestToArgsFullMapping(t *testing.T) {
	opts := models.DefaultOptions()
	opts.Destination = "./out"
	opts.FilenameFormat = "/O"
	opts.RateLimit = "500k"
	opts.Sleep = "2.0"
	opts.SleepRequest = "1.0"
	opts.Retries = 2
	opts.Timeout = 10.5
	opts.CookiesBrowser = "firefox"
	opts.RangeFilter = "1-10"
	opts.WriteMetadata = true
	opts.NoSkip = true
	opts.UserAgent = "mash/1.0"
	opts.Proxy = "http://localhost:8080"
	opts.ExtraOptions = []string{"browser=firefox"}

	want := []string{
		"-D", "./out",
		"-f", "/O",
		"-r", "500k",
		"--sleep", "2.0",
		"--sleep-request", "1.0",
		"-R", "2",
		"--http-timeout", "10.5",
		"--cookies-from-browser", "firefox",
		"--range", "1-10",
		"--write-metadata",
		"--no-skip",
		"-a", "mash/1.0",
		"--proxy", "http://localhost:8080",
		"-o", "browser=firefox",
	}

	got := opts.ToArgs()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("argument vector mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestToArgsDefaultNumericsOmitted(t *testing.T) {
	opts := models.DefaultOptions()
	for _, arg := range opts.ToArgs() {
		if arg == "-R" || arg == "--http-timeout" {
			t.Fatalf("default retries/timeout should not emit flags, got %v", opts.ToArgs())
		}
	}
}

func TestSetField(t *testing.T) {
	tests := []struct {
		key   string
		value string
		ok    bool
	}{
		{models.FieldDestination, "./x", true},
		{models.FieldRetries, "7", true},
		{models.FieldRetries, "seven", false},
		{models.FieldTimeout, "12.5", true},
		{models.FieldTimeout, "soon", false},
		{models.FieldWriteMetadata, "yes", true},
		{models.FieldExtraOptions, "k=v", true},
		{"bogus_field", "x", false},
	}

	for _, tc := range tests {
		opts := models.DefaultOptions()
		err := opts.SetField(tc.key, tc.value)
		if tc.ok && err != nil {
			t.Fatalf("SetField(%q, %q): unexpected error: %v", tc.key, tc.value, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("SetField(%q, %q): expected error, got none", tc.key, tc.value)
		}
	}

	opts := models.DefaultOptions()
	if err := opts.SetField(models.FieldRetries, "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Retries != 7 {
		t.Fatalf("expected retries 7, got %d", opts.Retries)
	}
}

func TestUnsetFieldRestoresDefaults(t *testing.T) {
	opts := models.DefaultOptions()
	opts.Destination = "./elsewhere"
	opts.Retries = 9
	opts.ExtraOptions = []string{"a=1"}

	for _, key := range []string{models.FieldDestination, models.FieldRetries, models.FieldExtraOptions} {
		if err := opts.UnsetField(key); err != nil {
			t.Fatalf("UnsetField(%q): %v", key, err)
		}
	}

	if !reflect.DeepEqual(opts, models.DefaultOptions()) {
		t.Fatalf("expected defaults after unset, got %+v", opts)
	}

	if err := opts.UnsetField("bogus_field"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
