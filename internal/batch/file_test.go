package batch_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mash/internal/batch"
	"mash/internal/config"
	"mash/internal/models"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write batch file: %v", err)
	}
	return path
}

func TestLoadSkipsCommentsAndBlanks(t *testing.T) {
	path := writeBatchFile(t, "https://a.example/x\n# comment\n\nhttps://b.example/y preset:polite\n")

	bf, err := batch.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bf.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(bf.Entries))
	}

	first, second := bf.Entries[0], bf.Entries[1]
	if first.URL != "https://a.example/x" || first.LineNumber != 1 {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if second.URL != "https://b.example/y" || second.LineNumber != 4 || second.Preset != "polite" {
		t.Fatalf("unexpected second entry: %+v", second)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeBatchFile(t, "")

	bf, err := batch.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bf.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(bf.Entries))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := batch.Load(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatalf("expected error for missing batch file")
	}
}

func TestValidateUnknownReferences(t *testing.T) {
	path := writeBatchFile(t, "https://a.example/1 preset:bogus\nhttps://a.example/2 profile:bogus\n")

	bf, err := batch.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errs, err := bf.Validate(config.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 validation errors, got %d: %+v", len(errs), errs)
	}
	if errs[0].LineNumber != 1 || errs[1].LineNumber != 2 {
		t.Fatalf("errors out of line order: %+v", errs)
	}
	for _, e := range errs {
		if !strings.Contains(e.Message, "bogus") {
			t.Fatalf("error should name the bad reference: %+v", e)
		}
	}
}

func TestValidateOneLineTwoErrors(t *testing.T) {
	path := writeBatchFile(t, "https://a.example/1 preset:ghost profile:ghost\n")

	bf, err := batch.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errs, err := bf.Validate(config.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors for one line, got %d: %+v", len(errs), errs)
	}
}

func TestValidateKnownReferences(t *testing.T) {
	path := writeBatchFile(t, "https://a.example/1 preset:polite profile:work\n")

	cfg := config.New()
	cfg.AddProfile("work", models.DefaultOptions(), "")

	bf, err := batch.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errs, err := bf.Validate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
}
