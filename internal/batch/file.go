package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"mash/internal/config"
	"mash/internal/logging"
	"mash/internal/presets"
)

// ValidationError flags one bad batch-file line.
type ValidationError struct {
	LineNumber int
	Message    string
	Entry      *BatchEntry
}

// BatchFile is a parsed job list, entries in file order.
type BatchFile struct {
	Path    string
	Entries []*BatchEntry
}

// Load reads and parses a batch file, streaming line by line. A missing
// file is the one hard error in batch handling. An empty file is valid and
// yields zero entries.
func Load(path string) (*BatchFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("batch file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open batch file %q: %w", path, err)
	}
	defer f.Close()

	bf := &BatchFile{Path: path}

	scanner := bufio.NewScanner(f)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if entry := ParseLine(scanner.Text(), lineNumber); entry != nil {
			bf.Entries = append(bf.Entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file %q: %w", path, err)
	}

	logging.D(1, "Loaded %d entries from %q", len(bf.Entries), path)
	return bf, nil
}

// Validate re-scans the file and checks every entry's preset and profile
// references, returning all problems in line order. The two checks are
// independent, one line can produce two errors. Re-scanning rather than
// reusing parsed entries keeps unparseable-syntax detection possible if
// the parser ever gets stricter.
func (bf *BatchFile) Validate(cfg *config.Config) ([]ValidationError, error) {
	f, err := os.Open(bf.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen batch file %q: %w", bf.Path, err)
	}
	defer f.Close()

	var errs []ValidationError

	scanner := bufio.NewScanner(f)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := ParseLine(line, lineNumber)
		if entry == nil {
			errs = append(errs, ValidationError{
				LineNumber: lineNumber,
				Message:    "invalid syntax",
			})
			continue
		}

		if entry.Preset != "" && !presets.Exists(entry.Preset) {
			errs = append(errs, ValidationError{
				LineNumber: lineNumber,
				Message:    fmt.Sprintf("unknown preset: %s", entry.Preset),
				Entry:      entry,
			})
		}

		if entry.Profile != "" {
			if _, ok := cfg.Profiles[entry.Profile]; !ok {
				errs = append(errs, ValidationError{
					LineNumber: lineNumber,
					Message:    fmt.Sprintf("unknown profile: %s", entry.Profile),
					Entry:      entry,
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file %q: %w", bf.Path, err)
	}

	return errs, nil
}
