package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"mash/internal/logging"

	"github.com/araddon/dateparse"
)

// ResumeState is the persisted checkpoint of which batch indices have
// already completed, so a killed run can be restarted without repeating
// work.
type ResumeState struct {
	BatchFile string
	SavedAt   time.Time

	completed map[int]bool
}

// resumeRecord is the on-disk form: sorted indices and an ISO-8601
// timestamp.
type resumeRecord struct {
	BatchFile string `json:"batch_file"`
	Completed []int  `json:"completed"`
	SavedAt   string `json:"saved_at"`
}

// NewResumeState returns an empty checkpoint for a batch file.
func NewResumeState(batchFile string) *ResumeState {
	return &ResumeState{
		BatchFile: batchFile,
		completed: make(map[int]bool),
	}
}

// MarkDone records a 0-based entry index as completed.
func (r *ResumeState) MarkDone(index int) {
	r.completed[index] = true
}

// IsDone reports whether a 0-based entry index has completed.
func (r *ResumeState) IsDone(index int) bool {
	return r.completed[index]
}

// CompletedIndices returns the completed indices, sorted.
func (r *ResumeState) CompletedIndices() []int {
	indices := make([]int, 0, len(r.completed))
	for i := range r.completed {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// Save writes the checkpoint, creating parent directories as needed.
func (r *ResumeState) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create resume directory: %w", err)
	}

	r.SavedAt = time.Now().UTC()
	record := resumeRecord{
		BatchFile: r.BatchFile,
		Completed: r.CompletedIndices(),
		SavedAt:   r.SavedAt.Format(time.RFC3339Nano),
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode resume state: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write resume state to %q: %w", path, err)
	}
	return nil
}

// LoadResume reads a checkpoint. A missing or corrupt file yields nil
// without error, resume state is best-effort and never blocks a run. The
// timestamp is parsed leniently since the file may have been touched by
// other tools.
func LoadResume(path string) *ResumeState {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var record resumeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logging.W("Ignoring corrupt resume file %q: %v", path, err)
		return nil
	}

	state := NewResumeState(record.BatchFile)
	for _, i := range record.Completed {
		state.completed[i] = true
	}
	if record.SavedAt != "" {
		if ts, err := dateparse.ParseAny(record.SavedAt); err == nil {
			state.SavedAt = ts
		}
	}
	return state
}
