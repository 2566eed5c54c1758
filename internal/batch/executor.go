package batch

import (
	"context"
	"os"
	"time"

	"mash/internal/config"
	"mash/internal/downloads"
	"mash/internal/logging"
	"mash/internal/models"

	"github.com/mitchellh/go-homedir"
)

// OutcomeRecorder persists per-entry outcomes, typically the history store.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, url, preset, profile string, success bool, errMsg string) error
}

// Executor drives a batch strictly sequentially: one external invocation
// outstanding at a time, a blocking inter-entry delay, and a checkpoint
// after every entry. A single entry's failure never aborts the run.
type Executor struct {
	Config *config.Config
	Runner downloads.Runner

	// Global options merge between config defaults and per-entry layers.
	Global *models.DownloadOptions

	// Profile and Preset apply to entries that do not name their own.
	Profile string
	Preset  string

	Delay  time.Duration
	DryRun bool

	// Resume skips entries whose index it marks completed. ResumePath, if
	// set, receives a checkpoint after every processed entry.
	Resume     *ResumeState
	ResumePath string

	// History, if set, receives every outcome.
	History OutcomeRecorder
}

// Run processes every entry of the batch file in order and returns the
// final progress. Stops early only on context cancellation.
func (e *Executor) Run(ctx context.Context, bf *BatchFile) *Progress {
	progress := NewProgress(len(bf.Entries))

	checkpoint := e.Resume
	if checkpoint == nil && e.ResumePath != "" {
		checkpoint = NewResumeState(bf.Path)
	}

	for i, entry := range bf.Entries {
		if ctx.Err() != nil {
			logging.W("Batch interrupted after %d of %d entries", progress.Completed, progress.Total)
			return progress
		}

		if checkpoint != nil && checkpoint.IsDone(i) {
			logging.D(1, "Skipping entry %d (%s), already completed", i, entry.URL)
			continue
		}

		progress.Current = entry.URL
		logging.I("[%d/%d] %s", progress.Completed+1, progress.Total, entry.URL)

		e.processEntry(ctx, entry, progress)

		if checkpoint != nil {
			checkpoint.MarkDone(i)
			if e.ResumePath != "" {
				if err := checkpoint.Save(e.ResumePath); err != nil {
					logging.W("Failed to save resume state: %v", err)
				}
			}
		}

		if e.Delay > 0 && i < len(bf.Entries)-1 {
			logging.D(2, "Sleeping %v before next entry", e.Delay)
			select {
			case <-ctx.Done():
				return progress
			case <-time.After(e.Delay):
			}
		}
	}

	progress.Current = ""
	return progress
}

// processEntry resolves, invokes and records exactly one entry. The
// entry's own profile/preset win over the batch-level fallbacks.
func (e *Executor) processEntry(ctx context.Context, entry *BatchEntry, progress *Progress) {
	if entry.Profile == "" {
		entry.Profile = e.Profile
	}
	if entry.Preset == "" {
		entry.Preset = e.Preset
	}

	opts, err := entry.ResolveOptions(e.Config, e.Global)
	if err != nil {
		e.record(ctx, entry, progress, false, err.Error())
		return
	}

	opts, err = config.ApplyEnvOverrides(opts)
	if err != nil {
		e.record(ctx, entry, progress, false, err.Error())
		return
	}

	args := downloads.BuildArgs(opts, e.DryRun, entry.URL)

	if !e.DryRun && opts.Destination != "" {
		dest, err := homedir.Expand(opts.Destination)
		if err != nil {
			dest = opts.Destination
		}
		if err := os.MkdirAll(dest, 0o755); err != nil {
			e.record(ctx, entry, progress, false, err.Error())
			return
		}
	}

	outcome := e.Runner.Run(ctx, args)
	e.record(ctx, entry, progress, outcome.Success, outcome.Message)
}

func (e *Executor) record(ctx context.Context, entry *BatchEntry, progress *Progress, success bool, message string) {
	progress.Update(entry.URL, success, message)

	if success {
		logging.S("Completed %s", entry.URL)
	} else {
		logging.E("Failed %s: %s", entry.URL, message)
	}

	if e.History != nil {
		if err := e.History.RecordOutcome(ctx, entry.URL, entry.Preset, entry.Profile, success, message); err != nil {
			logging.W("Failed to record outcome for %s: %v", entry.URL, err)
		}
	}
}
