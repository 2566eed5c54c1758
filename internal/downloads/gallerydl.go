// Package downloads drives gallery-dl as a blocking subprocess.
package downloads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"mash/internal/domain/command"
	"mash/internal/logging"
	"mash/internal/models"
)

// invokeTimeout bounds a single gallery-dl invocation.
const invokeTimeout = 300 * time.Second

// Outcome is the classified result of one invocation.
type Outcome struct {
	Success bool
	Message string
}

// Runner invokes the external tool with a finished argument vector.
type Runner interface {
	Run(ctx context.Context, args []string) Outcome
}

// BuildArgs assembles the full argument vector for one job: option flags,
// the simulate flag in dry-run mode, then the target URL. URL must go last.
func BuildArgs(opts models.DownloadOptions, dryRun bool, url string) []string {
	args := opts.ToArgs()
	if dryRun {
		args = append(args, command.Simulate)
	}
	args = append(args, url)
	return args
}

// Tool runs the real gallery-dl binary.
type Tool struct {
	// Bin overrides the binary name, empty means gallery-dl from PATH.
	Bin string

	// Stdout receives the tool's output stream, defaults to os.Stdout.
	Stdout io.Writer
}

func (t Tool) bin() string {
	if t.Bin != "" {
		return t.Bin
	}
	return command.GalleryDL
}

// Run invokes the tool and blocks until it exits or the timeout elapses.
// Never returns an error: every failure mode is folded into the Outcome so
// batch drivers can record it and move on.
func (t Tool) Run(ctx context.Context, args []string) Outcome {
	runCtx, cancel := context.WithTimeout(ctx, invokeTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, t.bin(), args...)

	var stderr bytes.Buffer
	if t.Stdout != nil {
		cmd.Stdout = t.Stdout
	} else {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = &stderr

	logging.D(1, "Running: %s", cmd.String())

	err := cmd.Run()
	if err == nil {
		return Outcome{Success: true}
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Outcome{Message: "timed out"}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Outcome{Message: msg}
		}
		return Outcome{Message: fmt.Sprintf("%s exited with code %d", t.bin(), exitErr.ExitCode())}
	}

	return Outcome{Message: err.Error()}
}

// RunCapture invokes the tool and returns its stdout, for informational
// commands like --list-extractors.
func (t Tool) RunCapture(ctx context.Context, args ...string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, invokeTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, t.bin(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %s", t.bin(), msg)
		}
		return "", fmt.Errorf("%s failed: %w", t.bin(), err)
	}
	return stdout.String(), nil
}
