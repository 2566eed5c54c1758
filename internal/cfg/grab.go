package cfg

import (
	"errors"
	"os"
	"strings"

	"mash/internal/config"
	"mash/internal/domain/command"
	"mash/internal/domain/keys"
	"mash/internal/downloads"
	"mash/internal/logging"
	"mash/internal/validation"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// newGrabCmd builds the single-download command.
func newGrabCmd() *cobra.Command {
	var (
		flags       downloadFlags
		profileName string
		presetName  string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "grab URL",
		Short: "Download from a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrab(cmd, args[0], &flags, profileName, presetName, "", dryRun)
		},
	}

	setDownloadFlags(cmd, &flags)
	cmd.Flags().StringVarP(&profileName, keys.Profile, "p", "", "Use saved profile")
	cmd.Flags().StringVar(&presetName, keys.Preset, "", "Apply built-in preset")
	cmd.Flags().BoolVarP(&dryRun, keys.DryRun, "n", false, "Simulate without downloading")

	return cmd
}

// runGrab resolves options and runs one download. An empty url means the
// preset's rendered URL is the target, which requires a target preset.
func runGrab(cmd *cobra.Command, url string, flags *downloadFlags, profileName, presetName, target string, dryRun bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cliOpts := flags.toOptions()
	presetURL, opts, err := cfg.Resolve(profileName, presetName, &cliOpts, target)
	if err != nil {
		return err
	}
	if url == "" {
		url = presetURL
	}
	if url == "" {
		return errors.New("no URL to download")
	}

	opts, err = config.ApplyEnvOverrides(opts)
	if err != nil {
		return err
	}

	if errs := validation.ValidateOptions(opts); len(errs) != 0 {
		for _, e := range errs {
			logging.E("Config error: %s: %s", e.Field, e.Message)
		}
		return errors.New("invalid configuration")
	}

	argv := downloads.BuildArgs(opts, dryRun, url)
	logging.P("%s %s", command.GalleryDL, strings.Join(argv, " "))

	if !dryRun && opts.Destination != "" {
		dest, err := homedir.Expand(opts.Destination)
		if err != nil {
			dest = opts.Destination
		}
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	outcome := downloads.Tool{}.Run(ctx, argv)

	if db, store, err := openHistory(); err != nil {
		logging.D(1, "History unavailable: %v", err)
	} else {
		if err := store.RecordOutcome(ctx, url, presetName, profileName, outcome.Success, outcome.Message); err != nil {
			logging.W("Failed to record history: %v", err)
		}
		if err := db.Close(); err != nil {
			logging.D(1, "Failed to close database: %v", err)
		}
	}

	if !outcome.Success {
		return errors.New(outcome.Message)
	}

	logging.S("Completed %s", url)
	return nil
}
