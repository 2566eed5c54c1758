package cfg

import (
	"fmt"
	"strings"
	"time"

	"mash/internal/batch"
	"mash/internal/domain/keys"
	"mash/internal/domain/paths"
	"mash/internal/downloads"
	"mash/internal/logging"
	"mash/internal/models"
	"mash/internal/presets"
	"mash/internal/validation"

	"github.com/spf13/cobra"
)

// newBatchCmd builds the batch command group.
func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run or validate batch files",
	}

	cmd.AddCommand(newBatchRunCmd(), newBatchValidateCmd())
	return cmd
}

func newBatchRunCmd() *cobra.Command {
	var (
		flags       downloadFlags
		profileName string
		presetName  string
		delay       float64
		dryRun      bool
		resume      bool
		resumeFile  string
	)

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Execute every entry of a batch file sequentially",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			bf, err := batch.Load(args[0])
			if err != nil {
				return err
			}

			if errs, err := bf.Validate(cfg); err != nil {
				return err
			} else if len(errs) != 0 {
				for _, e := range errs {
					logging.E("Line %d: %s", e.LineNumber, e.Message)
				}
				return fmt.Errorf("batch file has %d validation errors", len(errs))
			}

			global := flags.toOptions()
			if errs := validation.ValidateOptions(models.DefaultOptions().Merge(global)); len(errs) != 0 {
				for _, e := range errs {
					logging.E("Config error: %s: %s", e.Field, e.Message)
				}
				return fmt.Errorf("invalid batch options")
			}

			if presetName != "" && !presets.Exists(presetName) {
				return fmt.Errorf("unknown preset %q, available: %s",
					presetName, strings.Join(presets.Names(), ", "))
			}
			if profileName != "" {
				if _, ok := cfg.Profiles[profileName]; !ok {
					return fmt.Errorf("unknown profile: %s", profileName)
				}
			}

			if resume && resumeFile == "" {
				resumeFile = paths.ResumePath()
			}

			executor := &batch.Executor{
				Config:  cfg,
				Runner:  downloads.Tool{},
				Global:  &global,
				Profile: profileName,
				Preset:  presetName,
				Delay:   time.Duration(delay * float64(time.Second)),
				DryRun:  dryRun,
			}

			if resumeFile != "" {
				executor.ResumePath = resumeFile
				if resume {
					if state := batch.LoadResume(resumeFile); state != nil {
						logging.I("Resuming: %d entries already completed", len(state.CompletedIndices()))
						executor.Resume = state
					}
				}
			}

			if db, store, err := openHistory(); err != nil {
				logging.D(1, "History unavailable: %v", err)
			} else {
				executor.History = store
				defer func() {
					if err := db.Close(); err != nil {
						logging.D(1, "Failed to close database: %v", err)
					}
				}()
			}

			progress := executor.Run(cmd.Context(), bf)

			logging.P("")
			logging.P("Batch complete: %d succeeded, %d failed of %d",
				progress.Succeeded, progress.Failed, progress.Total)
			for _, f := range progress.Failures {
				logging.P("  FAILED %s: %s", f.URL, f.Message)
			}

			if progress.Failed != 0 {
				return fmt.Errorf("%d entries failed", progress.Failed)
			}
			return nil
		},
	}

	setDownloadFlags(cmd, &flags)
	cmd.Flags().StringVarP(&profileName, keys.Profile, "p", "", "Profile for entries that do not name one")
	cmd.Flags().StringVar(&presetName, keys.Preset, "", "Preset for entries that do not name one")
	cmd.Flags().Float64Var(&delay, keys.Delay, 0, "Seconds to wait between entries")
	cmd.Flags().BoolVarP(&dryRun, keys.DryRun, "n", false, "Simulate without downloading")
	cmd.Flags().BoolVar(&resume, keys.Resume, false, "Skip entries completed in a previous run")
	cmd.Flags().StringVar(&resumeFile, keys.ResumeFile, "", "Resume checkpoint file location")

	return cmd
}

func newBatchValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a batch file's syntax and references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			bf, err := batch.Load(args[0])
			if err != nil {
				return err
			}

			errs, err := bf.Validate(cfg)
			if err != nil {
				return err
			}
			if len(errs) != 0 {
				for _, e := range errs {
					logging.E("Line %d: %s", e.LineNumber, e.Message)
				}
				return fmt.Errorf("batch file has %d validation errors", len(errs))
			}

			logging.S("Batch file is valid (%d entries)", len(bf.Entries))
			return nil
		},
	}
}
