package cfg

import (
	"fmt"
	"strings"

	"mash/internal/domain/keys"
	"mash/internal/logging"
	"mash/internal/presets"

	"github.com/spf13/cobra"
)

// newPresetCmd builds the preset listing/apply command.
func newPresetCmd() *cobra.Command {
	var (
		listAll     bool
		dryRun      bool
		profileName string
	)

	cmd := &cobra.Command{
		Use:   "preset [NAME [TARGET]]",
		Short: "List built-in presets or download with one",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listAll || len(args) == 0 {
				printPresets()
				return nil
			}

			name := args[0]
			preset, ok := presets.Get(name)
			if !ok {
				return fmt.Errorf("unknown preset %q, available: %s",
					name, strings.Join(presets.Names(), ", "))
			}

			if preset.IsTarget() {
				if len(args) < 2 {
					logging.W("Preset %q requires a target", name)
					logging.P("Usage: mash preset %s <username>", name)
					return nil
				}
				flags := newDownloadFlags()
				return runGrab(cmd, "", &flags, profileName, name, args[1], dryRun)
			}

			logging.P("Preset %q contributes options only", name)
			logging.P("Use with: mash grab --preset %s <url>", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&listAll, keys.ListAll, "l", false, "List available presets")
	cmd.Flags().BoolVarP(&dryRun, keys.DryRun, "n", false, "Simulate without downloading")
	cmd.Flags().StringVarP(&profileName, keys.Profile, "p", "", "Also apply a profile")

	return cmd
}

func printPresets() {
	logging.P("%-20s %-45s %s", "NAME", "DESCRIPTION", "URL TEMPLATE")
	for _, p := range presets.All() {
		tmpl := p.URLTemplate
		if tmpl == "" {
			tmpl = "-"
		}
		logging.P("%-20s %-45s %s", p.Name, p.Description, tmpl)
	}
}
