package cfg

import (
	"fmt"
	"sort"
	"strings"

	"mash/internal/domain/keys"
	"mash/internal/logging"
	"mash/internal/models"

	"github.com/spf13/cobra"
)

// newConfigCmd builds the config management command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigSetCmd(),
		newConfigUnsetCmd(),
		newConfigPathCmd(),
		newConfigProfilesCmd(),
		newConfigSaveProfileCmd(),
		newConfigLoadProfileCmd(),
		newConfigDeleteProfileCmd(),
	)
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logging.P("Config file: %s", cfg.Path())
			logging.P("")

			defaults := cfg.Defaults.ToSparseMap()
			if len(defaults) == 0 {
				logging.P("No custom defaults set")
			} else {
				logging.P("Defaults:")
				for _, key := range sortedKeys(defaults) {
					logging.P("  %-18s %v", key, defaults[key])
				}
			}

			logging.P("")
			if len(cfg.Profiles) == 0 {
				logging.P("No profiles configured")
				return nil
			}

			logging.P("%-20s %-35s %s", "PROFILE", "DESCRIPTION", "EXTENDS")
			for _, name := range cfg.ProfileNames() {
				p := cfg.Profiles[name]
				logging.P("%-20s %-35s %s", name, dash(p.Description), dash(p.Extends))
			}
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a default configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := cfg.SetDefault(args[0], args[1]); err != nil {
				return fmt.Errorf("%w\nvalid settings: %s", err, strings.Join(models.FieldNames(), ", "))
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			logging.S("Set %s = %s", args[0], args[1])
			return nil
		},
	}
}

func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Reset a default to its original value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := cfg.UnsetDefault(args[0]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			logging.S("Reset %s to default", args[0])
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logging.P("%s", cfg.Path())
			return nil
		},
	}
}

func newConfigProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if len(cfg.Profiles) == 0 {
				logging.P("No profiles saved")
				logging.P("Save current defaults: mash config save-profile <name>")
				return nil
			}

			logging.P("%-20s %-35s %s", "PROFILE", "DESCRIPTION", "SETTINGS")
			for _, name := range cfg.ProfileNames() {
				p := cfg.Profiles[name]
				sparse := p.Options.ToSparseMap()
				settings := make([]string, 0, len(sparse))
				for _, key := range sortedKeys(sparse) {
					settings = append(settings, fmt.Sprintf("%s=%v", key, sparse[key]))
				}
				logging.P("%-20s %-35s %s", name, dash(p.Description), dash(strings.Join(settings, ", ")))
			}
			return nil
		},
	}
}

func newConfigSaveProfileCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "save-profile NAME",
		Short: "Save current defaults as a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cfg.AddProfile(args[0], cfg.Defaults, description)
			if err := cfg.Save(); err != nil {
				return err
			}

			logging.S("Saved profile: %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, keys.Description, "D", "", "Profile description")
	return cmd
}

func newConfigLoadProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load-profile NAME",
		Short: "Load a profile as current defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			profile, err := cfg.GetProfile(args[0])
			if err != nil {
				return err
			}
			if profile == nil {
				return fmt.Errorf("profile not found: %s", args[0])
			}

			cfg.Defaults = profile.Options
			if err := cfg.Save(); err != nil {
				return err
			}

			logging.S("Loaded profile: %s", args[0])
			return nil
		},
	}
}

func newConfigDeleteProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-profile NAME",
		Short: "Delete a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if !cfg.DeleteProfile(args[0]) {
				return fmt.Errorf("profile not found: %s", args[0])
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			logging.S("Deleted profile: %s", args[0])
			return nil
		},
	}
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
