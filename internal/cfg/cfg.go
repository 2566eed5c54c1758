// Package cfg wires up the command tree.
package cfg

import (
	"context"

	"mash/internal/config"
	"mash/internal/database"
	"mash/internal/domain/keys"
	"mash/internal/domain/paths"
	"mash/internal/logging"
	"mash/internal/repo"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "mash",
	Short:         "mash is a gallery-dl front-end with layered configuration and batch execution",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verifyLogLevel()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// init sets the persistent flags and registers commands.
func init() {
	rootCmd.PersistentFlags().String(keys.ConfigFile, "", "Path to the config file")
	rootCmd.PersistentFlags().Int(keys.DebugLevel, 0, "Debug level (0 to 5)")

	if err := viper.BindPFlag(keys.ConfigFile, rootCmd.PersistentFlags().Lookup(keys.ConfigFile)); err != nil {
		logging.E("Failed to bind flag %q: %v", keys.ConfigFile, err)
	}
	if err := viper.BindPFlag(keys.DebugLevel, rootCmd.PersistentFlags().Lookup(keys.DebugLevel)); err != nil {
		logging.E("Failed to bind flag %q: %v", keys.DebugLevel, err)
	}

	rootCmd.AddCommand(
		newGrabCmd(),
		newPresetCmd(),
		newBatchCmd(),
		newConfigCmd(),
		newCookiesCmd(),
		newHistoryCmd(),
		newSitesCmd(),
		newVersionCmd(),
	)
}

// Execute runs the command tree.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// verifyLogLevel clamps the debug level setting into logging.Level.
func verifyLogLevel() {
	dLevel := viper.GetInt(keys.DebugLevel)
	switch {
	case dLevel <= 0:
		logging.Level = 0
	case dLevel >= 5:
		logging.Level = 5
	default:
		logging.Level = dLevel
	}
}

// loadConfig loads the config from the user-set path or the standard
// location.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetString(keys.ConfigFile))
}

// openHistory opens the history database. Callers close the database when
// done.
func openHistory() (*database.Database, *repo.HistoryStore, error) {
	db, err := database.InitDB(paths.DBPath())
	if err != nil {
		return nil, nil, err
	}
	return db, repo.GetHistoryStore(db.DB), nil
}
