package cfg

import (
	"mash/internal/domain/keys"
	"mash/internal/logging"

	"github.com/spf13/cobra"
)

// newHistoryCmd builds the download history command.
func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent download outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, err := openHistory()
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					logging.D(1, "Failed to close database: %v", err)
				}
			}()

			rows, err := store.RecentOutcomes(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(rows) == 0 {
				logging.P("No downloads recorded yet")
				return nil
			}

			for _, r := range rows {
				status := "ok"
				if !r.Success {
					status = "FAIL"
				}

				line := r.URL
				if r.Preset != "" {
					line += " preset:" + r.Preset
				}
				if r.Profile != "" {
					line += " profile:" + r.Profile
				}

				logging.P("%-4s %s  %s", status, r.CreatedAt.Format("2006-01-02 15:04"), line)
				if r.ErrorMsg != "" {
					logging.P("     %s", r.ErrorMsg)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, keys.Limit, "L", 20, "Number of entries to show")
	return cmd
}
