package cfg

import (
	"strings"

	"mash/internal/domain/command"
	"mash/internal/domain/keys"
	"mash/internal/downloads"
	"mash/internal/logging"

	"github.com/spf13/cobra"
)

const maxSiteLines = 100

// newSitesCmd builds the supported-sites listing command.
func newSitesCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List sites the external tool supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := downloads.Tool{}.RunCapture(cmd.Context(), command.ListExtractors)
			if err != nil {
				return err
			}

			lines := strings.Split(strings.TrimSpace(out), "\n")
			if filter != "" {
				matched := lines[:0]
				for _, line := range lines {
					if strings.Contains(strings.ToLower(line), strings.ToLower(filter)) {
						matched = append(matched, line)
					}
				}
				lines = matched
			}

			logging.P("Supported sites (%d):", len(lines))
			for i, line := range lines {
				if i == maxSiteLines {
					logging.P("  ... and %d more (use --filter to narrow results)", len(lines)-maxSiteLines)
					break
				}
				logging.P("  %s", line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, keys.Filter, "f", "", "Filter by name")
	return cmd
}
