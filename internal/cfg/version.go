package cfg

import (
	"strings"

	"mash/internal/domain/command"
	"mash/internal/domain/consts"
	"mash/internal/downloads"
	"mash/internal/logging"

	"github.com/spf13/cobra"
)

// newVersionCmd builds the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.P("%s %s", consts.AppName, consts.Version)

			out, err := downloads.Tool{}.RunCapture(cmd.Context(), command.Version)
			if err != nil {
				logging.D(1, "Could not query %s: %v", command.GalleryDL, err)
				return nil
			}
			logging.P("%s %s", command.GalleryDL, strings.TrimSpace(out))
			return nil
		},
	}
}
