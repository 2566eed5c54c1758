package cfg

import (
	"mash/internal/cookies"
	"mash/internal/domain/keys"
	"mash/internal/logging"

	"github.com/spf13/cobra"
)

// newCookiesCmd builds the cookie export command group.
func newCookiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cookies",
		Short: "Work with browser cookies",
	}

	cmd.AddCommand(newCookiesExportCmd())
	return cmd
}

func newCookiesExportCmd() *cobra.Command {
	var (
		browser string
		domain  string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export browser cookies to a cookies.txt file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := cookies.Export(browser, domain, out)
			if err != nil {
				return err
			}

			logging.S("Wrote %d cookies to %s", n, out)
			logging.P("Use with: mash grab -C %s <url>", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&browser, keys.Browser, "b", "", "Only read from this browser (default all)")
	cmd.Flags().StringVar(&domain, keys.Domain, "", "Cookie domain to export (required)")
	cmd.Flags().StringVar(&out, keys.Out, "cookies.txt", "Output file")

	if err := cmd.MarkFlagRequired(keys.Domain); err != nil {
		logging.E("Failed to mark flag required: %v", err)
	}

	return cmd
}
