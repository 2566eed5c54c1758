package cfg

import (
	"mash/internal/domain/keys"
	"mash/internal/models"

	"github.com/spf13/cobra"
)

// downloadFlags holds the option-override flag targets shared by grab and
// batch run.
type downloadFlags struct {
	destination    string
	filename       string
	rateLimit      string
	sleep          string
	sleepRequest   string
	retries        int
	timeout        float64
	cookiesBrowser string
	cookiesFile    string
	archive        string
	rangeFilter    string
	filesizeMin    string
	filesizeMax    string
	metadata       bool
	zip            bool
	noSkip         bool
	noMtime        bool
	userAgent      string
	proxy          string
	extraOptions   []string
}

// newDownloadFlags returns flag targets with the numeric fields at their
// documented defaults, so an unregistered flag set never fakes an override.
func newDownloadFlags() downloadFlags {
	return downloadFlags{
		retries: models.DefaultRetries,
		timeout: models.DefaultTimeout,
	}
}

// setDownloadFlags registers the option-override flags on a command.
func setDownloadFlags(cmd *cobra.Command, f *downloadFlags) {
	cmd.Flags().StringVarP(&f.destination, keys.Destination, "d", "", "Download directory")
	cmd.Flags().StringVarP(&f.filename, keys.Filename, "f", "", "Filename format")
	cmd.Flags().StringVarP(&f.rateLimit, keys.RateLimit, "r", "", "Max download rate (e.g. 500k, 2M)")
	cmd.Flags().StringVar(&f.sleep, keys.Sleep, "", "Delay between downloads (e.g. 2.0, 1-3)")
	cmd.Flags().StringVar(&f.sleepRequest, keys.SleepRequest, "", "Delay between HTTP requests")
	cmd.Flags().IntVarP(&f.retries, keys.Retries, "R", models.DefaultRetries, "Max retries for failed requests (-1 for infinite)")
	cmd.Flags().Float64Var(&f.timeout, keys.Timeout, models.DefaultTimeout, "HTTP timeout in seconds")
	cmd.Flags().StringVarP(&f.cookiesBrowser, keys.CookiesBrowser, "c", "", "Browser to load cookies from")
	cmd.Flags().StringVarP(&f.cookiesFile, keys.CookiesFile, "C", "", "Cookie file to load")
	cmd.Flags().StringVarP(&f.archive, keys.ArchiveFile, "a", "", "Archive file for tracking downloads")
	cmd.Flags().StringVar(&f.rangeFilter, keys.RangeFilter, "", "Download only items in range")
	cmd.Flags().StringVar(&f.filesizeMin, keys.FilesizeMin, "", "Skip files smaller than this")
	cmd.Flags().StringVar(&f.filesizeMax, keys.FilesizeMax, "", "Skip files larger than this")
	cmd.Flags().BoolVarP(&f.metadata, keys.WriteMetadata, "m", false, "Write metadata JSON files")
	cmd.Flags().BoolVarP(&f.zip, keys.ZipOutput, "z", false, "Output as ZIP archive")
	cmd.Flags().BoolVar(&f.noSkip, keys.NoSkip, false, "Do not skip already-downloaded files")
	cmd.Flags().BoolVar(&f.noMtime, keys.NoMtime, false, "Do not set file modification times")
	cmd.Flags().StringVar(&f.userAgent, keys.UserAgent, "", "User agent string")
	cmd.Flags().StringVar(&f.proxy, keys.Proxy, "", "Proxy URL")
	cmd.Flags().StringSliceVarP(&f.extraOptions, keys.ExtraOption, "o", nil, "Extra key=value passthrough options")
}

// toOptions builds the CLI overlay layer from the flag values. Strings and
// booleans overlay naturally; retries and timeout passed at their default
// value cannot override a customized lower layer, which matches the
// documented merge rule.
func (f *downloadFlags) toOptions() models.DownloadOptions {
	opts := models.DefaultOptions()

	opts.Destination = f.destination
	opts.FilenameFormat = f.filename
	opts.RateLimit = f.rateLimit
	opts.Sleep = f.sleep
	opts.SleepRequest = f.sleepRequest
	opts.Retries = f.retries
	opts.Timeout = f.timeout
	opts.CookiesBrowser = f.cookiesBrowser
	opts.CookiesFile = f.cookiesFile
	opts.ArchiveFile = f.archive
	opts.RangeFilter = f.rangeFilter
	opts.FilesizeMin = f.filesizeMin
	opts.FilesizeMax = f.filesizeMax
	opts.WriteMetadata = f.metadata
	opts.ZipOutput = f.zip
	opts.NoSkip = f.noSkip
	opts.NoMtime = f.noMtime
	opts.UserAgent = f.userAgent
	opts.Proxy = f.proxy
	opts.ExtraOptions = f.extraOptions

	return opts
}
