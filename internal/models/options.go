// Package models holds the option and profile records shared across the program.
package models

import (
	"fmt"
	"strconv"
	"strings"

	"mash/internal/domain/command"

	"github.com/mitchellh/go-homedir"
)

// Documented defaults. Merge and sparse persistence both key off these,
// so they live in one place.
const (
	DefaultDestination = "./downloads"
	DefaultRetries     = 4
	DefaultTimeout     = 30.0
)

// DownloadOptions is one full set of download-job settings. Zero-valued
// fields mean "unset" except Destination, Retries and Timeout, which have
// non-zero documented defaults. Construct via DefaultOptions to get those
// right.
type DownloadOptions struct {
	Destination    string  `toml:"destination,omitempty"`
	FilenameFormat string  `toml:"filename_format,omitempty"`
	RateLimit      string  `toml:"rate_limit,omitempty"`
	Sleep          string  `toml:"sleep,omitempty"`
	SleepRequest   string  `toml:"sleep_request,omitempty"`
	Retries        int     `toml:"retries,omitempty"`
	Timeout        float64 `toml:"timeout,omitempty"`

	CookiesBrowser string `toml:"cookies_browser,omitempty"`
	CookiesFile    string `toml:"cookies_file,omitempty"`

	ArchiveFile string `toml:"archive_file,omitempty"`
	RangeFilter string `toml:"range_filter,omitempty"`
	FilesizeMin string `toml:"filesize_min,omitempty"`
	FilesizeMax string `toml:"filesize_max,omitempty"`

	WriteMetadata bool `toml:"write_metadata,omitempty"`
	ZipOutput     bool `toml:"zip_output,omitempty"`
	NoSkip        bool `toml:"no_skip,omitempty"`
	NoMtime       bool `toml:"no_mtime,omitempty"`

	UserAgent string `toml:"user_agent,omitempty"`
	Proxy     string `toml:"proxy,omitempty"`

	// Passthrough key=value options for the external tool.
	ExtraOptions []string `toml:"extra_options,omitempty"`
}

// DefaultOptions returns an option set with every field at its documented
// default.
func DefaultOptions() DownloadOptions {
	return DownloadOptions{
		Destination: DefaultDestination,
		Retries:     DefaultRetries,
		Timeout:     DefaultTimeout,
	}
}

// Merge overlays another option set on top of this one, returning a new
// value. Strings win iff non-empty, booleans iff true, lists concatenate
// (receiver first), numerics win iff they differ from the documented
// default. The numeric rule is deliberate: an overlay merged back to the
// default cannot override a customized base value.
func (o DownloadOptions) Merge(overlay DownloadOptions) DownloadOptions {
	r := o

	r.Destination = mergeStr(o.Destination, overlay.Destination)
	r.FilenameFormat = mergeStr(o.FilenameFormat, overlay.FilenameFormat)
	r.RateLimit = mergeStr(o.RateLimit, overlay.RateLimit)
	r.Sleep = mergeStr(o.Sleep, overlay.Sleep)
	r.SleepRequest = mergeStr(o.SleepRequest, overlay.SleepRequest)
	r.CookiesBrowser = mergeStr(o.CookiesBrowser, overlay.CookiesBrowser)
	r.CookiesFile = mergeStr(o.CookiesFile, overlay.CookiesFile)
	r.ArchiveFile = mergeStr(o.ArchiveFile, overlay.ArchiveFile)
	r.RangeFilter = mergeStr(o.RangeFilter, overlay.RangeFilter)
	r.FilesizeMin = mergeStr(o.FilesizeMin, overlay.FilesizeMin)
	r.FilesizeMax = mergeStr(o.FilesizeMax, overlay.FilesizeMax)
	r.UserAgent = mergeStr(o.UserAgent, overlay.UserAgent)
	r.Proxy = mergeStr(o.Proxy, overlay.Proxy)

	if overlay.Retries != DefaultRetries {
		r.Retries = overlay.Retries
	}
	if overlay.Timeout != DefaultTimeout {
		r.Timeout = overlay.Timeout
	}

	r.WriteMetadata = o.WriteMetadata || overlay.WriteMetadata
	r.ZipOutput = o.ZipOutput || overlay.ZipOutput
	r.NoSkip = o.NoSkip || overlay.NoSkip
	r.NoMtime = o.NoMtime || overlay.NoMtime

	if len(o.ExtraOptions) != 0 || len(overlay.ExtraOptions) != 0 {
		merged := make([]string, 0, len(o.ExtraOptions)+len(overlay.ExtraOptions))
		merged = append(merged, o.ExtraOptions...)
		merged = append(merged, overlay.ExtraOptions...)
		r.ExtraOptions = merged
	}

	return r
}

func mergeStr(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

// ToArgs converts the option set to the external tool's argument vector.
// Paths get '~' expansion. The target URL is NOT included, callers append
// it last.
func (o DownloadOptions) ToArgs() []string {
	args := make([]string, 0, 32)

	if o.Destination != "" {
		args = append(args, command.Destination, expandPath(o.Destination))
	}
	if o.FilenameFormat != "" {
		args = append(args, command.FilenameFormat, o.FilenameFormat)
	}
	if o.RateLimit != "" {
		args = append(args, command.RateLimit, o.RateLimit)
	}
	if o.Sleep != "" {
		args = append(args, command.Sleep, o.Sleep)
	}
	if o.SleepRequest != "" {
		args = append(args, command.SleepRequest, o.SleepRequest)
	}
	if o.Retries != DefaultRetries {
		args = append(args, command.Retries, strconv.Itoa(o.Retries))
	}
	if o.Timeout != DefaultTimeout {
		args = append(args, command.HTTPTimeout, strconv.FormatFloat(o.Timeout, 'f', -1, 64))
	}
	if o.CookiesBrowser != "" {
		args = append(args, command.CookiesFromBrowser, o.CookiesBrowser)
	}
	if o.CookiesFile != "" {
		args = append(args, command.CookiesFile, expandPath(o.CookiesFile))
	}
	if o.ArchiveFile != "" {
		args = append(args, command.DownloadArchive, expandPath(o.ArchiveFile))
	}
	if o.RangeFilter != "" {
		args = append(args, command.Range, o.RangeFilter)
	}
	if o.FilesizeMin != "" {
		args = append(args, command.FilesizeMin, o.FilesizeMin)
	}
	if o.FilesizeMax != "" {
		args = append(args, command.FilesizeMax, o.FilesizeMax)
	}
	if o.WriteMetadata {
		args = append(args, command.WriteMetadata)
	}
	if o.ZipOutput {
		args = append(args, command.Zip)
	}
	if o.NoSkip {
		args = append(args, command.NoSkip)
	}
	if o.NoMtime {
		args = append(args, command.NoMtime)
	}
	if o.UserAgent != "" {
		args = append(args, command.UserAgent, o.UserAgent)
	}
	if o.Proxy != "" {
		args = append(args, command.Proxy, o.Proxy)
	}
	for _, opt := range o.ExtraOptions {
		args = append(args, command.Option, opt)
	}

	return args
}

func expandPath(p string) string {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return p
	}
	return expanded
}

// Field names as used in the persisted config and 'config set'.
const (
	FieldDestination    = "destination"
	FieldFilenameFormat = "filename_format"
	FieldRateLimit      = "rate_limit"
	FieldSleep          = "sleep"
	FieldSleepRequest   = "sleep_request"
	FieldRetries        = "retries"
	FieldTimeout        = "timeout"
	FieldCookiesBrowser = "cookies_browser"
	FieldCookiesFile    = "cookies_file"
	FieldArchiveFile    = "archive_file"
	FieldRangeFilter    = "range_filter"
	FieldFilesizeMin    = "filesize_min"
	FieldFilesizeMax    = "filesize_max"
	FieldWriteMetadata  = "write_metadata"
	FieldZipOutput      = "zip_output"
	FieldNoSkip         = "no_skip"
	FieldNoMtime        = "no_mtime"
	FieldUserAgent      = "user_agent"
	FieldProxy          = "proxy"
	FieldExtraOptions   = "extra_options"
)

// FieldNames lists every settable option field in display order.
func FieldNames() []string {
	return []string{
		FieldDestination, FieldFilenameFormat, FieldRateLimit, FieldSleep,
		FieldSleepRequest, FieldRetries, FieldTimeout, FieldCookiesBrowser,
		FieldCookiesFile, FieldArchiveFile, FieldRangeFilter, FieldFilesizeMin,
		FieldFilesizeMax, FieldWriteMetadata, FieldZipOutput, FieldNoSkip,
		FieldNoMtime, FieldUserAgent, FieldProxy, FieldExtraOptions,
	}
}

// ToSparseMap returns only the fields whose value differs from the
// documented default, keyed by field name. Keeps saved configs minimal.
func (o DownloadOptions) ToSparseMap() map[string]any {
	m := make(map[string]any)

	putStr := func(key, val, def string) {
		if val != def {
			m[key] = val
		}
	}
	putBool := func(key string, val bool) {
		if val {
			m[key] = val
		}
	}

	putStr(FieldDestination, o.Destination, DefaultDestination)
	putStr(FieldFilenameFormat, o.FilenameFormat, "")
	putStr(FieldRateLimit, o.RateLimit, "")
	putStr(FieldSleep, o.Sleep, "")
	putStr(FieldSleepRequest, o.SleepRequest, "")
	if o.Retries != DefaultRetries {
		m[FieldRetries] = o.Retries
	}
	if o.Timeout != DefaultTimeout {
		m[FieldTimeout] = o.Timeout
	}
	putStr(FieldCookiesBrowser, o.CookiesBrowser, "")
	putStr(FieldCookiesFile, o.CookiesFile, "")
	putStr(FieldArchiveFile, o.ArchiveFile, "")
	putStr(FieldRangeFilter, o.RangeFilter, "")
	putStr(FieldFilesizeMin, o.FilesizeMin, "")
	putStr(FieldFilesizeMax, o.FilesizeMax, "")
	putBool(FieldWriteMetadata, o.WriteMetadata)
	putBool(FieldZipOutput, o.ZipOutput)
	putBool(FieldNoSkip, o.NoSkip)
	putBool(FieldNoMtime, o.NoMtime)
	putStr(FieldUserAgent, o.UserAgent, "")
	putStr(FieldProxy, o.Proxy, "")
	if len(o.ExtraOptions) != 0 {
		m[FieldExtraOptions] = append([]string(nil), o.ExtraOptions...)
	}

	return m
}

// SetField sets one option field from its string representation, parsing
// typed fields explicitly. Unknown names and unparseable values error.
func (o *DownloadOptions) SetField(name, value string) error {
	switch name {
	case FieldDestination:
		o.Destination = value
	case FieldFilenameFormat:
		o.FilenameFormat = value
	case FieldRateLimit:
		o.RateLimit = value
	case FieldSleep:
		o.Sleep = value
	case FieldSleepRequest:
		o.SleepRequest = value
	case FieldRetries:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("retries must be an integer, got %q", value)
		}
		o.Retries = n
	case FieldTimeout:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("timeout must be a number, got %q", value)
		}
		o.Timeout = f
	case FieldCookiesBrowser:
		o.CookiesBrowser = value
	case FieldCookiesFile:
		o.CookiesFile = value
	case FieldArchiveFile:
		o.ArchiveFile = value
	case FieldRangeFilter:
		o.RangeFilter = value
	case FieldFilesizeMin:
		o.FilesizeMin = value
	case FieldFilesizeMax:
		o.FilesizeMax = value
	case FieldWriteMetadata:
		o.WriteMetadata = parseBool(value)
	case FieldZipOutput:
		o.ZipOutput = parseBool(value)
	case FieldNoSkip:
		o.NoSkip = parseBool(value)
	case FieldNoMtime:
		o.NoMtime = parseBool(value)
	case FieldUserAgent:
		o.UserAgent = value
	case FieldProxy:
		o.Proxy = value
	case FieldExtraOptions:
		o.ExtraOptions = append(o.ExtraOptions, value)
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
	return nil
}

// UnsetField resets one option field to its documented default.
func (o *DownloadOptions) UnsetField(name string) error {
	switch name {
	case FieldDestination:
		o.Destination = DefaultDestination
	case FieldFilenameFormat:
		o.FilenameFormat = ""
	case FieldRateLimit:
		o.RateLimit = ""
	case FieldSleep:
		o.Sleep = ""
	case FieldSleepRequest:
		o.SleepRequest = ""
	case FieldRetries:
		o.Retries = DefaultRetries
	case FieldTimeout:
		o.Timeout = DefaultTimeout
	case FieldCookiesBrowser:
		o.CookiesBrowser = ""
	case FieldCookiesFile:
		o.CookiesFile = ""
	case FieldArchiveFile:
		o.ArchiveFile = ""
	case FieldRangeFilter:
		o.RangeFilter = ""
	case FieldFilesizeMin:
		o.FilesizeMin = ""
	case FieldFilesizeMax:
		o.FilesizeMax = ""
	case FieldWriteMetadata:
		o.WriteMetadata = false
	case FieldZipOutput:
		o.ZipOutput = false
	case FieldNoSkip:
		o.NoSkip = false
	case FieldNoMtime:
		o.NoMtime = false
	case FieldUserAgent:
		o.UserAgent = ""
	case FieldProxy:
		o.Proxy = ""
	case FieldExtraOptions:
		o.ExtraOptions = nil
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}
