// Package validation checks option values against the external tool's
// grammars before anything is invoked.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"mash/internal/domain/consts"
	"mash/internal/models"
)

// ValidationError describes one invalid option field.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

var (
	// e.g. 500k, 2.5M, 800k-2M
	rateLimitRegex = regexp.MustCompile(`(?i)^\d+(\.\d+)?[kmg]?(-\d+(\.\d+)?[kmg]?)?$`)

	// e.g. 2.0, 1.5-3.0
	sleepRegex = regexp.MustCompile(`^\d+(\.\d+)?(-\d+(\.\d+)?)?$`)

	// e.g. 5, 8-20, 1:24:3
	rangeRegex = regexp.MustCompile(`^(\d+(-\d+)?|\d+:\d*(:\d+)?)$`)
)

// ValidateOptions runs every check regardless of earlier failures, so a
// single call reports all problems at once. An empty result means valid.
func ValidateOptions(opts models.DownloadOptions) []ValidationError {
	var errs []ValidationError

	if opts.RateLimit != "" && !rateLimitRegex.MatchString(opts.RateLimit) {
		errs = append(errs, ValidationError{
			Field:   models.FieldRateLimit,
			Message: "invalid format, use 500k, 2.5M or 800k-2M",
			Value:   opts.RateLimit,
		})
	}

	if opts.Sleep != "" && !sleepRegex.MatchString(opts.Sleep) {
		errs = append(errs, ValidationError{
			Field:   models.FieldSleep,
			Message: "invalid format, use 2.0 or 1.5-3.0",
			Value:   opts.Sleep,
		})
	}

	if opts.Retries < -1 {
		errs = append(errs, ValidationError{
			Field:   models.FieldRetries,
			Message: "must be -1 (infinite) or >= 0",
			Value:   opts.Retries,
		})
	}

	if opts.Timeout <= 0 {
		errs = append(errs, ValidationError{
			Field:   models.FieldTimeout,
			Message: "must be positive",
			Value:   opts.Timeout,
		})
	}

	if opts.RangeFilter != "" && !rangeRegex.MatchString(opts.RangeFilter) {
		errs = append(errs, ValidationError{
			Field:   models.FieldRangeFilter,
			Message: "invalid format, use 5, 8-20 or 1:24:3",
			Value:   opts.RangeFilter,
		})
	}

	if opts.CookiesBrowser != "" && !validBrowser(opts.CookiesBrowser) {
		errs = append(errs, ValidationError{
			Field:   models.FieldCookiesBrowser,
			Message: "unknown browser, valid: " + strings.Join(consts.ValidBrowsers, ", "),
			Value:   opts.CookiesBrowser,
		})
	}

	return errs
}

// validBrowser checks the browser part of a cookies-from-browser value,
// ignoring any keyring/profile suffix after the first slash.
func validBrowser(name string) bool {
	base := strings.ToLower(strings.SplitN(name, "/", 2)[0])
	for _, b := range consts.ValidBrowsers {
		if base == b {
			return true
		}
	}
	return false
}
