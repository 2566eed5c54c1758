// Package cookies exports live browser cookies into a cookies.txt file
// that gallery-dl can consume via its cookie-file option.
package cookies

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mash/internal/logging"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all"
)

const netscapeHeader = "# Netscape HTTP Cookie File\n"

// Export reads cookies for a domain from installed browser stores and
// writes them in Netscape cookies.txt format. An empty browser name tries
// every store. Returns the number of cookies written.
func Export(browser, domain, outPath string) (int, error) {
	if domain == "" {
		return 0, fmt.Errorf("a cookie domain is required")
	}

	stores := kooky.FindAllCookieStores()
	if len(stores) == 0 {
		return 0, fmt.Errorf("no browser cookie stores found")
	}

	var all []*kooky.Cookie
	for _, store := range stores {
		name := store.Browser()
		if browser != "" && !strings.EqualFold(name, browser) {
			continue
		}

		cookies, err := store.ReadCookies(kooky.Valid, kooky.Domain(domain))
		if err != nil {
			logging.D(1, "Failed to read cookies from %s: %v", name, err)
			continue
		}
		if len(cookies) > 0 {
			logging.D(1, "Read %d cookies from %s for domain %q", len(cookies), name, domain)
			all = append(all, cookies...)
		}
	}

	if len(all) == 0 {
		return 0, fmt.Errorf("no cookies found for domain %q", domain)
	}

	if err := writeNetscape(outPath, all); err != nil {
		return 0, err
	}
	return len(all), nil
}

// writeNetscape writes cookies in the tab-separated Netscape format.
func writeNetscape(path string, cookies []*kooky.Cookie) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var b strings.Builder
	b.WriteString(netscapeHeader)

	for _, c := range cookies {
		includeSubdomains := "FALSE"
		if strings.HasPrefix(c.Domain, ".") {
			includeSubdomains = "TRUE"
		}
		secure := "FALSE"
		if c.Secure {
			secure = "TRUE"
		}

		var expires int64
		if !c.Expires.IsZero() {
			expires = c.Expires.Unix()
		}

		cookiePath := c.Path
		if cookiePath == "" {
			cookiePath = "/"
		}

		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			c.Domain, includeSubdomains, cookiePath, secure, expires, c.Name, c.Value)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write cookie file %q: %w", path, err)
	}
	return nil
}
