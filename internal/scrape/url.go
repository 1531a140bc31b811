package scrape

import (
	"net/url"

	"github.com/rotisserie/eris"
)

// ValidateURL accepts absolute http and https URLs with a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return eris.Wrapf(err, "scrape: invalid url %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return eris.Errorf("scrape: unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return eris.Errorf("scrape: missing host in %q", raw)
	}
	return nil
}
