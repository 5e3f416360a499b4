// Package netx builds request URLs for the REST API.
package netx

import (
	"fmt"
	"net/url"
	"strings"
)

// EndpointURL joins base and endpoint with exactly one slash and appends
// params as an encoded query string.
func EndpointURL(base, endpoint string, params url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/"))
	if err != nil {
		return "", fmt.Errorf("endpoint url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("endpoint url: %q is not absolute", base)
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}
