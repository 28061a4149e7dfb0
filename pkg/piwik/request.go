package piwik

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// maxRedirects bounds dispatch latency and breaks redirect loops.
const maxRedirects = 2

// anonymousToken is the fallback when no auth token is resolvable.
const anonymousToken = "anonymous"

var (
	schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

	validPeriods = map[string]bool{
		"day":   true,
		"week":  true,
		"month": true,
		"year":  true,
		"range": true,
	}
)

// BuildURL constructs the fully qualified query URL for method. Control
// keys are consumed from the bag; everything left over is merged into the
// query verbatim, last write wins. See Params for the mutation contract.
func (c *Client) BuildURL(method string, params Params) (string, error) {
	if params == nil {
		params = Params{}
	}

	endpoint := c.cfg.URL
	if v, ok := params.take("url"); ok && !v.IsZero() {
		endpoint = v.Scalar()
	}
	endpoint = schemePrefix.ReplaceAllString(strings.TrimSpace(endpoint), "")
	if endpoint == "" {
		return "", ErrNoEndpoint
	}

	// The secure flag picks the scheme but stays in the bag, so it is
	// echoed back in the query like the remote expects.
	scheme := "http"
	if params["secure"].True() {
		scheme = "https"
	}

	token := anonymousToken
	if v, ok := params.take("token_auth"); ok && !v.IsZero() {
		token = v.Scalar()
	} else if c.cfg.TokenAuth != "" {
		token = c.cfg.TokenAuth
	}

	// site_id wins over the idSite alias, then the configured default.
	// A list folds to a comma-joined idSite in original order.
	site := "1"
	if v, ok := params["site_id"]; ok && !v.IsZero() {
		site = v.Join(",")
	} else if v, ok := params["idSite"]; ok && !v.IsZero() {
		site = v.Join(",")
	} else if c.cfg.SiteID != "" {
		site = c.cfg.SiteID
	}

	// Strip keys the caller must not override through the residual merge.
	params.drop("site_id", "idSite", "format", "module", "method")

	q := url.Values{}
	q.Set("module", "API")
	q.Set("method", method)
	q.Set("format", "JSON")
	q.Set("idSite", site)
	q.Set("token_auth", token)

	if v, ok := params.take("urls"); ok {
		if v.IsList() {
			for i, u := range v.List() {
				q.Set(fmt.Sprintf("urls[%d]", i), u)
			}
		} else {
			q.Set("urls", v.Scalar())
		}
	}

	if v, ok := params.take("period"); ok {
		period := strings.ToLower(v.Scalar())
		date, hasDate := params.take("date")
		if validPeriods[period] {
			q.Set("period", period)
			if hasDate {
				// A range period folds a [start, end] date list into
				// one comma-joined value.
				q.Set("date", date.Join(","))
			}
		} else {
			// Lenient by contract: an unrecognized period drops both
			// keys instead of failing the call.
			c.log.Debugf("piwik: dropping unrecognized period %q", period)
		}
	}

	for k, v := range params {
		q.Set(k, v.Join(","))
	}

	return scheme + "://" + endpoint + "?" + q.Encode(), nil
}
