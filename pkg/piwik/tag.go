package piwik

import (
	"fmt"
	"strings"
)

// noEndpointTag is rendered when embedding is on but no tracker endpoint
// is configured, so the page keeps a visible breadcrumb instead of a
// broken script.
const noEndpointTag = "<!-- piwik: tracker url not configured -->"

const tagTemplate = `<script type="text/javascript">
var _paq = _paq || [];
_paq.push(['trackPageView']);
_paq.push(['enableLinkTracking']);
(function() {
  var u = (("https:" == document.location.protocol) ? "https" : "http") + "://%s/";
  _paq.push(['setTrackerUrl', u + 'piwik.php']);
  _paq.push(['setSiteId', %s]);
  var d = document, g = d.createElement('script'), s = d.getElementsByTagName('script')[0];
  g.type = 'text/javascript'; g.defer = true; g.async = true; g.src = u + 'piwik.js';
  s.parentNode.insertBefore(g, s);
})();
</script>
<noscript><p><img src="http://%s/piwik.php?idsite=%s&amp;rec=1" style="border:0;" alt="" /></p></noscript>`

// Tag renders the page-tracking snippet. An empty string means embedding
// is disabled. siteID and endpoint default to the configured values; the
// endpoint is used without a scheme, the snippet picks http/https from the
// page protocol at render time.
func (c *Client) Tag(siteID, endpoint string) string {
	if !c.cfg.Embed {
		return ""
	}

	if endpoint == "" {
		endpoint = c.cfg.URL
	}
	endpoint = schemePrefix.ReplaceAllString(strings.TrimSpace(endpoint), "")
	endpoint = strings.TrimSuffix(endpoint, "/")
	if endpoint == "" {
		return noEndpointTag
	}

	if siteID == "" {
		siteID = c.cfg.SiteID
	}
	if siteID == "" {
		siteID = "1"
	}

	return fmt.Sprintf(tagTemplate, endpoint, siteID, endpoint, siteID)
}
