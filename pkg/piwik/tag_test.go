package piwik

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestTagDisabled(t *testing.T) {
	c := New(Config{URL: "stats.example.org", Embed: false})
	if got := c.Tag("", ""); got != "" {
		t.Fatalf("Tag with embedding disabled = %q, want empty", got)
	}
}

func TestTagNoEndpointPlaceholder(t *testing.T) {
	c := New(Config{Embed: true})
	got := c.Tag("", "")
	if !strings.HasPrefix(got, "<!--") || !strings.Contains(got, "not configured") {
		t.Fatalf("Tag without endpoint = %q, want placeholder comment", got)
	}
}

func TestTagMarkup(t *testing.T) {
	c := New(Config{URL: "http://stats.example.org/piwik/", SiteID: "7", Embed: true})
	markup := c.Tag("", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}

	script := doc.Find("script")
	if script.Length() != 1 {
		t.Fatalf("script tags = %d, want 1", script.Length())
	}
	js := script.Text()
	if !strings.Contains(js, "setSiteId', 7") {
		t.Fatalf("script missing site id: %s", js)
	}
	if !strings.Contains(js, `"://stats.example.org/piwik/"`) {
		t.Fatalf("script missing scheme-less endpoint: %s", js)
	}
	if strings.Contains(js, "http://stats.example.org") {
		t.Fatalf("endpoint in script must not keep the configured scheme: %s", js)
	}

	// The noscript fallback pixel carries the same site id.
	if !strings.Contains(markup, "piwik.php?idsite=7&amp;rec=1") {
		t.Fatalf("noscript pixel missing or wrong: %s", markup)
	}
}

func TestTagOverrides(t *testing.T) {
	c := New(Config{URL: "stats.example.org", SiteID: "7", Embed: true})
	markup := c.Tag("12", "https://other.example.org")
	if !strings.Contains(markup, "setSiteId', 12") {
		t.Fatalf("per-call site id not honored: %s", markup)
	}
	if !strings.Contains(markup, "other.example.org") {
		t.Fatalf("per-call endpoint not honored: %s", markup)
	}
	if strings.Contains(markup, "stats.example.org") {
		t.Fatalf("configured endpoint should be overridden: %s", markup)
	}
}
