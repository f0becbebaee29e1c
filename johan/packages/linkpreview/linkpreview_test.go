package linkpreview

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

const page = `<!doctype html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="OpenGraph Title">
<meta name="description" content="plain description">
<meta property="og:description" content="og description">
<style>body { color: red }</style>
<script>var hidden = "should not appear";</script>
</head>
<body>
<h1>Welcome</h1>
<p>Some visible body text.</p>
</body>
</html>`

func servePage(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPreview(t *testing.T) {
	srv := servePage(t, http.StatusOK, page)
	p := New()

	pv, err := p.Preview(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if pv.Title != "OpenGraph Title" {
		t.Errorf("expected og title, got %q", pv.Title)
	}
	if pv.Description != "og description" {
		t.Errorf("expected og description, got %q", pv.Description)
	}
	if !strings.Contains(pv.Excerpt, "Some visible body text.") {
		t.Errorf("excerpt missing body text: %q", pv.Excerpt)
	}
	if strings.Contains(pv.Excerpt, "should not appear") {
		t.Errorf("script content leaked into excerpt: %q", pv.Excerpt)
	}
}

func TestPreviewFallbackTitle(t *testing.T) {
	srv := servePage(t, http.StatusOK, "<html><head><title>Only Title</title></head><body>hi</body></html>")
	pv, err := New().Preview(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if pv.Title != "Only Title" {
		t.Errorf("expected fallback title, got %q", pv.Title)
	}
}

func TestPreviewRejectsBadURL(t *testing.T) {
	p := New()
	for _, bad := range []string{"", "ftp://example.com", "not a url at all", "file:///etc/passwd"} {
		if _, err := p.Preview(context.Background(), bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestPreviewUpstreamError(t *testing.T) {
	srv := servePage(t, http.StatusNotFound, "gone")
	if _, err := New().Preview(context.Background(), srv.URL); err == nil {
		t.Error("expected error for non-200 upstream")
	}
}

func TestExcerptCap(t *testing.T) {
	long := strings.Repeat("word ", 500)
	srv := servePage(t, http.StatusOK, "<html><body><p>"+long+"</p></body></html>")
	pv, err := New().Preview(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if len(pv.Excerpt) > maxExcerptChars {
		t.Errorf("excerpt exceeds cap: %d chars", len(pv.Excerpt))
	}
}

func TestExcerptCapKeepsRunesIntact(t *testing.T) {
	// three-byte runes do not divide the byte cap, so a naive byte cut
	// would land mid-sequence
	long := strings.Repeat("界", maxExcerptChars)
	srv := servePage(t, http.StatusOK, "<html><body><p>"+long+"</p></body></html>")
	pv, err := New().Preview(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if len(pv.Excerpt) > maxExcerptChars {
		t.Errorf("excerpt exceeds cap: %d bytes", len(pv.Excerpt))
	}
	if !utf8.ValidString(pv.Excerpt) {
		t.Errorf("excerpt is not valid utf-8: %q", pv.Excerpt)
	}
}

func TestRouteHandler(t *testing.T) {
	srv := servePage(t, http.StatusOK, page)
	p := New()
	routes := p.Routes()
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	rr := httptest.NewRecorder()
	routes[0].Handler(rr, httptest.NewRequest("GET", "/?url="+srv.URL, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "OpenGraph Title") {
		t.Errorf("unexpected body: %s", rr.Body.String())
	}
}
