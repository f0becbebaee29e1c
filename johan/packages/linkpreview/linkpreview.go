// Package linkpreview is a built-in Johan Chat package that unfurls URLs
// posted in chats. It contributes no schema fragment and no models, which
// makes it the minimal shape a package can take: manifest plus routes.
package linkpreview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"johan/johan/pkghost"

	"github.com/PuerkitoBio/goquery"
)

type Package struct {
	client *http.Client
}

func New() *Package {
	return &Package{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Package) Manifest() pkghost.Manifest {
	return pkghost.Manifest{
		Name:        "linkpreview",
		Version:     "1.0.0",
		Description: "Resolve URLs posted in chats to title, description and excerpt",
		Main:        "linkpreview.go",
	}
}

func (p *Package) Routes() []pkghost.Route {
	return []pkghost.Route{
		{Method: "GET", Description: "Preview a URL", Path: "/", Handler: p.preview},
	}
}

func (p *Package) preview(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	pv, err := p.Preview(r.Context(), target)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pv)
}

// Preview fetches a page and extracts its preview fields.
func (p *Package) Preview(ctx context.Context, target string) (*Preview, error) {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid url %q", target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", u, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", u, err)
	}
	pv := buildPreview(u.String(), doc)
	return &pv, nil
}
