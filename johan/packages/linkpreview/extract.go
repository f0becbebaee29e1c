package linkpreview

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Preview is what the package returns for one URL.
type Preview struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Excerpt     string `json:"excerpt"`
}

const maxExcerptChars = 500

// buildPreview pulls the title, OpenGraph metadata and a text excerpt out of
// an HTML document.
func buildPreview(pageURL string, doc *goquery.Document) Preview {
	p := Preview{URL: pageURL}

	p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		p.Title = og
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		p.Description = strings.TrimSpace(desc)
	}
	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && og != "" {
		p.Description = strings.TrimSpace(og)
	}

	if root := doc.Get(0); root != nil {
		p.Excerpt = excerptText(root, maxExcerptChars)
	}
	return p
}

// excerptText walks the DOM collecting visible text, skipping script/style
// subtrees, capped at max characters.
func excerptText(root *html.Node, max int) string {
	var sb strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if sb.Len() >= max {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript" || n.Data == "head") {
			return
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				sb.WriteString(t + " ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(root)

	text := strings.TrimSpace(sb.String())
	if len(text) > max {
		// cut on a rune boundary, the cap may land mid-sequence
		cut := max
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = strings.TrimSpace(text[:cut])
	}
	return text
}
