// ABOUTME: Page metadata extraction — title, description, canonical,
// ABOUTME: robots/index, headings, hreflang, and Open Graph fields.
package meta

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// Parse builds a core.PageMeta from raw HTML. Every field the document
// doesn't supply is left as its explicit zero/nil value rather than
// guessed at.
func Parse(htmlStr string) core.PageMeta {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return core.PageMeta{Index: true, Hreflang: []core.Hreflang{}}
	}

	m := core.PageMeta{Index: true, Hreflang: []core.Hreflang{}}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		m.Title = &title
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		m.Heading = &h1
	}

	m.Description = metaContent(doc, "description")
	m.Keywords = metaContent(doc, "keywords")
	m.Robots = metaContent(doc, "robots")

	if m.Robots != nil && strings.Contains(strings.ToLower(*m.Robots), "noindex") {
		m.Index = false
	}

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && href != "" {
		m.Canonical = &href
	}

	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, s *goquery.Selection) {
		lang, _ := s.Attr("hreflang")
		href, _ := s.Attr("href")
		if lang == "" || href == "" {
			return
		}
		m.Hreflang = append(m.Hreflang, core.Hreflang{Lang: lang, URL: href})
	})

	m.OpenGraph = core.OpenGraph{
		Title:       ogContent(doc, "og:title"),
		Description: ogContent(doc, "og:description"),
		Image:       ogContent(doc, "og:image"),
		URL:         ogContent(doc, "og:url"),
		Type:        ogContent(doc, "og:type"),
		SiteName:    ogContent(doc, "og:site_name"),
	}

	return m
}

func metaContent(doc *goquery.Document, name string) *string {
	sel := doc.Find(`meta[name="` + name + `"]`).First()
	if sel.Length() == 0 {
		return nil
	}
	v, ok := sel.Attr("content")
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func ogContent(doc *goquery.Document, property string) *string {
	sel := doc.Find(`meta[property="` + property + `"]`).First()
	if sel.Length() == 0 {
		return nil
	}
	v, ok := sel.Attr("content")
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
